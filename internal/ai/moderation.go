// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"
)

// ModerationResult is the outcome of a prompt safety check.
type ModerationResult struct {
	Safe       bool
	Categories []string // flagged categories, empty when safe
}

// Moderator screens user text before it is sent to a generation endpoint.
type Moderator interface {
	CheckSafety(ctx context.Context, text string) (*ModerationResult, error)
}

// newModerator picks a moderator from the configured keys: OpenAI's free
// endpoint first, Mistral when OpenAI is missing or failing. It returns nil
// when neither key is set.
func newModerator(configs map[string]ProviderConfig) Moderator {
	var chain []Moderator
	if cfg := configs["openai"]; cfg.APIKey != "" {
		chain = append(chain, &moderationClient{
			name:    "openai",
			model:   "omni-moderation-latest",
			url:     strings.TrimRight(orDefault(cfg.BaseURL, "https://api.openai.com/v1"), "/") + "/moderations",
			apiKey:  cfg.APIKey,
			client:  &http.Client{Timeout: 15 * time.Second},
			flagged: openAIFlagged,
		})
	}
	if cfg := configs["mistral"]; cfg.APIKey != "" {
		chain = append(chain, &moderationClient{
			name:    "mistral",
			model:   "mistral-moderation-latest",
			url:     strings.TrimRight(orDefault(cfg.BaseURL, "https://api.mistral.ai/v1"), "/") + "/moderations",
			apiKey:  cfg.APIKey,
			client:  &http.Client{Timeout: 15 * time.Second},
			flagged: categoriesFlagged,
		})
	}
	switch len(chain) {
	case 0:
		return nil
	case 1:
		return chain[0]
	}
	return fallbackModerator(chain)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// fallbackModerator tries each moderator in order and returns the first
// answer. Project-scoped OpenAI keys often lack moderation access.
type fallbackModerator []Moderator

func (f fallbackModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	var lastErr error
	for _, m := range f {
		res, err := m.CheckSafety(ctx, text)
		if err == nil {
			return res, nil
		}
		slog.Warn("moderation provider failed, trying next", "error", err)
		lastErr = err
	}
	return nil, lastErr
}

// moderationClient talks to an OpenAI-style POST /moderations endpoint.
// OpenAI and Mistral share the request shape but flag differently.
type moderationClient struct {
	name    string
	model   string
	url     string
	apiKey  string
	client  *http.Client
	flagged func(moderationResult) bool
}

func (m *moderationClient) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	payload, err := json.Marshal(moderationRequest{Model: m.model, Input: text})
	if err != nil {
		return nil, fmt.Errorf("%s moderation marshal: %w", m.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s moderation request: %w", m.name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s moderation http: %w", m.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s moderation read body: %w", m.name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s moderation API error (status %d): %s", m.name, resp.StatusCode, string(body))
	}

	var result moderationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%s moderation unmarshal: %w", m.name, err)
	}
	if len(result.Results) == 0 || !m.flagged(result.Results[0]) {
		return &ModerationResult{Safe: true}, nil
	}
	return &ModerationResult{Categories: flaggedCategories(result.Results[0].Categories)}, nil
}

func openAIFlagged(r moderationResult) bool { return r.Flagged }

// categoriesFlagged is used for Mistral, which has no top-level flag.
func categoriesFlagged(r moderationResult) bool {
	return len(flaggedCategories(r.Categories)) > 0
}

// flaggedCategories turns "hate/threatening" into "hate (threatening)" and
// "self_harm" into "self harm", sorted.
func flaggedCategories(cats map[string]bool) []string {
	var out []string
	for cat, on := range cats {
		if !on {
			continue
		}
		display := cat
		if before, after, ok := strings.Cut(cat, "/"); ok {
			display = before + " (" + after + ")"
		}
		out = append(out, strings.ReplaceAll(display, "_", " "))
	}
	sort.Strings(out)
	return out
}

type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []moderationResult `json:"results"`
}

type moderationResult struct {
	Flagged    bool            `json:"flagged"`
	Categories map[string]bool `json:"categories"`
}
