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
	"net/http"
	"time"
)

// claudeProvider implements the Provider interface using the Anthropic
// Messages API (POST /v1/messages).
type claudeProvider struct {
	config ProviderConfig
	client *http.Client
}

// newClaude creates a new Anthropic Claude provider.
func newClaude(cfg ProviderConfig) *claudeProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	return &claudeProvider{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *claudeProvider) Name() string { return "claude" }

// Generate sends a single user message to the Messages API.
func (p *claudeProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return p.send(ctx, systemPrompt, []claudeMessage{{Role: "user", Content: userPrompt}})
}

// GenerateJSON describes the schema in the system prompt and prefills the
// assistant turn with the opening character of the document, which keeps
// the model from adding prose before the JSON.
func (p *claudeProvider) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema *Schema) (string, error) {
	prefill := "{"
	if schema != nil && schema.Type == TypeArray {
		prefill = "["
	}
	text, err := p.send(ctx, withSchemaInstructions(systemPrompt, schema), []claudeMessage{
		{Role: "user", Content: userPrompt},
		{Role: "assistant", Content: prefill},
	})
	if err != nil {
		return "", err
	}
	return prefill + text, nil
}

func (p *claudeProvider) send(ctx context.Context, systemPrompt string, messages []claudeMessage) (string, error) {
	body := claudeRequest{
		Model:     p.config.Model,
		MaxTokens: 4096,
		System:    systemPrompt,
		Messages:  messages,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("claude marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("claude request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.config.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("claude http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("claude read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("claude API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result claudeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("claude unmarshal: %w", err)
	}

	for _, block := range result.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("claude: no text content in response")
}

// --- Anthropic Messages API types ---

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeResponse struct {
	Content []claudeContentBlock `json:"content"`
}
