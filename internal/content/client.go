// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content turns raw ideas and finished posts into slide content and
// hashtags using the configured AI provider. It never surfaces provider
// errors: failures are logged and replaced by fixed fallback content.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"slidesmith/internal/ai"
	"slidesmith/internal/cache"
	"slidesmith/internal/models"
)

// maxGenerated is the most slides accepted from a single generation.
const maxGenerated = 10

// Generator produces JSON documents from prompts. *ai.Registry satisfies it.
type Generator interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema *ai.Schema) (string, error)
}

// PromptChecker screens user text before generation. *ai.Registry
// satisfies it; a Generator that does not is never screened.
type PromptChecker interface {
	CheckPrompt(ctx context.Context, text string) (*ai.ModerationResult, error)
}

// Cache stores decoded results by key. *cache.ResultCache satisfies it.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
}

var errEmptyResult = errors.New("content: response contained no usable items")

// Client generates slide content and hashtags.
type Client struct {
	gen   Generator
	cache Cache
}

// Option configures a Client.
type Option func(*Client)

// WithCache caches hashtag results.
func WithCache(c Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// NewClient returns a client backed by gen. A nil gen means no provider is
// configured and every call returns fallback content.
func NewClient(gen Generator, opts ...Option) *Client {
	c := &Client{gen: gen}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateFromIdea asks the provider for a carousel built from a free-form
// idea. On any failure, or when moderation flags the idea, it returns
// Fallback().
func (c *Client) GenerateFromIdea(ctx context.Context, idea string, tone Tone) models.GeneratedContent {
	if c.gen == nil {
		slog.Warn("content generation skipped: no provider configured")
		return Fallback()
	}
	if c.flagged(ctx, idea) {
		return Fallback()
	}
	out, err := c.generateSlides(ctx, carouselSystemPrompt, ideaPrompt(idea, tone))
	if err != nil {
		slog.Error("carousel generation failed", "tone", tone, "error", err)
		return Fallback()
	}
	slog.Info("carousel generated", "tone", tone, "slides", len(out))
	return out
}

// RegenerateFromPost converts an existing post into carousel slides. On any
// failure, or when moderation flags the post, it returns
// RegenerationFallback().
func (c *Client) RegenerateFromPost(ctx context.Context, title, body string, tone Tone) models.GeneratedContent {
	if c.gen == nil {
		slog.Warn("carousel regeneration skipped: no provider configured")
		return RegenerationFallback()
	}
	if c.flagged(ctx, title+"\n\n"+body) {
		return RegenerationFallback()
	}
	out, err := c.generateSlides(ctx, regenerateSystemPrompt, regeneratePrompt(title, body, tone))
	if err != nil {
		slog.Error("carousel regeneration failed", "tone", tone, "error", err)
		return RegenerationFallback()
	}
	slog.Info("carousel regenerated", "tone", tone, "slides", len(out))
	return out
}

// flagged reports whether moderation rejected text. A failing moderator
// lets the prompt through.
func (c *Client) flagged(ctx context.Context, text string) bool {
	pc, ok := c.gen.(PromptChecker)
	if !ok {
		return false
	}
	res, err := pc.CheckPrompt(ctx, text)
	if err != nil {
		slog.Warn("moderation check failed, allowing prompt", "error", err)
		return false
	}
	if !res.Safe {
		slog.Warn("prompt flagged by moderation", "categories", res.Categories)
		return true
	}
	return false
}

func (c *Client) generateSlides(ctx context.Context, system, user string) (models.GeneratedContent, error) {
	raw, err := c.gen.GenerateJSON(ctx, system, user, carouselSchema)
	if err != nil {
		return nil, err
	}
	return ParseSlides(raw)
}

// GenerateHashtags returns 7-10 hashtags for a post, without the leading #.
// Failures yield a single marker: HashtagGenerationError when no provider is
// configured, HashtagAPIError when the call fails and HashtagInvalidFormat
// when the response cannot be used.
func (c *Client) GenerateHashtags(ctx context.Context, text string) []string {
	if c.gen == nil {
		return []string{HashtagGenerationError}
	}

	key := cache.Key("hashtags", strings.TrimSpace(text))
	if c.cache != nil {
		var cached []string
		if c.cache.Get(ctx, key, &cached) && len(cached) > 0 {
			return cached
		}
	}

	raw, err := c.gen.GenerateJSON(ctx, hashtagSystemPrompt, hashtagPrompt(text), hashtagSchema)
	if err != nil {
		slog.Error("hashtag generation failed", "error", err)
		return []string{HashtagAPIError}
	}
	tags, err := ParseHashtags(raw)
	if err != nil {
		slog.Warn("hashtag response unusable", "error", err)
		return []string{HashtagInvalidFormat}
	}

	if c.cache != nil {
		c.cache.Set(ctx, key, tags)
	}
	return tags
}

// ParseSlides decodes a provider response into generated content. It
// accepts a bare array or an object with a "slides" array, optionally
// wrapped in a markdown code fence. Items with neither title nor content
// are dropped and the result is capped at ten slides.
func ParseSlides(raw string) (models.GeneratedContent, error) {
	doc := []byte(ai.StripCodeFence(raw))

	var items models.GeneratedContent
	if err := json.Unmarshal(doc, &items); err != nil {
		var wrapped struct {
			Slides models.GeneratedContent `json:"slides"`
		}
		if err2 := json.Unmarshal(doc, &wrapped); err2 != nil {
			return nil, fmt.Errorf("content: decode slides: %w", err2)
		}
		items = wrapped.Slides
	}

	out := make(models.GeneratedContent, 0, len(items))
	for _, it := range items {
		it.Title = strings.TrimSpace(it.Title)
		it.Content = strings.TrimSpace(it.Content)
		if it.Title == "" && it.Content == "" {
			continue
		}
		it.HighlightKeywords = models.CleanKeywords(it.HighlightKeywords)
		it.ImagePrompt = strings.TrimSpace(it.ImagePrompt)
		out = append(out, it)
		if len(out) == maxGenerated {
			break
		}
	}
	if len(out) == 0 {
		return nil, errEmptyResult
	}
	return out, nil
}

// ParseHashtags decodes a hashtag response: an object with a "hashtags"
// array or a bare array. Leading # symbols are stripped and duplicates
// removed case-insensitively.
func ParseHashtags(raw string) ([]string, error) {
	doc := []byte(ai.StripCodeFence(raw))

	var tags []string
	if err := json.Unmarshal(doc, &tags); err != nil {
		var wrapped struct {
			Hashtags []string `json:"hashtags"`
		}
		if err2 := json.Unmarshal(doc, &wrapped); err2 != nil {
			return nil, fmt.Errorf("content: decode hashtags: %w", err2)
		}
		tags = wrapped.Hashtags
	}

	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(t), "#"))
		t = strings.Join(strings.Fields(t), "")
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, errEmptyResult
	}
	return out, nil
}
