// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"net/http"
	"time"
)

// mistralProvider talks to Mistral's OpenAI-compatible chat completions API.
type mistralProvider struct {
	inner *openAIProvider
}

func newMistral(cfg ProviderConfig) *mistralProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai/v1"
	}
	return &mistralProvider{
		inner: &openAIProvider{
			config: cfg,
			client: &http.Client{Timeout: 60 * time.Second},
		},
	}
}

func (p *mistralProvider) Name() string { return "mistral" }

func (p *mistralProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return p.inner.Generate(ctx, systemPrompt, userPrompt)
}

// GenerateJSON uses Mistral's JSON mode. Mistral does not accept a schema,
// so it is described in the system prompt instead.
func (p *mistralProvider) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema *Schema) (string, error) {
	body := openAIRequest{
		Model: p.inner.config.Model,
		Messages: []openAIMessage{
			{Role: "system", Content: withSchemaInstructions(systemPrompt, schema)},
			{Role: "user", Content: userPrompt},
		},
		ResponseFormat: &openAIResponseFormat{Type: "json_object"},
	}
	return p.inner.doChat(ctx, body)
}
