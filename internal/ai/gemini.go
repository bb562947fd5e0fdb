// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// geminiProvider implements Provider, JSONGenerator and ImageGenerator on
// top of the Google Gen AI SDK (Gemini API backend).
type geminiProvider struct {
	config ProviderConfig
	client *genai.Client
}

// newGemini creates a Gemini provider. BaseURL is optional and mostly
// useful for pointing the SDK at a test server.
func newGemini(ctx context.Context, cfg ProviderConfig) (*geminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: 120 * time.Second},
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &geminiProvider{config: cfg, client: client}, nil
}

func (p *geminiProvider) Name() string { return "gemini" }

// Generate sends a generateContent request using the default model.
func (p *geminiProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return p.generateText(ctx, systemPrompt, userPrompt, nil)
}

// GenerateJSON requests application/json output constrained by schema.
func (p *geminiProvider) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema *Schema) (string, error) {
	return p.generateText(ctx, systemPrompt, userPrompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toGenaiSchema(schema),
	})
}

func (p *geminiProvider) generateText(ctx context.Context, systemPrompt, userPrompt string, cfg *genai.GenerateContentConfig) (string, error) {
	if cfg == nil {
		cfg = &genai.GenerateContentConfig{}
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := p.client.Models.GenerateContent(ctx, p.config.Model, genai.Text(userPrompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates returned")
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: no text in response")
	}
	return text, nil
}

// GenerateImage asks the image model for a picture and returns the first
// inline image part.
func (p *geminiProvider) GenerateImage(ctx context.Context, prompt string) ([]byte, string, error) {
	model := p.config.ModelImage
	if model == "" {
		return nil, "", fmt.Errorf("gemini: image generation requires GEMINI_MODEL_IMAGE to be set")
	}

	result, err := p.client.Models.GenerateContent(ctx, model, genai.Text("Generate an image of: "+prompt),
		&genai.GenerateContentConfig{ResponseModalities: []string{"IMAGE", "TEXT"}})
	if err != nil {
		return nil, "", fmt.Errorf("gemini image generate: %w", err)
	}

	for _, c := range result.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			contentType := part.InlineData.MIMEType
			if contentType == "" {
				contentType = "image/png"
			}
			return part.InlineData.Data, contentType, nil
		}
	}

	return nil, "", fmt.Errorf("gemini image: no image data in response")
}

// toGenaiSchema converts the neutral schema into the SDK representation.
func toGenaiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Description: s.Description,
		Items:       toGenaiSchema(s.Items),
		Required:    s.Required,
	}
	switch s.Type {
	case TypeObject:
		out.Type = genai.TypeObject
	case TypeArray:
		out.Type = genai.TypeArray
	case TypeString:
		out.Type = genai.TypeString
	case TypeNumber:
		out.Type = genai.TypeNumber
	case TypeBoolean:
		out.Type = genai.TypeBoolean
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}
