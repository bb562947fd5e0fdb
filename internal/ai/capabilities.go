// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrImageUnsupported is returned by Registry.GenerateImage when the active
// provider cannot produce images.
var ErrImageUnsupported = errors.New("ai: image generation not supported")

// SchemaType is a JSON schema primitive.
type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeBoolean SchemaType = "boolean"
)

// Schema is the provider-neutral subset of JSON schema used to constrain
// structured responses. Providers translate it into their native form.
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// JSONGenerator is an optional interface for providers with a native
// structured-output mode. The returned text should be a JSON document
// matching schema, although callers must still validate it.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema *Schema) (string, error)
}

// GenerateJSON asks the active provider for a JSON document. Providers
// without a structured mode get the schema appended to the system prompt.
func (r *Registry) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema *Schema) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}
	if jg, ok := p.(JSONGenerator); ok {
		return jg.GenerateJSON(ctx, systemPrompt, userPrompt, schema)
	}
	return p.Generate(ctx, withSchemaInstructions(systemPrompt, schema), userPrompt)
}

// withSchemaInstructions appends a JSON-only instruction and the schema to
// a system prompt.
func withSchemaInstructions(systemPrompt string, schema *Schema) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nRespond with a single JSON document and nothing else. No markdown, no commentary.")
	if schema != nil {
		if raw, err := json.Marshal(schema); err == nil {
			b.WriteString(" The document must match this JSON schema: ")
			b.Write(raw)
		}
	}
	return b.String()
}

// ImageGenerator is implemented by providers that can produce images.
type ImageGenerator interface {
	// GenerateImage returns the raw image bytes and their MIME type.
	GenerateImage(ctx context.Context, prompt string) ([]byte, string, error)
}

// GenerateImage asks the active provider for an image.
func (r *Registry) GenerateImage(ctx context.Context, prompt string) ([]byte, string, error) {
	p, err := r.Active()
	if err != nil {
		return nil, "", err
	}
	ig, ok := p.(ImageGenerator)
	if !ok {
		return nil, "", fmt.Errorf("%w by %q", ErrImageUnsupported, p.Name())
	}
	return ig.GenerateImage(ctx, prompt)
}

// SupportsImageGeneration reports whether the active provider can generate images.
func (r *Registry) SupportsImageGeneration() bool {
	p, err := r.Active()
	if err != nil {
		return false
	}
	_, ok := p.(ImageGenerator)
	return ok
}

// StripCodeFence removes a surrounding markdown code fence (```json ... ```)
// that models sometimes wrap around structured output.
func StripCodeFence(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```") {
		// Drop the opening fence line, including any language tag.
		if nl := strings.Index(response, "\n"); nl != -1 {
			response = response[nl+1:]
		} else {
			response = strings.TrimPrefix(response, "```")
		}
		if idx := strings.LastIndex(response, "```"); idx != -1 {
			response = response[:idx]
		}
	}

	return strings.TrimSpace(response)
}
