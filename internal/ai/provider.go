// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface for interacting with multiple
// LLM providers (OpenAI, Gemini, Claude, Mistral). Each provider implements
// the Provider interface, and the Registry selects the active one by name.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Provider defines the interface that all AI providers must implement.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the generated text.
	// systemPrompt sets the model's behaviour; userPrompt is the user's request.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name returns the provider identifier (e.g., "openai", "gemini").
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// ModelImage is the image-capable model; only Gemini uses it.
	ModelImage string
}

// Registry manages available AI providers and selects the active one.
// It supports runtime switching by changing the active provider name.
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
	moderator Moderator
}

// NewRegistry creates a registry and initialises providers for every config
// that has a non-empty API key. Providers without keys are silently skipped.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		active:    active,
		moderator: newModerator(configs),
	}

	for name, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		switch name {
		case "openai":
			r.providers[name] = newOpenAI(cfg)
		case "gemini":
			p, err := newGemini(context.Background(), cfg)
			if err != nil {
				slog.Warn("gemini provider unavailable", "error", err)
				continue
			}
			r.providers[name] = p
		case "claude":
			r.providers[name] = newClaude(cfg)
		case "mistral":
			r.providers[name] = newMistral(cfg)
		}
	}

	return r
}

// CheckPrompt screens user text with the configured moderator. Without an
// OpenAI or Mistral key there is no moderator and every prompt is safe.
func (r *Registry) CheckPrompt(ctx context.Context, text string) (*ModerationResult, error) {
	if r.moderator == nil {
		return &ModerationResult{Safe: true}, nil
	}
	return r.moderator.CheckSafety(ctx, text)
}

// Generate calls the active provider's Generate method.
func (r *Registry) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}
	return p.Generate(ctx, systemPrompt, userPrompt)
}

// Active returns the currently active provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("ai: no provider configured for %q", r.active)
	}
	return p, nil
}

// SetActive switches the active provider at runtime. Returns an error if
// the named provider has no API key configured.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("ai: provider %q is not available (no API key?)", name)
	}
	r.active = name
	return nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// Available returns the sorted names of all configured providers.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a provider in the registry. This allows injecting
// custom providers at runtime (e.g. for testing).
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// HasProvider checks whether a named provider is configured and available.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.providers[name]
	return ok
}
