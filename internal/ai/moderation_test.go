// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOpenAIModeration(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantSafe bool
		wantCats []string
	}{
		{"safe", `{"results":[{"flagged":false,"categories":{"hate":false}}]}`, true, nil},
		{
			"flagged",
			`{"results":[{"flagged":true,"categories":{"hate/threatening":true,"self_harm":true,"violence":false}}]}`,
			false, []string{"hate (threatening)", "self harm"},
		},
		{"no results", `{"results":[]}`, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, c := newCaptureServer(t, http.StatusOK, tt.body)
			m := newModerator(map[string]ProviderConfig{"openai": {APIKey: "sk-mod", BaseURL: srv.URL}})

			res, err := m.CheckSafety(context.Background(), "an idea")
			if err != nil {
				t.Fatalf("CheckSafety: %v", err)
			}
			if res.Safe != tt.wantSafe {
				t.Errorf("Safe = %v, want %v", res.Safe, tt.wantSafe)
			}
			if diff := cmp.Diff(tt.wantCats, res.Categories); diff != "" {
				t.Errorf("categories (-want +got):\n%s", diff)
			}
			if c.path != "/moderations" {
				t.Errorf("path = %q", c.path)
			}
			if got := c.header.Get("Authorization"); got != "Bearer sk-mod" {
				t.Errorf("Authorization = %q", got)
			}
			var req moderationRequest
			if err := json.Unmarshal(c.body, &req); err != nil {
				t.Fatalf("request body: %v", err)
			}
			if req.Model != "omni-moderation-latest" || req.Input != "an idea" {
				t.Errorf("request = %+v", req)
			}
		})
	}
}

func TestMistralModerationUsesCategories(t *testing.T) {
	// Mistral has no top-level flag; any true category flags the text.
	srv, c := newCaptureServer(t, http.StatusOK, `{"results":[{"categories":{"violence_and_threats":true,"pii":false}}]}`)
	m := newModerator(map[string]ProviderConfig{"mistral": {APIKey: "ms-key", BaseURL: srv.URL}})

	res, err := m.CheckSafety(context.Background(), "text")
	if err != nil {
		t.Fatalf("CheckSafety: %v", err)
	}
	if res.Safe {
		t.Fatal("expected flagged result")
	}
	if diff := cmp.Diff([]string{"violence and threats"}, res.Categories); diff != "" {
		t.Errorf("categories (-want +got):\n%s", diff)
	}
	var req moderationRequest
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatalf("request body: %v", err)
	}
	if req.Model != "mistral-moderation-latest" {
		t.Errorf("model = %q", req.Model)
	}
}

func TestModerationFallsBackOnError(t *testing.T) {
	openai, _ := newCaptureServer(t, http.StatusForbidden, `{"error":"no access"}`)
	mistral, mc := newCaptureServer(t, http.StatusOK, `{"results":[{"categories":{"hate":true}}]}`)
	m := newModerator(map[string]ProviderConfig{
		"openai":  {APIKey: "sk", BaseURL: openai.URL},
		"mistral": {APIKey: "ms", BaseURL: mistral.URL},
	})
	if _, ok := m.(fallbackModerator); !ok {
		t.Fatalf("moderator = %T, want fallbackModerator", m)
	}

	res, err := m.CheckSafety(context.Background(), "text")
	if err != nil {
		t.Fatalf("CheckSafety: %v", err)
	}
	if res.Safe || mc.path != "/moderations" {
		t.Errorf("expected mistral to flag the text, got %+v (path %q)", res, mc.path)
	}
}

func TestModerationAllProvidersFail(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusInternalServerError, `oops`)
	m := newModerator(map[string]ProviderConfig{"openai": {APIKey: "sk", BaseURL: srv.URL}})
	if _, err := m.CheckSafety(context.Background(), "text"); err == nil {
		t.Fatal("expected error")
	}
}

func TestRegistryCheckPrompt(t *testing.T) {
	t.Run("no moderator", func(t *testing.T) {
		r := NewRegistry("claude", map[string]ProviderConfig{"claude": {APIKey: "k"}})
		res, err := r.CheckPrompt(context.Background(), "anything")
		if err != nil || !res.Safe {
			t.Errorf("CheckPrompt = %+v, %v; want safe", res, err)
		}
	})

	t.Run("configured", func(t *testing.T) {
		srv, _ := newCaptureServer(t, http.StatusOK, `{"results":[{"flagged":true,"categories":{"harassment":true}}]}`)
		r := NewRegistry("openai", map[string]ProviderConfig{"openai": {APIKey: "k", BaseURL: srv.URL}})
		res, err := r.CheckPrompt(context.Background(), "anything")
		if err != nil {
			t.Fatalf("CheckPrompt: %v", err)
		}
		if res.Safe {
			t.Error("expected flagged result")
		}
	})
}
