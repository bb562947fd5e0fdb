// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// capture records the last request a test server received.
type capture struct {
	header http.Header
	path   string
	body   []byte
}

// newCaptureServer responds with status and body and records the request.
func newCaptureServer(t *testing.T, status int, body string) (*httptest.Server, *capture) {
	t.Helper()
	c := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.header = r.Header.Clone()
		c.path = r.URL.Path
		c.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func chatBody(text string) string {
	b, _ := json.Marshal(openAIResponse{Choices: []openAIChoice{{Message: openAIMessage{Role: "assistant", Content: text}}}})
	return string(b)
}

func claudeBody(text string) string {
	b, _ := json.Marshal(claudeResponse{Content: []claudeContentBlock{{Type: "text", Text: text}}})
	return string(b)
}

func geminiBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{"role": "model", "parts": []any{map[string]any{"text": text}}},
		}},
	})
	return string(b)
}

var slideSchema = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"slides": {Type: TypeArray, Items: &Schema{Type: TypeObject, Properties: map[string]*Schema{
			"title": {Type: TypeString},
		}}},
	},
	Required: []string{"slides"},
}

// ---------- OpenAI ----------

func TestOpenAIGenerate(t *testing.T) {
	srv, c := newCaptureServer(t, http.StatusOK, chatBody("Hello from OpenAI"))
	p := newOpenAI(ProviderConfig{APIKey: "sk-test", Model: "gpt-4o", BaseURL: srv.URL})

	got, err := p.Generate(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "Hello from OpenAI" {
		t.Errorf("got %q", got)
	}
	if c.path != "/chat/completions" {
		t.Errorf("path = %q", c.path)
	}
	if auth := c.header.Get("Authorization"); auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", auth)
	}

	var req openAIRequest
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatal(err)
	}
	if req.Model != "gpt-4o" || len(req.Messages) != 2 || req.ResponseFormat != nil {
		t.Errorf("request = %+v", req)
	}
}

func TestOpenAIGenerateJSON(t *testing.T) {
	srv, c := newCaptureServer(t, http.StatusOK, chatBody(`{"slides":[]}`))
	p := newOpenAI(ProviderConfig{APIKey: "k", Model: "gpt-4o", BaseURL: srv.URL})

	got, err := p.GenerateJSON(context.Background(), "s", "u", slideSchema)
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"slides":[]}` {
		t.Errorf("got %q", got)
	}

	var req map[string]any
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatal(err)
	}
	rf, _ := req["response_format"].(map[string]any)
	if rf["type"] != "json_schema" {
		t.Fatalf("response_format = %v", req["response_format"])
	}
	js, _ := rf["json_schema"].(map[string]any)
	schema, _ := js["schema"].(map[string]any)
	if schema["type"] != "object" {
		t.Errorf("schema = %v", js["schema"])
	}
}

func TestOpenAIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"http error", http.StatusUnauthorized, `{"error":"bad key"}`, "status 401"},
		{"error body included", http.StatusTooManyRequests, `rate limited`, "rate limited"},
		{"malformed json", http.StatusOK, `{not json`, "openai unmarshal"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no choices"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newCaptureServer(t, tt.status, tt.body)
			p := newOpenAI(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
			_, err := p.Generate(context.Background(), "s", "u")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestOpenAICancelledContext(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusOK, chatBody("late"))
	p := newOpenAI(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Generate(ctx, "s", "u"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestOpenAIDefaultBaseURL(t *testing.T) {
	p := newOpenAI(ProviderConfig{APIKey: "k"})
	if p.config.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL = %q", p.config.BaseURL)
	}
}

// ---------- Mistral ----------

func TestMistralGenerateJSON(t *testing.T) {
	srv, c := newCaptureServer(t, http.StatusOK, chatBody(`{"slides":[]}`))
	p := newMistral(ProviderConfig{APIKey: "mk", Model: "mistral-large-latest", BaseURL: srv.URL})

	if _, err := p.GenerateJSON(context.Background(), "Write slides.", "u", slideSchema); err != nil {
		t.Fatal(err)
	}

	var req openAIRequest
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatal(err)
	}
	if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format = %+v", req.ResponseFormat)
	}
	if !strings.Contains(req.Messages[0].Content, `"slides"`) {
		t.Errorf("system prompt does not describe schema: %q", req.Messages[0].Content)
	}
	if c.header.Get("Authorization") != "Bearer mk" {
		t.Errorf("Authorization = %q", c.header.Get("Authorization"))
	}
}

func TestMistralGenerateAndDefaults(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusOK, chatBody("bonjour"))
	p := newMistral(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	if got, err := p.Generate(context.Background(), "s", "u"); err != nil || got != "bonjour" {
		t.Errorf("Generate = %q, %v", got, err)
	}
	if p.Name() != "mistral" {
		t.Errorf("Name = %q", p.Name())
	}
	if d := newMistral(ProviderConfig{}); d.inner.config.BaseURL != "https://api.mistral.ai/v1" {
		t.Errorf("default BaseURL = %q", d.inner.config.BaseURL)
	}
}

// ---------- Claude ----------

func TestClaudeGenerate(t *testing.T) {
	srv, c := newCaptureServer(t, http.StatusOK, claudeBody("Hello from Claude"))
	p := newClaude(ProviderConfig{APIKey: "ck", Model: "claude-sonnet-4", BaseURL: srv.URL})

	got, err := p.Generate(context.Background(), "sys", "hi")
	if err != nil || got != "Hello from Claude" {
		t.Fatalf("Generate = %q, %v", got, err)
	}
	if c.path != "/v1/messages" {
		t.Errorf("path = %q", c.path)
	}
	if c.header.Get("x-api-key") != "ck" || c.header.Get("anthropic-version") != "2023-06-01" {
		t.Errorf("headers = %v", c.header)
	}

	var req claudeRequest
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatal(err)
	}
	if req.System != "sys" || req.MaxTokens != 4096 || len(req.Messages) != 1 {
		t.Errorf("request = %+v", req)
	}
}

func TestClaudeGenerateJSONPrefill(t *testing.T) {
	srv, c := newCaptureServer(t, http.StatusOK, claudeBody(`"slides":[]}`))
	p := newClaude(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})

	got, err := p.GenerateJSON(context.Background(), "sys", "u", slideSchema)
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"slides":[]}` {
		t.Errorf("got %q", got)
	}

	var req claudeRequest
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatal(err)
	}
	if n := len(req.Messages); n != 2 || req.Messages[1].Role != "assistant" || req.Messages[1].Content != "{" {
		t.Errorf("messages = %+v", req.Messages)
	}
}

func TestClaudeErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"http error", http.StatusBadRequest, `{"type":"error"}`, "status 400"},
		{"malformed json", http.StatusOK, `nope`, "claude unmarshal"},
		{"no text block", http.StatusOK, `{"content":[{"type":"tool_use"}]}`, "no text content"},
		{"empty content", http.StatusOK, `{"content":[]}`, "no text content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newCaptureServer(t, tt.status, tt.body)
			p := newClaude(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
			_, err := p.Generate(context.Background(), "s", "u")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

// ---------- Gemini ----------

func newTestGemini(t *testing.T, cfg ProviderConfig) *geminiProvider {
	t.Helper()
	p, err := newGemini(context.Background(), cfg)
	if err != nil {
		t.Fatalf("newGemini: %v", err)
	}
	return p
}

func TestGeminiGenerate(t *testing.T) {
	srv, c := newCaptureServer(t, http.StatusOK, geminiBody("Hello from Gemini"))
	p := newTestGemini(t, ProviderConfig{APIKey: "gk", Model: "gemini-2.5-flash", BaseURL: srv.URL})

	got, err := p.Generate(context.Background(), "sys", "hi")
	if err != nil || got != "Hello from Gemini" {
		t.Fatalf("Generate = %q, %v", got, err)
	}
	if !strings.HasSuffix(c.path, "/models/gemini-2.5-flash:generateContent") {
		t.Errorf("path = %q", c.path)
	}
	if c.header.Get("x-goog-api-key") != "gk" {
		t.Errorf("x-goog-api-key = %q", c.header.Get("x-goog-api-key"))
	}

	var req map[string]any
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatal(err)
	}
	if _, ok := req["systemInstruction"]; !ok {
		t.Errorf("request has no systemInstruction: %s", c.body)
	}
}

func TestGeminiGenerateJSON(t *testing.T) {
	srv, c := newCaptureServer(t, http.StatusOK, geminiBody(`{"slides":[]}`))
	p := newTestGemini(t, ProviderConfig{APIKey: "gk", Model: "gemini-2.5-flash", BaseURL: srv.URL})

	got, err := p.GenerateJSON(context.Background(), "sys", "u", slideSchema)
	if err != nil || got != `{"slides":[]}` {
		t.Fatalf("GenerateJSON = %q, %v", got, err)
	}

	var req struct {
		GenerationConfig struct {
			ResponseMIMEType string         `json:"responseMimeType"`
			ResponseSchema   map[string]any `json:"responseSchema"`
		} `json:"generationConfig"`
	}
	if err := json.Unmarshal(c.body, &req); err != nil {
		t.Fatal(err)
	}
	if req.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Errorf("responseMimeType = %q", req.GenerationConfig.ResponseMIMEType)
	}
	if req.GenerationConfig.ResponseSchema["type"] != "OBJECT" {
		t.Errorf("responseSchema = %v", req.GenerationConfig.ResponseSchema)
	}
}

func TestGeminiErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusForbidden, `{"error":{"code":403,"message":"denied"}}`},
		{"no candidates", http.StatusOK, `{"candidates":[]}`},
		{"empty parts", http.StatusOK, `{"candidates":[{"content":{"parts":[]}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newCaptureServer(t, tt.status, tt.body)
			p := newTestGemini(t, ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
			if _, err := p.Generate(context.Background(), "s", "u"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGeminiGenerateImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	body, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{"parts": []any{
				map[string]any{"text": "here you go"},
				map[string]any{"inlineData": map[string]any{
					"mimeType": "image/png",
					"data":     base64.StdEncoding.EncodeToString(png),
				}},
			}},
		}},
	})
	srv, c := newCaptureServer(t, http.StatusOK, string(body))

	t.Run("requires image model", func(t *testing.T) {
		p := newTestGemini(t, ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
		if _, _, err := p.GenerateImage(context.Background(), "forest"); err == nil {
			t.Error("expected error without ModelImage")
		}
	})

	t.Run("returns inline data", func(t *testing.T) {
		p := newTestGemini(t, ProviderConfig{APIKey: "k", Model: "m", ModelImage: "gemini-2.5-flash-image", BaseURL: srv.URL})
		data, ct, err := p.GenerateImage(context.Background(), "forest")
		if err != nil {
			t.Fatal(err)
		}
		if ct != "image/png" || string(data) != string(png) {
			t.Errorf("got %q %v", ct, data)
		}
		if !strings.Contains(c.path, "gemini-2.5-flash-image") {
			t.Errorf("path = %q", c.path)
		}
	})
}

func TestToGenaiSchemaNil(t *testing.T) {
	if toGenaiSchema(nil) != nil {
		t.Error("nil schema should convert to nil")
	}
	s := toGenaiSchema(slideSchema)
	if s.Properties["slides"].Items.Properties["title"] == nil {
		t.Error("nested properties lost")
	}
}
