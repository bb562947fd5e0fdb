// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP API over editing sessions:
// generation, slide editing, previews, exports and text formats.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"slidesmith/internal/content"
	"slidesmith/internal/editor"
	"slidesmith/internal/export"
	"slidesmith/internal/render"
	"slidesmith/internal/storage"
)

// maxBodyBytes bounds request bodies; uploads arrive as data URLs.
const maxBodyBytes = 12 << 20

// AIRegistry is the part of ai.Registry the API uses directly: provider
// switching and background image generation.
type AIRegistry interface {
	ActiveName() string
	Available() []string
	SetActive(name string) error
	SupportsImageGeneration() bool
	GenerateImage(ctx context.Context, prompt string) ([]byte, string, error)
}

// Publisher uploads export artifacts and returns a link to them.
type Publisher interface {
	Publish(ctx context.Context, filename, contentType string, data []byte) (*storage.Published, error)
}

// Deps are the collaborators of the API. Publisher may be nil when object
// storage is not configured.
type Deps struct {
	Sessions  *editor.Manager
	Content   *content.Client
	AI        AIRegistry
	Renderer  *render.Renderer
	Exports   *export.Pipeline
	Publisher Publisher
}

// API groups the HTTP handlers.
type API struct {
	sessions  *editor.Manager
	content   *content.Client
	ai        AIRegistry
	renderer  *render.Renderer
	exports   *export.Pipeline
	publisher Publisher
}

// NewAPI creates the API handlers.
func NewAPI(d Deps) *API {
	return &API{
		sessions:  d.Sessions,
		content:   d.Content,
		ai:        d.AI,
		renderer:  d.Renderer,
		exports:   d.Exports,
		publisher: d.Publisher,
	}
}

// mutationResponse is returned by every editing operation. Changed is
// false when the operation was rejected as a no-op.
type mutationResponse struct {
	Changed bool             `json:"changed"`
	Session editor.Snapshot `json:"session"`
}

// session resolves the {sessionID} URL parameter, writing a 404 when it is
// unknown.
func (a *API) session(w http.ResponseWriter, r *http.Request) (*editor.Session, bool) {
	s, err := a.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return s, true
}

func (a *API) writeMutation(w http.ResponseWriter, s *editor.Session, changed bool) {
	writeJSON(w, http.StatusOK, mutationResponse{Changed: changed, Session: s.Snapshot()})
}

// decodeJSON reads a JSON request body into dst. An empty body leaves dst
// untouched. On failure it writes a 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
	return false
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("write json response", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
