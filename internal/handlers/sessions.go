// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"slidesmith/internal/compose"
	"slidesmith/internal/content"
	"slidesmith/internal/editor"
	"slidesmith/internal/models"
)

type createSessionRequest struct {
	Idea       string `json:"idea"`
	Tone       string `json:"tone"`
	Format     string `json:"format"`
	AuthorName string `json:"author_name"`
}

type generationResponse struct {
	// Fallback is set when generation failed and the fixed error slides
	// were loaded instead.
	Fallback bool            `json:"fallback"`
	Session  editor.Snapshot `json:"session"`
}

// CreateSession generates slides from an idea and opens a session on them.
// Generation failures still create the session, loaded with fallback
// slides.
func (a *API) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateIdea(req.Idea); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	project := models.DefaultProjectSettings()
	if req.Format != "" {
		f, err := models.ParseFormat(req.Format)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unknown format.")
			return
		}
		project.Format = f
	}
	if req.AuthorName != "" {
		project.AuthorName = req.AuthorName
	}
	if msg := validateProject(project); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	idea := strings.TrimSpace(req.Idea)
	tone := content.ParseTone(req.Tone)
	generated := a.content.GenerateFromIdea(r.Context(), idea, tone)

	s := a.sessions.Create()
	if err := s.Load(generated, idea, tone); err != nil {
		slog.Error("load generated slides", "session", s.ID(), "error", err)
		_ = a.sessions.Delete(s.ID())
		writeError(w, http.StatusInternalServerError, "generation failed")
		return
	}
	if err := s.SetProject(project); err != nil {
		slog.Error("set project", "session", s.ID(), "error", err)
	}

	slog.Info("session created", "session", s.ID(), "tone", tone, "slides", len(generated))
	writeJSON(w, http.StatusCreated, generationResponse{
		Fallback: content.IsFallback(generated),
		Session:  s.Snapshot(),
	})
}

// GetSession returns the session snapshot.
func (a *API) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// DeleteSession ends a session.
func (a *API) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Delete(chi.URLParam(r, "sessionID")); err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleTheme flips the editor theme.
func (a *API) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]models.Theme{"theme": s.ToggleTheme()})
}

// UpdateProject replaces the brand settings.
func (a *API) UpdateProject(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	p := s.Project()
	if !decodeJSON(w, r, &p) {
		return
	}
	if msg := validateProject(p); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err := s.SetProject(p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a.writeMutation(w, s, true)
}

// Regenerate rewrites the whole slide list from the current slides. The
// tone defaults to the one the session was generated with. With
// source "thread" the slides are sent as a numbered thread.
func (a *API) Regenerate(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Tone   string `json:"tone"`
		Source string `json:"source"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	title, body := s.RegenerationSource()
	if req.Source == "thread" && body != "" {
		title = compose.ThreadRegenerateTitle
		body = compose.ThreadText(compose.Thread(s.Slides()))
	}
	if title == "" && body == "" {
		writeError(w, http.StatusConflict, "session has no slides")
		return
	}
	tone := s.Tone()
	if req.Tone != "" {
		tone = content.ParseTone(req.Tone)
	}

	generated := a.content.RegenerateFromPost(r.Context(), title, body, tone)
	if err := s.Load(generated, "", tone); err != nil {
		slog.Error("load regenerated slides", "session", s.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, "regeneration failed")
		return
	}
	writeJSON(w, http.StatusOK, generationResponse{
		Fallback: content.IsFallback(generated),
		Session:  s.Snapshot(),
	})
}

type hashtagsResponse struct {
	Hashtags []string `json:"hashtags"`
	// Line is the copy-ready form: "#one #two".
	Line string `json:"line"`
}

// Hashtags generates hashtags for the given text, or for the session's
// post text when none is given.
func (a *API) Hashtags(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		text = compose.Post(s.Slides(), nil).PlainText()
	}
	if utf8.RuneCountInString(text) > maxHashtagTextLen {
		writeError(w, http.StatusBadRequest, "Text is too long.")
		return
	}

	tags := a.content.GenerateHashtags(r.Context(), text)
	s.SetHashtags(tags)
	writeJSON(w, http.StatusOK, hashtagsResponse{Hashtags: tags, Line: compose.HashtagLine(tags)})
}
