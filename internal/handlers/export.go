// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"slidesmith/internal/compose"
	"slidesmith/internal/export"
	"slidesmith/internal/models"
	"slidesmith/internal/slug"
	"slidesmith/internal/storage"
)

const (
	defaultExportName = "slidesmith-project"
	defaultPostName   = "slidesmith-post"
)

type exportRequest struct {
	Kind    string `json:"kind"`
	Publish bool   `json:"publish"`
}

type publishedResponse struct {
	*storage.Published
	Filename    string             `json:"filename"`
	Kind        export.Kind        `json:"kind"`
	Pages       int                `json:"pages"`
	Orientation models.Orientation `json:"orientation"`
}

// Export rasterizes every slide and returns a PNG archive or a PDF. With
// publish set, the artifact is uploaded and a link is returned instead.
// Only one export per session runs at a time.
func (a *API) Export(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var req exportRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	kind, err := export.ParseKind(req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, "kind must be images or document")
		return
	}
	if req.Publish && a.publisher == nil {
		writeError(w, http.StatusServiceUnavailable, "publishing is not configured")
		return
	}

	done, err := s.BeginExport()
	if err != nil {
		writeError(w, http.StatusConflict, "an export is already running")
		return
	}
	defer done()

	// One snapshot so slides and project come from the same session state.
	snap := s.Snapshot()
	if len(snap.Slides) == 0 {
		writeError(w, http.StatusConflict, "session has no slides")
		return
	}
	name := slug.Filename(snap.Slides[0].Title, defaultExportName)

	artifact, err := a.exports.Export(r.Context(), kind, name, snap.Slides, snap.Project)
	if err != nil {
		slog.Error("export failed", "session", s.ID(), "kind", kind, "error", err)
		if errors.Is(err, export.ErrNothingToExport) {
			writeError(w, http.StatusConflict, "session has no slides")
			return
		}
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	if req.Publish {
		pub, err := a.publisher.Publish(r.Context(), artifact.Filename, artifact.ContentType, artifact.Data)
		if err != nil {
			slog.Error("publish export", "session", s.ID(), "error", err)
			writeError(w, http.StatusBadGateway, "publish failed")
			return
		}
		slog.Info("export published", "session", s.ID(), "key", pub.Key)
		writeJSON(w, http.StatusOK, publishedResponse{
			Published:   pub,
			Filename:    artifact.Filename,
			Kind:        artifact.Kind,
			Pages:       artifact.Pages,
			Orientation: artifact.Orientation,
		})
		return
	}

	w.Header().Set("X-Export-Pages", strconv.Itoa(artifact.Pages))
	w.Header().Set("X-Export-Orientation", string(artifact.Orientation))
	writeAttachment(w, artifact.Filename, artifact.ContentType, artifact.Data)
}

type composeResponse struct {
	Format   models.Format         `json:"format"`
	Markdown string                `json:"markdown"`
	HTML     string                `json:"html"`
	Text     string                `json:"text"`
	Entries  []compose.ThreadEntry `json:"entries,omitempty"`
}

// Compose renders the session's slides as a text format: post, threads or
// newsletter.
func (a *API) Compose(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	format, err := models.ParseFormat(chi.URLParam(r, "format"))
	if err != nil || format.Kind() != models.KindText {
		writeError(w, http.StatusBadRequest, "format must be post, threads or newsletter")
		return
	}

	snap := s.Snapshot()
	list := snap.Slides
	resp := composeResponse{Format: format}
	switch format {
	case models.FormatThreads:
		entries := compose.Thread(list)
		resp.Entries = entries
		resp.Markdown = compose.ThreadMarkdown(entries)
		resp.Text = compose.ThreadText(entries)
	case models.FormatNewsletter:
		doc := compose.Newsletter(list)
		resp.Markdown = doc.Markdown()
		resp.Text = doc.PlainText()
	default:
		doc := compose.Post(list, snap.Hashtags)
		resp.Markdown = doc.Markdown()
		resp.Text = doc.PlainText()
	}

	html, err := compose.HTML(resp.Markdown, snap.Theme)
	if err != nil {
		slog.Error("compose html", "session", s.ID(), "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "compose failed")
		return
	}
	resp.HTML = html
	writeJSON(w, http.StatusOK, resp)
}

// PostPDF exports the session as an A4 text-post document.
func (a *API) PostPDF(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	snap := s.Snapshot()
	list := snap.Slides
	doc := compose.Post(list, snap.Hashtags)

	start := time.Now()
	data, err := export.PostPDF(doc, snap.Project.AuthorName)
	if err != nil {
		slog.Error("post pdf failed", "session", s.ID(), "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	slog.Info("post pdf exported", "session", s.ID(), "bytes", len(data), "duration", time.Since(start))

	name := defaultPostName
	if len(list) > 0 {
		name = slug.Filename(list[0].Title, defaultPostName)
	}
	writeAttachment(w, name+".pdf", "application/pdf", data)
}

func writeAttachment(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
