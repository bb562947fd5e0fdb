// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/image/draw"

	"slidesmith/internal/ai"
	"slidesmith/internal/models"
	"slidesmith/internal/render"
	"slidesmith/internal/slides"
)

// minPreviewWidth is the smallest preview the API will scale down to.
const minPreviewWidth = 64

// UploadBackground adds an image to the session's library and, when a
// target is given, sets it as the background of one slide or all slides.
func (a *API) UploadBackground(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Image   string `json:"image"`
		SlideID string `json:"slide_id"`
		All     bool   `json:"all"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validateImage(req.Image); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	s.AddImage(req.Image)
	changed := false
	if req.All || req.SlideID != "" {
		changed = s.Edit(func(c *slides.Collection) bool {
			return c.ApplyUploadedBackground(req.Image, req.SlideID, req.All)
		})
	}
	a.writeMutation(w, s, changed)
}

// GenerateBackground asks the AI provider for an image from the slide's
// image prompt and uses it as the slide's generated background.
func (a *API) GenerateBackground(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "slideID")
	slide, _, found := s.Slide(id)
	if !found {
		writeError(w, http.StatusNotFound, "slide not found")
		return
	}
	prompt := strings.TrimSpace(slide.ImagePrompt)
	if prompt == "" {
		writeError(w, http.StatusBadRequest, "Slide has no image prompt.")
		return
	}
	if !a.ai.SupportsImageGeneration() {
		writeError(w, http.StatusServiceUnavailable, "image generation is not available")
		return
	}

	data, mime, err := a.ai.GenerateImage(r.Context(), prompt)
	if err != nil {
		slog.Error("ai generate image failed", "session", s.ID(), "slide", id, "error", err)
		if errors.Is(err, ai.ErrImageUnsupported) {
			writeError(w, http.StatusServiceUnavailable, "image generation is not available")
			return
		}
		writeError(w, http.StatusBadGateway, "image generation failed")
		return
	}
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	bg := models.GeneratedAssetBackground("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data))
	changed := s.Edit(func(c *slides.Collection) bool {
		return c.Update(id, models.Patch{Background: &bg})
	})
	a.writeMutation(w, s, changed)
}

// Preview renders one slide as PNG at the session's canvas size, or scaled
// down to ?width= pixels wide.
func (a *API) Preview(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "slideID")
	slide, index, found := s.Slide(id)
	if !found {
		writeError(w, http.StatusNotFound, "slide not found")
		return
	}
	project := s.Project()
	canvas := project.Format.Canvas()

	img, err := a.renderer.Render(r.Context(), slide, project, render.Frame{
		Canvas: canvas,
		Index:  index,
		Total:  len(s.Slides()),
	})
	if err != nil {
		slog.Error("render preview", "session", s.ID(), "slide", id, "error", err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	var out image.Image = img
	if v := r.URL.Query().Get("width"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil || width < minPreviewWidth {
			writeError(w, http.StatusBadRequest, "width must be an integer of at least 64")
			return
		}
		if width < canvas.Width {
			height := canvas.Height * width / canvas.Width
			scaled := image.NewRGBA(image.Rect(0, 0, width, height))
			draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
			out = scaled
		}
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, out); err != nil {
		writeError(w, http.StatusInternalServerError, "encode failed")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}
