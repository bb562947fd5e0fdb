// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"slidesmith/internal/content"
	"slidesmith/internal/models"
	"slidesmith/internal/palette"
	"slidesmith/internal/slides"
)

type formatInfo struct {
	Key         models.Format      `json:"key"`
	Label       string             `json:"label"`
	Kind        models.FormatKind  `json:"kind"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Orientation models.Orientation `json:"orientation"`
}

type catalogResponse struct {
	Tones     []content.ToneInfo  `json:"tones"`
	Formats   []formatInfo        `json:"formats"`
	Fonts     []models.FontFamily `json:"fonts"`
	Templates []slides.Template   `json:"templates"`
	Gradients []palette.Gradient  `json:"gradients"`
	Presets   []palette.Preset    `json:"presets"`
	Limits    map[string]int      `json:"limits"`
}

// Health answers liveness probes.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": a.sessions.Len(),
	})
}

// Catalog lists everything the editor offers in pickers.
func (a *API) Catalog(w http.ResponseWriter, r *http.Request) {
	formats := make([]formatInfo, 0, len(models.AllFormats))
	for _, f := range models.AllFormats {
		c := f.Canvas()
		formats = append(formats, formatInfo{
			Key:         f,
			Label:       f.Label(),
			Kind:        f.Kind(),
			Width:       c.Width,
			Height:      c.Height,
			Orientation: c.Orientation(),
		})
	}
	writeJSON(w, http.StatusOK, catalogResponse{
		Tones:     content.Tones,
		Formats:   formats,
		Fonts:     models.FontFamilies,
		Templates: slides.Templates,
		Gradients: palette.Gradients,
		Presets:   palette.Presets,
		Limits:    map[string]int{"min_slides": slides.MinSlides, "max_slides": slides.MaxSlides},
	})
}

type providersResponse struct {
	Active          string   `json:"active"`
	Available       []string `json:"available"`
	ImageGeneration bool     `json:"image_generation"`
}

// Providers reports the active AI provider and the configured ones.
func (a *API) Providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, providersResponse{
		Active:          a.ai.ActiveName(),
		Available:       a.ai.Available(),
		ImageGeneration: a.ai.SupportsImageGeneration(),
	})
}

// SetProvider switches the active AI provider at runtime.
func (a *API) SetProvider(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider string `json:"provider"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	name := strings.TrimSpace(req.Provider)
	if name == "" {
		writeError(w, http.StatusBadRequest, "No provider specified.")
		return
	}
	if err := a.ai.SetActive(name); err != nil {
		slog.Warn("failed to switch AI provider", "provider", name, "error", err)
		writeError(w, http.StatusBadRequest, "provider not available")
		return
	}
	slog.Info("ai provider switched", "provider", name)
	a.Providers(w, r)
}
