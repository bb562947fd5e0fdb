// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"slidesmith/internal/models"
	"slidesmith/internal/slides"
)

// Slide operations answer 200 with changed=false when the collection
// rejects them (bounds, unknown ids); only malformed requests are errors.

// indexParam parses the {index} URL parameter.
func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "slide index must be an integer")
		return 0, false
	}
	return i, true
}

// InsertSlide adds a placeholder slide after the given index. The new
// slide copies the style of basis_id when given, otherwise that of the
// slide at the index (or the first slide for an out-of-range index).
func (a *API) InsertSlide(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var req struct {
		After   *int   `json:"after"`
		BasisID string `json:"basis_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	changed := s.Edit(func(c *slides.Collection) bool {
		after := c.Selected()
		if req.After != nil {
			after = *req.After
		}
		var basis *models.Slide
		if req.BasisID != "" {
			if b, _, found := c.Find(req.BasisID); found {
				basis = &b
			}
		}
		if basis == nil {
			b, found := c.At(after)
			if !found {
				b, found = c.At(0)
			}
			if found {
				basis = &b
			}
		}
		return c.InsertAfter(after, basis)
	})
	a.writeMutation(w, s, changed)
}

// DuplicateSlide clones the slide at {index}.
func (a *API) DuplicateSlide(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	i, ok := indexParam(w, r)
	if !ok {
		return
	}
	a.writeMutation(w, s, s.Edit(func(c *slides.Collection) bool { return c.Duplicate(i) }))
}

// DeleteSlide removes the slide at {index}.
func (a *API) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	i, ok := indexParam(w, r)
	if !ok {
		return
	}
	a.writeMutation(w, s, s.Edit(func(c *slides.Collection) bool { return c.Delete(i) }))
}

// MoveSlide reorders one slide.
func (a *API) MoveSlide(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	a.writeMutation(w, s, s.Edit(func(c *slides.Collection) bool { return c.Move(req.From, req.To) }))
}

// SelectSlide changes the selected slide.
func (a *API) SelectSlide(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Index int `json:"index"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	a.writeMutation(w, s, s.Edit(func(c *slides.Collection) bool { return c.Select(req.Index) }))
}

// UpdateSlide merges a patch into the slide {slideID}.
func (a *API) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var p models.Patch
	if !decodeJSON(w, r, &p) {
		return
	}
	if msg := validatePatch(p); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	id := chi.URLParam(r, "slideID")
	a.writeMutation(w, s, s.Edit(func(c *slides.Collection) bool { return c.Update(id, p) }))
}

type styleRequest struct {
	Patch   models.Patch `json:"patch"`
	SlideID string       `json:"slide_id"`
	All     bool         `json:"all"`
}

// ApplyStyle applies a style patch to one slide or, with all set, to every
// slide. Text fields in the patch are ignored.
func (a *API) ApplyStyle(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var req styleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validatePatch(req.Patch); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	changed := s.Edit(func(c *slides.Collection) bool {
		if req.All {
			return c.ApplyToAll(req.Patch)
		}
		return c.ApplyToOne(req.SlideID, req.Patch)
	})
	a.writeMutation(w, s, changed)
}

// ApplyTemplate applies a named template.
func (a *API) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Name    string `json:"name"`
		SlideID string `json:"slide_id"`
		All     bool   `json:"all"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	changed, err := s.EditErr(func(c *slides.Collection) (bool, error) {
		return c.ApplyTemplate(req.Name, req.SlideID, req.All)
	})
	if errors.Is(err, slides.ErrUnknownTemplate) {
		writeError(w, http.StatusBadRequest, "Unknown template.")
		return
	}
	a.writeMutation(w, s, changed)
}

// ResetTextStyle restores default typography on {slideID}.
func (a *API) ResetTextStyle(w http.ResponseWriter, r *http.Request) {
	s, ok := a.session(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "slideID")
	a.writeMutation(w, s, s.Edit(func(c *slides.Collection) bool { return c.ResetTextStyle(id) }))
}
