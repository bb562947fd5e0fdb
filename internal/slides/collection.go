// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slides implements the slide collection of an editing session: an
// ordered list of 1 to 10 slide records plus the selected index.
//
// Operations that would break the bounds, or that reference an unknown id,
// are no-ops. Each mutating method reports whether anything changed, so
// callers can tell a rejection from a success without an error value.
// A Collection is not safe for concurrent use.
package slides

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"slidesmith/internal/models"
)

// ErrEmptyContent is returned by Ingest for an empty generation result.
var ErrEmptyContent = errors.New("generated content is empty")

// Collection is the ordered slide list of one editing session.
type Collection struct {
	slides   []models.Slide
	selected int
	newID    func() string
}

// New returns an empty collection. It holds no slides until Ingest.
func New() *Collection {
	return &Collection{newID: uuid.NewString}
}

// Len returns the number of slides.
func (c *Collection) Len() int { return len(c.slides) }

// Selected returns the selected index.
func (c *Collection) Selected() int { return c.selected }

// Slides returns a deep copy of the slide list.
func (c *Collection) Slides() []models.Slide {
	out := make([]models.Slide, len(c.slides))
	for i, s := range c.slides {
		out[i] = s.Clone()
	}
	return out
}

// At returns a copy of the slide at index i.
func (c *Collection) At(i int) (models.Slide, bool) {
	if i < 0 || i >= len(c.slides) {
		return models.Slide{}, false
	}
	return c.slides[i].Clone(), true
}

// Find returns a copy of the slide with the given id and its index.
func (c *Collection) Find(id string) (models.Slide, int, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return models.Slide{}, -1, false
	}
	return c.slides[i].Clone(), i, true
}

func (c *Collection) indexOf(id string) int {
	for i := range c.slides {
		if c.slides[i].ID == id {
			return i
		}
	}
	return -1
}

// Ingest replaces the whole list with one default-styled slide per
// generated tuple and selects the first slide. Tuples past MaxSlides are
// dropped.
func (c *Collection) Ingest(generated models.GeneratedContent) error {
	if len(generated) == 0 {
		return ErrEmptyContent
	}
	if len(generated) > MaxSlides {
		generated = generated[:MaxSlides]
	}
	next := make([]models.Slide, 0, len(generated))
	for _, g := range generated {
		s := models.Slide{
			ID:                c.newID(),
			Title:             g.Title,
			Content:           g.Content,
			HighlightKeywords: models.CleanKeywords(g.HighlightKeywords),
			ImagePrompt:       g.ImagePrompt,
		}
		applyDefaultStyle(&s)
		next = append(next, s)
	}
	c.slides = next
	c.selected = 0
	return nil
}

// InsertAfter adds a placeholder slide right after index and selects it.
// Style fields are copied from basis when given; a nil basis gets the
// collection defaults. An out-of-range index is clamped to the list.
func (c *Collection) InsertAfter(index int, basis *models.Slide) bool {
	if len(c.slides) >= MaxSlides {
		return false
	}
	index = c.clamp(index)
	id := c.newID()
	s := models.Slide{
		ID:                id,
		Title:             NewSlideTitle,
		Content:           NewSlideContent,
		HighlightKeywords: []string{},
		ImagePrompt:       fmt.Sprintf("abstract design %s", id),
	}
	if basis != nil {
		s.CopyStyle(*basis)
	} else {
		applyDefaultStyle(&s)
	}
	c.insert(index+1, s)
	return true
}

// Duplicate clones the slide at index under a new id, inserts the clone
// right after it and selects it.
func (c *Collection) Duplicate(index int) bool {
	if len(c.slides) >= MaxSlides || index < 0 || index >= len(c.slides) {
		return false
	}
	s := c.slides[index].Clone()
	s.ID = c.newID()
	c.insert(index+1, s)
	return true
}

func (c *Collection) insert(at int, s models.Slide) {
	if at > len(c.slides) {
		at = len(c.slides)
	}
	c.slides = append(c.slides, models.Slide{})
	copy(c.slides[at+1:], c.slides[at:])
	c.slides[at] = s
	c.selected = at
}

// Delete removes the slide at index, clamping an out-of-range index to the
// list. The selection moves to the previous slide, floored at 0.
func (c *Collection) Delete(index int) bool {
	if len(c.slides) <= MinSlides {
		return false
	}
	index = c.clamp(index)
	c.slides = append(c.slides[:index], c.slides[index+1:]...)
	c.selected = max(0, index-1)
	return true
}

// Move relocates the slide at from to position to. The moved slide stays
// selected.
func (c *Collection) Move(from, to int) bool {
	n := len(c.slides)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	s := c.slides[from]
	c.slides = append(c.slides[:from], c.slides[from+1:]...)
	c.slides = append(c.slides, models.Slide{})
	copy(c.slides[to+1:], c.slides[to:])
	c.slides[to] = s
	c.selected = to
	return true
}

// Select changes the selected index.
func (c *Collection) Select(index int) bool {
	if index < 0 || index >= len(c.slides) || index == c.selected {
		return false
	}
	c.selected = index
	return true
}

// Update merges p into the slide with the given id.
func (c *Collection) Update(id string, p models.Patch) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	p.Apply(&c.slides[i])
	return true
}

// ApplyToAll merges the style fields of p into every slide. Text fields of
// p are ignored.
func (c *Collection) ApplyToAll(p models.Patch) bool {
	if len(c.slides) == 0 {
		return false
	}
	p = p.StyleOnly()
	for i := range c.slides {
		p.Apply(&c.slides[i])
	}
	return true
}

// ApplyToOne merges the style fields of p into the slide with the given id.
func (c *Collection) ApplyToOne(id string, p models.Patch) bool {
	return c.Update(id, p.StyleOnly())
}

// ApplyTemplate applies the named template to one slide, or to every slide
// when all is set.
func (c *Collection) ApplyTemplate(name, id string, all bool) (bool, error) {
	t, ok := LookupTemplate(name)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	if all {
		return c.ApplyToAll(t.Patch()), nil
	}
	return c.ApplyToOne(id, t.Patch()), nil
}

// ApplyUploadedBackground sets a user image as the background of one slide,
// or of every slide when all is set.
func (c *Collection) ApplyUploadedBackground(image, id string, all bool) bool {
	if image == "" {
		return false
	}
	bg := models.UploadedBackground(image)
	p := models.Patch{Background: &bg}
	if all {
		return c.ApplyToAll(p)
	}
	return c.ApplyToOne(id, p)
}

// ResetTextStyle restores default typography on the slide with the given id.
func (c *Collection) ResetTextStyle(id string) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	resetTextStyle(&c.slides[i])
	return true
}

func (c *Collection) clamp(index int) int {
	if index < 0 {
		return 0
	}
	if n := len(c.slides); index >= n && n > 0 {
		return n - 1
	}
	return index
}
