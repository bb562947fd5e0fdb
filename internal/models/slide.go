// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data types shared across slidesmith: slide
// records and their styling, project settings, output formats, and the
// content handed over by the generation service.
package models

// TextAlign is the horizontal alignment of a text block.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// Valid reports whether a is one of the known alignments.
func (a TextAlign) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}

// VAlign is the vertical placement of the title/content block.
type VAlign string

const (
	VAlignStart  VAlign = "start"
	VAlignCenter VAlign = "center"
	VAlignEnd    VAlign = "end"
)

// Valid reports whether v is one of the known vertical alignments.
func (v VAlign) Valid() bool {
	switch v {
	case VAlignStart, VAlignCenter, VAlignEnd:
		return true
	}
	return false
}

// FontFamily names a font choice offered by the editor.
type FontFamily string

const (
	FontBebas         FontFamily = "bebas"
	FontInter         FontFamily = "inter"
	FontRaleway       FontFamily = "raleway"
	FontSourceCodePro FontFamily = "source-code-pro"
)

// FontFamilies lists every selectable font family.
var FontFamilies = []FontFamily{FontBebas, FontInter, FontRaleway, FontSourceCodePro}

// Valid reports whether f is a known font family.
func (f FontFamily) Valid() bool {
	for _, known := range FontFamilies {
		if f == known {
			return true
		}
	}
	return false
}

// TextStyle holds the per-block typography of a slide. An empty Color means
// "no override": the renderer derives one from the background luminance.
type TextStyle struct {
	Font   FontFamily `json:"font"`
	Size   float64    `json:"size"`
	Color  string     `json:"color,omitempty"`
	Bold   bool       `json:"bold"`
	Italic bool       `json:"italic"`
	Align  TextAlign  `json:"align"`
}

// Slide is one editable slide record: text, styling and background.
type Slide struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	HighlightKeywords []string   `json:"highlight_keywords"`
	ImagePrompt       string     `json:"image_prompt"`
	Background        Background `json:"background"`
	HighlightColor    string     `json:"highlight_color"`
	TitleStyle        TextStyle  `json:"title_style"`
	ContentStyle      TextStyle  `json:"content_style"`
	ContentLineHeight float64    `json:"content_line_height"`
	VAlign            VAlign     `json:"valign"`
}

// Clone returns a deep copy of the slide.
func (s Slide) Clone() Slide {
	c := s
	if s.HighlightKeywords != nil {
		c.HighlightKeywords = append([]string(nil), s.HighlightKeywords...)
	}
	return c
}

// CopyStyle copies every styling and background field from src, leaving
// identity and text untouched.
func (s *Slide) CopyStyle(src Slide) {
	s.Background = src.Background
	s.HighlightColor = src.HighlightColor
	s.TitleStyle = src.TitleStyle
	s.ContentStyle = src.ContentStyle
	s.ContentLineHeight = src.ContentLineHeight
	s.VAlign = src.VAlign
}

// GeneratedSlide is one tuple returned by the generation service.
type GeneratedSlide struct {
	Title             string   `json:"title"`
	Content           string   `json:"content"`
	HighlightKeywords []string `json:"highlight_keywords"`
	ImagePrompt       string   `json:"image_prompt"`
}

// GeneratedContent is the ordered slide tuple list produced by one
// generation or regeneration request.
type GeneratedContent []GeneratedSlide

// Clone returns a deep copy, so callers can mutate it without touching
// shared values such as the fallback set.
func (g GeneratedContent) Clone() GeneratedContent {
	if g == nil {
		return nil
	}
	out := make(GeneratedContent, len(g))
	for i, s := range g {
		out[i] = s
		out[i].HighlightKeywords = append([]string(nil), s.HighlightKeywords...)
	}
	return out
}
