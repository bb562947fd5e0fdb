// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// StylePatch is a partial TextStyle update. Nil fields are left unchanged.
type StylePatch struct {
	Font   *FontFamily `json:"font,omitempty"`
	Size   *float64    `json:"size,omitempty"`
	Color  *string     `json:"color,omitempty"`
	Bold   *bool       `json:"bold,omitempty"`
	Italic *bool       `json:"italic,omitempty"`
	Align  *TextAlign  `json:"align,omitempty"`
}

// Apply merges the set fields of p into s.
func (p *StylePatch) Apply(s *TextStyle) {
	if p == nil {
		return
	}
	if p.Font != nil && p.Font.Valid() {
		s.Font = *p.Font
	}
	if p.Size != nil && *p.Size > 0 {
		s.Size = *p.Size
	}
	if p.Color != nil {
		s.Color = *p.Color
	}
	if p.Bold != nil {
		s.Bold = *p.Bold
	}
	if p.Italic != nil {
		s.Italic = *p.Italic
	}
	if p.Align != nil && p.Align.Valid() {
		s.Align = *p.Align
	}
}

// Patch is a partial Slide update, as sent by editing panels. Nil fields
// are left unchanged; a non-nil Background replaces the whole selection.
type Patch struct {
	Title             *string     `json:"title,omitempty"`
	Content           *string     `json:"content,omitempty"`
	HighlightKeywords *[]string   `json:"highlight_keywords,omitempty"`
	ImagePrompt       *string     `json:"image_prompt,omitempty"`
	Background        *Background `json:"background,omitempty"`
	HighlightColor    *string     `json:"highlight_color,omitempty"`
	TitleStyle        *StylePatch `json:"title_style,omitempty"`
	ContentStyle      *StylePatch `json:"content_style,omitempty"`
	ContentLineHeight *float64    `json:"content_line_height,omitempty"`
	VAlign            *VAlign     `json:"valign,omitempty"`
}

// StyleOnly returns a copy of p without any text fields, so it can be
// applied across slides without touching their wording.
func (p Patch) StyleOnly() Patch {
	p.Title = nil
	p.Content = nil
	p.HighlightKeywords = nil
	p.ImagePrompt = nil
	return p
}

// Apply merges the set fields of p into s.
func (p Patch) Apply(s *Slide) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Content != nil {
		s.Content = *p.Content
	}
	if p.HighlightKeywords != nil {
		s.HighlightKeywords = CleanKeywords(*p.HighlightKeywords)
	}
	if p.ImagePrompt != nil {
		s.ImagePrompt = *p.ImagePrompt
	}
	if p.Background != nil {
		s.Background = p.Background.Normalize()
	}
	if p.HighlightColor != nil {
		s.HighlightColor = *p.HighlightColor
	}
	p.TitleStyle.Apply(&s.TitleStyle)
	p.ContentStyle.Apply(&s.ContentStyle)
	if p.ContentLineHeight != nil && *p.ContentLineHeight > 0 {
		s.ContentLineHeight = *p.ContentLineHeight
	}
	if p.VAlign != nil && p.VAlign.Valid() {
		s.VAlign = *p.VAlign
	}
}

// CleanKeywords trims entries, drops empty ones and case-insensitive
// duplicates, keeping the first occurrence's order.
func CleanKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, k := range in {
		k = strings.TrimSpace(k)
		if k == "" || seen[strings.ToLower(k)] {
			continue
		}
		seen[strings.ToLower(k)] = true
		out = append(out, k)
	}
	return out
}
