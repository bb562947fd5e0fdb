// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slides

import (
	"slidesmith/internal/models"
	"slidesmith/internal/palette"
)

// Collection bounds.
const (
	MinSlides = 1
	MaxSlides = 10
)

// Default style values given to ingested and basis-less inserted slides.
const (
	DefaultHighlightColor    = "#dfff00"
	DefaultTitleSize         = 48
	DefaultContentSize       = 18
	DefaultContentLineHeight = 1.6
)

// Placeholder text of a freshly inserted slide.
const (
	NewSlideTitle   = "New title"
	NewSlideContent = "Add your description."
)

// DefaultTitleStyle is the title typography of a slide with no overrides.
func DefaultTitleStyle() models.TextStyle {
	return models.TextStyle{Font: models.FontBebas, Size: DefaultTitleSize, Bold: true, Align: models.AlignLeft}
}

// DefaultContentStyle is the content typography of a slide with no overrides.
func DefaultContentStyle() models.TextStyle {
	return models.TextStyle{Font: models.FontInter, Size: DefaultContentSize, Align: models.AlignLeft}
}

// applyDefaultStyle sets every style and background field of s to the
// collection defaults.
func applyDefaultStyle(s *models.Slide) {
	s.Background = models.PresetBackground(palette.DefaultPreset)
	s.HighlightColor = DefaultHighlightColor
	s.TitleStyle = DefaultTitleStyle()
	s.ContentStyle = DefaultContentStyle()
	s.ContentLineHeight = DefaultContentLineHeight
	s.VAlign = models.VAlignCenter
}

// resetTextStyle restores typography defaults while keeping alignment,
// background and highlight colour.
func resetTextStyle(s *models.Slide) {
	ta, ca := s.TitleStyle.Align, s.ContentStyle.Align
	s.TitleStyle = DefaultTitleStyle()
	s.ContentStyle = DefaultContentStyle()
	s.TitleStyle.Align, s.ContentStyle.Align = ta, ca
	s.ContentLineHeight = DefaultContentLineHeight
}
