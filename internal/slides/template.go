// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slides

import (
	"errors"

	"slidesmith/internal/models"
	"slidesmith/internal/palette"
)

// ErrUnknownTemplate is returned when applying a template that is not in
// the catalog.
var ErrUnknownTemplate = errors.New("unknown template")

// Template is a named set of style fields applied together from the
// templates panel. Templates never touch text or font sizes.
type Template struct {
	Name           string            `json:"name"`
	Label          string            `json:"label"`
	Background     models.Background `json:"background"`
	TitleFont      models.FontFamily `json:"title_font"`
	ContentFont    models.FontFamily `json:"content_font"`
	TitleAlign     models.TextAlign  `json:"title_align"`
	ContentAlign   models.TextAlign  `json:"content_align"`
	VAlign         models.VAlign     `json:"valign"`
	HighlightColor string            `json:"highlight_color"`
}

// Patch converts the template into a slide patch. The background is always
// set, which also clears any uploaded image.
func (t Template) Patch() models.Patch {
	bg := t.Background
	tf, cf := t.TitleFont, t.ContentFont
	ta, ca := t.TitleAlign, t.ContentAlign
	va := t.VAlign
	hl := t.HighlightColor
	return models.Patch{
		Background:     &bg,
		HighlightColor: &hl,
		TitleStyle:     &models.StylePatch{Font: &tf, Align: &ta},
		ContentStyle:   &models.StylePatch{Font: &cf, Align: &ca},
		VAlign:         &va,
	}
}

// Templates is the template catalog in panel order.
var Templates = []Template{
	{
		Name:           "standard",
		Label:          "Standard",
		Background:     models.PresetBackground(palette.DefaultPreset),
		TitleFont:      models.FontBebas,
		ContentFont:    models.FontInter,
		TitleAlign:     models.AlignLeft,
		ContentAlign:   models.AlignLeft,
		VAlign:         models.VAlignCenter,
		HighlightColor: DefaultHighlightColor,
	},
	{
		Name:           "minimal",
		Label:          "Minimal",
		Background:     models.SolidBackground("#f3f4f6"),
		TitleFont:      models.FontInter,
		ContentFont:    models.FontInter,
		TitleAlign:     models.AlignCenter,
		ContentAlign:   models.AlignCenter,
		VAlign:         models.VAlignCenter,
		HighlightColor: "#d1d5db",
	},
	{
		Name:           "brutal",
		Label:          "Brutal",
		Background:     models.SolidBackground("#000000"),
		TitleFont:      models.FontSourceCodePro,
		ContentFont:    models.FontSourceCodePro,
		TitleAlign:     models.AlignLeft,
		ContentAlign:   models.AlignLeft,
		VAlign:         models.VAlignStart,
		HighlightColor: "#fef08a",
	},
	{
		Name:           "gradient",
		Label:          "Gradient",
		Background:     models.GradientBackground("indigo"),
		TitleFont:      models.FontBebas,
		ContentFont:    models.FontRaleway,
		TitleAlign:     models.AlignRight,
		ContentAlign:   models.AlignRight,
		VAlign:         models.VAlignEnd,
		HighlightColor: "#a5b4fc",
	},
}

// LookupTemplate finds a template by name.
func LookupTemplate(name string) (Template, bool) {
	for _, t := range Templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}
