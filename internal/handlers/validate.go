// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"strings"
	"unicode/utf8"

	"slidesmith/internal/models"
	"slidesmith/internal/palette"
	"slidesmith/internal/render"
)

// Validation limits for editing fields.
const (
	maxIdeaLen        = 2_000
	maxTitleLen       = 300
	maxContentLen     = 5_000
	maxKeywords       = 20
	maxImagePromptLen = 1_000
	maxAuthorLen      = 100
	maxHashtagTextLen = 20_000
	maxImageLen       = 10 << 20
	maxFontSize       = 400
	maxLineHeight     = 5
)

// validateIdea checks the generation prompt and returns the first error found.
func validateIdea(idea string) string {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return "Idea is required."
	}
	if utf8.RuneCountInString(idea) > maxIdeaLen {
		return "Idea is too long (max 2,000 characters)."
	}
	return ""
}

// validatePatch checks a slide patch. Invalid enum values are ignored by
// Patch.Apply, so only free-form fields are checked here.
func validatePatch(p models.Patch) string {
	if p.Title != nil && utf8.RuneCountInString(*p.Title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if p.Content != nil && utf8.RuneCountInString(*p.Content) > maxContentLen {
		return "Content is too long (max 5,000 characters)."
	}
	if p.HighlightKeywords != nil && len(*p.HighlightKeywords) > maxKeywords {
		return "Too many highlight keywords (max 20)."
	}
	if p.ImagePrompt != nil && utf8.RuneCountInString(*p.ImagePrompt) > maxImagePromptLen {
		return "Image prompt is too long (max 1,000 characters)."
	}
	if p.HighlightColor != nil && *p.HighlightColor != "" && !validHex(*p.HighlightColor) {
		return "Highlight colour must be a hex colour."
	}
	if p.ContentLineHeight != nil && *p.ContentLineHeight > maxLineHeight {
		return "Line height is too large."
	}
	for _, sp := range []*models.StylePatch{p.TitleStyle, p.ContentStyle} {
		if msg := validateStyle(sp); msg != "" {
			return msg
		}
	}
	if p.Background != nil {
		return validateBackground(p.Background.Normalize())
	}
	return ""
}

func validateStyle(sp *models.StylePatch) string {
	if sp == nil {
		return ""
	}
	if sp.Size != nil && *sp.Size > maxFontSize {
		return "Font size is too large."
	}
	if sp.Color != nil && *sp.Color != "" && !validHex(*sp.Color) {
		return "Text colour must be a hex colour."
	}
	return ""
}

func validateBackground(bg models.Background) string {
	switch bg.Kind {
	case models.BackgroundGenerated:
		if bg.Asset != "" {
			return validateImage(bg.Asset)
		}
	case models.BackgroundPreset:
		if _, ok := palette.LookupPreset(bg.Preset); !ok {
			return "Unknown background preset."
		}
	case models.BackgroundGradient:
		if _, ok := palette.LookupGradient(bg.Gradient); !ok {
			return "Unknown gradient."
		}
	case models.BackgroundSolid:
		if !validHex(bg.Color) {
			return "Background colour must be a hex colour."
		}
	case models.BackgroundUpload:
		return validateImage(bg.Image)
	default:
		return "Unknown background kind."
	}
	return ""
}

// validateImage checks that dataURL is a decodable image within limits.
func validateImage(dataURL string) string {
	if dataURL == "" {
		return "Image is required."
	}
	if len(dataURL) > maxImageLen {
		return "Image is too large (max 10 MB)."
	}
	if _, err := render.DecodeDataURL(dataURL); err != nil {
		if errors.Is(err, render.ErrImageTooLarge) {
			return "Image dimensions are too large (max 40 megapixels)."
		}
		return "Image must be a PNG, JPEG, GIF or WebP data URL."
	}
	return ""
}

// validateProject checks brand settings.
func validateProject(p models.ProjectSettings) string {
	if utf8.RuneCountInString(p.AuthorName) > maxAuthorLen {
		return "Author name is too long (max 100 characters)."
	}
	if _, err := models.ParseFormat(string(p.Format)); err != nil {
		return "Unknown format."
	}
	if p.Logo != "" {
		return validateImage(p.Logo)
	}
	return ""
}

func validHex(s string) bool {
	_, err := palette.ParseHex(s)
	return err == nil
}
