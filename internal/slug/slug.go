// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives URL- and filesystem-friendly names for export
// artifacts from slide titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds a generated slug. Longer slugs are cut at the last
// hyphen that fits.
const MaxLength = 60

var (
	// separators become a single hyphen.
	separators = regexp.MustCompile(`[\s_/|.]+`)
	// nonAlphanumeric matches anything that isn't a letter, digit, or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a slug from the given string. Accents are folded to
// their base letters and other non-ASCII characters are dropped.
// Example: "Café Résumé: 10 Tips!" → "cafe-resume-10-tips"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(fold(s)))
	result = separators.ReplaceAllString(result, "-")
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > MaxLength {
		result = result[:MaxLength]
		if i := strings.LastIndexByte(result, '-'); i > 0 {
			result = result[:i]
		}
	}
	return result
}

// Filename returns the slug of title, or fallback when the title has no
// usable characters.
func Filename(title, fallback string) string {
	if s := Generate(title); s != "" {
		return s
	}
	return fallback
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
