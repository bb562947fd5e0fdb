// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import "slidesmith/internal/models"

// Titles that mark fallback content. Callers can only tell a failure from a
// real result by this wording.
const (
	FallbackTitle             = "Generation Error"
	RegenerationFallbackTitle = "Regeneration Error"
)

// Hashtag markers returned in place of real hashtags on failure.
const (
	HashtagGenerationError = "generation_error"
	HashtagInvalidFormat   = "invalid_format"
	HashtagAPIError        = "api_error"
)

var fallback = models.GeneratedContent{
	{
		Title:             FallbackTitle,
		Content:           "Could not reach the AI. Please check your connection or API key and try again.",
		HighlightKeywords: []string{"Error", "API key"},
		ImagePrompt:       "Abstract glitch art symbolizing a failed connection to a neural network, in red and black tones.",
	},
	{
		Title:             "Something went wrong",
		Content:           "The AI is not in the mood to create right now. Perhaps it is drinking its digital coffee.",
		HighlightKeywords: []string{"not in the mood", "coffee"},
		ImagePrompt:       "A cute robot at a desk with a cup of coffee whose steam rises as binary code.",
	},
}

// Fallback returns a fresh copy of the two-slide content shown when
// generation fails.
func Fallback() models.GeneratedContent {
	return fallback.Clone()
}

// RegenerationFallback is Fallback with the first slide retitled for a
// failed regeneration.
func RegenerationFallback() models.GeneratedContent {
	out := fallback.Clone()
	out[0].Title = RegenerationFallbackTitle
	return out
}

// IsFallback reports whether c is one of the fallback payloads.
func IsFallback(c models.GeneratedContent) bool {
	return len(c) == len(fallback) &&
		(c[0].Title == FallbackTitle || c[0].Title == RegenerationFallbackTitle) &&
		c[1].Title == fallback[1].Title
}
