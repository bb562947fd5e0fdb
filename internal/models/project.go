// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is returned when parsing an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is the closed set of output formats a project can target.
type Format string

const (
	FormatCarousel   Format = "carousel"
	FormatStories    Format = "stories"
	FormatPost       Format = "post"
	FormatThreads    Format = "threads"
	FormatNewsletter Format = "newsletter"
	FormatReels      Format = "reels"
)

// AllFormats lists every format in menu order.
var AllFormats = []Format{FormatCarousel, FormatStories, FormatPost, FormatThreads, FormatNewsletter, FormatReels}

// ParseFormat converts a string into a Format.
func ParseFormat(s string) (Format, error) {
	for _, f := range AllFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatKind separates formats edited as slides from those edited as text.
type FormatKind string

const (
	KindVisual FormatKind = "visual"
	KindText   FormatKind = "text"
)

// Orientation of an exported document page.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Canvas is the fixed pixel size used when rasterizing slides.
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

var (
	squareCanvas   = Canvas{Width: 1080, Height: 1080}
	verticalCanvas = Canvas{Width: 1080, Height: 1920}
)

// Canvas returns the export pixel dimensions for the format.
func (f Format) Canvas() Canvas {
	switch f {
	case FormatCarousel, FormatPost, FormatThreads, FormatNewsletter:
		return squareCanvas
	case FormatStories, FormatReels:
		return verticalCanvas
	default:
		panic(fmt.Sprintf("models: unhandled format %q", string(f)))
	}
}

// Orientation is portrait for canvases taller than wide and landscape
// otherwise, square included.
func (c Canvas) Orientation() Orientation {
	if c.Height > c.Width {
		return Portrait
	}
	return Landscape
}

// Orientation returns the orientation of the format's canvas.
func (f Format) Orientation() Orientation {
	return f.Canvas().Orientation()
}

// Kind reports whether the format is edited as slides or as text.
func (f Format) Kind() FormatKind {
	switch f {
	case FormatCarousel, FormatStories, FormatReels:
		return KindVisual
	case FormatPost, FormatThreads, FormatNewsletter:
		return KindText
	default:
		panic(fmt.Sprintf("models: unhandled format %q", string(f)))
	}
}

// Label is the human-readable name shown in format pickers.
func (f Format) Label() string {
	switch f {
	case FormatCarousel:
		return "Carousel"
	case FormatStories:
		return "Stories"
	case FormatPost:
		return "Text post"
	case FormatThreads:
		return "Threads"
	case FormatNewsletter:
		return "Newsletter"
	case FormatReels:
		return "Reels"
	default:
		panic(fmt.Sprintf("models: unhandled format %q", string(f)))
	}
}

// DefaultAuthorName is shown in the slide header when no logo is set.
const DefaultAuthorName = "@your_account"

// ProjectSettings is the brand configuration shared by every slide of an
// editing session.
type ProjectSettings struct {
	// Logo is a data URL; empty means "use AuthorName".
	Logo       string `json:"logo,omitempty"`
	AuthorName string `json:"author_name"`
	Format     Format `json:"format"`
}

// DefaultProjectSettings returns the settings a new session starts with.
func DefaultProjectSettings() ProjectSettings {
	return ProjectSettings{AuthorName: DefaultAuthorName, Format: FormatCarousel}
}

// Theme is the editor colour scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
