// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package palette provides colour parsing, WCAG luminance and the named
// background catalogs (gradients and patterned presets) offered by the
// slide editor.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"slidesmith/internal/models"
)

// ErrInvalidHex is returned for strings that are not #rrggbb / #rgb colours.
var ErrInvalidHex = errors.New("invalid hex colour")

// LightThreshold is the relative luminance above which a background is
// considered light.
const LightThreshold = 0.179

// ParseHex parses "#rrggbb", "rrggbb", "#rgb" or "#rrggbbaa" into an opaque
// RGBA colour. Alpha digits, if present, are ignored.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	case 8:
		h = h[:6]
	default:
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// MustHex is ParseHex for compile-time constants.
func MustHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as lowercase #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RelativeLuminance returns the WCAG 2.x relative luminance of c in [0, 1].
func RelativeLuminance(c color.RGBA) float64 {
	lin := func(v uint8) float64 {
		s := float64(v) / 255
		if s <= 0.03928 {
			return s / 12.92
		}
		return math.Pow((s+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// IsLight reports whether the luminance belongs to a light background.
func IsLight(luminance float64) bool {
	return luminance > LightThreshold
}

// Role selects which default text colour EffectiveColor falls back to.
type Role int

const (
	RoleTitle Role = iota
	RoleContent
)

// Default text colours, indexed by [light background][role].
var defaultText = map[bool]map[Role]string{
	true:  {RoleTitle: "#1f2937", RoleContent: "#374151"},
	false: {RoleTitle: "#ffffff", RoleContent: "#e5e7eb"},
}

// EffectiveColor returns the override when it is set, otherwise the
// default text colour for role on a background of the given luminance.
func EffectiveColor(override string, luminance float64, role Role) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	return defaultText[IsLight(luminance)][role]
}

// Stop is one colour stop of a linear gradient; Offset is in [0, 1].
type Stop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// Gradient is a named linear gradient.
type Gradient struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Angle float64 `json:"angle"`
	Stops []Stop  `json:"stops"`
}

// At returns the interpolated colour at position t in [0, 1].
func (g Gradient) At(t float64) color.RGBA {
	if len(g.Stops) == 0 {
		return color.RGBA{A: 0xff}
	}
	t = math.Max(0, math.Min(1, t))
	if t <= g.Stops[0].Offset {
		return MustHex(g.Stops[0].Color)
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return MustHex(b.Color)
			}
			return lerp(MustHex(a.Color), MustHex(b.Color), (t-a.Offset)/span)
		}
	}
	return MustHex(g.Stops[len(g.Stops)-1].Color)
}

// Luminance is the mean luminance of the gradient stops, used for choosing
// default text colours.
func (g Gradient) Luminance() float64 {
	if len(g.Stops) == 0 {
		return 0
	}
	var sum float64
	for _, s := range g.Stops {
		sum += RelativeLuminance(MustHex(s.Color))
	}
	return sum / float64(len(g.Stops))
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 0xff}
}

func twoStop(name, label, from, to string) Gradient {
	return Gradient{Name: name, Label: label, Angle: 135, Stops: []Stop{{0, from}, {1, to}}}
}

// Gradients is the gradient catalog in picker order. "indigo" backs the
// Gradient template and is also selectable on its own.
var Gradients = []Gradient{
	{Name: "sunset", Label: "Sunset", Angle: 135, Stops: []Stop{{0, "#ef4444"}, {0.5, "#f97316"}, {1, "#facc15"}}},
	twoStop("ocean", "Ocean", "#06b6d4", "#3b82f6"),
	twoStop("grape", "Grape", "#a855f7", "#d946ef"),
	twoStop("lime", "Lime", "#84cc16", "#22c55e"),
	twoStop("rose", "Rose", "#f43f5e", "#ec4899"),
	twoStop("noir", "Noir", "#404040", "#171717"),
	twoStop("indigo", "Indigo", "#4338ca", "#3b82f6"),
}

// LookupGradient finds a gradient by name.
func LookupGradient(name string) (Gradient, bool) {
	for _, g := range Gradients {
		if g.Name == name {
			return g, true
		}
	}
	return Gradient{}, false
}

// Pattern is the overlay drawn on top of a preset's base colour.
type Pattern string

const (
	PatternDiagonal Pattern = "diagonal"
	PatternWaves    Pattern = "waves"
)

// Preset is a named patterned background.
type Preset struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Base    string  `json:"base"`
	Ink     string  `json:"ink"`
	Pattern Pattern `json:"pattern"`
	// Opacity of the pattern ink over the base colour.
	Opacity float64 `json:"opacity"`
}

// DefaultPreset is the background given to freshly ingested slides.
const DefaultPreset = "forest-green"

// Presets is the preset catalog in picker order.
var Presets = []Preset{
	{Name: "forest-green", Label: "Forest Green", Base: "#1a2e28", Ink: "#2e4b40", Pattern: PatternDiagonal, Opacity: 0.4},
	{Name: "dark-noise", Label: "Dark Noise", Base: "#1a1a1a", Ink: "#404040", Pattern: PatternWaves, Opacity: 0.2},
}

// LookupPreset finds a preset by name.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// BackgroundLuminance returns the luminance used for default text colours.
// Only solid colours are measured; gradients, presets and images are
// treated as dark since they are rendered under a dimming overlay or are
// dark by construction.
func BackgroundLuminance(bg models.Background) float64 {
	if bg.Kind != models.BackgroundSolid {
		return 0
	}
	c, err := ParseHex(bg.Color)
	if err != nil {
		return 0
	}
	return RelativeLuminance(c)
}
