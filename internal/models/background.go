// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// BackgroundKind identifies which background mode is active on a slide.
type BackgroundKind string

const (
	BackgroundGenerated BackgroundKind = "generated"
	BackgroundPreset    BackgroundKind = "preset"
	BackgroundGradient  BackgroundKind = "gradient"
	BackgroundSolid     BackgroundKind = "solid"
	BackgroundUpload    BackgroundKind = "upload"
)

// Background is the mutually exclusive background selection of a slide.
// Only the field belonging to Kind is ever set; build values with the
// constructors below or call Normalize after decoding.
type Background struct {
	Kind BackgroundKind `json:"kind"`

	// Asset is an optional data URL of a real generated image (generated mode).
	Asset    string `json:"asset,omitempty"`
	Preset   string `json:"preset,omitempty"`
	Gradient string `json:"gradient,omitempty"`
	Color    string `json:"color,omitempty"`
	// Image is a data URL of a user-uploaded picture (upload mode).
	Image string `json:"image,omitempty"`
}

// GeneratedBackground selects the image generated from the slide's image prompt.
func GeneratedBackground() Background {
	return Background{Kind: BackgroundGenerated}
}

// GeneratedAssetBackground selects generated mode with a concrete image.
func GeneratedAssetBackground(dataURL string) Background {
	return Background{Kind: BackgroundGenerated, Asset: dataURL}
}

// PresetBackground selects a named preset pattern.
func PresetBackground(name string) Background {
	return Background{Kind: BackgroundPreset, Preset: name}
}

// GradientBackground selects a named gradient preset.
func GradientBackground(name string) Background {
	return Background{Kind: BackgroundGradient, Gradient: name}
}

// SolidBackground selects a solid hex colour.
func SolidBackground(hex string) Background {
	return Background{Kind: BackgroundSolid, Color: hex}
}

// UploadedBackground selects a user-uploaded image.
func UploadedBackground(dataURL string) Background {
	return Background{Kind: BackgroundUpload, Image: dataURL}
}

// Normalize clears every field that does not belong to the active kind.
// An unknown kind collapses to generated mode.
func (b Background) Normalize() Background {
	switch b.Kind {
	case BackgroundGenerated:
		return GeneratedAssetBackground(b.Asset)
	case BackgroundPreset:
		return PresetBackground(b.Preset)
	case BackgroundGradient:
		return GradientBackground(b.Gradient)
	case BackgroundSolid:
		return SolidBackground(b.Color)
	case BackgroundUpload:
		return UploadedBackground(b.Image)
	default:
		return GeneratedBackground()
	}
}

// ActiveModes counts the background modes that carry a value. A normalized
// background always reports exactly one.
func (b Background) ActiveModes() int {
	n := 0
	if b.Kind == BackgroundGenerated {
		n++
	}
	for _, v := range []string{b.Preset, b.Gradient, b.Color, b.Image} {
		if v != "" {
			n++
		}
	}
	return n
}
