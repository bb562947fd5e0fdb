// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"slidesmith/internal/models"
	"slidesmith/internal/palette"
)

// Overlay strengths for image backgrounds. Generated images sit at low
// opacity on black; uploads are darkened to half brightness. Both get a
// bottom-up black fade.
const (
	generatedOpacity   = 0.2
	uploadBrightness   = 0.5
	generatedFadeStart = 0.8
	generatedFadeMid   = 0.3
	uploadFadeStart    = 0.6
	uploadFadeMid      = 0.2
)

// paintBackground fills dst with the slide background. img is the already
// scaled image for generated and upload modes.
func paintBackground(dst *image.RGBA, bg models.Background, img *image.RGBA, scale float64) {
	fill(dst, color.RGBA{A: 0xff})

	switch bg.Kind {
	case models.BackgroundSolid:
		if c, err := palette.ParseHex(bg.Color); err == nil {
			fill(dst, c)
		}
	case models.BackgroundGradient:
		if g, ok := palette.LookupGradient(bg.Gradient); ok {
			paintGradient(dst, g)
		}
	case models.BackgroundPreset:
		if p, ok := palette.LookupPreset(bg.Preset); ok {
			paintPreset(dst, p, scale)
		}
	case models.BackgroundGenerated:
		if img != nil {
			draw.DrawMask(dst, dst.Bounds(), img, image.Point{}, image.NewUniform(alpha(generatedOpacity)), image.Point{}, draw.Over)
		}
		fade(dst, generatedFadeStart, generatedFadeMid)
	case models.BackgroundUpload:
		if img != nil {
			draw.Draw(dst, dst.Bounds(), img, image.Point{}, draw.Src)
			draw.Draw(dst, dst.Bounds(), image.NewUniform(color.NRGBA{A: alpha(1 - uploadBrightness).A}), image.Point{}, draw.Over)
		}
		fade(dst, uploadFadeStart, uploadFadeMid)
	}
}

func fill(dst *image.RGBA, c color.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func alpha(opacity float64) color.Alpha {
	return color.Alpha{A: uint8(math.Round(math.Max(0, math.Min(1, opacity)) * 255))}
}

// fade darkens towards the bottom edge: transparent at the top, mid at
// half height and start at the bottom.
func fade(dst *image.RGBA, start, mid float64) {
	b := dst.Bounds()
	h := float64(b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		t := float64(y-b.Min.Y) / h
		var a float64
		if t < 0.5 {
			a = mid * t / 0.5
		} else {
			a = mid + (start-mid)*(t-0.5)/0.5
		}
		row := image.Rect(b.Min.X, y, b.Max.X, y+1)
		draw.Draw(dst, row, image.NewUniform(color.NRGBA{A: alpha(a).A}), image.Point{}, draw.Over)
	}
}

// paintGradient renders a CSS-style linear gradient: the angle is measured
// clockwise from "to top" and the gradient line spans the whole frame.
func paintGradient(dst *image.RGBA, g palette.Gradient) {
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	rad := g.Angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	length := math.Abs(w*dx) + math.Abs(h*dy)
	cx, cy := w/2, h/2

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			t := ((float64(x)+0.5-cx)*dx+(float64(y)+0.5-cy)*dy)/length + 0.5
			dst.SetRGBA(b.Min.X+x, b.Min.Y+y, g.At(t))
		}
	}
}

// Pattern geometry in editor pixels; scaled to the canvas.
const (
	diagonalTile   = 40.0
	waveSpacing    = 50.0
	wavePeriod     = 1000.0
	waveAmplitude  = 30.0
	waveStrokeBase = 1.0
)

// paintPreset fills the base colour and blends the pattern ink over it.
func paintPreset(dst *image.RGBA, p palette.Preset, scale float64) {
	base, err := palette.ParseHex(p.Base)
	if err != nil {
		return
	}
	fill(dst, base)
	ink, err := palette.ParseHex(p.Ink)
	if err != nil {
		return
	}
	tinted := mix(base, ink, p.Opacity)

	b := dst.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if onPattern(p.Pattern, float64(x)/scale, float64(y)/scale, scale) {
				dst.SetRGBA(b.Min.X+x, b.Min.Y+y, tinted)
			}
		}
	}
}

// onPattern reports whether the point (in editor pixels) is covered by ink.
func onPattern(pat palette.Pattern, x, y, scale float64) bool {
	switch pat {
	case palette.PatternDiagonal:
		// Diagonal bands covering the upper half of every 40px period.
		return math.Mod(x+y, diagonalTile) >= diagonalTile/2
	case palette.PatternWaves:
		centre := -waveAmplitude * math.Sin(2*math.Pi*(x+wavePeriod/2)/wavePeriod)
		d := math.Mod(y-centre, waveSpacing)
		if d < 0 {
			d += waveSpacing
		}
		half := math.Max(waveStrokeBase, 1/scale) / 2
		return d < half || waveSpacing-d < half
	}
	return false
}
