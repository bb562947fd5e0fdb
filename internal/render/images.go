// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"math/rand/v2"
	"net/url"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxImagePixels caps the declared size of decoded images.
const MaxImagePixels = 40_000_000

var (
	// ErrInvalidDataURL is returned for image data URLs that are not base64
	// encoded images.
	ErrInvalidDataURL = errors.New("render: invalid image data URL")

	// ErrImageTooLarge is returned when an image header declares more than
	// MaxImagePixels pixels.
	ErrImageTooLarge = errors.New("render: image too large")
)

// DecodeDataURL decodes a base64 "data:image/...;base64," URL into an image.
// PNG, JPEG, GIF and WebP payloads are accepted. The header is checked
// against MaxImagePixels before any pixel data is decoded.
func DecodeDataURL(dataURL string) (image.Image, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasPrefix(meta, "image/") || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrInvalidDataURL
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("render: decode image config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, MaxImagePixels)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("render: decode image: %w", err)
	}
	return img, nil
}

// cover scales src to fill a w×h frame, cropping the overflowing axis
// around the centre.
func cover(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	sb := src.Bounds()
	if sb.Empty() {
		return dst
	}
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	scale := math.Max(float64(w)/sw, float64(h)/sh)
	cw, ch := int(math.Round(float64(w)/scale)), int(math.Round(float64(h)/scale))
	x0 := sb.Min.X + (sb.Dx()-cw)/2
	y0 := sb.Min.Y + (sb.Dy()-ch)/2
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, image.Rect(x0, y0, x0+cw, y0+ch), draw.Src, nil)
	return dst
}

// fitHeight scales src to height h preserving aspect ratio.
func fitHeight(src image.Image, h int) *image.RGBA {
	sb := src.Bounds()
	if sb.Empty() || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	w := int(math.Round(float64(sb.Dx()) * float64(h) / float64(sb.Dy())))
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
	return dst
}

// PlaceholderURL is the remote placeholder the editor shows for a
// generated-mode background before a real image exists.
func PlaceholderURL(seed string, w, h int) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", url.PathEscape(seed), w, h)
}

// Placeholder draws a deterministic abstract image for seed: a diagonal
// two-colour gradient with a few soft discs. The same seed and size always
// yield the same pixels.
func Placeholder(seed string, w, h int) *image.RGBA {
	sum := xxhash.Sum64String(seed)
	rng := rand.New(rand.NewPCG(sum, sum>>7|1))

	hue := rng.Float64() * 360
	from := hsl(hue, 0.65, 0.45)
	to := hsl(math.Mod(hue+60+rng.Float64()*120, 360), 0.7, 0.3)

	type disc struct {
		cx, cy, r float64
		c         color.RGBA
	}
	discs := make([]disc, 4)
	for i := range discs {
		discs[i] = disc{
			cx: rng.Float64() * float64(w),
			cy: rng.Float64() * float64(h),
			r:  (0.15 + rng.Float64()*0.3) * float64(min(w, h)),
			c:  hsl(math.Mod(hue+rng.Float64()*180, 360), 0.8, 0.6),
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	span := float64(w + h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := mix(from, to, float64(x+y)/span)
			for _, d := range discs {
				dist := math.Hypot(float64(x)-d.cx, float64(y)-d.cy)
				if dist < d.r {
					// Soft edge: full weight in the centre, fading outwards.
					c = mix(c, d.c, 0.35*(1-dist/d.r))
				}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	f := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: f(a.R, b.R), G: f(a.G, b.G), B: f(a.B, b.B), A: 0xff}
}

func hsl(h, s, l float64) color.RGBA {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g = c, x
	case hp < 2:
		r, g = x, c
	case hp < 3:
		g, b = c, x
	case hp < 4:
		g, b = x, c
	case hp < 5:
		r, b = x, c
	default:
		r, b = c, x
	}
	m := l - c/2
	to8 := func(v float64) uint8 { return uint8(math.Round((v + m) * 255)) }
	return color.RGBA{R: to8(r), G: to8(g), B: to8(b), A: 0xff}
}
