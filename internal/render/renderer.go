// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render rasterizes slides without a browser. A Renderer turns a
// slide plus project settings into a Scene (decoded and scaled assets,
// opened font faces) and the Scene draws itself into a bitmap of exactly
// the requested canvas size.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"slidesmith/internal/models"
	"slidesmith/internal/palette"
	"slidesmith/internal/slides"
)

// ErrSceneReleased is returned when rasterizing a released scene.
var ErrSceneReleased = errors.New("render: scene already released")

// referenceWidth is the editor preview width that style sizes are
// expressed in. Canvas geometry scales by canvasWidth/referenceWidth.
const referenceWidth = 540.0

// Layout metrics in editor pixels.
const (
	framePadding  = 32.0
	headerTop     = 24.0
	headerSize    = 14.0
	logoHeight    = 24.0
	bodyTopOffset = 48.0
	contentGap    = 16.0
	titleLeading  = 1.15
)

// Frame places a slide within an export run.
type Frame struct {
	Canvas models.Canvas
	// Index is the zero-based position of the slide; Total the slide count.
	Index int
	Total int
}

// Renderer prepares scenes. It is safe for concurrent use.
type Renderer struct {
	fonts *FontSet
}

// New creates a renderer with the bundled fonts.
func New() (*Renderer, error) {
	fs, err := NewFontSet()
	if err != nil {
		return nil, err
	}
	return &Renderer{fonts: fs}, nil
}

// Scene is one materialized slide. It is not safe for concurrent use and
// must be released after rasterization.
type Scene struct {
	slide   models.Slide
	project models.ProjectSettings
	frame   Frame
	scale   float64

	background *image.RGBA
	logo       *image.RGBA

	titleFace   font.Face
	contentFace font.Face
	headerFace  font.Face
	counterFace font.Face

	released bool
}

// Prepare materializes a slide for the given frame: image backgrounds and
// the logo are decoded and scaled, and font faces are opened at canvas
// size. The returned scene holds those resources until Release.
func (r *Renderer) Prepare(ctx context.Context, slide models.Slide, project models.ProjectSettings, frame Frame) (*Scene, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, h := frame.Canvas.Width, frame.Canvas.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: invalid canvas %dx%d", w, h)
	}

	sc := &Scene{
		slide:   slide,
		project: project,
		frame:   frame,
		scale:   float64(w) / referenceWidth,
	}

	switch bg := slide.Background; bg.Kind {
	case models.BackgroundGenerated:
		if bg.Asset != "" {
			img, err := DecodeDataURL(bg.Asset)
			if err != nil {
				return nil, fmt.Errorf("render: generated background: %w", err)
			}
			sc.background = cover(img, w, h)
		} else {
			sc.background = Placeholder(slide.ImagePrompt, w, h)
		}
	case models.BackgroundUpload:
		img, err := DecodeDataURL(bg.Image)
		if err != nil {
			return nil, fmt.Errorf("render: uploaded background: %w", err)
		}
		sc.background = cover(img, w, h)
	}

	if project.Logo != "" {
		img, err := DecodeDataURL(project.Logo)
		if err != nil {
			return nil, fmt.Errorf("render: logo: %w", err)
		}
		sc.logo = fitHeight(img, sc.px(logoHeight))
	}

	if err := sc.openFaces(r.fonts); err != nil {
		sc.Release()
		return nil, err
	}
	return sc, nil
}

func (sc *Scene) openFaces(fs *FontSet) error {
	ts, cs := sc.slide.TitleStyle, sc.slide.ContentStyle
	var err error
	if sc.titleFace, err = fs.Face(ts.Font, ts.Bold, ts.Italic, ts.Size*sc.scale); err != nil {
		return err
	}
	if sc.contentFace, err = fs.Face(cs.Font, cs.Bold, cs.Italic, cs.Size*sc.scale); err != nil {
		return err
	}
	if sc.headerFace, err = fs.Face(models.FontInter, true, false, headerSize*sc.scale); err != nil {
		return err
	}
	sc.counterFace, err = fs.Face(models.FontSourceCodePro, false, false, headerSize*sc.scale)
	return err
}

// px converts editor pixels to canvas pixels.
func (sc *Scene) px(v float64) int {
	return int(math.Round(v * sc.scale))
}

// Rasterize draws the scene into a new bitmap of exactly the canvas size.
func (sc *Scene) Rasterize() (*image.RGBA, error) {
	if sc.released {
		return nil, ErrSceneReleased
	}
	w, h := sc.frame.Canvas.Width, sc.frame.Canvas.Height
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	paintBackground(dst, sc.slide.Background, sc.background, sc.scale)
	lum := palette.BackgroundLuminance(sc.slide.Background)
	sc.drawHeader(dst, palette.IsLight(lum))
	sc.drawBody(dst, lum)
	return dst, nil
}

// Release closes the scene's faces and drops its buffers. It is safe to
// call more than once.
func (sc *Scene) Release() {
	if sc.released {
		return
	}
	sc.released = true
	for _, f := range []font.Face{sc.titleFace, sc.contentFace, sc.headerFace, sc.counterFace} {
		if f != nil {
			f.Close()
		}
	}
	sc.titleFace, sc.contentFace, sc.headerFace, sc.counterFace = nil, nil, nil, nil
	sc.background, sc.logo = nil, nil
}

// Header colours, by light background.
var (
	authorInk  = map[bool]color.RGBA{true: {0x4b, 0x55, 0x63, 0xff}, false: {0xd1, 0xd5, 0xdb, 0xff}}
	counterInk = map[bool]color.NRGBA{true: {0, 0, 0, 0x80}, false: {0xff, 0xff, 0xff, 0x80}}
)

// drawHeader draws the logo (or author name) on the left and the i/n
// counter on the right.
func (sc *Scene) drawHeader(dst *image.RGBA, light bool) {
	left := sc.px(framePadding)
	right := dst.Bounds().Dx() - left
	top := sc.px(headerTop)
	rowH := sc.px(logoHeight)

	if sc.logo != nil {
		r := sc.logo.Bounds().Add(image.Pt(left, top))
		draw.Draw(dst, r, sc.logo, image.Point{}, draw.Over)
	} else if name := strings.TrimSpace(sc.project.AuthorName); name != "" {
		drawLabel(dst, sc.headerFace, name, authorInk[light], left, top, rowH)
	}

	counter := strconv.Itoa(sc.frame.Index+1) + "/" + strconv.Itoa(sc.frame.Total)
	cw := font.MeasureString(sc.counterFace, counter).Ceil()
	drawLabel(dst, sc.counterFace, counter, counterInk[light], right-cw, top, rowH)
}

// drawLabel draws a single line vertically centred in a row.
func drawLabel(dst *image.RGBA, face font.Face, text string, c color.Color, x, top, rowH int) {
	m := face.Metrics()
	glyphH := (m.Ascent + m.Descent).Ceil()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, top+(rowH-glyphH)/2+m.Ascent.Ceil()),
	}
	d.DrawString(text)
}

// drawBody lays out the title and content in the text column and places
// the block according to the slide's vertical alignment.
func (sc *Scene) drawBody(dst *image.RGBA, lum float64) {
	s := sc.slide
	pad := sc.px(framePadding)
	colW := dst.Bounds().Dx() - 2*pad
	areaTop := pad + sc.px(bodyTopOffset)
	areaBottom := dst.Bounds().Dy() - pad

	highlight := textColor(s.HighlightColor, slides.DefaultHighlightColor)
	hl := color.NRGBA{R: highlight.R, G: highlight.G, B: highlight.B, A: 0xcc}

	var blocks []*textBlock
	title := s.Title
	if s.TitleStyle.Font == models.FontBebas {
		title = strings.ToUpper(title)
	}
	if strings.TrimSpace(title) != "" {
		size := s.TitleStyle.Size * sc.scale
		blocks = append(blocks, &textBlock{
			face:       sc.titleFace,
			lines:      wrap(sc.titleFace, paragraphs([]span{{text: title}}), fixed.I(colW)),
			lineHeight: int(math.Ceil(size * titleLeading)),
			align:      s.TitleStyle.Align,
			color:      textColor(palette.EffectiveColor(s.TitleStyle.Color, lum, palette.RoleTitle), palette.EffectiveColor("", lum, palette.RoleTitle)),
			emPx:       size,
		})
	}
	if strings.TrimSpace(s.Content) != "" {
		size := s.ContentStyle.Size * sc.scale
		leading := s.ContentLineHeight
		if leading <= 0 {
			leading = 1.6
		}
		blocks = append(blocks, &textBlock{
			face:       sc.contentFace,
			lines:      wrap(sc.contentFace, paragraphs(highlightSpans(s.Content, s.HighlightKeywords)), fixed.I(colW)),
			lineHeight: int(math.Ceil(size * leading)),
			align:      s.ContentStyle.Align,
			color:      textColor(palette.EffectiveColor(s.ContentStyle.Color, lum, palette.RoleContent), palette.EffectiveColor("", lum, palette.RoleContent)),
			highlight:  hl,
			emPx:       size,
		})
	}
	if len(blocks) == 0 {
		return
	}

	gap := sc.px(contentGap)
	total := gap * (len(blocks) - 1)
	for _, b := range blocks {
		total += b.height()
	}

	top := areaTop
	switch s.VAlign {
	case models.VAlignCenter:
		top = areaTop + (areaBottom-areaTop-total)/2
	case models.VAlignEnd:
		top = areaBottom - total
	}
	// Overflowing text starts at the top of the area and is clipped below.
	top = max(top, areaTop)

	for _, b := range blocks {
		b.draw(dst, pad, top, colW)
		top += b.height() + gap
	}
}

// textColor parses hex, falling back to fallback and then white.
func textColor(hex, fallback string) color.RGBA {
	if c, err := palette.ParseHex(hex); err == nil {
		return c
	}
	if c, err := palette.ParseHex(fallback); err == nil {
		return c
	}
	return color.RGBA{0xff, 0xff, 0xff, 0xff}
}

// Render prepares, rasterizes and releases a single slide.
func (r *Renderer) Render(ctx context.Context, slide models.Slide, project models.ProjectSettings, frame Frame) (*image.RGBA, error) {
	sc, err := r.Prepare(ctx, slide, project, frame)
	if err != nil {
		return nil, err
	}
	defer sc.Release()
	return sc.Rasterize()
}
