// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"image"
	"image/color"
	"strings"
	"unicode"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"slidesmith/internal/models"
)

// span is a run of text that is either highlighted or plain.
type span struct {
	text      string
	highlight bool
}

// word is an unbreakable run of spans between whitespace.
type word []span

// line is a wrapped line of words.
type line []word

// highlightSpans splits text into spans, marking every case-insensitive
// occurrence of a keyword. Longer keywords win when matches overlap.
func highlightSpans(text string, keywords []string) []span {
	runes := []rune(text)
	kws := make([][]rune, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			kws = append(kws, []rune(k))
		}
	}

	var out []span
	var plain []rune
	flush := func() {
		if len(plain) > 0 {
			out = append(out, span{text: string(plain)})
			plain = plain[:0]
		}
	}
	for i := 0; i < len(runes); {
		n := matchAt(runes, i, kws)
		if n == 0 {
			plain = append(plain, runes[i])
			i++
			continue
		}
		flush()
		out = append(out, span{text: string(runes[i : i+n]), highlight: true})
		i += n
	}
	flush()
	return out
}

// matchAt returns the length of the longest keyword matching at runes[i:].
func matchAt(runes []rune, i int, kws [][]rune) int {
	best := 0
	for _, kw := range kws {
		if len(kw) <= best || i+len(kw) > len(runes) {
			continue
		}
		ok := true
		for j, r := range kw {
			if unicode.ToLower(runes[i+j]) != unicode.ToLower(r) {
				ok = false
				break
			}
		}
		if ok {
			best = len(kw)
		}
	}
	return best
}

// paragraphs splits spans at newlines and whitespace into words.
func paragraphs(spans []span) [][]word {
	var paras [][]word
	var cur []word
	var w word
	var buf []rune
	hl := false

	endSpan := func() {
		if len(buf) > 0 {
			w = append(w, span{text: string(buf), highlight: hl})
			buf = buf[:0]
		}
	}
	endWord := func() {
		endSpan()
		if len(w) > 0 {
			cur = append(cur, w)
			w = nil
		}
	}

	for _, s := range spans {
		endSpan()
		hl = s.highlight
		for _, r := range s.text {
			switch {
			case r == '\n':
				endWord()
				paras = append(paras, cur)
				cur = nil
			case unicode.IsSpace(r):
				endWord()
			default:
				buf = append(buf, r)
			}
		}
	}
	endWord()
	return append(paras, cur)
}

func wordWidth(face font.Face, w word) fixed.Int26_6 {
	var total fixed.Int26_6
	for _, s := range w {
		total += font.MeasureString(face, s.text)
	}
	return total
}

func lineWidth(face font.Face, l line) fixed.Int26_6 {
	space := font.MeasureString(face, " ")
	var total fixed.Int26_6
	for i, w := range l {
		if i > 0 {
			total += space
		}
		total += wordWidth(face, w)
	}
	return total
}

// wrap lays words out greedily into lines no wider than maxWidth. Words
// wider than a line are broken between runes. Empty paragraphs keep their
// blank line.
func wrap(face font.Face, paras [][]word, maxWidth fixed.Int26_6) []line {
	space := font.MeasureString(face, " ")
	var lines []line
	for _, para := range paras {
		var cur line
		var width fixed.Int26_6
		for _, w := range para {
			for _, piece := range breakWord(face, w, maxWidth) {
				ww := wordWidth(face, piece)
				if len(cur) > 0 && width+space+ww > maxWidth {
					lines = append(lines, cur)
					cur, width = nil, 0
				}
				if len(cur) > 0 {
					width += space
				}
				cur = append(cur, piece)
				width += ww
			}
		}
		lines = append(lines, cur)
	}
	return lines
}

// breakWord splits a word that does not fit maxWidth into pieces that do.
func breakWord(face font.Face, w word, maxWidth fixed.Int26_6) []word {
	if wordWidth(face, w) <= maxWidth {
		return []word{w}
	}
	var pieces []word
	var cur word
	var width fixed.Int26_6
	for _, s := range w {
		var buf []rune
		for _, r := range s.text {
			adv, _ := face.GlyphAdvance(r)
			if width+adv > maxWidth && (len(buf) > 0 || len(cur) > 0) {
				if len(buf) > 0 {
					cur = append(cur, span{text: string(buf), highlight: s.highlight})
				}
				pieces = append(pieces, cur)
				cur, buf, width = nil, nil, 0
			}
			buf = append(buf, r)
			width += adv
		}
		if len(buf) > 0 {
			cur = append(cur, span{text: string(buf), highlight: s.highlight})
		}
	}
	if len(cur) > 0 {
		pieces = append(pieces, cur)
	}
	return pieces
}

// textBlock is a laid-out paragraph block ready to draw.
type textBlock struct {
	face       font.Face
	lines      []line
	lineHeight int
	align      models.TextAlign
	color      color.RGBA
	highlight  color.NRGBA
	emPx       float64
}

func (b *textBlock) height() int {
	return len(b.lines) * b.lineHeight
}

// draw renders the block with its top-left corner at (left, top) inside a
// column of the given width.
func (b *textBlock) draw(dst *image.RGBA, left, top, width int) {
	m := b.face.Metrics()
	glyphH := (m.Ascent + m.Descent).Ceil()
	space := font.MeasureString(b.face, " ")

	for i, l := range b.lines {
		lw := lineWidth(b.face, l).Ceil()
		x := left
		switch b.align {
		case models.AlignCenter:
			x = left + (width-lw)/2
		case models.AlignRight:
			x = left + width - lw
		}
		lineTop := top + i*b.lineHeight
		baseline := lineTop + (b.lineHeight-glyphH)/2 + m.Ascent.Ceil()

		dot := fixed.I(x)
		for j, w := range l {
			if j > 0 {
				dot += space
			}
			for _, s := range w {
				adv := font.MeasureString(b.face, s.text)
				if s.highlight {
					b.drawMark(dst, dot, adv, baseline+m.Descent.Ceil())
				}
				d := &font.Drawer{
					Dst:  dst,
					Src:  image.NewUniform(b.color),
					Face: b.face,
					Dot:  fixed.Point26_6{X: dot, Y: fixed.I(baseline)},
				}
				d.DrawString(s.text)
				dot += adv
			}
		}
	}
}

// drawMark paints the highlighter bar behind a keyword: 0.4em tall on the
// bottom of the line box, overhanging 0.2em on each side.
func (b *textBlock) drawMark(dst *image.RGBA, x, adv fixed.Int26_6, bottom int) {
	over := int(0.2 * b.emPx)
	r := image.Rect(x.Floor()-over, bottom-int(0.4*b.emPx), (x + adv).Ceil()+over, bottom)
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(b.highlight), image.Point{}, draw.Over)
}
