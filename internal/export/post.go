// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/signintech/gopdf"

	"slidesmith/internal/compose"
	"slidesmith/internal/models"
	"slidesmith/internal/render"
)

// Text post layout on A4, in points.
const (
	postMargin      = 56.7 // 20mm
	postBrandSize   = 24
	postTitleSize   = 28
	postHeadingSize = 16
	postBodySize    = 11
	postLeading     = 1.6
	postBrandGap    = 56.7
	postTitleGap    = 34
	postSectionGap  = 18
)

type rgb struct{ r, g, b uint8 }

var (
	postBrandInk   = rgb{179, 179, 179}
	postTitleInk   = rgb{168, 85, 247}
	postHeadingInk = rgb{255, 255, 255}
	postBodyInk    = rgb{229, 231, 235}
)

// postWriter lays out flowing text on dark A4 pages.
type postWriter struct {
	pdf  *gopdf.GoPdf
	page gopdf.Rect
	y    float64
}

// PostPDF renders a long-form document as a dark A4 PDF: brand line, title,
// lead, sections and hashtags, flowing onto new pages as needed.
func PostPDF(doc compose.Document, brand string) ([]byte, error) {
	page := *gopdf.PageSizeA4
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: page})
	pdf.SetInfo(gopdf.PdfInfo{
		Title:        doc.Title,
		Creator:      producer,
		Producer:     producer,
		CreationDate: time.Now(),
	})

	if err := pdf.AddTTFFontData("display", render.TTF(models.FontBebas, true, false)); err != nil {
		return nil, fmt.Errorf("post pdf: font: %w", err)
	}
	if err := pdf.AddTTFFontData("body", render.TTF(models.FontInter, false, false)); err != nil {
		return nil, fmt.Errorf("post pdf: font: %w", err)
	}

	w := &postWriter{pdf: pdf, page: page}
	w.newPage()

	if brand = strings.TrimSpace(brand); brand != "" {
		if err := w.centered("display", postBrandSize, postBrandInk, strings.ToUpper(brand)); err != nil {
			return nil, err
		}
		w.y += postBrandGap - postBrandSize
	}
	if err := w.paragraph("display", postTitleSize, 1.2, postTitleInk, strings.ToUpper(doc.Title)); err != nil {
		return nil, err
	}
	w.y += postTitleGap - postTitleSize
	if doc.Lead != "" {
		if err := w.paragraph("body", postBodySize, postLeading, postBodyInk, doc.Lead); err != nil {
			return nil, err
		}
	}
	for _, s := range doc.Sections {
		w.y += postSectionGap
		if s.Heading != "" {
			if err := w.paragraph("display", postHeadingSize, 1.3, postHeadingInk, strings.ToUpper(s.Heading)); err != nil {
				return nil, err
			}
		}
		if s.Body != "" {
			if err := w.paragraph("body", postBodySize, postLeading, postBodyInk, s.Body); err != nil {
				return nil, err
			}
		}
	}
	if tags := compose.HashtagLine(doc.Hashtags); tags != "" {
		w.y += postSectionGap
		if err := w.paragraph("body", postBodySize, postLeading, postTitleInk, tags); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("post pdf: write: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *postWriter) newPage() {
	w.pdf.AddPage()
	w.pdf.SetFillColor(0, 0, 0)
	w.pdf.RectFromUpperLeftWithStyle(0, 0, w.page.W, w.page.H, "F")
	w.y = postMargin
}

func (w *postWriter) setFont(family string, size float64, ink rgb) error {
	if err := w.pdf.SetFont(family, "", size); err != nil {
		return fmt.Errorf("post pdf: set font: %w", err)
	}
	w.pdf.SetTextColor(ink.r, ink.g, ink.b)
	return nil
}

func (w *postWriter) centered(family string, size float64, ink rgb, text string) error {
	if err := w.setFont(family, size, ink); err != nil {
		return err
	}
	tw, err := w.pdf.MeasureTextWidth(text)
	if err != nil {
		return fmt.Errorf("post pdf: measure: %w", err)
	}
	w.pdf.SetX((w.page.W - tw) / 2)
	w.pdf.SetY(w.y)
	if err := w.pdf.Cell(nil, text); err != nil {
		return fmt.Errorf("post pdf: cell: %w", err)
	}
	w.y += size
	return nil
}

// paragraph writes word-wrapped text, starting a new page when the next
// line would cross the bottom margin.
func (w *postWriter) paragraph(family string, size, leading float64, ink rgb, text string) error {
	if err := w.setFont(family, size, ink); err != nil {
		return err
	}
	lines, err := w.wrap(text, w.page.W-2*postMargin)
	if err != nil {
		return err
	}
	lineH := size * leading
	for _, l := range lines {
		if w.y+lineH > w.page.H-postMargin {
			w.newPage()
			if err := w.setFont(family, size, ink); err != nil {
				return err
			}
		}
		w.pdf.SetX(postMargin)
		w.pdf.SetY(w.y)
		if l != "" {
			if err := w.pdf.Cell(nil, l); err != nil {
				return fmt.Errorf("post pdf: cell: %w", err)
			}
		}
		w.y += lineH
	}
	return nil
}

// wrap splits text into lines no wider than width using the current font.
func (w *postWriter) wrap(text string, width float64) ([]string, error) {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, word := range words[1:] {
			candidate := cur + " " + word
			cw, err := w.pdf.MeasureTextWidth(candidate)
			if err != nil {
				return nil, fmt.Errorf("post pdf: measure: %w", err)
			}
			if cw > width {
				lines = append(lines, cur)
				cur = word
				continue
			}
			cur = candidate
		}
		lines = append(lines, cur)
	}
	return lines, nil
}
