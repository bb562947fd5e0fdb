// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/signintech/gopdf"

	"slidesmith/internal/models"
)

const producer = "slidesmith"

// Document builds a PDF with one page per bitmap. Pages measure the canvas
// size in points and each bitmap fills its page.
func Document(bitmaps []*image.RGBA, canvas models.Canvas, title string) ([]byte, error) {
	page := gopdf.Rect{W: float64(canvas.Width), H: float64(canvas.Height)}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: page})
	pdf.SetInfo(gopdf.PdfInfo{
		Title:        title,
		Subject:      fmt.Sprintf("%s %dx%d", canvas.Orientation(), canvas.Width, canvas.Height),
		Creator:      producer,
		Producer:     producer,
		CreationDate: time.Now(),
	})

	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	for i, img := range bitmaps {
		var raw bytes.Buffer
		if err := enc.Encode(&raw, img); err != nil {
			return nil, fmt.Errorf("pdf page %d: encode: %w", i+1, err)
		}
		holder, err := gopdf.ImageHolderByBytes(raw.Bytes())
		if err != nil {
			return nil, fmt.Errorf("pdf page %d: image: %w", i+1, err)
		}
		pdf.AddPage()
		if err := pdf.ImageByHolder(holder, 0, 0, &gopdf.Rect{W: page.W, H: page.H}); err != nil {
			return nil, fmt.Errorf("pdf page %d: place image: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("pdf write: %w", err)
	}
	return buf.Bytes(), nil
}
