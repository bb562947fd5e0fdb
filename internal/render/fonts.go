// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"slidesmith/internal/models"
)

type fontKey struct {
	family models.FontFamily
	bold   bool
	italic bool
}

// The editor's font families are mapped onto the bundled Go fonts. Bebas is
// a caps-only display face, so it maps to Go Bold and titles set in it are
// upper-cased by the layout.
var fontFiles = map[fontKey][]byte{
	{models.FontBebas, false, false}: gobold.TTF,
	{models.FontBebas, true, false}:  gobold.TTF,
	{models.FontBebas, false, true}:  gobolditalic.TTF,
	{models.FontBebas, true, true}:   gobolditalic.TTF,

	{models.FontInter, false, false}: goregular.TTF,
	{models.FontInter, true, false}:  gobold.TTF,
	{models.FontInter, false, true}:  goitalic.TTF,
	{models.FontInter, true, true}:   gobolditalic.TTF,

	{models.FontRaleway, false, false}: gomedium.TTF,
	{models.FontRaleway, true, false}:  gobold.TTF,
	{models.FontRaleway, false, true}:  gomediumitalic.TTF,
	{models.FontRaleway, true, true}:   gobolditalic.TTF,

	{models.FontSourceCodePro, false, false}: gomono.TTF,
	{models.FontSourceCodePro, true, false}:  gomonobold.TTF,
	{models.FontSourceCodePro, false, true}:  gomonoitalic.TTF,
	{models.FontSourceCodePro, true, true}:   gomonobolditalic.TTF,
}

// FontSet holds the parsed fonts. Parsed fonts are shared; faces are not
// safe for concurrent use, so every Scene opens its own.
type FontSet struct {
	fonts map[fontKey]*opentype.Font
}

// NewFontSet parses every bundled font file.
func NewFontSet() (*FontSet, error) {
	parsed := make(map[*byte]*opentype.Font)
	fs := &FontSet{fonts: make(map[fontKey]*opentype.Font, len(fontFiles))}
	for key, data := range fontFiles {
		// Several keys share a file; parse each file once.
		id := &data[0]
		f, ok := parsed[id]
		if !ok {
			var err error
			if f, err = opentype.Parse(data); err != nil {
				return nil, fmt.Errorf("render: parse font %s: %w", key.family, err)
			}
			parsed[id] = f
		}
		fs.fonts[key] = f
	}
	return fs, nil
}

// Face opens a face for the given family and style at size pixels.
// Unknown families fall back to Inter's mapping.
func (fs *FontSet) Face(family models.FontFamily, bold, italic bool, size float64) (font.Face, error) {
	f, ok := fs.fonts[fontKey{family, bold, italic}]
	if !ok {
		f = fs.fonts[fontKey{models.FontInter, bold, italic}]
	}
	if size < 1 {
		size = 1
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("render: open face %s %.0fpx: %w", family, size, err)
	}
	return face, nil
}

// TTF returns the raw font file backing a family and style, for embedding
// in documents.
func TTF(family models.FontFamily, bold, italic bool) []byte {
	if data, ok := fontFiles[fontKey{family, bold, italic}]; ok {
		return data
	}
	return fontFiles[fontKey{models.FontInter, bold, italic}]
}
