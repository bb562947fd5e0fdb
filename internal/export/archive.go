// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// EntryName is the archive filename of the slide at zero-based index i.
func EntryName(i int) string {
	return fmt.Sprintf("slide-%d.png", i+1)
}

// Archive encodes each bitmap as PNG into a zip archive, named
// slide-1.png, slide-2.png, ... in order.
func Archive(bitmaps []*image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	enc := png.Encoder{CompressionLevel: png.BestSpeed}

	for i, img := range bitmaps {
		// PNG data is already compressed; store it as-is.
		w, err := zw.CreateHeader(&zip.FileHeader{Name: EntryName(i), Method: zip.Store})
		if err != nil {
			return nil, fmt.Errorf("archive %s: %w", EntryName(i), err)
		}
		if err := enc.Encode(w, img); err != nil {
			return nil, fmt.Errorf("encode %s: %w", EntryName(i), err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("archive close: %w", err)
	}
	return buf.Bytes(), nil
}
