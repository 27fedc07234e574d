// MFP     - Miulti-Function Printers and scanners toolkit
// IMAGING - Scanned page decoding
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// JPEG decoding, via the standard library

package imaging

import (
	"bytes"
	"image/jpeg"
)

// jpegDecoder decodes a JPEG page through the standard library and
// exposes it via [rasterDecoder].
type jpegDecoder struct {
	*rasterDecoder
}

func (d *jpegDecoder) Begin(data []byte) error {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	d.rasterDecoder = newRasterDecoder(rasterFromImage(img))
	return nil
}
