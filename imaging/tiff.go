// MFP     - Miulti-Function Printers and scanners toolkit
// IMAGING - Scanned page decoding
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// TIFF decoding, via golang.org/x/image/tiff

package imaging

import (
	"bytes"

	"golang.org/x/image/tiff"
)

// tiffDecoder decodes a TIFF page (as produced by WSD devices for
// bilevel/ADF pages) and exposes it via [rasterDecoder].
type tiffDecoder struct {
	*rasterDecoder
}

func (d *tiffDecoder) Begin(data []byte) error {
	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	d.rasterDecoder = newRasterDecoder(rasterFromImage(img))
	return nil
}
