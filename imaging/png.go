// MFP     - Miulti-Function Printers and scanners toolkit
// IMAGING - Scanned page decoding
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// PNG decoding, via the standard library

package imaging

import (
	"bytes"
	"errors"
	"image/png"
)

// ErrPNGInterlaced is returned for Adam7-interlaced PNGs, which the
// line contract doesn't support.
var ErrPNGInterlaced = errors.New("imaging: interlaced PNG not supported")

// pngDecoder decodes a PNG page through the standard library,
// rejecting interlaced images, and exposes it via [rasterDecoder].
//
// image/png itself expands sub-8-bit gray and palette to full
// samples, so [rasterFromImage] handling the non-*image.Gray case
// generically already satisfies the "expand to 8-bit RGB, strip
// alpha" requirement.
type pngDecoder struct {
	*rasterDecoder
}

func (d *pngDecoder) Begin(data []byte) error {
	if pngInterlaced(data) {
		return ErrPNGInterlaced
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	d.rasterDecoder = newRasterDecoder(rasterFromImage(img))
	return nil
}

// pngInterlaceMethodOffset is the byte offset of the IHDR chunk's
// interlace method field: 8 (signature) + 4 (chunk length) + 4
// (chunk type "IHDR") + 12 (width, height, bit depth, color type,
// compression, filter method).
const pngInterlaceMethodOffset = 8 + 4 + 4 + 12

func pngInterlaced(data []byte) bool {
	return len(data) > pngInterlaceMethodOffset && data[pngInterlaceMethodOffset] != 0
}
