// MFP     - Miulti-Function Printers and scanners toolkit
// IMAGING - Scanned page decoding
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Fully-decoded raster and the shared windowing/line-read logic

package imaging

import (
	"fmt"
	"image"
	"io"
)

// raster is a fully decoded page, held as a plain byte buffer in
// top-down row order, 8 bits per sample, [PixFmt] bytes per pixel.
//
// JPEG/PNG/TIFF each decode the whole page at once (the stdlib and
// x/image decoders offer no incremental API), so buffering the
// result here lets all four formats share one ReadLine/SetWindow
// implementation.
type raster struct {
	format PixFmt
	width  int
	height int
	stride int
	pix    []byte
}

// rasterDecoder implements the row-windowing half of [Decoder] on
// top of an already fully-decoded [raster]. BMP, JPEG, PNG and TIFF
// decoders differ only in how they produce the raster in Begin.
type rasterDecoder struct {
	r   raster
	win Window
	row int
}

func newRasterDecoder(r raster) *rasterDecoder {
	d := &rasterDecoder{r: r}
	d.win = Window{0, 0, r.width, r.height}
	return d
}

func (d *rasterDecoder) Reset() {
	d.win = Window{0, 0, d.r.width, d.r.height}
	d.row = 0
}

func (d *rasterDecoder) BytesPerPixel() int {
	return d.r.format.BytesPerPixel()
}

func (d *rasterDecoder) Params() Params {
	return Params{
		PixelsPerLine: d.win.Width,
		Lines:         d.win.Height,
		Depth:         8,
		Format:        d.r.format,
		BytesPerLine:  d.win.Width * d.BytesPerPixel(),
	}
}

// SetWindow clips win to the page bounds and adopts the clipped
// rectangle as the new window, returning it. ReadLine() uses the
// window in effect at the time of the call; Reset() restores the
// full-page window.
func (d *rasterDecoder) SetWindow(win Window) Window {
	if win == (Window{}) {
		win = Window{0, 0, d.r.width, d.r.height}
	}

	if win.X < 0 {
		win.Width += win.X
		win.X = 0
	}
	if win.Y < 0 {
		win.Height += win.Y
		win.Y = 0
	}
	if win.X+win.Width > d.r.width {
		win.Width = d.r.width - win.X
	}
	if win.Y+win.Height > d.r.height {
		win.Height = d.r.height - win.Y
	}
	if win.Width < 0 {
		win.Width = 0
	}
	if win.Height < 0 {
		win.Height = 0
	}

	d.win = win
	d.row = 0

	return win
}

// ReadLine fills buf with the next output row and returns the number
// of bytes written. It returns io.EOF once all rows of the current
// window have been delivered.
func (d *rasterDecoder) ReadLine(buf []byte) (int, error) {
	if d.row >= d.win.Height {
		return 0, io.EOF
	}

	bpp := d.BytesPerPixel()
	n := d.win.Width * bpp
	if len(buf) < n {
		return 0, fmt.Errorf("buffer too small: need %d, have %d", n, len(buf))
	}

	srcY := d.win.Y + d.row
	srcOff := srcY*d.r.stride + d.win.X*bpp
	copy(buf[:n], d.r.pix[srcOff:srcOff+n])

	d.row++
	return n, nil
}

func (d *rasterDecoder) Close() error {
	return nil
}

// rasterFromImage converts a decoded [image.Image] into a [raster].
// A genuinely single-channel *image.Gray is kept as 8-bit gray;
// everything else (palette, RGBA, CMYK, 16-bit, ...) is expanded to
// 8-bit RGB with alpha discarded, per the line contract.
func rasterFromImage(img image.Image) raster {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if gray, ok := img.(*image.Gray); ok {
		pix := make([]byte, w*h)
		for y := 0; y < h; y++ {
			srcOff := y * gray.Stride
			copy(pix[y*w:(y+1)*w], gray.Pix[srcOff:srcOff+w])
		}
		return raster{format: PixGray, width: w, height: h, stride: w, pix: pix}
	}

	pix := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			o := (y*w + x) * 3
			pix[o] = byte(r >> 8)
			pix[o+1] = byte(g >> 8)
			pix[o+2] = byte(bl >> 8)
		}
	}
	return raster{format: PixRGB, width: w, height: h, stride: w * 3, pix: pix}
}
