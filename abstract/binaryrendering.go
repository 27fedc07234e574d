// MFP - Miulti-Function Printers and scanners toolkit
// Abstract definition for printer and scanner interfaces
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// 1-bit black and white rendering

package abstract

// BinaryRendering specifies how a 1-bit black and white image is
// obtained, for [ColorModeBinary].
type BinaryRendering int

// Known binary renderings.
const (
	BinaryRenderingUnset BinaryRendering = iota // Not specified
	BinaryRenderingHalftone
	BinaryRenderingThreshold

	binaryRenderingMax // Must be the last
)

// String returns a string representation of the [BinaryRendering].
func (br BinaryRendering) String() string {
	switch br {
	case BinaryRenderingHalftone:
		return "Halftone"
	case BinaryRenderingThreshold:
		return "Threshold"
	}

	return "Unset"
}
