// MFP - Miulti-Function Printers and scanners toolkit
// Abstract definition for printer and scanner interfaces
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Scan region

package abstract

// Region specifies the scan region, in hundredths of a millimeter,
// relative to the scanner's origin.
type Region struct {
	XOffset int // X offset of the region
	YOffset int // Y offset of the region
	Width   int // Region width
	Height  int // Region height
}
