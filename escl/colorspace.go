// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Scan color space

package escl

import (
	"github.com/alexpevzner/scanbridge/generic"
	"github.com/alexpevzner/scanbridge/xmldoc"
)

// ColorSpace represents the eSCL color space.
type ColorSpace int

// Known color spaces.
const (
	UnknownColorSpace ColorSpace = iota
	SRGB
)

// decodeColorSpace decodes [ColorSpace] from the XML tree.
func decodeColorSpace(root xmldoc.Element) (cs ColorSpace, err error) {
	return decodeEnum(root, DecodeColorSpace)
}

// toXML generates XML tree for the [ColorSpace].
func (cs ColorSpace) toXML(name string) xmldoc.Element {
	return xmldoc.Element{
		Name: name,
		Text: cs.String(),
	}
}

// String returns a string representation of the [ColorSpace].
func (cs ColorSpace) String() string {
	switch cs {
	case SRGB:
		return "sRGB"
	}

	return "Unknown"
}

// DecodeColorSpace decodes [ColorSpace] out of its XML string representation.
func DecodeColorSpace(s string) ColorSpace {
	switch s {
	case "sRGB":
		return SRGB
	}

	return UnknownColorSpace
}

// ColorSpaces contains a set of [ColorSpace]s.
type ColorSpaces struct {
	generic.Bitset[ColorSpace]
}

// MakeColorSpaces makes [ColorSpaces] from the list of [ColorSpace]s.
func MakeColorSpaces(list ...ColorSpace) ColorSpaces {
	return ColorSpaces{generic.MakeBitset(list...)}
}
