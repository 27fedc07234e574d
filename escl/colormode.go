// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Scan color mode

package escl

import (
	"github.com/alexpevzner/scanbridge/generic"
	"github.com/alexpevzner/scanbridge/xmldoc"
)

// ColorMode represents the eSCL color mode.
type ColorMode int

// Known color modes.
const (
	UnknownColorMode ColorMode = iota // Unknown color mode
	BlackAndWhite1
	Grayscale8
	Grayscale16
	RGB24
	RGB48
)

// decodeColorMode decodes [ColorMode] from the XML tree.
func decodeColorMode(root xmldoc.Element) (mode ColorMode, err error) {
	return decodeEnum(root, DecodeColorMode)
}

// toXML generates XML tree for the [ColorMode].
func (mode ColorMode) toXML(name string) xmldoc.Element {
	return xmldoc.Element{
		Name: name,
		Text: mode.String(),
	}
}

// String returns a string representation of the [ColorMode].
func (mode ColorMode) String() string {
	switch mode {
	case BlackAndWhite1:
		return "BlackAndWhite1"
	case Grayscale8:
		return "Grayscale8"
	case Grayscale16:
		return "Grayscale16"
	case RGB24:
		return "RGB24"
	case RGB48:
		return "RGB48"
	}

	return "Unknown"
}

// DecodeColorMode decodes [ColorMode] out of its XML string representation.
func DecodeColorMode(s string) ColorMode {
	switch s {
	case "BlackAndWhite1":
		return BlackAndWhite1
	case "Grayscale8":
		return Grayscale8
	case "Grayscale16":
		return Grayscale16
	case "RGB24":
		return RGB24
	case "RGB48":
		return RGB48
	}

	return UnknownColorMode
}

// ColorModes contains a set of [ColorMode]s.
type ColorModes struct {
	generic.Bitset[ColorMode]
	Default ColorMode
}

// MakeColorModes makes [ColorModes] from the list of [ColorMode]s.
func MakeColorModes(list ...ColorMode) ColorModes {
	return ColorModes{generic.MakeBitset(list...), UnknownColorMode}
}
