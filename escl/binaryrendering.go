// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// 1-bit black and white rendering

package escl

import (
	"github.com/alexpevzner/scanbridge/generic"
	"github.com/alexpevzner/scanbridge/xmldoc"
)

// BinaryRendering specifies how a 1-bit black and white image is
// obtained.
type BinaryRendering int

// Known binary renderings.
const (
	UnknownBinaryRendering BinaryRendering = iota
	Halftone
	Threshold
)

// decodeBinaryRendering decodes [BinaryRendering] from the XML tree.
func decodeBinaryRendering(root xmldoc.Element) (br BinaryRendering, err error) {
	return decodeEnum(root, DecodeBinaryRendering)
}

// toXML generates XML tree for the [BinaryRendering].
func (br BinaryRendering) toXML(name string) xmldoc.Element {
	return xmldoc.Element{
		Name: name,
		Text: br.String(),
	}
}

// String returns a string representation of the [BinaryRendering].
func (br BinaryRendering) String() string {
	switch br {
	case Halftone:
		return "Halftone"
	case Threshold:
		return "Threshold"
	}

	return "Unknown"
}

// DecodeBinaryRendering decodes [BinaryRendering] out of its XML
// string representation.
func DecodeBinaryRendering(s string) BinaryRendering {
	switch s {
	case "Halftone":
		return Halftone
	case "Threshold":
		return Threshold
	}

	return UnknownBinaryRendering
}

// BinaryRenderings contains a set of [BinaryRendering]s.
type BinaryRenderings struct {
	generic.Bitset[BinaryRendering]
}

// MakeBinaryRenderings makes [BinaryRenderings] from the list of
// [BinaryRendering]s.
func MakeBinaryRenderings(list ...BinaryRendering) BinaryRenderings {
	return BinaryRenderings{generic.MakeBitset(list...)}
}
