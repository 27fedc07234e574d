// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Scan input source

package escl

import (
	"github.com/alexpevzner/scanbridge/abstract"
	"github.com/alexpevzner/scanbridge/xmldoc"
)

// InputSource represents the wire eSCL input source.
type InputSource int

// Known input sources.
const (
	UnknownInputSource InputSource = iota
	InputPlaten
	InputFeeder
	InputCamera
)

// decodeInputSource decodes [InputSource] from the XML tree.
func decodeInputSource(root xmldoc.Element) (src InputSource, err error) {
	return decodeEnum(root, DecodeInputSource)
}

// toXML generates XML tree for the [InputSource].
func (src InputSource) toXML(name string) xmldoc.Element {
	return xmldoc.Element{
		Name: name,
		Text: src.String(),
	}
}

// String returns a string representation of the [InputSource].
func (src InputSource) String() string {
	switch src {
	case InputPlaten:
		return "Platen"
	case InputFeeder:
		return "Feeder"
	case InputCamera:
		return "Camera"
	}
	return "Unknown"
}

// DecodeInputSource decodes [InputSource] out of its XML string
// representation.
func DecodeInputSource(s string) InputSource {
	switch s {
	case "Platen":
		return InputPlaten
	case "Feeder":
		return InputFeeder
	case "Camera":
		return InputCamera
	}
	return UnknownInputSource
}

// abstractInput maps the wire [InputSource] onto [abstract.Input].
func abstractInput(src InputSource) abstract.Input {
	switch src {
	case InputPlaten:
		return abstract.InputPlaten
	case InputFeeder:
		return abstract.InputADF
	}
	return abstract.InputUnset
}

// wireInputSource maps [abstract.Input] onto the wire [InputSource].
func wireInputSource(input abstract.Input) InputSource {
	switch input {
	case abstract.InputPlaten:
		return InputPlaten
	case abstract.InputADF:
		return InputFeeder
	}
	return UnknownInputSource
}
