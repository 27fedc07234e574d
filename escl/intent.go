// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Scan intent

package escl

import (
	"github.com/alexpevzner/scanbridge/abstract"
	"github.com/alexpevzner/scanbridge/xmldoc"
)

// Intent represents the wire eSCL scan intent.
type Intent int

// Known scan intents.
const (
	UnknownIntent Intent = iota
	Document
	Photo
	Preview
	TextAndGraphic
	BusinessCard
)

// decodeIntent decodes [Intent] from the XML tree.
func decodeIntent(root xmldoc.Element) (intent Intent, err error) {
	return decodeEnum(root, DecodeIntent)
}

// toXML generates XML tree for the [Intent].
func (intent Intent) toXML(name string) xmldoc.Element {
	return xmldoc.Element{
		Name: name,
		Text: intent.String(),
	}
}

// String returns a string representation of the [Intent].
func (intent Intent) String() string {
	switch intent {
	case Document:
		return "Document"
	case Photo:
		return "Photo"
	case Preview:
		return "Preview"
	case TextAndGraphic:
		return "TextAndGraphic"
	case BusinessCard:
		return "BusinessCard"
	}
	return "Unknown"
}

// DecodeIntent decodes [Intent] out of its XML string representation.
func DecodeIntent(s string) Intent {
	switch s {
	case "Document":
		return Document
	case "Photo":
		return Photo
	case "Preview":
		return Preview
	case "TextAndGraphic":
		return TextAndGraphic
	case "BusinessCard":
		return BusinessCard
	}
	return UnknownIntent
}

// abstractIntent maps the wire [Intent] onto [abstract.Intent].
func abstractIntent(intent Intent) abstract.Intent {
	switch intent {
	case Document:
		return abstract.IntentDocument
	case Photo:
		return abstract.IntentPhoto
	case Preview:
		return abstract.IntentPreview
	case TextAndGraphic:
		return abstract.IntentTextAndGraphic
	case BusinessCard:
		return abstract.IntentBusinessCard
	}
	return abstract.IntentUnset
}

// wireIntent maps [abstract.Intent] onto the wire [Intent].
func wireIntent(intent abstract.Intent) Intent {
	switch intent {
	case abstract.IntentDocument:
		return Document
	case abstract.IntentPhoto:
		return Photo
	case abstract.IntentPreview:
		return Preview
	case abstract.IntentTextAndGraphic:
		return TextAndGraphic
	case abstract.IntentBusinessCard:
		return BusinessCard
	}
	return UnknownIntent
}
