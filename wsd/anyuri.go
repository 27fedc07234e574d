// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// AnyURI type

package wsd

import "github.com/alexpevzner/scanbridge/xmldoc"

// AnyURI represents the xsd:anyURI type, as used by WS-Addressing
// and WS-Discovery elements.
type AnyURI string

// DecodeAnyURI decodes [AnyURI] from the XML tree.
func DecodeAnyURI(root xmldoc.Element) (AnyURI, error) {
	return AnyURI(root.Text), nil
}
