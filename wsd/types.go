// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Service/device type qualifiers (d:Types)

package wsd

import (
	"fmt"
	"strings"

	"github.com/alexpevzner/scanbridge/xmldoc"
)

// Type represents a single service or device type qualifier, as
// carried in the space-separated text of a d:Types element.
type Type int

// Known types.
const (
	UnknownType Type = iota
	Device              // devprof:Device, the device itself
	ScanDeviceType      // scan:ScanDeviceType, the scan service
)

// qname returns the type's "prefix:Local" wire representation.
func (t Type) qname() string {
	switch t {
	case Device:
		return NsDevprof + ":Device"
	case ScanDeviceType:
		return NsScan + ":ScanDeviceType"
	}
	return ""
}

// String returns the type's wire representation.
func (t Type) String() string {
	if s := t.qname(); s != "" {
		return s
	}
	return "Unknown"
}

var typeByQName = map[string]Type{
	Device.qname():         Device,
	ScanDeviceType.qname(): ScanDeviceType,
}

// Types is a list of [Type] qualifiers.
type Types []Type

// ToXML generates the XML tree for the d:Types element.
func (types Types) ToXML() xmldoc.Element {
	words := make([]string, len(types))
	for i, t := range types {
		words[i] = t.String()
	}

	return xmldoc.Element{
		Name: NsDiscovery + ":Types",
		Text: strings.Join(words, " "),
	}
}

// Has reports whether types includes t.
func (types Types) Has(t Type) bool {
	for _, t2 := range types {
		if t == t2 {
			return true
		}
	}
	return false
}

// DecodeTypes decodes [Types] from the XML tree.
func DecodeTypes(root xmldoc.Element) (types Types, err error) {
	defer func() { err = xmlErrWrap(root, err) }()

	for _, word := range strings.Fields(root.Text) {
		t, ok := typeByQName[word]
		if !ok {
			err = fmt.Errorf("%q: unknown type", word)
			return
		}
		types = append(types, t)
	}

	return
}

// prefixOf splits "prefix:local" and returns the prefix.
func prefixOf(qname string) string {
	if i := strings.IndexByte(qname, ':'); i >= 0 {
		return qname[:i]
	}
	return ""
}

// markTypesNamespace marks the namespace prefixes carried inside a
// Types value's text (e.g. "devprof" in "devprof:Device"), which
// Element.Encode cannot see because they live in text, not in a tag
// or attribute name.
func markTypesNamespace(ns xmldoc.Namespace, types Types) {
	for _, t := range types {
		prefix := prefixOf(t.String())
		for i := range ns {
			if ns[i].Prefix == prefix {
				ns[i].Used = true
			}
		}
	}
}
