// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Probe message body

package wsd

import "github.com/alexpevzner/scanbridge/xmldoc"

// Probe represents a protocol Probe message.
// It is multicast by clients searching for devices of interest.
type Probe struct {
	Types Types // Types of devices being searched for
}

// DecodeProbe decodes [Probe] from the XML tree.
func DecodeProbe(root xmldoc.Element) (probe Probe, err error) {
	defer func() { err = xmlErrWrap(root, err) }()

	types := xmldoc.Lookup{Name: NsDiscovery + ":Types", Required: true}
	missed := root.Lookup(&types)
	if missed != nil {
		err = xmlErrMissed(missed.Name)
		return
	}

	probe.Types, err = DecodeTypes(types.Elem)
	return
}

// ToXML generates XML tree for the message body.
func (probe Probe) ToXML() xmldoc.Element {
	return xmldoc.Element{
		Name:     NsDiscovery + ":Probe",
		Children: []xmldoc.Element{probe.Types.ToXML()},
	}
}

// MarkUsedNamespace marks [xmldoc.Namespace] entries used by
// data elements within the message body.
func (probe Probe) MarkUsedNamespace(ns xmldoc.Namespace) {
	markTypesNamespace(ns, probe.Types)
}
