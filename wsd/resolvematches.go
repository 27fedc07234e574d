// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// ResolveMatches message body

package wsd

import "github.com/alexpevzner/scanbridge/xmldoc"

// ResolveMatch carries the resolved device's current state.
type ResolveMatch struct {
	EndpointReference EndpointReference // Resolved device identifier
	Types             Types             // Device/service types
	XAddrs            []AnyURI          // Transport addresses
	MetadataVersion   uint64            // Metadata version
}

// ResolveMatches represents a protocol ResolveMatches message, sent
// in response to a [Resolve].
type ResolveMatches struct {
	ResolveMatch *ResolveMatch // nil if the device was not found
}

// DecodeResolveMatches decodes [ResolveMatches] from the XML tree.
func DecodeResolveMatches(root xmldoc.Element) (rm ResolveMatches, err error) {
	defer func() { err = xmlErrWrap(root, err) }()

	chld, ok := root.ChildByName(NsDiscovery + ":ResolveMatch")
	if !ok {
		return
	}

	var m ProbeMatch
	m, err = DecodeProbeMatch(chld)
	if err != nil {
		return
	}

	match := ResolveMatch(m)
	rm.ResolveMatch = &match

	return
}

// ToXML generates XML tree for the message body.
func (rm ResolveMatches) ToXML() xmldoc.Element {
	elm := xmldoc.Element{Name: NsDiscovery + ":ResolveMatches"}

	if rm.ResolveMatch != nil {
		m := ProbeMatch(*rm.ResolveMatch)
		match := m.ToXML()
		match.Name = NsDiscovery + ":ResolveMatch"
		elm.Children = append(elm.Children, match)
	}

	return elm
}

// MarkUsedNamespace marks [xmldoc.Namespace] entries used by
// data elements within the message body.
func (rm ResolveMatches) MarkUsedNamespace(ns xmldoc.Namespace) {
	if rm.ResolveMatch != nil {
		markTypesNamespace(ns, rm.ResolveMatch.Types)
	}
}
