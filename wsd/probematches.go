// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// ProbeMatches message body

package wsd

import (
	"strconv"
	"strings"

	"github.com/alexpevzner/scanbridge/xmldoc"
)

// ProbeMatch describes a single device that answers a [Probe].
type ProbeMatch struct {
	EndpointReference EndpointReference // Stable identifier of the device
	Types             Types             // Device/service types
	XAddrs            []AnyURI          // Transport addresses
	MetadataVersion   uint64            // Metadata version
}

// ProbeMatches represents a protocol ProbeMatches message, unicast in
// response to a matching [Probe].
type ProbeMatches struct {
	ProbeMatch []ProbeMatch // Matching devices
}

// DecodeProbeMatch decodes a single [ProbeMatch] from the XML tree.
func DecodeProbeMatch(root xmldoc.Element) (m ProbeMatch, err error) {
	defer func() { err = xmlErrWrap(root, err) }()

	ref := xmldoc.Lookup{Name: NsAddressing + ":EndpointReference", Required: true}
	types := xmldoc.Lookup{Name: NsDiscovery + ":Types"}
	xaddrs := xmldoc.Lookup{Name: NsDiscovery + ":XAddrs"}
	metaver := xmldoc.Lookup{Name: NsDiscovery + ":MetadataVersion", Required: true}

	missed := root.Lookup(&ref, &types, &xaddrs, &metaver)
	if missed != nil {
		err = xmlErrMissed(missed.Name)
		return
	}

	m.EndpointReference, err = DecodeEndpointReference(ref.Elem)
	if err != nil {
		return
	}

	if types.Found {
		m.Types, err = DecodeTypes(types.Elem)
		if err != nil {
			return
		}
	}

	if xaddrs.Found {
		for _, s := range strings.Fields(xaddrs.Elem.Text) {
			m.XAddrs = append(m.XAddrs, AnyURI(s))
		}
	}

	m.MetadataVersion, err = strconv.ParseUint(metaver.Elem.Text, 10, 64)
	return
}

// ToXML generates XML tree for the ProbeMatch.
func (m ProbeMatch) ToXML() xmldoc.Element {
	elm := xmldoc.Element{
		Name: NsDiscovery + ":ProbeMatch",
		Children: []xmldoc.Element{
			m.EndpointReference.ToXML(NsAddressing + ":EndpointReference"),
		},
	}

	if len(m.Types) != 0 {
		elm.Children = append(elm.Children, m.Types.ToXML())
	}

	if len(m.XAddrs) != 0 {
		words := make([]string, len(m.XAddrs))
		for i, x := range m.XAddrs {
			words[i] = string(x)
		}
		elm.Children = append(elm.Children, xmldoc.Element{
			Name: NsDiscovery + ":XAddrs",
			Text: strings.Join(words, " "),
		})
	}

	elm.Children = append(elm.Children, xmldoc.Element{
		Name: NsDiscovery + ":MetadataVersion",
		Text: strconv.FormatUint(m.MetadataVersion, 10),
	})

	return elm
}

// DecodeProbeMatches decodes [ProbeMatches] from the XML tree.
func DecodeProbeMatches(root xmldoc.Element) (pm ProbeMatches, err error) {
	defer func() { err = xmlErrWrap(root, err) }()

	for _, chld := range root.ChildrenByName(NsDiscovery + ":ProbeMatch") {
		var m ProbeMatch
		m, err = DecodeProbeMatch(chld)
		if err != nil {
			return
		}
		pm.ProbeMatch = append(pm.ProbeMatch, m)
	}

	return
}

// ToXML generates XML tree for the message body.
func (pm ProbeMatches) ToXML() xmldoc.Element {
	elm := xmldoc.Element{Name: NsDiscovery + ":ProbeMatches"}
	for _, m := range pm.ProbeMatch {
		elm.Children = append(elm.Children, m.ToXML())
	}
	return elm
}

// MarkUsedNamespace marks [xmldoc.Namespace] entries used by
// data elements within the message body.
func (pm ProbeMatches) MarkUsedNamespace(ns xmldoc.Namespace) {
	for _, m := range pm.ProbeMatch {
		markTypesNamespace(ns, m.Types)
	}
}
