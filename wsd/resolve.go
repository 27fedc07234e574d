// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Resolve message body

package wsd

import "github.com/alexpevzner/scanbridge/xmldoc"

// Resolve represents a protocol Resolve message.
// It is unicast or multicast by clients that need a device's current
// transport addresses.
type Resolve struct {
	EndpointReference EndpointReference // Device being resolved
}

// DecodeResolve decodes [Resolve] from the XML tree.
func DecodeResolve(root xmldoc.Element) (resolve Resolve, err error) {
	defer func() { err = xmlErrWrap(root, err) }()

	ref := xmldoc.Lookup{Name: NsAddressing + ":EndpointReference", Required: true}
	missed := root.Lookup(&ref)
	if missed != nil {
		err = xmlErrMissed(missed.Name)
		return
	}

	resolve.EndpointReference, err = DecodeEndpointReference(ref.Elem)
	return
}

// ToXML generates XML tree for the message body.
func (resolve Resolve) ToXML() xmldoc.Element {
	return xmldoc.Element{
		Name: NsDiscovery + ":Resolve",
		Children: []xmldoc.Element{
			resolve.EndpointReference.ToXML(NsAddressing + ":EndpointReference"),
		},
	}
}

// MarkUsedNamespace marks [xmldoc.Namespace] entries used by
// data elements within the message body, if any.
func (resolve Resolve) MarkUsedNamespace(ns xmldoc.Namespace) {
}
