// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Hello message body

package wsd

import (
	"strconv"
	"strings"

	"github.com/alexpevzner/scanbridge/xmldoc"
)

// Hello represents a protocol Hello message.
// Each device multicasts this message when it joins the network.
type Hello struct {
	EndpointReference EndpointReference // Stable identifier of the device
	Types             Types             // Device/service types
	XAddrs            []AnyURI          // Transport addresses
	MetadataVersion   uint64            // Metadata version
}

// DecodeHello decodes [Hello] from the XML tree.
func DecodeHello(root xmldoc.Element) (hello Hello, err error) {
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

	hello.EndpointReference, err = DecodeEndpointReference(ref.Elem)
	if err != nil {
		return
	}

	if types.Found {
		hello.Types, err = DecodeTypes(types.Elem)
		if err != nil {
			return
		}
	}

	if xaddrs.Found {
		for _, s := range strings.Fields(xaddrs.Elem.Text) {
			hello.XAddrs = append(hello.XAddrs, AnyURI(s))
		}
	}

	hello.MetadataVersion, err = strconv.ParseUint(metaver.Elem.Text, 10, 64)
	return
}

// ToXML generates XML tree for the message body.
func (hello Hello) ToXML() xmldoc.Element {
	elm := xmldoc.Element{
		Name: NsDiscovery + ":Hello",
		Children: []xmldoc.Element{
			hello.EndpointReference.ToXML(NsAddressing + ":EndpointReference"),
		},
	}

	if len(hello.Types) != 0 {
		elm.Children = append(elm.Children, hello.Types.ToXML())
	}

	if len(hello.XAddrs) != 0 {
		words := make([]string, len(hello.XAddrs))
		for i, x := range hello.XAddrs {
			words[i] = string(x)
		}
		elm.Children = append(elm.Children, xmldoc.Element{
			Name: NsDiscovery + ":XAddrs",
			Text: strings.Join(words, " "),
		})
	}

	elm.Children = append(elm.Children, xmldoc.Element{
		Name: NsDiscovery + ":MetadataVersion",
		Text: strconv.FormatUint(hello.MetadataVersion, 10),
	})

	return elm
}

// MarkUsedNamespace marks [xmldoc.Namespace] entries used by
// data elements within the message body.
func (hello Hello) MarkUsedNamespace(ns xmldoc.Namespace) {
	markTypesNamespace(ns, hello.Types)
}
