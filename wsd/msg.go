// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Message envelope

package wsd

import (
	"fmt"
	"net/netip"

	"github.com/alexpevzner/scanbridge/xmldoc"
)

// Msg represents a WSD protocol message (a SOAP envelope).
type Msg struct {
	Header Header // Message header
	Body   Body   // Message body

	// Filled in by the receiving transport, not part of the wire
	// representation.
	From  netip.AddrPort // Sender address
	To    netip.AddrPort // Local address message was received on
	IfIdx int            // Receiving interface index
}

// DecodeMsg decodes a [Msg] out of a raw UDP datagram or HTTP body.
func DecodeMsg(data []byte) (m Msg, err error) {
	root, err := xmldoc.DecodeBytes(NsMap, data)
	if err != nil {
		return Msg{}, err
	}
	return DecodeMsgFromElement(root)
}

// DecodeMsgFromElement decodes a [Msg] from an already-parsed XML tree.
func DecodeMsgFromElement(root xmldoc.Element) (m Msg, err error) {
	const (
		rootName = NsSOAP + ":" + "Envelope"
		hdrName  = NsSOAP + ":" + "Header"
		bodyName = NsSOAP + ":" + "Body"
	)

	defer func() { err = xmlErrWrap(root, err) }()

	if root.Name != rootName {
		err = fmt.Errorf("%s: missed", rootName)
		return
	}

	hdr := xmldoc.Lookup{Name: hdrName, Required: true}
	body := xmldoc.Lookup{Name: bodyName, Required: true}

	ms := root.Lookup(&hdr, &body)
	if ms != nil {
		err = fmt.Errorf("%s: missed", ms.Name)
		return
	}

	m.Header, err = DecodeHeader(hdr.Elem)
	if err != nil {
		return
	}

	// Body element, if any, is the first (and normally only) child
	// of soap:Body.
	var bodyElem xmldoc.Element
	if len(body.Elem.Children) > 0 {
		bodyElem = body.Elem.Children[0]
	}

	if bodyElem.Name == NsSOAP+":Fault" {
		m.Body, err = DecodeFault(bodyElem)
		return
	}

	switch m.Header.Action {
	case ActHello:
		m.Body, err = DecodeHello(bodyElem)
	case ActBye:
		m.Body, err = DecodeBye(bodyElem)
	case ActProbe:
		m.Body, err = DecodeProbe(bodyElem)
	case ActProbeMatches:
		m.Body, err = DecodeProbeMatches(bodyElem)
	case ActResolve:
		m.Body, err = DecodeResolve(bodyElem)
	case ActResolveMatches:
		m.Body, err = DecodeResolveMatches(bodyElem)
	case ActGetScannerElementsRsp:
		m.Body, err = DecodeScannerConfiguration(bodyElem)
	case ActGetScannerStatusRsp:
		m.Body, err = DecodeScannerStatus(bodyElem)
	case ActCreateScanJobRsp:
		m.Body, err = DecodeCreateScanJobResponse(bodyElem)
	case ActRetrieveImageRsp:
		m.Body, err = DecodeRetrieveImageResponse(bodyElem)
	case ActCancelJobRsp:
		m.Body, err = DecodeCancelJobResponse(bodyElem)
	case ActFault:
		m.Body, err = DecodeFault(bodyElem)
	default:
		err = fmt.Errorf("%s: unhandled action", m.Header.Action)
	}

	return
}

// ToXML generates the XML tree for the message.
func (m Msg) ToXML() xmldoc.Element {
	return xmldoc.Element{
		Name: NsSOAP + ":" + "Envelope",
		Children: []xmldoc.Element{
			m.Header.ToXML(),
			{
				Name:     NsSOAP + ":" + "Body",
				Children: []xmldoc.Element{m.Body.ToXML()},
			},
		},
	}
}

// Body represents a message body.
type Body interface {
	ToXML() xmldoc.Element
}
