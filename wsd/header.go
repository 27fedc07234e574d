// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Message header

package wsd

import (
	"strconv"

	"github.com/alexpevzner/scanbridge/xmldoc"
)

// Header represents a WS-Addressing/WS-Discovery SOAP header.
type Header struct {
	Action      Action             // Message action (kind)
	MessageID   AnyURI             // Unique message identifier
	To          AnyURI             // Destination address, if any
	RelatesTo   AnyURI             // MessageID this message relates to
	ReplyTo     *EndpointReference // Reply destination, if any
	AppSequence *AppSequence       // Message sequencing info, if any
}

// AppSequence carries WS-Discovery message sequencing information,
// used by receivers to detect and discard stale/duplicate messages.
type AppSequence struct {
	InstanceID    uint64 // Sender's boot instance identifier
	SequenceID    AnyURI // Optional sequence identifier
	MessageNumber uint64 // Monotonically increasing message number
}

// DecodeHeader decodes [Header] from the XML tree.
func DecodeHeader(root xmldoc.Element) (hdr Header, err error) {
	defer func() { err = xmlErrWrap(root, err) }()

	action := xmldoc.Lookup{Name: NsAddressing + ":Action", Required: true}
	msgid := xmldoc.Lookup{Name: NsAddressing + ":MessageID", Required: true}
	to := xmldoc.Lookup{Name: NsAddressing + ":To"}
	relatesTo := xmldoc.Lookup{Name: NsAddressing + ":RelatesTo"}
	replyTo := xmldoc.Lookup{Name: NsAddressing + ":ReplyTo"}
	appseq := xmldoc.Lookup{Name: NsDiscovery + ":AppSequence"}

	missed := root.Lookup(&action, &msgid, &to, &relatesTo, &replyTo, &appseq)
	if missed != nil {
		err = xmlErrMissed(missed.Name)
		return
	}

	hdr.Action = Action(action.Elem.Text)

	hdr.MessageID, err = DecodeAnyURI(msgid.Elem)
	if err != nil {
		return
	}

	if to.Found {
		hdr.To, err = DecodeAnyURI(to.Elem)
		if err != nil {
			return
		}
	}

	if relatesTo.Found {
		hdr.RelatesTo, err = DecodeAnyURI(relatesTo.Elem)
		if err != nil {
			return
		}
	}

	if replyTo.Found {
		var ref EndpointReference
		ref, err = DecodeEndpointReference(replyTo.Elem)
		if err != nil {
			return
		}
		hdr.ReplyTo = &ref
	}

	if appseq.Found {
		var seq AppSequence
		seq, err = DecodeAppSequence(appseq.Elem)
		if err != nil {
			return
		}
		hdr.AppSequence = &seq
	}

	return
}

// ToXML generates the XML tree for the header.
func (hdr Header) ToXML() xmldoc.Element {
	elm := xmldoc.Element{
		Name: NsSOAP + ":" + "Header",
		Children: []xmldoc.Element{
			{Name: NsAddressing + ":Action", Text: string(hdr.Action)},
			{Name: NsAddressing + ":MessageID", Text: string(hdr.MessageID)},
		},
	}

	if hdr.To != "" {
		elm.Children = append(elm.Children,
			xmldoc.Element{Name: NsAddressing + ":To", Text: string(hdr.To)})
	}

	if hdr.RelatesTo != "" {
		elm.Children = append(elm.Children,
			xmldoc.Element{Name: NsAddressing + ":RelatesTo", Text: string(hdr.RelatesTo)})
	}

	if hdr.ReplyTo != nil {
		elm.Children = append(elm.Children,
			hdr.ReplyTo.ToXML(NsAddressing+":ReplyTo"))
	}

	if hdr.AppSequence != nil {
		elm.Children = append(elm.Children, hdr.AppSequence.ToXML())
	}

	return elm
}

// DecodeAppSequence decodes [AppSequence] from the XML tree.
func DecodeAppSequence(root xmldoc.Element) (seq AppSequence, err error) {
	defer func() { err = xmlErrWrap(root, err) }()

	instanceID, ok := root.Attr("InstanceId")
	if !ok {
		err = xmlErrMissed("InstanceId")
		return
	}

	seq.InstanceID, err = strconv.ParseUint(instanceID, 10, 64)
	if err != nil {
		return
	}

	if msgnum, ok := root.Attr("MessageNumber"); ok {
		seq.MessageNumber, err = strconv.ParseUint(msgnum, 10, 64)
		if err != nil {
			return
		}
	}

	if seqid, ok := root.Attr("SequenceId"); ok {
		seq.SequenceID = AnyURI(seqid)
	}

	return
}

// ToXML generates the XML tree for the AppSequence.
func (seq AppSequence) ToXML() xmldoc.Element {
	elm := xmldoc.Element{
		Name: NsDiscovery + ":AppSequence",
		Attrs: []xmldoc.Attr{
			{Name: "InstanceId", Value: strconv.FormatUint(seq.InstanceID, 10)},
			{Name: "MessageNumber", Value: strconv.FormatUint(seq.MessageNumber, 10)},
		},
	}

	if seq.SequenceID != "" {
		elm.Attrs = append(elm.Attrs,
			xmldoc.Attr{Name: "SequenceId", Value: string(seq.SequenceID)})
	}

	return elm
}
