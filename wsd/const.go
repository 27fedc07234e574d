// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// XML namespaces and actions

package wsd

import (
	"fmt"
	"strings"

	"github.com/alexpevzner/scanbridge/xmldoc"
)

// Namespace prefixes, used directly when building qualified element
// names (e.g. NsSOAP + ":" + "Envelope").
const (
	NsSOAP       = "s"
	NsAddressing = "a"
	NsDiscovery  = "d"
	NsDevprof    = "devprof"
	NsMex        = "mex"
	NsScan       = "scan" // WSD scan service namespace (wscn)
)

// NsMap is the namespace table used to decode and encode WSD messages.
var NsMap = xmldoc.Namespace{
	{URL: "http://www.w3.org/2003/05/soap-envelope", Prefix: NsSOAP},
	{URL: "http://schemas.xmlsoap.org/ws/2004/08/addressing", Prefix: NsAddressing},
	{URL: "http://schemas.xmlsoap.org/ws/2005/04/discovery", Prefix: NsDiscovery},
	{URL: "http://schemas.xmlsoap.org/ws/2006/02/devprof", Prefix: NsDevprof},
	{URL: "http://schemas.xmlsoap.org/ws/2004/09/mex", Prefix: NsMex},
	{URL: "http://schemas.microsoft.com/windows/2006/08/wdp/scan", Prefix: NsScan},
}

// Action identifies the WS-Addressing action (message kind) of a message.
type Action string

// Known actions.
const (
	ActHello          = Action("http://schemas.xmlsoap.org/ws/2005/04/discovery/Hello")
	ActBye            = Action("http://schemas.xmlsoap.org/ws/2005/04/discovery/Bye")
	ActProbe          = Action("http://schemas.xmlsoap.org/ws/2005/04/discovery/Probe")
	ActProbeMatches   = Action("http://schemas.xmlsoap.org/ws/2005/04/discovery/ProbeMatches")
	ActResolve        = Action("http://schemas.xmlsoap.org/ws/2005/04/discovery/Resolve")
	ActResolveMatches = Action("http://schemas.xmlsoap.org/ws/2005/04/discovery/ResolveMatches")
	ActGet            = Action("http://schemas.xmlsoap.org/ws/2004/09/transfer/Get")
	ActGetResponse    = Action("http://schemas.xmlsoap.org/ws/2004/09/transfer/GetResponse")

	ActGetScannerElements    = Action("http://schemas.microsoft.com/windows/2006/08/wdp/scan/GetScannerElementsRequest")
	ActGetScannerElementsRsp = Action("http://schemas.microsoft.com/windows/2006/08/wdp/scan/GetScannerElementsResponse")
	ActGetScannerStatus      = Action("http://schemas.microsoft.com/windows/2006/08/wdp/scan/GetScannerStatusRequest")
	ActGetScannerStatusRsp   = Action("http://schemas.microsoft.com/windows/2006/08/wdp/scan/GetScannerStatusResponse")
	ActCreateScanJob         = Action("http://schemas.microsoft.com/windows/2006/08/wdp/scan/CreateScanJobRequest")
	ActCreateScanJobRsp      = Action("http://schemas.microsoft.com/windows/2006/08/wdp/scan/CreateScanJobResponse")
	ActRetrieveImage         = Action("http://schemas.microsoft.com/windows/2006/08/wdp/scan/RetrieveImageRequest")
	ActRetrieveImageRsp      = Action("http://schemas.microsoft.com/windows/2006/08/wdp/scan/RetrieveImageResponse")
	ActCancelJob             = Action("http://schemas.microsoft.com/windows/2006/08/wdp/scan/CancelJobRequest")
	ActCancelJobRsp          = Action("http://schemas.microsoft.com/windows/2006/08/wdp/scan/CancelJobResponse")
	ActFault                 = Action("http://schemas.xmlsoap.org/ws/2004/08/addressing/fault")
)

// xmlErrMissed returns an error reporting that a required element
// was not found, without any path context.
func xmlErrMissed(name string) error {
	return fmt.Errorf("%s: missed", name)
}

// xmlErrWrap prepends root's location to err, unless err is already
// path-prefixed by a nested call closer to the actual failure.
func xmlErrWrap(root xmldoc.Element, err error) error {
	if err == nil {
		return nil
	}

	s := err.Error()
	if strings.HasPrefix(s, "/") {
		return err
	}

	loc := root.Path
	if loc == "" {
		loc = "/" + root.Name
	}

	return fmt.Errorf("%s/%s", loc, s)
}
