// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// XML namespaces and common HTTP constants

package escl

import "github.com/alexpevzner/scanbridge/xmldoc"

// Namespace prefixes, used directly when building qualified element
// names (e.g. NsScan + ":" + "ScannerStatus").
const (
	NsPWG  = "pwg"  // Shared PWG imaging schema
	NsScan = "scan" // eSCL-specific schema
)

// NsMap is the namespace table used to decode and encode eSCL messages.
var NsMap = xmldoc.Namespace{
	{URL: "http://www.pwg.org/schemas/2010/12/sm", Prefix: NsPWG},
	{URL: "http://schemas.hp.com/imaging/escl/2011/05/03", Prefix: NsScan},
}

// HTTPContentType is the Content-Type of eSCL XML requests/responses.
const HTTPContentType = "text/xml; charset=\"utf-8\""
