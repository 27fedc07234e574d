// MFP - Miulti-Function Printers and scanners toolkit
// WSD device discovery
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Protocol constants

package wsdd

import "net/netip"

// WS-Discovery standard multicast groups and port.
var (
	wsddMulticastIP4 = netip.MustParseAddrPort("239.255.255.250:3702")
	wsddMulticastIP6 = netip.MustParseAddrPort("[ff02::c]:3702")
)
