// MFP - Miulti-Function Printers and scanners toolkit
// Network state monitoring
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Test helpers

package netstate

import (
	"fmt"
	"net/netip"
)

// netIfMaker generates unique [NetIf] values for tests.
type netIfMaker struct {
	next int
}

// testNewNetIfMaker creates a new netIfMaker.
func testNewNetIfMaker() *netIfMaker {
	return &netIfMaker{}
}

// new returns a fresh, unique NetIf.
func (m *netIfMaker) new() NetIf {
	m.next++
	return netIf{name: fmt.Sprintf("eth%d", m.next), index: m.next}
}

// testMakeAddr builds an [Addr] bound to nif out of a CIDR string.
func testMakeAddr(nif NetIf, cidr string) Addr {
	prefix := netip.MustParsePrefix(cidr)
	return Addr{addr: prefix.Addr(), ifi: nif}
}
