// MFP - Miulti-Function Printers and scanners toolkit
// Network state monitoring
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Network addresses

package netstate

import "net/netip"

// Addr represents a unicast address bound to a specific network
// interface, as reported by the [Notifier].
type Addr struct {
	addr netip.Addr
	ifi  NetIf
}

// Addr returns the IP address.
func (a Addr) Addr() netip.Addr { return a.addr }

// Interface returns the network interface the address is bound to.
func (a Addr) Interface() NetIf { return a.ifi }

// String returns the address in "addr%ifname" form.
func (a Addr) String() string {
	return a.addr.String() + "%" + a.ifi.Name()
}
