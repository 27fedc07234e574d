// MFP - Miulti-Function Printers and scanners toolkit
// WSD device discovery
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// UDP multicasting

package wsdd

import (
	"fmt"
	"net"
	"net/netip"
	"sync/atomic"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"github.com/alexpevzner/scanbridge/discovery/netstate"
)

// mconn wraps net.UDPConn and prepares it to be used for
// the UDP multicasts reception.
type mconn struct {
	*net.UDPConn
	group  netip.Addr
	pc4    *ipv4.PacketConn // non-nil if group is IP4
	pc6    *ipv6.PacketConn // non-nil if group is IP6
	closed atomic.Bool
}

// rcmsg carries the per-datagram metadata RecvFrom needs from the
// kernel: which local interface the datagram arrived on.
type rcmsg struct {
	IfIndex int
}

// newMconn creates a new multicast connection
func newMconn(group netip.AddrPort) (*mconn, error) {
	// Address must be multicast
	if !group.Addr().IsMulticast() {
		err := fmt.Errorf("%s not multicast", group.Addr())
		return nil, err
	}

	// Prepare net.UDPAddr structure
	addr := &net.UDPAddr{
		IP:   net.IP(group.Addr().AsSlice()),
		Port: int(group.Port()),
		Zone: group.Addr().Zone(),
	}

	// Open UDP connection.
	//
	// Note, with the multicast address being given,
	// net.ListenUDP creates UDP socket bound to the
	// 0.0.0.0:port (or [::0]:port) address with
	// SO_REUSEADDR option being set.
	//
	// This socket can be joined multiple multicast
	// groups and suitable for the multicast reception.
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, err
	}

	// Fill and return mconn structure
	mc := &mconn{
		UDPConn: conn,
		group:   group.Addr(),
	}

	if group.Addr().Is4() {
		mc.pc4 = ipv4.NewPacketConn(conn)
		mc.pc4.SetControlMessage(ipv4.FlagInterface, true)
	} else {
		mc.pc6 = ipv6.NewPacketConn(conn)
		mc.pc6.SetControlMessage(ipv6.FlagInterface, true)
	}

	return mc, nil
}

// Close closes the connection and marks it as closed, so a concurrent
// RecvFrom can tell a closed-socket error from a transient one.
func (mc *mconn) Close() error {
	mc.closed.Store(true)
	return mc.UDPConn.Close()
}

// IsClosed reports whether mconn.Close was called.
func (mc *mconn) IsClosed() bool {
	return mc.closed.Load()
}

// LocalAddrPort returns the local address the connection is bound to.
func (mc *mconn) LocalAddrPort() netip.AddrPort {
	addr := mc.LocalAddr().(*net.UDPAddr)
	ip, _ := netip.AddrFromSlice(addr.IP)
	return netip.AddrPortFrom(ip.Unmap(), uint16(addr.Port))
}

// RecvFrom receives a single UDP datagram into buf, returning its
// length, the sender's address and the receiving interface.
func (mc *mconn) RecvFrom(buf []byte) (int, netip.AddrPort, rcmsg, error) {
	if mc.pc4 != nil {
		n, cm, src, err := mc.pc4.ReadFrom(buf)
		if err != nil {
			return 0, netip.AddrPort{}, rcmsg{}, err
		}

		from := src.(*net.UDPAddr)
		ip, _ := netip.AddrFromSlice(from.IP)
		addr := netip.AddrPortFrom(ip.Unmap(), uint16(from.Port))

		ifidx := 0
		if cm != nil {
			ifidx = cm.IfIndex
		}

		return n, addr, rcmsg{IfIndex: ifidx}, nil
	}

	n, cm, src, err := mc.pc6.ReadFrom(buf)
	if err != nil {
		return 0, netip.AddrPort{}, rcmsg{}, err
	}

	from := src.(*net.UDPAddr)
	ip, _ := netip.AddrFromSlice(from.IP)
	addr := netip.AddrPortFrom(ip.Unmap(), uint16(from.Port))

	ifidx := 0
	if cm != nil {
		ifidx = cm.IfIndex
	}

	return n, addr, rcmsg{IfIndex: ifidx}, nil
}

// Join joins the multicast group, specified during mcast
// creation, on a network interface, specified by the local
// parameter.
func (mc *mconn) Join(local netstate.Addr) error {
	ifi := &net.Interface{
		Index: local.Interface().Index(),
		Name:  local.Interface().Name(),
	}

	group := &net.UDPAddr{IP: net.IP(mc.group.AsSlice())}

	if mc.pc4 != nil {
		return mc.pc4.JoinGroup(ifi, group)
	}
	return mc.pc6.JoinGroup(ifi, group)
}

// Leave leaves the multicast group, specified during mcast
// creation, on a network interface, specified by the local
// parameter.
func (mc *mconn) Leave(local netstate.Addr) error {
	ifi := &net.Interface{
		Index: local.Interface().Index(),
		Name:  local.Interface().Name(),
	}

	group := &net.UDPAddr{IP: net.IP(mc.group.AsSlice())}

	if mc.pc4 != nil {
		return mc.pc4.LeaveGroup(ifi, group)
	}
	return mc.pc6.LeaveGroup(ifi, group)
}
