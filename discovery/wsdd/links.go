// MFP - Miulti-Function Printers and scanners toolkit
// WSD device discovery
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Per-local-address multicast membership

package wsdd

import (
	"net/netip"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/alexpevzner/scanbridge/discovery/netstate"
)

// links tracks which local addresses are currently joined to the
// WSDD multicast groups, and lets the querier recognize its own
// transmissions looped back by the kernel.
type links struct {
	back  *backend
	q     *querier
	lock  sync.Mutex
	local map[netip.Addr]netstate.Addr
}

// newLinks creates a new, empty links table.
func newLinks(back *backend, q *querier) *links {
	return &links{
		back:  back,
		q:     q,
		local: make(map[netip.Addr]netstate.Addr),
	}
}

// mconnFor returns the multicast connection matching addr's address
// family.
func (l *links) mconnFor(addr netstate.Addr) *mconn {
	if addr.Addr().Is6() {
		return l.q.mconn6
	}
	return l.q.mconn4
}

// Add joins the WSDD multicast groups on addr's interface.
func (l *links) Add(addr netstate.Addr) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if _, found := l.local[addr.Addr()]; found {
		return
	}

	if err := l.mconnFor(addr).Join(addr); err != nil {
		l.back.warning("%s: %s", addr, err)
		return
	}

	l.local[addr.Addr()] = addr
	l.back.debug("%s: joined", addr)
}

// Del leaves the WSDD multicast groups on addr's interface.
func (l *links) Del(addr netstate.Addr) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if _, found := l.local[addr.Addr()]; !found {
		return
	}

	if err := l.mconnFor(addr).Leave(addr); err != nil {
		l.back.warning("%s: %s", addr, err)
	}

	delete(l.local, addr.Addr())
	l.back.debug("%s: left", addr)
}

// Close leaves all currently joined multicast groups. Errors from
// individual interfaces are aggregated, so one bad interface doesn't
// mask failures on the others.
func (l *links) Close() {
	l.lock.Lock()
	defer l.lock.Unlock()

	var errs *multierror.Error
	for _, addr := range l.local {
		if err := l.mconnFor(addr).Leave(addr); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	if errs.ErrorOrNil() != nil {
		l.back.warning("leaving multicast groups: %s", errs)
	}

	l.local = make(map[netip.Addr]netstate.Addr)
}

// IsLocalPort reports whether from matches one of the addresses
// links has joined on, meaning the datagram is our own transmission,
// looped back by the kernel.
func (l *links) IsLocalPort(from netip.AddrPort) bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	_, found := l.local[from.Addr()]
	return found
}
