// MFP - Miulti-Function Printers and scanners toolkit
// DNS-SD device discovery
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// DNS-SD backend

package dnssd

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/grandcat/zeroconf"

	"github.com/alexpevzner/scanbridge/discovery"
	"github.com/alexpevzner/scanbridge/log"
)

// serviceEscl is the DNS-SD service type eSCL scanners announce
// themselves under.
const serviceEscl = "_uscan._tcp"

// backend is the [discovery.Backend] for DNS-SD/mDNS device discovery.
type backend struct {
	ctx    context.Context
	cancel context.CancelFunc
	queue  *discovery.Eventqueue
	done   sync.WaitGroup

	lock sync.Mutex
	seen map[string]discovery.UnitID // service instance name -> UnitID
}

// NewBackend creates a new [discovery.Backend] for DNS-SD discovery.
func NewBackend(ctx context.Context) (discovery.Backend, error) {
	ctx = log.WithPrefix(ctx, "dnssd")
	ctx, cancel := context.WithCancel(ctx)

	return &backend{
		ctx:    ctx,
		cancel: cancel,
		seen:   make(map[string]discovery.UnitID),
	}, nil
}

// Name returns backend name.
func (back *backend) Name() string {
	return "dnssd"
}

// Start starts Backend operations.
func (back *backend) Start(queue *discovery.Eventqueue) {
	back.queue = queue

	back.done.Add(1)
	go back.browse()

	log.Debug(back.ctx, "backend started")
}

// Close closes the backend.
func (back *backend) Close() {
	back.cancel()
	back.done.Wait()
}

// browse runs the mDNS browse loop on its own goroutine until the
// backend's context is canceled.
func (back *backend) browse() {
	defer back.done.Done()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		log.Error(back.ctx, "%s", err)
		return
	}

	entries := make(chan *zeroconf.ServiceEntry)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for entry := range entries {
			back.handleEntry(entry)
		}
	}()

	if err := resolver.Browse(back.ctx, serviceEscl, "local.", entries); err != nil {
		log.Error(back.ctx, "%s", err)
	}

	wg.Wait()
}

// handleEntry turns a resolved or expired zeroconf.ServiceEntry into
// discovery events, per the DNS-SD listener rules: extract the "rs"
// TXT key, build http://<addr>:<port>/<rs>/, zone-escaping link-local
// IPv6 addresses per RFC 6874.
func (back *backend) handleEntry(entry *zeroconf.ServiceEntry) {
	id := discovery.UnitID{
		DeviceName: entry.Instance,
		Realm:      discovery.RealmDNSSD,
		SvcType:    discovery.ServiceScanner,
		SvcProto:   discovery.ProtoEscl,
	}

	if entry.TTL == 0 {
		back.lock.Lock()
		delete(back.seen, entry.Instance)
		back.lock.Unlock()

		back.queue.Push(discovery.NewEventDelUnit(id))
		return
	}

	back.lock.Lock()
	_, known := back.seen[entry.Instance]
	back.seen[entry.Instance] = id
	back.lock.Unlock()

	if !known {
		back.queue.Push(discovery.NewEventAddUnit(id))
	}

	rs := resourcePath(entry.Text)

	for _, ip := range entry.AddrIPv4 {
		uri := buildURI(ip, entry.Port, rs, 0)
		back.queue.Push(discovery.NewEventAddEndpoint(id, uri))
	}

	for _, ip := range entry.AddrIPv6 {
		ifidx := 0
		if ip.IsLinkLocalUnicast() {
			ifidx = linkLocalIfindex(ip)
		}
		uri := buildURI(ip, entry.Port, rs, ifidx)
		back.queue.Push(discovery.NewEventAddEndpoint(id, uri))
	}
}

// resourcePath extracts the "rs" TXT key (resource path) from a
// DNS-SD TXT record, e.g. ["rs=eSCL", "ty=...", "note=..."].
func resourcePath(txt []string) string {
	for _, kv := range txt {
		if k, v, ok := strings.Cut(kv, "="); ok && k == "rs" {
			return v
		}
	}
	return "eSCL"
}

// buildURI constructs the eSCL base URI for addr/port/rs, per
// spec.md §4.E: "http://<addr>:<port>/<rs>/", with a "%25<ifindex>"
// zone suffix for link-local IPv6 addresses (RFC 6874).
func buildURI(addr net.IP, port int, rs string, ifidx int) string {
	host := addr.String()
	if ip4 := addr.To4(); ip4 == nil {
		host = "[" + host
		if ifidx != 0 {
			host += "%25" + strconv.Itoa(ifidx)
		}
		host += "]"
	}

	return fmt.Sprintf("http://%s:%d/%s/", host, port, strings.Trim(rs, "/"))
}

// linkLocalIfindex finds the index of the local interface whose
// address matches a link-local IPv6 address reported by mDNS.
func linkLocalIfindex(addr net.IP) int {
	ifaces, err := net.Interfaces()
	if err != nil {
		return 0
	}

	for _, ifi := range ifaces {
		addrs, err := ifi.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ipnet, ok := a.(*net.IPNet)
			if ok && ipnet.IP.Equal(addr) {
				return ifi.Index
			}
		}
	}

	return 0
}
