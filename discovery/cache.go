// MFP - Miulti-Function Printers and scanners toolkit
// Device discovery
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Device registry cache

package discovery

import (
	"net/netip"
	"net/url"
	"sort"
	"strings"
	"sync"
)

// endpoint is an internal, ranking-aware representation of a device
// contact point. Endpoint.URI is what callers see; the rest is used
// purely for ranking and deduplication.
type endpoint struct {
	uri       string
	proto     ServiceProto
	ipv6      bool
	linklocal bool
}

// rank returns endpoint's sort key: routable addresses before
// link-local, IPv6 before IPv4, then lexicographic by URI.
func (ep endpoint) rank() (linklocal, ipv4 int, uri string) {
	if ep.linklocal {
		linklocal = 1
	}
	if !ep.ipv6 {
		ipv4 = 1
	}
	return linklocal, ipv4, ep.uri
}

// dedupKey groups endpoints that should merge: same URI and same
// (proto, ipv6, linklocal) tuple.
func (ep endpoint) dedupKey() string {
	return ep.uri + "|" + ep.proto.String()
}

// makeEndpoint derives an [endpoint] from a unit's protocol and a raw
// URI string, classifying it as IPv6/link-local from its host part.
func makeEndpoint(proto ServiceProto, uri string) endpoint {
	ep := endpoint{uri: uri, proto: proto}

	u, err := url.Parse(uri)
	if err != nil {
		return ep
	}

	host := u.Hostname()
	if i := strings.IndexByte(host, '%'); i >= 0 {
		host = host[:i]
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return ep
	}

	ep.ipv6 = addr.Is6() && !addr.Is4In6()
	ep.linklocal = addr.IsLinkLocalUnicast()

	return ep
}

// cacheEntry is the registry's per-device-name record.
type cacheEntry struct {
	name      string
	manual    bool
	reported  bool
	sources   map[string]int // resolverKey -> count of open resolvers
	meta      Metadata
	printer   *PrinterParameters
	scanner   *ScannerParameters
	faxout    *FaxoutParameters
	pending   []endpoint // prepended unchecked, not yet finalized
	endpoints []endpoint // sorted, deduplicated, finalized
}

// cache is the process-wide device registry (§4.D): a map of
// cacheEntry, keyed by device discovery name.
type cache struct {
	mu        sync.Mutex
	entries   map[string]*cacheEntry
	blacklist map[string]struct{} // manually configured device names
}

// newCache creates a new, empty cache.
func newCache() *cache {
	return &cache{
		entries:   make(map[string]*cacheEntry),
		blacklist: make(map[string]struct{}),
	}
}

// resolverKey identifies one discovery source (address family /
// discovery protocol combination) contributing to a device entry.
func resolverKey(id UnitID) string {
	return id.Realm.String() + "/" + id.Zone + "/" + id.Variant
}

// entry returns id's cacheEntry, creating it if necessary.
func (c *cache) entry(id UnitID) *cacheEntry {
	e, ok := c.entries[id.DeviceName]
	if !ok {
		e = &cacheEntry{
			name:    id.DeviceName,
			sources: make(map[string]int),
		}
		c.entries[id.DeviceName] = e
	}
	return e
}

// AddManualOverride pre-populates a statically configured device
// entry and blacklists its name at discovery time. An endpoints list
// of nil (or the sentinel "disable") suppresses discovery for name
// entirely, without creating a visible device.
func (c *cache) AddManualOverride(name string, endpoints []string, proto ServiceProto) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blacklist[name] = struct{}{}

	if len(endpoints) == 1 && endpoints[0] == "disable" {
		delete(c.entries, name)
		return
	}

	e := &cacheEntry{name: name, manual: true, sources: make(map[string]int)}
	for _, uri := range endpoints {
		e.endpoints = append(e.endpoints, makeEndpoint(proto, uri))
	}
	e.endpoints = rankAndDedup(e.endpoints)
	e.reported = len(e.endpoints) != 0
	c.entries[name] = e
}

// AddUnit opens a pending resolver for id's discovery source.
func (c *cache) AddUnit(id UnitID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, blocked := c.blacklist[id.DeviceName]; blocked {
		return nil
	}

	e := c.entry(id)
	if e.manual {
		return nil
	}
	e.sources[resolverKey(id)]++

	return nil
}

// DelUnit withdraws id's discovery source. If it was the device's
// last source, the entry is removed (emitting a removal, from the
// caller's point of view, on the next GetDevices call).
func (c *cache) DelUnit(id UnitID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id.DeviceName]
	if !ok || e.manual {
		return nil
	}

	c.closeResolver(e, resolverKey(id))

	if len(e.sources) == 0 {
		delete(c.entries, id.DeviceName)
	}

	return nil
}

// SetMetadata records id's device metadata.
func (c *cache) SetMetadata(id UnitID, meta Metadata) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry(id).meta = meta
	return nil
}

// SetPrinterParameters records id's printer service parameters.
func (c *cache) SetPrinterParameters(id UnitID, p PrinterParameters) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry(id).printer = &p
	return nil
}

// SetScannerParameters records id's scanner service parameters.
func (c *cache) SetScannerParameters(id UnitID, p ScannerParameters) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry(id).scanner = &p
	return nil
}

// SetFaxoutParameters records id's faxout service parameters.
func (c *cache) SetFaxoutParameters(id UnitID, p FaxoutParameters) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry(id).faxout = &p
	return nil
}

// AddEndpoint prepends a newly resolved endpoint and closes out the
// resolver that produced it (§4.D: "on each resolver completion, new
// endpoints are prepended unchecked").
func (c *cache) AddEndpoint(id UnitID, uri string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, blocked := c.blacklist[id.DeviceName]; blocked {
		return nil
	}

	e := c.entry(id)
	if e.manual {
		return nil
	}

	ep := makeEndpoint(id.SvcProto, uri)
	e.pending = append([]endpoint{ep}, e.pending...)

	c.closeResolver(e, resolverKey(id))

	return nil
}

// DelEndpoint removes a previously reported endpoint.
func (c *cache) DelEndpoint(id UnitID, uri string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id.DeviceName]
	if !ok || e.manual {
		return nil
	}

	e.endpoints = removeEndpoint(e.endpoints, uri)
	e.pending = removeEndpoint(e.pending, uri)

	return nil
}

// closeResolver decrements id's resolver count and, once the entry
// has no more pending resolvers, finalizes its endpoint list.
func (c *cache) closeResolver(e *cacheEntry, key string) {
	if e.sources[key] > 0 {
		e.sources[key]--
		if e.sources[key] == 0 {
			delete(e.sources, key)
		}
	}

	if len(e.sources) == 0 && len(e.pending) != 0 {
		e.endpoints = rankAndDedup(append(e.endpoints, e.pending...))
		e.pending = nil
	}

	e.reported = len(e.sources) == 0 && len(e.endpoints) != 0
}

// Devices returns the list of currently reported devices.
func (c *cache) Devices() []Device {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Device
	for _, e := range c.entries {
		if !e.reported {
			continue
		}

		d := Device{
			Name:    e.name,
			Meta:    e.meta,
			Printer: e.printer,
			Scanner: e.scanner,
			Faxout:  e.faxout,
		}
		for _, ep := range e.endpoints {
			d.Endpoints = append(d.Endpoints, ep.uri)
		}
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// Pending reports whether any device entry still has open resolvers.
func (c *cache) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if !e.manual && len(e.sources) != 0 {
			return true
		}
	}

	return false
}

// rankAndDedup sorts endpoints per §3 ranking and merges entries that
// share a dedupKey.
func rankAndDedup(endpoints []endpoint) []endpoint {
	sort.SliceStable(endpoints, func(i, j int) bool {
		li, ivi, ui := endpoints[i].rank()
		lj, ivj, uj := endpoints[j].rank()
		if li != lj {
			return li < lj
		}
		if ivi != ivj {
			return ivi < ivj
		}
		return ui < uj
	})

	seen := make(map[string]struct{}, len(endpoints))
	out := make([]endpoint, 0, len(endpoints))
	for _, ep := range endpoints {
		key := ep.dedupKey()
		if _, found := seen[key]; found {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ep)
	}

	return out
}

// removeEndpoint returns endpoints with any entry matching uri removed.
func removeEndpoint(endpoints []endpoint, uri string) []endpoint {
	out := endpoints[:0]
	for _, ep := range endpoints {
		if ep.uri != uri {
			out = append(out, ep)
		}
	}
	return out
}
