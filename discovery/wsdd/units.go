// MFP - Miulti-Function Printers and scanners toolkit
// WSD device discovery
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// WSD hosts table

package wsdd

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/alexpevzner/scanbridge/discovery"
	"github.com/alexpevzner/scanbridge/wsd"
)

// units is the WSDD "hosts table": it turns Hello/ProbeMatches/
// ResolveMatches/Bye traffic into [discovery.Event]s, and drives the
// periodic multicast Probe that solicits them.
type units struct {
	back *backend
	q    *querier

	lock sync.Mutex
	seen map[string]map[string]discovery.UnitID // uuid -> zone/variant -> UnitID

	sched     *sched
	probeMsg  wsd.Msg
	doneProbe sync.WaitGroup
}

// newUnits creates a new, empty units table. Call [units.Start] to
// begin probing.
func newUnits(back *backend, q *querier) *units {
	return &units{
		back: back,
		q:    q,
		seen: make(map[string]map[string]discovery.UnitID),
	}
}

// Start starts the browse-mode probe scheduler.
func (u *units) Start() {
	u.sched = newSched(false)
	u.doneProbe.Add(1)
	go u.probeProc(u.sched)
}

// Refresh restarts the probe scheduler, forcing a fresh round of
// multicast Probe messages.
func (u *units) Refresh() {
	u.sched.Close()
	u.doneProbe.Wait()
	u.Start()
}

// Close stops probing.
func (u *units) Close() {
	u.sched.Close()
	u.doneProbe.Wait()
}

// probeProc drives s's events: composes a Probe on schedNewMessage
// and (re)transmits it on schedSend.
func (u *units) probeProc(s *sched) {
	defer u.doneProbe.Done()

	for evnt := range s.Chan() {
		switch evnt {
		case schedNewMessage:
			u.probeMsg = u.newProbe()
		case schedSend:
			u.send(u.probeMsg)
		}
	}
}

// newProbe composes a new d:Probe message, looking for scan devices.
func (u *units) newProbe() wsd.Msg {
	return wsd.Msg{
		Header: wsd.Header{
			Action:    wsd.ActProbe,
			MessageID: wsd.AnyURI("urn:uuid:" + uuid.New().String()),
			To:        wsd.AnyURI(wsdAdHocAddress),
		},
		Body: wsd.Probe{Types: wsd.Types{wsd.ScanDeviceType}},
	}
}

// send encodes msg and transmits it over both multicast connections.
func (u *units) send(msg wsd.Msg) {
	data := []byte(msg.ToXML().EncodeString(wsd.NsMap))

	if _, err := u.q.mconn4.WriteToUDPAddrPort(data, wsddMulticastIP4); err != nil {
		u.back.warning("IP4 send: %s", err)
	}
	if _, err := u.q.mconn6.WriteToUDPAddrPort(data, wsddMulticastIP6); err != nil {
		u.back.warning("IP6 send: %s", err)
	}
}

// InputFromUDP handles a decoded message received over multicast.
func (u *units) InputFromUDP(msg wsd.Msg) {
	switch body := msg.Body.(type) {
	case wsd.Hello:
		u.handleMatch(msg, body.EndpointReference, body.Types, body.XAddrs)
	case wsd.Bye:
		u.handleBye(body.EndpointReference)
	case wsd.ProbeMatches:
		for _, m := range body.ProbeMatch {
			u.handleMatch(msg, m.EndpointReference, m.Types, m.XAddrs)
		}
	case wsd.ResolveMatches:
		if body.ResolveMatch != nil {
			m := body.ResolveMatch
			u.handleMatch(msg, m.EndpointReference, m.Types, m.XAddrs)
		}
	}
}

// handleMatch reports a discovered or re-announced scan unit.
func (u *units) handleMatch(msg wsd.Msg, ref wsd.EndpointReference,
	types wsd.Types, xaddrs []wsd.AnyURI) {

	if !types.Has(wsd.ScanDeviceType) {
		return
	}

	devUUID, ok := parseEndpointUUID(string(ref.Address))
	if !ok {
		return
	}

	zone := strconv.Itoa(msg.IfIdx)
	variant := "ip6"
	if msg.From.Addr().Is4() {
		variant = "ip4"
	}

	id := discovery.UnitID{
		DeviceName: devUUID.String(),
		UUID:       devUUID,
		Realm:      discovery.RealmWSD,
		Zone:       zone,
		Variant:    variant,
		SvcType:    discovery.ServiceScanner,
		SvcProto:   discovery.ProtoWSD,
	}

	key := zone + "/" + variant

	u.lock.Lock()
	variants, found := u.seen[id.DeviceName]
	if !found {
		variants = make(map[string]discovery.UnitID)
		u.seen[id.DeviceName] = variants
	}
	_, known := variants[key]
	variants[key] = id
	u.lock.Unlock()

	if !known {
		u.back.queue.Push(discovery.NewEventAddUnit(id))
	}

	for _, xaddr := range xaddrs {
		u.back.queue.Push(discovery.NewEventAddEndpoint(id, string(xaddr)))
	}
}

// handleBye reports that a unit is gone.
func (u *units) handleBye(ref wsd.EndpointReference) {
	devUUID, ok := parseEndpointUUID(string(ref.Address))
	if !ok {
		return
	}

	u.lock.Lock()
	variants := u.seen[devUUID.String()]
	delete(u.seen, devUUID.String())
	u.lock.Unlock()

	for _, id := range variants {
		u.back.queue.Push(discovery.NewEventDelUnit(id))
	}
}

// wsdAdHocAddress is the well-known logical address Probe messages
// are addressed to.
const wsdAdHocAddress = "urn:schemas-xmlsoap-org:ws:2005:04:discovery"

// parseEndpointUUID extracts the uuid.UUID out of a WSD endpoint
// address of the "urn:uuid:<uuid>" form.
func parseEndpointUUID(address string) (uuid.UUID, bool) {
	const prefix = "urn:uuid:"
	if !strings.HasPrefix(address, prefix) {
		return uuid.UUID{}, false
	}

	id, err := uuid.Parse(address[len(prefix):])
	if err != nil {
		return uuid.UUID{}, false
	}

	return id, true
}
