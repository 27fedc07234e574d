// MFP - Miulti-Function Printers and scanners toolkit
// Network state monitoring
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Network interface state notifier

package netstate

import (
	"context"
	"net"
	"net/netip"
	"sync"
	"time"
)

// pollInterval is how often the notifier re-scans system interfaces.
//
// The underlying net.Interfaces() API is not event-driven, so the
// notifier polls; pollInterval trades notification latency against
// syscall overhead.
const pollInterval = 3 * time.Second

// Notifier monitors the system's network interfaces and reports
// primary address changes (addresses appearing on or disappearing
// from an interface) as a stream of [Event]s.
type Notifier struct {
	lock   sync.Mutex
	cond   sync.Cond
	queue  eventqueue
	closed bool
	cancel context.CancelFunc
	done   sync.WaitGroup
}

// NewNotifier creates a new [Notifier] and starts its monitoring
// goroutine.
func NewNotifier() *Notifier {
	ctx, cancel := context.WithCancel(context.Background())

	notifier := &Notifier{cancel: cancel}
	notifier.cond.L = &notifier.lock

	notifier.done.Add(1)
	go notifier.proc(ctx)

	return notifier
}

// Close stops the notifier and releases its resources.
func (notifier *Notifier) Close() {
	notifier.cancel()
	notifier.done.Wait()
}

// Get waits for and returns the next [Event].
//
// It returns an error, wrapping ctx.Err(), if ctx expires before an
// event is available.
func (notifier *Notifier) Get(ctx context.Context) (Event, error) {
	// Wake cond.Wait() up when ctx expires.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			notifier.lock.Lock()
			notifier.cond.Broadcast()
			notifier.lock.Unlock()
		case <-done:
		}
	}()

	notifier.lock.Lock()
	defer notifier.lock.Unlock()

	for {
		if evnt := notifier.queue.pull(); evnt != nil {
			return evnt, nil
		}
		if notifier.closed {
			return nil, ctx.Err()
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		notifier.cond.Wait()
	}
}

// push adds events to the queue and wakes up any waiting Get call.
func (notifier *Notifier) push(events ...Event) {
	notifier.lock.Lock()
	notifier.queue.push(events...)
	notifier.cond.Broadcast()
	notifier.lock.Unlock()
}

// proc runs the monitoring loop on its own goroutine.
func (notifier *Notifier) proc(ctx context.Context) {
	defer notifier.done.Done()

	known := make(map[string]Addr)
	notifier.poll(known)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			notifier.poll(known)
		}
	}

	notifier.lock.Lock()
	notifier.closed = true
	notifier.cond.Broadcast()
	notifier.lock.Unlock()
}

// poll re-scans system interfaces and emits Add/Del events for the
// difference against known, updating known in place.
func (notifier *Notifier) poll(known map[string]Addr) {
	cur := systemPrimaryAddrs()

	curKeys := make(map[string]Addr, len(cur))
	var events []Event

	for _, a := range cur {
		curKeys[a.String()] = a
		if _, found := known[a.String()]; !found {
			events = append(events, EventAddPrimaryAddress{Addr: a})
		}
	}

	for key, a := range known {
		if _, found := curKeys[key]; !found {
			events = append(events, EventDelPrimaryAddress{Addr: a})
		}
	}

	for key := range known {
		delete(known, key)
	}
	for key, a := range curKeys {
		known[key] = a
	}

	if len(events) != 0 {
		notifier.push(events...)
	}
}

// systemPrimaryAddrs enumerates unicast addresses bound to all "up",
// non-loopback system interfaces.
func systemPrimaryAddrs() []Addr {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil
	}

	var out []Addr
	for _, ifi := range ifaces {
		if ifi.Flags&net.FlagUp == 0 || ifi.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := ifi.Addrs()
		if err != nil {
			continue
		}

		nif := netIf{name: ifi.Name, index: ifi.Index}

		for _, a := range addrs {
			ipnet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}

			ip, ok := netip.AddrFromSlice(ipnet.IP)
			if !ok {
				continue
			}
			ip = ip.Unmap()

			out = append(out, Addr{addr: ip, ifi: nif})
		}
	}

	return out
}
