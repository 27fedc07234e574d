// MFP - Miulti-Function Printers and scanners toolkit
// Device discovery
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Event queue

package discovery

import (
	"context"
	"sync"
)

// Eventqueue is a blocking, multi-producer, single-consumer queue of
// [Event]s. Backends push events as they discover them; the [Client]
// pulls and applies them to its cache, one at a time, in order.
type Eventqueue struct {
	lock   sync.Mutex
	cond   sync.Cond
	queue  []Event
	closed bool
}

// NewEventqueue creates a new, empty Eventqueue.
func NewEventqueue() *Eventqueue {
	eq := &Eventqueue{}
	eq.cond.L = &eq.lock
	return eq
}

// Push adds events to the queue, waking up any blocked [Eventqueue.pull].
func (eq *Eventqueue) Push(events ...Event) {
	eq.lock.Lock()
	eq.queue = append(eq.queue, events...)
	eq.cond.Broadcast()
	eq.lock.Unlock()
}

// Close marks the queue as closed: any blocked or future pull returns
// context.Canceled once drained of buffered events.
func (eq *Eventqueue) Close() {
	eq.lock.Lock()
	eq.closed = true
	eq.cond.Broadcast()
	eq.lock.Unlock()
}

// pull waits for and returns the next Event, or ctx.Err() if ctx
// expires first, or context.Canceled if the queue is closed first.
func (eq *Eventqueue) pull(ctx context.Context) (Event, error) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			eq.lock.Lock()
			eq.cond.Broadcast()
			eq.lock.Unlock()
		case <-done:
		}
	}()

	eq.lock.Lock()
	defer eq.lock.Unlock()

	for {
		if len(eq.queue) > 0 {
			evnt := eq.queue[0]
			copy(eq.queue, eq.queue[1:])
			eq.queue = eq.queue[:len(eq.queue)-1]
			return evnt, nil
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if eq.closed {
			return nil, context.Canceled
		}

		eq.cond.Wait()
	}
}
