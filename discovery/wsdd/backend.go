// MFP - Miulti-Function Printers and scanners toolkit
// WSD device discovery
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// WSDD backend

package wsdd

import (
	"context"
	"sync/atomic"

	"github.com/alexpevzner/scanbridge/discovery"
	"github.com/alexpevzner/scanbridge/log"
)

// backend is the [discovery.Backend] for WSD device discovery.
type backend struct {
	ctx     context.Context       // For logging and backend.Close
	cancel  context.CancelFunc    // Context's cancel function
	queue   *discovery.Eventqueue // Event queue
	q       *querier              // Query/response engine
	closing atomic.Bool           // Close in progress
}

// NewBackend creates a new [discovery.Backend] for WSD device discovery.
func NewBackend(ctx context.Context) (discovery.Backend, error) {
	// Set log prefix
	ctx = log.WithPrefix(ctx, "wsdd")
	ctx, cancel := context.WithCancel(ctx)

	back := &backend{ctx: ctx, cancel: cancel}

	q, err := newQuerier(back)
	if err != nil {
		cancel()
		return nil, err
	}
	back.q = q

	return back, nil
}

// Name returns backend name.
func (back *backend) Name() string {
	return "wsdd"
}

// Start starts Backend operations.
func (back *backend) Start(queue *discovery.Eventqueue) {
	back.queue = queue
	back.q.Start()
	log.Debug(back.ctx, "backend started")
}

// Close closes the backend
func (back *backend) Close() {
	back.closing.Store(true)
	back.q.Close()
	back.cancel()
}

// Refresh restarts the probe scheduler, forcing a fresh round of
// multicast Probe messages.
func (back *backend) Refresh() {
	back.q.Refresh()
}

// debug logs a debug-level message under back's context.
func (back *backend) debug(format string, args ...any) {
	log.Debug(back.ctx, format, args...)
}

// warning logs a warning-level message under back's context.
func (back *backend) warning(format string, args ...any) {
	log.Warning(back.ctx, format, args...)
}

// error logs an error-level message under back's context.
func (back *backend) error(format string, args ...any) {
	log.Error(back.ctx, format, args...)
}
