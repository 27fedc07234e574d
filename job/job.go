// MFP - Miulti-Function Printers and scanners toolkit
// JOB - Scan job state machine
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// The job state machine

// Package job drives a single scan request through its protocol
// handler's operation table, from capability query to the last
// page, delivering pages as they arrive and reporting exactly one
// final status.
package job

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/alexpevzner/scanbridge/abstract"
	"github.com/alexpevzner/scanbridge/log"
	"github.com/alexpevzner/scanbridge/transport"
)

// MaxCheckRetries bounds how many times [Check] may send the
// machine back to [Scan] before giving up with [IOError].
const MaxCheckRetries = 30

// Page is a single scanned page, delivered on [Job.Pages].
type Page struct {
	Data   []byte
	Format string
	Status Status
}

// Job drives one [abstract.ScannerRequest] to completion against a
// [Handler]. Create with [New], run with [Job.Run] (typically in its
// own goroutine), read pages from [Job.Pages] until it closes, then
// inspect [Job.Status] and [Job.Err].
type Job struct {
	parent  context.Context
	qctx    context.Context
	qcancel context.CancelFunc

	handler Handler
	req     abstract.ScannerRequest

	caps       *abstract.ScannerCapabilities
	state      State
	location   string
	gotPage    bool
	checkTries int
	cancelled  atomic.Bool

	status Status
	err    error

	pages chan Page
}

// New creates a [Job] that will drive req against handler. ctx
// governs the whole job; cancelling it (or calling [Job.Cancel])
// aborts the in-flight operation and sends a protocol cancel before
// the job finishes.
func New(ctx context.Context, handler Handler, req abstract.ScannerRequest) *Job {
	qctx, qcancel := context.WithCancel(ctx)

	return &Job{
		parent:  ctx,
		qctx:    qctx,
		qcancel: qcancel,
		handler: handler,
		req:     req,
		state:   Devcaps,
		pages:   make(chan Page, 1),
	}
}

// Pages returns the channel pages are delivered on. It is closed
// when the job reaches [Finish].
func (j *Job) Pages() <-chan Page {
	return j.pages
}

// Cancel aborts the job: the in-flight operation, if any, is
// interrupted, and the machine sends a protocol-level cancel before
// finishing with [Cancelled].
func (j *Job) Cancel() {
	j.cancelled.Store(true)
	j.qcancel()
}

// Status returns the job's final status. Only meaningful after
// [Job.Pages] has been drained and closed.
func (j *Job) Status() Status {
	return j.status
}

// Err returns the error behind a non-[Good]/[Cancelled] status, if
// any.
func (j *Job) Err() error {
	return j.err
}

// Run drives the machine to completion, closing [Job.Pages] when
// done. It blocks, so callers normally invoke it as `go job.Run()`.
func (j *Job) Run() {
	defer close(j.pages)
	defer j.qcancel()

	rec := log.Begin(j.parent)
	defer rec.Commit()

	for j.state != Finish {
		rec.Debug("job: entering %s", j.state)
		j.step()
	}

	rec.Debug("job: finished, status %s", j.status)
}

func (j *Job) step() {
	if j.cancelled.Load() && j.state != Cancel {
		j.state = Cancel
	}

	switch j.state {
	case Devcaps:
		j.doDevcaps()
	case Precheck:
		j.doPrecheck()
	case Scan:
		j.doScan()
	case Load:
		j.doLoad()
	case Check:
		j.doCheck()
	case Cleanup:
		j.doCleanup()
	case Cancel:
		j.doCancel()
	default:
		j.state = Finish
	}
}

// submit runs q to completion; a nil q (a protocol no-op) always
// succeeds. It reports whether a response was obtained at all.
func (j *Job) submit(q *transport.Query) bool {
	if q == nil {
		return true
	}
	q.Submit(j.qctx)
	return q.TransportError() == nil
}

// abortTransport handles a query that never got a response. A
// failure caused by our own cancellation routes to Cancel so the
// device still gets a CancelJob/DELETE; anything else is a hard
// IOError with no CHECK step, per the machine's invariants.
func (j *Job) abortTransport(q *transport.Query) {
	if j.cancelled.Load() {
		j.state = Cancel
		return
	}
	j.err = q.TransportError()
	j.status = IOError
	j.state = Finish
}

// routeCheck sends a decodable failure to the CHECK state.
func (j *Job) routeCheck(res Result) {
	j.err = res.Err
	j.state = Check
}

func (j *Job) doDevcaps() {
	q := j.handler.DevcapsQuery(j.qctx)
	if !j.submit(q) {
		j.abortTransport(q)
		return
	}

	caps, res := j.handler.DevcapsDecode(q)
	if res.Err != nil {
		j.routeCheck(res)
		return
	}

	j.caps = caps
	j.state = Precheck
}

func (j *Job) doPrecheck() {
	q := j.handler.PrecheckQuery(j.qctx)
	if !j.submit(q) {
		j.abortTransport(q)
		return
	}

	res := j.handler.PrecheckDecode(q)
	if res.Err != nil {
		j.routeCheck(res)
		return
	}

	j.state = Scan
}

func (j *Job) doScan() {
	q := j.handler.ScanQuery(j.qctx, j.caps, j.req)
	if !j.submit(q) {
		j.abortTransport(q)
		return
	}

	res := j.handler.ScanDecode(q)
	if res.Err != nil {
		j.routeCheck(res)
		return
	}

	j.location = res.Location
	j.state = Load
}

func (j *Job) doLoad() {
	q := j.handler.LoadQuery(j.qctx, j.location)
	if !j.submit(q) {
		j.abortTransport(q)
		return
	}

	res := j.handler.LoadDecode(q)
	if res.Err != nil {
		j.routeCheck(res)
		return
	}

	if res.Image != nil {
		j.gotPage = true
		j.pages <- Page{Data: res.Image, Format: res.Format, Status: Good}
	}

	j.state = res.NextOp
}

func (j *Job) doCheck() {
	q := j.handler.StatusQuery(j.qctx, j.location)
	if !j.submit(q) {
		j.abortTransport(q)
		return
	}

	res := j.handler.StatusDecode(q)
	j.err = res.Err

	if res.Retry && j.checkTries < MaxCheckRetries {
		j.checkTries++
		if res.DelayMs > 0 {
			select {
			case <-time.After(time.Duration(res.DelayMs) * time.Millisecond):
			case <-j.qctx.Done():
			}
		}
		j.state = Scan
		return
	}

	if res.Retry {
		// Retry budget exhausted.
		j.status = IOError
	} else {
		j.status = res.Status
	}

	j.state = Cleanup
}

func (j *Job) doCleanup() {
	q := j.handler.CleanupQuery(j.qctx, j.location)
	if q != nil {
		j.submit(q) // Best-effort; outcome doesn't change the job's status.
	}
	j.state = Finish
}

func (j *Job) doCancel() {
	q := j.handler.CancelQuery(j.parent, j.location)
	if q != nil {
		q.Submit(j.parent)
	}
	j.status = Cancelled
	j.state = Finish
}
