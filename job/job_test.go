// MFP - Miulti-Function Printers and scanners toolkit
// JOB - Scan job state machine
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// State machine tests

package job

import (
	"context"
	"errors"
	"testing"

	"github.com/alexpevzner/scanbridge/abstract"
	"github.com/alexpevzner/scanbridge/transport"
)

// scriptedHandler is a [Handler] test double driven by a fixed
// sequence of canned results, ignoring the queries it's asked to
// build (tests exercise the state machine, not the wire).
type scriptedHandler struct {
	loads       []Result // one entry consumed per LoadDecode call
	loadCall    int
	checks      []Result // one entry consumed per StatusDecode call
	checkCall   int
	cleanupCall int
	cancelCall  int
}

func (h *scriptedHandler) DevcapsQuery(context.Context) *transport.Query { return nil }
func (h *scriptedHandler) DevcapsDecode(*transport.Query) (*abstract.ScannerCapabilities, Result) {
	return &abstract.ScannerCapabilities{}, Result{NextOp: Precheck}
}

func (h *scriptedHandler) PrecheckQuery(context.Context) *transport.Query { return nil }
func (h *scriptedHandler) PrecheckDecode(*transport.Query) Result         { return Result{NextOp: Scan} }

func (h *scriptedHandler) ScanQuery(context.Context, *abstract.ScannerCapabilities, abstract.ScannerRequest) *transport.Query {
	return nil
}
func (h *scriptedHandler) ScanDecode(*transport.Query) Result {
	return Result{NextOp: Load, Location: "job-1"}
}

func (h *scriptedHandler) LoadQuery(context.Context, string) *transport.Query { return nil }
func (h *scriptedHandler) LoadDecode(*transport.Query) Result {
	res := h.loads[h.loadCall]
	h.loadCall++
	return res
}

func (h *scriptedHandler) StatusQuery(context.Context, string) *transport.Query { return nil }
func (h *scriptedHandler) StatusDecode(*transport.Query) Result {
	res := h.checks[h.checkCall]
	h.checkCall++
	return res
}

func (h *scriptedHandler) CleanupQuery(context.Context, string) *transport.Query {
	h.cleanupCall++
	return nil
}
func (h *scriptedHandler) CancelQuery(context.Context, string) *transport.Query {
	h.cancelCall++
	return nil
}

// drain runs the job and collects every page it delivers.
func drain(j *Job) []Page {
	go j.Run()
	var pages []Page
	for p := range j.Pages() {
		pages = append(pages, p)
	}
	return pages
}

// TestJobPlatenSinglePage covers scenario 1: platen scan of a single
// page, no ADF looping, no CHECK.
func TestJobPlatenSinglePage(t *testing.T) {
	h := &scriptedHandler{
		loads: []Result{
			{NextOp: Cleanup, Image: []byte("jpeg-bytes"), Format: "image/jpeg"},
		},
	}

	j := New(context.Background(), h, abstract.ScannerRequest{})
	pages := drain(j)

	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if string(pages[0].Data) != "jpeg-bytes" {
		t.Errorf("unexpected page data: %q", pages[0].Data)
	}
	if j.Status() != Good {
		t.Errorf("expected status GOOD, got %s", j.Status())
	}
	if h.cleanupCall != 1 {
		t.Errorf("expected 1 cleanup call, got %d", h.cleanupCall)
	}
}

// TestJobADFTwoPages covers scenario 2: ADF simplex, two pages, then
// a CHECK that resolves to NO_DOCS.
func TestJobADFTwoPages(t *testing.T) {
	h := &scriptedHandler{
		loads: []Result{
			{NextOp: Load, Image: []byte("page-1"), Format: "image/bmp"},
			{NextOp: Load, Image: []byte("page-2"), Format: "image/bmp"},
			{Err: errors.New("ClientErrorNoImagesAvailable")},
		},
		checks: []Result{
			{Status: NoDocs},
		},
	}

	j := New(context.Background(), h, abstract.ScannerRequest{})
	pages := drain(j)

	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if j.Status() != NoDocs {
		t.Errorf("expected status NO_DOCS, got %s", j.Status())
	}
}

// TestJobRetryBudgetExhausted covers scenario 3: a CHECK that keeps
// asking for a retry past the retry budget ends with IO_ERROR.
func TestJobRetryBudgetExhausted(t *testing.T) {
	h := &scriptedHandler{}

	loads := make([]Result, MaxCheckRetries+1)
	for i := range loads {
		loads[i] = Result{Err: errors.New("device busy")}
	}
	h.loads = loads

	checks := make([]Result, MaxCheckRetries+1)
	for i := range checks {
		checks[i] = Result{Retry: true, DelayMs: 0, Status: DeviceBusy}
	}
	h.checks = checks

	j := New(context.Background(), h, abstract.ScannerRequest{})
	drain(j)

	if j.Status() != IOError {
		t.Errorf("expected status IO_ERROR, got %s", j.Status())
	}
	if h.checkCall != MaxCheckRetries+1 {
		t.Errorf("expected %d CHECK calls, got %d", MaxCheckRetries+1, h.checkCall)
	}
}

// cancelSyncHandler blocks its first LoadDecode call until released,
// so the test can call Job.Cancel at a deterministic point instead
// of racing a sleep against the (otherwise instantaneous) machine.
type cancelSyncHandler struct {
	scriptedHandler
	entered chan struct{}
	release chan struct{}
}

func (h *cancelSyncHandler) LoadDecode(q *transport.Query) Result {
	if h.loadCall == 0 {
		close(h.entered)
		<-h.release
	}
	return h.scriptedHandler.LoadDecode(q)
}

// TestJobCancelMidLoad covers scenario 6: cancelling while LOAD is
// in flight sends the machine to CANCEL and a final CANCELLED.
func TestJobCancelMidLoad(t *testing.T) {
	h := &cancelSyncHandler{
		scriptedHandler: scriptedHandler{
			loads: []Result{
				{NextOp: Load, Image: []byte("page-1"), Format: "image/bmp"},
			},
		},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}

	j := New(context.Background(), h, abstract.ScannerRequest{})

	go func() {
		<-h.entered
		j.Cancel()
		close(h.release)
	}()

	drain(j)

	if j.Status() != Cancelled {
		t.Errorf("expected status CANCELLED, got %s", j.Status())
	}
	if h.cancelCall != 1 {
		t.Errorf("expected 1 cancel call, got %d", h.cancelCall)
	}
}
