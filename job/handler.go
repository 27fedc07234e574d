// MFP - Miulti-Function Printers and scanners toolkit
// JOB - Scan job state machine
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// The protocol handler operation table

package job

import (
	"context"

	"github.com/alexpevzner/scanbridge/abstract"
	"github.com/alexpevzner/scanbridge/transport"
)

// State is a job's position in the scan lifecycle. It doubles as the
// "next operation" a [Result] asks the machine to run: every value
// but [Finish] names both a state and the operation executed on
// entry to it.
type State int

// Known states/operations, in the order the happy path visits them.
const (
	Devcaps State = iota
	Precheck
	Scan
	Load
	Check
	Cleanup
	Cancel
	Finish
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Devcaps:
		return "DEVCAPS"
	case Precheck:
		return "PRECHECK"
	case Scan:
		return "SCAN"
	case Load:
		return "LOAD"
	case Check:
		return "CHECK"
	case Cleanup:
		return "CLEANUP"
	case Cancel:
		return "CANCEL"
	case Finish:
		return "FINISH"
	}
	return "UNKNOWN"
}

// Result is returned by every *Decode call: it tells the machine
// what to do next and carries whatever data that operation produced.
type Result struct {
	NextOp   State  // Where the machine goes next
	Status   Status // Outcome, read by the machine from StatusDecode's result
	Err      error  // Decode-level error (malformed response, fault)
	DelayMs  int    // Delay before NextOp, used by Check's retry path
	Location string // Job location, set by Scan
	Image    []byte // Page bytes, set by Load
	Format   string // Page MIME type, set by Load
	Retry    bool   // Check: true if NextOp==Scan is a transient retry
}

// Handler implements one protocol's (eSCL or WSD) operation table.
// Every *Query method builds the HTTP request; the matching *Decode
// method inspects the completed [transport.Query] and returns a
// [Result]. A nil Query return (from Precheck or Cleanup) means the
// operation is a no-op for this protocol; the machine skips straight
// to the decode with a nil Query.
type Handler interface {
	DevcapsQuery(ctx context.Context) *transport.Query
	DevcapsDecode(q *transport.Query) (*abstract.ScannerCapabilities, Result)

	PrecheckQuery(ctx context.Context) *transport.Query
	PrecheckDecode(q *transport.Query) Result

	ScanQuery(ctx context.Context, caps *abstract.ScannerCapabilities, req abstract.ScannerRequest) *transport.Query
	ScanDecode(q *transport.Query) Result

	LoadQuery(ctx context.Context, location string) *transport.Query
	LoadDecode(q *transport.Query) Result

	StatusQuery(ctx context.Context, location string) *transport.Query
	StatusDecode(q *transport.Query) Result

	CleanupQuery(ctx context.Context, location string) *transport.Query
	CancelQuery(ctx context.Context, location string) *transport.Query
}
