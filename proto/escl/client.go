// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// eSCL client operation table

package escl

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alexpevzner/scanbridge/abstract"
	"github.com/alexpevzner/scanbridge/escl"
	"github.com/alexpevzner/scanbridge/job"
	"github.com/alexpevzner/scanbridge/optional"
	"github.com/alexpevzner/scanbridge/transport"
	"github.com/alexpevzner/scanbridge/xmldoc"
)

// Handler drives a single scan job against one eSCL device. It
// implements [job.Handler]. Create one per [job.Job]: it remembers
// the device's reported protocol version and whether a page has
// already been delivered, so it isn't safe to share between jobs.
type Handler struct {
	client  *http.Client
	base    transport.URL // root eSCL endpoint, e.g. http://host/eSCL
	version escl.Version
	gotPage bool
}

// NewHandler returns a [Handler] driving the eSCL root at base.
func NewHandler(client *http.Client, base transport.URL) *Handler {
	return &Handler{client: client, base: base, version: escl.DefaultVersion}
}

// at returns h.base with its path replaced by p.
func (h *Handler) at(p string) transport.URL {
	u := h.base
	u.Path = p
	return u
}

// child returns h.base's path with name appended.
func (h *Handler) child(name string) string {
	return transport.CleanURLPath(h.base.Path + "/" + name)
}

// resolvePath extracts the path component of a Location header value,
// which devices send either as a complete URL or as a bare path.
func resolvePath(loc string) string {
	if u, err := url.Parse(loc); err == nil && u.Path != "" {
		return u.Path
	}
	return loc
}

func (h *Handler) DevcapsQuery(ctx context.Context) *transport.Query {
	return transport.NewQuery(h.client,
		h.at(h.child("ScannerCapabilities")), "GET", nil, "")
}

func (h *Handler) DevcapsDecode(q *transport.Query) (*abstract.ScannerCapabilities, job.Result) {
	if q.StatusCode() != http.StatusOK {
		return nil, job.Result{Err: fmt.Errorf(
			"proto/escl: GET ScannerCapabilities: HTTP %d", q.StatusCode())}
	}

	xml, err := xmldoc.DecodeBytes(escl.NsMap, q.Body())
	if err != nil {
		return nil, job.Result{Err: fmt.Errorf("proto/escl: %w", err)}
	}

	caps, err := escl.DecodeScannerCapabilities(xml)
	if err != nil {
		return nil, job.Result{Err: fmt.Errorf("proto/escl: %w", err)}
	}

	h.version = caps.Version
	return caps.ToAbstract(), job.Result{NextOp: job.Precheck}
}

// PrecheckQuery is a no-op: eSCL has no operation corresponding to a
// WSD-style pre-scan availability check.
func (h *Handler) PrecheckQuery(ctx context.Context) *transport.Query {
	return nil
}

func (h *Handler) PrecheckDecode(q *transport.Query) job.Result {
	return job.Result{NextOp: job.Scan}
}

func (h *Handler) ScanQuery(ctx context.Context,
	caps *abstract.ScannerCapabilities, req abstract.ScannerRequest) *transport.Query {

	ss := escl.FromAbstract(h.version, req)

	var buf bytes.Buffer
	ss.ToXML().Encode(&buf, escl.NsMap)

	return transport.NewQuery(h.client, h.at(h.child("ScanJobs")),
		"POST", buf.Bytes(), escl.HTTPContentType)
}

func (h *Handler) ScanDecode(q *transport.Query) job.Result {
	if q.StatusCode() != http.StatusCreated {
		return job.Result{Err: fmt.Errorf(
			"proto/escl: POST ScanJobs: HTTP %d", q.StatusCode())}
	}

	loc := q.ResponseHeader().Get("Location")
	if loc == "" {
		return job.Result{Err: fmt.Errorf(
			"proto/escl: POST ScanJobs: Location header missed")}
	}

	h.gotPage = false
	return job.Result{NextOp: job.Load, Location: resolvePath(loc)}
}

func (h *Handler) LoadQuery(ctx context.Context, location string) *transport.Query {
	return transport.NewQuery(h.client,
		h.at(transport.CleanURLPath(location+"/NextDocument")), "GET", nil, "")
}

func (h *Handler) LoadDecode(q *transport.Query) job.Result {
	switch q.StatusCode() {
	case http.StatusOK:
		h.gotPage = true
		return job.Result{
			NextOp: job.Load,
			Image:  q.Body(),
			Format: q.ResponseHeader().Get("Content-Type"),
		}

	case http.StatusNotFound:
		// The device signals end-of-job by 404ing the next
		// document once the last page has been delivered; a 404
		// before any page at all means no input was available.
		if h.gotPage {
			return job.Result{NextOp: job.Cleanup, Status: job.Good}
		}
		return job.Result{Err: fmt.Errorf(
			"proto/escl: GET NextDocument: no documents available")}

	default:
		return job.Result{Err: fmt.Errorf(
			"proto/escl: GET NextDocument: HTTP %d", q.StatusCode())}
	}
}

func (h *Handler) StatusQuery(ctx context.Context, location string) *transport.Query {
	return transport.NewQuery(h.client,
		h.at(h.child("ScannerStatus")), "GET", nil, "")
}

func (h *Handler) StatusDecode(q *transport.Query) job.Result {
	if q.StatusCode() != http.StatusOK {
		return job.Result{Status: job.IOError, Err: fmt.Errorf(
			"proto/escl: GET ScannerStatus: HTTP %d", q.StatusCode())}
	}

	xml, err := xmldoc.DecodeBytes(escl.NsMap, q.Body())
	if err != nil {
		return job.Result{Status: job.IOError, Err: fmt.Errorf("proto/escl: %w", err)}
	}

	status, err := escl.DecodeScannerStatus(xml)
	if err != nil {
		return job.Result{Status: job.IOError, Err: fmt.Errorf("proto/escl: %w", err)}
	}

	return job.Result{Status: statusFromScannerStatus(status)}
}

// statusFromScannerStatus maps a device's reported ScannerStatus onto
// a job outcome. An ADF hardware condition takes priority over the
// latest job's state reason, since it explains why the job failed.
func statusFromScannerStatus(status escl.ScannerStatus) job.Status {
	if adf, ok := optional.Get(status.ADFState); ok {
		switch adf {
		case escl.ScannerAdfEmpty:
			return job.NoDocs
		case escl.ScannerAdfJam, escl.ScannerAdfMispick:
			return job.Jammed
		case escl.ScannerAdfHatchOpen:
			return job.CoverOpen
		}
	}

	if len(status.Jobs) > 0 {
		for _, reason := range status.Jobs[0].JobStateReasons {
			switch reason {
			case escl.JobCanceledByUser:
				return job.Cancelled
			case escl.ErrorsDetected, escl.AbortedBySystem:
				return job.IOError
			}
		}
	}

	if status.State == escl.ScannerDown || status.State == escl.ScannerStopped {
		return job.IOError
	}

	return job.Good
}

// CleanupQuery is a no-op: eSCL has no operation corresponding to WSD's
// explicit end-of-job cleanup.
func (h *Handler) CleanupQuery(ctx context.Context, location string) *transport.Query {
	return nil
}

func (h *Handler) CancelQuery(ctx context.Context, location string) *transport.Query {
	return transport.NewQuery(h.client, h.at(location), "DELETE", nil, "")
}
