// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// WSD client operation table

package wsd

import (
	"bytes"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"context"

	"github.com/alexpevzner/scanbridge/abstract"
	"github.com/alexpevzner/scanbridge/job"
	"github.com/alexpevzner/scanbridge/transport"
	"github.com/alexpevzner/scanbridge/wsd"
	"github.com/alexpevzner/scanbridge/xmldoc"
	"github.com/google/uuid"
)

// anonymousReplyTo is the standard WS-Addressing anonymous endpoint,
// used as ReplyTo on every directed request this client sends.
const anonymousReplyTo = wsd.AnyURI("http://schemas.xmlsoap.org/ws/2004/08/addressing/role/anonymous")

// Handler drives a single scan job against one WSD device. It
// implements [job.Handler]. Create one per [job.Job]: it remembers
// the advertised capabilities, the created job's id/token and the
// fault last seen, so it isn't safe to share between jobs.
type Handler struct {
	client *http.Client
	base   transport.URL // WSD scan service endpoint
	quirk  Quirk

	cfg wsd.ScannerConfiguration // raw capabilities, kept for format selection

	input     abstract.Input
	jobID     int
	jobToken  string
	docNum    int
	lastFault string
}

// NewHandler returns a [Handler] driving the WSD scan service at
// base. model is the device's reported model name, used to look up
// its [Quirk] in quirks.
func NewHandler(client *http.Client, base transport.URL, model string, quirks QuirkTable) *Handler {
	return &Handler{
		client: client,
		base:   base,
		quirk:  quirks.Lookup(model),
	}
}

// newMessageID returns a freshly generated urn:uuid MessageID.
func newMessageID() wsd.AnyURI {
	u, err := uuid.NewRandom()
	if err != nil {
		// uuid.NewRandom only fails if the system RNG is broken;
		// a fixed fallback keeps the header well-formed.
		return wsd.AnyURI("urn:uuid:00000000-0000-0000-0000-000000000000")
	}
	return wsd.AnyURI(u.URN())
}

// header builds the stable SOAP header WSD expects on every directed
// scan-service request.
func (h *Handler) header(action wsd.Action) wsd.Header {
	return wsd.Header{
		Action:    action,
		MessageID: newMessageID(),
		To:        wsd.AnyURI(addressWithoutZone(h.base)),
		ReplyTo:   &wsd.EndpointReference{Address: anonymousReplyTo},
	}
}

// addressWithoutZone returns u's string form with any IPv6 zone
// identifier stripped from the host, as WSD's To header expects:
// the zone is a local routing detail, meaningless to the device.
func addressWithoutZone(u transport.URL) string {
	host, port, err := net.SplitHostPort(u.Host)
	if err != nil {
		host = strings.TrimSuffix(strings.TrimPrefix(u.Host, "["), "]")
		port = ""
	}

	if base, _, ok := strings.Cut(host, "%"); ok {
		host = base
	}

	if port != "" {
		u.Host = net.JoinHostPort(host, port)
	} else if strings.Contains(host, ":") {
		u.Host = "[" + host + "]"
	} else {
		u.Host = host
	}

	return u.String()
}

// soapContentType builds the SOAP 1.2 Content-Type, including the
// action parameter some devices require for dispatch.
func soapContentType(action wsd.Action) string {
	return fmt.Sprintf(`application/soap+xml; charset="utf-8"; action="%s"`, action)
}

// post builds a [transport.Query] POSTing msg to the scan service
// endpoint.
func (h *Handler) post(msg wsd.Msg) *transport.Query {
	var buf bytes.Buffer
	msg.ToXML().Encode(&buf, wsd.NsMap)

	action := msg.Header.Action
	q := transport.NewQuery(h.client, h.base, "POST", buf.Bytes(), soapContentType(action))

	hdr := q.Header()
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Pragma", "no-cache")
	hdr.Set("User-Agent", "WSDAPI")
	hdr.Set("SOAPAction", string(action))

	return q
}

// location encodes the created job as the machine's opaque location
// string.
func location(jobID int, jobToken string) string {
	return strconv.Itoa(jobID) + ":" + jobToken
}

// parseLocation decodes a location string built by [location].
func parseLocation(loc string) (jobID int, jobToken string, err error) {
	id, token, ok := strings.Cut(loc, ":")
	if !ok {
		return 0, "", fmt.Errorf("proto/wsd: malformed location %q", loc)
	}
	jobID, err = strconv.Atoi(id)
	if err != nil {
		return 0, "", fmt.Errorf("proto/wsd: malformed location %q: %w", loc, err)
	}
	return jobID, token, nil
}

// decodeBody reads q's response as a [wsd.Msg], returning the fault
// subcode (and a non-nil error) if the response is or carries a SOAP
// fault.
func decodeBody(q *transport.Query) (wsd.Msg, string, error) {
	body := q.Body()

	if !bytes.Contains(bytes.TrimSpace(body), []byte("<")) {
		return wsd.Msg{}, "", fmt.Errorf("proto/wsd: empty response")
	}

	if wsd.IsFault(body) {
		root, err := xmldoc.DecodeBytes(wsd.NsMap, body)
		if err != nil {
			return wsd.Msg{}, "", fmt.Errorf("proto/wsd: %w", err)
		}
		m, err := wsd.DecodeMsgFromElement(root)
		if err != nil {
			return wsd.Msg{}, "", fmt.Errorf("proto/wsd: %w", err)
		}
		if f, ok := m.Body.(wsd.Fault); ok {
			return m, f.Subcode, fmt.Errorf("proto/wsd: fault: %s", f.Reason)
		}
		return m, "", fmt.Errorf("proto/wsd: fault with unparsed body")
	}

	m, err := wsd.DecodeMsg(body)
	if err != nil {
		return wsd.Msg{}, "", fmt.Errorf("proto/wsd: %w", err)
	}

	if f, ok := m.Body.(wsd.Fault); ok {
		return m, f.Subcode, fmt.Errorf("proto/wsd: fault: %s", f.Reason)
	}

	return m, "", nil
}

func (h *Handler) DevcapsQuery(ctx context.Context) *transport.Query {
	msg := wsd.Msg{
		Header: h.header(wsd.ActGetScannerElements),
		Body:   wsd.GetScannerElementsRequest{},
	}
	return h.post(msg)
}

func (h *Handler) DevcapsDecode(q *transport.Query) (*abstract.ScannerCapabilities, job.Result) {
	if q.StatusCode() != http.StatusOK {
		return nil, job.Result{Err: fmt.Errorf(
			"proto/wsd: GetScannerElements: HTTP %d", q.StatusCode())}
	}

	m, _, err := decodeBody(q)
	if err != nil {
		return nil, job.Result{Err: err}
	}

	cfg, ok := m.Body.(wsd.ScannerConfiguration)
	if !ok {
		return nil, job.Result{Err: fmt.Errorf(
			"proto/wsd: GetScannerElements: unexpected response body")}
	}

	if h.quirk.SwapWidthHeight {
		swapSourceCaps(cfg.Platen)
		swapSourceCaps(cfg.ADFFront)
		swapSourceCaps(cfg.ADFBack)
	}

	h.cfg = cfg

	caps := cfg.ToAbstract()
	if !h.quirk.DisableSoftwareClipping {
		clipToMax(caps.Platen)
		clipToMax(caps.ADFSimplex)
		clipToMax(caps.ADFDuplex)
	}

	return caps, job.Result{NextOp: job.Precheck}
}

// swapSourceCaps exchanges width and height limits in place, for
// devices that transpose them.
func swapSourceCaps(caps *wsd.ScannerSourceCaps) {
	if caps == nil {
		return
	}
	caps.MinWidth, caps.MinHeight = caps.MinHeight, caps.MinWidth
	caps.MaxWidth, caps.MaxHeight = caps.MaxHeight, caps.MaxWidth
}

// clipToMax collapses an input source's size range to its maximum, so
// the host framework clips client-side rather than relying on the
// device to honor a smaller requested region.
func clipToMax(caps *abstract.InputCapabilities) {
	if caps == nil {
		return
	}
	caps.MinWidth = caps.MaxWidth
	caps.MinHeight = caps.MaxHeight
}

func (h *Handler) PrecheckQuery(ctx context.Context) *transport.Query {
	msg := wsd.Msg{
		Header: h.header(wsd.ActGetScannerStatus),
		Body:   statusRequest{},
	}
	return h.post(msg)
}

func (h *Handler) PrecheckDecode(q *transport.Query) job.Result {
	if q.StatusCode() != http.StatusOK {
		return job.Result{Err: fmt.Errorf(
			"proto/wsd: GetScannerStatus: HTTP %d", q.StatusCode())}
	}

	m, fault, err := decodeBody(q)
	if err != nil {
		h.lastFault = fault
		return job.Result{Err: err}
	}

	status, ok := m.Body.(wsd.ScannerStatus)
	if !ok {
		return job.Result{Err: fmt.Errorf(
			"proto/wsd: GetScannerStatus: unexpected response body")}
	}

	if status.ScannerState != "" && status.ScannerState != "Idle" && status.ScannerState != "Processing" {
		return job.Result{Err: fmt.Errorf(
			"proto/wsd: device reports state %s", status.ScannerState)}
	}

	return job.Result{NextOp: job.Scan}
}

// sourceCapsFor returns the raw capability record for the input
// source/mode a request targets, used to pick a format alias the
// device actually advertises.
func (h *Handler) sourceCapsFor(req abstract.ScannerRequest) *wsd.ScannerSourceCaps {
	switch {
	case req.Input == abstract.InputADF && req.ADFMode == abstract.ADFModeDuplex:
		if h.cfg.ADFBack != nil {
			return h.cfg.ADFBack
		}
		return h.cfg.ADFFront
	case req.Input == abstract.InputADF:
		return h.cfg.ADFFront
	default:
		return h.cfg.Platen
	}
}

// formatPreferences returns, in order, the wire format aliases
// acceptable for a requested document MIME type. The trailing entries
// are the universal last-resort fallbacks.
func formatPreferences(mime string) []string {
	var preferred []string
	switch mime {
	case "image/jpeg":
		preferred = []string{"jfif", "exif"}
	case "application/pdf":
		preferred = []string{"pdf-a"}
	case "image/png":
		preferred = []string{"png"}
	case "image/tiff":
		preferred = []string{"tiff-single-g4", "tiff-single-g3mh"}
	}
	return append(preferred,
		"tiff-single-jpeg-tn2", "tiff-single-uncompressed", "dib")
}

// chooseFormat picks the wire format alias to put in the scan ticket:
// the first preference for req.DocumentFormat that caps actually
// advertises, or caps' first advertised alias if none match.
func chooseFormat(req abstract.ScannerRequest, caps *wsd.ScannerSourceCaps) string {
	if caps == nil || len(caps.FormatValues) == 0 {
		return "jfif"
	}
	for _, want := range formatPreferences(req.DocumentFormat) {
		for _, have := range caps.FormatValues {
			if strings.EqualFold(want, have) {
				return have
			}
		}
	}
	return caps.FormatValues[0]
}

func (h *Handler) ScanQuery(ctx context.Context,
	caps *abstract.ScannerCapabilities, req abstract.ScannerRequest) *transport.Query {

	format := chooseFormat(req, h.sourceCapsFor(req))
	ticket := wsd.BuildCreateScanJobRequest(req, format)

	if n := h.quirk.ImagesToTransfer; n != 0 {
		ticket.Ticket.DocumentParameters.ImagesToTransfer = n
	}

	h.input = req.Input
	h.docNum = 0

	msg := wsd.Msg{
		Header: h.header(wsd.ActCreateScanJob),
		Body:   ticket,
	}
	return h.post(msg)
}

func (h *Handler) ScanDecode(q *transport.Query) job.Result {
	if q.StatusCode() != http.StatusOK {
		return job.Result{Err: fmt.Errorf(
			"proto/wsd: CreateScanJob: HTTP %d", q.StatusCode())}
	}

	m, fault, err := decodeBody(q)
	if err != nil {
		h.lastFault = fault
		return job.Result{Err: err}
	}

	rsp, ok := m.Body.(wsd.CreateScanJobResponse)
	if !ok {
		return job.Result{Err: fmt.Errorf(
			"proto/wsd: CreateScanJob: unexpected response body")}
	}

	h.jobID = rsp.JobId
	h.jobToken = rsp.JobToken
	h.lastFault = ""

	return job.Result{NextOp: job.Load, Location: location(h.jobID, h.jobToken)}
}

func (h *Handler) LoadQuery(ctx context.Context, loc string) *transport.Query {
	// loc was built by location() in ScanDecode, so it's always
	// well-formed; a parse failure here can't happen in practice.
	jobID, jobToken, _ := parseLocation(loc)

	h.docNum++
	req := wsd.RetrieveImageRequest{
		JobId:        jobID,
		JobToken:     jobToken,
		DocumentName: fmt.Sprintf("Image%d", h.docNum),
	}

	msg := wsd.Msg{
		Header: h.header(wsd.ActRetrieveImage),
		Body:   req,
	}
	return h.post(msg)
}

// adfLooping reports whether the current job keeps asking for more
// pages after a successful one.
func (h *Handler) adfLooping() bool {
	return h.input == abstract.InputADF
}

func (h *Handler) LoadDecode(q *transport.Query) job.Result {
	if q.StatusCode() != http.StatusOK {
		return job.Result{Err: fmt.Errorf(
			"proto/wsd: RetrieveImage: HTTP %d", q.StatusCode())}
	}

	parts, err := q.Parts()
	if err == nil && len(parts) >= 2 {
		h.lastFault = ""

		next := job.Cleanup
		if h.adfLooping() {
			next = job.Load
		}

		return job.Result{
			NextOp: next,
			Image:  parts[1].Body,
			Format: parts[1].ContentType(),
		}
	}

	_, fault, derr := decodeBody(q)
	h.lastFault = fault
	if derr != nil {
		return job.Result{Err: derr}
	}
	return job.Result{Err: fmt.Errorf("proto/wsd: RetrieveImage: no image part")}
}

func (h *Handler) StatusQuery(ctx context.Context, loc string) *transport.Query {
	msg := wsd.Msg{
		Header: h.header(wsd.ActGetScannerStatus),
		Body:   statusRequest{},
	}
	return h.post(msg)
}

func (h *Handler) StatusDecode(q *transport.Query) job.Result {
	if q.StatusCode() != http.StatusOK {
		return job.Result{Status: job.IOError, Err: fmt.Errorf(
			"proto/wsd: GetScannerStatus: HTTP %d", q.StatusCode())}
	}

	m, _, err := decodeBody(q)
	if err != nil {
		return job.Result{Status: job.IOError, Err: err}
	}

	status, ok := m.Body.(wsd.ScannerStatus)
	if !ok {
		return job.Result{Status: job.IOError, Err: fmt.Errorf(
			"proto/wsd: GetScannerStatus: unexpected response body")}
	}

	return h.statusFromFault(status)
}

// statusFromFault maps the last captured fault subcode, combined with
// the freshest device status, onto a job outcome.
func (h *Handler) statusFromFault(status wsd.ScannerStatus) job.Result {
	code := h.lastFault
	if i := strings.LastIndexByte(code, ':'); i >= 0 {
		code = code[i+1:]
	}

	switch code {
	case "ClientErrorNoImagesAvailable", "ClientErrorJobIdNotFound":
		if h.input == abstract.InputADF {
			return job.Result{Status: job.NoDocs}
		}
		return job.Result{Status: job.IOError}

	case "Calibrating", "LampWarming":
		return job.Result{Retry: true, DelayMs: 1000}

	case "CoverOpen", "InterlockOpen":
		return job.Result{Status: job.CoverOpen}

	case "MediaJam", "MultipleFeedError":
		return job.Result{Status: job.Jammed}

	case "InternalStorageFull":
		return job.Result{Status: job.NoMem}

	case "LampError":
		return job.Result{Status: job.IOError}

	case "ServerErrorNotAcceptingJobs":
		if h.quirk.BusyMeansNoDocsOnIdleADF &&
			h.input == abstract.InputADF && status.ScannerState == "Idle" {
			return job.Result{Status: job.NoDocs}
		}
		return job.Result{Status: job.DeviceBusy}
	}

	return job.Result{Status: job.IOError}
}

// statusRequest is GetScannerStatus's (empty) request body.
type statusRequest struct{}

func (statusRequest) ToXML() xmldoc.Element {
	return xmldoc.Element{Name: wsd.NsScan + ":GetScannerStatusRequest"}
}

func (h *Handler) CleanupQuery(ctx context.Context, loc string) *transport.Query {
	return nil
}

func (h *Handler) CancelQuery(ctx context.Context, loc string) *transport.Query {
	jobID, _, err := parseLocation(loc)
	if err != nil {
		return nil
	}

	msg := wsd.Msg{
		Header: h.header(wsd.ActCancelJob),
		Body:   wsd.CancelJobRequest{JobId: jobID},
	}
	return h.post(msg)
}
