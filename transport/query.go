// MFP       - Miulti-Function Printers and scanners toolkit
// TRANSPORT - Transport protocol implementation
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// HTTP query and multipart response decomposition

package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/alexpevzner/scanbridge/log"
)

// Query represents a single HTTP request/response exchange against a
// device's [URL]. The caller builds a Query, optionally adjusts its
// request header, then calls [Query.Submit]; cancellation is done
// through ctx, same as for any blocking network call.
//
// The response body is cached as an immutable byte slice. A
// multipart response is decomposed into parts lazily, on the first
// call to [Query.Parts].
type Query struct {
	client      *http.Client
	uri         URL
	method      string
	reqBody     []byte
	contentType string
	reqHeader   http.Header

	rspStatus int
	rspHeader http.Header
	rspBody   []byte

	err error // Transport-level error (failed to obtain a response)

	partsDone bool
	parts     []Part
	partsErr  error
}

// Part is a single part of a decomposed multipart response body.
type Part struct {
	Header http.Header
	Body   []byte
}

// ContentType returns the part's own Content-Type header.
func (p Part) ContentType() string {
	return p.Header.Get("Content-Type")
}

// NewQuery creates a new [Query] against uri, using client to issue
// the request. body is the request payload and contentType its MIME
// type; either may be empty for bodyless requests (e.g. GET).
//
// Ownership of body passes to the Query: the caller must not modify
// it afterwards.
func NewQuery(client *http.Client, uri URL, method string, body []byte, contentType string) *Query {
	q := &Query{
		client:      client,
		uri:         uri,
		method:      method,
		reqBody:     body,
		contentType: contentType,
		reqHeader:   make(http.Header),
	}

	q.reqHeader.Set("Host", uri.Host)
	q.reqHeader.Set("Connection", "close")
	if contentType != "" {
		q.reqHeader.Set("Content-Type", contentType)
	}

	return q
}

// Header returns the query's request header, for the caller to add
// or override entries before [Query.Submit] (e.g. SOAPAction).
func (q *Query) Header() http.Header {
	return q.reqHeader
}

// Submit issues the request and waits for the response, or for ctx
// to be done. The outcome is cached on the Query: use
// [Query.TransportError], [Query.StatusCode], [Query.ResponseHeader]
// and [Query.Body] to inspect it.
//
// Submit never returns an error directly; a failure to obtain any
// HTTP response at all (DNS failure, connection refused, timeout,
// context cancellation) is recorded as the Query's transport error
// instead, so the caller always deals with the Query uniformly,
// whether or not a response was actually received.
func (q *Query) Submit(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, q.method, q.uri.String(),
		bytes.NewReader(q.reqBody))
	if err != nil {
		q.err = err
		return
	}

	req.Host = q.uri.Host
	for name, values := range q.reqHeader {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	rec := log.Begin(ctx)
	defer rec.Commit()
	rec.Debug("%s %s", q.method, q.uri.String())

	rsp, err := q.client.Do(req)
	if err != nil {
		q.err = err
		rec.Error("%s", err)
		return
	}
	defer rsp.Body.Close()

	body, err := io.ReadAll(rsp.Body)
	if err != nil {
		q.err = fmt.Errorf("reading response body: %w", err)
		rec.Error("%s", q.err)
		return
	}

	q.rspStatus = rsp.StatusCode
	q.rspHeader = rsp.Header
	q.rspBody = body

	rec.Debug("%d %s, %d bytes", rsp.StatusCode, http.StatusText(rsp.StatusCode), len(body))
}

// TransportError returns the error that prevented the request from
// reaching a response, or nil if a response (of any status code)
// was received.
func (q *Query) TransportError() error {
	return q.err
}

// StatusCode returns the response's HTTP status code. It is only
// meaningful if [Query.TransportError] returns nil.
func (q *Query) StatusCode() int {
	return q.rspStatus
}

// RequestHeader returns the request header, as it was sent.
func (q *Query) RequestHeader() http.Header {
	return q.reqHeader
}

// ResponseHeader returns the response header.
func (q *Query) ResponseHeader() http.Header {
	return q.rspHeader
}

// Body returns the cached response body.
func (q *Query) Body() []byte {
	return q.rspBody
}

// Parts decomposes the response body as multipart, using the
// boundary parameter of the response's Content-Type. The result is
// computed once and cached.
func (q *Query) Parts() ([]Part, error) {
	if !q.partsDone {
		q.parts, q.partsErr = decodeMultipart(q.rspHeader.Get("Content-Type"), q.rspBody)
		q.partsDone = true
	}
	return q.parts, q.partsErr
}

// ErrNotMultipart is returned by [Query.Parts] when the response's
// Content-Type is not multipart/*.
var ErrNotMultipart = errors.New("transport: response is not multipart")

// decodeMultipart splits body into parts, using the boundary
// parameter extracted from contentType.
//
// Some devices misformat multipart responses (wrong leading CRLF,
// stray whitespace around the closing boundary), so unlike
// [mime/multipart], the boundary search here is permissive: a
// boundary marker is accepted either at the very start of the body
// or immediately after a CRLF, and nothing else about the
// surrounding bytes is checked.
func decodeMultipart(contentType string, body []byte) ([]Part, error) {
	if contentType == "" {
		return nil, ErrNotMultipart
	}

	kind, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("parsing Content-Type: %w", err)
	}
	if len(kind) < 10 || kind[:10] != "multipart/" {
		return nil, ErrNotMultipart
	}

	boundary := params["boundary"]
	if boundary == "" {
		return nil, errors.New("transport: multipart boundary missed")
	}

	marker := append([]byte("--"), boundary...)
	offsets := findBoundaries(body, marker)
	if len(offsets) < 2 {
		return nil, errors.New("transport: multipart boundary not found")
	}

	var parts []Part
	for i := 0; i < len(offsets)-1; i++ {
		start := offsets[i] + len(marker)
		if bytes.HasPrefix(body[start:], []byte("--")) {
			break // closing boundary reached early
		}
		start = skipLeadingCRLF(body[start:]) + start

		part, err := decodePart(body[start:offsets[i+1]])
		if err != nil {
			return nil, fmt.Errorf("transport: multipart part %d: %w", i, err)
		}
		parts = append(parts, part)
	}

	return parts, nil
}

// findBoundaries returns the offsets of all occurrences of marker in
// body that sit either at the start of body or right after a CRLF.
func findBoundaries(body, marker []byte) []int {
	var offsets []int
	for pos := 0; pos <= len(body)-len(marker); {
		idx := bytes.Index(body[pos:], marker)
		if idx < 0 {
			break
		}

		at := pos + idx
		if at == 0 || bytes.HasSuffix(body[:at], []byte("\r\n")) {
			offsets = append(offsets, at)
		}
		pos = at + len(marker)
	}
	return offsets
}

// skipLeadingCRLF returns the number of bytes to skip a single
// leading CRLF off body, or 0 if there is none.
func skipLeadingCRLF(body []byte) int {
	if bytes.HasPrefix(body, []byte("\r\n")) {
		return 2
	}
	return 0
}

// decodePart parses a single part's raw bytes (the span between two
// boundary markers, with the leading CRLF already stripped) into its
// header and body. The two trailing CRLFs that precede the next
// boundary are stripped from the body.
func decodePart(raw []byte) (Part, error) {
	sep := []byte("\r\n\r\n")
	idx := bytes.Index(raw, sep)
	if idx < 0 {
		return Part{}, errors.New("part headers terminator missed")
	}

	header := make(http.Header)
	for _, line := range bytes.Split(raw[:idx], []byte("\r\n")) {
		name, value, ok := bytes.Cut(line, []byte(":"))
		if !ok {
			continue
		}
		header.Add(string(bytes.TrimSpace(name)), string(bytes.TrimSpace(value)))
	}

	payload := raw[idx+len(sep):]
	for i := 0; i < 2 && bytes.HasSuffix(payload, []byte("\r\n")); i++ {
		payload = payload[:len(payload)-2]
	}

	return Part{Header: header, Body: payload}, nil
}
