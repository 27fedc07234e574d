// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Client/server integration tests

package escl

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/alexpevzner/scanbridge/abstract"
	"github.com/alexpevzner/scanbridge/job"
	"github.com/alexpevzner/scanbridge/transport"
)

// fakeDocumentFile is a single in-memory page served by fakeDocument.
type fakeDocumentFile struct {
	*bytes.Reader
	format string
}

func (f *fakeDocumentFile) Format() string { return f.format }

// fakeDocument serves a fixed list of pages, then io.EOF.
type fakeDocument struct {
	pages []*fakeDocumentFile
	pos   int
}

func (d *fakeDocument) Next() (abstract.DocumentFile, error) {
	if d.pos >= len(d.pages) {
		return nil, io.EOF
	}
	f := d.pages[d.pos]
	d.pos++
	return f, nil
}

func (d *fakeDocument) Close() {}

// fakeScanner implements [abstract.Scanner] with a canned capability
// set and a single fixed two-page document for every scan request.
type fakeScanner struct {
	caps *abstract.ScannerCapabilities
}

func (s *fakeScanner) Capabilities() *abstract.ScannerCapabilities {
	return s.caps
}

func (s *fakeScanner) Scan(ctx context.Context, req abstract.ScannerRequest) (abstract.Document, error) {
	return &fakeDocument{
		pages: []*fakeDocumentFile{
			{Reader: bytes.NewReader([]byte("page-1-bytes")), format: "image/jpeg"},
			{Reader: bytes.NewReader([]byte("page-2-bytes")), format: "image/jpeg"},
		},
	}, nil
}

// TestClientAgainstAbstractServer drives a full [job.Job] over HTTP
// against an [AbstractServer] backed by a fake two-page scanner,
// exercising DevcapsQuery/Decode through Cleanup without touching a
// real device.
func TestClientAgainstAbstractServer(t *testing.T) {
	scanner := &fakeScanner{
		caps: &abstract.ScannerCapabilities{
			Protocol: "eSCL",
			Platen: &abstract.InputCapabilities{
				MaxWidth: 2550, MaxHeight: 3300,
			},
		},
	}

	srv := NewAbstractServer(context.Background(), AbstractServerOptions{
		Scanner:  scanner,
		BasePath: "/eSCL",
	})

	ts := httptest.NewServer(srv)
	defer ts.Close()

	base, err := transport.ParseURL(ts.URL + "/eSCL")
	if err != nil {
		t.Fatalf("ParseURL: %s", err)
	}

	h := NewHandler(ts.Client(), base)
	j := job.New(context.Background(), h, abstract.ScannerRequest{
		Input: abstract.InputPlaten,
	})

	go j.Run()

	var pages [][]byte
	for p := range j.Pages() {
		pages = append(pages, p.Data)
	}

	if j.Status() != job.Good {
		t.Fatalf("expected status GOOD, got %s (err: %v)", j.Status(), j.Err())
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if string(pages[0]) != "page-1-bytes" || string(pages[1]) != "page-2-bytes" {
		t.Errorf("unexpected page contents: %q", pages)
	}
}
