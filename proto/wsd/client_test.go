// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Client tests

package wsd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexpevzner/scanbridge/abstract"
	"github.com/alexpevzner/scanbridge/job"
	"github.com/alexpevzner/scanbridge/transport"
	"github.com/alexpevzner/scanbridge/wsd"
)

// TestAddressWithoutZone covers plain, IPv4, and zoned/unzoned IPv6
// hosts, with and without a port.
func TestAddressWithoutZone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://printer.local/scan", "http://printer.local/scan"},
		{"http://printer.local:8080/scan", "http://printer.local:8080/scan"},
		{"http://192.168.1.5:80/scan", "http://192.168.1.5/scan"},
		{"http://[fe80::1%25eth0]:80/scan", "http://[fe80::1]/scan"},
		{"http://[fe80::1]:80/scan", "http://[fe80::1]/scan"},
	}

	for _, test := range tests {
		u, err := transport.ParseURL(test.in)
		if err != nil {
			t.Fatalf("ParseURL(%q): %s", test.in, err)
		}
		got := addressWithoutZone(u)
		if got != test.want {
			t.Errorf("addressWithoutZone(%q):\nwant: %s\ngot:  %s", test.in, test.want, got)
		}
	}
}

// TestChooseFormat covers preference ordering and the no-match/no-caps
// fallbacks.
func TestChooseFormat(t *testing.T) {
	tests := []struct {
		mime string
		have []string
		want string
	}{
		{"image/jpeg", []string{"dib", "jfif"}, "jfif"},
		{"application/pdf", []string{"pdf-a", "jfif"}, "pdf-a"},
		{"image/tiff", []string{"tiff-single-g3mh", "dib"}, "tiff-single-g3mh"},
		{"image/jpeg", []string{"dib", "tiff-single-uncompressed"}, "tiff-single-uncompressed"},
		{"image/jpeg", nil, "jfif"},
	}

	for _, test := range tests {
		req := abstract.ScannerRequest{DocumentFormat: test.mime}
		caps := &wsd.ScannerSourceCaps{FormatValues: test.have}
		if test.have == nil {
			caps = nil
		}
		got := chooseFormat(req, caps)
		if got != test.want {
			t.Errorf("chooseFormat(%s, %v): want %s, got %s",
				test.mime, test.have, test.want, got)
		}
	}
}

// TestLocationRoundTrip covers the "<JobId>:<JobToken>" encoding.
func TestLocationRoundTrip(t *testing.T) {
	loc := location(42, "tok-abc")
	if loc != "42:tok-abc" {
		t.Fatalf("unexpected location: %q", loc)
	}

	id, token, err := parseLocation(loc)
	if err != nil {
		t.Fatalf("parseLocation: %s", err)
	}
	if id != 42 || token != "tok-abc" {
		t.Errorf("parseLocation: got (%d, %q)", id, token)
	}

	if _, _, err := parseLocation("malformed"); err == nil {
		t.Error("parseLocation: expected error on malformed input")
	}
}

// TestStatusFromFaultMapping covers the Check-state fault table,
// including the Canon MF410-style quirk exception.
func TestStatusFromFaultMapping(t *testing.T) {
	tests := []struct {
		fault   string
		quirk   Quirk
		input   abstract.Input
		state   string
		want    job.Status
		retry   bool
	}{
		{fault: "scan:ClientErrorNoImagesAvailable", input: abstract.InputADF, want: job.NoDocs},
		{fault: "scan:ClientErrorNoImagesAvailable", input: abstract.InputPlaten, want: job.IOError},
		{fault: "scan:Calibrating", retry: true},
		{fault: "scan:CoverOpen", want: job.CoverOpen},
		{fault: "scan:MediaJam", want: job.Jammed},
		{fault: "scan:InternalStorageFull", want: job.NoMem},
		{fault: "scan:LampError", want: job.IOError},
		{
			fault: "scan:ServerErrorNotAcceptingJobs",
			want:  job.DeviceBusy,
		},
		{
			fault: "scan:ServerErrorNotAcceptingJobs",
			quirk: Quirk{BusyMeansNoDocsOnIdleADF: true},
			input: abstract.InputADF,
			state: "Idle",
			want:  job.NoDocs,
		},
	}

	for _, test := range tests {
		h := &Handler{quirk: test.quirk, input: test.input, lastFault: test.fault}
		res := h.statusFromFault(wsd.ScannerStatus{ScannerState: test.state})
		if test.retry {
			if !res.Retry || res.DelayMs != 1000 {
				t.Errorf("%s: expected retry with 1000ms delay, got %+v", test.fault, res)
			}
			continue
		}
		if res.Status != test.want {
			t.Errorf("%s: want status %s, got %s", test.fault, test.want, res.Status)
		}
	}
}

// fakeJobID and fakeJobToken are the fixed scan-job state the fake
// scan service serves.
const (
	fakeJobID    = 7
	fakeJobToken = "token-xyz"
)

// fakeScanService answers the WSD scan-service SOAP actions this
// package's client exercises, dispatching on the SOAPAction header.
func fakeScanService(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action := r.Header.Get("SOAPAction")
		body, _ := io.ReadAll(r.Body)

		switch wsd.Action(action) {
		case wsd.ActGetScannerElements:
			cfg := wsd.ScannerConfiguration{
				Platen: &wsd.ScannerSourceCaps{
					MaxWidth: 8500, MaxHeight: 14000,
					FormatValues: []string{"jfif", "dib"},
				},
			}
			writeMsg(w, wsd.ActGetScannerElementsRsp, cfg)

		case wsd.ActGetScannerStatus:
			writeMsg(w, wsd.ActGetScannerStatusRsp,
				wsd.ScannerStatus{ScannerState: "Idle"})

		case wsd.ActCreateScanJob:
			writeMsg(w, wsd.ActCreateScanJobRsp, wsd.CreateScanJobResponse{
				JobId: fakeJobID, JobToken: fakeJobToken,
			})

		case wsd.ActRetrieveImage:
			writeMultipartImage(w)

		case wsd.ActCancelJob:
			writeMsg(w, wsd.ActCancelJobRsp, wsd.CancelJobResponse{})

		default:
			t.Fatalf("fakeScanService: unexpected action %q (body %s)", action, body)
		}
	}
}

func writeMsg(w http.ResponseWriter, action wsd.Action, body wsd.Body) {
	msg := wsd.Msg{Header: wsd.Header{Action: action}, Body: body}
	var buf bytes.Buffer
	msg.ToXML().Encode(&buf, wsd.NsMap)
	w.Header().Set("Content-Type", `application/soap+xml; charset="utf-8"`)
	w.Write(buf.Bytes())
}

func writeMultipartImage(w http.ResponseWriter) {
	msg := wsd.Msg{
		Header: wsd.Header{Action: wsd.ActRetrieveImageRsp},
		Body:   wsd.RetrieveImageResponse{},
	}
	var soapPart bytes.Buffer
	msg.ToXML().Encode(&soapPart, wsd.NsMap)

	const boundary = "wsd-boundary"
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: application/soap+xml\r\n\r\n")
	buf.Write(soapPart.Bytes())
	fmt.Fprintf(&buf, "\r\n--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: image/jpeg\r\n\r\n")
	buf.WriteString("jpeg-page-bytes")
	fmt.Fprintf(&buf, "\r\n--%s--\r\n", boundary)

	w.Header().Set("Content-Type",
		fmt.Sprintf(`multipart/related; boundary=%s`, boundary))
	w.Write(buf.Bytes())
}

// TestHandlerFullJob drives a full [job.Job] over HTTP against the
// fake scan service, covering Devcaps through a single-page platen
// scan to Cleanup.
func TestHandlerFullJob(t *testing.T) {
	ts := httptest.NewServer(fakeScanService(t))
	defer ts.Close()

	base, err := transport.ParseURL(ts.URL + "/scan")
	if err != nil {
		t.Fatalf("ParseURL: %s", err)
	}

	h := NewHandler(ts.Client(), base, "Test Model", DefaultQuirks)
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
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if string(pages[0]) != "jpeg-page-bytes" {
		t.Errorf("unexpected page data: %q", pages[0])
	}
}
