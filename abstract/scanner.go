// MFP - Miulti-Function Printers and scanners toolkit
// Abstract definition for printer and scanner interfaces
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Abstract scanner interface

package abstract

import (
	"context"
	"io"
)

// DocumentFile is a single scanned page, as a stream of bytes in its
// native document format (JPEG, PDF and so on).
type DocumentFile interface {
	io.Reader

	// Format returns the file's MIME content type.
	Format() string
}

// Document represents a scan job in progress, as a sequence of
// [DocumentFile]s, one per scanned page.
type Document interface {
	// Next returns the next scanned page, or io.EOF once the
	// job has no more pages to deliver.
	Next() (DocumentFile, error)

	// Close aborts the job and releases its resources.
	Close()
}

// Scanner is the abstract, protocol-neutral interface of a scanner
// device, implemented by the protocol-specific handlers in `proto/escl`
// and `proto/wsd`.
type Scanner interface {
	// Capabilities returns the scanner capabilities.
	Capabilities() *ScannerCapabilities

	// Scan submits a new scan request and returns the [Document]
	// that will deliver the scanned pages.
	Scan(ctx context.Context, req ScannerRequest) (Document, error)
}
