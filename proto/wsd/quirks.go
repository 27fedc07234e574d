// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Device-specific WSD quirks

package wsd

// Quirk collects the deviations from the WSD scan service spec that
// one device model is known to exhibit.
type Quirk struct {
	// ImagesToTransfer, when non-zero, overrides
	// DocumentParameters.ImagesToTransfer regardless of input
	// source. The Ricoh Aficio MP 201 ignores 0 ("until empty") and
	// stops after a single page unless told a large fixed count.
	ImagesToTransfer int

	// BusyMeansNoDocsOnIdleADF treats a ServerErrorNotAcceptingJobs
	// fault as NoDocs, rather than DeviceBusy, when the job targets
	// the ADF and the device's own status reports it Idle. The
	// Canon MF410 raises this fault for an empty ADF instead of
	// ClientErrorNoImagesAvailable.
	BusyMeansNoDocsOnIdleADF bool

	// SwapWidthHeight corrects devices that report their page size
	// limits transposed (width where height belongs) under
	// GetScannerElements.
	SwapWidthHeight bool

	// DisableSoftwareClipping opts a device out of the core's
	// default behavior of collapsing min/max width and height to
	// the maximum, which otherwise compensates for devices that
	// accept a smaller requested scan region but render full-size
	// pages anyway.
	DisableSoftwareClipping bool
}

// QuirkTable maps a device's reported model name to its known
// [Quirk]. Lookup is an exact match; an unrecognized model gets the
// zero Quirk (no overrides).
type QuirkTable map[string]Quirk

// DefaultQuirks is the quirk table built from models observed to
// deviate from the spec.
var DefaultQuirks = QuirkTable{
	"Aficio MP 201": {ImagesToTransfer: 100},
	"MF410 Series":  {BusyMeansNoDocsOnIdleADF: true},
}

// Lookup returns the quirk registered for model, or the zero Quirk if
// none is registered.
func (t QuirkTable) Lookup(model string) Quirk {
	return t[model]
}
