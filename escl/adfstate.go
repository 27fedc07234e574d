// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// ADF state

package escl

import "github.com/alexpevzner/scanbridge/xmldoc"

// ADFState represents the ADF (automatic document feeder) state.
type ADFState int

// Known ADF states.
const (
	UnknownADFState      ADFState = iota // Unknown ADF state
	ScannerAdfProcessing                 // ADF is feeding/scanning
	ScannerAdfEmpty                      // ADF has no paper loaded
	ScannerAdfJam                        // ADF paper jam
	ScannerAdfLoaded                     // ADF has paper loaded, idle
	ScannerAdfMispick                    // ADF mispick error
	ScannerAdfHatchOpen                  // ADF cover is open
)

// decodeADFState decodes [ADFState] from the XML tree.
func decodeADFState(root xmldoc.Element) (state ADFState, err error) {
	return decodeEnum(root, DecodeADFState)
}

// toXML generates XML tree for the [ADFState].
func (state ADFState) toXML(name string) xmldoc.Element {
	return xmldoc.Element{
		Name: name,
		Text: state.String(),
	}
}

// String returns a string representation of the [ADFState].
func (state ADFState) String() string {
	switch state {
	case ScannerAdfProcessing:
		return "ScannerAdfProcessing"
	case ScannerAdfEmpty:
		return "ScannerAdfEmpty"
	case ScannerAdfJam:
		return "ScannerAdfJam"
	case ScannerAdfLoaded:
		return "ScannerAdfLoaded"
	case ScannerAdfMispick:
		return "ScannerAdfMispick"
	case ScannerAdfHatchOpen:
		return "ScannerAdfHatchOpen"
	}

	return "Unknown"
}

// DecodeADFState decodes [ADFState] out of its XML string representation.
func DecodeADFState(s string) ADFState {
	switch s {
	case "ScannerAdfProcessing":
		return ScannerAdfProcessing
	case "ScannerAdfEmpty":
		return ScannerAdfEmpty
	case "ScannerAdfJam":
		return ScannerAdfJam
	case "ScannerAdfLoaded":
		return ScannerAdfLoaded
	case "ScannerAdfMispick":
		return ScannerAdfMispick
	case "ScannerAdfHatchOpen":
		return ScannerAdfHatchOpen
	}

	return UnknownADFState
}
