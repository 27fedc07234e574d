// MFP - Miulti-Function Printers and scanners toolkit
// Abstract definition for printer and scanner interfaces
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// ADF duplex mode

package abstract

// ADFMode specifies the ADF duplex mode, for [InputADF].
type ADFMode int

// Known ADF modes.
const (
	ADFModeUnset ADFMode = iota // Not specified
	ADFModeSimplex
	ADFModeDuplex

	adfModeMax // Must be the last
)

// String returns a string representation of the [ADFMode].
func (mode ADFMode) String() string {
	switch mode {
	case ADFModeSimplex:
		return "Simplex"
	case ADFModeDuplex:
		return "Duplex"
	}

	return "Unset"
}
