// MFP - Miulti-Function Printers and scanners toolkit
// Abstract definition for printer and scanner interfaces
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Scan input source

package abstract

// Input specifies the scanner input source (platen/ADF).
type Input int

// Known input sources.
const (
	InputUnset Input = iota // Not specified
	InputPlaten
	InputADF

	inputMax // Must be the last
)

// String returns a string representation of the [Input].
func (input Input) String() string {
	switch input {
	case InputPlaten:
		return "Platen"
	case InputADF:
		return "ADF"
	}

	return "Unset"
}
