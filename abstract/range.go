// MFP - Miulti-Function Printers and scanners toolkit
// Abstract definition for printer and scanner interfaces
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Common type for range of some value

package abstract

import "github.com/alexpevzner/scanbridge/optional"

// Range specifies the range of some image processing parameter, like
// brightness, contrast and so on.
//
// The zero Range means the parameter is not supported at all.
type Range struct {
	Min    int               // Minimal supported value
	Max    int               // Maximal supported value
	Normal int               // Normal (default) value
	Step   optional.Val[int] // Step between the subsequent values
}

// validate checks that val, if set, falls within the range. name is
// used to build the returned [ErrParam].
func (r Range) validate(name string, val optional.Val[int]) error {
	v, ok := optional.Get(val)
	if !ok {
		return nil
	}

	if r.Min == 0 && r.Max == 0 {
		return ErrParam{ErrUnsupportedParam, name, v}
	}

	if v < r.Min || v > r.Max {
		return ErrParam{ErrInvalidParam, name, v}
	}

	return nil
}
