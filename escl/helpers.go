// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Common decoding helpers

package escl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexpevzner/scanbridge/xmldoc"
)

// decodeEnum decodes an enum-like element's text using decode, which
// must return the zero ("Unknown"/"Unset") value on an unrecognized
// string. If prefix is given, a leading "prefix:" is stripped from
// the text before decoding (some eSCL enums are namespace-qualified).
func decodeEnum[T ~int](root xmldoc.Element, decode func(string) T,
	prefix ...string) (v T, err error) {

	s := root.Text
	if len(prefix) > 0 {
		if cut, ok := strings.CutPrefix(s, prefix[0]+":"); ok {
			s = cut
		}
	}

	v = decode(s)
	if v == 0 {
		err = fmt.Errorf("%q: invalid value", s)
	}

	return
}

// decodeNonNegativeInt decodes a non-negative integer from the
// element's text.
func decodeNonNegativeInt(root xmldoc.Element) (int, error) {
	v, err := strconv.Atoi(root.Text)
	if err != nil {
		return 0, fmt.Errorf("%q: invalid integer", root.Text)
	}
	if v < 0 {
		return 0, fmt.Errorf("%q: must not be negative", root.Text)
	}
	return v, nil
}
