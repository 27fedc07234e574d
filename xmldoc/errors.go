// MFP    - Miulti-Function Printers and scanners toolkit
// xmldoc - XML mini library
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Decode errors, annotated with the element's path

package xmldoc

import (
	"fmt"
	"strings"
)

// XMLErrMissed returns an error reporting that a required element
// was not found.
func XMLErrMissed(name string) error {
	return fmt.Errorf("%s: missed", name)
}

// XMLErrWrap prepends root's location (its Path if known, its Name
// otherwise) to err, unless err is already path-prefixed by a nested
// XMLErrWrap call closer to the actual failure.
func XMLErrWrap(root Element, err error) error {
	if err == nil {
		return nil
	}

	s := err.Error()
	if strings.HasPrefix(s, "/") {
		return err
	}

	loc := root.Path
	if loc == "" {
		loc = "/" + root.Name
	}

	return fmt.Errorf("%s/%s", loc, s)
}
