// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// eSCL protocol version

package escl

import (
	"fmt"

	"github.com/alexpevzner/scanbridge/xmldoc"
)

// Version represents the eSCL protocol version, encoded as
// major*100+minor (so 2.0 is 200, 2.1 is 201).
type Version int

// Known versions.
const (
	Version2_0 Version = 200
	Version2_1 Version = 201

	// DefaultVersion is used when [AbstractServerOptions.Version]
	// is not set.
	DefaultVersion = Version2_0
)

// String returns the dotted version string (e.g. "2.0").
func (ver Version) String() string {
	return fmt.Sprintf("%d.%d", ver/100, ver%100)
}

// decodeVersion decodes [Version] from the XML tree.
func decodeVersion(root xmldoc.Element) (ver Version, err error) {
	var major, minor int
	n, scanErr := fmt.Sscanf(root.Text, "%d.%d", &major, &minor)
	if scanErr != nil || n != 2 {
		return 0, fmt.Errorf("%q: invalid version", root.Text)
	}
	return Version(major*100 + minor), nil
}

// toXML generates XML tree for the [Version].
func (ver Version) toXML(name string) xmldoc.Element {
	return xmldoc.Element{
		Name: name,
		Text: ver.String(),
	}
}
