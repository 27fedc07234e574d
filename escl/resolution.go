// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Scan resolution

package escl

import (
	"strconv"

	"github.com/alexpevzner/scanbridge/xmldoc"
)

// Resolution represents the scan resolution, in DPI.
type Resolution struct {
	XResolution int
	YResolution int
}

// decodeResolution decodes [Resolution] from the XML tree.
func decodeResolution(root xmldoc.Element) (res Resolution, err error) {
	defer func() { err = xmldoc.XMLErrWrap(root, err) }()

	x := xmldoc.Lookup{Name: NsScan + ":XResolution", Required: true}
	y := xmldoc.Lookup{Name: NsScan + ":YResolution", Required: true}

	missed := root.Lookup(&x, &y)
	if missed != nil {
		err = xmldoc.XMLErrMissed(missed.Name)
		return
	}

	res.XResolution, err = decodeNonNegativeInt(x.Elem)
	if err == nil {
		res.YResolution, err = decodeNonNegativeInt(y.Elem)
	}

	return
}

// toXML generates XML tree for the [Resolution].
func (res Resolution) toXML(name string) xmldoc.Element {
	return xmldoc.Element{
		Name: name,
		Children: []xmldoc.Element{
			{Name: NsScan + ":XResolution", Text: strconv.Itoa(res.XResolution)},
			{Name: NsScan + ":YResolution", Text: strconv.Itoa(res.YResolution)},
		},
	}
}

// SupportedResolutions describes the resolutions supported by a
// particular input source: either a discrete list, or a continuous
// range for each axis.
type SupportedResolutions struct {
	DiscreteResolutions []Resolution // Discrete (X,Y) pairs
	XResolutionRange    *Range       // Continuous X range, if supported
	YResolutionRange    *Range       // Continuous Y range, if supported
}

// decodeSupportedResolutions decodes [SupportedResolutions] from the
// XML tree.
func decodeSupportedResolutions(root xmldoc.Element) (
	sr SupportedResolutions, err error) {

	defer func() { err = xmldoc.XMLErrWrap(root, err) }()

	discrete, found := root.ChildByName(NsScan + ":DiscreteResolutions")
	if found {
		for _, elem := range discrete.Children {
			if elem.Name == NsScan+":DiscreteResolution" {
				var res Resolution
				res, err = decodeResolution(elem)
				if err != nil {
					return
				}
				sr.DiscreteResolutions = append(
					sr.DiscreteResolutions, res)
			}
		}
	}

	if rng, found := root.ChildByName(NsScan + ":ResolutionRange"); found {
		x, hasX := rng.ChildByName(NsScan + ":XResolutionRange")
		y, hasY := rng.ChildByName(NsScan + ":YResolutionRange")

		if hasX {
			var r Range
			r, err = decodeRange(x)
			if err != nil {
				return
			}
			sr.XResolutionRange = &r
		}

		if hasY {
			var r Range
			r, err = decodeRange(y)
			if err != nil {
				return
			}
			sr.YResolutionRange = &r
		}
	}

	return
}

// toXML generates XML tree for the [SupportedResolutions].
func (sr SupportedResolutions) toXML(name string) xmldoc.Element {
	elm := xmldoc.Element{Name: name}

	if sr.DiscreteResolutions != nil {
		discrete := xmldoc.Element{Name: NsScan + ":DiscreteResolutions"}
		for _, res := range sr.DiscreteResolutions {
			discrete.Children = append(discrete.Children,
				res.toXML(NsScan+":DiscreteResolution"))
		}
		elm.Children = append(elm.Children, discrete)
	}

	if sr.XResolutionRange != nil || sr.YResolutionRange != nil {
		rng := xmldoc.Element{Name: NsScan + ":ResolutionRange"}
		if sr.XResolutionRange != nil {
			rng.Children = append(rng.Children,
				sr.XResolutionRange.ToXML(NsScan+":XResolutionRange"))
		}
		if sr.YResolutionRange != nil {
			rng.Children = append(rng.Children,
				sr.YResolutionRange.ToXML(NsScan+":YResolutionRange"))
		}
		elm.Children = append(elm.Children, rng)
	}

	return elm
}
