// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Setting profile

package escl

import "github.com/alexpevzner/scanbridge/xmldoc"

// SettingProfile defines a valid combination of scanning parameters.
//
// eSCL Technical Specification, 8.1.2.
type SettingProfile struct {
	ColorModes           ColorModes           // Supported color modes
	DocumentFormats      []string             // MIME types of supported formats
	DocumentFormatsExt   []string             // eSCL 2.1+
	SupportedResolutions SupportedResolutions // Supported resolutions
	ColorSpaces          ColorSpaces          // Supported color spaces
	CcdChannels          CcdChannels          // Supported CCD channels
	BinaryRenderings     BinaryRenderings     // Supported bin renderings
}

// allColorModes lists every [ColorMode] that may appear in a
// [ColorModes] bitset, in wire order.
var allColorModes = []ColorMode{
	BlackAndWhite1, Grayscale8, Grayscale16, RGB24, RGB48,
}

// allCcdChannels lists every [CcdChannel] that may appear in a
// [CcdChannels] bitset, in wire order.
var allCcdChannels = []CcdChannel{
	Red, Green, Blue, NTSC, GrayCcd, GrayCcdEmulated,
}

// allBinaryRenderings lists every [BinaryRendering] that may appear
// in a [BinaryRenderings] bitset, in wire order.
var allBinaryRenderings = []BinaryRendering{Halftone, Threshold}

// allColorSpaces lists every [ColorSpace] that may appear in a
// [ColorSpaces] bitset, in wire order.
var allColorSpaces = []ColorSpace{SRGB}

// decodeSettingProfile decodes [SettingProfile] from the XML tree.
func decodeSettingProfile(root xmldoc.Element) (prof SettingProfile, err error) {
	defer func() { err = xmldoc.XMLErrWrap(root, err) }()

	if cms, found := root.ChildByName(NsScan + ":ColorModes"); found {
		for _, elem := range cms.Children {
			if elem.Name != NsScan+":ColorMode" {
				continue
			}
			var cm ColorMode
			cm, err = decodeColorMode(elem)
			if err != nil {
				return
			}
			prof.ColorModes.Bitset = prof.ColorModes.Add(cm)
		}
	}

	if formats, found := root.ChildByName(NsPWG + ":DocumentFormats"); found {
		for _, elem := range formats.Children {
			if elem.Name == NsPWG+":DocumentFormat" {
				prof.DocumentFormats = append(
					prof.DocumentFormats, elem.Text)
			}
		}
	}

	for _, elem := range root.Children {
		if elem.Name == NsScan+":DocumentFormatExt" {
			prof.DocumentFormatsExt = append(
				prof.DocumentFormatsExt, elem.Text)
		}
	}

	if res, found := root.ChildByName(NsScan + ":SupportedResolutions"); found {
		prof.SupportedResolutions, err = decodeSupportedResolutions(res)
		if err != nil {
			return
		}
	}

	if css, found := root.ChildByName(NsScan + ":ColorSpaces"); found {
		for _, elem := range css.Children {
			if elem.Name != NsScan+":ColorSpace" {
				continue
			}
			var cs ColorSpace
			cs, err = decodeColorSpace(elem)
			if err != nil {
				return
			}
			prof.ColorSpaces.Bitset = prof.ColorSpaces.Add(cs)
		}
	}

	if ccds, found := root.ChildByName(NsScan + ":CcdChannels"); found {
		for _, elem := range ccds.Children {
			if elem.Name != NsScan+":CcdChannel" {
				continue
			}
			var ccd CcdChannel
			ccd, err = decodeCcdChannel(elem)
			if err != nil {
				return
			}
			prof.CcdChannels.Bitset = prof.CcdChannels.Add(ccd)
		}
	}

	if brs, found := root.ChildByName(NsScan + ":BinaryRenderings"); found {
		for _, elem := range brs.Children {
			if elem.Name != NsScan+":BinaryRendering" {
				continue
			}
			var br BinaryRendering
			br, err = decodeBinaryRendering(elem)
			if err != nil {
				return
			}
			prof.BinaryRenderings.Bitset = prof.BinaryRenderings.Add(br)
		}
	}

	return
}

// toXML generates XML tree for the [SettingProfile].
func (prof SettingProfile) toXML(name string) xmldoc.Element {
	elm := xmldoc.Element{Name: name}

	colorModes := xmldoc.Element{Name: NsScan + ":ColorModes"}
	for _, cm := range allColorModes {
		if prof.ColorModes.Contains(cm) {
			colorModes.Children = append(colorModes.Children,
				cm.toXML(NsScan+":ColorMode"))
		}
	}
	elm.Children = append(elm.Children, colorModes)

	if prof.DocumentFormats != nil {
		formats := xmldoc.Element{Name: NsPWG + ":DocumentFormats"}
		for _, f := range prof.DocumentFormats {
			formats.Children = append(formats.Children,
				xmldoc.Element{Name: NsPWG + ":DocumentFormat", Text: f})
		}
		elm.Children = append(elm.Children, formats)
	}

	for _, f := range prof.DocumentFormatsExt {
		elm.Children = append(elm.Children, xmldoc.Element{
			Name: NsScan + ":DocumentFormatExt", Text: f,
		})
	}

	elm.Children = append(elm.Children,
		prof.SupportedResolutions.toXML(NsScan+":SupportedResolutions"))

	colorSpaces := xmldoc.Element{Name: NsScan + ":ColorSpaces"}
	for _, cs := range allColorSpaces {
		if prof.ColorSpaces.Contains(cs) {
			colorSpaces.Children = append(colorSpaces.Children,
				cs.toXML(NsScan+":ColorSpace"))
		}
	}
	elm.Children = append(elm.Children, colorSpaces)

	ccds := xmldoc.Element{Name: NsScan + ":CcdChannels"}
	for _, ccd := range allCcdChannels {
		if prof.CcdChannels.Contains(ccd) {
			ccds.Children = append(ccds.Children,
				ccd.toXML(NsScan+":CcdChannel"))
		}
	}
	if len(ccds.Children) > 0 {
		elm.Children = append(elm.Children, ccds)
	}

	brs := xmldoc.Element{Name: NsScan + ":BinaryRenderings"}
	for _, br := range allBinaryRenderings {
		if prof.BinaryRenderings.Contains(br) {
			brs.Children = append(brs.Children,
				br.toXML(NsScan+":BinaryRendering"))
		}
	}
	if len(brs.Children) > 0 {
		elm.Children = append(elm.Children, brs)
	}

	return elm
}
