// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Scan settings (scan request)
//
// eSCL Technical Specification, 6.

package escl

import (
	"strconv"

	"github.com/alexpevzner/scanbridge/abstract"
	"github.com/alexpevzner/scanbridge/optional"
	"github.com/alexpevzner/scanbridge/xmldoc"
)

// ScanSettings is the wire representation of a scan request, sent as
// the body of POST /{root}/ScanJobs.
type ScanSettings struct {
	Version        Version
	Intent         Intent
	InputSource    InputSource
	ColorMode      ColorMode
	CcdChannel     CcdChannel
	BinaryRendering BinaryRendering
	DocumentFormat string

	XOffset, YOffset int
	Width, Height    int

	XResolution, YResolution int
	Duplex                   bool

	Brightness   optional.Val[int]
	Contrast     optional.Val[int]
	Gamma        optional.Val[int]
	Highlight    optional.Val[int]
	NoiseRemoval optional.Val[int]
	Shadow       optional.Val[int]
	Sharpen      optional.Val[int]
	Threshold    optional.Val[int]
	Compression  optional.Val[int]
}

// DecodeScanSettings decodes [ScanSettings] from the XML tree.
func DecodeScanSettings(root xmldoc.Element) (ss ScanSettings, err error) {
	defer func() { err = xmldoc.XMLErrWrap(root, err) }()

	ver := xmldoc.Lookup{Name: NsPWG + ":Version", Required: true}
	intent := xmldoc.Lookup{Name: NsScan + ":Intent"}
	src := xmldoc.Lookup{Name: NsPWG + ":InputSource"}
	region := xmldoc.Lookup{Name: NsPWG + ":ScanRegions"}
	colorMode := xmldoc.Lookup{Name: NsScan + ":ColorMode"}
	ccd := xmldoc.Lookup{Name: NsScan + ":CcdChannel"}
	binrend := xmldoc.Lookup{Name: NsScan + ":BinaryRendering"}
	format := xmldoc.Lookup{Name: NsPWG + ":DocumentFormat"}
	xres := xmldoc.Lookup{Name: NsScan + ":XResolution"}
	yres := xmldoc.Lookup{Name: NsScan + ":YResolution"}
	duplex := xmldoc.Lookup{Name: NsScan + ":Duplex"}

	brightness := xmldoc.Lookup{Name: NsScan + ":Brightness"}
	contrast := xmldoc.Lookup{Name: NsScan + ":Contrast"}
	gamma := xmldoc.Lookup{Name: NsScan + ":Gamma"}
	highlight := xmldoc.Lookup{Name: NsScan + ":Highlight"}
	noise := xmldoc.Lookup{Name: NsScan + ":NoiseRemoval"}
	shadow := xmldoc.Lookup{Name: NsScan + ":Shadow"}
	sharpen := xmldoc.Lookup{Name: NsScan + ":Sharpen"}
	threshold := xmldoc.Lookup{Name: NsScan + ":Threshold"}
	compression := xmldoc.Lookup{Name: NsScan + ":CompressionFactor"}

	missed := root.Lookup(&ver, &intent, &src, &region, &colorMode,
		&ccd, &binrend, &format, &xres, &yres, &duplex,
		&brightness, &contrast, &gamma, &highlight, &noise,
		&shadow, &sharpen, &threshold, &compression)
	if missed != nil {
		err = xmldoc.XMLErrMissed(missed.Name)
		return
	}

	ss.Version, err = decodeVersion(ver.Elem)
	if err != nil {
		return
	}

	if intent.Found {
		ss.Intent, err = decodeIntent(intent.Elem)
		if err != nil {
			return
		}
	}

	if src.Found {
		ss.InputSource, err = decodeInputSource(src.Elem)
		if err != nil {
			return
		}
	}

	if region.Found {
		if rg, found := region.Elem.ChildByName(NsPWG + ":ScanRegion"); found {
			err = decodeScanRegion(rg, &ss)
			if err != nil {
				return
			}
		}
	}

	if colorMode.Found {
		ss.ColorMode, err = decodeColorMode(colorMode.Elem)
		if err != nil {
			return
		}
	}

	if ccd.Found {
		ss.CcdChannel, err = decodeCcdChannel(ccd.Elem)
		if err != nil {
			return
		}
	}

	if binrend.Found {
		ss.BinaryRendering, err = decodeBinaryRendering(binrend.Elem)
		if err != nil {
			return
		}
	}

	if format.Found {
		ss.DocumentFormat = format.Elem.Text
	}

	if xres.Found {
		ss.XResolution, err = decodeNonNegativeInt(xres.Elem)
		if err != nil {
			return
		}
	}

	if yres.Found {
		ss.YResolution, err = decodeNonNegativeInt(yres.Elem)
		if err != nil {
			return
		}
	}

	if duplex.Found {
		ss.Duplex = duplex.Elem.Text == "true" || duplex.Elem.Text == "1"
	}

	for _, p := range []struct {
		l   xmldoc.Lookup
		dst *optional.Val[int]
	}{
		{brightness, &ss.Brightness}, {contrast, &ss.Contrast},
		{gamma, &ss.Gamma}, {highlight, &ss.Highlight},
		{noise, &ss.NoiseRemoval}, {shadow, &ss.Shadow},
		{sharpen, &ss.Sharpen}, {threshold, &ss.Threshold},
		{compression, &ss.Compression},
	} {
		if p.l.Found {
			var v int
			v, err = decodeNonNegativeInt(p.l.Elem)
			if err != nil {
				return
			}
			*p.dst = optional.New(v)
		}
	}

	return
}

// decodeScanRegion decodes a single ScanRegion child element into
// ss's offset/size fields.
func decodeScanRegion(root xmldoc.Element, ss *ScanSettings) (err error) {
	defer func() { err = xmldoc.XMLErrWrap(root, err) }()

	x := xmldoc.Lookup{Name: NsPWG + ":XOffset", Required: true}
	y := xmldoc.Lookup{Name: NsPWG + ":YOffset", Required: true}
	w := xmldoc.Lookup{Name: NsPWG + ":Width", Required: true}
	h := xmldoc.Lookup{Name: NsPWG + ":Height", Required: true}

	missed := root.Lookup(&x, &y, &w, &h)
	if missed != nil {
		return xmldoc.XMLErrMissed(missed.Name)
	}

	ss.XOffset, err = decodeNonNegativeInt(x.Elem)
	if err == nil {
		ss.YOffset, err = decodeNonNegativeInt(y.Elem)
	}
	if err == nil {
		ss.Width, err = decodeNonNegativeInt(w.Elem)
	}
	if err == nil {
		ss.Height, err = decodeNonNegativeInt(h.Elem)
	}

	return
}

// ToXML generates XML tree for the [ScanSettings], as sent in the
// body of POST /{root}/ScanJobs.
func (ss ScanSettings) ToXML() xmldoc.Element {
	ver := ss.Version
	if ver == 0 {
		ver = DefaultVersion
	}

	elm := xmldoc.Element{
		Name: NsScan + ":ScanSettings",
		Children: []xmldoc.Element{
			ver.toXML(NsPWG + ":Version"),
		},
	}

	if ss.Intent != UnknownIntent {
		elm.Children = append(elm.Children, ss.Intent.toXML(NsScan+":Intent"))
	}

	if ss.InputSource != UnknownInputSource {
		elm.Children = append(elm.Children,
			ss.InputSource.toXML(NsPWG+":InputSource"))
	}

	if ss.Width != 0 || ss.Height != 0 {
		region := xmldoc.Element{
			Name: NsPWG + ":ScanRegions",
			Attrs: []xmldoc.Attr{
				{Name: "MustHonor", Value: "true"},
			},
			Children: []xmldoc.Element{
				{
					Name: NsPWG + ":ScanRegion",
					Children: []xmldoc.Element{
						{Name: NsPWG + ":XOffset",
							Text: strconv.Itoa(ss.XOffset)},
						{Name: NsPWG + ":YOffset",
							Text: strconv.Itoa(ss.YOffset)},
						{Name: NsPWG + ":Width",
							Text: strconv.Itoa(ss.Width)},
						{Name: NsPWG + ":Height",
							Text: strconv.Itoa(ss.Height)},
						{Name: NsPWG + ":ContentRegionUnits",
							Text: "escl:ThreeHundredthsOfInches"},
					},
				},
			},
		}
		elm.Children = append(elm.Children, region)
	}

	if ss.ColorMode != UnknownColorMode {
		elm.Children = append(elm.Children,
			ss.ColorMode.toXML(NsScan+":ColorMode"))
	}

	if ss.CcdChannel != UnknownCcdChannel {
		elm.Children = append(elm.Children,
			ss.CcdChannel.toXML(NsScan+":CcdChannel"))
	}

	if ss.BinaryRendering != UnknownBinaryRendering {
		elm.Children = append(elm.Children,
			ss.BinaryRendering.toXML(NsScan+":BinaryRendering"))
	}

	if ss.DocumentFormat != "" {
		elm.Children = append(elm.Children, xmldoc.Element{
			Name: NsPWG + ":DocumentFormat", Text: ss.DocumentFormat,
		})
	}

	if ss.XResolution != 0 || ss.YResolution != 0 {
		elm.Children = append(elm.Children,
			xmldoc.Element{Name: NsScan + ":XResolution", Text: strconv.Itoa(ss.XResolution)},
			xmldoc.Element{Name: NsScan + ":YResolution", Text: strconv.Itoa(ss.YResolution)},
		)
	}

	if ss.Duplex {
		elm.Children = append(elm.Children,
			xmldoc.Element{Name: NsScan + ":Duplex", Text: "true"})
	}

	for _, p := range []struct {
		name string
		val  optional.Val[int]
	}{
		{"Brightness", ss.Brightness}, {"Contrast", ss.Contrast},
		{"Gamma", ss.Gamma}, {"Highlight", ss.Highlight},
		{"NoiseRemoval", ss.NoiseRemoval}, {"Shadow", ss.Shadow},
		{"Sharpen", ss.Sharpen}, {"Threshold", ss.Threshold},
		{"CompressionFactor", ss.Compression},
	} {
		if v, ok := optional.Get(p.val); ok {
			elm.Children = append(elm.Children, xmldoc.Element{
				Name: NsScan + ":" + p.name, Text: strconv.Itoa(v),
			})
		}
	}

	return elm
}

// FromAbstract builds the wire [ScanSettings] to send to a real
// device, out of the protocol-neutral [abstract.ScannerRequest].
func FromAbstract(ver Version, req abstract.ScannerRequest) ScanSettings {
	ss := ScanSettings{
		Version:        ver,
		InputSource:    wireInputSource(req.Input),
		Intent:         wireIntent(req.Intent),
		DocumentFormat: req.DocumentFormat,

		XOffset: req.Region.XOffset,
		YOffset: req.Region.YOffset,
		Width:   req.Region.Width,
		Height:  req.Region.Height,

		XResolution: req.Resolution.X,
		YResolution: req.Resolution.Y,
		Duplex:      req.Input == abstract.InputADF && req.ADFMode == abstract.ADFModeDuplex,

		Brightness:   req.Brightness,
		Contrast:     req.Contrast,
		Gamma:        req.Gamma,
		Highlight:    req.Highlight,
		NoiseRemoval: req.NoiseRemoval,
		Shadow:       req.Shadow,
		Sharpen:      req.Sharpen,
		Threshold:    req.Threshold,
		Compression:  req.Compression,
	}

	if req.ColorMode == abstract.ColorModeBinary {
		ss.ColorMode = BlackAndWhite1
		ss.BinaryRendering = wireBinaryRendering(req.BinaryRendering)
	} else {
		ss.ColorMode = wireColorMode(req.ColorMode)
	}

	ss.CcdChannel = wireCCDChannel(req.CCDChannel)

	return ss
}

// ToAbstract converts [ScanSettings] into the protocol-neutral
// [abstract.ScannerRequest].
func (ss ScanSettings) ToAbstract() abstract.ScannerRequest {
	var req abstract.ScannerRequest

	req.Input = abstractInput(ss.InputSource)
	if ss.Duplex {
		req.ADFMode = abstract.ADFModeDuplex
	} else if req.Input == abstract.InputADF {
		req.ADFMode = abstract.ADFModeSimplex
	}

	req.ColorMode, req.Depth = abstractColorMode(ss.ColorMode)
	req.BinaryRendering = abstractBinaryRendering(ss.BinaryRendering)
	req.CCDChannel = abstractCCDChannel(ss.CcdChannel)
	req.DocumentFormat = ss.DocumentFormat
	req.Intent = abstractIntent(ss.Intent)

	req.Region = abstract.Region{
		XOffset: ss.XOffset,
		YOffset: ss.YOffset,
		Width:   ss.Width,
		Height:  ss.Height,
	}
	req.Resolution = abstract.Resolution{X: ss.XResolution, Y: ss.YResolution}

	req.Brightness = ss.Brightness
	req.Contrast = ss.Contrast
	req.Gamma = ss.Gamma
	req.Highlight = ss.Highlight
	req.NoiseRemoval = ss.NoiseRemoval
	req.Shadow = ss.Shadow
	req.Sharpen = ss.Sharpen
	req.Threshold = ss.Threshold
	req.Compression = ss.Compression

	return req
}
