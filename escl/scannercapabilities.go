// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Scanner capabilities
//
// eSCL Technical Specification, 8.

package escl

import (
	"strconv"

	"github.com/alexpevzner/scanbridge/abstract"
	"github.com/alexpevzner/scanbridge/xmldoc"
)

// InputSourceCaps describes capabilities specific to one of the
// scanner's input sources (Platen, ADF duplex, ADF simplex).
type InputSourceCaps struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
	SettingProfiles      []SettingProfile
}

// toXML generates XML tree for the [InputSourceCaps].
func (caps InputSourceCaps) toXML(name string) xmldoc.Element {
	elm := xmldoc.Element{
		Name: name,
		Children: []xmldoc.Element{
			{Name: NsScan + ":MinWidth", Text: strconv.Itoa(caps.MinWidth)},
			{Name: NsScan + ":MaxWidth", Text: strconv.Itoa(caps.MaxWidth)},
			{Name: NsScan + ":MinHeight", Text: strconv.Itoa(caps.MinHeight)},
			{Name: NsScan + ":MaxHeight", Text: strconv.Itoa(caps.MaxHeight)},
		},
	}

	if caps.SettingProfiles != nil {
		profiles := xmldoc.Element{Name: NsScan + ":SettingProfiles"}
		for _, prof := range caps.SettingProfiles {
			profiles.Children = append(profiles.Children,
				prof.toXML(NsScan+":SettingProfile"))
		}
		elm.Children = append(elm.Children, profiles)
	}

	return elm
}

// decodeInputSourceCaps decodes [InputSourceCaps] from the XML tree.
func decodeInputSourceCaps(root xmldoc.Element) (caps InputSourceCaps, err error) {
	defer func() { err = xmldoc.XMLErrWrap(root, err) }()

	minw := xmldoc.Lookup{Name: NsScan + ":MinWidth", Required: true}
	maxw := xmldoc.Lookup{Name: NsScan + ":MaxWidth", Required: true}
	minh := xmldoc.Lookup{Name: NsScan + ":MinHeight", Required: true}
	maxh := xmldoc.Lookup{Name: NsScan + ":MaxHeight", Required: true}

	missed := root.Lookup(&minw, &maxw, &minh, &maxh)
	if missed != nil {
		err = xmldoc.XMLErrMissed(missed.Name)
		return
	}

	caps.MinWidth, err = decodeNonNegativeInt(minw.Elem)
	if err == nil {
		caps.MaxWidth, err = decodeNonNegativeInt(maxw.Elem)
	}
	if err == nil {
		caps.MinHeight, err = decodeNonNegativeInt(minh.Elem)
	}
	if err == nil {
		caps.MaxHeight, err = decodeNonNegativeInt(maxh.Elem)
	}
	if err != nil {
		return
	}

	if profiles, found := root.ChildByName(NsScan + ":SettingProfiles"); found {
		for _, elem := range profiles.Children {
			if elem.Name != NsScan+":SettingProfile" {
				continue
			}
			var prof SettingProfile
			prof, err = decodeSettingProfile(elem)
			if err != nil {
				return
			}
			caps.SettingProfiles = append(caps.SettingProfiles, prof)
		}
	}

	return
}

// ScannerCapabilities is the wire representation of the scanner
// capabilities, returned by GET /{root}/ScannerCapabilities.
type ScannerCapabilities struct {
	Version    Version
	MakeAndModel string

	Platen     *InputSourceCaps
	ADFDuplex  *InputSourceCaps
	ADFSimplex *InputSourceCaps

	BrightnessRange   *Range
	ContrastRange     *Range
	GammaRange        *Range
	HighlightRange    *Range
	NoiseRemovalRange *Range
	ShadowRange       *Range
	SharpenRange      *Range
	ThresholdRange    *Range
	CompressionRange  *Range
}

// ToXML generates XML tree for the [ScannerCapabilities].
func (caps ScannerCapabilities) ToXML() xmldoc.Element {
	elm := xmldoc.Element{
		Name: NsScan + ":ScannerCapabilities",
		Children: []xmldoc.Element{
			caps.Version.toXML(NsPWG + ":Version"),
		},
	}

	if caps.MakeAndModel != "" {
		elm.Children = append(elm.Children, xmldoc.Element{
			Name: NsPWG + ":MakeAndModel",
			Text: caps.MakeAndModel,
		})
	}

	platens := xmldoc.Element{Name: NsScan + ":Platen"}
	if caps.Platen != nil {
		platens.Children = append(platens.Children,
			caps.Platen.toXML(NsScan+":PlatenInputCaps"))
		elm.Children = append(elm.Children, platens)
	}

	adf := xmldoc.Element{Name: NsScan + ":Adf"}
	hasADF := false
	if caps.ADFSimplex != nil {
		adf.Children = append(adf.Children,
			caps.ADFSimplex.toXML(NsScan+":AdfSimplexInputCaps"))
		hasADF = true
	}
	if caps.ADFDuplex != nil {
		adf.Children = append(adf.Children,
			caps.ADFDuplex.toXML(NsScan+":AdfDuplexInputCaps"))
		hasADF = true
	}
	if hasADF {
		elm.Children = append(elm.Children, adf)
	}

	settings := []struct {
		name string
		rng  *Range
	}{
		{"BrightnessSupport", caps.BrightnessRange},
		{"CompressionFactorSupport", caps.CompressionRange},
		{"ContrastSupport", caps.ContrastRange},
		{"GammaSupport", caps.GammaRange},
		{"HighlightSupport", caps.HighlightRange},
		{"NoiseRemovalSupport", caps.NoiseRemovalRange},
		{"ShadowSupport", caps.ShadowRange},
		{"SharpenSupport", caps.SharpenRange},
		{"ThresholdSupport", caps.ThresholdRange},
	}

	for _, s := range settings {
		if s.rng != nil {
			elm.Children = append(elm.Children,
				s.rng.ToXML(NsScan+":"+s.name))
		}
	}

	return elm
}

// DecodeScannerCapabilities decodes [ScannerCapabilities] from the
// XML tree, as received from GET /{root}/ScannerCapabilities.
func DecodeScannerCapabilities(root xmldoc.Element) (
	caps ScannerCapabilities, err error) {

	defer func() { err = xmldoc.XMLErrWrap(root, err) }()

	ver := xmldoc.Lookup{Name: NsPWG + ":Version", Required: true}
	mkmodel := xmldoc.Lookup{Name: NsPWG + ":MakeAndModel"}
	platen := xmldoc.Lookup{Name: NsScan + ":Platen"}
	adf := xmldoc.Lookup{Name: NsScan + ":Adf"}

	settings := map[string]**Range{
		NsScan + ":BrightnessSupport":        &caps.BrightnessRange,
		NsScan + ":CompressionFactorSupport":  &caps.CompressionRange,
		NsScan + ":ContrastSupport":           &caps.ContrastRange,
		NsScan + ":GammaSupport":              &caps.GammaRange,
		NsScan + ":HighlightSupport":          &caps.HighlightRange,
		NsScan + ":NoiseRemovalSupport":       &caps.NoiseRemovalRange,
		NsScan + ":ShadowSupport":             &caps.ShadowRange,
		NsScan + ":SharpenSupport":            &caps.SharpenRange,
		NsScan + ":ThresholdSupport":          &caps.ThresholdRange,
	}

	lookups := []*xmldoc.Lookup{&ver, &mkmodel, &platen, &adf}
	root.Lookup(lookups...)

	caps.Version, err = decodeVersion(ver.Elem)
	if err != nil {
		return
	}

	if mkmodel.Found {
		caps.MakeAndModel = mkmodel.Elem.Text
	}

	if platen.Found {
		if inp, found := platen.Elem.ChildByName(NsScan + ":PlatenInputCaps"); found {
			var ic InputSourceCaps
			ic, err = decodeInputSourceCaps(inp)
			if err != nil {
				return
			}
			caps.Platen = &ic
		}
	}

	if adf.Found {
		if inp, found := adf.Elem.ChildByName(NsScan + ":AdfSimplexInputCaps"); found {
			var ic InputSourceCaps
			ic, err = decodeInputSourceCaps(inp)
			if err != nil {
				return
			}
			caps.ADFSimplex = &ic
		}
		if inp, found := adf.Elem.ChildByName(NsScan + ":AdfDuplexInputCaps"); found {
			var ic InputSourceCaps
			ic, err = decodeInputSourceCaps(inp)
			if err != nil {
				return
			}
			caps.ADFDuplex = &ic
		}
	}

	for name, dst := range settings {
		if elem, found := root.ChildByName(name); found {
			var r Range
			r, err = decodeRange(elem)
			if err != nil {
				return
			}
			*dst = &r
		}
	}

	return
}

// ToAbstract converts the wire [ScannerCapabilities], as retrieved
// from a real device, into the protocol-neutral
// [abstract.ScannerCapabilities].
func (caps ScannerCapabilities) ToAbstract() *abstract.ScannerCapabilities {
	out := &abstract.ScannerCapabilities{
		Protocol:          "eSCL",
		BrightnessRange:   toAbstractRange(caps.BrightnessRange),
		ContrastRange:     toAbstractRange(caps.ContrastRange),
		GammaRange:        toAbstractRange(caps.GammaRange),
		HighlightRange:    toAbstractRange(caps.HighlightRange),
		NoiseRemovalRange: toAbstractRange(caps.NoiseRemovalRange),
		ShadowRange:       toAbstractRange(caps.ShadowRange),
		SharpenRange:      toAbstractRange(caps.SharpenRange),
		ThresholdRange:    toAbstractRange(caps.ThresholdRange),
		CompressionRange:  toAbstractRange(caps.CompressionRange),
	}

	out.Platen = toAbstractInputCaps(caps.Platen)
	out.ADFSimplex = toAbstractInputCaps(caps.ADFSimplex)
	out.ADFDuplex = toAbstractInputCaps(caps.ADFDuplex)

	return out
}

// toAbstractRange converts a wire *[Range] back into its
// [abstract.Range] form. A nil range means unsupported.
func toAbstractRange(r *Range) abstract.Range {
	if r == nil {
		return abstract.Range{}
	}
	return abstract.Range{Min: r.Min, Max: r.Max, Normal: r.Normal, Step: r.Step}
}

// toAbstractInputCaps converts a wire *[InputSourceCaps] into its
// [abstract.InputCapabilities] form, merging the resolution
// capabilities of all setting profiles into a single per-source set,
// since [abstract.InputCapabilities] doesn't distinguish resolutions
// by color mode.
func toAbstractInputCaps(caps *InputSourceCaps) *abstract.InputCapabilities {
	if caps == nil {
		return nil
	}

	out := &abstract.InputCapabilities{
		MinWidth:  caps.MinWidth,
		MaxWidth:  caps.MaxWidth,
		MinHeight: caps.MinHeight,
		MaxHeight: caps.MaxHeight,
	}

	seen := make(map[abstract.Resolution]bool)

	for _, prof := range caps.SettingProfiles {
		var aprof abstract.SettingProfile
		for _, cm := range allColorModes {
			if prof.ColorModes.Contains(cm) {
				am, depth := abstractColorMode(cm)
				aprof.ColorModes = aprof.ColorModes.Add(am)
				if depth != abstract.DepthUnset {
					aprof.Depths = aprof.Depths.Add(depth)
				}
			}
		}
		for _, ccd := range allCcdChannels {
			if prof.CcdChannels.Contains(ccd) {
				aprof.CCDChannels = aprof.CCDChannels.Add(
					abstractCCDChannel(ccd))
			}
		}
		for _, br := range allBinaryRenderings {
			if prof.BinaryRenderings.Contains(br) {
				aprof.BinaryRenderings = aprof.BinaryRenderings.Add(
					abstractBinaryRendering(br))
			}
		}
		out.Profiles = append(out.Profiles, aprof)

		for _, res := range prof.SupportedResolutions.DiscreteResolutions {
			ares := abstract.Resolution{
				X: res.XResolution, Y: res.YResolution,
			}
			if !seen[ares] {
				seen[ares] = true
				out.Resolutions = append(out.Resolutions, ares)
			}
		}

		if r := prof.SupportedResolutions.XResolutionRange; r != nil {
			widenRange(&out.ResolutionRangeX, *r)
		}
		if r := prof.SupportedResolutions.YResolutionRange; r != nil {
			widenRange(&out.ResolutionRangeY, *r)
		}
	}

	return out
}

// widenRange merges a wire [Range] into an abstract.Range accumulator,
// widening Min/Max to cover both.
func widenRange(acc *abstract.Range, r Range) {
	if acc.Min == 0 && acc.Max == 0 {
		*acc = abstract.Range{
			Min: r.Min, Max: r.Max, Normal: r.Normal, Step: r.Step,
		}
		return
	}
	if r.Min < acc.Min {
		acc.Min = r.Min
	}
	if r.Max > acc.Max {
		acc.Max = r.Max
	}
}

// FromAbstractScannerCapabilities converts [abstract.ScannerCapabilities]
// into the wire [ScannerCapabilities], for the given protocol version.
func FromAbstractScannerCapabilities(ver Version,
	caps *abstract.ScannerCapabilities) ScannerCapabilities {

	out := ScannerCapabilities{
		Version:           ver,
		BrightnessRange:   fromAbstractRange(caps.BrightnessRange),
		ContrastRange:     fromAbstractRange(caps.ContrastRange),
		GammaRange:        fromAbstractRange(caps.GammaRange),
		HighlightRange:    fromAbstractRange(caps.HighlightRange),
		NoiseRemovalRange: fromAbstractRange(caps.NoiseRemovalRange),
		ShadowRange:       fromAbstractRange(caps.ShadowRange),
		SharpenRange:      fromAbstractRange(caps.SharpenRange),
		ThresholdRange:    fromAbstractRange(caps.ThresholdRange),
		CompressionRange:  fromAbstractRange(caps.CompressionRange),
	}

	out.Platen = fromAbstractInputCaps(caps.Platen)
	out.ADFSimplex = fromAbstractInputCaps(caps.ADFSimplex)
	out.ADFDuplex = fromAbstractInputCaps(caps.ADFDuplex)

	return out
}

// fromAbstractRange converts an [abstract.Range] into its wire form.
// An unsupported (zero) range yields a nil pointer, so it's omitted
// from the generated XML.
func fromAbstractRange(r abstract.Range) *Range {
	if r.Min == 0 && r.Max == 0 {
		return nil
	}
	return &Range{Min: r.Min, Max: r.Max, Normal: r.Normal, Step: r.Step}
}

// fromAbstractInputCaps converts [abstract.InputCapabilities] into
// its wire form.
func fromAbstractInputCaps(caps *abstract.InputCapabilities) *InputSourceCaps {
	if caps == nil {
		return nil
	}

	out := &InputSourceCaps{
		MinWidth:  caps.MinWidth,
		MaxWidth:  caps.MaxWidth,
		MinHeight: caps.MinHeight,
		MaxHeight: caps.MaxHeight,
	}

	res := fromAbstractSupportedResolutions(caps)

	for _, prof := range caps.Profiles {
		out.SettingProfiles = append(out.SettingProfiles,
			fromAbstractSettingProfile(prof, res))
	}

	return out
}

// fromAbstractSupportedResolutions builds [SupportedResolutions] out
// of an [abstract.InputCapabilities]' resolution capability, which
// isn't split by color mode the way eSCL's SettingProfile is.
func fromAbstractSupportedResolutions(
	caps *abstract.InputCapabilities) SupportedResolutions {

	var sr SupportedResolutions

	for _, res := range caps.Resolutions {
		sr.DiscreteResolutions = append(sr.DiscreteResolutions,
			Resolution{XResolution: res.X, YResolution: res.Y})
	}

	if caps.ResolutionRangeX != (abstract.Range{}) {
		sr.XResolutionRange = &Range{
			Min: caps.ResolutionRangeX.Min, Max: caps.ResolutionRangeX.Max,
			Normal: caps.ResolutionRangeX.Normal, Step: caps.ResolutionRangeX.Step,
		}
	}
	if caps.ResolutionRangeY != (abstract.Range{}) {
		sr.YResolutionRange = &Range{
			Min: caps.ResolutionRangeY.Min, Max: caps.ResolutionRangeY.Max,
			Normal: caps.ResolutionRangeY.Normal, Step: caps.ResolutionRangeY.Step,
		}
	}

	return sr
}

// fromAbstractSettingProfile converts an [abstract.SettingProfile]
// into its wire form.
func fromAbstractSettingProfile(prof abstract.SettingProfile,
	res SupportedResolutions) SettingProfile {

	out := SettingProfile{SupportedResolutions: res}

	for _, cm := range []abstract.ColorMode{
		abstract.ColorModeBinary, abstract.ColorModeMono,
		abstract.ColorModeColor} {

		if prof.ColorModes.Contains(cm) {
			out.ColorModes.Bitset = out.ColorModes.Add(wireColorMode(cm))
		}
	}

	for _, ccd := range []abstract.CCDChannel{
		abstract.CCDChannelRed, abstract.CCDChannelGreen,
		abstract.CCDChannelBlue, abstract.CCDChannelNTSC,
		abstract.CCDChannelGray, abstract.CCDChannelGrayEmulated} {

		if prof.CCDChannels.Contains(ccd) {
			out.CcdChannels.Bitset = out.CcdChannels.Add(wireCCDChannel(ccd))
		}
	}

	for _, br := range []abstract.BinaryRendering{
		abstract.BinaryRenderingHalftone, abstract.BinaryRenderingThreshold} {

		if prof.BinaryRenderings.Contains(br) {
			out.BinaryRenderings.Bitset = out.BinaryRenderings.Add(
				wireBinaryRendering(br))
		}
	}

	return out
}
