// MFP - Miulti-Function Printers and scanners toolkit
// Abstract definition for printer and scanner interfaces
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Scan request

package abstract

import (
	"github.com/alexpevzner/scanbridge/generic"
	"github.com/alexpevzner/scanbridge/optional"
)

// ScannerRequest specified scan request parameters
type ScannerRequest struct {
	// General parameters
	//
	// All parameters are optional. Use zero value to to indicate
	// that parameter is missed.
	Input           Input           // Input source (ADF/Platen etc)
	ADFMode         ADFMode         // For InputADF: Duplex/Simplex
	ColorMode       ColorMode       // Color mode (mono/color etc)
	Depth           Depth           // Image depth (8-bit/16-bit etc)
	BinaryRendering BinaryRendering // For 1-bit B&W (halftone/threshold
	CCDChannel      CCDChannel      // CCD channel to use
	DocumentFormat  string          // Requested document format
	Region          Region          // Scan region
	Resolution      Resolution      // Scanner resolution
	Intent          Intent          // Scan intent hint

	// Image processing parameters.
	//
	// As zero value is the legal value of these parameters,
	// we have to use optional.Val[int] to distinguish between
	// missed parameter and 0.
	Brightness   optional.Val[int] // Brightness
	Contrast     optional.Val[int] // Contrast
	Gamma        optional.Val[int] // Gamma (y=x^(1/g)
	Highlight    optional.Val[int] // Image Highlight
	NoiseRemoval optional.Val[int] // Noise removal level
	Shadow       optional.Val[int] // The lower, the darger
	Sharpen      optional.Val[int] // Image sharpen
	Threshold    optional.Val[int] // ColorModeBinary+BinaryRenderingThreshold
	Compression  optional.Val[int] // Lower num, better image
}

// Validate checks request validity against the [ScannerCapabilities]
// and reports found error, if any.
func (req *ScannerRequest) Validate(scancaps *ScannerCapabilities) error {
	// Gather overall scanner parameters
	var inputs generic.Bitset[Input]
	var adfmodes generic.Bitset[ADFMode]
	var intents generic.Bitset[Intent]
	var colorModes generic.Bitset[ColorMode]
	var depths generic.Bitset[Depth]
	var binrend generic.Bitset[BinaryRendering]
	var ccdChannels generic.Bitset[CCDChannel]

	if scancaps.Platen != nil {
		inputs = inputs.Add(InputPlaten)
	}

	if scancaps.ADFSimplex != nil || scancaps.ADFDuplex != nil {
		inputs = inputs.Add(InputADF)
		if scancaps.ADFSimplex != nil {
			adfmodes = adfmodes.Add(ADFModeSimplex)
		}
		if scancaps.ADFDuplex != nil {
			adfmodes = adfmodes.Add(ADFModeDuplex)
		}
	}

	for _, inpcaps := range []*InputCapabilities{
		scancaps.Platen, scancaps.ADFSimplex, scancaps.ADFDuplex} {
		if inpcaps == nil {
			continue
		}

		intents = intents.Union(inpcaps.Intents)
		for _, prof := range inpcaps.Profiles {
			colorModes = colorModes.Union(prof.ColorModes)
			depths = depths.Union(prof.Depths)
			binrend = binrend.Union(prof.BinaryRenderings)
			ccdChannels = ccdChannels.Union(prof.CCDChannels)
		}
	}

	// Check Input and ADFMode
	switch {
	case req.Input == InputUnset:
	case req.Input < 0 || req.Input >= inputMax:
		return ErrParam{ErrInvalidParam, "Input", req.Input}
	case !inputs.Contains(req.Input):
		return ErrParam{ErrUnsupportedParam, "Input", req.Input}
	}

	switch {
	case req.Input != InputADF:
	case req.ADFMode == ADFModeUnset:
	case req.ADFMode < 0 || req.ADFMode >= adfModeMax:
		return ErrParam{ErrInvalidParam, "ADFMode", req.ADFMode}
	case !adfmodes.Contains(req.ADFMode):
		return ErrParam{ErrUnsupportedParam, "ADFMode", req.ADFMode}
	}

	// Check ColorMode, Depth, BinaryRendering and Threshold
	switch {
	case req.ColorMode == ColorModeUnset:
	case req.ColorMode < 0 || req.ColorMode >= colorModeMax:
		return ErrParam{ErrInvalidParam, "ColorMode,", req.ColorMode}
	case !colorModes.Contains(req.ColorMode):
		return ErrParam{ErrUnsupportedParam,
			"ColorMode,", req.ColorMode}
	}

	switch req.ColorMode {
	case ColorModeBinary:
		switch {
		case req.BinaryRendering == BinaryRenderingUnset:
		case req.BinaryRendering < 0 || req.BinaryRendering >= binaryRenderingMax:
			return ErrParam{ErrInvalidParam,
				"BinaryRendering", req.BinaryRendering}
		case !binrend.Contains(req.BinaryRendering):
			return ErrParam{ErrUnsupportedParam,
				"BinaryRendering", req.BinaryRendering}
		}

		err := scancaps.ThresholdRange.validate(
			"Threshold", req.Threshold)
		if err != nil {
			return err
		}

	case ColorModeMono, ColorModeColor:
		switch {
		case req.Depth == DepthUnset:
		case req.Depth < 0 || req.Depth >= depthMax:
			return ErrParam{ErrInvalidParam, "Depth", req.Depth}
		case !depths.Contains(req.Depth):
			return ErrParam{ErrUnsupportedParam, "Depth", req.Depth}
		}
	}

	// Check Region against the width/height range of the selected
	// input source.
	if req.Region != (Region{}) {
		inpcaps := req.selectInput(scancaps)
		if inpcaps != nil {
			switch {
			case req.Region.Width < inpcaps.MinWidth ||
				req.Region.Width > inpcaps.MaxWidth:
				return ErrParam{ErrInvalidParam,
					"Region.Width", req.Region.Width}
			case req.Region.Height < inpcaps.MinHeight ||
				req.Region.Height > inpcaps.MaxHeight:
				return ErrParam{ErrInvalidParam,
					"Region.Height", req.Region.Height}
			}
		}
	}

	// Check Resolution against the capabilities of the selected
	// input source. When Input isn't specified, skip the check:
	// the actual source will be chosen later, closer to the device.
	if req.Resolution != (Resolution{}) {
		inpcaps := req.selectInput(scancaps)
		if inpcaps != nil && !inpcaps.SupportsResolution(req.Resolution) {
			return ErrParam{ErrUnsupportedParam,
				"Resolution", req.Resolution}
		}
	}

	// Check CCDChannel
	switch {
	case req.CCDChannel == CCDChannelUnset:
	case req.CCDChannel < 0 || req.CCDChannel >= ccdChannelMax:
		return ErrParam{ErrInvalidParam, "CCDChannel", req.CCDChannel}
	case !ccdChannels.Contains(req.CCDChannel):
		return ErrParam{ErrUnsupportedParam,
			"CCDChannel", req.CCDChannel}
	}

	// Check image processing parameters.
	err := scancaps.BrightnessRange.validate("Brightness", req.Brightness)
	if err == nil {
		err = scancaps.ContrastRange.validate("Contrast", req.Contrast)
	}
	if err == nil {
		err = scancaps.GammaRange.validate("Gamma", req.Gamma)
	}
	if err == nil {
		err = scancaps.HighlightRange.validate(
			"Highlight", req.Highlight)
	}
	if err == nil {
		err = scancaps.NoiseRemovalRange.validate(
			"NoiseRemoval", req.NoiseRemoval)
	}
	if err == nil {
		err = scancaps.ShadowRange.validate("Shadow", req.Shadow)
	}
	if err == nil {
		err = scancaps.SharpenRange.validate("Sharpen", req.Sharpen)
	}
	if err == nil {
		err = scancaps.CompressionRange.validate(
			"Compression", req.Compression)
	}

	if err != nil {
		return err
	}

	return nil
}

// selectInput returns the [InputCapabilities] matching req's Input
// and ADFMode, or nil if the source isn't specified or isn't
// supported by scancaps.
func (req *ScannerRequest) selectInput(scancaps *ScannerCapabilities) *InputCapabilities {
	switch req.Input {
	case InputPlaten:
		return scancaps.Platen
	case InputADF:
		switch req.ADFMode {
		case ADFModeDuplex:
			return scancaps.ADFDuplex
		default:
			if scancaps.ADFSimplex != nil {
				return scancaps.ADFSimplex
			}
			return scancaps.ADFDuplex
		}
	}
	return nil
}
