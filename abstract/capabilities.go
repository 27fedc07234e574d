// MFP - Miulti-Function Printers and scanners toolkit
// Abstract definition for printer and scanner interfaces
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Scanner capabilities

package abstract

import (
	"github.com/alexpevzner/scanbridge/generic"
	"github.com/alexpevzner/scanbridge/optional"
)

// SettingProfile defines a valid combination of color mode, depth,
// binary rendering and CCD channel, as reported for one of the
// scanner's input sources.
type SettingProfile struct {
	ColorModes       generic.Bitset[ColorMode]       // Supported color modes
	Depths           generic.Bitset[Depth]           // Supported depths
	BinaryRenderings generic.Bitset[BinaryRendering] // Supported binary renderings
	CCDChannels      generic.Bitset[CCDChannel]      // Supported CCD channels
}

// InputCapabilities describes the scanner capabilities specific to
// one of its input sources (platen, ADF simplex, ADF duplex).
type InputCapabilities struct {
	MinWidth, MaxWidth   int                    // Image width range, mm/100
	MinHeight, MaxHeight int                     // Image height range, mm/100
	Intents              generic.Bitset[Intent]  // Supported intents
	Profiles             []SettingProfile        // Supported setting profiles

	// Supported resolutions, in DPI. Either Resolutions is a
	// non-empty sorted, deduplicated list of discrete (X,Y) pairs,
	// or ResolutionRangeX/ResolutionRangeY describe a continuous
	// range along each axis. At least one representation must be
	// non-empty for a valid [InputCapabilities].
	Resolutions      []Resolution
	ResolutionRangeX Range
	ResolutionRangeY Range
}

// SupportsResolution reports whether res is among the resolutions
// this input source supports, per the discrete list or range.
func (caps *InputCapabilities) SupportsResolution(res Resolution) bool {
	for _, r := range caps.Resolutions {
		if r == res {
			return true
		}
	}

	if caps.ResolutionRangeX != (Range{}) || caps.ResolutionRangeY != (Range{}) {
		return caps.ResolutionRangeX.validate("Resolution.X", optional.New(res.X)) == nil &&
			caps.ResolutionRangeY.validate("Resolution.Y", optional.New(res.Y)) == nil
	}

	return false
}

// ScannerCapabilities describes the scanner capabilities, regardless
// of the protocol (eSCL or WSD) used to retrieve them.
type ScannerCapabilities struct {
	Protocol       string // "eSCL" or "WSD"
	UnitMicrometer bool   // Units are micrometers, not mm/100

	// Per-input-source capabilities. nil means the source isn't
	// supported by the scanner.
	Platen     *InputCapabilities
	ADFSimplex *InputCapabilities
	ADFDuplex  *InputCapabilities

	// Image processing parameter ranges. The zero [Range] means
	// the corresponding parameter is not supported.
	BrightnessRange   Range
	ContrastRange     Range
	GammaRange        Range
	HighlightRange    Range
	NoiseRemovalRange Range
	ShadowRange       Range
	SharpenRange      Range
	ThresholdRange    Range
	CompressionRange  Range
}
