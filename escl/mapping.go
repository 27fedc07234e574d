// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Mapping between the wire eSCL enums and the protocol-neutral
// abstract.* enums

package escl

import "github.com/alexpevzner/scanbridge/abstract"

// wireColorMode maps [abstract.ColorMode] onto the wire [ColorMode].
// Depth is not taken into account: Binary maps to BlackAndWhite1,
// Mono to Grayscale8 and Color to RGB24.
func wireColorMode(cm abstract.ColorMode) ColorMode {
	switch cm {
	case abstract.ColorModeBinary:
		return BlackAndWhite1
	case abstract.ColorModeMono:
		return Grayscale8
	case abstract.ColorModeColor:
		return RGB24
	}
	return UnknownColorMode
}

// abstractColorMode maps the wire [ColorMode] back onto its
// [abstract.ColorMode]/[abstract.Depth] pair.
func abstractColorMode(cm ColorMode) (abstract.ColorMode, abstract.Depth) {
	switch cm {
	case BlackAndWhite1:
		return abstract.ColorModeBinary, abstract.DepthUnset
	case Grayscale8:
		return abstract.ColorModeMono, abstract.Depth8
	case Grayscale16:
		return abstract.ColorModeMono, abstract.Depth16
	case RGB24:
		return abstract.ColorModeColor, abstract.Depth8
	case RGB48:
		return abstract.ColorModeColor, abstract.Depth16
	}
	return abstract.ColorModeUnset, abstract.DepthUnset
}

// wireCCDChannel maps [abstract.CCDChannel] onto the wire [CcdChannel].
func wireCCDChannel(ccd abstract.CCDChannel) CcdChannel {
	switch ccd {
	case abstract.CCDChannelRed:
		return Red
	case abstract.CCDChannelGreen:
		return Green
	case abstract.CCDChannelBlue:
		return Blue
	case abstract.CCDChannelNTSC:
		return NTSC
	case abstract.CCDChannelGray:
		return GrayCcd
	case abstract.CCDChannelGrayEmulated:
		return GrayCcdEmulated
	}
	return UnknownCcdChannel
}

// abstractCCDChannel maps the wire [CcdChannel] back onto its
// [abstract.CCDChannel].
func abstractCCDChannel(ccd CcdChannel) abstract.CCDChannel {
	switch ccd {
	case Red:
		return abstract.CCDChannelRed
	case Green:
		return abstract.CCDChannelGreen
	case Blue:
		return abstract.CCDChannelBlue
	case NTSC:
		return abstract.CCDChannelNTSC
	case GrayCcd:
		return abstract.CCDChannelGray
	case GrayCcdEmulated:
		return abstract.CCDChannelGrayEmulated
	}
	return abstract.CCDChannelUnset
}

// wireBinaryRendering maps [abstract.BinaryRendering] onto the wire
// [BinaryRendering].
func wireBinaryRendering(br abstract.BinaryRendering) BinaryRendering {
	switch br {
	case abstract.BinaryRenderingHalftone:
		return Halftone
	case abstract.BinaryRenderingThreshold:
		return Threshold
	}
	return UnknownBinaryRendering
}

// abstractBinaryRendering maps the wire [BinaryRendering] back onto
// its [abstract.BinaryRendering].
func abstractBinaryRendering(br BinaryRendering) abstract.BinaryRendering {
	switch br {
	case Halftone:
		return abstract.BinaryRenderingHalftone
	case Threshold:
		return abstract.BinaryRenderingThreshold
	}
	return abstract.BinaryRenderingUnset
}
