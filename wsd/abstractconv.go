// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Conversion between the wire types and the protocol-neutral
// abstract scanner model

package wsd

import "github.com/alexpevzner/scanbridge/abstract"

// micrometersPerInch converts between the scan region's wire units
// (1/1000 of an inch) and the micrometers [abstract.ScannerCapabilities]
// reports WSD dimensions in (see UnitMicrometer).
const micrometersPerInch = 25400

func milliInchFromMicrometers(um int) int {
	return um * 1000 / micrometersPerInch
}

func microMetersFromMilliInch(mi int) int {
	return mi * micrometersPerInch / 1000
}

// ToAbstract converts a [ScannerConfiguration] into the
// protocol-neutral [abstract.ScannerCapabilities]. Dimensions come off
// the wire in micrometers, so the result sets UnitMicrometer rather
// than eSCL's hundredths-of-a-millimeter convention.
func (cfg ScannerConfiguration) ToAbstract() *abstract.ScannerCapabilities {
	out := &abstract.ScannerCapabilities{
		Protocol:       "WSD",
		UnitMicrometer: true,
	}

	out.Platen = sourceCapsToAbstract(cfg.Platen)
	out.ADFSimplex = sourceCapsToAbstract(cfg.ADFFront)

	switch {
	case cfg.ADFBack != nil:
		out.ADFDuplex = sourceCapsToAbstract(cfg.ADFBack)
	case cfg.ADFSupportsDuplex && cfg.ADFFront != nil:
		// Devices that support duplex but describe only one ADF
		// glass report identical limits on both sides.
		back := *cfg.ADFFront
		out.ADFDuplex = sourceCapsToAbstract(&back)
	}

	return out
}

func sourceCapsToAbstract(caps *ScannerSourceCaps) *abstract.InputCapabilities {
	if caps == nil {
		return nil
	}

	return &abstract.InputCapabilities{
		MinWidth:  caps.MinWidth,
		MaxWidth:  caps.MaxWidth,
		MinHeight: caps.MinHeight,
		MaxHeight: caps.MaxHeight,
	}
}

// wireColorProcessing maps a scan request's color mode/depth onto the
// WSD ColorProcessing alias.
func wireColorProcessing(req abstract.ScannerRequest) string {
	switch req.ColorMode {
	case abstract.ColorModeBinary:
		return "BlackAndWhite1"
	case abstract.ColorModeMono:
		if req.Depth == abstract.Depth16 {
			return "Grayscale16"
		}
		return "Grayscale8"
	case abstract.ColorModeColor:
		if req.Depth == abstract.Depth16 {
			return "RGB48"
		}
		return "RGB24"
	}
	return "RGB24"
}

// BuildCreateScanJobRequest translates a protocol-neutral scan
// request into the wire [CreateScanJobRequest]. format is the wire
// format alias to request, already chosen among the ones the target
// input source advertises (see proto/wsd's format selection).
func BuildCreateScanJobRequest(req abstract.ScannerRequest, format string) CreateScanJobRequest {
	region := Region{
		XOffset: milliInchFromMicrometers(req.Region.XOffset),
		YOffset: milliInchFromMicrometers(req.Region.YOffset),
		Width:   milliInchFromMicrometers(req.Region.Width),
		Height:  milliInchFromMicrometers(req.Region.Height),
	}

	media := MediaSetting{
		ScanRegion:      region,
		ColorProcessing: wireColorProcessing(req),
		XResolution:     req.Resolution.X,
		YResolution:     req.Resolution.Y,
	}

	sides := MediaSides{MediaFront: &media}
	if req.Input == abstract.InputADF && req.ADFMode == abstract.ADFModeDuplex {
		back := media
		sides.MediaBack = &back
	}

	input := req.Input.String()
	if req.Input == abstract.InputUnset {
		input = "Platen"
	}

	// A finite page count makes sense only on the platen; the ADF
	// is told to keep transferring until it runs out of paper.
	imagesToTransfer := 1
	if req.Input == abstract.InputADF {
		imagesToTransfer = 0
	}

	return CreateScanJobRequest{
		Ticket: ScanTicket{
			DocumentParameters: DocumentParameters{
				Format:           format,
				ImagesToTransfer: imagesToTransfer,
				InputSource:      input,
				InputWidth:       region.Width,
				InputHeight:      region.Height,
				MediaSides:       sides,
			},
		},
	}
}
