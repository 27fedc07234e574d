// MFP - Miulti-Function Printers and scanners toolkit
// WSD core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Scan service operations: GetScannerElements, CreateScanJob,
// RetrieveImage, CancelJob, and the ScannerStatus/Fault types used to
// check job progress.

package wsd

import (
	"bytes"
	"strconv"

	"github.com/alexpevzner/scanbridge/xmldoc"
)

// ScannerSourceCaps describes the capabilities of one scan source
// (Platen, ADFFront, ADFBack), as reported under
// scan:ScannerConfiguration.
type ScannerSourceCaps struct {
	MinWidth, MaxWidth   int      // mm/1000, per the WSD wire units
	MinHeight, MaxHeight int
	FormatValues         []string // Supported format aliases, wire order
}

// decodeScannerSourceCaps decodes [ScannerSourceCaps] from the XML tree.
func decodeScannerSourceCaps(root xmldoc.Element) (
	caps ScannerSourceCaps, err error) {

	defer func() { err = xmlErrWrap(root, err) }()

	size, found := root.ChildByName(NsScan + ":FormatSize")
	if !found {
		size = root
	}

	minw := xmldoc.Lookup{Name: NsScan + ":MinWidth"}
	maxw := xmldoc.Lookup{Name: NsScan + ":MaxWidth"}
	minh := xmldoc.Lookup{Name: NsScan + ":MinHeight"}
	maxh := xmldoc.Lookup{Name: NsScan + ":MaxHeight"}
	size.Lookup(&minw, &maxw, &minh, &maxh)

	if minw.Found {
		caps.MinWidth, err = decodeWsdInt(minw.Elem)
	}
	if err == nil && maxw.Found {
		caps.MaxWidth, err = decodeWsdInt(maxw.Elem)
	}
	if err == nil && minh.Found {
		caps.MinHeight, err = decodeWsdInt(minh.Elem)
	}
	if err == nil && maxh.Found {
		caps.MaxHeight, err = decodeWsdInt(maxh.Elem)
	}
	if err != nil {
		return
	}

	for _, elem := range root.Children {
		if elem.Name == NsScan+":FormatValue" {
			caps.FormatValues = append(caps.FormatValues, elem.Text)
		}
	}

	return
}

// decodeWsdInt decodes a non-negative integer from the element's text.
func decodeWsdInt(root xmldoc.Element) (int, error) {
	v, err := strconv.Atoi(root.Text)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// ScannerConfiguration is the response body of GetScannerElements,
// carrying the device's platen/ADF capabilities.
//
// ADFFront fills the simplex slot; when the device advertises
// ADFSupportsDuplex without a separate ADFBack, callers should clone
// ADFFront into the duplex slot.
type ScannerConfiguration struct {
	Platen            *ScannerSourceCaps
	ADFFront          *ScannerSourceCaps
	ADFBack           *ScannerSourceCaps
	ADFSupportsDuplex bool
}

// DecodeScannerConfiguration decodes [ScannerConfiguration] from the
// body of a GetScannerElementsResponse.
func DecodeScannerConfiguration(root xmldoc.Element) (
	cfg ScannerConfiguration, err error) {

	defer func() { err = xmlErrWrap(root, err) }()

	elements, found := root.ChildByName(NsScan + ":ScannerElements")
	if found {
		root = elements
	}

	config, found := root.ChildByName(NsScan + ":ScannerConfiguration")
	if found {
		root = config
	}

	if platen, found := root.ChildByName(NsScan + ":Platen"); found {
		var caps ScannerSourceCaps
		caps, err = decodeScannerSourceCaps(platen)
		if err != nil {
			return
		}
		cfg.Platen = &caps
	}

	if adf, found := root.ChildByName(NsScan + ":ADF"); found {
		if front, found := adf.ChildByName(NsScan + ":ADFFront"); found {
			var caps ScannerSourceCaps
			caps, err = decodeScannerSourceCaps(front)
			if err != nil {
				return
			}
			cfg.ADFFront = &caps
		}

		if back, found := adf.ChildByName(NsScan + ":ADFBack"); found {
			var caps ScannerSourceCaps
			caps, err = decodeScannerSourceCaps(back)
			if err != nil {
				return
			}
			cfg.ADFBack = &caps
		}

		if dup, found := adf.ChildByName(NsScan + ":ADFSupportsDuplex"); found {
			cfg.ADFSupportsDuplex = dup.Text == "true" || dup.Text == "1"
		}
	}

	return
}

// ToXML generates the XML tree for [ScannerConfiguration]. Only used
// when emulating a WSD device; real clients only decode it.
func (cfg ScannerConfiguration) ToXML() xmldoc.Element {
	elm := xmldoc.Element{Name: NsScan + ":GetScannerElementsResponse"}
	config := xmldoc.Element{Name: NsScan + ":ScannerConfiguration"}

	srcXML := func(name string, caps *ScannerSourceCaps) xmldoc.Element {
		out := xmldoc.Element{
			Name: name,
			Children: []xmldoc.Element{
				{Name: NsScan + ":MinWidth", Text: strconv.Itoa(caps.MinWidth)},
				{Name: NsScan + ":MaxWidth", Text: strconv.Itoa(caps.MaxWidth)},
				{Name: NsScan + ":MinHeight", Text: strconv.Itoa(caps.MinHeight)},
				{Name: NsScan + ":MaxHeight", Text: strconv.Itoa(caps.MaxHeight)},
			},
		}
		for _, f := range caps.FormatValues {
			out.Children = append(out.Children,
				xmldoc.Element{Name: NsScan + ":FormatValue", Text: f})
		}
		return out
	}

	if cfg.Platen != nil {
		config.Children = append(config.Children,
			srcXML(NsScan+":Platen", cfg.Platen))
	}

	if cfg.ADFFront != nil || cfg.ADFBack != nil {
		adf := xmldoc.Element{Name: NsScan + ":ADF"}
		if cfg.ADFFront != nil {
			adf.Children = append(adf.Children,
				srcXML(NsScan+":ADFFront", cfg.ADFFront))
		}
		if cfg.ADFBack != nil {
			adf.Children = append(adf.Children,
				srcXML(NsScan+":ADFBack", cfg.ADFBack))
		}
		adf.Children = append(adf.Children, xmldoc.Element{
			Name: NsScan + ":ADFSupportsDuplex",
			Text: strconv.FormatBool(cfg.ADFSupportsDuplex),
		})
		config.Children = append(config.Children, adf)
	}

	elm.Children = append(elm.Children, config)
	return elm
}

// GetScannerElementsRequest is the request body requesting the
// device's ScannerConfiguration.
type GetScannerElementsRequest struct{}

// ToXML generates the XML tree for the request.
func (GetScannerElementsRequest) ToXML() xmldoc.Element {
	return xmldoc.Element{
		Name: NsScan + ":GetScannerElementsRequest",
		Children: []xmldoc.Element{
			{
				Name: NsScan + ":RequestedElements",
				Children: []xmldoc.Element{
					{Name: NsScan + ":Name", Text: NsScan + ":ScannerConfiguration"},
				},
			},
		},
	}
}

// Region describes a scan region, offsets/size in the WSD units
// (1/1000 of inch).
type Region struct {
	XOffset, YOffset int
	Width, Height    int
}

// toXML generates XML tree for [Region] under the given name.
func (r Region) toXML(name string) xmldoc.Element {
	return xmldoc.Element{
		Name: name,
		Children: []xmldoc.Element{
			{Name: NsScan + ":ScanRegionXOffset", Text: strconv.Itoa(r.XOffset)},
			{Name: NsScan + ":ScanRegionYOffset", Text: strconv.Itoa(r.YOffset)},
			{Name: NsScan + ":ScanRegionWidth", Text: strconv.Itoa(r.Width)},
			{Name: NsScan + ":ScanRegionHeight", Text: strconv.Itoa(r.Height)},
		},
	}
}

// MediaSetting describes per-side scan parameters: the region,
// the color processing mode and the resolution.
type MediaSetting struct {
	ScanRegion      Region
	ColorProcessing string // "BlackAndWhite1", "Grayscale8", "RGB24", ...
	XResolution     int
	YResolution     int
}

// toXML generates XML tree for [MediaSetting] under the given name.
func (m MediaSetting) toXML(name string) xmldoc.Element {
	return xmldoc.Element{
		Name: name,
		Children: []xmldoc.Element{
			m.ScanRegion.toXML(NsScan + ":ScanRegion"),
			{Name: NsScan + ":ColorProcessing", Text: m.ColorProcessing},
			{
				Name: NsScan + ":Resolution",
				Children: []xmldoc.Element{
					{Name: NsScan + ":Width", Text: strconv.Itoa(m.XResolution)},
					{Name: NsScan + ":Height", Text: strconv.Itoa(m.YResolution)},
				},
			},
		},
	}
}

// MediaSides carries the Front (and, for duplex, Back) media settings.
type MediaSides struct {
	MediaFront *MediaSetting
	MediaBack  *MediaSetting
}

// toXML generates XML tree for [MediaSides].
func (ms MediaSides) toXML() xmldoc.Element {
	elm := xmldoc.Element{Name: NsScan + ":MediaSides"}
	if ms.MediaFront != nil {
		elm.Children = append(elm.Children,
			ms.MediaFront.toXML(NsScan+":MediaFront"))
	}
	if ms.MediaBack != nil {
		elm.Children = append(elm.Children,
			ms.MediaBack.toXML(NsScan+":MediaBack"))
	}
	return elm
}

// DocumentParameters describes the requested document: its format,
// how many images to transfer, the input source/size and per-side
// scan parameters.
type DocumentParameters struct {
	Format           string // Format alias, chosen among advertised ones
	ImagesToTransfer int    // 1 for platen, 0 for "until empty", quirks override
	InputSource      string // "Platen" or "ADF"
	InputWidth       int
	InputHeight      int
	MediaSides       MediaSides
}

// toXML generates XML tree for [DocumentParameters].
func (dp DocumentParameters) toXML() xmldoc.Element {
	return xmldoc.Element{
		Name: NsScan + ":DocumentParameters",
		Children: []xmldoc.Element{
			{Name: NsScan + ":Format", Text: dp.Format},
			{Name: NsScan + ":ImagesToTransfer",
				Text: strconv.Itoa(dp.ImagesToTransfer)},
			{
				Name: NsScan + ":InputSize",
				Children: []xmldoc.Element{
					{Name: NsScan + ":InputMediaSize",
						Children: []xmldoc.Element{
							{Name: NsScan + ":Width", Text: strconv.Itoa(dp.InputWidth)},
							{Name: NsScan + ":Height", Text: strconv.Itoa(dp.InputHeight)},
						},
					},
				},
			},
			{Name: NsScan + ":InputSource", Text: dp.InputSource},
			dp.MediaSides.toXML(),
		},
	}
}

// ScanTicket describes the scan job requested of the device.
type ScanTicket struct {
	DocumentParameters DocumentParameters
}

// CreateScanJobRequest is the request body of CreateScanJob.
type CreateScanJobRequest struct {
	Ticket ScanTicket
}

// ToXML generates the XML tree for the request.
func (req CreateScanJobRequest) ToXML() xmldoc.Element {
	return xmldoc.Element{
		Name: NsScan + ":CreateScanJobRequest",
		Children: []xmldoc.Element{
			{
				Name:     NsScan + ":ScanTicket",
				Children: []xmldoc.Element{req.Ticket.DocumentParameters.toXML()},
			},
		},
	}
}

// CreateScanJobResponse is the response body of CreateScanJob.
type CreateScanJobResponse struct {
	JobId    int
	JobToken string
}

// DecodeCreateScanJobResponse decodes [CreateScanJobResponse] from
// the XML tree.
func DecodeCreateScanJobResponse(root xmldoc.Element) (
	rsp CreateScanJobResponse, err error) {

	defer func() { err = xmlErrWrap(root, err) }()

	jobID := xmldoc.Lookup{Name: NsScan + ":JobId", Required: true}
	jobToken := xmldoc.Lookup{Name: NsScan + ":JobToken", Required: true}

	missed := root.Lookup(&jobID, &jobToken)
	if missed != nil {
		err = xmlErrMissed(missed.Name)
		return
	}

	rsp.JobId, err = decodeWsdInt(jobID.Elem)
	if err != nil {
		return
	}
	rsp.JobToken = jobToken.Elem.Text

	return
}

// ToXML generates the XML tree for the response.
func (rsp CreateScanJobResponse) ToXML() xmldoc.Element {
	return xmldoc.Element{
		Name: NsScan + ":CreateScanJobResponse",
		Children: []xmldoc.Element{
			{Name: NsScan + ":JobId", Text: strconv.Itoa(rsp.JobId)},
			{Name: NsScan + ":JobToken", Text: rsp.JobToken},
		},
	}
}

// RetrieveImageRequest is the request body of RetrieveImage.
type RetrieveImageRequest struct {
	JobId        int
	JobToken     string
	DocumentName string
}

// ToXML generates the XML tree for the request.
func (req RetrieveImageRequest) ToXML() xmldoc.Element {
	return xmldoc.Element{
		Name: NsScan + ":RetrieveImageRequest",
		Children: []xmldoc.Element{
			{Name: NsScan + ":JobId", Text: strconv.Itoa(req.JobId)},
			{Name: NsScan + ":JobToken", Text: req.JobToken},
			{
				Name: NsScan + ":DocumentDescription",
				Children: []xmldoc.Element{
					{Name: NsScan + ":DocumentName", Text: req.DocumentName},
				},
			},
		},
	}
}

// RetrieveImageResponse is the (largely empty) SOAP body accompanying
// the MIME part that carries the actual image; the image bytes
// themselves are delivered out of band, as the second MIME part of
// the multipart/related response.
type RetrieveImageResponse struct{}

// DecodeRetrieveImageResponse decodes [RetrieveImageResponse].
func DecodeRetrieveImageResponse(xmldoc.Element) (RetrieveImageResponse, error) {
	return RetrieveImageResponse{}, nil
}

// ToXML generates the XML tree for the response.
func (RetrieveImageResponse) ToXML() xmldoc.Element {
	return xmldoc.Element{Name: NsScan + ":RetrieveImageResponse"}
}

// CancelJobRequest is the request body of CancelJob.
type CancelJobRequest struct {
	JobId int
}

// ToXML generates the XML tree for the request.
func (req CancelJobRequest) ToXML() xmldoc.Element {
	return xmldoc.Element{
		Name: NsScan + ":CancelJobRequest",
		Children: []xmldoc.Element{
			{Name: NsScan + ":JobId", Text: strconv.Itoa(req.JobId)},
		},
	}
}

// CancelJobResponse is the (empty) response body of CancelJob.
type CancelJobResponse struct{}

// DecodeCancelJobResponse decodes [CancelJobResponse].
func DecodeCancelJobResponse(xmldoc.Element) (CancelJobResponse, error) {
	return CancelJobResponse{}, nil
}

// ToXML generates the XML tree for the response.
func (CancelJobResponse) ToXML() xmldoc.Element {
	return xmldoc.Element{Name: NsScan + ":CancelJobResponse"}
}

// WSDJobStatus reports the state of a single job, as carried in
// ScannerStatus's JobSummary list.
type WSDJobStatus struct {
	JobId    int
	JobState string
}

// ScannerStatus is the response body of GetScannerStatus, reporting
// the device's overall state and any active jobs.
type ScannerStatus struct {
	ScannerState        string
	ScannerStateReasons []string
	Jobs                []WSDJobStatus
}

// DecodeScannerStatus decodes [ScannerStatus] from the XML tree.
func DecodeScannerStatus(root xmldoc.Element) (st ScannerStatus, err error) {
	defer func() { err = xmlErrWrap(root, err) }()

	if status, found := root.ChildByName(NsScan + ":ScannerStatus"); found {
		root = status
	}

	state := xmldoc.Lookup{Name: NsScan + ":ScannerState", Required: true}
	missed := root.Lookup(&state)
	if missed != nil {
		err = xmlErrMissed(missed.Name)
		return
	}
	st.ScannerState = state.Elem.Text

	if reasons, found := root.ChildByName(NsScan + ":ScannerStateReasons"); found {
		for _, elem := range reasons.Children {
			if elem.Name == NsScan+":ScannerStateReason" {
				st.ScannerStateReasons = append(
					st.ScannerStateReasons, elem.Text)
			}
		}
	}

	if jobs, found := root.ChildByName(NsScan + ":Jobs"); found {
		for _, elem := range jobs.Children {
			if elem.Name != NsScan+":JobSummary" {
				continue
			}
			jobID := xmldoc.Lookup{Name: NsScan + ":JobId", Required: true}
			jobState := xmldoc.Lookup{Name: NsScan + ":JobState", Required: true}
			m := elem.Lookup(&jobID, &jobState)
			if m != nil {
				continue
			}
			var id int
			id, err = decodeWsdInt(jobID.Elem)
			if err != nil {
				return
			}
			st.Jobs = append(st.Jobs, WSDJobStatus{
				JobId: id, JobState: jobState.Elem.Text,
			})
		}
	}

	return
}

// ToXML generates the XML tree for [ScannerStatus].
func (st ScannerStatus) ToXML() xmldoc.Element {
	status := xmldoc.Element{
		Name: NsScan + ":ScannerStatus",
		Children: []xmldoc.Element{
			{Name: NsScan + ":ScannerState", Text: st.ScannerState},
		},
	}

	if len(st.ScannerStateReasons) > 0 {
		reasons := xmldoc.Element{Name: NsScan + ":ScannerStateReasons"}
		for _, r := range st.ScannerStateReasons {
			reasons.Children = append(reasons.Children,
				xmldoc.Element{Name: NsScan + ":ScannerStateReason", Text: r})
		}
		status.Children = append(status.Children, reasons)
	}

	if len(st.Jobs) > 0 {
		jobs := xmldoc.Element{Name: NsScan + ":Jobs"}
		for _, j := range st.Jobs {
			jobs.Children = append(jobs.Children, xmldoc.Element{
				Name: NsScan + ":JobSummary",
				Children: []xmldoc.Element{
					{Name: NsScan + ":JobId", Text: strconv.Itoa(j.JobId)},
					{Name: NsScan + ":JobState", Text: j.JobState},
				},
			})
		}
		status.Children = append(status.Children, jobs)
	}

	return xmldoc.Element{
		Name:     NsScan + ":GetScannerStatusResponse",
		Children: []xmldoc.Element{status},
	}
}

// Fault represents a SOAP 1.2 fault, used by WSD devices to report
// job and protocol errors, even in an HTTP-200 response.
type Fault struct {
	Subcode string // e.g. "scan:ClientErrorNoImagesAvailable"
	Reason  string
}

// DecodeFault decodes [Fault] from a soap:Fault element.
func DecodeFault(root xmldoc.Element) (f Fault, err error) {
	defer func() { err = xmlErrWrap(root, err) }()

	if code, found := root.ChildByName(NsSOAP + ":Code"); found {
		if sub, found := code.ChildByName(NsSOAP + ":Subcode"); found {
			if val, found := sub.ChildByName(NsSOAP + ":Value"); found {
				f.Subcode = val.Text
			}
		}
	}

	if reason, found := root.ChildByName(NsSOAP + ":Reason"); found {
		if text, found := reason.ChildByName(NsSOAP + ":Text"); found {
			f.Reason = text.Text
		}
	}

	return
}

// ToXML generates the XML tree for the fault.
func (f Fault) ToXML() xmldoc.Element {
	return xmldoc.Element{
		Name: NsSOAP + ":Fault",
		Children: []xmldoc.Element{
			{
				Name: NsSOAP + ":Code",
				Children: []xmldoc.Element{
					{
						Name: NsSOAP + ":Subcode",
						Children: []xmldoc.Element{
							{Name: NsSOAP + ":Value", Text: f.Subcode},
						},
					},
				},
			},
			{
				Name: NsSOAP + ":Reason",
				Children: []xmldoc.Element{
					{Name: NsSOAP + ":Text", Text: f.Reason},
				},
			},
		},
	}
}

// IsFault reports whether a raw (non-multipart) SOAP response body
// carries a WS-Addressing fault, per the substring match the WSD wire
// format requires: some devices omit the xmlns declaration that would
// make this a structural check, so the substring test is the only
// reliable signal across implementations.
func IsFault(body []byte) bool {
	const marker = "schemas.xmlsoap.org/ws/2004/08/addressing/fault"
	return bytes.Contains(body, []byte(marker))
}
