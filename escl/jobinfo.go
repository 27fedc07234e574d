// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Per-job status, as reported by ScannerStatus

package escl

import (
	"github.com/alexpevzner/scanbridge/optional"
	"github.com/alexpevzner/scanbridge/xmldoc"
)

// JobInfo represents the state of a single scan job, as reported in
// the Jobs list of [ScannerStatus].
type JobInfo struct {
	JobURI          string                // Job URI, e.g. "/eSCL/ScanJobs/1"
	JobUUID         optional.Val[string]   // Job UUID, if known
	JobState        JobState               // Current job state
	JobStateReasons []JobStateReason       // Why the job is in this state
}

// decodeJobInfo decodes [JobInfo] from the XML tree.
func decodeJobInfo(root xmldoc.Element) (info JobInfo, err error) {
	defer func() { err = xmldoc.XMLErrWrap(root, err) }()

	uri := xmldoc.Lookup{Name: NsPWG + ":JobUri", Required: true}
	uu := xmldoc.Lookup{Name: NsScan + ":JobUuid"}
	state := xmldoc.Lookup{Name: NsPWG + ":JobState", Required: true}
	reasons := xmldoc.Lookup{Name: NsPWG + ":JobStateReasons"}

	missed := root.Lookup(&uri, &uu, &state, &reasons)
	if missed != nil {
		err = xmldoc.XMLErrMissed(missed.Name)
		return
	}

	info.JobURI = uri.Elem.Text
	if uu.Found {
		info.JobUUID = optional.New(uu.Elem.Text)
	}

	info.JobState, err = decodeJobState(state.Elem)
	if err != nil {
		return
	}

	if reasons.Found {
		for _, elem := range reasons.Elem.Children {
			if elem.Name == NsPWG+":JobStateReason" {
				var reason JobStateReason
				reason, err = decodeJobStateReason(elem)
				if err != nil {
					return
				}
				info.JobStateReasons = append(info.JobStateReasons, reason)
			}
		}
	}

	return
}

// toXML generates XML tree for the [JobInfo].
func (info JobInfo) toXML(name string) xmldoc.Element {
	elm := xmldoc.Element{
		Name: name,
		Children: []xmldoc.Element{
			{Name: NsPWG + ":JobUri", Text: info.JobURI},
			info.JobState.toXML(NsPWG + ":JobState"),
		},
	}

	if info.JobUUID != nil {
		elm.Children = append(elm.Children, xmldoc.Element{
			Name: NsScan + ":JobUuid",
			Text: *info.JobUUID,
		})
	}

	if info.JobStateReasons != nil {
		reasons := xmldoc.Element{Name: NsPWG + ":JobStateReasons"}
		for _, reason := range info.JobStateReasons {
			reasons.Children = append(reasons.Children,
				reason.toXML(NsPWG+":JobStateReason"))
		}
		elm.Children = append(elm.Children, reasons)
	}

	return elm
}

// PushJobInfo pushes a new [JobInfo] to the front of status.Jobs,
// trimming the history so it never exceeds limit entries.
func (status *ScannerStatus) PushJobInfo(info JobInfo, limit int) {
	status.Jobs = append([]JobInfo{info}, status.Jobs...)
	if len(status.Jobs) > limit {
		status.Jobs = status.Jobs[:limit]
	}
}
