// MFP - Miulti-Function Printers and scanners toolkit
// eSCL core protocol
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Job state reason

package escl

import "github.com/alexpevzner/scanbridge/xmldoc"

// JobStateReason elaborates on why a job reached its [JobState].
type JobStateReason int

// Known job state reasons.
const (
	UnknownJobStateReason JobStateReason = iota // Unknown/not given
	JobCanceledByUser
	JobCompletedSuccessfully
	AbortedBySystem
	ErrorsDetected
)

// decodeJobStateReason decodes [JobStateReason] from the XML tree.
func decodeJobStateReason(root xmldoc.Element) (reason JobStateReason, err error) {
	return decodeEnum(root, DecodeJobStateReason)
}

// toXML generates XML tree for the [JobStateReason].
func (reason JobStateReason) toXML(name string) xmldoc.Element {
	return xmldoc.Element{
		Name: name,
		Text: reason.String(),
	}
}

// String returns a string representation of the [JobStateReason].
func (reason JobStateReason) String() string {
	switch reason {
	case JobCanceledByUser:
		return "JobCanceledByUser"
	case JobCompletedSuccessfully:
		return "JobCompletedSuccessfully"
	case AbortedBySystem:
		return "AbortedBySystem"
	case ErrorsDetected:
		return "ErrorsDetected"
	}

	return "Unknown"
}

// DecodeJobStateReason decodes [JobStateReason] out of its XML
// string representation.
func DecodeJobStateReason(s string) JobStateReason {
	switch s {
	case "JobCanceledByUser":
		return JobCanceledByUser
	case "JobCompletedSuccessfully":
		return JobCompletedSuccessfully
	case "AbortedBySystem":
		return AbortedBySystem
	case "ErrorsDetected":
		return ErrorsDetected
	}

	return UnknownJobStateReason
}
