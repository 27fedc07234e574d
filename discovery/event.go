// MFP - Miulti-Function Printers and scanners toolkit
// Device discovery
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Discovery events

package discovery

// Event is implemented by all events backends report through the
// [Eventqueue].
type Event interface {
	Name() string  // Event kind, for logging
	GetID() UnitID // Unit the event is about
}

// eventBase is embedded by concrete events to supply GetID.
type eventBase struct {
	ID UnitID
}

// GetID returns the unit this event is about.
func (e eventBase) GetID() UnitID { return e.ID }

// EventAddUnit reports that a backend has found a new unit.
type EventAddUnit struct{ eventBase }

// NewEventAddUnit creates a new [EventAddUnit] for id.
func NewEventAddUnit(id UnitID) *EventAddUnit {
	return &EventAddUnit{eventBase{ID: id}}
}

// Name returns the event kind.
func (*EventAddUnit) Name() string { return "add-unit" }

// EventDelUnit reports that a backend has lost a previously reported
// unit.
type EventDelUnit struct{ eventBase }

// NewEventDelUnit creates a new [EventDelUnit] for id.
func NewEventDelUnit(id UnitID) *EventDelUnit {
	return &EventDelUnit{eventBase{ID: id}}
}

// Name returns the event kind.
func (*EventDelUnit) Name() string { return "del-unit" }

// EventMetadata reports a unit's device metadata.
type EventMetadata struct {
	eventBase
	Meta Metadata
}

// NewEventMetadata creates a new [EventMetadata] for id.
func NewEventMetadata(id UnitID, meta Metadata) *EventMetadata {
	return &EventMetadata{eventBase{ID: id}, meta}
}

// Name returns the event kind.
func (*EventMetadata) Name() string { return "metadata" }

// EventPrinterParameters reports a unit's printer parameters.
type EventPrinterParameters struct {
	eventBase
	Printer PrinterParameters
}

// NewEventPrinterParameters creates a new [EventPrinterParameters] for id.
func NewEventPrinterParameters(id UnitID, p PrinterParameters) *EventPrinterParameters {
	return &EventPrinterParameters{eventBase{ID: id}, p}
}

// Name returns the event kind.
func (*EventPrinterParameters) Name() string { return "printer-parameters" }

// EventScannerParameters reports a unit's scanner parameters.
type EventScannerParameters struct {
	eventBase
	Scanner ScannerParameters
}

// NewEventScannerParameters creates a new [EventScannerParameters] for id.
func NewEventScannerParameters(id UnitID, p ScannerParameters) *EventScannerParameters {
	return &EventScannerParameters{eventBase{ID: id}, p}
}

// Name returns the event kind.
func (*EventScannerParameters) Name() string { return "scanner-parameters" }

// EventFaxoutParameters reports a unit's faxout parameters.
type EventFaxoutParameters struct {
	eventBase
	Faxout FaxoutParameters
}

// NewEventFaxoutParameters creates a new [EventFaxoutParameters] for id.
func NewEventFaxoutParameters(id UnitID, p FaxoutParameters) *EventFaxoutParameters {
	return &EventFaxoutParameters{eventBase{ID: id}, p}
}

// Name returns the event kind.
func (*EventFaxoutParameters) Name() string { return "faxout-parameters" }

// EventAddEndpoint reports a new endpoint for a unit.
type EventAddEndpoint struct {
	eventBase
	Endpoint string
}

// NewEventAddEndpoint creates a new [EventAddEndpoint] for id.
func NewEventAddEndpoint(id UnitID, endpoint string) *EventAddEndpoint {
	return &EventAddEndpoint{eventBase{ID: id}, endpoint}
}

// Name returns the event kind.
func (*EventAddEndpoint) Name() string { return "add-endpoint" }

// EventDelEndpoint reports that an endpoint is no longer valid for a
// unit.
type EventDelEndpoint struct {
	eventBase
	Endpoint string
}

// NewEventDelEndpoint creates a new [EventDelEndpoint] for id.
func NewEventDelEndpoint(id UnitID, endpoint string) *EventDelEndpoint {
	return &EventDelEndpoint{eventBase{ID: id}, endpoint}
}

// Name returns the event kind.
func (*EventDelEndpoint) Name() string { return "del-endpoint" }
