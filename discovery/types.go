// MFP - Miulti-Function Printers and scanners toolkit
// Device discovery
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Common discovery types

package discovery

// ServiceType represents a kind of service, offered by a device.
type ServiceType int

// ServiceType values:
const (
	ServicePrinter ServiceType = iota
	ServiceScanner
	ServiceFaxout
)

// String returns a human-readable ServiceType name.
func (t ServiceType) String() string {
	switch t {
	case ServicePrinter:
		return "printer"
	case ServiceScanner:
		return "scanner"
	case ServiceFaxout:
		return "faxout"
	}
	return "unknown"
}

// ServiceProto represents a wire protocol a service is reachable by.
type ServiceProto int

// ServiceProto values:
const (
	ProtoUnknown ServiceProto = iota
	ProtoEscl                 // eSCL (AirScan)
	ProtoWSD                  // WS-Scan / WS-Print
	ProtoIPP                  // IPP
	ProtoLPD                  // LPD
)

// String returns a human-readable ServiceProto name.
func (p ServiceProto) String() string {
	switch p {
	case ProtoEscl:
		return "eSCL"
	case ProtoWSD:
		return "WSD"
	case ProtoIPP:
		return "IPP"
	case ProtoLPD:
		return "LPD"
	}
	return "unknown"
}

// SearchRealm identifies an independent discovery namespace.
type SearchRealm int

// SearchRealm values:
const (
	RealmDNSSD SearchRealm = iota
	RealmWSD
)

// String returns a human-readable SearchRealm name.
func (r SearchRealm) String() string {
	switch r {
	case RealmDNSSD:
		return "dns-sd"
	case RealmWSD:
		return "wsd"
	}
	return "unknown"
}

// Metadata contains device-level information, common to all of its
// services.
type Metadata struct {
	MakeModel    string // E.g. "Kyocera ECOSYS M2040dn"
	Manufacturer string // Manufacturer name
	Model        string // Model name
	SerialNumber string // Serial number, if known
}

// PrinterParameters contains printer-service-specific parameters.
type PrinterParameters struct {
	Formats []string // Supported document formats (MIME types)
}

// ScannerParameters contains scanner-service-specific parameters.
type ScannerParameters struct {
	Sources InputSource // Supported input sources
	Formats []string    // Supported image formats (MIME types)
}

// FaxoutParameters contains faxout-service-specific parameters.
type FaxoutParameters struct {
	Formats []string // Supported document formats (MIME types)
}

// Mode controls how [Client.GetDevices] balances freshness against
// latency.
type Mode int

// Mode values:
const (
	// ModeNow returns the currently known device list immediately,
	// without waiting for in-flight resolvers to settle.
	ModeNow Mode = iota

	// ModeNormal waits until all in-flight resolvers settle (or the
	// context given to GetDevices expires), so newly appearing
	// devices are not missed because of a race with discovery.
	ModeNormal
)

// Device is a fully resolved, discovered device, aggregated over all
// discovery sources that reported it.
type Device struct {
	Name      string             // Device discovery name
	Meta      Metadata           // Device metadata
	Printer   *PrinterParameters // nil if the device has no printer service
	Scanner   *ScannerParameters // nil if the device has no scanner service
	Faxout    *FaxoutParameters  // nil if the device has no faxout service
	Endpoints []string           // Ranked, deduplicated endpoint URIs
}
