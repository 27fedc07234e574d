// MFP - Miulti-Function Printers and scanners toolkit
// Device discovery
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Discovery backend interface

package discovery

// Backend is implemented by a discovery listener (§4.E), such as the
// DNS-SD browser or the WS-Discovery multicast prober, and plugged
// into a [Client] via [Client.AddBackend].
type Backend interface {
	// Name returns a short backend name, for logging.
	Name() string

	// Start starts the backend's operations. The backend reports its
	// findings by pushing [Event]s into queue until [Backend.Close]
	// is called.
	Start(queue *Eventqueue)

	// Close stops the backend and releases its resources.
	Close()
}
