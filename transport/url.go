// MFP       - Miulti-Function Printers and scanners toolkit
// TRANSPORT - Transport protocol implementation
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// URL parsing and normalization

package transport

import (
	"errors"
	"net"
	"net/url"
	"path"
	"strings"
)

// URL is a parsed and normalized endpoint address: an HTTP(s) or
// IPP(s) network URL, or a UNIX-domain socket path wrapped into the
// "unix:" scheme.
//
// It is used throughout the package to address scanners and other
// devices discovered on the network, so its String representation
// is always in a canonical, comparable form (no redundant default
// ports, no "//" doubling in paths).
type URL url.URL

// Errors, returned by [ParseURL] and [ParseAddr].
var (
	ErrURLSchemeMissed  = errors.New("URL scheme missed")
	ErrURLSchemeInvalid = errors.New("URL scheme invalid")
	ErrURLInvalid       = errors.New("invalid URL")
	ErrURLUNIXHost      = errors.New("invalid host for unix: URL")
)

// defaultPorts maps a known scheme onto its well-known default port.
// A port that matches the scheme's default is redundant and is
// stripped by ParseURL/ParseAddr.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ipp":   "631",
	"ipps":  "631",
}

// portSchemes maps a well-known port onto the scheme it implies,
// when an address is given as a bare host:port with no scheme.
var portSchemes = map[string]string{
	"80":  "http",
	"443": "https",
	"631": "ipp",
}

// String returns the URL's string representation.
func (u URL) String() string {
	if strings.EqualFold(u.Scheme, "unix") {
		return "unix:" + u.Path
	}

	uu := url.URL(u)
	return uu.String()
}

// ParseURL parses a string into the [URL].
//
// Unlike [url.Parse], it requires the scheme to be present and known
// (http, https, ipp, ipps or unix), and it normalizes the result:
// default ports are dropped, and the path is cleaned (see
// [CleanURLPath]).
func ParseURL(in string) (URL, error) {
	raw, err := url.Parse(in)
	if err != nil {
		return URL{}, ErrURLInvalid
	}

	if raw.Scheme == "" {
		return URL{}, ErrURLSchemeMissed
	}

	scheme := strings.ToLower(raw.Scheme)

	if scheme == "unix" {
		return parseUNIXURL(raw)
	}

	if _, ok := defaultPorts[scheme]; !ok {
		return URL{}, ErrURLSchemeInvalid
	}

	if raw.Hostname() == "" {
		return URL{}, ErrURLInvalid
	}

	raw.Scheme = scheme
	host, port, _ := splitAddr(raw.Host)
	raw.Host = joinHost(host, port)
	raw.Host = stripDefaultPort(scheme, raw.Host)
	raw.Path = CleanURLPath(raw.Path)

	u := URL(*raw)
	return u, nil
}

// MustParseURL is like [ParseURL], but panics in a case of error.
func MustParseURL(in string) URL {
	u, err := ParseURL(in)
	if err != nil {
		panic(err)
	}
	return u
}

// ParseAddr parses addr, which may be a bare IP address, a
// host:port pair, an absolute UNIX-domain socket path, or a
// complete URL, into the [URL].
//
// If addr doesn't carry its own scheme and port, missing pieces
// are taken from template, which must be a valid URL string or
// the empty string. If template is empty, http is assumed.
func ParseAddr(addr, template string) (URL, error) {
	if strings.Contains(addr, "://") {
		return ParseURL(addr)
	}

	if strings.HasPrefix(addr, "/") {
		return URL{Scheme: "unix", Path: CleanURLPath(addr)}, nil
	}

	scheme, tplPort, tplPath := "", "", "/"
	if template != "" {
		tpl, err := ParseURL(template)
		if err != nil {
			return URL{}, err
		}
		scheme = tpl.Scheme
		tplPort = (*url.URL)(&tpl).Port()
		tplPath = tpl.Path
	}

	host, port, hasPort := splitAddr(addr)

	switch {
	case hasPort && scheme == "":
		scheme = portSchemes[port]
		if scheme == "" {
			scheme = "http"
		}
	case !hasPort && scheme == "":
		scheme = "http"
	}

	finalPort := tplPort
	if hasPort {
		finalPort = port
	}

	u := URL{
		Scheme: scheme,
		Host:   joinHost(host, finalPort),
		Path:   tplPath,
	}
	u.Host = stripDefaultPort(scheme, u.Host)

	return u, nil
}

// parseUNIXURL handles the "unix:" scheme for [ParseURL].
//
// A unix: URL may only address the local host, so an authority
// component, if present, must be empty or "localhost", with no
// port.
func parseUNIXURL(raw *url.URL) (URL, error) {
	if raw.Host != "" {
		if !strings.EqualFold(raw.Hostname(), "localhost") ||
			raw.Port() != "" {
			return URL{}, ErrURLUNIXHost
		}
	}

	return URL{Scheme: "unix", Path: CleanURLPath(raw.Path)}, nil
}

// splitAddr splits addr into a host and an optional port, stripping
// the IPv6 brackets, if any. hasPort is false if addr carries no
// port, in which case port is empty.
func splitAddr(addr string) (host, port string, hasPort bool) {
	if h, p, err := net.SplitHostPort(addr); err == nil {
		return h, p, true
	}

	host = strings.TrimSuffix(strings.TrimPrefix(addr, "["), "]")
	return host, "", false
}

// joinHost reassembles a host and an optional port into a single
// Host string, adding the IPv6 brackets back where needed.
func joinHost(host, port string) string {
	if port == "" {
		if strings.Contains(host, ":") {
			return "[" + host + "]"
		}
		return host
	}
	return net.JoinHostPort(host, port)
}

// stripDefaultPort drops the ":port" suffix of host, if its port
// matches the scheme's well-known default.
func stripDefaultPort(scheme, host string) string {
	h, p, hasPort := splitAddr(host)
	if hasPort && p == defaultPorts[scheme] {
		return joinHost(h, "")
	}
	return host
}

// CleanURLPath normalizes a URL path: runs of slashes are collapsed,
// "." and ".." segments are resolved, and the result always starts
// with a leading slash. Unlike [path.Clean], a trailing slash in the
// input is preserved in the output (except when the whole path
// reduces to "/").
func CleanURLPath(p string) string {
	if p == "" {
		return "/"
	}

	trailingSlash := p != "/" && strings.HasSuffix(p, "/")

	cleaned := path.Clean(p)
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}

	if trailingSlash && !strings.HasSuffix(cleaned, "/") {
		cleaned += "/"
	}

	return cleaned
}
