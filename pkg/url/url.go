// Package url parses, serializes and mutates URLs per the WHATWG URL Standard.
//
// A URL is stored as its canonical serialization plus a handful of offsets
// marking where each component begins and ends, so String is free and
// component accessors are substring operations.
//
// # Thread Safety
//
// A *URL is safe for concurrent reads. The Set* methods replace the whole
// value on success and must not race with readers of the same *URL; use
// Clone to hand out an independent copy.
//
// # Parsing APIs
//
//   - Parse/ParseRef - parse an absolute or relative URL string
//   - Parser - configurable parsing (base URL, query encoding, validation
//     callback, debug logging)
//   - ParseLenient - parse and collect validation errors
//   - Validate - strict conformance check of a URL string
//   - ParseHost - host parser on its own
//   - (*URL).Slice - substrings between component boundaries
//   - ParseNode/URLToNode/NodeToURL/Render - shape-core AST interop
package url

import (
	"strconv"
	"strings"

	"github.com/shapestone/shape-url/internal/percent"
)

// specialSchemes maps each special scheme to its default port (-1: none).
var specialSchemes = map[string]int{
	"ftp":   21,
	"file":  -1,
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
}

// IsSpecialScheme reports whether scheme is one of ftp, file, http, https,
// ws or wss.
func IsSpecialScheme(scheme string) bool {
	_, ok := specialSchemes[scheme]
	return ok
}

// DefaultPort returns the default port of a special scheme.
func DefaultPort(scheme string) (uint16, bool) {
	if p, ok := specialSchemes[scheme]; ok && p >= 0 {
		return uint16(p), true
	}
	return 0, false
}

func defaultPort(scheme string) int {
	if p, ok := specialSchemes[scheme]; ok {
		return p
	}
	return -1
}

// URL is a parsed URL.
type URL struct {
	serialization string

	schemeEnd   int // index of ':'
	usernameEnd int
	hostStart   int
	hostEnd     int
	hostKind    HostKind
	ipv4        uint32
	ipv6        [8]uint16
	port        uint16
	hasPort     bool
	pathStart   int
	queryStart  int // index of '?', -1 when absent
	// index of '#', -1 when absent
	fragmentStart int
}

// String returns the canonical serialization of u.
func (u *URL) String() string { return u.serialization }

// WithoutFragment returns the serialization of u with any fragment removed.
func (u *URL) WithoutFragment() string {
	if u.fragmentStart >= 0 {
		return u.serialization[:u.fragmentStart]
	}
	return u.serialization
}

// Clone returns a copy of u.
func (u *URL) Clone() *URL {
	c := *u
	return &c
}

// Equal reports whether u and v serialize identically.
func (u *URL) Equal(v *URL) bool {
	if u == nil || v == nil {
		return u == v
	}
	return u.serialization == v.serialization
}

// Scheme returns the lowercase scheme without the trailing ':'.
func (u *URL) Scheme() string { return u.serialization[:u.schemeEnd] }

// IsSpecial reports whether the scheme is special.
func (u *URL) IsSpecial() bool { return IsSpecialScheme(u.Scheme()) }

// HasAuthority reports whether the URL has a host (possibly empty).
func (u *URL) HasAuthority() bool { return u.hostKind != HostNone }

// HasOpaquePath reports whether the path is a single opaque string, as in
// "mailto:a@b.com".
func (u *URL) HasOpaquePath() bool {
	return u.hostKind == HostNone && !strings.HasPrefix(u.serialization[u.pathStart:], "/")
}

// Username returns the percent-encoded username.
func (u *URL) Username() string {
	if u.hostKind == HostNone {
		return ""
	}
	return u.serialization[u.schemeEnd+3 : u.usernameEnd]
}

// Password returns the percent-encoded password.
func (u *URL) Password() string {
	if !u.hasPassword() {
		return ""
	}
	return u.serialization[u.usernameEnd+1 : u.hostStart-1]
}

// HasCredentials reports whether the username or password is non-empty.
func (u *URL) HasCredentials() bool {
	return u.hostKind != HostNone && u.hostStart > u.schemeEnd+3
}

// DecodedUsername returns the username percent-decoded, with invalid UTF-8
// replaced by U+FFFD.
func (u *URL) DecodedUsername() string { return percent.DecodeString(u.Username()) }

// DecodedPassword returns the password percent-decoded, with invalid UTF-8
// replaced by U+FFFD.
func (u *URL) DecodedPassword() string { return percent.DecodeString(u.Password()) }

// Host returns the typed host.
func (u *URL) Host() Host {
	switch u.hostKind {
	case HostDomain, HostOpaque:
		return Host{Kind: u.hostKind, Name: u.Hostname()}
	case HostIPv4:
		return Host{Kind: HostIPv4, IPv4: u.ipv4}
	case HostIPv6:
		return Host{Kind: HostIPv6, IPv6: u.ipv6}
	default:
		return Host{Kind: u.hostKind}
	}
}

// Hostname returns the serialized host, with brackets for IPv6.
func (u *URL) Hostname() string { return u.serialization[u.hostStart:u.hostEnd] }

// HostPort returns the serialized host followed by ":port" when a
// non-default port is present.
func (u *URL) HostPort() string {
	if u.hostKind == HostNone {
		return ""
	}
	if !u.hasPort {
		return u.Hostname()
	}
	return u.serialization[u.hostStart:u.pathStart]
}

// Port returns the explicit port. Default ports are never stored.
func (u *URL) Port() (uint16, bool) { return u.port, u.hasPort }

// PortOrDefault returns the explicit port or the scheme's default port.
func (u *URL) PortOrDefault() (uint16, bool) {
	if u.hasPort {
		return u.port, true
	}
	return DefaultPort(u.Scheme())
}

func (u *URL) pathEnd() int {
	switch {
	case u.queryStart >= 0:
		return u.queryStart
	case u.fragmentStart >= 0:
		return u.fragmentStart
	default:
		return len(u.serialization)
	}
}

// Path returns the serialized path: the opaque path, or '/'-joined segments.
func (u *URL) Path() string { return u.serialization[u.pathStart:u.pathEnd()] }

// PathSegments returns the path segments. It returns false for a URL with an
// opaque path.
func (u *URL) PathSegments() ([]string, bool) {
	if u.HasOpaquePath() {
		return nil, false
	}
	path := u.Path()
	if path == "" {
		return []string{}, true
	}
	return strings.Split(path[1:], "/"), true
}

// Query returns the query without the leading '?', and whether it is present.
func (u *URL) Query() (string, bool) {
	if u.queryStart < 0 {
		return "", false
	}
	end := len(u.serialization)
	if u.fragmentStart >= 0 {
		end = u.fragmentStart
	}
	return u.serialization[u.queryStart+1 : end], true
}

// Fragment returns the fragment without the leading '#', and whether it is
// present.
func (u *URL) Fragment() (string, bool) {
	if u.fragmentStart < 0 {
		return "", false
	}
	return u.serialization[u.fragmentStart+1:], true
}

// DecodedFragment returns the fragment percent-decoded, with invalid UTF-8
// replaced by U+FFFD.
func (u *URL) DecodedFragment() string {
	f, _ := u.Fragment()
	return percent.DecodeString(f)
}

// Search returns "?"+query, or "" when the query is absent or empty.
func (u *URL) Search() string {
	q, _ := u.Query()
	if q == "" {
		return ""
	}
	return "?" + q
}

// Hash returns "#"+fragment, or "" when the fragment is absent or empty.
func (u *URL) Hash() string {
	f, _ := u.Fragment()
	if f == "" {
		return ""
	}
	return "#" + f
}

// portString returns the decimal port or "".
func (u *URL) portString() string {
	if !u.hasPort {
		return ""
	}
	return strconv.Itoa(int(u.port))
}
