package url

import (
	"strconv"
	"sync/atomic"
)

var opaqueOrigins atomic.Uint64

// Origin is either a tuple of scheme, host and port, or an opaque origin
// that is only equal to itself.
type Origin struct {
	Scheme string
	Host   Host
	Port   int // -1 when the scheme default applies

	opaqueID uint64 // non-zero for opaque origins
}

// Origin returns the origin of u. http, https, ws, wss and ftp URLs have a
// tuple origin; blob: URLs inherit the origin of an http(s) URL in their
// path; everything else gets a new opaque origin on every call.
func (u *URL) Origin() Origin {
	switch u.Scheme() {
	case "http", "https", "ws", "wss", "ftp":
		port := -1
		if u.hasPort {
			port = int(u.port)
		}
		return Origin{Scheme: u.Scheme(), Host: u.Host(), Port: port}
	case "blob":
		if inner, err := Parse(u.Path()); err == nil {
			if s := inner.Scheme(); s == "http" || s == "https" {
				return inner.Origin()
			}
		}
	}
	return NewOpaqueOrigin()
}

// NewOpaqueOrigin returns a fresh opaque origin.
func NewOpaqueOrigin() Origin {
	return Origin{Port: -1, opaqueID: opaqueOrigins.Add(1)}
}

// IsOpaque reports whether o is an opaque origin.
func (o Origin) IsOpaque() bool { return o.opaqueID != 0 }

// SameOrigin reports whether o and other are the same origin. Opaque origins
// are only the same as themselves.
func (o Origin) SameOrigin(other Origin) bool {
	if o.IsOpaque() || other.IsOpaque() {
		return o.opaqueID == other.opaqueID
	}
	return o.Scheme == other.Scheme && o.Host == other.Host && o.Port == other.Port
}

// String returns the ASCII serialization of o, or "null" when opaque.
func (o Origin) String() string {
	if o.IsOpaque() {
		return "null"
	}
	return o.serialize(o.Host.String())
}

// UnicodeString is String with domain labels converted back to Unicode.
func (o Origin) UnicodeString() string {
	if o.IsOpaque() {
		return "null"
	}
	return o.serialize(o.Host.Unicode())
}

func (o Origin) serialize(host string) string {
	s := o.Scheme + "://" + host
	if o.Port >= 0 {
		s += ":" + strconv.Itoa(o.Port)
	}
	return s
}
