package url

import (
	"strconv"
	"strings"
)

// record is the component-wise form the state machine works on. A URL is
// decomposed into a record for mutation and rebuilt from it afterwards.
type record struct {
	scheme   string
	username string
	password string
	host     Host // Kind HostNone when the URL has no host
	port     int  // -1 when absent

	path       []string
	opaque     bool
	opaquePath string

	query       string
	hasQuery    bool
	fragment    string
	hasFragment bool
}

func newRecord() *record {
	return &record{port: -1}
}

func (r *record) isSpecial() bool {
	_, ok := specialSchemes[r.scheme]
	return ok
}

func (r *record) hasCredentials() bool {
	return r.username != "" || r.password != ""
}

// cannotHaveCredentialsOrPort mirrors the URL Standard predicate of the
// same name.
func (r *record) cannotHaveCredentialsOrPort() bool {
	return r.host.Kind == HostNone || r.host.Kind == HostEmpty || r.scheme == "file"
}

// shortenPath removes the last path segment, keeping a lone normalized
// Windows drive letter of a file URL.
func (r *record) shortenPath() {
	if r.scheme == "file" && len(r.path) == 1 && isNormalizedWindowsDriveLetter(r.path[0]) {
		return
	}
	if len(r.path) > 0 {
		r.path = r.path[:len(r.path)-1]
	}
}

func (r *record) clonePath() []string {
	if r.path == nil {
		return nil
	}
	out := make([]string, len(r.path))
	copy(out, r.path)
	return out
}

// build serializes r into the single-buffer URL representation.
func (r *record) build() *URL {
	var b strings.Builder
	b.Grow(len(r.scheme) + len(r.username) + len(r.password) + len(r.host.Name) +
		len(r.opaquePath) + len(r.query) + len(r.fragment) + 16*len(r.path) + 16)

	u := &URL{queryStart: -1, fragmentStart: -1}

	b.WriteString(r.scheme)
	u.schemeEnd = b.Len()
	b.WriteByte(':')

	u.hostKind = r.host.Kind
	if r.host.Kind != HostNone {
		b.WriteString("//")
		b.WriteString(r.username)
		u.usernameEnd = b.Len()
		if r.hasCredentials() {
			if r.password != "" {
				b.WriteByte(':')
				b.WriteString(r.password)
			}
			b.WriteByte('@')
		}
		u.hostStart = b.Len()
		b.WriteString(r.host.String())
		u.hostEnd = b.Len()
		u.ipv4 = r.host.IPv4
		u.ipv6 = r.host.IPv6
		if r.port >= 0 {
			u.port = uint16(r.port)
			u.hasPort = true
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(r.port))
		}
	} else {
		u.usernameEnd = b.Len()
		u.hostStart = b.Len()
		u.hostEnd = b.Len()
		if !r.opaque && len(r.path) > 1 && r.path[0] == "" {
			b.WriteString("/.")
		}
	}

	u.pathStart = b.Len()
	if r.opaque {
		b.WriteString(r.opaquePath)
	} else {
		for _, seg := range r.path {
			b.WriteByte('/')
			b.WriteString(seg)
		}
	}

	if r.hasQuery {
		u.queryStart = b.Len()
		b.WriteByte('?')
		b.WriteString(r.query)
	}
	if r.hasFragment {
		u.fragmentStart = b.Len()
		b.WriteByte('#')
		b.WriteString(r.fragment)
	}

	u.serialization = b.String()
	return u
}

// decompose returns the component record of u.
func (u *URL) decompose() *record {
	r := &record{
		scheme:   u.Scheme(),
		username: u.Username(),
		password: u.Password(),
		host:     u.Host(),
		port:     -1,
	}
	if u.hasPort {
		r.port = int(u.port)
	}
	path := u.Path()
	if u.HasOpaquePath() {
		r.opaque = true
		r.opaquePath = path
	} else if path != "" {
		r.path = strings.Split(path[1:], "/")
	}
	r.query, r.hasQuery = u.Query()
	r.fragment, r.hasFragment = u.Fragment()
	return r
}
