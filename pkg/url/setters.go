package url

import (
	"errors"
	"strings"

	"github.com/shapestone/shape-url/internal/percent"
	"github.com/shapestone/shape-url/pkg/form"
)

// reparse re-enters the state machine at start with override set, on a
// decomposed copy of u. u is replaced only when the run succeeds.
func (u *URL) reparse(component, value, input string, start, override state, prepare func(*record)) error {
	r := u.decompose()
	if prepare != nil {
		prepare(r)
	}
	var p Parser
	m := p.newMachine(input, false)
	m.url = r
	m.override = override
	if err := m.run(start); err != nil {
		return newSetterError(component, value, err)
	}
	*u = *r.build()
	return nil
}

// SetHref replaces u with the result of parsing value as an absolute URL.
func (u *URL) SetHref(value string) error {
	v, err := Parse(value)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		return newSetterError("href", value, err)
	}
	*u = *v
	return nil
}

// SetScheme changes the scheme. Anything after a ':' in value is ignored.
// Switching between special and non-special schemes, or to file while the
// URL has credentials or a port, is rejected.
func (u *URL) SetScheme(value string) error {
	return u.reparse("scheme", value, value+":", stateSchemeStart, stateSchemeStart, nil)
}

// SetUsername percent-encodes value with the userinfo set and stores it.
func (u *URL) SetUsername(value string) error {
	r := u.decompose()
	if r.cannotHaveCredentialsOrPort() {
		return newSetterError("username", value, ErrMissingCredentials)
	}
	r.username = percent.EncodeString(value, &percent.Userinfo)
	*u = *r.build()
	return nil
}

// SetPassword percent-encodes value with the userinfo set and stores it.
func (u *URL) SetPassword(value string) error {
	r := u.decompose()
	if r.cannotHaveCredentialsOrPort() {
		return newSetterError("password", value, ErrMissingCredentials)
	}
	r.password = percent.EncodeString(value, &percent.Userinfo)
	*u = *r.build()
	return nil
}

// SetHost sets the host and, when value carries ":port", the port. An empty
// or missing port leaves the current port in place.
func (u *URL) SetHost(value string) error {
	if u.HasOpaquePath() {
		return newSetterError("host", value, ErrRejected)
	}
	return u.reparse("host", value, value, stateHost, stateHost, nil)
}

// SetHostname sets the host only; a value containing a port delimiter is
// rejected.
func (u *URL) SetHostname(value string) error {
	if u.HasOpaquePath() {
		return newSetterError("hostname", value, ErrRejected)
	}
	return u.reparse("hostname", value, value, stateHostname, stateHostname, nil)
}

// SetPort sets the port from the leading digits of value. The empty string
// removes the port; a port equal to the scheme default is dropped.
func (u *URL) SetPort(value string) error {
	r := u.decompose()
	if r.cannotHaveCredentialsOrPort() {
		return newSetterError("port", value, ErrRejected)
	}
	if value == "" {
		r.port = -1
		*u = *r.build()
		return nil
	}
	return u.reparse("port", value, value, statePort, statePort, nil)
}

// SetPath replaces the path. URLs with an opaque path reject the change.
func (u *URL) SetPath(value string) error {
	if u.HasOpaquePath() {
		return newSetterError("path", value, ErrRejected)
	}
	return u.reparse("path", value, value, statePathStart, statePathStart, func(r *record) {
		r.path = nil
	})
}

// SetQuery replaces the query. A leading '?' is ignored; the empty string
// removes the query altogether.
func (u *URL) SetQuery(value string) error {
	if value == "" {
		r := u.decompose()
		r.query, r.hasQuery = "", false
		*u = *r.build()
		return nil
	}
	return u.reparse("query", value, strings.TrimPrefix(value, "?"), stateQuery, stateQuery, func(r *record) {
		r.query, r.hasQuery = "", true
	})
}

// SetFragment replaces the fragment. A leading '#' is ignored; the empty
// string removes the fragment altogether.
func (u *URL) SetFragment(value string) error {
	if value == "" {
		r := u.decompose()
		r.fragment, r.hasFragment = "", false
		*u = *r.build()
		return nil
	}
	return u.reparse("fragment", value, strings.TrimPrefix(value, "#"), stateFragment, stateFragment, func(r *record) {
		r.fragment, r.hasFragment = "", true
	})
}

// SetQueryPairs replaces the query with the form-urlencoded serialization of
// pairs. An empty list removes the query.
func (u *URL) SetQueryPairs(pairs form.Pairs) {
	r := u.decompose()
	r.query = pairs.Encode()
	r.hasQuery = r.query != ""
	*u = *r.build()
}

// QueryPairs parses the query as application/x-www-form-urlencoded.
func (u *URL) QueryPairs() form.Pairs {
	q, _ := u.Query()
	return form.Parse(q)
}
