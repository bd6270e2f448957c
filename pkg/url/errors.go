package url

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by ParseError and SetterError.
var (
	ErrRelativeWithoutBase = errors.New("relative URL without a base")
	ErrInvalidScheme       = errors.New("invalid scheme")
	ErrEmptyHost           = errors.New("empty host")
	ErrInvalidHost         = errors.New("invalid host code point")
	ErrInvalidDomain       = errors.New("invalid international domain name")
	ErrInvalidIPv4         = errors.New("invalid IPv4 address")
	ErrInvalidIPv6         = errors.New("invalid IPv6 address")
	ErrInvalidPort         = errors.New("invalid port number")
	ErrMissingCredentials  = errors.New("credentials without a host")
	ErrRejected            = errors.New("change not permitted for this URL")
)

// ParseError is returned when an input cannot be parsed as a URL or host.
type ParseError struct {
	Input string // input as given, before preprocessing
	Err   error  // one of the Err* sentinels
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("url: parse %q: %v", truncate(e.Input), e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }

// SetterError is returned by the Set* methods. The URL is left unchanged
// whenever a SetterError is returned.
type SetterError struct {
	Component string // "scheme", "username", "host", ...
	Value     string
	Err       error
}

// Error implements the error interface.
func (e *SetterError) Error() string {
	return fmt.Sprintf("url: set %s to %q: %v", e.Component, truncate(e.Value), e.Err)
}

// Unwrap returns the underlying cause.
func (e *SetterError) Unwrap() error { return e.Err }

func newParseError(input string, err error) *ParseError {
	return &ParseError{Input: input, Err: err}
}

func newSetterError(component, value string, err error) *SetterError {
	return &SetterError{Component: component, Value: value, Err: err}
}

// maxEchoed caps how many code points of the input an error message repeats.
const maxEchoed = 64

func truncate(s string) string {
	if len(s) <= maxEchoed {
		return s
	}
	n := 0
	for i := range s {
		if n == maxEchoed {
			return s[:i] + "\u2026"
		}
		n++
	}
	return s
}
