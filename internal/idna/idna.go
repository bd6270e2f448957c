// Package idna is the domain-name processor used by the host parser. It
// applies UTS #46 processing with the options the URL Standard prescribes
// for "domain to ASCII" and "domain to Unicode".
package idna

import (
	"errors"
	"strings"

	"golang.org/x/net/idna"
)

// ErrEmptyResult is returned when ToASCII maps a domain to the empty string.
var ErrEmptyResult = errors.New("idna: empty result")

// Profiles are built once and are safe for concurrent use.
var (
	lenient = idna.New(
		idna.MapForLookup(),
		idna.BidiRule(),
		idna.Transitional(false),
		idna.CheckHyphens(false),
		idna.CheckJoiners(true),
		idna.StrictDomainName(false),
		idna.VerifyDNSLength(false),
	)
	strict = idna.New(
		idna.MapForLookup(),
		idna.BidiRule(),
		idna.Transitional(false),
		idna.CheckHyphens(false),
		idna.CheckJoiners(true),
		idna.StrictDomainName(true),
		idna.VerifyDNSLength(true),
	)
	display = idna.New(
		idna.MapForLookup(),
		idna.BidiRule(),
		idna.Transitional(false),
		idna.CheckHyphens(false),
		idna.CheckJoiners(true),
		idna.StrictDomainName(false),
	)
)

// ToASCII converts domain to its ASCII form. With beStrict the STD3 rules
// and DNS length limits are enforced as well.
func ToASCII(domain string, beStrict bool) (string, error) {
	if !beStrict && isSimple(domain) {
		return strings.ToLower(domain), nil
	}
	p := lenient
	if beStrict {
		p = strict
	}
	out, err := p.ToASCII(domain)
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", ErrEmptyResult
	}
	return out, nil
}

// ToUnicode converts an ASCII domain to its display form. The returned flag
// is true when any label failed to decode; such labels are left as given.
func ToUnicode(domain string) (string, bool) {
	if isSimple(domain) {
		return domain, false
	}
	out, err := display.ToUnicode(domain)
	if err != nil {
		return out, true
	}
	return out, false
}

// isSimple reports whether domain is ASCII without any punycode label,
// in which case UTS #46 processing reduces to ASCII lowercasing.
func isSimple(domain string) bool {
	if domain == "" {
		return false
	}
	labelStart := true
	for i := 0; i < len(domain); i++ {
		c := domain[i]
		if c >= 0x80 {
			return false
		}
		if labelStart && (c == 'x' || c == 'X') && i+3 < len(domain) &&
			(domain[i+1] == 'n' || domain[i+1] == 'N') && domain[i+2] == '-' && domain[i+3] == '-' {
			return false
		}
		labelStart = c == '.'
	}
	return true
}
