package url

import (
	"net/netip"
	"strings"

	"github.com/shapestone/shape-url/internal/idna"
	"github.com/shapestone/shape-url/internal/percent"
)

// HostKind tags the variant held by a Host.
type HostKind uint8

const (
	HostNone   HostKind = iota // no host: the URL has no authority
	HostDomain                 // ASCII domain name
	HostIPv4                   // IPv4 address in Host.IPv4
	HostIPv6                   // IPv6 address in Host.IPv6
	HostOpaque                 // percent-encoded host of a non-special URL
	HostEmpty                  // empty host, e.g. file:///
)

var hostKindNames = [...]string{
	HostNone:   "none",
	HostDomain: "domain",
	HostIPv4:   "ipv4",
	HostIPv6:   "ipv6",
	HostOpaque: "opaque",
	HostEmpty:  "empty",
}

func (k HostKind) String() string {
	if int(k) < len(hostKindNames) {
		return hostKindNames[k]
	}
	return "unknown"
}

// Host is a parsed host. Only the fields belonging to Kind are set.
type Host struct {
	Kind HostKind
	Name string // HostDomain and HostOpaque
	IPv4 uint32
	IPv6 [8]uint16
}

// String returns the host serialization: IPv6 addresses are bracketed
// and compressed, IPv4 addresses dotted-decimal.
func (h Host) String() string {
	switch h.Kind {
	case HostDomain, HostOpaque:
		return h.Name
	case HostIPv4:
		return string(appendIPv4(nil, h.IPv4))
	case HostIPv6:
		b := append(make([]byte, 0, 41), '[')
		b = appendIPv6(b, h.IPv6)
		return string(append(b, ']'))
	default:
		return ""
	}
}

// Unicode returns the host for display, converting punycode labels of a
// domain back to Unicode.
func (h Host) Unicode() string {
	if h.Kind != HostDomain {
		return h.String()
	}
	s, _ := idna.ToUnicode(h.Name)
	return s
}

// Addr returns the IP address held by an IPv4 or IPv6 host.
func (h Host) Addr() (netip.Addr, bool) {
	switch h.Kind {
	case HostIPv4:
		v := h.IPv4
		return netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}), true
	case HostIPv6:
		var b [16]byte
		for i, piece := range h.IPv6 {
			b[2*i] = byte(piece >> 8)
			b[2*i+1] = byte(piece)
		}
		return netip.AddrFrom16(b), true
	}
	return netip.Addr{}, false
}

// ParseHost parses input as the host of a special (isSpecial) or
// non-special URL.
func ParseHost(input string, isSpecial bool) (Host, error) {
	if isSpecial && input == "" {
		return Host{}, newParseError(input, ErrEmptyHost)
	}
	h, err := parseHost(input, !isSpecial, nil)
	if err != nil {
		return Host{}, newParseError(input, err)
	}
	return h, nil
}

type reportFunc func(ValidationKind)

func (r reportFunc) report(k ValidationKind) {
	if r != nil {
		r(k)
	}
}

func parseHost(input string, isOpaque bool, report reportFunc) (Host, error) {
	if strings.HasPrefix(input, "[") {
		if !strings.HasSuffix(input, "]") {
			report.report(ValidationIPv6Unclosed)
			return Host{}, ErrInvalidIPv6
		}
		addr, ok := parseIPv6(input[1:len(input)-1], report)
		if !ok {
			return Host{}, ErrInvalidIPv6
		}
		return Host{Kind: HostIPv6, IPv6: addr}, nil
	}
	if isOpaque {
		return parseOpaqueHost(input, report)
	}

	domain := percent.DecodeString(input)
	ascii, err := idna.ToASCII(domain, false)
	if err != nil {
		report.report(ValidationDomainToASCII)
		return Host{}, ErrInvalidDomain
	}
	for i := 0; i < len(ascii); i++ {
		if isForbiddenDomainByte(ascii[i]) {
			report.report(ValidationDomainInvalidCodePoint)
			return Host{}, ErrInvalidHost
		}
	}
	if endsInNumber(ascii) {
		v, ok := parseIPv4(ascii, report)
		if !ok {
			return Host{}, ErrInvalidIPv4
		}
		return Host{Kind: HostIPv4, IPv4: v}, nil
	}
	return Host{Kind: HostDomain, Name: ascii}, nil
}

func parseOpaqueHost(input string, report reportFunc) (Host, error) {
	for i := 0; i < len(input); i++ {
		if isForbiddenHostByte(input[i]) {
			report.report(ValidationHostInvalidCodePoint)
			return Host{}, ErrInvalidHost
		}
	}
	for i, r := range input {
		if r == '%' {
			if _, ok := percent.DecodeTriplet(input[i:]); !ok {
				report.report(ValidationInvalidPercentEncoding)
			}
		} else if !isURLCodePoint(r) {
			report.report(ValidationInvalidURLUnit)
		}
	}
	if input == "" {
		return Host{Kind: HostEmpty}, nil
	}
	return Host{Kind: HostOpaque, Name: percent.EncodeString(input, &percent.C0Control)}, nil
}

func isForbiddenHostByte(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\r', ' ', '#', '/', ':', '<', '>', '?', '@', '[', '\\', ']', '^', '|':
		return true
	}
	return false
}

func isForbiddenDomainByte(c byte) bool {
	return isForbiddenHostByte(c) || c <= 0x1f || c == '%' || c == 0x7f
}

// isURLCodePoint reports whether r may appear unescaped in a valid URL
// string. '%' is handled separately by callers.
func isURLCodePoint(r rune) bool {
	if r < 0x80 {
		if isASCIIAlphanumeric(r) {
			return true
		}
		return strings.ContainsRune("!$&'()*+,-./:;=?@_~", r)
	}
	if r < 0xa0 || r > 0x10fffd {
		return false
	}
	if r >= 0xd800 && r <= 0xdfff {
		return false
	}
	// noncharacters
	if r >= 0xfdd0 && r <= 0xfdef {
		return false
	}
	if r&0xfffe == 0xfffe {
		return false
	}
	return true
}

func isASCIIAlpha(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isASCIIDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlpha(r) || isASCIIDigit(r)
}

func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}
