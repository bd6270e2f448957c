// Package percent implements the percent-encode sets of the URL Standard and
// the byte-level encode/decode primitives the URL parser builds on.
package percent

import (
	"strings"
	"unicode/utf8"
)

const upperhex = "0123456789ABCDEF"

// EncodeSet is a set of ASCII bytes that must be percent-encoded.
// Bytes >= 0x80 are always members.
type EncodeSet struct {
	bits [4]uint32
}

// Contains reports whether b must be encoded.
func (s *EncodeSet) Contains(b byte) bool {
	if b >= 0x80 {
		return true
	}
	return s.bits[b>>5]&(1<<(b&31)) != 0
}

func (s EncodeSet) with(chars string) EncodeSet {
	for i := 0; i < len(chars); i++ {
		c := chars[i]
		s.bits[c>>5] |= 1 << (c & 31)
	}
	return s
}

func c0ControlSet() EncodeSet {
	var s EncodeSet
	for c := byte(0); c < 0x20; c++ {
		s.bits[c>>5] |= 1 << (c & 31)
	}
	// DEL
	s.bits[0x7f>>5] |= 1 << (0x7f & 31)
	return s
}

// Named encode sets, each a superset of the one it is derived from.
var (
	C0Control      = c0ControlSet()
	Fragment       = C0Control.with(" \"<>`")
	Query          = C0Control.with(" \"#<>")
	SpecialQuery   = Query.with("'")
	Path           = Query.with("?`{}")
	PathSegment    = Path.with("/%")
	Userinfo       = Path.with("/:;=@[\\]^|")
	Component      = Userinfo.with("$%&+,")
	FormURLEncoded = Component.with("!'()~")
)

// AppendByte appends the %XX form of b.
func AppendByte(dst []byte, b byte) []byte {
	return append(dst, '%', upperhex[b>>4], upperhex[b&15])
}

// AppendRune appends the UTF-8 percent-encoding of r against set.
func AppendRune(dst []byte, r rune, set *EncodeSet) []byte {
	if r < utf8.RuneSelf {
		b := byte(r)
		if set.Contains(b) {
			return AppendByte(dst, b)
		}
		return append(dst, b)
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	for _, b := range buf[:n] {
		dst = AppendByte(dst, b)
	}
	return dst
}

// AppendBytes percent-encodes raw bytes against set. When spaceAsPlus is
// set, 0x20 is written as '+'.
func AppendBytes(dst []byte, src []byte, set *EncodeSet, spaceAsPlus bool) []byte {
	for _, b := range src {
		switch {
		case spaceAsPlus && b == ' ':
			dst = append(dst, '+')
		case set.Contains(b):
			dst = AppendByte(dst, b)
		default:
			dst = append(dst, b)
		}
	}
	return dst
}

// AppendString percent-encodes the UTF-8 bytes of s against set.
func AppendString(dst []byte, s string, set *EncodeSet, spaceAsPlus bool) []byte {
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case spaceAsPlus && b == ' ':
			dst = append(dst, '+')
		case set.Contains(b):
			dst = AppendByte(dst, b)
		default:
			dst = append(dst, b)
		}
	}
	return dst
}

// EncodeString returns s percent-encoded against set. Invalid UTF-8 is
// replaced by U+FFFD first.
func EncodeString(s string, set *EncodeSet) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	for i := 0; i < len(s); i++ {
		if set.Contains(s[i]) {
			return string(AppendString([]byte(s[:i]), s[i:], set, false))
		}
	}
	return s
}

// IsHex reports whether b is an ASCII hex digit.
func IsHex(b byte) bool {
	return '0' <= b && b <= '9' || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}

func unhex(b byte) byte {
	switch {
	case '0' <= b && b <= '9':
		return b - '0'
	case 'a' <= b && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

// DecodeTriplet decodes the "%XX" at the start of s.
func DecodeTriplet(s string) (byte, bool) {
	if len(s) < 3 || s[0] != '%' || !IsHex(s[1]) || !IsHex(s[2]) {
		return 0, false
	}
	return unhex(s[1])<<4 | unhex(s[2]), true
}

// Decode percent-decodes s. Malformed triplets are kept verbatim.
func Decode(s string) []byte {
	if strings.IndexByte(s, '%') < 0 {
		return []byte(s)
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if b, ok := DecodeTriplet(s[i:]); ok {
			out = append(out, b)
			i += 2
			continue
		}
		out = append(out, s[i])
	}
	return out
}

// DecodeString percent-decodes s and UTF-8 decodes the result, replacing
// invalid sequences with U+FFFD.
func DecodeString(s string) string {
	return ToValidUTF8(Decode(s))
}

// ToValidUTF8 converts b to a string, replacing each invalid UTF-8 byte
// with U+FFFD.
func ToValidUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b) + 8)
	for len(b) > 0 {
		r, n := utf8.DecodeRune(b)
		sb.WriteRune(r)
		b = b[n:]
	}
	return sb.String()
}
