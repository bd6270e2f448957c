package url

import (
	"strconv"
	"strings"
)

// ipv4Overflow caps parsed numbers; anything at or above it is out of range
// for every part position.
const ipv4Overflow = 1 << 33

// endsInNumber reports whether the last label of a domain is numeric in a
// way that makes the whole host an IPv4 candidate.
func endsInNumber(domain string) bool {
	parts := strings.Split(domain, ".")
	if parts[len(parts)-1] == "" {
		if len(parts) == 1 {
			return false
		}
		parts = parts[:len(parts)-1]
	}
	last := parts[len(parts)-1]
	if last != "" && strings.Trim(last, "0123456789") == "" {
		return true
	}
	_, _, ok := parseIPv4Number(last)
	return ok
}

// parseIPv4Number parses one dotted part. Prefixes "0x"/"0X" select hex and
// a leading "0" selects octal; either sets nonDecimal.
func parseIPv4Number(s string) (n uint64, nonDecimal bool, ok bool) {
	if s == "" {
		return 0, false, false
	}
	radix := uint64(10)
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		nonDecimal = true
		s = s[2:]
		radix = 16
	} else if len(s) >= 2 && s[0] == '0' {
		nonDecimal = true
		s = s[1:]
		radix = 8
	}
	if s == "" {
		return 0, nonDecimal, true
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d uint64
		switch {
		case '0' <= c && c <= '9':
			d = uint64(c - '0')
		case 'a' <= c && c <= 'f':
			d = uint64(c-'a') + 10
		case 'A' <= c && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			return 0, nonDecimal, false
		}
		if d >= radix {
			return 0, nonDecimal, false
		}
		if n < ipv4Overflow {
			n = n*radix + d
		}
	}
	return n, nonDecimal, true
}

// parseIPv4 parses a host that ends in a number. Up to four parts are
// accepted; the last part absorbs all remaining bytes of the address.
func parseIPv4(input string, report reportFunc) (uint32, bool) {
	parts := strings.Split(input, ".")
	if parts[len(parts)-1] == "" {
		report.report(ValidationIPv4EmptyPart)
		if len(parts) > 1 {
			parts = parts[:len(parts)-1]
		}
	}
	if len(parts) > 4 {
		report.report(ValidationIPv4TooManyParts)
		return 0, false
	}

	var numbers [4]uint64
	for i, part := range parts {
		n, nonDecimal, ok := parseIPv4Number(part)
		if !ok {
			report.report(ValidationIPv4NonNumericPart)
			return 0, false
		}
		if nonDecimal {
			report.report(ValidationIPv4NonDecimalPart)
		}
		numbers[i] = n
	}

	last := len(parts) - 1
	for i := 0; i <= last; i++ {
		if numbers[i] > 255 {
			report.report(ValidationIPv4OutOfRangePart)
			if i != last {
				return 0, false
			}
		}
	}
	if numbers[last] >= 1<<(8*(5-len(parts))) {
		return 0, false
	}

	ipv4 := numbers[last]
	for i := 0; i < last; i++ {
		ipv4 += numbers[i] << (8 * (3 - i))
	}
	return uint32(ipv4), true
}

func appendIPv4(dst []byte, v uint32) []byte {
	for i := 3; i >= 0; i-- {
		dst = strconv.AppendUint(dst, uint64(v>>(8*i)&0xff), 10)
		if i != 0 {
			dst = append(dst, '.')
		}
	}
	return dst
}
