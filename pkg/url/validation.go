package url

import "fmt"

// ValidationKind names a non-fatal (or, when parsing fails, the triggering)
// validation error. The names follow the URL Standard's error table.
type ValidationKind uint8

const (
	ValidationDomainToASCII ValidationKind = iota + 1
	ValidationDomainToUnicode
	ValidationDomainInvalidCodePoint
	ValidationHostInvalidCodePoint
	ValidationIPv4EmptyPart
	ValidationIPv4TooManyParts
	ValidationIPv4NonNumericPart
	ValidationIPv4NonDecimalPart
	ValidationIPv4OutOfRangePart
	ValidationIPv6Unclosed
	ValidationIPv6InvalidCompression
	ValidationIPv6TooManyPieces
	ValidationIPv6MultipleCompression
	ValidationIPv6InvalidCodePoint
	ValidationIPv6TooFewPieces
	ValidationIPv4InIPv6TooManyPieces
	ValidationIPv4InIPv6InvalidCodePoint
	ValidationIPv4InIPv6OutOfRangePart
	ValidationIPv4InIPv6TooFewParts
	ValidationInvalidURLUnit
	ValidationSpecialSchemeMissingFollowingSolidus
	ValidationMissingSchemeNonRelativeURL
	ValidationInvalidReverseSolidus
	ValidationInvalidCredentials
	ValidationHostMissing
	ValidationPortOutOfRange
	ValidationPortInvalid
	ValidationFileInvalidWindowsDriveLetter
	ValidationFileInvalidWindowsDriveLetterHost
	ValidationRedundantDefaultPort
	ValidationEmptyPassword
	ValidationInvalidPercentEncoding
)

var validationNames = [...]string{
	ValidationDomainToASCII:                        "domain-to-ASCII",
	ValidationDomainToUnicode:                      "domain-to-Unicode",
	ValidationDomainInvalidCodePoint:               "domain-invalid-code-point",
	ValidationHostInvalidCodePoint:                 "host-invalid-code-point",
	ValidationIPv4EmptyPart:                        "IPv4-empty-part",
	ValidationIPv4TooManyParts:                     "IPv4-too-many-parts",
	ValidationIPv4NonNumericPart:                   "IPv4-non-numeric-part",
	ValidationIPv4NonDecimalPart:                   "IPv4-non-decimal-part",
	ValidationIPv4OutOfRangePart:                   "IPv4-out-of-range-part",
	ValidationIPv6Unclosed:                         "IPv6-unclosed",
	ValidationIPv6InvalidCompression:               "IPv6-invalid-compression",
	ValidationIPv6TooManyPieces:                    "IPv6-too-many-pieces",
	ValidationIPv6MultipleCompression:              "IPv6-multiple-compression",
	ValidationIPv6InvalidCodePoint:                 "IPv6-invalid-code-point",
	ValidationIPv6TooFewPieces:                     "IPv6-too-few-pieces",
	ValidationIPv4InIPv6TooManyPieces:              "IPv4-in-IPv6-too-many-pieces",
	ValidationIPv4InIPv6InvalidCodePoint:           "IPv4-in-IPv6-invalid-code-point",
	ValidationIPv4InIPv6OutOfRangePart:             "IPv4-in-IPv6-out-of-range-part",
	ValidationIPv4InIPv6TooFewParts:                "IPv4-in-IPv6-too-few-parts",
	ValidationInvalidURLUnit:                       "invalid-URL-unit",
	ValidationSpecialSchemeMissingFollowingSolidus: "special-scheme-missing-following-solidus",
	ValidationMissingSchemeNonRelativeURL:          "missing-scheme-non-relative-URL",
	ValidationInvalidReverseSolidus:                "invalid-reverse-solidus",
	ValidationInvalidCredentials:                   "invalid-credentials",
	ValidationHostMissing:                          "host-missing",
	ValidationPortOutOfRange:                       "port-out-of-range",
	ValidationPortInvalid:                          "port-invalid",
	ValidationFileInvalidWindowsDriveLetter:        "file-invalid-Windows-drive-letter",
	ValidationFileInvalidWindowsDriveLetterHost:    "file-invalid-Windows-drive-letter-host",
	ValidationRedundantDefaultPort:                 "redundant-default-port",
	ValidationEmptyPassword:                        "empty-password",
	ValidationInvalidPercentEncoding:               "invalid-percent-encoding",
}

// String returns the error table name of k.
func (k ValidationKind) String() string {
	if int(k) < len(validationNames) && validationNames[k] != "" {
		return validationNames[k]
	}
	return fmt.Sprintf("ValidationKind(%d)", uint8(k))
}

// ValidationError describes one validation error. Position is the index,
// in code points of the preprocessed input, where it was detected; -1 when
// the error is not tied to a position.
type ValidationError struct {
	Kind     ValidationKind
	Position int
}

// Error implements the error interface.
func (v ValidationError) Error() string {
	if v.Position >= 0 {
		return fmt.Sprintf("url: validation error %s at %d", v.Kind, v.Position)
	}
	return fmt.Sprintf("url: validation error %s", v.Kind)
}
