package url

import "io"

// ParseResult holds the result of lenient parsing.
type ParseResult struct {
	URL      *URL              // nil when parsing failed
	Warnings []ValidationError // every validation error, in input order
}

// ParseLenient parses input and collects every validation error instead of
// discarding them. The error is only non-nil for fatal problems; Warnings is
// populated either way.
func ParseLenient(input string) (*ParseResult, error) {
	result := &ParseResult{}
	p := Parser{OnValidationError: func(v ValidationError) {
		result.Warnings = append(result.Warnings, v)
	}}
	u, err := p.Parse(input)
	result.URL = u
	return result, err
}

// Validate checks that input is a valid URL string: it must parse, and the
// parse must not report any validation error. Returns nil if valid, the
// fatal *ParseError, or the first ValidationError.
func Validate(input string) error {
	result, err := ParseLenient(input)
	if err != nil {
		return err
	}
	if len(result.Warnings) > 0 {
		return result.Warnings[0]
	}
	return nil
}

// ValidateReader reads all data from r and validates it as a URL string.
func ValidateReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return Validate(string(data))
}
