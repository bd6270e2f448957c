package url

import (
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
)

// Parser holds parse options. The zero value parses absolute URLs with
// UTF-8 queries and discards validation errors. A Parser must not be copied
// after first use.
type Parser struct {
	// Base resolves relative input. Nil means input must be absolute.
	Base *URL
	// Encoding, when set, encodes the query of http, https, ftp and file
	// URLs before percent-encoding.
	Encoding encoding.Encoding
	// OnValidationError receives every non-fatal validation error.
	OnValidationError func(ValidationError)
	// LogOutput enables debug logging of validation errors.
	LogOutput io.Writer

	Logger      zerolog.Logger
	initLogOnce sync.Once
}

// Log returns the parser's logger, built from LogOutput on first use.
func (p *Parser) Log() *zerolog.Logger {
	if p.LogOutput != nil {
		p.initLogOnce.Do(func() {
			p.Logger = zerolog.New(p.LogOutput).With().Timestamp().Str("component", "url").Logger()
		})
	}
	return &p.Logger
}

// Parse parses an absolute URL.
func Parse(input string) (*URL, error) {
	var p Parser
	return p.Parse(input)
}

// MustParse is like Parse but panics on error. It is intended for tests and
// package-level variables.
func MustParse(input string) *URL {
	u, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return u
}

// ParseRef parses input relative to base. A nil base behaves like Parse.
func ParseRef(base *URL, input string) (*URL, error) {
	p := Parser{Base: base}
	return p.Parse(input)
}

// Join resolves ref against u.
func (u *URL) Join(ref string) (*URL, error) {
	return ParseRef(u, ref)
}

// Parse parses input, resolving it against p.Base when it is relative.
func (p *Parser) Parse(input string) (*URL, error) {
	m := p.newMachine(input, true)
	if p.Base != nil {
		m.base = p.Base.decompose()
	}
	m.url = newRecord()
	if err := m.run(stateSchemeStart); err != nil {
		return nil, newParseError(input, err)
	}
	return m.url.build(), nil
}

// reporter returns the validation sink, or nil when nobody listens.
func (p *Parser) reporter() func(ValidationKind, int) {
	if p.OnValidationError == nil && p.LogOutput == nil {
		return nil
	}
	return func(k ValidationKind, pos int) {
		p.Log().Debug().Str("kind", k.String()).Int("position", pos).Msg("url validation error")
		if p.OnValidationError != nil {
			p.OnValidationError(ValidationError{Kind: k, Position: pos})
		}
	}
}

func (p *Parser) newMachine(input string, trim bool) *machine {
	report := p.reporter()
	if trim {
		trimmed := strings.TrimFunc(input, isC0ControlOrSpace)
		if trimmed != input && report != nil {
			report(ValidationInvalidURLUnit, -1)
		}
		input = trimmed
	}
	if strings.ContainsAny(input, "\t\n\r") {
		if report != nil {
			report(ValidationInvalidURLUnit, -1)
		}
		input = stripTabAndNewline(input)
	}
	return &machine{
		input:    []rune(input),
		encoding: p.Encoding,
		report:   report,
	}
}

func isC0ControlOrSpace(r rune) bool {
	return r <= 0x20
}

func stripTabAndNewline(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
