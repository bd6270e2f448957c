package url

import (
	"errors"
	"strings"
	"testing"
)

func TestParseError_TruncatesInput(t *testing.T) {
	input := "http://[" + strings.Repeat("é", 400000)
	_, err := Parse(input)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
	if pe.Input != input {
		t.Error("ParseError.Input should keep the full input")
	}
	msg := err.Error()
	if len(msg) > 200 {
		t.Errorf("Error() has length %d, want a short message", len(msg))
	}
	want := `url: parse "http://[` + strings.Repeat("é", 56) + "…\": invalid IPv6 address"
	if msg != want {
		t.Errorf("Error() = %q, want %q", msg, want)
	}
}

func TestParseError_ShortInputUnchanged(t *testing.T) {
	err := &ParseError{Input: "http://", Err: ErrEmptyHost}
	if got, want := err.Error(), `url: parse "http://": empty host`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	exact := strings.Repeat("a", maxEchoed)
	if got := truncate(exact); got != exact {
		t.Errorf("truncate() shortened a %d code point input", maxEchoed)
	}
	if got := truncate(exact + "b"); got != exact+"…" {
		t.Errorf("truncate() = %q", got)
	}
}

func TestSetterError_TruncatesValue(t *testing.T) {
	u := MustParse("https://example.com/")
	value := strings.Repeat("9", 100000)
	err := u.SetPort(value)
	if !errors.Is(err, ErrInvalidPort) {
		t.Fatalf("SetPort() error = %v, want ErrInvalidPort", err)
	}
	if len(err.Error()) > 200 {
		t.Errorf("Error() has length %d, want a short message", len(err.Error()))
	}
}
