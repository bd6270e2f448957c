package percent

import (
	"testing"
)

func TestEncodeSets(t *testing.T) {
	tests := []struct {
		name string
		set  *EncodeSet
		in   byte
		want bool
	}{
		{"c0 nul", &C0Control, 0x00, true},
		{"c0 del", &C0Control, 0x7f, true},
		{"c0 space", &C0Control, ' ', false},
		{"c0 high", &C0Control, 0xe9, true},
		{"fragment space", &Fragment, ' ', true},
		{"fragment backtick", &Fragment, '`', true},
		{"fragment hash", &Fragment, '#', false},
		{"query hash", &Query, '#', true},
		{"query apostrophe", &Query, '\'', false},
		{"special query apostrophe", &SpecialQuery, '\'', true},
		{"path question", &Path, '?', true},
		{"path braces", &Path, '{', true},
		{"path slash", &Path, '/', false},
		{"userinfo colon", &Userinfo, ':', true},
		{"userinfo backslash", &Userinfo, '\\', true},
		{"userinfo tilde", &Userinfo, '~', false},
		{"component plus", &Component, '+', true},
		{"component percent", &Component, '%', true},
		{"form tilde", &FormURLEncoded, '~', true},
		{"form star", &FormURLEncoded, '*', false},
		{"form dash", &FormURLEncoded, '-', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Contains(tt.in); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAppendRune(t *testing.T) {
	tests := []struct {
		in   rune
		set  *EncodeSet
		want string
	}{
		{'a', &Path, "a"},
		{' ', &Path, "%20"},
		{'é', &C0Control, "%C3%A9"},
		{'💩', &Fragment, "%F0%9F%92%A9"},
	}

	for _, tt := range tests {
		got := string(AppendRune(nil, tt.in, tt.set))
		if got != tt.want {
			t.Errorf("AppendRune(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodeString(t *testing.T) {
	if got := EncodeString("a b&c", &FormURLEncoded); got != "a%20b%26c" {
		t.Errorf("EncodeString = %q", got)
	}
	if got := EncodeString("plain", &Path); got != "plain" {
		t.Errorf("EncodeString = %q, want unchanged", got)
	}
	if got := string(AppendString(nil, "a b", &FormURLEncoded, true)); got != "a+b" {
		t.Errorf("AppendString spaceAsPlus = %q", got)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc", "abc"},
		{"%41%42", "AB"},
		{"%4", "%4"},
		{"%zz%41", "%zzA"},
		{"100%", "100%"},
		{"%c3%a9", "é"},
	}

	for _, tt := range tests {
		if got := string(Decode(tt.in)); got != tt.want {
			t.Errorf("Decode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeString_InvalidUTF8(t *testing.T) {
	if got := DecodeString("%ff"); got != "�" {
		t.Errorf("DecodeString(%%ff) = %q", got)
	}
}

func TestDecodeTriplet(t *testing.T) {
	if b, ok := DecodeTriplet("%2f"); !ok || b != '/' {
		t.Errorf("DecodeTriplet(%%2f) = %q, %v", b, ok)
	}
	if _, ok := DecodeTriplet("%2"); ok {
		t.Error("DecodeTriplet(%2) should fail")
	}
	if _, ok := DecodeTriplet("x2f"); ok {
		t.Error("DecodeTriplet(x2f) should fail")
	}
}
