package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewTokenizer creates a tokenizer for form-urlencoded input.
// Every code point is significant, so no whitespace skipping is done:
// 1. Ampersand (sequence separator)
// 2. Equals (name/value separator)
// 3. Text (everything else)
func NewTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenAmpersand, "&"),
		tokenizer.StringMatcherFunc(TokenEquals, "="),
		TextMatcher(),
	)
}

// NewTokenizerWithStream creates a form tokenizer using a pre-configured stream.
func NewTokenizerWithStream(stream tokenizer.Stream) tokenizer.Tokenizer {
	tok := NewTokenizer()
	tok.InitializeFromStream(stream)
	return tok
}

// TextMatcher matches any sequence of characters until '&', '=' or EOS.
func TextMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune

		for {
			r, ok := stream.PeekChar()
			if !ok {
				break
			}
			if r == '&' || r == '=' {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}

		if len(value) == 0 {
			return nil
		}

		return tokenizer.NewToken(TokenText, value)
	}
}
