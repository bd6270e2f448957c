// Package tokenizer provides application/x-www-form-urlencoded tokenization
// using Shape's tokenizer framework.
package tokenizer

// Token type constants for form-urlencoded input.
// A form body is a flat '&'-separated list of name[=value] sequences.
const (
	TokenAmpersand = "Ampersand" // & between sequences
	TokenEquals    = "Equals"    // = between name and value
	TokenText      = "Text"      // run of bytes that is neither & nor =
)
