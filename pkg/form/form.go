// Package form parses and serializes application/x-www-form-urlencoded
// data, the format of HTML form submissions and of most URL queries.
//
// Parsing splits on '&', then on the first '=', maps '+' to a space and
// percent-decodes each side; bytes that do not form valid UTF-8 become
// U+FFFD. Serialization is the inverse, with space written as '+'.
//
// # Thread Safety
//
// Pairs is a plain slice: concurrent reads are safe, mutation is not.
package form

import (
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
	"golang.org/x/text/encoding"

	"github.com/shapestone/shape-url/internal/parser"
	"github.com/shapestone/shape-url/internal/percent"
)

// Pair is one name/value entry.
type Pair struct {
	Name  string
	Value string
}

// Pairs is an ordered list of entries. Names may repeat.
type Pairs []Pair

// Parse decodes a form-urlencoded string. A leading '?' is not stripped.
func Parse(query string) Pairs {
	// The tokenizer accepts every code point, so Pairs cannot fail here.
	internal, _ := parser.NewParser(query).Pairs()
	if len(internal) == 0 {
		return nil
	}
	pairs := make(Pairs, len(internal))
	for i, p := range internal {
		pairs[i] = Pair{Name: p.Name, Value: p.Value}
	}
	return pairs
}

// ParseNode decodes a form-urlencoded string into an AST array of
// {"name", "value"} objects.
func ParseNode(query string) (ast.SchemaNode, error) {
	return parser.NewParser(query).Parse()
}

// NodeToPairs converts an AST array produced by ParseNode back to Pairs.
func NodeToPairs(node ast.SchemaNode) (Pairs, error) {
	internal, err := parser.NodeToPairs(node)
	if err != nil {
		return nil, err
	}
	pairs := make(Pairs, len(internal))
	for i, p := range internal {
		pairs[i] = Pair{Name: p.Name, Value: p.Value}
	}
	return pairs, nil
}

// Encode serializes p as UTF-8 form-urlencoded text.
func (p Pairs) Encode() string {
	return p.EncodeWith(nil)
}

// EncodeWith serializes p, first converting names and values to enc. Runes
// enc cannot represent are written as HTML numeric character references.
// A nil enc means UTF-8.
func (p Pairs) EncodeWith(enc encoding.Encoding) string {
	var b []byte
	for i, pr := range p {
		if i > 0 {
			b = append(b, '&')
		}
		b = appendEncoded(b, pr.Name, enc)
		b = append(b, '=')
		b = appendEncoded(b, pr.Value, enc)
	}
	return string(b)
}

func appendEncoded(dst []byte, s string, enc encoding.Encoding) []byte {
	s = strings.ToValidUTF8(s, "\uFFFD")
	if enc == nil {
		return percent.AppendString(dst, s, &percent.FormURLEncoded, true)
	}
	raw, err := encoding.HTMLEscapeUnsupported(enc.NewEncoder()).String(s)
	if err != nil {
		raw = s
	}
	return percent.AppendString(dst, raw, &percent.FormURLEncoded, true)
}

// Get returns the value of the first entry named name.
func (p Pairs) Get(name string) (string, bool) {
	for _, pr := range p {
		if pr.Name == name {
			return pr.Value, true
		}
	}
	return "", false
}

// Has reports whether an entry named name exists.
func (p Pairs) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Values returns the values of every entry named name, in order.
func (p Pairs) Values(name string) []string {
	var out []string
	for _, pr := range p {
		if pr.Name == name {
			out = append(out, pr.Value)
		}
	}
	return out
}

// Add appends an entry.
func (p *Pairs) Add(name, value string) {
	*p = append(*p, Pair{Name: name, Value: value})
}

// Set replaces the value of the first entry named name and removes the
// others, or appends an entry when there is none.
func (p *Pairs) Set(name, value string) {
	found := false
	out := (*p)[:0]
	for _, pr := range *p {
		if pr.Name != name {
			out = append(out, pr)
			continue
		}
		if !found {
			found = true
			out = append(out, Pair{Name: name, Value: value})
		}
	}
	if !found {
		out = append(out, Pair{Name: name, Value: value})
	}
	*p = out
}

// Del removes every entry named name.
func (p *Pairs) Del(name string) {
	out := (*p)[:0]
	for _, pr := range *p {
		if pr.Name != name {
			out = append(out, pr)
		}
	}
	*p = out
}
