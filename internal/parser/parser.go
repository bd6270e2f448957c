// Package parser implements an AST parser for application/x-www-form-urlencoded
// input. It produces shape-core AST nodes (ArrayDataNode, ObjectNode,
// LiteralNode) from a form body or URL query.
//
// The form is mapped to an ArrayDataNode of name/value objects, in input
// order, with duplicates kept:
//
//	[{"name": "q", "value": "shape url"}, {"name": "page", "value": "2"}]
package parser

import (
	"fmt"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/shape-url/internal/percent"
	"github.com/shapestone/shape-url/internal/tokenizer"
)

var zeroPos = ast.Position{}

// Pair is one decoded name/value sequence.
type Pair struct {
	Name  string
	Value string
}

// Parser produces pairs and AST nodes from form-urlencoded data.
type Parser struct {
	data string
}

// NewParser creates a new form parser for the given input.
func NewParser(data string) *Parser {
	return &Parser{data: data}
}

// Pairs tokenizes the input and decodes every non-empty sequence. The name
// ends at the first '='; later '=' belong to the value.
func (p *Parser) Pairs() ([]Pair, error) {
	if p.data == "" {
		return nil, nil
	}
	tok := tokenizer.NewTokenizer()
	tok.Initialize(p.data)
	tokens, eos := tok.Tokenize()
	if !eos {
		return nil, fmt.Errorf("form: unexpected input after %d tokens", len(tokens))
	}

	var pairs []Pair
	var name, value strings.Builder
	seenEquals, nonEmpty := false, false
	flush := func() {
		if nonEmpty {
			pairs = append(pairs, Pair{Name: decode(name.String()), Value: decode(value.String())})
		}
		name.Reset()
		value.Reset()
		seenEquals, nonEmpty = false, false
	}

	for _, t := range tokens {
		switch t.Kind() {
		case tokenizer.TokenAmpersand:
			flush()
		case tokenizer.TokenEquals:
			nonEmpty = true
			if seenEquals {
				value.WriteByte('=')
			}
			seenEquals = true
		default:
			nonEmpty = true
			if seenEquals {
				value.WriteString(t.ValueString())
			} else {
				name.WriteString(t.ValueString())
			}
		}
	}
	flush()
	return pairs, nil
}

// Parse parses the input and returns an AST ArrayDataNode.
func (p *Parser) Parse() (ast.SchemaNode, error) {
	pairs, err := p.Pairs()
	if err != nil {
		return nil, err
	}
	return PairsToNode(pairs), nil
}

// decode maps '+' to space, percent-decodes, and replaces invalid UTF-8.
func decode(s string) string {
	return percent.DecodeString(strings.ReplaceAll(s, "+", " "))
}

// PairsToNode converts pairs to an AST array of name/value objects.
func PairsToNode(pairs []Pair) ast.SchemaNode {
	elements := make([]ast.SchemaNode, len(pairs))
	for i, pr := range pairs {
		elements[i] = ast.NewObjectNode(map[string]ast.SchemaNode{
			"name":  ast.NewLiteralNode(pr.Name, zeroPos),
			"value": ast.NewLiteralNode(pr.Value, zeroPos),
		}, zeroPos)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

// NodeToPairs converts an AST array of name/value objects back to pairs.
// Elements that are not objects are skipped.
func NodeToPairs(node ast.SchemaNode) ([]Pair, error) {
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected ArrayDataNode for pairs, got %T", node)
	}

	elements := arr.Elements()
	pairs := make([]Pair, 0, len(elements))
	for _, elem := range elements {
		obj, ok := elem.(*ast.ObjectNode)
		if !ok {
			continue
		}
		props := obj.Properties()
		var pr Pair
		if v, ok := props["name"]; ok {
			if lit, ok := v.(*ast.LiteralNode); ok {
				pr.Name, _ = lit.Value().(string)
			}
		}
		if v, ok := props["value"]; ok {
			if lit, ok := v.(*ast.LiteralNode); ok {
				pr.Value, _ = lit.Value().(string)
			}
		}
		pairs = append(pairs, pr)
	}

	return pairs, nil
}
