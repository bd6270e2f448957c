package url

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
)

var zeroPos = ast.Position{}

// ParseNode parses input into an AST.
//
//	{ "href": "https://user@example.com:8080/a/b?q=1#top",
//	  "scheme": "https", "username": "user", "password": "",
//	  "host": {"kind": "domain", "value": "example.com"},
//	  "port": 8080, "path": "/a/b", "segments": ["a", "b"],
//	  "query": "q=1", "fragment": "top",
//	  "origin": "https://example.com:8080" }
//
// "host", "port", "segments", "query" and "fragment" are omitted when the URL
// has no such component.
func ParseNode(input string) (ast.SchemaNode, error) {
	u, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return URLToNode(u), nil
}

// URLToNode converts a URL to an AST ObjectNode.
func URLToNode(u *URL) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"href":     ast.NewLiteralNode(u.String(), zeroPos),
		"scheme":   ast.NewLiteralNode(u.Scheme(), zeroPos),
		"username": ast.NewLiteralNode(u.Username(), zeroPos),
		"password": ast.NewLiteralNode(u.Password(), zeroPos),
		"path":     ast.NewLiteralNode(u.Path(), zeroPos),
		"origin":   ast.NewLiteralNode(u.Origin().String(), zeroPos),
	}
	if u.HasAuthority() {
		props["host"] = ast.NewObjectNode(map[string]ast.SchemaNode{
			"kind":  ast.NewLiteralNode(u.hostKind.String(), zeroPos),
			"value": ast.NewLiteralNode(u.Hostname(), zeroPos),
		}, zeroPos)
	}
	if port, ok := u.Port(); ok {
		props["port"] = ast.NewLiteralNode(int64(port), zeroPos)
	}
	if segments, ok := u.PathSegments(); ok {
		elements := make([]ast.SchemaNode, len(segments))
		for i, s := range segments {
			elements[i] = ast.NewLiteralNode(s, zeroPos)
		}
		props["segments"] = ast.NewArrayDataNode(elements, zeroPos)
	}
	if q, ok := u.Query(); ok {
		props["query"] = ast.NewLiteralNode(q, zeroPos)
	}
	if f, ok := u.Fragment(); ok {
		props["fragment"] = ast.NewLiteralNode(f, zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

// NodeToURL converts an AST ObjectNode back to a URL. When "href" is present
// it is parsed; otherwise the URL is assembled from the component properties
// and parsed, so the result is always canonical.
func NodeToURL(node ast.SchemaNode) (*URL, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, fmt.Errorf("url: expected ObjectNode, got %T", node)
	}
	props := obj.Properties()
	if href, ok := stringProp(props, "href"); ok {
		return Parse(href)
	}

	scheme, ok := stringProp(props, "scheme")
	if !ok || scheme == "" {
		return nil, fmt.Errorf("url: node has neither 'href' nor 'scheme'")
	}
	var b strings.Builder
	b.WriteString(scheme)
	b.WriteByte(':')
	if hostNode, ok := props["host"]; ok {
		b.WriteString("//")
		user, _ := stringProp(props, "username")
		pass, _ := stringProp(props, "password")
		if user != "" || pass != "" {
			b.WriteString(user)
			if pass != "" {
				b.WriteByte(':')
				b.WriteString(pass)
			}
			b.WriteByte('@')
		}
		b.WriteString(nodeToHost(hostNode))
		if portNode, ok := props["port"]; ok {
			port, err := nodeToPort(portNode)
			if err != nil {
				return nil, err
			}
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(port))
		}
	}
	if path, ok := stringProp(props, "path"); ok {
		b.WriteString(path)
	}
	if q, ok := stringProp(props, "query"); ok {
		b.WriteByte('?')
		b.WriteString(q)
	}
	if f, ok := stringProp(props, "fragment"); ok {
		b.WriteByte('#')
		b.WriteString(f)
	}
	return Parse(b.String())
}

// NodeToInterface converts an AST node to native Go types.
func NodeToInterface(node ast.SchemaNode) interface{} {
	switch n := node.(type) {
	case *ast.LiteralNode:
		return n.Value()
	case *ast.ArrayDataNode:
		elements := n.Elements()
		arr := make([]interface{}, len(elements))
		for i, elem := range elements {
			arr[i] = NodeToInterface(elem)
		}
		return arr
	case *ast.ObjectNode:
		props := n.Properties()
		m := make(map[string]interface{}, len(props))
		for k, v := range props {
			m[k] = NodeToInterface(v)
		}
		return m
	default:
		return nil
	}
}

func stringProp(props map[string]ast.SchemaNode, key string) (string, bool) {
	lit, ok := props[key].(*ast.LiteralNode)
	if !ok {
		return "", false
	}
	s, ok := lit.Value().(string)
	return s, ok
}

// nodeToHost accepts either a {kind, value} object or a bare string literal.
func nodeToHost(node ast.SchemaNode) string {
	switch n := node.(type) {
	case *ast.ObjectNode:
		s, _ := stringProp(n.Properties(), "value")
		return s
	case *ast.LiteralNode:
		s, _ := n.Value().(string)
		return s
	}
	return ""
}

func nodeToPort(node ast.SchemaNode) (int, error) {
	lit, ok := node.(*ast.LiteralNode)
	if !ok {
		return 0, fmt.Errorf("url: port is not a literal")
	}
	switch p := lit.Value().(type) {
	case int64:
		return int(p), nil
	case int:
		return p, nil
	case float64:
		return int(p), nil
	case string:
		return strconv.Atoi(p)
	}
	return 0, fmt.Errorf("url: unsupported port type %T", lit.Value())
}
