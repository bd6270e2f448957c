package url

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Render converts an AST node (from ParseNode or URLToNode) back to the URL
// serialization.
func Render(node ast.SchemaNode) (string, error) {
	if _, ok := node.(*ast.ObjectNode); !ok {
		return "", fmt.Errorf("url: Render: expected ObjectNode, got %T", node)
	}
	u, err := NodeToURL(node)
	if err != nil {
		return "", fmt.Errorf("url: Render: %w", err)
	}
	return u.String(), nil
}
