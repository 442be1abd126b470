// Package parser lifts arbitrary JSON-shaped input into an expression
// tree. It performs no inference — every Call node's type is the
// operator's declared scheme straight out of the registry, generics
// unresolved — all type discovery happens in the checker. There is no
// lexer here: the input already arrives as decoded JSON values
// (float64/string/bool/nil/[]interface{}/map[string]interface{}), so
// parsing means walking that already-tokenized shape.
package parser

import (
	"fmt"

	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/diag"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/registry"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// Parse lifts expr (a JSON-shaped Go value, e.g. the result of
// encoding/json.Unmarshal into interface{}) into an expression tree. It
// never stops at the first error: every node that fails to parse is
// recorded and its siblings are still parsed, so a single call surfaces
// every unknown-function/shape error in the input at once.
func Parse(expr interface{}, reg *registry.Registry) (ast.Node, diag.Diagnostics) {
	var diags diag.Diagnostics
	node := parseNode(expr, "", reg, &diags)
	diags.Sort()
	return node, diags
}

func parseNode(value interface{}, key string, reg *registry.Registry, diags *diag.Diagnostics) ast.Node {
	switch v := value.(type) {
	case nil, string, float64, bool:
		return &ast.Literal{NodeKey: key, Value: v, Typ: ast.InferLiteralType(v)}
	case []interface{}:
		return parseCall(v, key, reg, diags)
	default:
		diags.Add(key, "expected an array, but found %s instead.", evalctx.TypeOf(normalizeUnknown(value)))
		return &ast.Literal{NodeKey: key, Value: nil, Typ: ast.InferLiteralType(nil)}
	}
}

func parseCall(arr []interface{}, key string, reg *registry.Registry, diags *diag.Diagnostics) ast.Node {
	if len(arr) == 0 {
		diags.Add(key, "unknown function ")
		return &ast.Literal{NodeKey: key, Value: nil, Typ: ast.InferLiteralType(nil)}
	}

	name, ok := arr[0].(string)
	if !ok {
		diags.Add(key, "unknown function %v", arr[0])
		return &ast.Literal{NodeKey: key, Value: nil, Typ: ast.InferLiteralType(nil)}
	}

	def, found := reg.Lookup(name)
	if !found {
		diags.Add(key, "unknown function %s", name)
		return &ast.Literal{NodeKey: key, Value: nil, Typ: ast.InferLiteralType(nil)}
	}

	// `literal` is special: its single argument is an already-JSON-shaped
	// value that must be taken verbatim, never recursively parsed as a
	// nested operator call. This is how a style expression embeds a literal
	// array or object (e.g. ["literal", [1, 2, 3]]) without the engine
	// mistaking the first element for an operator name.
	if name == "literal" {
		if len(arr) != 2 {
			diags.Add(key, "Expected 1 arguments, but found %d instead.", len(arr)-1)
			return &ast.Literal{NodeKey: key, Value: nil, Typ: ast.InferLiteralType(nil)}
		}
		return &ast.Literal{NodeKey: key, Value: arr[1], Typ: ast.InferLiteralShapeType(arr[1])}
	}

	args := make([]ast.Node, 0, len(arr)-1)
	for i := 1; i < len(arr); i++ {
		childKey := ast.ChildKey(key, i)
		args = append(args, parseNode(arr[i], childKey, reg, diags))
	}

	instantiated := types.Instantiate(def.Type, key)
	return &ast.Call{NodeKey: key, Name: name, Typ: instantiated, Args: args}
}

// normalizeUnknown maps any JSON value outside the four literal forms
// (object, or a future JSON type) to something evalctx.TypeOf can name;
// today this only ever sees map[string]interface{} since encoding/json
// produces no other shapes, but it keeps this function total.
func normalizeUnknown(v interface{}) interface{} {
	switch v.(type) {
	case map[string]interface{}:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
