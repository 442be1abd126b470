// Package ast defines the expression tree nodes produced by the parser and
// re-emitted, fully typed, by the type checker. There are only two node shapes:
// literals and lambda (operator) calls — no statements, no declarations.
package ast

import (
	"fmt"
	"strconv"

	"github.com/cartoexpr/mapexpr/internal/types"
)

// Node is the sum type every expression-tree node implements.
type Node interface {
	// Key is the dotted diagnostic path identifying this node's position
	// within the original input ("" for root, "1", "1.2", ...).
	Key() string
	// Type is the node's type: concrete for a checked tree, possibly still
	// carrying unresolved Typenames (inside a Lambda scheme) before checking.
	Type() types.Type
}

// LiteralValue is the underlying Go value of a Literal node: nil, string,
// float64, or bool — the four bare JSON literal forms — or, for a value
// wrapped by the `literal` operator, a []interface{} or map[string]interface{}.
type LiteralValue = interface{}

// Literal is a JSON literal lifted into the tree.
type Literal struct {
	NodeKey string
	Value   LiteralValue
	Typ     types.Type
}

func (l *Literal) Key() string      { return l.NodeKey }
func (l *Literal) Type() types.Type { return l.Typ }

// Call is an operator application: [op, arg1, arg2, ...].
type Call struct {
	NodeKey string
	Name    string
	Typ     types.Type // types.Lambda, concrete after checking
	Args    []Node
}

func (c *Call) Key() string      { return c.NodeKey }
func (c *Call) Type() types.Type { return c.Typ }

// ChildKey builds the dotted diagnostic key for the (1-based) i-th child of
// a node whose own key is parentKey.
func ChildKey(parentKey string, i int) string {
	if parentKey == "" {
		return strconv.Itoa(i)
	}
	return parentKey + "." + strconv.Itoa(i)
}

// InferLiteralType returns the primitive type assigned to a raw JSON
// literal value (or an absent/undefined value, which is Null).
func InferLiteralType(v LiteralValue) types.Type {
	switch v.(type) {
	case nil:
		return types.Null
	case string:
		return types.String
	case float64:
		return types.Number
	case bool:
		return types.Boolean
	default:
		return types.Null
	}
}

// InferLiteralShapeType widens InferLiteralType to the shapes the `literal`
// operator can wrap: an array becomes Vector<Value> and a JSON object
// becomes Object, in addition to the four bare primitive forms.
func InferLiteralShapeType(v LiteralValue) types.Type {
	switch v.(type) {
	case []interface{}:
		return types.Vector{Item: types.Value}
	case map[string]interface{}:
		return types.Object
	default:
		return InferLiteralType(v)
	}
}

// Serialize re-emits a checked or unchecked tree as a JSON-shaped value:
// literals become their bare value, lambda calls become
// [name, ...serialized-children].
func Serialize(n Node) interface{} {
	switch node := n.(type) {
	case *Literal:
		switch node.Value.(type) {
		case []interface{}, map[string]interface{}:
			// Round-tripping an array/object shaped literal as a bare JSON
			// value would re-parse as a call (or fail to parse at all); it
			// must come back wrapped in ["literal", ...] the way it was
			// written, per the `literal` operator's parsing rule.
			return []interface{}{"literal", node.Value}
		default:
			return node.Value
		}
	case *Call:
		out := make([]interface{}, 0, len(node.Args)+1)
		out = append(out, node.Name)
		for _, a := range node.Args {
			out = append(out, Serialize(a))
		}
		return out
	default:
		panic(fmt.Sprintf("ast.Serialize: unknown node type %T", n))
	}
}
