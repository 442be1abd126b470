package registry

import (
	"reflect"

	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/color"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// registerComparison registers ==, !=, >, <, >=, <=, each generic in a
// single Typename T over its two operands. == and != use strict value
// equality, never a coercive equality over Value.
func registerComparison(r *Registry) {
	generic := func(name string, fn func(a, b interface{}) (bool, error)) {
		r.register(Definition{
			Name: name,
			Type: types.Lambda{Result: types.Boolean, Args: []types.Type{types.Typename{Name: "T"}, types.Typename{Name: "T"}}},
			Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
				return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
					a, err := args[0].Eval(ctx)
					if err != nil {
						return nil, err
					}
					b, err := args[1].Eval(ctx)
					if err != nil {
						return nil, err
					}
					return fn(a, b)
				}}
			},
		})
	}

	generic("==", func(a, b interface{}) (bool, error) { return valueEqual(a, b), nil })
	generic("!=", func(a, b interface{}) (bool, error) { return !valueEqual(a, b), nil })
	generic(">", func(a, b interface{}) (bool, error) { c, err := valueCompare(a, b); return c > 0, err })
	generic("<", func(a, b interface{}) (bool, error) { c, err := valueCompare(a, b); return c < 0, err })
	generic(">=", func(a, b interface{}) (bool, error) { c, err := valueCompare(a, b); return c >= 0, err })
	generic("<=", func(a, b interface{}) (bool, error) { c, err := valueCompare(a, b); return c <= 0, err })
}

// valueEqual implements strict value equality: colors compare
// componentwise, objects and arrays compare structurally via
// reflect.DeepEqual, everything else by identity of the underlying Go
// value.
func valueEqual(a, b interface{}) bool {
	if ac, ok := a.(color.RGBA); ok {
		bc, ok := b.(color.RGBA)
		return ok && ac == bc
	}
	return reflect.DeepEqual(a, b)
}

// valueCompare orders two operands of the same runtime type, returning
// -1/0/1. Only Number and String have a natural ordering; anything else
// raises a RuntimeError.
func valueCompare(a, b interface{}) (int, error) {
	switch av := a.(type) {
	case float64:
		bv := b.(float64)
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case string:
		bv := b.(string)
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, &evalctx.RuntimeError{Message: "Cannot order values of type " + evalctx.TypeOf(a) + "."}
	}
}
