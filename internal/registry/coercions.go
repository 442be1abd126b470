package registry

import (
	"strconv"

	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// registerCoercions registers the Value-coercion operators:
// string/number/boolean force a conversion with the language's standard
// coercion rules, and json_array/object delegate straight to the
// evaluation context's shape-checking helpers.
func registerCoercions(r *Registry) {
	r.register(Definition{
		Name: "string",
		Type: types.Lambda{Result: types.String, Args: []types.Type{types.Value}},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				v, err := args[0].Eval(ctx)
				if err != nil {
					return nil, err
				}
				return evalctx.Stringify(v), nil
			}}
		},
	})

	r.register(Definition{
		Name: "number",
		Type: types.Lambda{Result: types.Number, Args: []types.Type{types.Value}},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				v, err := args[0].Eval(ctx)
				if err != nil {
					return nil, err
				}
				return toNumber(ctx, v)
			}}
		},
	})

	r.register(Definition{
		Name: "boolean",
		Type: types.Lambda{Result: types.Boolean, Args: []types.Type{types.Value}},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				v, err := args[0].Eval(ctx)
				if err != nil {
					return nil, err
				}
				return toBoolean(v), nil
			}}
		},
	})

	r.register(Definition{
		Name: "json_array",
		Type: types.Lambda{Result: types.Vector{Item: types.Value}, Args: []types.Type{types.Value}},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				v, err := args[0].Eval(ctx)
				if err != nil {
					return nil, err
				}
				return ctx.AsArray(v)
			}}
		},
	})

	r.register(Definition{
		Name: "object",
		Type: types.Lambda{Result: types.Object, Args: []types.Type{types.Value}},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				v, err := args[0].Eval(ctx)
				if err != nil {
					return nil, err
				}
				return ctx.AsObject(v)
			}}
		},
	})
}

func toNumber(ctx *evalctx.Context, v interface{}) (float64, error) {
	switch vv := v.(type) {
	case float64:
		return vv, nil
	case bool:
		if vv {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(vv, 64)
		if err != nil {
			return 0, &evalctx.RuntimeError{Message: "Could not convert " + strconv.Quote(vv) + " to number."}
		}
		return f, nil
	default:
		return 0, &evalctx.RuntimeError{Message: "Could not convert " + evalctx.TypeOf(v) + " to number."}
	}
}

func toBoolean(v interface{}) bool {
	switch vv := v.(type) {
	case nil:
		return false
	case bool:
		return vv
	case float64:
		return vv != 0
	case string:
		return vv != ""
	default:
		return true
	}
}
