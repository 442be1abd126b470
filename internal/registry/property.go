package registry

import (
	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// registerProperty registers the object/array accessors: get, has, at.
func registerProperty(r *Registry) {
	r.register(Definition{
		Name: "get",
		Type: types.Lambda{Result: types.Value, Args: []types.Type{types.Object, types.String}},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				obj, err := args[0].Eval(ctx)
				if err != nil {
					return nil, err
				}
				key, err := args[1].Eval(ctx)
				if err != nil {
					return nil, err
				}
				m, _ := obj.(map[string]interface{})
				return ctx.Get(m, key.(string))
			}}
		},
	})

	r.register(Definition{
		Name: "has",
		Type: types.Lambda{Result: types.Boolean, Args: []types.Type{types.Object, types.String}},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				obj, err := args[0].Eval(ctx)
				if err != nil {
					return nil, err
				}
				key, err := args[1].Eval(ctx)
				if err != nil {
					return nil, err
				}
				m, _ := obj.(map[string]interface{})
				return ctx.Has(m, key.(string)), nil
			}}
		},
	})

	r.register(Definition{
		Name: "at",
		Type: types.Lambda{
			Result: types.Typename{Name: "T"},
			Args: []types.Type{
				types.Variant{Members: []types.Type{
					types.Vector{Item: types.Typename{Name: "T"}},
					types.AnyArray{Item: types.Typename{Name: "T"}},
				}},
				types.Number,
			},
		},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				v, err := args[0].Eval(ctx)
				if err != nil {
					return nil, err
				}
				idx, err := args[1].Eval(ctx)
				if err != nil {
					return nil, err
				}
				arr, err := ctx.AsArray(v)
				if err != nil {
					return nil, err
				}
				i := int(idx.(float64))
				if i < 0 || i >= len(arr) {
					return nil, &evalctx.RuntimeError{Message: "Array index out of bounds: " + evalctx.Stringify(idx) + "."}
				}
				return arr[i], nil
			}}
		},
	})
}
