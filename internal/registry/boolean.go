package registry

import (
	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// registerBoolean registers &&, || (variadic, short-circuiting) and !.
func registerBoolean(r *Registry) {
	shortCircuit := func(name string, stopOn bool) {
		r.register(Definition{
			Name: name,
			Type: types.Lambda{Result: types.Boolean, Args: []types.Type{types.NArgs{Types: []types.Type{types.Boolean}}}},
			Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
				return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
					for _, a := range args {
						v, err := a.Eval(ctx)
						if err != nil {
							return nil, err
						}
						if v.(bool) == stopOn {
							return stopOn, nil
						}
					}
					return !stopOn, nil
				}}
			},
		})
	}

	shortCircuit("&&", false)
	shortCircuit("||", true)

	r.register(Definition{
		Name: "!",
		Type: types.Lambda{Result: types.Boolean, Args: []types.Type{types.Boolean}},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				v, err := args[0].Eval(ctx)
				if err != nil {
					return nil, err
				}
				return !v.(bool), nil
			}}
		},
	})
}
