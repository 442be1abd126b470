package registry

import (
	"math"

	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// registerArithmetic registers +, -, *, /, % (variadic, folding over
// Number) and ^ (strictly binary).
func registerArithmetic(r *Registry) {
	fold := func(name string, identity float64, combine func(acc, v float64) float64, unary func(v float64) float64) {
		r.register(Definition{
			Name: name,
			Type: types.Lambda{Result: types.Number, Args: []types.Type{types.NArgs{Types: []types.Type{types.Number}}}},
			Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
				return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
					if len(args) == 0 {
						return identity, nil
					}
					first, err := args[0].Eval(ctx)
					if err != nil {
						return nil, err
					}
					acc := first.(float64)
					if len(args) == 1 && unary != nil {
						return unary(acc), nil
					}
					for _, a := range args[1:] {
						v, err := a.Eval(ctx)
						if err != nil {
							return nil, err
						}
						acc = combine(acc, v.(float64))
					}
					return acc, nil
				}}
			},
		})
	}

	fold("+", 0, func(acc, v float64) float64 { return acc + v }, nil)
	fold("*", 1, func(acc, v float64) float64 { return acc * v }, nil)
	fold("-", 0, func(acc, v float64) float64 { return acc - v }, func(v float64) float64 { return -v })
	fold("/", 1, func(acc, v float64) float64 { return acc / v }, func(v float64) float64 { return 1 / v })
	fold("%", 0, func(acc, v float64) float64 { return math.Mod(acc, v) }, nil)

	r.register(Definition{
		Name: "^",
		Type: types.Lambda{Result: types.Number, Args: []types.Type{types.Number, types.Number}},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				base, err := args[0].Eval(ctx)
				if err != nil {
					return nil, err
				}
				exp, err := args[1].Eval(ctx)
				if err != nil {
					return nil, err
				}
				return math.Pow(base.(float64), exp.(float64)), nil
			}}
		},
	})
}
