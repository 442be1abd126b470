package registry

import (
	"math"

	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// registerMath registers the one-ary math operators, each a thin wrapper
// over the corresponding math package function.
func registerMath(r *Registry) {
	unary := func(name string, fn func(float64) float64) {
		r.register(Definition{
			Name: name,
			Type: types.Lambda{Result: types.Number, Args: []types.Type{types.Number}},
			Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
				return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
					v, err := args[0].Eval(ctx)
					if err != nil {
						return nil, err
					}
					return fn(v.(float64)), nil
				}}
			},
		})
	}

	unary("ln", math.Log)
	unary("log2", math.Log2)
	unary("log10", math.Log10)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("asin", math.Asin)
	unary("acos", math.Acos)
	unary("atan", math.Atan)
}
