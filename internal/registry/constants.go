package registry

import (
	"math"

	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// registerConstants registers the zero-arity numeric constants: ln2, pi, e.
func registerConstants(r *Registry) {
	constant := func(name string, value float64) {
		r.register(Definition{
			Name: name,
			Type: types.Lambda{Result: types.Number, Args: nil},
			Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
				return CompileResult{
					Body: func(ctx *evalctx.Context) (interface{}, error) {
						return value, nil
					},
				}
			},
		})
	}
	constant("ln2", math.Ln2)
	constant("pi", math.Pi)
	constant("e", math.E)
}
