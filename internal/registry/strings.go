package registry

import (
	"strings"

	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// registerStrings registers upcase, downcase and concat.
func registerStrings(r *Registry) {
	caseOp := func(name string, fn func(string) string) {
		r.register(Definition{
			Name: name,
			Type: types.Lambda{Result: types.String, Args: []types.Type{types.String}},
			Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
				return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
					v, err := args[0].Eval(ctx)
					if err != nil {
						return nil, err
					}
					return fn(v.(string)), nil
				}}
			},
		})
	}

	caseOp("upcase", strings.ToUpper)
	caseOp("downcase", strings.ToLower)

	r.register(Definition{
		Name: "concat",
		Type: types.Lambda{Result: types.String, Args: []types.Type{types.NArgs{Types: []types.Type{types.Value}}}},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				var b strings.Builder
				for _, a := range args {
					v, err := a.Eval(ctx)
					if err != nil {
						return nil, err
					}
					b.WriteString(evalctx.Stringify(v))
				}
				return b.String(), nil
			}}
		},
	})
}
