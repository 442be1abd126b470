package registry

import (
	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// registerMisc registers typeof, length, case and literal.
func registerMisc(r *Registry) {
	// `literal` never reaches its own Compile callback in the ordinary
	// sense: the parser intercepts it and emits an *ast.Literal node
	// directly (see parser.parseCall), so no *ast.Call for "literal" is
	// ever checked or compiled. The registry entry exists only so
	// registry.Lookup/Names and the parser's "unknown function" check see
	// it as a known operator name.
	r.register(Definition{
		Name: "literal",
		Type: types.Lambda{Result: types.Value, Args: []types.Type{types.Value}},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Errors: []string{"literal does not evaluate as a call"}}
		},
	})

	r.register(Definition{
		Name: "typeof",
		Type: types.Lambda{Result: types.String, Args: []types.Type{types.Value}},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				v, err := args[0].Eval(ctx)
				if err != nil {
					return nil, err
				}
				return evalctx.TypeOf(v), nil
			}}
		},
	})

	r.register(Definition{
		Name: "length",
		Type: types.Lambda{
			Result: types.Number,
			Args: []types.Type{types.Variant{Members: []types.Type{
				types.Vector{Item: types.Typename{Name: "T"}},
				types.String,
			}}},
		},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				v, err := args[0].Eval(ctx)
				if err != nil {
					return nil, err
				}
				switch vv := v.(type) {
				case string:
					return float64(len([]rune(vv))), nil
				case []interface{}:
					return float64(len(vv)), nil
				default:
					return nil, &evalctx.RuntimeError{Message: "Expected an array or string, but found " + evalctx.TypeOf(v) + " instead."}
				}
			}}
		},
	})

	// (Boolean, T)+, T -> T: evaluate condition/value pairs in order,
	// selecting the first true condition's paired value; the trailing T is
	// the fallback. Every condition and the selected branch are evaluated
	// lazily — untaken branches are never realized.
	r.register(Definition{
		Name: "case",
		Type: types.Lambda{
			Result: types.Typename{Name: "T"},
			Args: []types.Type{
				types.NArgs{Types: []types.Type{types.Boolean, types.Typename{Name: "T"}}},
				types.Typename{Name: "T"},
			},
		},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				pairs := (len(args) - 1) / 2
				for i := 0; i < pairs; i++ {
					cond, err := args[2*i].Eval(ctx)
					if err != nil {
						return nil, err
					}
					if cond.(bool) {
						return args[2*i+1].Eval(ctx)
					}
				}
				return args[len(args)-1].Eval(ctx)
			}}
		},
	})
}
