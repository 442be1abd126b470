package registry

import (
	"fmt"

	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/curve"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// registerCurve registers the interpolation tokens (step, linear,
// exponential) and curve itself. The tokens carry type Interpolation but
// never evaluate standalone — curve inspects the checked AST node
// directly to recover interpolation kind and base, since that structure
// (literal-ness, ascending keys) must be validated at compile time,
// before any evaluation context exists.
func registerCurve(r *Registry) {
	token := func(name string, argTypes []types.Type) {
		r.register(Definition{
			Name: name,
			Type: types.Lambda{Result: types.Interpolation, Args: argTypes},
			Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
				return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
					return nil, &evalctx.RuntimeError{Message: name + " does not evaluate standalone"}
				}}
			},
		})
	}
	token("step", nil)
	token("linear", nil)
	token("exponential", []types.Type{types.Number})

	r.register(Definition{
		Name: "curve",
		Type: types.Lambda{
			Result: types.Typename{Name: "V"},
			Args: []types.Type{
				types.Interpolation,
				types.Number,
				types.NArgs{Types: []types.Type{types.Number, types.Typename{Name: "V"}}},
			},
		},
		Compile: compileCurve,
	})
}

func interpKindOf(name string) (curve.Kind, bool) {
	switch name {
	case "step":
		return curve.Step, true
	case "linear":
		return curve.Linear, true
	case "exponential":
		return curve.Exponential, true
	default:
		return 0, false
	}
}

func compileCurve(node *ast.Call, args []CompiledArg) CompileResult {
	interpNode, ok := node.Args[0].(*ast.Call)
	var kind curve.Kind
	var validName bool
	if ok {
		kind, validName = interpKindOf(interpNode.Name)
	}
	if !ok || !validName {
		return CompileResult{Errors: []string{"Invalid interpolation type"}}
	}

	base := 1.0
	if kind == curve.Exponential {
		lit, litOK := interpNode.Args[0].(*ast.Literal)
		var b float64
		var isNum bool
		if litOK {
			b, isNum = lit.Value.(float64)
		}
		if !litOK || !isNum {
			return CompileResult{Errors: []string{"exponential base must be a literal number"}}
		}
		base = b
	}

	resultType := node.Typ.(types.Lambda).Result
	if !types.Equal(resultType, types.Number) && !types.Equal(resultType, types.Color) {
		return CompileResult{Errors: []string{
			fmt.Sprintf("Type %s is not interpolatable, must be Number or Color.", resultType.String()),
		}}
	}

	pairNodes := node.Args[2:]
	pairArgs := args[2:]
	n := len(pairNodes) / 2
	keys := make([]float64, n)
	for i := 0; i < n; i++ {
		keyNode, litOK := pairNodes[2*i].(*ast.Literal)
		var key float64
		var isNum bool
		if litOK {
			key, isNum = keyNode.Value.(float64)
		}
		if !litOK || !isNum {
			return CompileResult{Errors: []string{
				fmt.Sprintf("curve stop key at argument %d must be a literal number", 2*i+3),
			}}
		}
		if i > 0 && key <= keys[i-1] {
			return CompileResult{Errors: []string{"Curve stop keys must be strictly ascending."}}
		}
		keys[i] = key
	}

	inputArg := args[1]
	valueArgs := make([]CompiledArg, n)
	for i := 0; i < n; i++ {
		valueArgs[i] = pairArgs[2*i+1]
	}

	return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
		input, err := inputArg.Eval(ctx)
		if err != nil {
			return nil, err
		}
		stops := make([]curve.Stop, n)
		for i := 0; i < n; i++ {
			va := valueArgs[i]
			stops[i] = curve.Stop{Key: keys[i], Value: func() (curve.Value, error) { return va.Eval(ctx) }}
		}
		return ctx.EvaluateCurve(kind, base, input.(float64), stops)
	}}
}
