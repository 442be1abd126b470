package registry

import (
	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/color"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// registerColor registers the color-family operators: color, rgb, rgba
// and color_to_array. The registry key is always the externally observed
// operator name, regardless of any internal naming an implementation
// happens to use.
func registerColor(r *Registry) {
	r.register(Definition{
		Name: "color",
		Type: types.Lambda{Result: types.Color, Args: []types.Type{types.String}},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				s, err := args[0].Eval(ctx)
				if err != nil {
					return nil, err
				}
				return ctx.Color(s.(string))
			}}
		},
	})

	r.register(Definition{
		Name: "rgb",
		Type: types.Lambda{Result: types.Color, Args: []types.Type{types.Number, types.Number, types.Number}},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				rgb, err := evalRGB(ctx, args)
				if err != nil {
					return nil, err
				}
				return ctx.Rgba(rgb[0], rgb[1], rgb[2], 1), nil
			}}
		},
	})

	r.register(Definition{
		Name: "rgba",
		Type: types.Lambda{
			Result: types.Color,
			Args:   []types.Type{types.Number, types.Number, types.Number, types.NArgs{Types: []types.Type{types.Number}}},
		},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				rgb, err := evalRGB(ctx, args)
				if err != nil {
					return nil, err
				}
				alpha := 1.0
				if len(args) > 3 {
					a, err := args[3].Eval(ctx)
					if err != nil {
						return nil, err
					}
					alpha = a.(float64)
				}
				return ctx.Rgba(rgb[0], rgb[1], rgb[2], alpha), nil
			}}
		},
	})

	r.register(Definition{
		Name: "color_to_array",
		Type: types.Lambda{Result: types.Vector{Item: types.Number}, Args: []types.Type{types.Color}},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{Body: func(ctx *evalctx.Context) (interface{}, error) {
				v, err := args[0].Eval(ctx)
				if err != nil {
					return nil, err
				}
				c := v.(color.RGBA)
				return []interface{}{c[0] * 255, c[1] * 255, c[2] * 255, c[3]}, nil
			}}
		},
	})
}

func evalRGB(ctx *evalctx.Context, args []CompiledArg) ([3]float64, error) {
	var out [3]float64
	for i := 0; i < 3; i++ {
		v, err := args[i].Eval(ctx)
		if err != nil {
			return out, err
		}
		out[i] = v.(float64)
	}
	return out, nil
}
