package registry

import (
	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// falseConstancy is shared by every operator that consumes the
// feature/map-properties runtime input: each overrides its own constancy
// flag to false regardless of its (empty) argument list.
func falseConstancy() *bool {
	f := false
	return &f
}

// registerFeatureScope registers the operators that read the two runtime
// inputs: properties, geometry_type and id consume the feature, so they
// set isFeatureConstant=false; zoom consumes map properties and sets
// isZoomConstant=false.
func registerFeatureScope(r *Registry) {
	r.register(Definition{
		Name: "properties",
		Type: types.Lambda{Result: types.Object, Args: nil},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{
				FeatureConstant: falseConstancy(),
				Body: func(ctx *evalctx.Context) (interface{}, error) {
					return ctx.Feature.Properties, nil
				},
			}
		},
	})

	r.register(Definition{
		Name: "geometry_type",
		Type: types.Lambda{Result: types.String, Args: nil},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{
				FeatureConstant: falseConstancy(),
				Body: func(ctx *evalctx.Context) (interface{}, error) {
					t, _ := ctx.Feature.Geometry["type"].(string)
					return t, nil
				},
			}
		},
	})

	r.register(Definition{
		Name: "id",
		Type: types.Lambda{Result: types.Value, Args: nil},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{
				FeatureConstant: falseConstancy(),
				Body: func(ctx *evalctx.Context) (interface{}, error) {
					return ctx.Feature.ID, nil
				},
			}
		},
	})

	r.register(Definition{
		Name: "zoom",
		Type: types.Lambda{Result: types.Number, Args: nil},
		Compile: func(node *ast.Call, args []CompiledArg) CompileResult {
			return CompileResult{
				ZoomConstant: falseConstancy(),
				Body: func(ctx *evalctx.Context) (interface{}, error) {
					return ctx.Zoom(), nil
				},
			}
		},
	})
}
