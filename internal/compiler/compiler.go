// Package compiler walks a fully-checked tree bottom-up, assembles a
// lazily-evaluating callable per node, computes the
// isFeatureConstant/isZoomConstant flags, and binds the root to an
// Evaluation Context. Compiling is pure and produces a typed,
// constancy-flagged callable; evaluating binds runtime inputs and calls
// it.
package compiler

import (
	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/checker"
	"github.com/cartoexpr/mapexpr/internal/diag"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/parser"
	"github.com/cartoexpr/mapexpr/internal/registry"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// CompiledExpression is the result of compiling an expression.
type CompiledExpression struct {
	Result            string // "success" or "error"
	Type              types.Type
	IsFeatureConstant bool
	IsZoomConstant    bool
	Function          func(mapProperties map[string]interface{}, feature evalctx.Feature) (interface{}, error)
	Errors            diag.Diagnostics
}

type compiler struct {
	reg *registry.Registry
}

// CompileExpression parses, checks and compiles expr (a JSON-shaped Go
// value) against the closed operator registry, producing either a
// runnable callable or a list of compile-time diagnostics.
func CompileExpression(expr interface{}) CompiledExpression {
	reg := registry.New()
	return compileExpressionWith(expr, reg)
}

func compileExpressionWith(expr interface{}, reg *registry.Registry) CompiledExpression {
	parsed, diags := parser.Parse(expr, reg)
	if len(diags) > 0 {
		return CompiledExpression{Result: "error", Errors: diags}
	}

	checked, diags := checker.Check(types.Value, parsed)
	if len(diags) > 0 {
		return CompiledExpression{Result: "error", Errors: diags}
	}

	c := &compiler{reg: reg}
	body, featureConst, zoomConst, compileDiags := c.compileNode(checked)
	if len(compileDiags) > 0 {
		compileDiags.Sort()
		return CompiledExpression{Result: "error", Errors: compileDiags}
	}

	// A call's checked type is its Lambda scheme; the expression's declared
	// type is that scheme's result.
	resultType := checked.Type()
	if lam, ok := resultType.(types.Lambda); ok {
		resultType = lam.Result
	}

	return CompiledExpression{
		Result:            "success",
		Type:              resultType,
		IsFeatureConstant: featureConst,
		IsZoomConstant:    zoomConst,
		Function: func(mapProperties map[string]interface{}, feature evalctx.Feature) (interface{}, error) {
			return body(evalctx.New(mapProperties, feature))
		},
	}
}

// compileNode compiles a single node, already fully typed by the checker.
func (c *compiler) compileNode(n ast.Node) (body func(*evalctx.Context) (interface{}, error), featureConst, zoomConst bool, diags diag.Diagnostics) {
	switch node := n.(type) {
	case *ast.Literal:
		v := node.Value
		return func(ctx *evalctx.Context) (interface{}, error) { return v, nil }, true, true, nil

	case *ast.Call:
		return c.compileCall(node)

	default:
		panic("compiler: unknown node type")
	}
}

func (c *compiler) compileCall(node *ast.Call) (func(*evalctx.Context) (interface{}, error), bool, bool, diag.Diagnostics) {
	var diags diag.Diagnostics

	compiledArgs := make([]registry.CompiledArg, len(node.Args))
	featureConst, zoomConst := true, true

	for i, childNode := range node.Args {
		childBody, childFeatureConst, childZoomConst, childDiags := c.compileNode(childNode)
		if len(childDiags) > 0 {
			diags = append(diags, childDiags...)
			continue
		}
		compiledArgs[i] = registry.CompiledArg{Type: childNode.Type(), Eval: childBody}
		featureConst = featureConst && childFeatureConst
		zoomConst = zoomConst && childZoomConst
	}
	if len(diags) > 0 {
		return nil, false, false, diags
	}

	def, found := c.reg.Lookup(node.Name)
	if !found {
		diags.Add(node.Key(), "unknown function %s", node.Name)
		return nil, false, false, diags
	}

	result := def.Compile(node, compiledArgs)
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			diags.Add(node.Key(), "%s", e)
		}
		return nil, false, false, diags
	}

	if result.FeatureConstant != nil {
		featureConst = featureConst && *result.FeatureConstant
	}
	if result.ZoomConstant != nil {
		zoomConst = zoomConst && *result.ZoomConstant
	}

	return result.Body, featureConst, zoomConst, nil
}

// EvaluateBatch evaluates a compiled expression against many
// (mapProperties, feature) pairs, in index order matching the input.
func EvaluateBatch(fn func(mapProperties map[string]interface{}, feature evalctx.Feature) (interface{}, error), mapProperties []map[string]interface{}, features []evalctx.Feature) ([]interface{}, []error) {
	n := len(features)
	values := make([]interface{}, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		var mp map[string]interface{}
		if i < len(mapProperties) {
			mp = mapProperties[i]
		}
		values[i], errs[i] = fn(mp, features[i])
	}
	return values, errs
}
