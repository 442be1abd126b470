package compiler_test

import (
	"math"
	"testing"

	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/checker"
	"github.com/cartoexpr/mapexpr/internal/color"
	"github.com/cartoexpr/mapexpr/internal/compiler"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/parser"
	"github.com/cartoexpr/mapexpr/internal/registry"
	"github.com/cartoexpr/mapexpr/internal/types"
)

func TestScenario1Arithmetic(t *testing.T) {
	c := compiler.CompileExpression([]interface{}{"+", 1.0, 2.0, 3.0})
	if c.Result != "success" {
		t.Fatalf("expected success, got errors: %+v", c.Errors)
	}
	if !types.Equal(c.Type, types.Number) {
		t.Fatalf("expected Number, got %s", c.Type)
	}
	if !c.IsFeatureConstant || !c.IsZoomConstant {
		t.Fatalf("expected both constancy flags true")
	}
	v, err := c.Function(nil, evalctx.Feature{})
	if err != nil {
		t.Fatalf("unexpected evaluation error: %v", err)
	}
	if v.(float64) != 6 {
		t.Fatalf("got %v, want 6", v)
	}
}

func TestScenario2CaseOnProperty(t *testing.T) {
	expr := []interface{}{
		"case",
		[]interface{}{"==", []interface{}{"get", []interface{}{"properties"}, "x"}, 1.0}, "a",
		"b",
	}
	c := compiler.CompileExpression(expr)
	if c.Result != "success" {
		t.Fatalf("expected success, got errors: %+v", c.Errors)
	}
	if c.IsFeatureConstant {
		t.Fatalf("expected isFeatureConstant=false")
	}

	v, err := c.Function(nil, evalctx.Feature{Properties: map[string]interface{}{"x": 1.0}})
	if err != nil || v != "a" {
		t.Fatalf("got (%v, %v), want (a, nil)", v, err)
	}

	v, err = c.Function(nil, evalctx.Feature{Properties: map[string]interface{}{"x": 2.0}})
	if err != nil || v != "b" {
		t.Fatalf("got (%v, %v), want (b, nil)", v, err)
	}
}

func TestScenario3ExponentialCurveOnZoom(t *testing.T) {
	expr := []interface{}{"curve", []interface{}{"exponential", 2.0}, []interface{}{"zoom"}, 0.0, 0.0, 10.0, 100.0}
	c := compiler.CompileExpression(expr)
	if c.Result != "success" {
		t.Fatalf("expected success, got errors: %+v", c.Errors)
	}
	if c.IsZoomConstant {
		t.Fatalf("expected isZoomConstant=false")
	}

	v, err := c.Function(map[string]interface{}{"zoom": 5.0}, evalctx.Feature{})
	if err != nil {
		t.Fatalf("unexpected evaluation error: %v", err)
	}
	want := (math.Pow(2, 5) - 1) / (math.Pow(2, 10) - 1) * 100
	got := v.(float64)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScenario4Rgba(t *testing.T) {
	c := compiler.CompileExpression([]interface{}{"rgba", 255.0, 0.0, 0.0, 1.0})
	if c.Result != "success" {
		t.Fatalf("expected success, got errors: %+v", c.Errors)
	}
	v, err := c.Function(nil, evalctx.Feature{})
	if err != nil {
		t.Fatalf("unexpected evaluation error: %v", err)
	}
	want := color.RGBA{1, 0, 0, 1}
	if v != want {
		t.Fatalf("got %v, want %v", v, want)
	}
}

func TestScenario5GetMissingProperty(t *testing.T) {
	c := compiler.CompileExpression([]interface{}{"get", []interface{}{"properties"}, "missing"})
	if c.Result != "success" {
		t.Fatalf("expected success, got errors: %+v", c.Errors)
	}
	_, err := c.Function(nil, evalctx.Feature{Properties: map[string]interface{}{}})
	if err == nil {
		t.Fatalf("expected an evaluation error")
	}
	want := "ExpressionEvaluationError: Property missing not found in object with keys: []"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestScenario6ArithmeticTypeMismatch(t *testing.T) {
	c := compiler.CompileExpression([]interface{}{"+", 1.0, "two"})
	if c.Result != "error" {
		t.Fatalf("expected a compile error")
	}
	if len(c.Errors) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %+v", c.Errors)
	}
	if c.Errors[0].Key != "2" {
		t.Fatalf("got key %q, want %q", c.Errors[0].Key, "2")
	}
	want := "Expected Number but found String instead."
	if c.Errors[0].Error != want {
		t.Fatalf("got %q, want %q", c.Errors[0].Error, want)
	}
}

func TestLiteralArrayDoesNotParseAsCall(t *testing.T) {
	c := compiler.CompileExpression([]interface{}{"literal", []interface{}{"not", "a", "call"}})
	if c.Result != "success" {
		t.Fatalf("expected success, got errors: %+v", c.Errors)
	}
	v, err := c.Function(nil, evalctx.Feature{})
	if err != nil {
		t.Fatalf("unexpected evaluation error: %v", err)
	}
	got, ok := v.([]interface{})
	if !ok || len(got) != 3 || got[0] != "not" {
		t.Fatalf("got %v, want [not a call]", v)
	}
}

func TestIdempotentCompileSerializeCompile(t *testing.T) {
	exprs := []interface{}{
		[]interface{}{"+", 1.0, 2.0, 3.0},
		[]interface{}{"case", []interface{}{"==", 1.0, 1.0}, "a", "b"},
		[]interface{}{"literal", []interface{}{1.0, 2.0, 3.0}},
	}
	for _, e := range exprs {
		first := compiler.CompileExpression(e)
		if first.Result != "success" {
			t.Fatalf("unexpected compile error for %v: %+v", e, first.Errors)
		}
		serialized := serializeExpr(t, e)
		second := compiler.CompileExpression(serialized)
		if second.Result != "success" {
			t.Fatalf("unexpected compile error on round-trip of %v: %+v", e, second.Errors)
		}
		if !types.Equal(first.Type, second.Type) {
			t.Fatalf("type drifted across round-trip: %s vs %s", first.Type, second.Type)
		}
		if first.IsFeatureConstant != second.IsFeatureConstant || first.IsZoomConstant != second.IsZoomConstant {
			t.Fatalf("constancy flags drifted across round-trip for %v", e)
		}
	}
}

// serializeExpr parses and checks e, then re-emits it via ast.Serialize,
// independently of CompiledExpression (which has no public accessor for
// the checked tree).
func serializeExpr(t *testing.T, e interface{}) interface{} {
	t.Helper()
	reg := registry.New()
	parsed, diags := parser.Parse(e, reg)
	if len(diags) > 0 {
		t.Fatalf("unexpected parse errors for %v: %+v", e, diags)
	}
	checked, diags := checker.Check(types.Value, parsed)
	if len(diags) > 0 {
		t.Fatalf("unexpected check errors for %v: %+v", e, diags)
	}
	return ast.Serialize(checked)
}

func TestUnknownFunctionIsCompileError(t *testing.T) {
	c := compiler.CompileExpression([]interface{}{"not-a-real-op", 1.0})
	if c.Result != "error" {
		t.Fatalf("expected a compile error")
	}
	if len(c.Errors) != 1 || c.Errors[0].Error != "unknown function not-a-real-op" {
		t.Fatalf("unexpected errors: %+v", c.Errors)
	}
}

func TestEvaluateBatchPreservesOrderAndReportsPerItemErrors(t *testing.T) {
	c := compiler.CompileExpression([]interface{}{"/", 10.0, []interface{}{"number", []interface{}{"get", []interface{}{"properties"}, "x"}}})
	if c.Result != "success" {
		t.Fatalf("expected success, got errors: %+v", c.Errors)
	}

	features := []evalctx.Feature{
		{Properties: map[string]interface{}{"x": 2.0}},
		{Properties: map[string]interface{}{}}, // missing "x" -> evaluation error
		{Properties: map[string]interface{}{"x": 5.0}},
	}
	mapProperties := make([]map[string]interface{}, len(features))

	values, errs := compiler.EvaluateBatch(c.Function, mapProperties, features)
	if len(values) != 3 || len(errs) != 3 {
		t.Fatalf("expected 3 results, got %d values and %d errors", len(values), len(errs))
	}
	if errs[0] != nil || values[0] != 5.0 {
		t.Fatalf("index 0: got value %v, err %v", values[0], errs[0])
	}
	if errs[1] == nil {
		t.Fatalf("index 1: expected a missing-property error")
	}
	if errs[2] != nil || values[2] != 2.0 {
		t.Fatalf("index 2: got value %v, err %v", values[2], errs[2])
	}
}
