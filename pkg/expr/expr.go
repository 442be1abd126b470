// Package expr is the public entry point for the map-expression compiler.
// It is a thin re-export over the internal packages so that external
// callers never reach into internal/* directly.
package expr

import (
	"github.com/cartoexpr/mapexpr/internal/compiler"
	"github.com/cartoexpr/mapexpr/internal/diag"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/registry"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// Feature is the runtime feature input a compiled expression evaluates
// against: properties, geometry and id, each defaulting when absent.
type Feature = evalctx.Feature

// Type is the static type algebra a compiled expression's declared type is
// drawn from.
type Type = types.Type

// Diagnostic is one compile-time error, keyed by the dotted path of the
// node that produced it.
type Diagnostic = diag.Diagnostic

// CompiledExpression is the result of Compile: either a runnable callable
// with its declared type and constancy flags, or a list of diagnostics.
type CompiledExpression = compiler.CompiledExpression

// Compile parses, type-checks and compiles expr (a JSON-shaped Go value —
// the result of encoding/json.Unmarshal into interface{}, or an
// equivalent hand-built value) against the closed built-in operator set.
func Compile(expr interface{}) CompiledExpression {
	return compiler.CompileExpression(expr)
}

// Operators returns every built-in operator name, used by tooling that
// needs to enumerate the closed set (e.g. cmd/exprc's --list-operators).
func Operators() []string {
	return registry.New().Names()
}

// EvaluateBatch evaluates fn against N (mapProperties, feature) pairs, in
// order. Safe to call concurrently over disjoint slices of a larger run,
// since evaluation never mutates its inputs.
func EvaluateBatch(fn func(mapProperties map[string]interface{}, feature Feature) (interface{}, error), mapProperties []map[string]interface{}, features []Feature) ([]interface{}, []error) {
	return compiler.EvaluateBatch(fn, mapProperties, features)
}
