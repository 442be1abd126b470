// Package registry is the closed operator table: a map from operator name
// to {declared type scheme, compile callback}. Each family of operators
// lives in its own file (arithmetic.go, strings.go, color.go, curve.go,
// ...) registering into the single Registry built by New.
package registry

import (
	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// CompiledArg is an already-compiled child: its static type plus a lazy
// thunk that evaluates it against the runtime context. Operators that need
// laziness (case, &&, ||, curve stops) call Eval only when they need the
// value; everything else can call it eagerly.
type CompiledArg struct {
	Type types.Type
	Eval func(ctx *evalctx.Context) (interface{}, error)
}

// CompileResult is what an operator's Compile callback returns: the body
// closure that the driver uses as the node's own lazy thunk, plus any
// compile-time errors and constancy overrides.
type CompileResult struct {
	Body              func(ctx *evalctx.Context) (interface{}, error)
	Errors            []string
	FeatureConstant   *bool // nil = inherit AND of children; non-nil = override
	ZoomConstant      *bool
}

// Definition is one registry entry.
type Definition struct {
	Name string
	Type types.Lambda
	// Compile realizes the operator body given its already fully-checked
	// node and its already-compiled arguments.
	Compile func(node *ast.Call, args []CompiledArg) CompileResult
}

// Registry is the closed map of operator name -> Definition.
type Registry struct {
	defs map[string]Definition
}

// New builds the registry with every built-in operator registered.
func New() *Registry {
	r := &Registry{defs: make(map[string]Definition)}
	registerConstants(r)
	registerCoercions(r)
	registerColor(r)
	registerProperty(r)
	registerFeatureScope(r)
	registerArithmetic(r)
	registerMath(r)
	registerComparison(r)
	registerBoolean(r)
	registerStrings(r)
	registerMisc(r)
	registerCurve(r)
	return r
}

func (r *Registry) register(d Definition) {
	if _, exists := r.defs[d.Name]; exists {
		panic("registry: duplicate operator name " + d.Name)
	}
	r.defs[d.Name] = d
}

// Lookup returns the Definition registered under name, if any.
func (r *Registry) Lookup(name string) (Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names returns every registered operator name (unordered), used by
// cmd/exprc's --list-operators via pkg/expr.Operators.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.defs))
	for name := range r.defs {
		out = append(out, name)
	}
	return out
}
