// Package checker implements the type checker: generic unification via
// types.TypenameMap, NArgs variadic expansion, and recursive validation
// against expected types, producing a fully-typed tree or a list of
// diagnostics. There is no let-polymorphism or cross-statement
// generalization here, only per-call-site instantiation
// (internal/types.Instantiate, done once by the parser) followed by one
// top-down check.
package checker

import (
	"fmt"

	"github.com/cartoexpr/mapexpr/internal/ast"
	"github.com/cartoexpr/mapexpr/internal/diag"
	"github.com/cartoexpr/mapexpr/internal/types"
)

// Check validates node against expected, returning a fully-typed tree (with
// every Typename resolved) or a non-empty diagnostics list.
func Check(expected types.Type, node ast.Node) (ast.Node, diag.Diagnostics) {
	var diags diag.Diagnostics
	checked := check(expected, node, &diags)
	diags.Sort()
	return checked, diags
}

func check(expected types.Type, node ast.Node, diags *diag.Diagnostics) ast.Node {
	switch n := node.(type) {
	case *ast.Literal:
		if err := types.MatchTypeError(expected, n.Type(), nil); err != nil {
			diags.Add(n.Key(), "%s", err.Error())
		}
		return n
	case *ast.Call:
		return checkCall(expected, n, diags)
	default:
		panic(fmt.Sprintf("checker: unknown node type %T", node))
	}
}

func checkCall(expected types.Type, n *ast.Call, diags *diag.Diagnostics) ast.Node {
	scheme := n.Typ.(types.Lambda)

	// Step a.
	var expectedResult types.Type
	var expectedArgs []types.Type
	if expLam, ok := expected.(types.Lambda); ok {
		expectedResult = expLam.Result
		expectedArgs = expLam.Args
	} else {
		expectedResult = expected
		expectedArgs = scheme.Args
	}

	// Step b.
	if tn, ok := expectedResult.(types.Typename); ok {
		diags.Add(n.Key(),
			"Could not resolve %s. This expression must be wrapped in a type conversion, e.g. [\"string\", %v].",
			tn.Name, ast.Serialize(n))
		return n
	}

	tnMap := types.TypenameMap{}
	var local diag.Diagnostics

	// Steps d/e run before step c: the scheme's own generics are bound from
	// the arguments first, so the surrounding expectation only binds a
	// result Typename the arguments left unresolved (["case", c, "a", "b"]
	// checked against Value resolves T to String, not Value).
	expandedTypes, arityErr := expandArgTypes(expectedArgs, n.Args, tnMap)
	if arityErr != "" {
		local.Add(n.Key(), "%s", arityErr)
	}

	// Step c.
	if err := types.MatchTypeError(expectedResult, scheme.Result, tnMap); err != nil {
		local.Add(n.Key(), "%s", err.Error())
	}

	// Step f.
	if len(local) > 0 {
		*diags = append(*diags, local...)
		return n
	}

	// Step g: recurse into each argument against its final, substituted
	// expected type, now that arity and result are both known-good.
	checkedArgs := make([]ast.Node, len(n.Args))
	finalArgTypes := make([]types.Type, len(expandedTypes))
	for i, argType := range expandedTypes {
		resolved := types.Substitute(argType, tnMap)
		finalArgTypes[i] = resolved
		checkedArgs[i] = check(resolved, n.Args[i], diags)
	}

	// Step h: the node's result is the operator's own result type with its
	// generics resolved, not the (possibly wider) expected type.
	return &ast.Call{
		NodeKey: n.Key(),
		Name:    n.Name,
		Typ:     types.Lambda{Result: types.Substitute(scheme.Result, tnMap), Args: finalArgTypes},
		Args:    checkedArgs,
	}
}

// expandArgTypes walks expectedArgs against the actual argument nodes,
// greedily expanding NArgs patterns and opportunistically binding
// typenames as it goes via a lightweight structural match against each
// argument's own (still possibly generic) static type — not a full
// recursive check. A failed lightweight match is never itself reported:
// real per-argument diagnostics are produced afterward in step g, against
// the types this function returns, which is what lets a mismatch inside a
// trailing NArgs (e.g. ["+", 1, "two"]) surface as "Expected Number but
// found String instead." at the offending argument's own key, rather than
// a blanket arity message.
//
// When an NArgs pattern is followed by further expectedArgs slots, a
// lightweight mismatch mid-cycle still stops consumption and rewinds,
// since the stopped-at argument may belong to whatever slot comes next
// (e.g. case's trailing fallback T). When the NArgs pattern is the last
// slot, there is no such next slot to hand off to, so consumption always
// exhausts every remaining actual argument regardless of lightweight
// match failures.
func expandArgTypes(expectedArgs []types.Type, actual []ast.Node, tnMap types.TypenameMap) ([]types.Type, string) {
	var expandedTypes []types.Type
	vi := 0

	for ti := 0; ti < len(expectedArgs); ti++ {
		switch slot := expectedArgs[ti].(type) {
		case types.NArgs:
			k := len(slot.Types)
			if k == 0 {
				continue
			}
			isLast := ti == len(expectedArgs)-1
			j := 0
			var round []types.Type
			for vi < len(actual) {
				argType := types.Substitute(slot.Types[j], tnMap)
				err := types.MatchTypeError(argType, rawType(actual[vi]), tnMap)
				if err != nil && !isLast {
					break
				}
				round = append(round, argType)
				vi++
				j++
				if j == k {
					expandedTypes = append(expandedTypes, round...)
					round = nil
					j = 0
				}
			}
			if j != 0 {
				if isLast {
					// No trailing slot to hand the partial tuple to: keep
					// it, so the arity check below reports the true
					// shortfall instead of silently dropping it.
					expandedTypes = append(expandedTypes, round...)
				} else {
					// Rewind: those args were never matched, so the outer
					// loop must see them again against whatever follows.
					vi -= j
				}
			}
		default:
			expandedTypes = append(expandedTypes, slot)
			if vi < len(actual) {
				_ = types.MatchTypeError(types.Substitute(slot, tnMap), rawType(actual[vi]), tnMap)
				vi++
			}
		}
	}

	if len(expandedTypes) != len(actual) {
		return expandedTypes, fmt.Sprintf("Expected %d arguments, but found %d instead.", len(expandedTypes), len(actual))
	}
	return expandedTypes, ""
}

// rawType returns a node's own (possibly still-generic) static type: the
// literal's concrete type, or a Call's freshly-instantiated Lambda scheme.
func rawType(n ast.Node) types.Type {
	return n.Type()
}
