package types

import "fmt"

// TypenameMap threads generic-variable bindings through a single check of
// one operator call. A nil map means "no binding mode": Typename nodes are
// matched structurally like any other type (used when comparing two
// already-resolved concrete types).
type TypenameMap map[string]Type

// Clone returns a shallow copy, used for the speculative Variant matching
// in rule 6: a member match must not leak partial bindings into the outer
// map until it is known to be the winning member.
func (m TypenameMap) Clone() TypenameMap {
	if m == nil {
		return nil
	}
	out := make(TypenameMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge copies every binding from src into m (used after a Variant member
// match succeeds, to commit its speculative bindings).
func (m TypenameMap) Merge(src TypenameMap) {
	for k, v := range src {
		m[k] = v
	}
}

// MatchTypeError reports whether actual is assignable to expected, mutating
// tnMap with any generic bindings discovered along the way. It returns nil
// on success, or a diagnostic error otherwise.
func MatchTypeError(expected, actual Type, tnMap TypenameMap) error {
	// Rule 1: operators are treated as their return type.
	if lam, ok := actual.(Lambda); ok {
		actual = lam.Result
	}

	// Rule 2: generic-variable resolution, both directions.
	if tnMap != nil {
		if texp, ok := expected.(Typename); ok {
			if bound, isBound := tnMap[texp.Name]; isBound {
				// "if n is bound and bound type isGeneric, leave" — in
				// either case (bound-generic or bound-concrete) the first
				// binding wins; we do not re-verify against later callers.
				_ = bound
			} else if !IsGeneric(actual) {
				tnMap[texp.Name] = actual
			}
			return nil
		}
		if tact, ok := actual.(Typename); ok {
			if bound, isBound := tnMap[tact.Name]; isBound {
				actual = bound
			} else if !IsGeneric(expected) {
				tnMap[tact.Name] = expected
				actual = expected
			}
		}
	}

	// Value is the top type: it matches every primitive except
	// Interpolation, plus Vector<Value>.
	if expected == Type(Value) {
		if actual == Type(Interpolation) {
			return mismatch(expected, actual, nil)
		}
		if v, ok := actual.(Vector); ok {
			if !Equal(v.Item, Value) {
				return mismatch(expected, actual, nil)
			}
			return nil
		}
		switch actual.(type) {
		case Array, AnyArray:
			return mismatch(expected, actual, nil)
		case Variant:
			return matchVariantActual(expected, actual.(Variant), tnMap)
		default:
			return nil
		}
	}

	switch exp := expected.(type) {
	case Primitive:
		act, ok := actual.(Primitive)
		if ok && act.Name == exp.Name {
			return nil
		}
		if v, isVariant := actual.(Variant); isVariant {
			return matchVariantActual(expected, v, tnMap)
		}
		return mismatch(expected, actual, nil)

	case Vector:
		if v, isVariant := actual.(Variant); isVariant {
			return matchVariantActual(expected, v, tnMap)
		}
		act, ok := actual.(Vector)
		if !ok {
			return mismatch(expected, actual, nil)
		}
		if err := MatchTypeError(exp.Item, act.Item, tnMap); err != nil {
			return mismatch(expected, actual, err)
		}
		return nil

	case Array, AnyArray:
		if v, isVariant := actual.(Variant); isVariant {
			return matchVariantActual(expected, v, tnMap)
		}
		switch act := actual.(type) {
		case Array:
			var item Type
			if a, ok := expected.(Array); ok {
				if a.N != act.N {
					return mismatch(expected, actual, nil)
				}
				item = a.Item
			} else {
				item = expected.(AnyArray).Item
			}
			if err := MatchTypeError(item, act.Item, tnMap); err != nil {
				return mismatch(expected, actual, err)
			}
			return nil
		default:
			return mismatch(expected, actual, nil)
		}

	case Variant:
		return matchVariantExpected(exp, actual, tnMap)

	case Typename:
		// tnMap == nil: structural fallback for already-resolved generics.
		if act, ok := actual.(Typename); ok && act.Name == exp.Name {
			return nil
		}
		return mismatch(expected, actual, nil)

	default:
		return mismatch(expected, actual, nil)
	}
}

// matchVariantExpected implements rule 6 when `expected` is the Variant:
// succeed on the first member that matches under a speculative copy of
// tnMap; commit that copy back only on success (left-biased).
func matchVariantExpected(exp Variant, actual Type, tnMap TypenameMap) error {
	if av, ok := actual.(Variant); ok {
		for _, am := range av.Types_() {
			if err := matchVariantExpected(exp, am, tnMap); err != nil {
				return mismatch(exp, actual, err)
			}
		}
		return nil
	}

	var lastErr error
	for _, member := range exp.Members {
		speculative := tnMap.Clone()
		if err := MatchTypeError(member, actual, speculative); err == nil {
			if tnMap != nil {
				tnMap.Merge(speculative)
			}
			return nil
		} else {
			lastErr = err
		}
	}
	return mismatch(exp, actual, lastErr)
}

// matchVariantActual implements the other half of rule 6: when `actual` is
// itself a Variant, every actual member must match `expected`.
func matchVariantActual(expected Type, actual Variant, tnMap TypenameMap) error {
	for _, am := range actual.Members {
		speculative := tnMap.Clone()
		if err := MatchTypeError(expected, am, speculative); err != nil {
			return mismatch(expected, actual, err)
		}
		if tnMap != nil {
			tnMap.Merge(speculative)
		}
	}
	return nil
}

// Types_ is a tiny accessor used only by matchVariantExpected above to keep
// that function symmetrical with matchVariantActual without exporting a
// second field name for the same slice.
func (v Variant) Types_() []Type { return v.Members }

func mismatch(expected, actual Type, inner error) error {
	msg := fmt.Sprintf("Expected %s but found %s instead.", expected.String(), actual.String())
	if inner != nil {
		msg += fmt.Sprintf(" (%s)", inner.Error())
	}
	return fmt.Errorf("%s", msg)
}
