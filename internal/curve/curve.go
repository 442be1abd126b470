// Package curve implements the interpolated-curve evaluator: an
// exponential-base interpolation factor plus binary-search stop lookup.
// It has its own package because both the registry's curve operator
// (compile-time shape validation, interpolation Kind) and the evaluation
// context (runtime lookup) need it.
package curve

import (
	"fmt"
	"math"
	"sort"

	"github.com/cartoexpr/mapexpr/internal/color"
)

// Kind is the interpolation method a curve uses between stops.
type Kind int

const (
	Step Kind = iota
	Linear
	Exponential
)

// Value is a realized stop value: either a float64 (Number output) or a
// color.RGBA (Color output). Nothing else is interpolatable; that check
// happens earlier, at compile time, in the curve operator's compile callback.
type Value interface{}

// Stop pairs a literal key with a lazily-realized value.
type Stop struct {
	Key   float64
	Value func() (Value, error)
}

// Evaluate locates input's bracket among stops and interpolates according
// to kind (and, for Exponential, base), realizing only the stop values it
// actually needs.
func Evaluate(kind Kind, base float64, input float64, stops []Stop) (Value, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("curve has no stops")
	}
	if len(stops) == 1 {
		return stops[0].Value()
	}

	n := len(stops)
	if input <= stops[0].Key {
		return stops[0].Value()
	}
	if input >= stops[n-1].Key {
		return stops[n-1].Value()
	}

	idx := bracket(stops, input)

	if kind == Step {
		return stops[idx].Value()
	}

	lo, err := stops[idx].Value()
	if err != nil {
		return nil, err
	}
	hi, err := stops[idx+1].Value()
	if err != nil {
		return nil, err
	}

	k0, k1 := stops[idx].Key, stops[idx+1].Key
	t := interpolationFactor(kind, base, input, k0, k1)

	return interpolate(lo, hi, t)
}

// bracket returns the largest index i such that stops[i].Key <= input, via
// binary search. On an exact key match it returns that index; below the
// first key (handled earlier) it would return 0.
func bracket(stops []Stop, input float64) int {
	i := sort.Search(len(stops), func(i int) bool { return stops[i].Key > input })
	if i == 0 {
		return 0
	}
	return i - 1
}

// interpolationFactor computes t for the segment [k0, k1] at position
// input.
func interpolationFactor(kind Kind, base, input, k0, k1 float64) float64 {
	switch kind {
	case Linear:
		return (input - k0) / (k1 - k0)
	case Exponential:
		if base == 1 {
			return (input - k0) / (k1 - k0)
		}
		progress := input - k0
		difference := k1 - k0
		return (math.Pow(base, progress) - 1) / (math.Pow(base, difference) - 1)
	default:
		return 0
	}
}

func interpolate(lo, hi Value, t float64) (Value, error) {
	switch a := lo.(type) {
	case float64:
		b, ok := hi.(float64)
		if !ok {
			return nil, fmt.Errorf("curve stop type mismatch: %T vs %T", lo, hi)
		}
		return color.InterpolateNumber(a, b, t), nil
	case color.RGBA:
		b, ok := hi.(color.RGBA)
		if !ok {
			return nil, fmt.Errorf("curve stop type mismatch: %T vs %T", lo, hi)
		}
		return color.Interpolate(a, b, t), nil
	default:
		return nil, fmt.Errorf("curve stop value is not interpolatable: %T", lo)
	}
}
