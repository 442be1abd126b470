package curve_test

import (
	"math"
	"testing"

	"github.com/cartoexpr/mapexpr/internal/color"
	"github.com/cartoexpr/mapexpr/internal/curve"
)

func numberStops(pairs ...float64) []curve.Stop {
	stops := make([]curve.Stop, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, v := pairs[i], pairs[i+1]
		stops = append(stops, curve.Stop{Key: k, Value: func() (curve.Value, error) { return v, nil }})
	}
	return stops
}

func mixedStops(keys []float64, values []interface{}) []curve.Stop {
	stops := make([]curve.Stop, len(keys))
	for i := range keys {
		v := values[i]
		stops[i] = curve.Stop{Key: keys[i], Value: func() (curve.Value, error) { return v, nil }}
	}
	return stops
}

func TestEvaluateBelowFirstStop(t *testing.T) {
	v, err := curve.Evaluate(curve.Linear, 1, -5, numberStops(0, 10, 10, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(float64) != 10 {
		t.Fatalf("got %v, want 10", v)
	}
}

func TestEvaluateAboveLastStop(t *testing.T) {
	v, err := curve.Evaluate(curve.Linear, 1, 50, numberStops(0, 10, 10, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(float64) != 100 {
		t.Fatalf("got %v, want 100", v)
	}
}

func TestEvaluateSingleStopIsUnconditional(t *testing.T) {
	v, err := curve.Evaluate(curve.Linear, 1, 999, numberStops(5, 42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(float64) != 42 {
		t.Fatalf("got %v, want 42", v)
	}
}

func TestEvaluateLinearMidpoint(t *testing.T) {
	v, err := curve.Evaluate(curve.Linear, 1, 5, numberStops(0, 0, 10, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(float64) != 50 {
		t.Fatalf("got %v, want 50", v)
	}
}

func TestEvaluateStepReturnsLowerStop(t *testing.T) {
	stops := mixedStops([]float64{0, 5, 10}, []interface{}{"a", "b", "c"})
	v, err := curve.Evaluate(curve.Step, 1, 7, stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(string) != "b" {
		t.Fatalf("got %v, want b", v)
	}
}

func TestEvaluateExactKeyMatch(t *testing.T) {
	stops := mixedStops([]float64{0, 5, 10}, []interface{}{"a", "b", "c"})
	v, err := curve.Evaluate(curve.Step, 1, 5, stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(string) != "b" {
		t.Fatalf("got %v, want b", v)
	}
}

func TestEvaluateExponentialFactor(t *testing.T) {
	v, err := curve.Evaluate(curve.Exponential, 2, 5, numberStops(0, 0, 10, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (math.Pow(2, 5) - 1) / (math.Pow(2, 10) - 1) * 100
	if math.Abs(v.(float64)-want) > 1e-9 {
		t.Fatalf("got %v, want %v", v, want)
	}
}

func TestEvaluateExponentialBaseOneIsLinear(t *testing.T) {
	v, err := curve.Evaluate(curve.Exponential, 1, 5, numberStops(0, 0, 10, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(float64) != 50 {
		t.Fatalf("got %v, want 50 (base=1 degenerates to linear)", v)
	}
}

func TestEvaluateColorInterpolation(t *testing.T) {
	red := color.RGBA{1, 0, 0, 1}
	blue := color.RGBA{0, 0, 1, 1}
	stops := []curve.Stop{
		{Key: 0, Value: func() (curve.Value, error) { return red, nil }},
		{Key: 10, Value: func() (curve.Value, error) { return blue, nil }},
	}
	v, err := curve.Evaluate(curve.Linear, 1, 5, stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := v.(color.RGBA)
	want := color.RGBA{0.5, 0, 0.5, 1}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEvaluateStopsEvaluatedLazily(t *testing.T) {
	realized := map[float64]bool{}
	stop := func(k float64, v float64) curve.Stop {
		return curve.Stop{Key: k, Value: func() (curve.Value, error) {
			realized[k] = true
			return v, nil
		}}
	}
	stops := []curve.Stop{stop(0, 0), stop(5, 50), stop(10, 100)}
	_, err := curve.Evaluate(curve.Step, 1, 1, stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if realized[5] || realized[10] {
		t.Fatalf("expected only the bracketing-lower stop to realize, got %v", realized)
	}
	if !realized[0] {
		t.Fatalf("expected the selected stop to realize")
	}
}
