// Package evalctx is the evaluation context operator bodies call through —
// asArray, asObject, get, typeOf, color, rgba, evaluateCurve — plus the
// two runtime inputs, mapProperties and feature. Evaluation is reentrant
// and side-effect-free: a compiled expression can be called concurrently
// against different inputs.
package evalctx

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/cartoexpr/mapexpr/internal/color"
	"github.com/cartoexpr/mapexpr/internal/config"
	"github.com/cartoexpr/mapexpr/internal/curve"
)

// Feature is the runtime feature input: properties, geometry and id all
// default when absent.
type Feature struct {
	Properties map[string]interface{} `json:"properties"`
	Geometry   map[string]interface{} `json:"geometry"`
	ID         interface{}            `json:"id"`
}

// RuntimeError is the single evaluation-time error type, always reported
// under the fixed name ExpressionEvaluationError.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", config.RuntimeErrorName, e.Message)
}

func newRuntimeError(format string, args ...interface{}) error {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}

// Context is the per-callable evaluation context bound at the root of a
// compiled expression.
type Context struct {
	MapProperties map[string]interface{}
	Feature       Feature
}

// New builds a Context, defaulting any absent runtime input:
// mapProperties -> {}, feature.properties -> {}, feature.geometry -> {},
// feature.id -> nil.
func New(mapProperties map[string]interface{}, feature Feature) *Context {
	if mapProperties == nil {
		mapProperties = map[string]interface{}{}
	}
	if feature.Properties == nil {
		feature.Properties = map[string]interface{}{}
	}
	if feature.Geometry == nil {
		feature.Geometry = map[string]interface{}{}
	}
	return &Context{MapProperties: mapProperties, Feature: feature}
}

// Zoom returns mapProperties.zoom, defaulting to 0 if absent or not a number.
func (c *Context) Zoom() float64 {
	if v, ok := c.MapProperties["zoom"]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 0
}

// AsArray coerces v to a []interface{}, raising a RuntimeError if v is not
// already shaped as one.
func (c *Context) AsArray(v interface{}) ([]interface{}, error) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, newRuntimeError("Expected an array, but found %s instead.", TypeOf(v))
	}
	return arr, nil
}

// AsObject coerces v to a map[string]interface{}, raising a RuntimeError if
// v is not already shaped as one.
func (c *Context) AsObject(v interface{}) (map[string]interface{}, error) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, newRuntimeError("Expected an object, but found %s instead.", TypeOf(v))
	}
	return obj, nil
}

// Get looks up key in obj, raising a RuntimeError if obj is nil or the key
// is absent.
func (c *Context) Get(obj map[string]interface{}, key string) (interface{}, error) {
	if obj == nil {
		return nil, newRuntimeError("Property %s not found in object with keys: []", key)
	}
	v, ok := obj[key]
	if !ok {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, newRuntimeError("Property %s not found in object with keys: %s", key, formatKeys(keys))
	}
	return v, nil
}

// Has reports whether obj owns key.
func (c *Context) Has(obj map[string]interface{}, key string) bool {
	if obj == nil {
		return false
	}
	_, ok := obj[key]
	return ok
}

// Color parses s into an RGBA color, raising a RuntimeError on failure.
func (c *Context) Color(s string) (color.RGBA, error) {
	rgba, err := color.Parse(s)
	if err != nil {
		return color.RGBA{}, newRuntimeError("%s", err.Error())
	}
	return rgba, nil
}

// Rgba builds a color from 0-255 r/g/b components and a 0-1 alpha,
// allocating a fresh array rather than mutating any caller-owned buffer.
func (c *Context) Rgba(r, g, b, a float64) color.RGBA {
	return color.RGBA{r / 255, g / 255, b / 255, a}
}

// EvaluateCurve delegates to the curve package's bracket-and-interpolate
// logic; it is exposed here alongside the other runtime helpers even
// though the bracket search itself has no dependency on per-call runtime
// state.
func (c *Context) EvaluateCurve(kind curve.Kind, base float64, input float64, stops []curve.Stop) (curve.Value, error) {
	return curve.Evaluate(kind, base, input, stops)
}

// TypeOf returns the typeof() operator's runtime type name for v.
func TypeOf(v interface{}) string {
	switch vv := v.(type) {
	case nil:
		return "Null"
	case bool:
		return "Boolean"
	case float64:
		return "Number"
	case string:
		return "String"
	case color.RGBA:
		return "Color"
	case map[string]interface{}:
		return "Object"
	case []interface{}:
		_ = vv
		return "Vector<Value>"
	default:
		return "Value"
	}
}

// Stringify converts v to its default string form, per the coercion rules
// the string and concat operators share: null -> "", numbers ->
// a minimal decimal form, booleans -> "true"/"false", colors -> CSS rgba()
// functional notation, everything else -> typeOf(v).
func Stringify(v interface{}) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case bool:
		if vv {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(vv, 'g', -1, 64)
	case string:
		return vv
	case color.RGBA:
		return fmt.Sprintf("rgba(%s,%s,%s,%s)",
			strconv.FormatFloat(vv[0]*255, 'g', -1, 64),
			strconv.FormatFloat(vv[1]*255, 'g', -1, 64),
			strconv.FormatFloat(vv[2]*255, 'g', -1, 64),
			strconv.FormatFloat(vv[3], 'g', -1, 64))
	default:
		return TypeOf(v)
	}
}

func formatKeys(keys []string) string {
	out := "["
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += k
	}
	return out + "]"
}
