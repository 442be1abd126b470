// Package rpcvalue converts between the compiler's JSON-shaped Go values
// (nil/bool/float64/string/[]interface{}/map[string]interface{}, plus the
// runtime-only color.RGBA) and google.golang.org/protobuf's structpb wire
// types, so cmd/exprserver can expose compileExpression and evaluation over
// gRPC without a protoc-generated message schema: the inbound expression,
// mapProperties and feature are themselves arbitrary JSON documents, which
// is exactly what structpb.Struct/Value already model.
package rpcvalue

import (
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cartoexpr/mapexpr/internal/color"
	"github.com/cartoexpr/mapexpr/internal/evalctx"
)

// ToStructValue converts an evaluated value into a structpb.Value. Colors
// have no native structpb representation, so they cross the wire as a
// 4-element [r,g,b,a] list.
func ToStructValue(v interface{}) (*structpb.Value, error) {
	if c, ok := v.(color.RGBA); ok {
		return structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
			structpb.NewNumberValue(c[0]),
			structpb.NewNumberValue(c[1]),
			structpb.NewNumberValue(c[2]),
			structpb.NewNumberValue(c[3]),
		}}), nil
	}
	return structpb.NewValue(v)
}

// FromStructValue converts a structpb.Value back into the plain JSON-shaped
// Go value the parser expects.
func FromStructValue(v *structpb.Value) interface{} {
	if v == nil {
		return nil
	}
	return v.AsInterface()
}

// FeatureFromStruct builds an evalctx.Feature from a request's feature
// sub-object. Absent or non-object properties/geometry are left nil;
// evalctx.New defaults them when the expression is evaluated.
func FeatureFromStruct(s *structpb.Struct) evalctx.Feature {
	if s == nil {
		return evalctx.Feature{}
	}
	m := s.AsMap()
	var f evalctx.Feature
	if p, ok := m["properties"].(map[string]interface{}); ok {
		f.Properties = p
	}
	if g, ok := m["geometry"].(map[string]interface{}); ok {
		f.Geometry = g
	}
	f.ID = m["id"]
	return f
}

// MapPropertiesFromStruct builds a mapProperties value from a request's
// mapProperties sub-object.
func MapPropertiesFromStruct(s *structpb.Struct) map[string]interface{} {
	if s == nil {
		return nil
	}
	return s.AsMap()
}
