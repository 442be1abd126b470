package types

import "testing"

func TestMatchPrimitive(t *testing.T) {
	if err := MatchTypeError(Number, Number, nil); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := MatchTypeError(Number, String, nil); err == nil {
		t.Fatal("expected mismatch")
	} else if got, want := err.Error(), "Expected Number but found String instead."; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestMatchValueTopType(t *testing.T) {
	for _, p := range []Type{Null, Number, String, Boolean, Color, Object} {
		if err := MatchTypeError(Value, p, nil); err != nil {
			t.Fatalf("Value should accept %s: %v", p, err)
		}
	}
	if err := MatchTypeError(Value, Interpolation, nil); err == nil {
		t.Fatal("Value must not accept Interpolation")
	}
	if err := MatchTypeError(Value, Vector{Item: Value}, nil); err != nil {
		t.Fatalf("Value should accept Vector<Value>: %v", err)
	}
	if err := MatchTypeError(Value, Vector{Item: Number}, nil); err == nil {
		t.Fatal("Value must not accept Vector<Number>")
	}
}

func TestMatchVectorNested(t *testing.T) {
	if err := MatchTypeError(Vector{Item: Number}, Vector{Item: Number}, nil); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	err := MatchTypeError(Vector{Item: Number}, Vector{Item: String}, nil)
	if err == nil {
		t.Fatal("expected mismatch")
	}
	want := "Expected Vector<Number> but found Vector<String> instead. (Expected Number but found String instead.)"
	if err.Error() != want {
		t.Fatalf("got %q want %q", err.Error(), want)
	}
}

func TestMatchArrayFixedAndAny(t *testing.T) {
	if err := MatchTypeError(Array{Item: Number, N: 4}, Array{Item: Number, N: 4}, nil); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := MatchTypeError(Array{Item: Number, N: 4}, Array{Item: Number, N: 3}, nil); err == nil {
		t.Fatal("expected arity mismatch")
	}
	if err := MatchTypeError(AnyArray{Item: Number}, Array{Item: Number, N: 9}, nil); err != nil {
		t.Fatalf("AnyArray should accept any N: %v", err)
	}
}

func TestMatchVariantLeftBiased(t *testing.T) {
	v := Variant{Members: []Type{String, Number}}
	if err := MatchTypeError(v, Number, nil); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := MatchTypeError(v, Boolean, nil); err == nil {
		t.Fatal("expected mismatch")
	}
}

func TestMatchGenericBinding(t *testing.T) {
	tnMap := TypenameMap{}
	if err := MatchTypeError(Typename{Name: "T"}, Number, tnMap); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if tnMap["T"] != Type(Number) {
		t.Fatalf("expected T bound to Number, got %v", tnMap["T"])
	}
	// Second occurrence of T should not be overwritten.
	if err := MatchTypeError(Typename{Name: "T"}, String, tnMap); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if tnMap["T"] != Type(Number) {
		t.Fatalf("T binding should stay Number, got %v", tnMap["T"])
	}
}

func TestIsGeneric(t *testing.T) {
	if !IsGeneric(Typename{Name: "T"}) {
		t.Fatal("Typename must be generic")
	}
	if IsGeneric(Number) {
		t.Fatal("Number must not be generic")
	}
	if !IsGeneric(Vector{Item: Typename{Name: "T"}}) {
		t.Fatal("Vector<T> must be generic")
	}
	if !IsGeneric(Lambda{Result: Typename{Name: "T"}, Args: []Type{Typename{Name: "T"}}}) {
		t.Fatal("Lambda over T must be generic")
	}
}
