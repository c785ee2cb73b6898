package arith

import (
	"math"
	"testing"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"7", Int(7)},
		{" -12 ", Int(-12)},
		{"0x10", Int(16)},
		{"3.5f", Float(3.5)},
		{"2F", Float(2)},
		{"3.5", Double(3.5)},
		{"1e3", Double(1000)},
		{"abc", String("abc")},
		{"f", String("f")},
		{"", None()},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLiteral(tt.in); got != tt.want {
				t.Errorf("ParseLiteral(%q) = %v (%s), want %v (%s)", tt.in, got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}

	if v := ParseLiteral("inf"); v.Kind() != KindDouble || !math.IsInf(v.Double(), 1) {
		t.Errorf("ParseLiteral(inf) = %v (%s)", v, v.Kind())
	}
}

func TestFromGo(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, None()},
		{"int", 3, Int(3)},
		{"int8", int8(-3), Int(-3)},
		{"uint32", uint32(7), Int(7)},
		{"uint64 max", uint64(math.MaxUint64), Double(float64(uint64(math.MaxUint64)))},
		{"float32", float32(1.5), Float(1.5)},
		{"float64", 2.5, Double(2.5)},
		{"string", "x", String("x")},
		{"value", Int(9), Int(9)},
		{"bool", true, String("true")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromGo(tt.in); got != tt.want {
				t.Errorf("FromGo(%v) = %v (%s), want %v (%s)", tt.in, got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Int(-4), "-4"},
		{Float(3.5), "3.5"},
		{Double(0.1), "0.1"},
		{String("a b"), `"a b"`},
		{None(), "None"},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%s String() = %q, want %q", tt.v.Kind(), got, tt.want)
		}
	}
}

func TestKind(t *testing.T) {
	for _, k := range []Kind{KindInt, KindFloat, KindDouble} {
		if !k.Numeric() {
			t.Errorf("%s should be numeric", k)
		}
	}
	for _, k := range []Kind{KindNone, KindString} {
		if k.Numeric() {
			t.Errorf("%s should not be numeric", k)
		}
	}
	if Kind(42).String() != "kind(42)" {
		t.Errorf("unknown kind String() = %q", Kind(42).String())
	}
}
