package arith

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/wippyai/wasm-math/errors"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want int64
	}{
		{"small", Int(2), Int(3), 5},
		{"negative", Int(-7), Int(4), -3},
		{"zero", Int(0), Int(0), 0},
		{"max int32 widens", Int(math.MaxInt32), Int(math.MaxInt32), 2 * math.MaxInt32},
		{"min int32 widens", Int(math.MinInt32), Int(-1), math.MinInt32 - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Add(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Add(%v, %v) error: %v", tt.a, tt.b, err)
			}
			if got.Kind() != KindInt || got.Int() != tt.want {
				t.Errorf("Add(%v, %v) = %v (%s), want %d", tt.a, tt.b, got, got.Kind(), tt.want)
			}
		})
	}
}

func TestAdd_TypeError(t *testing.T) {
	tests := []struct {
		name string
		args []Value
	}{
		{"float lhs", []Value{Float(1.5), Int(1)}},
		{"double rhs", []Value{Int(1), Double(2)}},
		{"string", []Value{String("1"), Int(1)}},
		{"none", []Value{None(), Int(1)}},
		{"one arg", []Value{Int(1)}},
		{"three args", []Value{Int(1), Int(2), Int(3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Add(tt.args...)
			if !stderrors.Is(err, errors.ErrTypeError) {
				t.Fatalf("Add(%v) error = %v, want TypeError", tt.args, err)
			}
			if errors.ClassOf(err) != errors.ClassTypeError {
				t.Errorf("class = %q", errors.ClassOf(err))
			}
		})
	}
}

func TestAdd_Overflow(t *testing.T) {
	_, err := Add(Int(math.MaxInt32+1), Int(1))
	if !stderrors.Is(err, errors.ErrOverflow) {
		t.Fatalf("error = %v, want OverflowError", err)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("error %T is not *errors.Error", err)
	}
	if e.Func != "add" || len(e.Path) != 2 || e.Path[1] != "0" {
		t.Errorf("Func=%q Path=%v", e.Func, e.Path)
	}
}

func TestDiv(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want Value
	}{
		{"int exact", Int(4), Int(2), Int(2)},
		{"int truncates", Int(7), Int(2), Int(3)},
		{"int truncates toward zero", Int(-7), Int(2), Int(-3)},
		{"int min over minus one wraps", Int(math.MinInt32), Int(-1), Int(math.MinInt32)},
		{"float pair", Float(7), Float(2), Float(3.5)},
		{"int and float", Int(1), Float(4), Float(0.25)},
		{"int out of int32 range falls to float", Int(1 << 40), Int(1 << 20), Float(1 << 20)},
		{"double pair", Double(7), Double(2), Double(3.5)},
		{"double keeps precision", Double(1), Double(3), Double(1.0 / 3)},
		{"double below float range", Double(1), Double(math.Ldexp(1, -200)), Double(math.Ldexp(1, 200))},
		{"int and double", Int(1), Double(4), Double(0.25)},
		{"float and double", Float(1), Double(4), Double(0.25)},
		{"double outside float range", Double(1e300), Double(2), Double(5e299)},
		{"double tiny pair", Double(1e-300), Double(1e-300), Double(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Div(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Div(%v, %v) error: %v", tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Errorf("Div(%v, %v) = %v (%s), want %v (%s)", tt.a, tt.b, got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestDiv_IEEE(t *testing.T) {
	got, err := Div(Double(math.Inf(1)), Double(2))
	if err != nil {
		t.Fatalf("Div(+Inf, 2) error: %v", err)
	}
	if got.Kind() != KindDouble || !math.IsInf(got.Double(), 1) {
		t.Errorf("Div(+Inf, 2) = %v (%s), want double +Inf", got, got.Kind())
	}

	got, err = Div(Double(math.NaN()), Double(3))
	if err != nil {
		t.Fatalf("Div(NaN, 3) error: %v", err)
	}
	if got.Kind() != KindDouble || !math.IsNaN(got.Double()) {
		t.Errorf("Div(NaN, 3) = %v, want double NaN", got)
	}

	got, err = Div(Float(float32(math.Inf(-1))), Float(2))
	if err != nil {
		t.Fatalf("Div(-Inf, 2) error: %v", err)
	}
	if got.Kind() != KindFloat || !math.IsInf(float64(got.Float()), -1) {
		t.Errorf("Div(-Inf, 2) = %v (%s), want float -Inf", got, got.Kind())
	}
}

func TestTranslate_Fallback(t *testing.T) {
	cause := stderrors.New("bad operand")
	e := translate("div", cause)
	if e.Kind != errors.KindInvalidData || e.Func != "div" {
		t.Errorf("Kind=%q Func=%q", e.Kind, e.Func)
	}
	if !stderrors.Is(e, cause) {
		t.Error("fallback error does not wrap its cause")
	}
	if e.Class() != errors.ClassRuntimeError {
		t.Errorf("class = %q, want RuntimeError", e.Class())
	}
}

func TestDiv_ZeroDivision(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
	}{
		{"int", Int(1), Int(0)},
		{"int zero over zero", Int(0), Int(0)},
		{"float", Float(1), Float(0)},
		{"float zero over zero", Float(0), Float(0)},
		{"float negative zero", Float(1), Float(float32(math.Copysign(0, -1)))},
		{"double", Double(1), Double(0)},
		{"mixed", Int(3), Double(0)},
		{"double outside float range", Double(1e300), Double(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Div(tt.a, tt.b)
			if err == nil {
				t.Fatalf("Div(%v, %v) = %v, want ZeroDivisionError", tt.a, tt.b, got)
			}
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("error %T is not *errors.Error", err)
			}
			if e.Class() != errors.ClassZeroDivisionError {
				t.Errorf("class = %q, want %q", e.Class(), errors.ClassZeroDivisionError)
			}
			if e.Message() != "divide-by-zero" {
				t.Errorf("message = %q, want divide-by-zero", e.Message())
			}
			var de *divisionError
			if stderrors.As(err, &de) {
				t.Error("domain error crossed the boundary")
			}
		})
	}
}

func TestDiv_TypeError(t *testing.T) {
	tests := []struct {
		name string
		args []Value
	}{
		{"string lhs", []Value{String("a"), Int(1)}},
		{"string rhs", []Value{Double(1), String("b")}},
		{"none", []Value{None(), None()}},
		{"no args", nil},
		{"one arg", []Value{Int(1)}},
		{"three args", []Value{Int(1), Int(2), Int(3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Div(tt.args...)
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("Div(%v) error = %v, want *errors.Error", tt.args, err)
			}
			if e.Class() != errors.ClassTypeError {
				t.Errorf("class = %q, want TypeError", e.Class())
			}
			// A stale parse error from an earlier attempt must not surface.
			if e.Message() != msgDivExpected {
				t.Errorf("message = %q, want %q", e.Message(), msgDivExpected)
			}
			if len(e.Path) != 0 {
				t.Errorf("exhausted error carries argument path %v", e.Path)
			}
		})
	}
}
