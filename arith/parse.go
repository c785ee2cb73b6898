package arith

import (
	"math"
	"strconv"

	"github.com/wippyai/wasm-math/errors"
)

// converter parses one argument of function fn into a native value.
type converter[T number] func(fn string, idx int, v Value) (T, error)

// parsePair parses exactly two arguments with conv. The returned error is
// whatever the first failing conversion built; callers that try another
// representation drop it.
func parsePair[T number](fn string, args []Value, conv converter[T]) (T, T, error) {
	if len(args) != 2 {
		return 0, 0, errors.New(errors.PhaseParse, errors.KindTypeError).
			Func(fn).
			Value(len(args)).
			Detail("%s expected 2 arguments, got %d", fn, len(args)).
			Build()
	}
	lhs, err := conv(fn, 0, args[0])
	if err != nil {
		return 0, 0, err
	}
	rhs, err := conv(fn, 1, args[1])
	if err != nil {
		return 0, 0, err
	}
	return lhs, rhs, nil
}

// asInt accepts Int values that fit a native int32.
func asInt(fn string, idx int, v Value) (int32, error) {
	if v.kind != KindInt {
		return 0, mismatch(fn, idx, v, "int", "int32", "s32")
	}
	if v.i < math.MinInt32 || v.i > math.MaxInt32 {
		err := errors.Overflow(errors.PhaseParse, fn, v.i, "s32")
		err.Path = argPath(idx)
		return 0, err
	}
	return int32(v.i), nil
}

// asFloat accepts Int and Float values. A Double is left for the double
// representation so it is never narrowed.
func asFloat(fn string, idx int, v Value) (float32, error) {
	switch v.kind {
	case KindInt:
		return float32(v.i), nil
	case KindFloat:
		return v.f32, nil
	default:
		return 0, mismatch(fn, idx, v, "float", "float32", "f32")
	}
}

// asDouble accepts any numeric value.
func asDouble(fn string, idx int, v Value) (float64, error) {
	if !v.kind.Numeric() {
		return 0, mismatch(fn, idx, v, "double", "float64", "f64")
	}
	switch v.kind {
	case KindInt:
		return float64(v.i), nil
	case KindFloat:
		return float64(v.f32), nil
	default:
		return v.f64, nil
	}
}

func mismatch(fn string, idx int, v Value, want, goType, witType string) error {
	return errors.New(errors.PhaseParse, errors.KindTypeError).
		Func(fn).
		Path(argPath(idx)...).
		GoType(goType).
		WitType(witType).
		Value(v).
		Detail("%s expected %s, got %s", fn, want, v.kind).
		Build()
}

func argPath(idx int) []string {
	return []string{"args", strconv.Itoa(idx)}
}
