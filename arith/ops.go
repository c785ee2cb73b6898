package arith

import (
	stderrors "errors"

	"github.com/wippyai/wasm-math/errors"
)

const msgDivExpected = "div expected int, float, or double"

// Add returns the sum of two native ints as a host Int.
// The sum is computed in 64 bits, so it cannot overflow.
func Add(args ...Value) (Value, error) {
	x, y, err := parsePair[int32]("add", args, asInt)
	if err != nil {
		return Value{}, err
	}
	return Int(int64(x) + int64(y)), nil
}

// attempt tries one representation. matched is false when the arguments
// do not parse as that representation.
type attempt func(args []Value) (v Value, matched bool, err error)

// divAttempts is tried in order; int comes first so that div(4, 2) is 2,
// not 2.0.
var divAttempts = []attempt{
	tryDiv[int32](asInt, boxInt),
	tryDiv[float32](asFloat, Float),
	tryDiv[float64](asDouble, Double),
}

// Div divides two host values in the first representation, in the order
// int, float, double, that both arguments parse as.
func Div(args ...Value) (Value, error) {
	for _, try := range divAttempts {
		v, matched, err := try(args)
		if matched {
			return v, err
		}
	}
	return Value{}, errors.TypeError(errors.PhaseParse, "div", msgDivExpected)
}

func tryDiv[T number](conv converter[T], box func(T) Value) attempt {
	return func(args []Value) (Value, bool, error) {
		lhs, rhs, err := parsePair("div", args, conv)
		if err != nil {
			// The failed parse must not leak into the next attempt
			// or the final type error.
			return Value{}, false, nil
		}
		v, err := compute("div", lhs, rhs, box)
		return v, true, err
	}
}

// compute runs the guarded division and boxes the quotient. It is the only
// place a division error is caught; it leaves as a host error.
func compute[T number](fn string, lhs, rhs T, box func(T) Value) (Value, error) {
	q, err := divide(lhs, rhs)
	if err != nil {
		return Value{}, translate(fn, err)
	}
	return box(q), nil
}

// translate converts a domain error into its host error.
// The domain error is not kept as the cause.
func translate(fn string, err error) *errors.Error {
	var de *divisionError
	if stderrors.As(err, &de) {
		return errors.ZeroDivision(fn, de.msg, nil)
	}
	e := errors.Wrap(errors.PhaseCompute, errors.KindInvalidData, err, "divide")
	e.Func = fn
	return e
}

func boxInt(v int32) Value {
	return Int(int64(v))
}
