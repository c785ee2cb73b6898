package arith

const msgDivideByZero = "divide-by-zero"

// divisionError is the domain error of the guarded division.
// It is converted by translate and never returned from this package.
type divisionError struct {
	msg string
}

func (e *divisionError) Error() string { return e.msg }

type number interface {
	~int32 | ~float32 | ~float64
}

// divide returns lhs / rhs in T's native arithmetic.
// A zero rhs is rejected before dividing for every T, so floating-point
// division never yields an infinity or NaN from a zero divisor.
func divide[T number](lhs, rhs T) (T, error) {
	if rhs == 0 {
		return 0, &divisionError{msg: msgDivideByZero}
	}
	return lhs / rhs, nil
}
