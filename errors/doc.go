// Package errors provides structured error types for the wasm-math module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// Each Kind maps onto a host error class (TypeError, ZeroDivisionError, ...)
// which is what guests and Go callers see.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindTypeError).
//		Func("div").
//		Path("arg1").
//		WitType("s32").
//		Detail("div expected int, float, or double").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeError(errors.PhaseParse, "add", "add expected int, got string")
//	err := errors.ZeroDivision("div", "divide-by-zero", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// The ErrTypeError, ErrZeroDivision and ErrOverflow sentinels match on kind
// regardless of phase.
package errors
