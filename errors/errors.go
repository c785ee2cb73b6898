package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // argument parsing
	PhaseCompute  Phase = "compute"  // arithmetic
	PhaseBoundary Phase = "boundary" // domain error translation
	PhaseEncode   Phase = "encode"   // Go to WASM
	PhaseDecode   Phase = "decode"   // WASM to Go
	PhaseHost     Phase = "host"     // host function registration
	PhaseLoad     Phase = "load"     // module instantiation
)

// Kind categorizes the error
type Kind string

const (
	KindTypeError     Kind = "type_error"
	KindZeroDivision  Kind = "zero_division"
	KindOverflow      Kind = "overflow"
	KindInvalidInput  Kind = "invalid_input"
	KindInvalidData   Kind = "invalid_data"
	KindRegistration  Kind = "registration"
	KindInstantiation Kind = "instantiation"
	KindNotFound      Kind = "not_found"
	KindTrap          Kind = "trap"
)

// Host error classes, as seen by code calling add and div.
const (
	ClassTypeError         = "TypeError"
	ClassZeroDivisionError = "ZeroDivisionError"
	ClassOverflowError     = "OverflowError"
	ClassRuntimeError      = "RuntimeError"
)

// Sentinels for errors.Is. They carry no phase, so they match any error of
// the same kind.
var (
	ErrTypeError    = &Error{Kind: KindTypeError}
	ErrZeroDivision = &Error{Kind: KindZeroDivision}
	ErrOverflow     = &Error{Kind: KindOverflow}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Func    string
	GoType  string
	WitType string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Func != "" {
		b.WriteString(" in ")
		b.WriteString(e.Func)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.WitType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.WitType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", WIT type ")
			b.WriteString(e.WitType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("WIT type ")
			b.WriteString(e.WitType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.WitType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Message returns the host-visible message, without phase or kind decoration.
func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return string(e.Kind)
}

// Class returns the host error class name for the error kind.
func (e *Error) Class() string {
	switch e.Kind {
	case KindTypeError:
		return ClassTypeError
	case KindZeroDivision:
		return ClassZeroDivisionError
	case KindOverflow:
		return ClassOverflowError
	default:
		return ClassRuntimeError
	}
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a phase matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// ClassOf returns the host error class of err, or "" when err is nil.
func ClassOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Class()
	}
	return ClassRuntimeError
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Func sets the name of the host function that failed
func (b *Builder) Func(name string) *Builder {
	b.err.Func = name
	return b
}

// Path sets the argument path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// WitType sets the WIT type name
func (b *Builder) WitType(t string) *Builder {
	b.err.WitType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeError creates a TypeError-class error for a host function
func TypeError(phase Phase, fn, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeError,
		Func:   fn,
		Detail: detail,
	}
}

// ZeroDivision creates a ZeroDivisionError-class error carrying msg
func ZeroDivision(fn, msg string, cause error) *Error {
	return &Error{
		Phase:  PhaseBoundary,
		Kind:   KindZeroDivision,
		Func:   fn,
		Detail: msg,
		Cause:  cause,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, fn string, value any, targetType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindOverflow,
		Func:    fn,
		WitType: targetType,
		Detail:  "signed integer is out of range",
		Value:   value,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Registration creates a registration error
func Registration(phase Phase, namespace, name string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s#%s", namespace, name),
		Cause:  cause,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: "instantiate host module",
		Cause:  cause,
	}
}

// Trap creates an error for a host call that failed inside the engine
func Trap(fn string, cause error) *Error {
	return &Error{
		Phase:  PhaseHost,
		Kind:   KindTrap,
		Func:   fn,
		Detail: "call trapped",
		Cause:  cause,
	}
}
