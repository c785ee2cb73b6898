package arith

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the representation tag of a host value.
type Kind uint8

const (
	KindNone Kind = iota
	KindInt
	KindFloat
	KindDouble
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Numeric reports whether values of this kind can take part in arithmetic.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat || k == KindDouble
}

// Value is a tagged host value passed to and returned from add and div.
// Host integers are 64-bit; the native int they are parsed into is 32-bit.
type Value struct {
	s    string
	i    int64
	f64  float64
	f32  float32
	kind Kind
}

// Int returns an integer host value.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Float returns a single-precision host value.
func Float(v float32) Value {
	return Value{kind: KindFloat, f32: v}
}

// Double returns a double-precision host value.
func Double(v float64) Value {
	return Value{kind: KindDouble, f64: v}
}

// String returns a string host value. Strings are never accepted by add or div.
func String(v string) Value {
	return Value{kind: KindString, s: v}
}

// None returns the empty host value.
func None() Value {
	return Value{}
}

func (v Value) Kind() Kind { return v.kind }

// Int returns the integer payload. It is zero unless Kind is KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float32 payload. It is zero unless Kind is KindFloat.
func (v Value) Float() float32 { return v.f32 }

// Double returns the float64 payload. It is zero unless Kind is KindDouble.
func (v Value) Double() float64 { return v.f64 }

// Str returns the string payload. It is empty unless Kind is KindString.
func (v Value) Str() string { return v.s }

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(float64(v.f32), 'g', -1, 32)
	case KindDouble:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	default:
		return "None"
	}
}

// FromGo maps a Go value onto a host value.
func FromGo(x any) Value {
	switch v := x.(type) {
	case nil:
		return None()
	case Value:
		return v
	case int:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return Int(int64(v))
	case uint16:
		return Int(int64(v))
	case uint32:
		return Int(int64(v))
	case uint64:
		return fromUint(v)
	case float32:
		return Float(v)
	case float64:
		return Double(v)
	case string:
		return String(v)
	default:
		return String(fmt.Sprintf("%v", v))
	}
}

func fromUint(v uint64) Value {
	if v > math.MaxInt64 {
		return Double(float64(v))
	}
	return Int(int64(v))
}

// ParseLiteral reads the text form of a host value:
// integers become Int, decimals with an f suffix become Float,
// other decimals become Double and anything else is a String.
func ParseLiteral(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return None()
	}

	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return Int(i)
	}

	if n := len(s); n > 1 && (s[n-1] == 'f' || s[n-1] == 'F') {
		if f, err := strconv.ParseFloat(s[:n-1], 32); err == nil {
			return Float(float32(f))
		}
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Double(f)
	}

	return String(s)
}
