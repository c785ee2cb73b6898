package host

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/wasm-math/arith"
	"github.com/wippyai/wasm-math/errors"
)

// Value tags of the core ABI.
const (
	TagNone   uint32 = 0
	TagInt    uint32 = 1
	TagFloat  uint32 = 2
	TagDouble uint32 = 3
	TagString uint32 = 4
)

// Status codes returned as the first result of add and div.
const (
	StatusOK           uint32 = 0
	StatusTypeError    uint32 = 1
	StatusZeroDivision uint32 = 2
	StatusOverflow     uint32 = 3
	StatusRuntime      uint32 = 4
)

var (
	// binaryParams is (ltag, lbits, rtag, rbits, msgptr, msgcap).
	binaryParams = []api.ValueType{
		api.ValueTypeI32, api.ValueTypeI64,
		api.ValueTypeI32, api.ValueTypeI64,
		api.ValueTypeI32, api.ValueTypeI32,
	}
	binaryParamNames = []string{"ltag", "lbits", "rtag", "rbits", "msgptr", "msgcap"}

	// binaryResults is (status, tag, bits).
	binaryResults = []api.ValueType{api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI64}
)

// EncodeValue returns the tag and payload bits of v.
// Strings carry no payload; only their kind crosses the boundary.
func EncodeValue(v arith.Value) (tag uint32, bits uint64) {
	switch v.Kind() {
	case arith.KindInt:
		return TagInt, uint64(v.Int())
	case arith.KindFloat:
		return TagFloat, api.EncodeF32(v.Float())
	case arith.KindDouble:
		return TagDouble, api.EncodeF64(v.Double())
	case arith.KindString:
		return TagString, 0
	default:
		return TagNone, 0
	}
}

// DecodeValue is the inverse of EncodeValue. Unknown tags decode as
// strings, so they fail argument parsing rather than trap.
func DecodeValue(tag uint32, bits uint64) arith.Value {
	switch tag {
	case TagNone:
		return arith.None()
	case TagInt:
		return arith.Int(int64(bits))
	case TagFloat:
		return arith.Float(api.DecodeF32(bits))
	case TagDouble:
		return arith.Double(api.DecodeF64(bits))
	case TagString:
		return arith.String("")
	default:
		return arith.String(fmt.Sprintf("tag(%d)", tag))
	}
}

// StatusOf maps an error onto its ABI status code.
func StatusOf(err error) uint32 {
	if err == nil {
		return StatusOK
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return StatusRuntime
	}
	switch e.Kind {
	case errors.KindTypeError:
		return StatusTypeError
	case errors.KindZeroDivision:
		return StatusZeroDivision
	case errors.KindOverflow:
		return StatusOverflow
	default:
		return StatusRuntime
	}
}

// KindOfStatus maps a non-zero status code back onto an error kind.
func KindOfStatus(status uint32) errors.Kind {
	switch status {
	case StatusTypeError:
		return errors.KindTypeError
	case StatusZeroDivision:
		return errors.KindZeroDivision
	case StatusOverflow:
		return errors.KindOverflow
	default:
		return errors.KindTrap
	}
}

// Shape is one accepted argument shape of a host function.
type Shape struct {
	Result wit.Type
	Params []wit.Type
}

// Signature describes a host function in WIT terms.
type Signature struct {
	Name   string
	Shapes []Shape
}

func (s Signature) String() string {
	parts := make([]string, len(s.Shapes))
	for i, sh := range s.Shapes {
		params := make([]string, len(sh.Params))
		for j, p := range sh.Params {
			params[j] = WitTypeName(p)
		}
		parts[i] = "(" + strings.Join(params, ", ") + ") -> " + WitTypeName(sh.Result)
	}
	return s.Name + strings.Join(parts, " | ")
}

// Signatures lists the functions of the host module, div shapes in
// dispatch order. add returns a host Int, so its result is the WIT type
// host ints travel as.
func Signatures() []Signature {
	return []Signature{
		{
			Name: "add",
			Shapes: []Shape{
				{Params: []wit.Type{wit.S32{}, wit.S32{}}, Result: WitTypeOf(arith.KindInt)},
			},
		},
		{
			Name: "div",
			Shapes: []Shape{
				{Params: []wit.Type{wit.S32{}, wit.S32{}}, Result: wit.S32{}},
				{Params: []wit.Type{wit.F32{}, wit.F32{}}, Result: wit.F32{}},
				{Params: []wit.Type{wit.F64{}, wit.F64{}}, Result: wit.F64{}},
			},
		},
	}
}

// WitTypeOf returns the WIT type a value of kind k travels as.
func WitTypeOf(k arith.Kind) wit.Type {
	switch k {
	case arith.KindInt:
		return wit.S64{}
	case arith.KindFloat:
		return wit.F32{}
	case arith.KindDouble:
		return wit.F64{}
	case arith.KindString:
		return wit.String{}
	default:
		return nil
	}
}

// WitTypeName returns the WIT spelling of t.
func WitTypeName(t wit.Type) string {
	switch t.(type) {
	case nil:
		return "_"
	case wit.Bool:
		return "bool"
	case wit.S32:
		return "s32"
	case wit.S64:
		return "s64"
	case wit.U32:
		return "u32"
	case wit.U64:
		return "u64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.String:
		return "string"
	default:
		return fmt.Sprintf("%T", t)
	}
}
