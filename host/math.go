package host

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-math/arith"
	"github.com/wippyai/wasm-math/errors"
)

// DefaultModuleName is the import module name guests use for add and div.
const DefaultModuleName = "my_package:math"

// Math is the host module exposing add and div.
type Math struct {
	log  *zap.Logger
	name string
}

// NewMath returns the math host under module name, or DefaultModuleName
// when name is empty.
func NewMath(name string, log *zap.Logger) *Math {
	if name == "" {
		name = DefaultModuleName
	}
	if log == nil {
		log = Logger()
	}
	return &Math{name: name, log: log}
}

func (m *Math) Namespace() string {
	return m.name
}

func (m *Math) Functions() map[string]HostFunc {
	return map[string]HostFunc{
		"add": m.binary("add", arith.Add),
		"div": m.binary("div", arith.Div),
	}
}

// binary adapts a two-argument operation to the core ABI. Every error leaves
// as a status code, never as a trap.
func (m *Math) binary(name string, op func(args ...arith.Value) (arith.Value, error)) HostFunc {
	fn := func(_ context.Context, mod api.Module, stack []uint64) {
		lhs := DecodeValue(api.DecodeU32(stack[0]), stack[1])
		rhs := DecodeValue(api.DecodeU32(stack[2]), stack[3])
		msgPtr := api.DecodeU32(stack[4])
		msgCap := api.DecodeU32(stack[5])

		v, err := op(lhs, rhs)
		if err != nil {
			status := StatusOf(err)
			n := m.writeMessage(mod, name, msgPtr, msgCap, message(err))
			m.log.Debug("host call failed",
				zap.String("func", name),
				zap.Stringer("lhs", lhs),
				zap.Stringer("rhs", rhs),
				zap.Uint32("status", status),
				zap.Error(err))
			stack[0] = api.EncodeU32(status)
			stack[1] = api.EncodeU32(n)
			stack[2] = 0
			return
		}

		tag, bits := EncodeValue(v)
		stack[0] = api.EncodeU32(StatusOK)
		stack[1] = api.EncodeU32(tag)
		stack[2] = bits
	}

	return HostFunc{
		Fn:         api.GoModuleFunc(fn),
		Params:     binaryParams,
		Results:    binaryResults,
		ParamNames: binaryParamNames,
	}
}

// writeMessage copies msg, truncated to msgCap bytes, into the caller's
// memory and returns the number of bytes written.
func (m *Math) writeMessage(mod api.Module, fn string, ptr, msgCap uint32, msg string) uint32 {
	if msgCap == 0 || mod == nil {
		return 0
	}
	mem := callerMemory(mod)
	if mem == nil {
		return 0
	}

	data := []byte(msg)
	if uint32(len(data)) > msgCap {
		data = data[:msgCap]
	}
	if err := (guestMemory{mem}).Write(ptr, data); err != nil {
		m.log.Warn("failed to write error message",
			zap.String("func", fn),
			zap.Uint32("ptr", ptr),
			zap.Uint32("cap", msgCap),
			zap.Error(err))
		return 0
	}
	return uint32(len(data))
}

func message(err error) string {
	if e, ok := err.(*errors.Error); ok {
		return e.Message()
	}
	return err.Error()
}
