package host

import (
	"fmt"
	"reflect"

	"github.com/tetratelabs/wazero/api"

	wasmmath "github.com/wippyai/wasm-math"
	"github.com/wippyai/wasm-math/errors"
)

var (
	_ wasmmath.Memory      = guestMemory{}
	_ wasmmath.MemorySizer = guestMemory{}
)

// guestMemory adapts wazero memory to bounds-checked reads and writes.
type guestMemory struct {
	mem api.Memory
}

func (g guestMemory) Size() uint32 {
	return g.mem.Size()
}

func (g guestMemory) Read(offset, length uint32) ([]byte, error) {
	data, ok := g.mem.Read(offset, length)
	if !ok {
		return nil, outOfRange(errors.PhaseDecode, offset, length, g.mem.Size())
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (g guestMemory) Write(offset uint32, data []byte) error {
	if !g.mem.Write(offset, data) {
		return outOfRange(errors.PhaseEncode, offset, uint32(len(data)), g.mem.Size())
	}
	return nil
}

// callerMemory returns the memory mod defines, or nil. A module without
// memory reports a typed nil pointer, which is normalized here.
func callerMemory(mod api.Module) api.Memory {
	mem := mod.Memory()
	if mem == nil {
		return nil
	}
	if v := reflect.ValueOf(mem); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	return mem
}

func outOfRange(phase errors.Phase, offset, length, size uint32) *errors.Error {
	e := errors.InvalidData(phase, nil,
		fmt.Sprintf("range [%d, %d) outside memory of %d bytes", offset, uint64(offset)+uint64(length), size))
	e.Value = offset
	return e
}
