package host

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/wasm-math/arith"
	"github.com/wippyai/wasm-math/errors"
	"github.com/wippyai/wasm-math/host/internal/shim"
)

const (
	msgOffset uint32 = 0
	msgCap    uint32 = 256
)

// Caller invokes the math host from Go the way a guest would: through a shim
// module that imports add and div and owns the memory error messages are
// written to.
type Caller struct {
	mod   api.Module
	mem   guestMemory
	funcs map[string]api.Function
}

// NewCaller instantiates a shim importing from moduleName in rt.
// The host module must already be instantiated.
func NewCaller(ctx context.Context, rt wazero.Runtime, moduleName string) (*Caller, error) {
	if moduleName == "" {
		moduleName = DefaultModuleName
	}

	names := []string{"add", "div"}
	b := shim.NewBuilder(moduleName)
	for _, name := range names {
		b.AddFunc(name, binaryParams, binaryResults)
	}

	// Anonymous, so any number of callers can share a runtime.
	mod, err := rt.InstantiateWithConfig(ctx, b.Build(), wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return nil, errors.Instantiation(err)
	}

	mem := mod.ExportedMemory("memory")
	if mem == nil {
		_ = mod.Close(ctx)
		return nil, errors.NotFound(errors.PhaseLoad, "memory", "memory")
	}

	c := &Caller{
		mod:   mod,
		mem:   guestMemory{mem},
		funcs: make(map[string]api.Function, len(names)),
	}
	for _, name := range names {
		fn := mod.ExportedFunction(name)
		if fn == nil {
			_ = mod.Close(ctx)
			return nil, errors.NotFound(errors.PhaseLoad, "function", name)
		}
		c.funcs[name] = fn
	}
	return c, nil
}

// Add calls the host add function.
func (c *Caller) Add(ctx context.Context, lhs, rhs arith.Value) (arith.Value, error) {
	return c.Call(ctx, "add", lhs, rhs)
}

// Div calls the host div function.
func (c *Caller) Div(ctx context.Context, lhs, rhs arith.Value) (arith.Value, error) {
	return c.Call(ctx, "div", lhs, rhs)
}

// Call invokes the named host function with two arguments. Arguments are
// arith.Values or plain Go values, converted with arith.FromGo. A failed
// call returns an *errors.Error whose Class is the host error class.
func (c *Caller) Call(ctx context.Context, name string, args ...any) (arith.Value, error) {
	fn, ok := c.funcs[name]
	if !ok {
		return arith.Value{}, errors.NotFound(errors.PhaseHost, "function", name)
	}
	if len(args) != 2 {
		return arith.Value{}, errors.New(errors.PhaseEncode, errors.KindTypeError).
			Func(name).
			Value(len(args)).
			Detail("%s expected 2 arguments, got %d", name, len(args)).
			Build()
	}

	ltag, lbits := EncodeValue(arith.FromGo(args[0]))
	rtag, rbits := EncodeValue(arith.FromGo(args[1]))
	res, err := fn.Call(ctx,
		api.EncodeU32(ltag), lbits,
		api.EncodeU32(rtag), rbits,
		api.EncodeU32(msgOffset), api.EncodeU32(msgCap))
	if err != nil {
		return arith.Value{}, errors.Trap(name, err)
	}
	if len(res) != len(binaryResults) {
		return arith.Value{}, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Func(name).
			Detail("expected %d results, got %d", len(binaryResults), len(res)).
			Build()
	}

	status := api.DecodeU32(res[0])
	if status == StatusOK {
		return DecodeValue(api.DecodeU32(res[1]), res[2]), nil
	}

	msg, err := c.mem.Read(msgOffset, api.DecodeU32(res[1]))
	if err != nil {
		return arith.Value{}, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Func(name).
			Cause(err).
			Detail("read error message").
			Build()
	}
	return arith.Value{}, &errors.Error{
		Phase:  errors.PhaseBoundary,
		Kind:   KindOfStatus(status),
		Func:   name,
		Detail: string(msg),
	}
}

// Close releases the shim instance.
func (c *Caller) Close(ctx context.Context) error {
	return c.mod.Close(ctx)
}
