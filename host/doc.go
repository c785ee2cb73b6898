// Package host binds add and div into a wazero runtime as host functions.
//
// # Registering
//
//	rt := host.NewRuntime(ctx)
//	defer rt.Close(ctx)
//
//	mod, err := host.Instantiate(ctx, rt,
//	    host.WithModuleName("my_package:math"),
//	    host.WithLogger(logger))
//
// Guests then import "add" and "div" from that module name. Lower-level
// registration goes through Registry, which accepts any FuncProvider:
//
//	reg := host.NewRegistry()
//	reg.RegisterHost(host.NewMath("", nil))
//	mods, err := reg.Bind(ctx, rt)
//
// # ABI
//
// Values cross the boundary as (tag i32, bits i64):
//
//	TagNone    0  no payload
//	TagInt     1  int64, two's complement
//	TagFloat   2  float32 bits
//	TagDouble  3  float64 bits
//	TagString  4  no payload
//
// Both functions take (ltag, lbits, rtag, rbits, msgptr, msgcap) and return
// (status, tag, bits). On failure the host error message is written into the
// calling module's memory at msgptr, truncated to msgcap, and tag holds the
// number of bytes written. A failing call never traps.
//
// # Calling From Go
//
// Caller drives the host through a generated shim module, so Go code goes
// through the same boundary a guest does:
//
//	c, err := host.NewCaller(ctx, rt, host.DefaultModuleName)
//	v, err := c.Div(ctx, arith.Int(1), arith.Int(0))
//	// err.(*errors.Error).Class() == "ZeroDivisionError"
package host
