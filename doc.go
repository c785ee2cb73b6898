// Package wasmmath exposes integer and floating-point arithmetic to
// WebAssembly guests as host functions.
//
// # Architecture Overview
//
//	wasmmath/        Root package with the guest Memory interface
//	├── arith/       add and div over tagged host values
//	├── host/        wazero host module, value ABI and Go-side caller
//	├── errors/      Structured errors and host error classes
//	└── cmd/mathrun  Command line and interactive front end
//
// # Quick Start
//
//	ctx := context.Background()
//	rt := host.NewRuntime(ctx)
//	defer rt.Close(ctx)
//
//	if _, err := host.Instantiate(ctx, rt); err != nil {
//	    log.Fatal(err)
//	}
//
//	c, err := host.NewCaller(ctx, rt, host.DefaultModuleName)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := c.Div(ctx, arith.Int(7), arith.Int(2))
//	fmt.Println(v) // 3
//
// # Host Functions
//
// Guests import two functions from the host module (my_package:math by
// default). Every argument is a tagged value passed as (tag i32, bits i64);
// results come back as (status i32, tag i32, bits i64):
//
//	add(lhs, rhs, msgptr i32, msgcap i32) -> (status, tag, bits)
//	div(lhs, rhs, msgptr i32, msgcap i32) -> (status, tag, bits)
//
// A non-zero status is the host error class. Its message is written to the
// caller's memory at msgptr when msgcap is non-zero, and the returned tag
// holds its length.
//
// # Error Classes
//
//	status 1  TypeError          no accepted argument shape
//	status 2  ZeroDivisionError  divisor is zero ("divide-by-zero")
//	status 3  OverflowError      integer does not fit the native int
//	status 4  RuntimeError       anything else
//
// # Thread Safety
//
// add and div keep no state. A Caller is bound to one shim instance and,
// like any wazero module instance, must not be used from several goroutines
// at once.
package wasmmath
