// Package arith implements the add and div operations exposed to guests.
//
// Arguments arrive as tagged host Values whose representation is only known
// at parse time. Add parses both arguments as native int32 values and
// returns their sum as a host Int:
//
//	v, err := arith.Add(arith.Int(2), arith.Int(3)) // Int 5
//
// Div tries the pair as int, then float, then double, and divides in the
// first representation that matches:
//
//	arith.Div(arith.Int(7), arith.Int(2))           // Int 3
//	arith.Div(arith.Float(7), arith.Float(2))       // Float 3.5
//	arith.Div(arith.Double(1), arith.Double(3))     // Double 0.3333333333333333
//	arith.Div(arith.Int(1), arith.Int(0))           // ZeroDivisionError "divide-by-zero"
//	arith.Div(arith.String("x"), arith.Int(1))      // TypeError "div expected int, float, or double"
//
// Errors returned by this package are always *errors.Error values from
// github.com/wippyai/wasm-math/errors; their Class method gives the host
// error class.
package arith
