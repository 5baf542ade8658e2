package interp

import (
	"errors"
	"fmt"

	"github.com/cwbudde/go-slox/internal/ast"
)

// ErrMaxCallDepthExceeded is returned when a call chain exceeds the
// Interpreter's configured recursion guard. It deliberately is not a
// RuntimeError: spec.md §7 closes the runtime error kinds at six, and this
// guard is a driver-configurable safety net (internal/options.MaxCallDepth),
// not one of those six domain errors.
var ErrMaxCallDepthExceeded = errors.New("max call depth exceeded")

// Function is a user-defined closure: it captures its parameter list, body,
// and defining environment (spec.md §3 "Function"). Calling it creates a
// fresh child of Closure, binds parameters, executes Body, and yields Nil
// or the returned value.
type Function struct {
	Decl    *ast.FunctionStmt
	Closure *Environment
}

func (f *Function) Type() string { return "function" }

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Decl.Name.Lexeme)
}

func (f *Function) Arity() int { return len(f.Decl.Params) }

// Call implements spec.md §3's Function calling contract and §4.E's
// Return semantics: a returnSignal bubbling out of the body supplies the
// result; falling off the end of the body yields Nil.
func (f *Function) Call(it *Interpreter, args []Value) (Value, error) {
	if it.maxCallDepth > 0 {
		it.callDepth++
		if it.callDepth > it.maxCallDepth {
			it.callDepth--
			return nil, ErrMaxCallDepthExceeded
		}
		defer func() { it.callDepth-- }()
	}

	callEnv := NewEnclosedEnvironment(f.Closure)
	for i, param := range f.Decl.Params {
		callEnv.Define(param.Lexeme, args[i])
	}

	previous := it.env
	it.env = callEnv
	defer func() { it.env = previous }()

	err := it.execStmts(f.Decl.Body)
	if err == nil {
		return NilValue{}, nil
	}
	if ret, ok := err.(returnSignal); ok {
		return ret.Value, nil
	}
	return nil, err
}

// NativeFunction wraps a host Go function as a Callable built-in
// (spec.md §2 component C, "built-ins").
type NativeFunction struct {
	Name string
	Arty int
	Fn   func(it *Interpreter, args []Value) (Value, error)
}

func (n *NativeFunction) Type() string     { return "native function" }
func (n *NativeFunction) String() string   { return fmt.Sprintf("<native fn %s>", n.Name) }
func (n *NativeFunction) Arity() int       { return n.Arty }
func (n *NativeFunction) Call(it *Interpreter, args []Value) (Value, error) {
	return n.Fn(it, args)
}
