package interp

// Callable is the uniform shape spec.md §4.C requires for user functions,
// classes (which construct instances), and built-ins. Grounded on the
// teacher's runtime.CallableValue interface.
type Callable interface {
	Value
	// Arity returns the number of arguments Call expects.
	Arity() int
	// Call invokes the callable. The evaluator has already checked arity
	// (spec.md §4.C) before dispatching here.
	Call(it *Interpreter, args []Value) (Value, error)
}
