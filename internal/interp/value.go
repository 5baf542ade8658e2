// Package interp implements the evaluator core of spec.md: the value
// domain, environments, the callable protocol, classes/instances, and the
// tree-walking evaluator itself. It is grounded throughout on the shape of
// the teacher's internal/interp/runtime package (a Value interface with
// Type()/String(), one Go type per value variant, typed runtime errors)
// adapted to this language's smaller value domain (spec.md §3).
package interp

import "strconv"

// Value is the tagged-union runtime value every expression evaluates to
// (spec.md §3). Concrete variants: NilValue, BoolValue, NumberValue,
// StringValue, *Function, *NativeFunction, *Class, *Instance.
type Value interface {
	// Type returns a short type tag used in error messages.
	Type() string
	// String returns the display form used by stringify/print.
	String() string
}

// NilValue is the single "nil" value.
type NilValue struct{}

func (NilValue) Type() string   { return "nil" }
func (NilValue) String() string { return "nil" }

// BoolValue wraps a Go bool.
type BoolValue struct{ Value bool }

func (b BoolValue) Type() string { return "bool" }
func (b BoolValue) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// NumberValue wraps an IEEE-754 double (spec.md §3).
type NumberValue struct{ Value float64 }

func (n NumberValue) Type() string { return "number" }

// String formats with the shortest decimal representation that omits a
// trailing ".0" for integer-valued doubles (spec.md §4.A stringify, §8
// invariant 5).
func (n NumberValue) String() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// StringValue wraps an immutable UTF-8 string.
type StringValue struct{ Value string }

func (s StringValue) Type() string   { return "string" }
func (s StringValue) String() string { return s.Value }

// isTruthy implements spec.md §4.A: Nil and Bool(false) are false, every
// other value (including Number(0) and the empty string) is true.
func isTruthy(v Value) bool {
	switch val := v.(type) {
	case NilValue:
		return false
	case BoolValue:
		return val.Value
	default:
		return true
	}
}

// isEqual implements spec.md §4.A: Nil equals only Nil; different variants
// are never equal; within a variant, compare by value (reference identity
// for Callable/Class/Instance).
func isEqual(a, b Value) bool {
	switch av := a.(type) {
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Value == bv.Value
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Value == bv.Value
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Value == bv.Value
	case *Instance:
		bv, ok := b.(*Instance)
		return ok && av == bv
	case *Class:
		bv, ok := b.(*Class)
		return ok && av == bv
	case *Function:
		bv, ok := b.(*Function)
		return ok && av == bv
	case *NativeFunction:
		bv, ok := b.(*NativeFunction)
		return ok && av == bv
	default:
		return false
	}
}

// stringify implements spec.md §4.A: the textual form used by "print" and
// by implicit to-string conversions.
func stringify(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}
