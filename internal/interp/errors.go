package interp

import (
	"fmt"

	"github.com/cwbudde/go-slox/pkg/token"
)

// ErrorKind enumerates the runtime error kinds of spec.md §7. Grounded on
// the teacher's runtime package, which gives each kind its own Go error
// struct (ConversionError, ArithmeticError, ...); collapsed here into one
// struct with a Kind field since spec.md §7 defines the kinds as a flat
// enum rather than independently-shaped error types.
type ErrorKind int

const (
	TypeErrorKind ErrorKind = iota
	ArityErrorKind
	DivisionByZeroKind
	UndefinedVariable
	UndefinedPropertyKind
	UnimplementedKind
)

func (k ErrorKind) String() string {
	switch k {
	case TypeErrorKind:
		return "TypeError"
	case ArityErrorKind:
		return "ArityError"
	case DivisionByZeroKind:
		return "DivisionByZero"
	case UndefinedVariable:
		return "UndefinedVariable"
	case UndefinedPropertyKind:
		return "UndefinedProperty"
	case UnimplementedKind:
		return "Unimplemented"
	default:
		return "RuntimeError"
	}
}

// RuntimeError carries the token of the offending operation (for line
// reporting, spec.md §4.E) and aborts the current top-level statement.
type RuntimeError struct {
	Kind ErrorKind
	Tok  token.Token
	Msg  string
}

func (e *RuntimeError) Error() string { return e.Msg }

func newTypeError(tok token.Token, msg string) *RuntimeError {
	return &RuntimeError{Kind: TypeErrorKind, Tok: tok, Msg: msg}
}

func newArityError(tok token.Token, expected, got int) *RuntimeError {
	return &RuntimeError{
		Kind: ArityErrorKind,
		Tok:  tok,
		Msg:  fmt.Sprintf("expected %d argument(s) but got %d", expected, got),
	}
}

func newDivisionByZero(tok token.Token) *RuntimeError {
	return &RuntimeError{Kind: DivisionByZeroKind, Tok: tok, Msg: "division by zero"}
}

func newUndefinedProperty(tok token.Token, name string) *RuntimeError {
	return &RuntimeError{Kind: UndefinedPropertyKind, Tok: tok, Msg: "undefined property '" + name + "'"}
}

func newUnimplemented(tok token.Token, what string) *RuntimeError {
	return &RuntimeError{Kind: UnimplementedKind, Tok: tok, Msg: what + " is not implemented"}
}

// FormatRuntimeError renders a runtime error the way the CLI reports it to
// stderr (spec.md §6): "<message>\n[line N]".
func FormatRuntimeError(err *RuntimeError) string {
	return fmt.Sprintf("%s\n[line %d]", err.Msg, err.Tok.Pos.Line)
}
