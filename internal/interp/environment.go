package interp

import "github.com/cwbudde/go-slox/pkg/token"

// Environment is a binding frame: a name-to-value map plus a link to the
// enclosing frame (nil for the global frame). Grounded on the teacher's
// runtime.Environment (store + outer pointer), extended with GetAt/AssignAt
// for the resolver-distance access spec.md §4.B requires — the teacher's
// own evaluator doesn't need this because DWScript resolves symbols
// differently; see SPEC_FULL.md §3.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates the root (global) environment, which has no
// enclosing frame.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// NewEnclosedEnvironment creates a child frame of enclosing.
func NewEnclosedEnvironment(enclosing *Environment) *Environment {
	return &Environment{values: make(map[string]Value), enclosing: enclosing}
}

// Define unconditionally creates or overwrites a slot in this frame
// (spec.md §4.B).
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get searches this frame then walks the parent chain (spec.md §4.B). It is
// only used for undistanced (global) lookups; resolved locals use GetAt.
func (e *Environment) Get(name token.Token) (Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, &RuntimeError{Kind: UndefinedVariable, Tok: name, Msg: "undefined variable '" + name.Lexeme + "'"}
}

// Assign walks the same chain as Get, overwriting the first slot found.
func (e *Environment) Assign(name token.Token, value Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return &RuntimeError{Kind: UndefinedVariable, Tok: name, Msg: "undefined variable '" + name.Lexeme + "'"}
}

// GetAt traverses exactly distance parent links then reads name from that
// frame (spec.md §4.B). The resolver guarantees the name exists there.
func (e *Environment) GetAt(distance int, name string) Value {
	return e.ancestor(distance).values[name]
}

// AssignAt traverses exactly distance parent links then writes name in that
// frame (spec.md §4.B).
func (e *Environment) AssignAt(distance int, name string, value Value) {
	e.ancestor(distance).values[name] = value
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}
