package interp

import (
	"fmt"

	"github.com/cwbudde/go-slox/pkg/token"
)

// Instance owns a reference to its Class and a field map (spec.md §3/§4.D).
// Fields are created on first assignment; reading an undefined field is a
// runtime error.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (i *Instance) Type() string   { return "instance" }
func (i *Instance) String() string { return fmt.Sprintf("%s instance", i.Class.Name) }

// Get reads a field, or fails UndefinedProperty (spec.md §4.D).
func (i *Instance) Get(name token.Token) (Value, error) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}
	return nil, newUndefinedProperty(name, name.Lexeme)
}

// Set writes a field, creating it if absent (spec.md §4.D). Mutation
// through any reference to this Instance is observable by every other
// holder of the same reference (spec.md §5).
func (i *Instance) Set(name token.Token, value Value) {
	i.Fields[name.Lexeme] = value
}
