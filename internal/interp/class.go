package interp

import "fmt"

// Class is a zero-arg constructor (spec.md §3/§4.D). Method binding,
// inheritance, and "this"/"super" resolution are explicitly left as an open
// question by spec.md §9 ("Open question — Class features"); this Class
// only carries a name and constructs fieldless, method-less Instances.
type Class struct {
	Name string
}

func (c *Class) Type() string   { return "class" }
func (c *Class) String() string { return fmt.Sprintf("<class %s>", c.Name) }
func (c *Class) Arity() int     { return 0 }

// Call constructs a new Instance bound to this class (spec.md §4.D).
func (c *Class) Call(it *Interpreter, args []Value) (Value, error) {
	return &Instance{Class: c, Fields: make(map[string]Value)}, nil
}
