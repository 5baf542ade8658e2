// Command slox is the command-line driver for the interpreter: it wires
// the lexer, parser, resolver, and evaluator together (SPEC_FULL.md §1.1).
package main

import (
	"os"

	"github.com/cwbudde/go-slox/cmd/slox/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
