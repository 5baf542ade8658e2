package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-slox/internal/ast"
	ierrors "github.com/cwbudde/go-slox/internal/errors"
	"github.com/cwbudde/go-slox/internal/lexer"
	"github.com/cwbudde/go-slox/internal/parser"
	"github.com/cwbudde/go-slox/internal/resolver"
)

// readSource resolves the "file, or -e expr" input convention shared by
// run/lex/parse, mirroring the teacher's runScript/lexScript input handling.
func readSource(evalExpr string, args []string) (source, filename string, err error) {
	switch {
	case evalExpr != "":
		return evalExpr, "<eval>", nil
	case len(args) == 1:
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(data), args[0], nil
	default:
		return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
	}
}

// compile runs the lex → parse → resolve pipeline spec.md §1 treats as
// external collaborators. A non-empty error slice here always corresponds
// to exit code 65 (static error); the caller is responsible for printing it
// with internal/errors.FormatErrors.
func compile(source, filename string) ([]ast.Stmt, map[ast.Expr]int, []*ierrors.CompilerError) {
	l := lexer.New(source)
	toks := l.ScanTokens()
	if len(l.Errors()) > 0 {
		return nil, nil, ierrors.FromStringErrors(l.Errors(), source, filename)
	}

	p := parser.New(toks)
	stmts := p.ParseProgram()
	if len(p.Errors()) > 0 {
		return nil, nil, ierrors.FromStringErrors(p.Errors(), source, filename)
	}

	r := resolver.New()
	r.Resolve(stmts)
	if len(r.Errors()) > 0 {
		return nil, nil, ierrors.FromStringErrors(r.Errors(), source, filename)
	}

	return stmts, r.Locals(), nil
}
