// Package errors formats static (lex/parse/resolve) errors with source
// context, grounded on the teacher's internal/errors package: a
// CompilerError carrying a message, the offending position, and the source
// text, plus a Format method that prints a line/column header, the source
// line, and a caret pointing at the column.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-slox/pkg/token"
)

// CompilerError is a single static error with enough context to print a
// source-line excerpt and a caret.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// NewCompilerError creates a CompilerError.
func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *CompilerError) Error() string { return e.Format() }

// Format renders the error as a header, the offending source line, and a
// caret under the offending column.
func (e *CompilerError) Format() string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		sb.WriteString("^\n")
	}

	sb.WriteString(e.Message)
	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors formats a batch of static errors the way the CLI reports
// parse/resolve failures.
func FormatErrors(errs []*CompilerError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "compilation failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(e.Format())
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// FromStringErrors converts "[line N] Error ...: message"-shaped strings
// (the format produced by the lexer, parser, and resolver) into
// CompilerErrors with proper source-line context.
func FromStringErrors(raw []string, source, file string) []*CompilerError {
	out := make([]*CompilerError, 0, len(raw))
	for _, msg := range raw {
		out = append(out, NewCompilerError(parseLinePrefix(msg), msg, source, file))
	}
	return out
}

// parseLinePrefix extracts the "[line N]" prefix the lexer/parser/resolver
// use, defaulting to line 0 (column 1) if absent.
func parseLinePrefix(msg string) token.Position {
	if !strings.HasPrefix(msg, "[") {
		return token.Position{Line: 0, Column: 1}
	}
	end := strings.Index(msg, "]")
	if end < 0 {
		return token.Position{Line: 0, Column: 1}
	}
	var line int
	fmt.Sscanf(msg[1:end], "line %d", &line)
	return token.Position{Line: line, Column: 1}
}
