// Package resolver performs the single static pass that spec.md treats as an
// external collaborator: for every Variable/Assign expression it computes
// the number of enclosing lexical scopes between the expression and the
// scope that declares the name (the "distance" of spec.md §3's Resolver
// Map), or leaves it unrecorded for globals.
//
// This is grounded on the teacher's internal/semantic package shape: a
// single tree walk that reports errors through the same Errors()
// convention as the lexer and parser, run once before evaluation.
package resolver

import (
	"fmt"

	"github.com/cwbudde/go-slox/internal/ast"
)

// functionKind tracks why a new function scope was pushed (for this
// language's trimmed class model, only the function/method distinction
// matters). The resolver records it in currentFn but no check reads it:
// "return" outside a function is not rejected here.
type functionKind int

const (
	fkNone functionKind = iota
	fkFunction
	fkMethod
)

// Resolver walks a parsed program and produces a Locals map.
type Resolver struct {
	scopes      []map[string]bool
	locals      map[ast.Expr]int
	currentFn   functionKind
	errors      []string
}

// New creates a Resolver.
func New() *Resolver {
	return &Resolver{locals: make(map[ast.Expr]int)}
}

// Errors returns accumulated static errors (spec.md §6 exit code 65).
func (r *Resolver) Errors() []string { return r.errors }

// Locals returns the resolver map: for every Variable/Assign expression that
// refers to a non-global binding, the number of scope hops to its defining
// scope. Absent entries mean "global".
func (r *Resolver) Locals() map[ast.Expr]int { return r.locals }

// Resolve resolves a whole program (top-level statement list).
func (r *Resolver) Resolve(stmts []ast.Stmt) {
	r.resolveStmts(stmts)
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)
	case *ast.PrintStmt:
		for _, a := range s.Args {
			r.resolveExpr(a)
		}
	case *ast.VarStmt:
		r.declare(s.Name.Lexeme)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name.Lexeme)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.ForStmt:
		// The for-loop initializer shares the *current* scope (spec.md §4.E:
		// "no implicit extra scope"), so no beginScope/endScope pair here.
		if s.Init != nil {
			r.resolveStmt(s.Init)
		}
		if s.Condition != nil {
			r.resolveExpr(s.Condition)
		}
		if s.Increment != nil {
			r.resolveExpr(s.Increment)
		}
		r.resolveStmt(s.Body)
	case *ast.BreakStmt, *ast.ContinueStmt:
		// Nothing to resolve and no placement check here; one executed
		// outside any loop escapes the evaluator's Interpret as its error
		// (spec.md §4.E).
	case *ast.ReturnStmt:
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	case *ast.FunctionStmt:
		r.declare(s.Name.Lexeme)
		r.define(s.Name.Lexeme)
		r.resolveFunction(s, fkFunction)
	case *ast.ClassStmt:
		r.declare(s.Name.Lexeme)
		r.define(s.Name.Lexeme)
		for _, m := range s.Methods {
			r.resolveFunction(m, fkMethod)
		}
	default:
		r.errors = append(r.errors, fmt.Sprintf("resolver: unhandled statement %T", stmt))
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionKind) {
	enclosing := r.currentFn
	r.currentFn = kind
	defer func() { r.currentFn = enclosing }()

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p.Lexeme)
		r.define(p.Lexeme)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		// nothing to resolve
	case *ast.GroupingExpr:
		r.resolveExpr(e.Expression)
	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if ready, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !ready {
				r.errors = append(r.errors, fmt.Sprintf(
					"[line %d] Error at '%s': can't read local variable in its own initializer",
					e.Name.Pos.Line, e.Name.Lexeme))
			}
		}
		r.resolveLocal(e, e.Name.Lexeme)
	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)
	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)
	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.TernaryExpr:
		r.resolveExpr(e.Cond)
		r.resolveExpr(e.OnTrue)
		r.resolveExpr(e.OnFalse)
	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *ast.GetExpr:
		r.resolveExpr(e.Object)
	case *ast.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.ThisExpr, *ast.SuperExpr:
		// Unimplemented by the evaluator (spec.md §9); nothing to resolve.
	case *ast.ArrayExpr:
		for _, v := range e.Values {
			r.resolveExpr(v)
		}
	case *ast.ArrayGetExpr:
		r.resolveExpr(e.Array)
		r.resolveExpr(e.Index)
	case *ast.ArraySetExpr:
		r.resolveExpr(e.Array)
		r.resolveExpr(e.Index)
		r.resolveExpr(e.Value)
	default:
		r.errors = append(r.errors, fmt.Sprintf("resolver: unhandled expression %T", expr))
	}
}

func (r *Resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any scope: treat as global (spec.md §4.B, §4.E).
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}
