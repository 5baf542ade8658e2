package interp

import (
	"fmt"
	"io"

	"github.com/cwbudde/go-slox/internal/ast"
	"github.com/cwbudde/go-slox/pkg/token"
)

// Interpreter walks a resolved AST and executes it (spec.md §2 component E).
// Grounded on the teacher's internal/interp.Interpreter: a globals
// environment that never goes away, a movable "current" environment that
// block/function calls swap in and restore, and a locals map supplied by
// the resolver for distance-indexed variable access.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[ast.Expr]int
	Stdout  io.Writer

	// maxCallDepth is a driver-configurable recursion guard (0 = unlimited),
	// set via SetMaxCallDepth from internal/options. It is not part of
	// spec.md's evaluator contract; see function.go's ErrMaxCallDepthExceeded.
	maxCallDepth int
	callDepth    int

	// traceFn, when set, is called before executing each top-level-reachable
	// statement with the statement and its current environment depth
	// (slox run --trace, SPEC_FULL.md §1.1).
	traceFn func(stmt ast.Stmt, envDepth int)
}

// SetTrace installs a per-statement trace callback, or clears it if fn is
// nil.
func (it *Interpreter) SetTrace(fn func(stmt ast.Stmt, envDepth int)) {
	it.traceFn = fn
}

func (it *Interpreter) envDepth() int {
	depth := 0
	for e := it.env; e != nil; e = e.enclosing {
		depth++
	}
	return depth
}

// NewInterpreter builds an Interpreter with its global environment
// pre-populated with the built-ins from SPEC_FULL.md §4 (Clock, JSONGet,
// JSONSet).
func NewInterpreter(stdout io.Writer) *Interpreter {
	globals := NewEnvironment()
	it := &Interpreter{
		globals: globals,
		env:     globals,
		locals:  make(map[ast.Expr]int),
		Stdout:  stdout,
	}
	registerBuiltins(globals)
	return it
}

// Resolve records the scope distance the resolver computed for a variable
// reference or assignment target (spec.md §9's resolved-distance design).
func (it *Interpreter) Resolve(expr ast.Expr, depth int) {
	it.locals[expr] = depth
}

// SetLocals bulk-loads a resolver map, replacing any locals recorded so far.
func (it *Interpreter) SetLocals(locals map[ast.Expr]int) {
	it.locals = locals
}

// SetMaxCallDepth installs a recursion guard; 0 (the default) means
// unlimited.
func (it *Interpreter) SetMaxCallDepth(n int) {
	it.maxCallDepth = n
}

// Interpret runs a program's top-level statements in order. A runtime error
// aborts the run at the statement that raised it — statements already
// executed keep their effects, and nothing after the failing statement
// runs (spec.md §7).
func (it *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := it.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// EvalExpr evaluates a single expression in the interpreter's current
// (global, at the top level) environment. Exported for the REPL driver's
// auto-print option (internal/options.AutoPrint), which needs a bare
// expression's value without wrapping it in a PrintStmt.
func (it *Interpreter) EvalExpr(expr ast.Expr) (Value, error) {
	return it.evalExpr(expr)
}

// ---------------------------------------------------------------------------
// Statement execution
// ---------------------------------------------------------------------------

func (it *Interpreter) execStmts(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := it.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) execStmt(stmt ast.Stmt) error {
	if it.traceFn != nil {
		it.traceFn(stmt, it.envDepth())
	}
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := it.evalExpr(s.Expr)
		return err

	case *ast.PrintStmt:
		// Each value is followed by a space, including the last one, then a
		// final newline (spec.md §4.E, confirmed by §8's literal "3 \n").
		for _, arg := range s.Args {
			v, err := it.evalExpr(arg)
			if err != nil {
				return err
			}
			fmt.Fprint(it.Stdout, stringify(v))
			fmt.Fprint(it.Stdout, " ")
		}
		fmt.Fprintln(it.Stdout)
		return nil

	case *ast.VarStmt:
		var value Value = NilValue{}
		if s.Initializer != nil {
			v, err := it.evalExpr(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		it.env.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return it.execBlock(s.Stmts, NewEnclosedEnvironment(it.env))

	case *ast.IfStmt:
		cond, err := it.evalExpr(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return it.execStmt(s.Then)
		}
		if s.Else != nil {
			return it.execStmt(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		return it.execWhile(s)

	case *ast.ForStmt:
		return it.execFor(s)

	case *ast.BreakStmt:
		return breakSignal{}

	case *ast.ContinueStmt:
		return continueSignal{}

	case *ast.ReturnStmt:
		var value Value = NilValue{}
		if s.Value != nil {
			v, err := it.evalExpr(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return returnSignal{Value: value}

	case *ast.FunctionStmt:
		fn := &Function{Decl: s, Closure: it.env}
		it.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ClassStmt:
		// Two-step define-then-assign (spec.md §4.E) lets a method body
		// refer to its own enclosing class name, since the class value
		// isn't built until after the name is already in scope.
		it.env.Define(s.Name.Lexeme, NilValue{})
		class := &Class{Name: s.Name.Lexeme}
		return it.env.Assign(s.Name, class)

	default:
		return newUnimplemented(token.Token{Pos: stmt.Pos()}, fmt.Sprintf("statement %T", stmt))
	}
}

// execBlock swaps in a child environment for the duration of stmts and
// restores the previous one on every exit path — normal completion, a
// propagated error, or a break/continue/return signal (spec.md §4.E, the
// single most important invariant for nested scoping).
func (it *Interpreter) execBlock(stmts []ast.Stmt, env *Environment) error {
	previous := it.env
	it.env = env
	defer func() { it.env = previous }()
	return it.execStmts(stmts)
}

func (it *Interpreter) execWhile(s *ast.WhileStmt) error {
	for {
		cond, err := it.evalExpr(s.Condition)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		err = it.execStmt(s.Body)
		if err == nil {
			continue
		}
		switch err.(type) {
		case breakSignal:
			return nil
		case continueSignal:
			continue
		default:
			return err
		}
	}
}

// execFor runs the three-clause loop directly, applying spec.md §4.E's
// increment-after-continue ordering: the increment clause runs after the
// body completes normally AND after a caught continue, but not after a
// caught break.
func (it *Interpreter) execFor(s *ast.ForStmt) error {
	if s.Init != nil {
		if err := it.execStmt(s.Init); err != nil {
			return err
		}
	}
	for {
		if s.Condition != nil {
			cond, err := it.evalExpr(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
		}

		err := it.execStmt(s.Body)
		if err != nil {
			switch err.(type) {
			case breakSignal:
				return nil
			case continueSignal:
				// fall through to the increment below
			default:
				return err
			}
		}

		if s.Increment != nil {
			if _, err := it.evalExpr(s.Increment); err != nil {
				return err
			}
		}
	}
}
