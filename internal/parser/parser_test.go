package parser

import (
	"testing"

	"github.com/cwbudde/go-slox/internal/ast"
	"github.com/cwbudde/go-slox/internal/lexer"
)

func parseSource(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks := lexer.New(src).ScanTokens()
	p := New(toks)
	stmts := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return stmts
}

func TestParseVarDeclaration(t *testing.T) {
	stmts := parseSource(t, "var x = 1 + 2;")
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	v, ok := stmts[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.VarStmt", stmts[0])
	}
	if v.Name.Lexeme != "x" {
		t.Errorf("name = %q, want x", v.Name.Lexeme)
	}
	if _, ok := v.Initializer.(*ast.BinaryExpr); !ok {
		t.Errorf("initializer = %T, want *ast.BinaryExpr", v.Initializer)
	}
}

func TestParsePrintMultipleArgsNotSwallowedByComma(t *testing.T) {
	stmts := parseSource(t, `print 1, 2, 3;`)
	p, ok := stmts[0].(*ast.PrintStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.PrintStmt", stmts[0])
	}
	if len(p.Args) != 3 {
		t.Fatalf("got %d print args, want 3 (comma operator must not swallow the separators)", len(p.Args))
	}
}

func TestParseCallArgsNotSwallowedByComma(t *testing.T) {
	stmts := parseSource(t, `f(1, 2, 3);`)
	es, ok := stmts[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ExpressionStmt", stmts[0])
	}
	call, ok := es.Expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.CallExpr", es.Expr)
	}
	if len(call.Args) != 3 {
		t.Fatalf("got %d call args, want 3", len(call.Args))
	}
}

func TestParseTernary(t *testing.T) {
	stmts := parseSource(t, `var x = true ? 1 : 2;`)
	v := stmts[0].(*ast.VarStmt)
	if _, ok := v.Initializer.(*ast.TernaryExpr); !ok {
		t.Fatalf("got %T, want *ast.TernaryExpr", v.Initializer)
	}
}

func TestParseAssignmentTargets(t *testing.T) {
	stmts := parseSource(t, `x = 1; obj.field = 2;`)
	if _, ok := stmts[0].(*ast.ExpressionStmt).Expr.(*ast.AssignExpr); !ok {
		t.Errorf("got %T, want *ast.AssignExpr", stmts[0].(*ast.ExpressionStmt).Expr)
	}
	if _, ok := stmts[1].(*ast.ExpressionStmt).Expr.(*ast.SetExpr); !ok {
		t.Errorf("got %T, want *ast.SetExpr", stmts[1].(*ast.ExpressionStmt).Expr)
	}
}

func TestParseForLoopClauses(t *testing.T) {
	stmts := parseSource(t, `for (var i = 0; i < 10; i = i + 1) print i;`)
	f, ok := stmts[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ForStmt", stmts[0])
	}
	if f.Init == nil || f.Condition == nil || f.Increment == nil {
		t.Fatal("expected all three for-clauses to be present")
	}
}

func TestParseClassWithMethods(t *testing.T) {
	stmts := parseSource(t, `class Greeter { hello() { print "hi"; } }`)
	c, ok := stmts[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ClassStmt", stmts[0])
	}
	if len(c.Methods) != 1 || c.Methods[0].Name.Lexeme != "hello" {
		t.Fatalf("unexpected methods: %+v", c.Methods)
	}
}

func TestParseSynchronizeAfterError(t *testing.T) {
	toks := lexer.New("var ; var y = 1;").ScanTokens()
	p := New(toks)
	stmts := p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error for the malformed first declaration")
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1 (parsing should resume at 'var y = 1;')", len(stmts))
	}
}
