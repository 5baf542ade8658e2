package resolver

import (
	"testing"

	"github.com/cwbudde/go-slox/internal/ast"
	"github.com/cwbudde/go-slox/internal/lexer"
	"github.com/cwbudde/go-slox/internal/parser"
)

func resolveSource(t *testing.T, src string) ([]ast.Stmt, *Resolver) {
	t.Helper()
	toks := lexer.New(src).ScanTokens()
	p := parser.New(toks)
	stmts := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	r := New()
	r.Resolve(stmts)
	return stmts, r
}

// TestResolveLocalShadowing checks that a block-scoped "x" resolves to
// distance 0 from inside the block, while the outer "x" read afterwards
// resolves to global (no recorded distance).
func TestResolveLocalShadowing(t *testing.T) {
	stmts, r := resolveSource(t, `
var x = "global";
{
  var x = "local";
  print x;
}
print x;
`)
	if len(r.Errors()) > 0 {
		t.Fatalf("unexpected resolver errors: %v", r.Errors())
	}

	block := stmts[1].(*ast.BlockStmt)
	innerPrint := block.Stmts[1].(*ast.PrintStmt)
	innerVar := innerPrint.Args[0].(*ast.VariableExpr)
	if d, ok := r.Locals()[innerVar]; !ok || d != 0 {
		t.Errorf("inner x: distance = %v, ok = %v; want 0, true", d, ok)
	}

	outerPrint := stmts[2].(*ast.PrintStmt)
	outerVar := outerPrint.Args[0].(*ast.VariableExpr)
	if _, ok := r.Locals()[outerVar]; ok {
		t.Errorf("outer x should resolve to global (no recorded distance)")
	}
}

func TestResolveFunctionParamDistance(t *testing.T) {
	stmts, r := resolveSource(t, `
fun f(a) {
  print a;
}
`)
	fn := stmts[0].(*ast.FunctionStmt)
	printStmt := fn.Body[0].(*ast.PrintStmt)
	v := printStmt.Args[0].(*ast.VariableExpr)
	if d, ok := r.Locals()[v]; !ok || d != 0 {
		t.Errorf("param a: distance = %v, ok = %v; want 0, true", d, ok)
	}
}

func TestResolveSelfInitializerError(t *testing.T) {
	_, r := resolveSource(t, `
{
  var a = a;
}
`)
	if len(r.Errors()) == 0 {
		t.Fatal("expected an error reading a local variable in its own initializer")
	}
}

// TestResolveForInitSharesScope checks that a for-loop's init variable is
// visible to the condition/increment/body without an extra implicit scope:
// resolved here inside a block (not at the top level, which never pushes a
// scope and so would trivially resolve everything to "global").
func TestResolveForInitSharesScope(t *testing.T) {
	stmts, r := resolveSource(t, `
{
  for (var i = 0; i < 3; i = i + 1) print i;
}
`)
	block := stmts[0].(*ast.BlockStmt)
	f := block.Stmts[0].(*ast.ForStmt)
	printStmt := f.Body.(*ast.PrintStmt)
	v := printStmt.Args[0].(*ast.VariableExpr)
	if _, ok := r.Locals()[v]; !ok {
		t.Errorf("loop variable i should resolve locally, not globally")
	}
}
