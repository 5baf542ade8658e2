package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/go-slox/internal/lexer"
	"github.com/cwbudde/go-slox/internal/parser"
	"github.com/cwbudde/go-slox/internal/resolver"
)

// run lexes, parses, resolves and interprets src, returning everything
// written via "print" and any error from the final Interpret call.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	toks := lexer.New(src).ScanTokens()
	p := parser.New(toks)
	stmts := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}

	r := resolver.New()
	r.Resolve(stmts)
	if len(r.Errors()) > 0 {
		t.Fatalf("unexpected resolver errors: %v", r.Errors())
	}

	var out bytes.Buffer
	it := NewInterpreter(&out)
	it.SetLocals(r.Locals())
	err := it.Interpret(stmts)
	return out.String(), err
}

func TestInterpretBlockScopedShadowing(t *testing.T) {
	out, err := run(t, `
var x = "outer";
{
  var x = "inner";
  print x;
}
print x;
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "inner \nouter \n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInterpretClosureCapturesDefiningEnvironment(t *testing.T) {
	out, err := run(t, `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    print count;
  }
  return increment;
}
var counter = makeCounter();
counter();
counter();
counter();
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "1 \n2 \n3 \n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// TestInterpretForLoopIncrementsAfterContinueNotAfterBreak checks that the
// increment clause runs after a caught continue but not after a caught
// break: the top-level loop variable is global, so printing it after the
// loop shows 3 (the value it broke at), not 4.
func TestInterpretForLoopIncrementsAfterContinueNotAfterBreak(t *testing.T) {
	out, err := run(t, `
for (var i = 0; i < 5; i = i + 1) {
  if (i == 1) continue;
  if (i == 3) break;
  print i;
}
print i;
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "0 \n2 \n3 \n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInterpretStringComparisonIsLexicographic(t *testing.T) {
	out, err := run(t, `
print "apple" < "banana";
print "banana" < "apple";
print "a" == "a";
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "true \nfalse \ntrue \n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInterpretDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := run(t, `print 1 / 0;`)
	if err == nil {
		t.Fatal("expected a division-by-zero error")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != DivisionByZeroKind {
		t.Errorf("got %v, want RuntimeError{Kind: DivisionByZero}", err)
	}
}

func TestInterpretUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `print undefinedThing;`)
	if err == nil {
		t.Fatal("expected an undefined-variable error")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != UndefinedVariable {
		t.Errorf("got %v, want RuntimeError{Kind: UndefinedVariable}", err)
	}
}

func TestInterpretTypeErrorOnMixedAddition(t *testing.T) {
	_, err := run(t, `print 1 + "two";`)
	if err == nil {
		t.Fatal("expected a type error")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != TypeErrorKind {
		t.Errorf("got %v, want RuntimeError{Kind: TypeError}", err)
	}
}

func TestInterpretArityErrorOnWrongArgCount(t *testing.T) {
	_, err := run(t, `
fun f(a, b) { return a + b; }
f(1);
`)
	if err == nil {
		t.Fatal("expected an arity error")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != ArityErrorKind {
		t.Errorf("got %v, want RuntimeError{Kind: ArityError}", err)
	}
}

func TestInterpretClassInstantiationAndFields(t *testing.T) {
	out, err := run(t, `
class Point {}
var p = Point();
p.x = 1;
p.y = 2;
print p.x + p.y;
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "3 \n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInterpretUndefinedPropertyIsRuntimeError(t *testing.T) {
	_, err := run(t, `
class Point {}
var p = Point();
print p.missing;
`)
	if err == nil {
		t.Fatal("expected an undefined-property error")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != UndefinedPropertyKind {
		t.Errorf("got %v, want RuntimeError{Kind: UndefinedProperty}", err)
	}
}

func TestInterpretTernaryAndLogicalShortCircuit(t *testing.T) {
	out, err := run(t, `
print true ? "yes" : "no";
print false or "fallback";
print nil and "unreached";
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := []string{"yes ", "fallback ", "nil "}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestInterpretMaxCallDepthExceeded(t *testing.T) {
	toks := lexer.New(`
fun recurse(n) { return recurse(n + 1); }
recurse(0);
`).ScanTokens()
	p := parser.New(toks)
	stmts := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	r := resolver.New()
	r.Resolve(stmts)
	if len(r.Errors()) > 0 {
		t.Fatalf("unexpected resolver errors: %v", r.Errors())
	}

	var out bytes.Buffer
	it := NewInterpreter(&out)
	it.SetLocals(r.Locals())
	it.SetMaxCallDepth(50)
	err := it.Interpret(stmts)
	if err != ErrMaxCallDepthExceeded {
		t.Errorf("got %v, want ErrMaxCallDepthExceeded", err)
	}
}
