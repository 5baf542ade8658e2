package lexer

import (
	"testing"

	"github.com/cwbudde/go-slox/pkg/token"
)

func TestScanTokensBasic(t *testing.T) {
	src := `var x = 1 + 2.5 * "hi"; // comment
print x;`
	toks := New(src).ScanTokens()

	want := []token.Type{
		token.VAR, token.IDENT, token.EQUAL, token.NUMBER, token.PLUS,
		token.NUMBER, token.STAR, token.STRING, token.SEMICOLON,
		token.PRINT, token.IDENT, token.SEMICOLON, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, ty := range want {
		if toks[i].Type != ty {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, ty)
		}
	}
}

func TestScanTokensKeywords(t *testing.T) {
	src := "and break class continue else false for fun if nil or print return true var while"
	toks := New(src).ScanTokens()
	want := []token.Type{
		token.AND, token.BREAK, token.CLASS, token.CONTINUE, token.ELSE,
		token.FALSE, token.FOR, token.FUN, token.IF, token.NIL, token.OR,
		token.PRINT, token.RETURN, token.TRUE, token.VAR, token.WHILE, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, ty := range want {
		if toks[i].Type != ty {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, ty)
		}
	}
}

func TestScanTokensTwoCharOperators(t *testing.T) {
	src := "!= == <= >= ! < > ?:"
	toks := New(src).ScanTokens()
	want := []token.Type{
		token.BANG_EQUAL, token.EQUAL_EQUAL, token.LESS_EQUAL, token.GREATER_EQUAL,
		token.BANG, token.LESS, token.GREATER, token.QUESTION, token.COLON, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, ty := range want {
		if toks[i].Type != ty {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, ty)
		}
	}
}

func TestScanTokensNumberLiteral(t *testing.T) {
	toks := New("3.5").ScanTokens()
	if toks[0].Type != token.NUMBER {
		t.Fatalf("expected NUMBER, got %s", toks[0].Type)
	}
	if v, ok := toks[0].Literal.(float64); !ok || v != 3.5 {
		t.Errorf("literal = %v, want 3.5", toks[0].Literal)
	}
}

func TestScanTokensStringLiteral(t *testing.T) {
	toks := New(`"hello world"`).ScanTokens()
	if toks[0].Type != token.STRING {
		t.Fatalf("expected STRING, got %s", toks[0].Type)
	}
	if v, ok := toks[0].Literal.(string); !ok || v != "hello world" {
		t.Errorf("literal = %q, want %q", toks[0].Literal, "hello world")
	}
}

func TestScanTokensUnterminatedString(t *testing.T) {
	l := New(`"unterminated`)
	l.ScanTokens()
	if len(l.Errors()) == 0 {
		t.Fatal("expected an error for an unterminated string")
	}
}

func TestScanTokensIllegalCharacter(t *testing.T) {
	l := New("@")
	toks := l.ScanTokens()
	if toks[0].Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", toks[0].Type)
	}
	if len(l.Errors()) == 0 {
		t.Fatal("expected an error for an illegal character")
	}
}
