// Package parser builds an AST from a token stream using recursive descent
// with precedence climbing for expressions, grounded on the shape of the
// teacher's internal/parser package (a Parser struct holding current/peek
// tokens, one parseXxx method per grammar production, and an Errors()
// accumulator instead of panicking on the first bad token).
package parser

import (
	"fmt"

	"github.com/cwbudde/go-slox/internal/ast"
	"github.com/cwbudde/go-slox/pkg/token"
)

// Parser consumes a flat token slice (as produced by lexer.ScanTokens) and
// builds a list of top-level statements.
type Parser struct {
	tokens  []token.Token
	current int
	errors  []string
}

// New creates a Parser over tokens (which must end in an EOF token).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns accumulated parse errors. A non-empty result corresponds to
// spec.md §6's exit code 65 (static error).
func (p *Parser) Errors() []string { return p.errors }

// ParseProgram parses the whole token stream into a statement list.
func (p *Parser) ParseProgram() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func (p *Parser) declaration() ast.Stmt {
	defer func() {
		if r := recover(); r != nil {
			p.synchronize()
		}
	}()

	switch {
	case p.match(token.VAR):
		return p.varDeclaration()
	case p.match(token.FUN):
		return p.functionDeclaration("function")
	case p.match(token.CLASS):
		return p.classDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) varDeclaration() ast.Stmt {
	tok := p.previous()
	name := p.consume(token.IDENT, "expect variable name")
	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after variable declaration")
	return &ast.VarStmt{Tok: tok, Name: name, Initializer: init}
}

func (p *Parser) functionDeclaration(kind string) *ast.FunctionStmt {
	tok := p.previous()
	name := p.consume(token.IDENT, "expect "+kind+" name")
	p.consume(token.LEFT_PAREN, "expect '(' after "+kind+" name")
	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			params = append(params, p.consume(token.IDENT, "expect parameter name"))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "expect ')' after parameters")
	p.consume(token.LEFT_BRACE, "expect '{' before "+kind+" body")
	body := p.block()
	return &ast.FunctionStmt{Tok: tok, Name: name, Params: params, Body: body}
}

func (p *Parser) classDeclaration() ast.Stmt {
	tok := p.previous()
	name := p.consume(token.IDENT, "expect class name")
	p.consume(token.LEFT_BRACE, "expect '{' before class body")
	var methods []*ast.FunctionStmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		methods = append(methods, p.method())
	}
	p.consume(token.RIGHT_BRACE, "expect '}' after class body")
	return &ast.ClassStmt{Tok: tok, Name: name, Methods: methods}
}

// method parses "name(params) { body }" — no leading "fun" keyword.
func (p *Parser) method() *ast.FunctionStmt {
	tok := p.peek()
	name := p.consume(token.IDENT, "expect method name")
	p.consume(token.LEFT_PAREN, "expect '(' after method name")
	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			params = append(params, p.consume(token.IDENT, "expect parameter name"))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "expect ')' after parameters")
	p.consume(token.LEFT_BRACE, "expect '{' before method body")
	body := p.block()
	return &ast.FunctionStmt{Tok: tok, Name: name, Params: params, Body: body}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.LEFT_BRACE):
		tok := p.previous()
		return &ast.BlockStmt{Tok: tok, Stmts: p.block()}
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.BREAK):
		tok := p.previous()
		p.consume(token.SEMICOLON, "expect ';' after 'break'")
		return &ast.BreakStmt{Tok: tok}
	case p.match(token.CONTINUE):
		tok := p.previous()
		p.consume(token.SEMICOLON, "expect ';' after 'continue'")
		return &ast.ContinueStmt{Tok: tok}
	case p.match(token.RETURN):
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

// printStatement splits its argument list on COMMA itself, so each argument
// is parsed with assignment() (not expression(), which would otherwise
// swallow the separators as comma-operator expressions).
func (p *Parser) printStatement() ast.Stmt {
	tok := p.previous()
	args := []ast.Expr{p.assignment()}
	for p.match(token.COMMA) {
		args = append(args, p.assignment())
	}
	p.consume(token.SEMICOLON, "expect ';' after value")
	return &ast.PrintStmt{Tok: tok, Args: args}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(token.RIGHT_BRACE, "expect '}' after block")
	return stmts
}

func (p *Parser) ifStatement() ast.Stmt {
	tok := p.previous()
	p.consume(token.LEFT_PAREN, "expect '(' after 'if'")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "expect ')' after if condition")
	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return &ast.IfStmt{Tok: tok, Condition: cond, Then: then, Else: els}
}

func (p *Parser) whileStatement() ast.Stmt {
	tok := p.previous()
	p.consume(token.LEFT_PAREN, "expect '(' after 'while'")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "expect ')' after while condition")
	body := p.statement()
	return &ast.WhileStmt{Tok: tok, Condition: cond, Body: body}
}

// forStatement parses the three-clause C-style loop directly into a ForStmt
// rather than desugaring to While, so the evaluator can apply spec.md §4.E's
// exact increment-after-continue ordering without re-deriving it.
func (p *Parser) forStatement() ast.Stmt {
	tok := p.previous()
	p.consume(token.LEFT_PAREN, "expect '(' after 'for'")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.match(token.VAR):
		init = p.varDeclaration()
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after loop condition")

	var inc ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		inc = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "expect ')' after for clauses")

	body := p.statement()
	return &ast.ForStmt{Tok: tok, Init: init, Condition: cond, Increment: inc, Body: body}
}

func (p *Parser) returnStatement() ast.Stmt {
	tok := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after return value")
	return &ast.ReturnStmt{Tok: tok, Value: value}
}

func (p *Parser) expressionStatement() ast.Stmt {
	tok := p.peek()
	expr := p.expression()
	p.consume(token.SEMICOLON, "expect ';' after expression")
	return &ast.ExpressionStmt{Tok: tok, Expr: expr}
}

// ---------------------------------------------------------------------------
// Expressions — precedence, lowest to highest:
//   comma , assignment , ternary ?: , or , and , equality , comparison ,
//   term , factor , unary , call , primary
// ---------------------------------------------------------------------------

func (p *Parser) expression() ast.Expr {
	return p.comma()
}

func (p *Parser) comma() ast.Expr {
	expr := p.assignment()
	for p.match(token.COMMA) {
		op := p.previous()
		right := p.assignment()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) assignment() ast.Expr {
	expr := p.ternary()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Name: target.Name, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: target.Object, Name: target.Name, Value: value}
		case *ast.ArrayGetExpr:
			return &ast.ArraySetExpr{Tok: target.Tok, Array: target.Array, Index: target.Index, Value: value}
		default:
			p.errorAt(equals, "invalid assignment target")
			return expr
		}
	}

	return expr
}

func (p *Parser) ternary() ast.Expr {
	cond := p.or()
	if p.match(token.QUESTION) {
		tok := p.previous()
		onTrue := p.assignment()
		p.consume(token.COLON, "expect ':' in ternary expression")
		onFalse := p.assignment()
		return &ast.TernaryExpr{Tok: tok, Cond: cond, OnTrue: onTrue, OnFalse: onFalse}
	}
	return cond
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.UnaryExpr{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENT, "expect property name after '.'")
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			args = append(args, p.assignment())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "expect ')' after arguments")
	return &ast.CallExpr{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.LiteralExpr{Tok: p.previous(), Value: false}
	case p.match(token.TRUE):
		return &ast.LiteralExpr{Tok: p.previous(), Value: true}
	case p.match(token.NIL):
		return &ast.LiteralExpr{Tok: p.previous(), Value: nil}
	case p.match(token.NUMBER, token.STRING):
		tok := p.previous()
		return &ast.LiteralExpr{Tok: tok, Value: tok.Literal}
	case p.match(token.IDENT):
		return &ast.VariableExpr{Name: p.previous()}
	case p.match(token.LEFT_PAREN):
		tok := p.previous()
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "expect ')' after expression")
		return &ast.GroupingExpr{Tok: tok, Expression: expr}
	}

	p.errorAt(p.peek(), "expect expression")
	panic(parseError{})
}

// ---------------------------------------------------------------------------
// Token-stream helpers
// ---------------------------------------------------------------------------

type parseError struct{}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) consume(t token.Type, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.errorAt(p.peek(), message)
	panic(parseError{})
}

func (p *Parser) errorAt(tok token.Token, message string) {
	where := fmt.Sprintf("at '%s'", tok.Lexeme)
	if tok.Type == token.EOF {
		where = "at end"
	}
	p.errors = append(p.errors, fmt.Sprintf("[line %d] Error %s: %s", tok.Pos.Line, where, message))
}

// synchronize discards tokens until it reaches a likely statement boundary,
// so one syntax error doesn't cascade into spurious ones.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
