package interp

import (
	"github.com/cwbudde/go-slox/internal/ast"
	"github.com/cwbudde/go-slox/pkg/token"
)

// evalExpr evaluates a single expression node to a Value (spec.md §2
// component E). Every case mirrors the typing rules and error kinds of
// spec.md §4.A/§4.E/§7.
func (it *Interpreter) evalExpr(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return literalValue(e.Value), nil

	case *ast.GroupingExpr:
		return it.evalExpr(e.Expression)

	case *ast.VariableExpr:
		return it.lookupVariable(e.Name, e)

	case *ast.AssignExpr:
		value, err := it.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := it.locals[e]; ok {
			it.env.AssignAt(distance, e.Name.Lexeme, value)
		} else if err := it.globals.Assign(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.UnaryExpr:
		return it.evalUnary(e)

	case *ast.BinaryExpr:
		return it.evalBinary(e)

	case *ast.LogicalExpr:
		return it.evalLogical(e)

	case *ast.TernaryExpr:
		cond, err := it.evalExpr(e.Cond)
		if err != nil {
			return nil, err
		}
		if isTruthy(cond) {
			return it.evalExpr(e.OnTrue)
		}
		return it.evalExpr(e.OnFalse)

	case *ast.CallExpr:
		return it.evalCall(e)

	case *ast.GetExpr:
		obj, err := it.evalExpr(e.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, newTypeError(e.Name, "only instances have properties")
		}
		return inst.Get(e.Name)

	case *ast.SetExpr:
		obj, err := it.evalExpr(e.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, newTypeError(e.Name, "only instances have fields")
		}
		value, err := it.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		inst.Set(e.Name, value)
		return value, nil

	case *ast.ThisExpr:
		return nil, newUnimplemented(e.Keyword, "'this'")

	case *ast.SuperExpr:
		return nil, newUnimplemented(e.Keyword, "'super'")

	case *ast.ArrayExpr:
		return nil, newUnimplemented(e.Tok, "array literals")

	case *ast.ArrayGetExpr:
		return nil, newUnimplemented(e.Tok, "array indexing")

	case *ast.ArraySetExpr:
		return nil, newUnimplemented(e.Tok, "array indexing")

	default:
		return nil, newUnimplemented(token.Token{}, "expression")
	}
}

func literalValue(v any) Value {
	switch lit := v.(type) {
	case nil:
		return NilValue{}
	case bool:
		return BoolValue{Value: lit}
	case float64:
		return NumberValue{Value: lit}
	case string:
		return StringValue{Value: lit}
	default:
		return NilValue{}
	}
}

func (it *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := it.locals[expr]; ok {
		return it.env.GetAt(distance, name.Lexeme), nil
	}
	return it.globals.Get(name)
}

func (it *Interpreter) evalUnary(e *ast.UnaryExpr) (Value, error) {
	right, err := it.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Type {
	case token.MINUS:
		n, ok := right.(NumberValue)
		if !ok {
			return nil, newTypeError(e.Op, "operand must be a number")
		}
		return NumberValue{Value: -n.Value}, nil
	case token.BANG:
		return BoolValue{Value: !isTruthy(right)}, nil
	default:
		return nil, newTypeError(e.Op, "unknown unary operator")
	}
}

func (it *Interpreter) evalLogical(e *ast.LogicalExpr) (Value, error) {
	left, err := it.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Type == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return it.evalExpr(e.Right)
}

// evalBinary implements spec.md §4.A's operator typing table, including the
// comma operator (evaluate both operands, yield the right one).
func (it *Interpreter) evalBinary(e *ast.BinaryExpr) (Value, error) {
	left, err := it.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Op.Type == token.COMMA {
		return it.evalExpr(e.Right)
	}

	right, err := it.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.PLUS:
		if ln, lok := left.(NumberValue); lok {
			if rn, rok := right.(NumberValue); rok {
				return NumberValue{Value: ln.Value + rn.Value}, nil
			}
		}
		if ls, lok := left.(StringValue); lok {
			if rs, rok := right.(StringValue); rok {
				return StringValue{Value: ls.Value + rs.Value}, nil
			}
		}
		return nil, newTypeError(e.Op, "operands must be two numbers or two strings")

	case token.MINUS:
		ln, rn, ok := bothNumbers(left, right)
		if !ok {
			return nil, newTypeError(e.Op, "operands must be numbers")
		}
		return NumberValue{Value: ln - rn}, nil

	case token.STAR:
		ln, rn, ok := bothNumbers(left, right)
		if !ok {
			return nil, newTypeError(e.Op, "operands must be numbers")
		}
		return NumberValue{Value: ln * rn}, nil

	case token.SLASH:
		ln, rn, ok := bothNumbers(left, right)
		if !ok {
			return nil, newTypeError(e.Op, "operands must be numbers")
		}
		if rn == 0 {
			return nil, newDivisionByZero(e.Op)
		}
		return NumberValue{Value: ln / rn}, nil

	case token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL:
		return it.evalComparison(e.Op, left, right)

	case token.EQUAL_EQUAL:
		return BoolValue{Value: isEqual(left, right)}, nil

	case token.BANG_EQUAL:
		return BoolValue{Value: !isEqual(left, right)}, nil

	default:
		return nil, newTypeError(e.Op, "unknown binary operator")
	}
}

func (it *Interpreter) evalComparison(op token.Token, left, right Value) (Value, error) {
	if ln, rn, ok := bothNumbers(left, right); ok {
		return BoolValue{Value: compareNumbers(op.Type, ln, rn)}, nil
	}
	if ls, lok := left.(StringValue); lok {
		if rs, rok := right.(StringValue); rok {
			return BoolValue{Value: compareStrings(op.Type, ls.Value, rs.Value)}, nil
		}
	}
	return nil, newTypeError(op, "operands must be two numbers or two strings")
}

func bothNumbers(left, right Value) (float64, float64, bool) {
	ln, lok := left.(NumberValue)
	rn, rok := right.(NumberValue)
	if !lok || !rok {
		return 0, 0, false
	}
	return ln.Value, rn.Value, true
}

func compareNumbers(op token.Type, l, r float64) bool {
	switch op {
	case token.GREATER:
		return l > r
	case token.GREATER_EQUAL:
		return l >= r
	case token.LESS:
		return l < r
	case token.LESS_EQUAL:
		return l <= r
	default:
		return false
	}
}

func compareStrings(op token.Type, l, r string) bool {
	switch op {
	case token.GREATER:
		return l > r
	case token.GREATER_EQUAL:
		return l >= r
	case token.LESS:
		return l < r
	case token.LESS_EQUAL:
		return l <= r
	default:
		return false
	}
}

func (it *Interpreter) evalCall(e *ast.CallExpr) (Value, error) {
	callee, err := it.evalExpr(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := it.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, newTypeError(e.Paren, "can only call functions and classes")
	}
	if len(args) != callable.Arity() {
		return nil, newArityError(e.Paren, callable.Arity(), len(args))
	}
	return callable.Call(it, args)
}
