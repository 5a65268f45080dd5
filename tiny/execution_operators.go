package tiny

import (
	"errors"
	"fmt"
	"math"
)

var errDivisionByZero = errors.New("division by zero")

func (exec *Execution) evalUnaryExpr(e *UnaryExpr, env *Env) (Value, error) {
	right, err := exec.evalExpression(e.Right, env)
	if err != nil {
		return NewNull(), err
	}
	switch e.Operator {
	case OpSub:
		switch right.Kind() {
		case KindInt:
			return NewInt(-right.Int()), nil
		case KindFloat:
			return NewFloat(-right.Float()), nil
		default:
			return NewNull(), exec.failAt(e.Pos(), TypeMismatch, "cannot negate %s", right.Kind())
		}
	case OpNot:
		return NewBool(!right.Truthy()), nil
	default:
		return NewNull(), exec.failAt(e.Pos(), TypeMismatch, "unsupported unary operator %s", e.Operator)
	}
}

func (exec *Execution) evalBinaryExpr(expr *BinaryExpr, env *Env) (Value, error) {
	left, err := exec.evalExpression(expr.Left, env)
	if err != nil {
		return NewNull(), err
	}

	// and/or short-circuit on the left operand's truthiness.
	switch expr.Operator {
	case OpAnd:
		if !left.Truthy() {
			return NewBool(false), nil
		}
		right, err := exec.evalExpression(expr.Right, env)
		if err != nil {
			return NewNull(), err
		}
		return NewBool(right.Truthy()), nil
	case OpOr:
		if left.Truthy() {
			return NewBool(true), nil
		}
		right, err := exec.evalExpression(expr.Right, env)
		if err != nil {
			return NewNull(), err
		}
		return NewBool(right.Truthy()), nil
	}

	right, err := exec.evalExpression(expr.Right, env)
	if err != nil {
		return NewNull(), err
	}

	var result Value
	switch expr.Operator {
	case OpAdd:
		result, err = addValues(left, right)
	case OpSub:
		result, err = subtractValues(left, right)
	case OpMul:
		result, err = multiplyValues(left, right)
	case OpDiv:
		result, err = divideValues(left, right)
	case OpPow:
		result, err = powValues(left, right)
	case OpEQ:
		return NewBool(left.Equal(right)), nil
	case OpNotEQ:
		return NewBool(!left.Equal(right)), nil
	case OpLT:
		return exec.compareValues(expr, left, right, func(c int) bool { return c < 0 })
	case OpLTE:
		return exec.compareValues(expr, left, right, func(c int) bool { return c <= 0 })
	case OpGT:
		return exec.compareValues(expr, left, right, func(c int) bool { return c > 0 })
	case OpGTE:
		return exec.compareValues(expr, left, right, func(c int) bool { return c >= 0 })
	default:
		return NewNull(), exec.failAt(expr.Pos(), TypeMismatch, "unsupported operator %s", expr.Operator)
	}

	if err != nil {
		if errors.Is(err, errDivisionByZero) {
			return NewNull(), exec.failAt(expr.Pos(), DivisionByZero, "%s", err.Error())
		}
		return NewNull(), exec.failAt(expr.Pos(), TypeMismatch, "%s", err.Error())
	}
	return result, nil
}

// addValues implements the + matrix: exact integer addition, float promotion
// for mixed numerics, string concatenation with rendered scalars on either
// side, logical AND for two bools, and in-place extension for two lists (the
// left list grows; aliases observe it).
func addValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		return NewInt(left.Int() + right.Int()), nil
	case left.isNumeric() && right.isNumeric():
		return NewFloat(left.Float() + right.Float()), nil
	case left.Kind() == KindBool && right.Kind() == KindBool:
		return NewBool(left.Bool() && right.Bool()), nil
	case left.Kind() == KindString && isConcatOperand(right),
		right.Kind() == KindString && isConcatOperand(left):
		return NewString(left.String() + right.String()), nil
	case left.Kind() == KindList && right.Kind() == KindList:
		l := left.List()
		l.Items = append(l.Items, right.List().Items...)
		return left, nil
	default:
		return NewNull(), fmt.Errorf("unsupported operand types for +: %s and %s", left.Kind(), right.Kind())
	}
}

func isConcatOperand(v Value) bool {
	switch v.Kind() {
	case KindString, KindInt, KindFloat, KindBool:
		return true
	default:
		return false
	}
}

func subtractValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		return NewInt(left.Int() - right.Int()), nil
	case left.isNumeric() && right.isNumeric():
		return NewFloat(left.Float() - right.Float()), nil
	default:
		return NewNull(), fmt.Errorf("unsupported operand types for -: %s and %s", left.Kind(), right.Kind())
	}
}

func multiplyValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		return NewInt(left.Int() * right.Int()), nil
	case left.isNumeric() && right.isNumeric():
		return NewFloat(left.Float() * right.Float()), nil
	default:
		return NewNull(), fmt.Errorf("unsupported operand types for *: %s and %s", left.Kind(), right.Kind())
	}
}

// divideValues keeps two ints in integer arithmetic: division truncates
// toward zero. Mixed operands promote to float. A zero divisor of either
// kind is an error rather than an infinity.
func divideValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		if right.Int() == 0 {
			return NewNull(), errDivisionByZero
		}
		return NewInt(left.Int() / right.Int()), nil
	case left.isNumeric() && right.isNumeric():
		if right.Float() == 0 {
			return NewNull(), errDivisionByZero
		}
		return NewFloat(left.Float() / right.Float()), nil
	default:
		return NewNull(), fmt.Errorf("unsupported operand types for /: %s and %s", left.Kind(), right.Kind())
	}
}

func powValues(left, right Value) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt && right.Int() >= 0:
		return NewInt(intPow(left.Int(), right.Int())), nil
	case left.isNumeric() && right.isNumeric():
		return NewFloat(math.Pow(left.Float(), right.Float())), nil
	default:
		return NewNull(), fmt.Errorf("unsupported operand types for ^: %s and %s", left.Kind(), right.Kind())
	}
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// compareValues orders two ints exactly, mixed numerics as floats, and
// strings lexicographically. Equality stays kind-strict (see Value.Equal);
// ordering is the one place int and float meet.
func (exec *Execution) compareValues(expr *BinaryExpr, left, right Value, cmp func(int) bool) (Value, error) {
	switch {
	case left.Kind() == KindInt && right.Kind() == KindInt:
		l, r := left.Int(), right.Int()
		switch {
		case l < r:
			return NewBool(cmp(-1)), nil
		case l > r:
			return NewBool(cmp(1)), nil
		default:
			return NewBool(cmp(0)), nil
		}
	case left.isNumeric() && right.isNumeric():
		l, r := left.Float(), right.Float()
		switch {
		case l < r:
			return NewBool(cmp(-1)), nil
		case l > r:
			return NewBool(cmp(1)), nil
		default:
			return NewBool(cmp(0)), nil
		}
	case left.Kind() == KindString && right.Kind() == KindString:
		l, r := left.String(), right.String()
		switch {
		case l < r:
			return NewBool(cmp(-1)), nil
		case l > r:
			return NewBool(cmp(1)), nil
		default:
			return NewBool(cmp(0)), nil
		}
	default:
		return NewNull(), exec.failAt(expr.Pos(), TypeMismatch, "cannot compare %s with %s", left.Kind(), right.Kind())
	}
}
