package interpreter

import (
	"fmt"

	"reef/ast"
)

func (i *Interpreter) evalExpr(e ast.Expr, env *Environment) (Value, error) {
	switch expr := e.(type) {
	case *ast.NumberLiteral:
		return NumberValue(expr.Value), nil
	case *ast.StringLiteral:
		return StringValue(expr.Value), nil
	case *ast.BoolLiteral:
		return BoolValue(expr.Value), nil
	case *ast.NilLiteral:
		return NilValue(), nil
	case *ast.GroupingExpr:
		return i.evalExpr(expr.Inner, env)

	case *ast.Identifier:
		v, err := env.Get(expr.Name)
		if err != nil {
			return Value{}, i.locate(err, expr.S)
		}
		return v, nil

	case *ast.AssignExpr:
		v, err := i.evalExpr(expr.Value, env)
		if err != nil {
			return Value{}, err
		}
		if err := env.Assign(expr.Name, v); err != nil {
			return Value{}, i.locate(err, expr.S)
		}
		return v, nil

	case *ast.UnaryExpr:
		return i.evalUnary(expr, env)

	case *ast.BinaryExpr:
		return i.evalBinary(expr, env)

	case *ast.LogicalExpr:
		left, err := i.evalExpr(expr.Left, env)
		if err != nil {
			return Value{}, err
		}
		switch expr.Op {
		case "or":
			if Truthy(left) {
				return left, nil
			}
		case "and":
			if !Truthy(left) {
				return left, nil
			}
		default:
			return Value{}, i.runtimeErr(KindRuntime, expr.S, fmt.Sprintf("Unknown logical operator '%s'.", expr.Op))
		}
		return i.evalExpr(expr.Right, env)

	case *ast.CallExpr:
		return i.evalCall(expr, env)

	default:
		return Value{}, i.runtimeErr(KindRuntime, e.GetSpan(), fmt.Sprintf("Unsupported expression %s", e.NodeKind()))
	}
}

func (i *Interpreter) evalUnary(u *ast.UnaryExpr, env *Environment) (Value, error) {
	right, err := i.evalExpr(u.Right, env)
	if err != nil {
		return Value{}, err
	}
	switch u.Op {
	case "-":
		if right.Kind != ValNumber {
			return Value{}, i.runtimeErr(TypeMismatch, u.S, fmt.Sprintf("Operand of '-' must be a number, got %s.", right.TypeName()))
		}
		return NumberValue(-right.Number), nil
	case "!":
		return BoolValue(!Truthy(right)), nil
	default:
		return Value{}, i.runtimeErr(KindRuntime, u.S, fmt.Sprintf("Unknown unary operator '%s'.", u.Op))
	}
}

// evalBinary evaluates both operands left to right before applying the operator.
func (i *Interpreter) evalBinary(b *ast.BinaryExpr, env *Environment) (Value, error) {
	left, err := i.evalExpr(b.Left, env)
	if err != nil {
		return Value{}, err
	}
	right, err := i.evalExpr(b.Right, env)
	if err != nil {
		return Value{}, err
	}

	switch b.Op {
	case "==":
		return BoolValue(Equal(left, right)), nil
	case "!=":
		return BoolValue(!Equal(left, right)), nil
	case "+":
		if left.Kind == ValNumber && right.Kind == ValNumber {
			return NumberValue(left.Number + right.Number), nil
		}
		if left.Kind == ValString && right.Kind == ValString {
			return StringValue(left.Str + right.Str), nil
		}
		return Value{}, i.runtimeErr(TypeMismatch, b.S,
			fmt.Sprintf("Operands of '+' must be two numbers or two strings, got %s and %s.", left.TypeName(), right.TypeName()))
	}

	if left.Kind != ValNumber || right.Kind != ValNumber {
		return Value{}, i.runtimeErr(TypeMismatch, b.S,
			fmt.Sprintf("Operands of '%s' must be numbers, got %s and %s.", b.Op, left.TypeName(), right.TypeName()))
	}
	l, r := left.Number, right.Number

	switch b.Op {
	case "-":
		return NumberValue(l - r), nil
	case "*":
		return NumberValue(l * r), nil
	case "/":
		// IEEE semantics: x/0 is ±Infinity, 0/0 is NaN.
		return NumberValue(l / r), nil
	case "<":
		return BoolValue(l < r), nil
	case "<=":
		return BoolValue(l <= r), nil
	case ">":
		return BoolValue(l > r), nil
	case ">=":
		return BoolValue(l >= r), nil
	default:
		return Value{}, i.runtimeErr(KindRuntime, b.S, fmt.Sprintf("Unknown binary operator '%s'.", b.Op))
	}
}

func (i *Interpreter) evalCall(c *ast.CallExpr, env *Environment) (Value, error) {
	callee, err := i.evalExpr(c.Callee, env)
	if err != nil {
		return Value{}, err
	}

	if callee.Kind != ValCallable || callee.Fn == nil {
		return Value{}, i.runtimeErr(NotCallable, c.S, fmt.Sprintf("Can only call functions, got %s.", callee.TypeName()))
	}

	args := make([]Value, 0, len(c.Args))
	for _, a := range c.Args {
		v, err := i.evalExpr(a, env)
		if err != nil {
			return Value{}, err
		}
		args = append(args, v)
	}
	return callee.Fn.Call(i, c.S, args)
}
