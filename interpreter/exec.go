package interpreter

import (
	"fmt"

	"reef/ast"
)

func (i *Interpreter) execStmt(s ast.Stmt, env *Environment) error {
	switch stmt := s.(type) {
	case *ast.ExprStmt:
		_, err := i.evalExpr(stmt.Expr, env)
		return err

	case *ast.PrintStmt:
		val, err := i.evalExpr(stmt.Value, env)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(i.out, val.ToString()); err != nil {
			return i.runtimeErr(NativeFailure, stmt.GetSpan(), fmt.Sprintf("print failed: %v", err))
		}
		return nil

	case *ast.VarStmt:
		val := NilValue()
		if stmt.Init != nil {
			v, err := i.evalExpr(stmt.Init, env)
			if err != nil {
				return err
			}
			val = v
		}
		env.Define(stmt.Name, val)
		return nil

	case *ast.BlockStmt:
		return i.executeBlock(stmt.Stmts, NewEnvironment(env))

	case *ast.IfStmt:
		cond, err := i.evalExpr(stmt.Condition, env)
		if err != nil {
			return err
		}
		if Truthy(cond) {
			return i.execStmt(stmt.Then, env)
		}
		if stmt.Else != nil {
			return i.execStmt(stmt.Else, env)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evalExpr(stmt.Condition, env)
			if err != nil {
				return err
			}
			if !Truthy(cond) {
				return nil
			}
			// A block body opens a fresh scope on every iteration.
			if err := i.execStmt(stmt.Body, env); err != nil {
				return err
			}
		}

	case *ast.FunctionDecl:
		// Defined in the scope it closes over, so the body can call itself.
		env.Define(stmt.Name, CallableValue(NewFunction(stmt, env)))
		return nil

	case *ast.ReturnStmt:
		if !i.inFunction() {
			return i.runtimeErr(InvalidReturn, stmt.GetSpan(), "Can't return from top-level code.")
		}
		val := NilValue()
		if stmt.Value != nil {
			v, err := i.evalExpr(stmt.Value, env)
			if err != nil {
				return err
			}
			val = v
		}
		return ReturnSignal{Val: val}

	default:
		return i.runtimeErr(KindRuntime, s.GetSpan(), fmt.Sprintf("Unsupported statement %s", s.NodeKind()))
	}
}
