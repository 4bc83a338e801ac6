package ast

import "strconv"

// Short constructors for building trees by hand, mostly from tests and from
// embedders that generate code. Spans are left zero.

func Num(n float64) *NumberLiteral {
	return &NumberLiteral{Lexeme: strconv.FormatFloat(n, 'g', -1, 64), Value: n}
}

func Str(s string) *StringLiteral { return &StringLiteral{Value: s} }
func Bool(b bool) *BoolLiteral    { return &BoolLiteral{Value: b} }
func Nil() *NilLiteral            { return &NilLiteral{} }
func ID(name string) *Identifier  { return &Identifier{Name: name} }
func Group(e Expr) *GroupingExpr  { return &GroupingExpr{Inner: e} }

func Assign(name string, value Expr) *AssignExpr {
	return &AssignExpr{Name: name, Value: value}
}

func Unary(op string, right Expr) *UnaryExpr {
	return &UnaryExpr{Op: op, Right: right}
}

func Bin(op string, left, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: op, Right: right}
}

func Logic(op string, left, right Expr) *LogicalExpr {
	return &LogicalExpr{Left: left, Op: op, Right: right}
}

func Call(callee Expr, args ...Expr) *CallExpr {
	return &CallExpr{Callee: callee, Args: args}
}

func Print(e Expr) *PrintStmt { return &PrintStmt{Value: e} }
func Eval(e Expr) *ExprStmt   { return &ExprStmt{Expr: e} }

func Var(name string, init Expr) *VarStmt {
	return &VarStmt{Name: name, Init: init}
}

func Block(stmts ...Stmt) *BlockStmt { return &BlockStmt{Stmts: stmts} }

func If(cond Expr, then, els Stmt) *IfStmt {
	return &IfStmt{Condition: cond, Then: then, Else: els}
}

func While(cond Expr, body Stmt) *WhileStmt {
	return &WhileStmt{Condition: cond, Body: body}
}

func Fun(name string, params []string, body ...Stmt) *FunctionDecl {
	return &FunctionDecl{Name: name, Params: params, Body: body}
}

func Return(e Expr) *ReturnStmt { return &ReturnStmt{Value: e} }
