package ast

import "fmt"

type Stmt interface {
	Node
	stmtNode()
	String() string
	GetSpan() Span
}

type PrintStmt struct {
	S     Span
	Value Expr
}

func (p *PrintStmt) NodeKind() string { return "PrintStmt" }
func (p *PrintStmt) stmtNode()        {}
func (p *PrintStmt) GetSpan() Span    { return p.S }
func (p *PrintStmt) String() string   { return fmt.Sprintf("PrintStmt(%s)", p.Value.String()) }

// VarStmt declares Name in the current scope. Init may be nil.
type VarStmt struct {
	S    Span
	Name string
	Init Expr
}

func (v *VarStmt) NodeKind() string { return "VarStmt" }
func (v *VarStmt) stmtNode()        {}
func (v *VarStmt) GetSpan() Span    { return v.S }
func (v *VarStmt) String() string {
	if v.Init == nil {
		return fmt.Sprintf("Var(%s)", v.Name)
	}
	return fmt.Sprintf("Var(%s = %s)", v.Name, v.Init.String())
}

type ExprStmt struct {
	S    Span
	Expr Expr
}

func (e *ExprStmt) NodeKind() string { return "ExprStmt" }
func (e *ExprStmt) stmtNode()        {}
func (e *ExprStmt) GetSpan() Span    { return e.S }
func (e *ExprStmt) String() string   { return fmt.Sprintf("ExprStmt(%s)", e.Expr.String()) }

type BlockStmt struct {
	S     Span
	Stmts []Stmt
}

func (b *BlockStmt) NodeKind() string { return "BlockStmt" }
func (b *BlockStmt) stmtNode()        {}
func (b *BlockStmt) GetSpan() Span    { return b.S }
func (b *BlockStmt) String() string   { return fmt.Sprintf("Block(%d)", len(b.Stmts)) }

// IfStmt has an optional Else (nil when absent).
type IfStmt struct {
	S         Span
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (i *IfStmt) NodeKind() string { return "IfStmt" }
func (i *IfStmt) stmtNode()        {}
func (i *IfStmt) GetSpan() Span    { return i.S }
func (i *IfStmt) String() string {
	if i.Else == nil {
		return fmt.Sprintf("IfStmt(%s, then=%s)", i.Condition.String(), i.Then.String())
	}
	return fmt.Sprintf("IfStmt(%s, then=%s, else=%s)", i.Condition.String(), i.Then.String(), i.Else.String())
}

type WhileStmt struct {
	S         Span
	Condition Expr
	Body      Stmt
}

func (w *WhileStmt) NodeKind() string { return "WhileStmt" }
func (w *WhileStmt) stmtNode()        {}
func (w *WhileStmt) GetSpan() Span    { return w.S }
func (w *WhileStmt) String() string {
	return fmt.Sprintf("WhileStmt(%s, body=%s)", w.Condition.String(), w.Body.String())
}

type FunctionDecl struct {
	S      Span
	Name   string
	Params []string
	Body   []Stmt
}

func (f *FunctionDecl) NodeKind() string { return "FunctionDecl" }
func (f *FunctionDecl) stmtNode()        {}
func (f *FunctionDecl) GetSpan() Span    { return f.S }
func (f *FunctionDecl) String() string {
	return fmt.Sprintf("Function(%s, params=%d, body=%d)", f.Name, len(f.Params), len(f.Body))
}

// ReturnStmt has an optional Value (nil means return nil).
type ReturnStmt struct {
	S     Span
	Value Expr
}

func (r *ReturnStmt) NodeKind() string { return "ReturnStmt" }
func (r *ReturnStmt) stmtNode()        {}
func (r *ReturnStmt) GetSpan() Span    { return r.S }
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "Return()"
	}
	return fmt.Sprintf("Return(%s)", r.Value.String())
}
