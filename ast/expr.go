package ast

import (
	"fmt"
	"strings"
)

type Expr interface {
	Node
	exprNode()
	String() string
	GetSpan() Span
}

type StringLiteral struct {
	S     Span
	Value string
}

func (s *StringLiteral) NodeKind() string { return "StringLiteral" }
func (s *StringLiteral) exprNode()        {}
func (s *StringLiteral) GetSpan() Span    { return s.S }
func (s *StringLiteral) String() string   { return fmt.Sprintf("String(%q)", s.Value) }

// NumberLiteral holds the parsed value; Lexeme keeps the source spelling for printing.
type NumberLiteral struct {
	S      Span
	Lexeme string
	Value  float64
}

func (n *NumberLiteral) NodeKind() string { return "NumberLiteral" }
func (n *NumberLiteral) exprNode()        {}
func (n *NumberLiteral) GetSpan() Span    { return n.S }
func (n *NumberLiteral) String() string   { return fmt.Sprintf("Number(%s)", n.Lexeme) }

type BoolLiteral struct {
	S     Span
	Value bool
}

func (b *BoolLiteral) NodeKind() string { return "BoolLiteral" }
func (b *BoolLiteral) exprNode()        {}
func (b *BoolLiteral) GetSpan() Span    { return b.S }
func (b *BoolLiteral) String() string {
	if b.Value {
		return "Bool(true)"
	}
	return "Bool(false)"
}

type NilLiteral struct {
	S Span
}

func (n *NilLiteral) NodeKind() string { return "NilLiteral" }
func (n *NilLiteral) exprNode()        {}
func (n *NilLiteral) GetSpan() Span    { return n.S }
func (n *NilLiteral) String() string   { return "Nil" }

type GroupingExpr struct {
	S     Span
	Inner Expr
}

func (g *GroupingExpr) NodeKind() string { return "GroupingExpr" }
func (g *GroupingExpr) exprNode()        {}
func (g *GroupingExpr) GetSpan() Span    { return g.S }
func (g *GroupingExpr) String() string   { return fmt.Sprintf("Group(%s)", g.Inner.String()) }

type Identifier struct {
	S    Span
	Name string
}

func (i *Identifier) NodeKind() string { return "Identifier" }
func (i *Identifier) exprNode()        {}
func (i *Identifier) GetSpan() Span    { return i.S }
func (i *Identifier) String() string   { return fmt.Sprintf("Ident(%s)", i.Name) }

// AssignExpr rebinds an existing variable; its value is the assigned value.
type AssignExpr struct {
	S     Span
	Name  string
	Value Expr
}

func (a *AssignExpr) NodeKind() string { return "AssignExpr" }
func (a *AssignExpr) exprNode()        {}
func (a *AssignExpr) GetSpan() Span    { return a.S }
func (a *AssignExpr) String() string {
	return fmt.Sprintf("Assign(%s = %s)", a.Name, a.Value.String())
}

type UnaryExpr struct {
	S     Span
	Op    string
	Right Expr
}

func (u *UnaryExpr) NodeKind() string { return "UnaryExpr" }
func (u *UnaryExpr) exprNode()        {}
func (u *UnaryExpr) GetSpan() Span    { return u.S }
func (u *UnaryExpr) String() string {
	return fmt.Sprintf("Unary(%s %s)", u.Op, u.Right.String())
}

type BinaryExpr struct {
	S     Span
	Left  Expr
	Op    string
	Right Expr
}

func (b *BinaryExpr) NodeKind() string { return "BinaryExpr" }
func (b *BinaryExpr) exprNode()        {}
func (b *BinaryExpr) GetSpan() Span    { return b.S }
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("Binary(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

// LogicalExpr is "and"/"or"; the right side is evaluated only when needed.
type LogicalExpr struct {
	S     Span
	Left  Expr
	Op    string
	Right Expr
}

func (l *LogicalExpr) NodeKind() string { return "LogicalExpr" }
func (l *LogicalExpr) exprNode()        {}
func (l *LogicalExpr) GetSpan() Span    { return l.S }
func (l *LogicalExpr) String() string {
	return fmt.Sprintf("Logical(%s %s %s)", l.Left.String(), l.Op, l.Right.String())
}

type CallExpr struct {
	S      Span
	Callee Expr
	Args   []Expr
}

func (c *CallExpr) NodeKind() string { return "CallExpr" }
func (c *CallExpr) exprNode()        {}
func (c *CallExpr) GetSpan() Span    { return c.S }
func (c *CallExpr) String() string {
	if len(c.Args) == 0 {
		return fmt.Sprintf("Call(%s)", c.Callee.String())
	}
	parts := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		parts = append(parts, a.String())
	}
	return fmt.Sprintf("Call(%s, %s)", c.Callee.String(), strings.Join(parts, ", "))
}
