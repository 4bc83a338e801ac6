package ast

// Node is implemented by every expression and statement.
type Node interface {
	NodeKind() string
}
