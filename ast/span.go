package ast

// Span is a 1-based source position; the zero Span means "unknown".
type Span struct {
	Line int
	Col  int
}
