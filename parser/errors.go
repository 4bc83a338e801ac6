package parser

import (
	"fmt"
	"strings"
)

// SyntaxError is a single parse failure with its 1-based position.
type SyntaxError struct {
	Line  int
	Col   int
	Where string // "at end", "at 'x'", or "" for lexical errors
	Msg   string
}

func (e *SyntaxError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("[line %d:%d] Error: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("[line %d:%d] Error %s: %s", e.Line, e.Col, e.Where, e.Msg)
}

// ErrorList collects every syntax error of one unit.
type ErrorList []*SyntaxError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	for idx, e := range l {
		if idx > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Err returns nil for an empty list so callers can `return l.Err()`.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
