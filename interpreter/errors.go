package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"reef/ast"
)

// ErrorKind classifies runtime failures.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	UndefinedVariable
	TypeMismatch
	NotCallable
	ArityMismatch
	RecursionLimit
	InvalidReturn
	NativeFailure
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedVariable:
		return "UndefinedVariable"
	case TypeMismatch:
		return "TypeMismatch"
	case NotCallable:
		return "NotCallable"
	case ArityMismatch:
		return "ArityMismatch"
	case RecursionLimit:
		return "RecursionLimit"
	case InvalidReturn:
		return "InvalidReturn"
	case NativeFailure:
		return "NativeFailure"
	default:
		return "RuntimeError"
	}
}

// ReturnSignal unwinds a `return` to the nearest call boundary.
type ReturnSignal struct{ Val Value }

func (r ReturnSignal) Error() string { return "return" }

// maxStackLines caps the rendered call stack (deep recursion).
const maxStackLines = 16

type RuntimeError struct {
	Kind  ErrorKind
	File  string
	Span  ast.Span
	Msg   string
	Line  string
	Stack []string

	located bool
}

func (e *RuntimeError) Error() string {
	loc := "unknown"
	switch {
	case e.File != "" && e.Span.Line > 0:
		loc = fmt.Sprintf("%s:%d:%d", e.File, e.Span.Line, e.Span.Col)
	case e.Span.Line > 0:
		loc = fmt.Sprintf("line %d:%d", e.Span.Line, e.Span.Col)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Runtime error (%s) at %s\n", e.Kind, loc))
	b.WriteString(fmt.Sprintf("  %s\n", e.Msg))

	if e.Line != "" && e.Span.Line > 0 {
		b.WriteString(fmt.Sprintf("  %d | %s\n", e.Span.Line, e.Line))

		prefix := fmt.Sprintf("  %d | ", e.Span.Line)
		caretSpaces := len(prefix) + (e.Span.Col - 1)
		if caretSpaces < 0 {
			caretSpaces = 0
		}
		b.WriteString(strings.Repeat(" ", caretSpaces))
		b.WriteString("^\n")
	}

	if len(e.Stack) > 0 {
		b.WriteString("Stack:\n")
		for idx, fn := range e.Stack {
			if idx == maxStackLines {
				b.WriteString(fmt.Sprintf("  ... %d more\n", len(e.Stack)-maxStackLines))
				break
			}
			b.WriteString(fmt.Sprintf("  at %s()\n", fn))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// KindOf returns the kind of a runtime error anywhere in err's chain, and
// false when err is not a runtime error.
func KindOf(err error) (ErrorKind, bool) {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return KindRuntime, false
}

func undefinedVariable(name string) *RuntimeError {
	return &RuntimeError{Kind: UndefinedVariable, Msg: fmt.Sprintf("Undefined variable '%s'.", name)}
}

func (i *Interpreter) runtimeErr(kind ErrorKind, span ast.Span, msg string) error {
	return i.locate(&RuntimeError{Kind: kind, Msg: msg}, span)
}

// locate fills in the position, source line and call stack of a runtime
// error raised without them (environment lookups, natives). Errors that
// already carry a position pass through untouched; any other error becomes a
// NativeFailure at span.
func (i *Interpreter) locate(err error, span ast.Span) error {
	var re *RuntimeError
	if !errors.As(err, &re) {
		re = &RuntimeError{Kind: NativeFailure, Msg: err.Error()}
	} else if re.located {
		return err
	}

	lineText := ""
	if span.Line > 0 && span.Line-1 < len(i.lines) {
		lineText = i.lines[span.Line-1]
	}

	stack := make([]string, 0, len(i.frames))
	for idx := len(i.frames) - 1; idx >= 0; idx-- {
		stack = append(stack, i.frames[idx].name)
	}

	return &RuntimeError{
		Kind:  re.Kind,
		File:  i.filename,
		Span:  span,
		Msg:   re.Msg,
		Line:  lineText,
		Stack: stack,

		located: true,
	}
}
