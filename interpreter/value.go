package interpreter

import (
	"math"
	"strconv"
)

type ValueKind int

const (
	ValNil ValueKind = iota
	ValNumber
	ValString
	ValBool
	ValCallable
)

func (k ValueKind) String() string {
	switch k {
	case ValNil:
		return "nil"
	case ValNumber:
		return "number"
	case ValString:
		return "string"
	case ValBool:
		return "boolean"
	case ValCallable:
		return "function"
	default:
		return "unknown"
	}
}

// Value is an immutable runtime value. Only the field selected by Kind is meaningful.
type Value struct {
	Kind   ValueKind
	Number float64
	Str    string
	Bool   bool
	Fn     Callable
}

func NilValue() Value             { return Value{Kind: ValNil} }
func NumberValue(n float64) Value { return Value{Kind: ValNumber, Number: n} }
func StringValue(s string) Value  { return Value{Kind: ValString, Str: s} }
func BoolValue(b bool) Value      { return Value{Kind: ValBool, Bool: b} }
func CallableValue(fn Callable) Value {
	if fn == nil {
		return NilValue()
	}
	return Value{Kind: ValCallable, Fn: fn}
}

// TypeName is the name used in diagnostics.
func (v Value) TypeName() string { return v.Kind.String() }

// Truthy reports the truthiness of v: nil and false are falsy, everything
// else (including 0 and "") is truthy.
func Truthy(v Value) bool {
	switch v.Kind {
	case ValNil:
		return false
	case ValBool:
		return v.Bool
	default:
		return true
	}
}

// Equal compares two values. Values of different kinds are never equal;
// numbers use IEEE equality so NaN is not equal to itself; callables compare
// by identity.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ValNil:
		return true
	case ValNumber:
		return a.Number == b.Number
	case ValString:
		return a.Str == b.Str
	case ValBool:
		return a.Bool == b.Bool
	case ValCallable:
		return a.Fn == b.Fn
	default:
		return false
	}
}

func (v Value) ToString() string {
	switch v.Kind {
	case ValNumber:
		return formatNumber(v.Number)
	case ValString:
		return v.Str
	case ValBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValCallable:
		if v.Fn == nil {
			return "nil"
		}
		return v.Fn.String()
	default:
		return "nil"
	}
}

// String renders strings quoted, for REPL echo and snapshots.
func (v Value) String() string {
	if v.Kind == ValString {
		return strconv.Quote(v.Str)
	}
	return v.ToString()
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == math.Trunc(n) && math.Abs(n) < 1e15:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
}
