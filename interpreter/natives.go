package interpreter

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

type native struct {
	name  string
	arity int
	fn    NativeFn
}

var builtinNatives = []native{
	{"clock", 0, nativeClock},
	{"str", 1, nativeStr},
	{"num", 1, nativeNum},
	{"len", 1, nativeLen},
	{"type", 1, nativeType},
}

// NativeNames lists the natives registered by default, in registration order.
func NativeNames() []string {
	names := make([]string, 0, len(builtinNatives))
	for _, n := range builtinNatives {
		names = append(names, n.name)
	}
	return names
}

func (i *Interpreter) registerNatives(disabled []string) {
	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		skip[name] = true
	}
	for _, n := range builtinNatives {
		if skip[n.name] {
			i.log.Debug("native disabled", slog.String("name", n.name))
			continue
		}
		i.RegisterNative(n.name, n.arity, n.fn)
	}
}

func nativeClock(_ *Interpreter, _ []Value) (Value, error) {
	return NumberValue(float64(time.Now().UnixNano()) / 1e9), nil
}

func nativeStr(_ *Interpreter, args []Value) (Value, error) {
	return StringValue(args[0].ToString()), nil
}

func nativeNum(_ *Interpreter, args []Value) (Value, error) {
	if args[0].Kind == ValNumber {
		return args[0], nil
	}
	if args[0].Kind != ValString {
		return Value{}, &RuntimeError{Kind: TypeMismatch, Msg: fmt.Sprintf("num() expects a string or number, got %s.", args[0].TypeName())}
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(args[0].Str), 64)
	if err != nil {
		return Value{}, fmt.Errorf("num() could not parse %q", args[0].Str)
	}
	return NumberValue(n), nil
}

func nativeLen(_ *Interpreter, args []Value) (Value, error) {
	if args[0].Kind != ValString {
		return Value{}, &RuntimeError{Kind: TypeMismatch, Msg: fmt.Sprintf("len() expects a string, got %s.", args[0].TypeName())}
	}
	return NumberValue(float64(utf8.RuneCountInString(args[0].Str))), nil
}

func nativeType(_ *Interpreter, args []Value) (Value, error) {
	return StringValue(args[0].TypeName()), nil
}
