package interpreter

import (
	"fmt"
	"sort"
	"strings"
)

// GlobalsSnapshot returns a copy of the global bindings (sorting is caller-side).
func (i *Interpreter) GlobalsSnapshot() map[string]Value {
	return i.globals.Snapshot()
}

// FuncNames returns sorted names of user-declared functions bound globally.
func (i *Interpreter) FuncNames() []string {
	names := []string{}
	for name, v := range i.globals.Snapshot() {
		if v.Kind != ValCallable {
			continue
		}
		if _, ok := v.Fn.(*Function); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// NativeNamesBound returns sorted names of natives currently bound globally.
func (i *Interpreter) NativeNamesBound() []string {
	names := []string{}
	for name, v := range i.globals.Snapshot() {
		if v.Kind != ValCallable {
			continue
		}
		if _, ok := v.Fn.(*NativeFunction); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// FuncSignatures returns "name(params)" for each user function in FuncNames order.
func (i *Interpreter) FuncSignatures() []string {
	globs := i.globals.Snapshot()
	sigs := []string{}
	for _, name := range i.FuncNames() {
		fn := globs[name].Fn.(*Function)
		sigs = append(sigs, fmt.Sprintf("%s(%s)", name, strings.Join(fn.Decl().Params, ", ")))
	}
	return sigs
}
