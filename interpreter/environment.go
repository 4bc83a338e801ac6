package interpreter

import "sort"

// Environment is one lexical scope. A closure keeps a pointer to the scope it
// was declared in, which keeps that scope alive for as long as the closure is
// reachable.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates a scope nested under enclosing (nil for globals).
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]Value),
		enclosing: enclosing,
	}
}

// Enclosing exposes the lexical parent (nil when global).
func (e *Environment) Enclosing() *Environment { return e.enclosing }

// Define binds name in this scope only. Redefinition rebinds.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Assign updates name in the nearest scope that binds it. It never creates a
// binding; an unbound name fails with an UndefinedVariable error.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return undefinedVariable(name)
}

// Get looks name up through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return Value{}, undefinedVariable(name)
}

// Has reports whether name is bound in this scope (no chain walk).
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Snapshot returns a copy of this scope's bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Keys returns this scope's names in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Depth is the number of enclosing scopes (0 for globals).
func (e *Environment) Depth() int {
	d := 0
	for env := e.enclosing; env != nil; env = env.enclosing {
		d++
	}
	return d
}
