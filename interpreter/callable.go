package interpreter

import (
	"fmt"

	"reef/ast"
)

// Callable is implemented by native functions and user functions.
type Callable interface {
	Name() string
	Arity() int
	// Call invokes the callable; site is the call expression's position.
	Call(in *Interpreter, site ast.Span, args []Value) (Value, error)
	String() string
}

// NativeFn is the host side of a native function. Returned errors that are not
// runtime errors are reported as NativeFailure at the call site.
type NativeFn func(in *Interpreter, args []Value) (Value, error)

type NativeFunction struct {
	name  string
	arity int
	fn    NativeFn
}

func NewNative(name string, arity int, fn NativeFn) *NativeFunction {
	return &NativeFunction{name: name, arity: arity, fn: fn}
}

func (n *NativeFunction) Name() string   { return n.name }
func (n *NativeFunction) Arity() int     { return n.arity }
func (n *NativeFunction) String() string { return fmt.Sprintf("<native fn %s>", n.name) }

func (n *NativeFunction) Call(in *Interpreter, site ast.Span, args []Value) (Value, error) {
	if err := in.checkArity(site, n.arity, len(args)); err != nil {
		return Value{}, err
	}
	v, err := n.fn(in, args)
	if err != nil {
		return Value{}, in.locate(err, site)
	}
	return v, nil
}

// Function is a user-declared function closed over its defining scope.
type Function struct {
	decl    *ast.FunctionDecl
	closure *Environment
}

func NewFunction(decl *ast.FunctionDecl, closure *Environment) *Function {
	return &Function{decl: decl, closure: closure}
}

func (f *Function) Name() string            { return f.decl.Name }
func (f *Function) Arity() int              { return len(f.decl.Params) }
func (f *Function) String() string          { return fmt.Sprintf("<fn %s>", f.decl.Name) }
func (f *Function) Decl() *ast.FunctionDecl { return f.decl }

// Call binds the arguments in a fresh scope enclosed by the closure (never
// the caller's scope) and runs the body there.
func (f *Function) Call(in *Interpreter, site ast.Span, args []Value) (Value, error) {
	if err := in.checkArity(site, f.Arity(), len(args)); err != nil {
		return Value{}, err
	}
	if err := in.pushFrame(f.decl.Name, site); err != nil {
		return Value{}, err
	}
	defer in.popFrame()

	env := NewEnvironment(f.closure)
	for idx, name := range f.decl.Params {
		env.Define(name, args[idx])
	}

	err := in.executeBlock(f.decl.Body, env)
	if rs, ok := err.(ReturnSignal); ok {
		return rs.Val, nil
	}
	if err != nil {
		return Value{}, err
	}
	return NilValue(), nil
}

func (i *Interpreter) checkArity(site ast.Span, want, got int) error {
	if want == got {
		return nil
	}
	return i.runtimeErr(ArityMismatch, site, fmt.Sprintf("Expected %d arguments but got %d.", want, got))
}
