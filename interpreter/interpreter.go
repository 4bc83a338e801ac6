// interpreter/interpreter.go
package interpreter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"reef/ast"
)

// DefaultMaxCallDepth bounds nested user-function calls.
const DefaultMaxCallDepth = 1000

// MaxAllowedCallDepth is the ceiling for MaxCallDepth. Deeper limits would let
// recursion exhaust the Go stack before RecursionLimit is raised.
const MaxAllowedCallDepth = 100000

// Options configures a new Interpreter. Zero values select defaults.
type Options struct {
	// Out receives `print` output (default os.Stdout).
	Out io.Writer
	// Logger receives debug tracing of calls and failures (default: discarded).
	Logger *slog.Logger
	// MaxCallDepth is the RecursionLimit threshold (default DefaultMaxCallDepth,
	// clamped to MaxAllowedCallDepth).
	MaxCallDepth int
	// DisabledNatives lists built-in natives that are not registered.
	DisabledNatives []string
}

type frame struct {
	name string
	site ast.Span
}

type Interpreter struct {
	globals *Environment

	out io.Writer
	log *slog.Logger

	filename string
	lines    []string

	frames   []frame
	maxDepth int
}

func NewWithOptions(opts Options) *Interpreter {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.MaxCallDepth <= 0 {
		opts.MaxCallDepth = DefaultMaxCallDepth
	}
	if opts.MaxCallDepth > MaxAllowedCallDepth {
		opts.Logger.Warn("max call depth clamped",
			slog.Int("requested", opts.MaxCallDepth), slog.Int("limit", MaxAllowedCallDepth))
		opts.MaxCallDepth = MaxAllowedCallDepth
	}

	i := &Interpreter{
		globals:  NewEnvironment(nil),
		out:      opts.Out,
		log:      opts.Logger,
		lines:    []string{},
		frames:   []frame{},
		maxDepth: opts.MaxCallDepth,
	}
	i.registerNatives(opts.DisabledNatives)
	return i
}

// NewWithSource creates an interpreter whose runtime errors point into source.
func NewWithSource(filename string, source string, opts Options) *Interpreter {
	i := NewWithOptions(opts)
	i.SetSource(filename, source)
	return i
}

func New() *Interpreter { return NewWithOptions(Options{}) }

func splitLinesPreserve(src string) []string {
	if src == "" {
		return []string{}
	}
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	return strings.Split(src, "\n")
}

// Globals is the persistent global scope. It lives as long as the interpreter.
func (i *Interpreter) Globals() *Environment { return i.globals }

// MaxCallDepth reports the configured recursion limit.
func (i *Interpreter) MaxCallDepth() int { return i.maxDepth }

// Define binds a host value in the global scope.
func (i *Interpreter) Define(name string, v Value) { i.globals.Define(name, v) }

// RegisterNative exposes a host function to scripts under name.
func (i *Interpreter) RegisterNative(name string, arity int, fn NativeFn) {
	i.globals.Define(name, CallableValue(NewNative(name, arity, fn)))
}

// Run executes a unit against the global scope.
func (i *Interpreter) Run(stmts []ast.Stmt) error {
	return i.Execute(stmts, i.globals)
}

// Execute runs stmts in order against env and stops at the first runtime
// error. Statements that completed before the failure keep their effects.
func (i *Interpreter) Execute(stmts []ast.Stmt, env *Environment) error {
	for _, s := range stmts {
		if err := i.execStmt(s, env); err != nil {
			if _, ok := err.(ReturnSignal); ok {
				err = i.runtimeErr(InvalidReturn, s.GetSpan(), "Can't return from top-level code.")
			}
			if kind, ok := KindOf(err); ok {
				i.log.Debug("runtime error", slog.String("kind", kind.String()), slog.String("file", i.filename))
			}
			return err
		}
	}
	return nil
}

// Evaluate evaluates a single expression against the global scope.
func (i *Interpreter) Evaluate(e ast.Expr) (Value, error) {
	return i.evalExpr(e, i.globals)
}

// executeBlock runs stmts in env, propagating errors and return signals.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	for _, s := range stmts {
		if err := i.execStmt(s, env); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) pushFrame(name string, site ast.Span) error {
	if len(i.frames) >= i.maxDepth {
		return i.runtimeErr(RecursionLimit, site, fmt.Sprintf("Maximum call depth exceeded (limit %d) calling '%s'.", i.maxDepth, name))
	}
	i.frames = append(i.frames, frame{name: name, site: site})
	i.log.Debug("push call frame", slog.String("fn", name), slog.Int("depth", len(i.frames)))
	return nil
}

func (i *Interpreter) popFrame() {
	if len(i.frames) == 0 {
		return
	}
	i.frames = i.frames[:len(i.frames)-1]
	i.log.Debug("pop call frame", slog.Int("depth", len(i.frames)))
}

func (i *Interpreter) inFunction() bool { return len(i.frames) > 0 }
