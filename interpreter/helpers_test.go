package interpreter

import (
	"bytes"
	"testing"

	"reef/parser"
)

// runSource parses src and runs it on a fresh interpreter, returning
// everything printed.
func runSource(t *testing.T, src string, opts Options) (string, error) {
	t.Helper()
	var out bytes.Buffer
	opts.Out = &out
	in := NewWithOptions(opts)
	err := runOn(t, in, src)
	return out.String(), err
}

func runOn(t *testing.T, in *Interpreter, src string) error {
	t.Helper()
	stmts, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse:\n%v", err)
	}
	in.SetSource("test.reef", src)
	return in.Run(stmts)
}

func mustRun(t *testing.T, src string) string {
	t.Helper()
	out, err := runSource(t, src, Options{})
	if err != nil {
		t.Fatalf("run:\n%v", err)
	}
	return out
}

func wantKind(t *testing.T, err error, want ErrorKind) *RuntimeError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	kind, ok := KindOf(err)
	if !ok || kind != want {
		t.Fatalf("expected %s error, got %v", want, err)
	}
	return err.(*RuntimeError)
}
