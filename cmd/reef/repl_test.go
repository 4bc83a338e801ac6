package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"reef/config"
)

type scriptedEditor struct {
	lines   []string
	prompts []string
	history []string
}

func (e *scriptedEditor) ReadLine(prompt string) (string, error) {
	e.prompts = append(e.prompts, prompt)
	if len(e.lines) == 0 {
		return "", io.EOF
	}
	line := e.lines[0]
	e.lines = e.lines[1:]
	return line, nil
}

func (e *scriptedEditor) AddHistory(entry string) { e.history = append(e.history, entry) }
func (e *scriptedEditor) Close() error            { return nil }

func runScripted(t *testing.T, lines ...string) (*scriptedEditor, string, string) {
	t.Helper()
	ed := &scriptedEditor{lines: lines}
	var out, errOut bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := newREPL(ed, config.Default(), logger, &out, &errOut)
	if err := r.loop(); err != nil {
		t.Fatalf("loop: %v", err)
	}
	return ed, out.String(), errOut.String()
}

func TestREPLStatePersistsAcrossEntries(t *testing.T) {
	_, out, errOut := runScripted(t,
		"var a = 1;",
		"a = a + 41;",
		"print a;",
	)
	if errOut != "" {
		t.Fatalf("unexpected errors: %s", errOut)
	}
	if !strings.Contains(out, "42\n") {
		t.Fatalf("expected 42, got %q", out)
	}
}

func TestREPLEchoesBareExpression(t *testing.T) {
	_, out, _ := runScripted(t, `"re" + "ef"`, "1 + 2")
	if !strings.Contains(out, "\"reef\"\n") || !strings.Contains(out, "3\n") {
		t.Fatalf("echo missing: %q", out)
	}
}

func TestREPLMultiLineBlock(t *testing.T) {
	ed, out, errOut := runScripted(t,
		"fun add(a, b) {",
		"  return a + b;",
		"}",
		"print add(2, 3);",
	)
	if errOut != "" {
		t.Fatalf("unexpected errors: %s", errOut)
	}
	if !strings.Contains(out, "5\n") {
		t.Fatalf("expected 5, got %q", out)
	}
	if ed.prompts[1] != config.Default().REPL.ContinuationPrompt {
		t.Fatalf("second prompt = %q, want continuation", ed.prompts[1])
	}
	if len(ed.history) != 2 {
		t.Fatalf("history = %v", ed.history)
	}
}

func TestREPLErrorKeepsEarlierEffects(t *testing.T) {
	_, out, errOut := runScripted(t,
		"var x = 1; x = 2; undefinedThing; x = 3;",
		"print x;",
	)
	if !strings.Contains(errOut, "UndefinedVariable") {
		t.Fatalf("expected runtime error, got %q", errOut)
	}
	if !strings.Contains(out, "2\n") {
		t.Fatalf("expected x to be 2, got %q", out)
	}
}

func TestREPLCommands(t *testing.T) {
	_, out, _ := runScripted(t,
		"var n = 7;",
		"fun f(a, b) {}",
		":vars",
		":funcs",
		":reset",
		":vars",
		":quit",
		"print 99;",
	)
	if !strings.Contains(out, "n = 7\n") {
		t.Fatalf(":vars output missing: %q", out)
	}
	if !strings.Contains(out, "f(a, b)\n") {
		t.Fatalf(":funcs output missing: %q", out)
	}
	if !strings.Contains(out, "(no globals)") {
		t.Fatalf(":reset should drop globals: %q", out)
	}
	if strings.Contains(out, "99") {
		t.Fatalf("input after :quit was executed: %q", out)
	}
}

func TestBraceDepth(t *testing.T) {
	cases := []struct {
		src  string
		want int
	}{
		{"print 1;", 0},
		{"{", 1},
		{"fun f() {\n if (x) {", 2},
		{"{ }", 0},
		{`print "{";`, 0},
		{"// {\n", 0},
		{`print "\"{";`, 0},
		{"}", 0},
	}
	for _, c := range cases {
		if got := braceDepth(c.src); got != c.want {
			t.Errorf("braceDepth(%q) = %d, want %d", c.src, got, c.want)
		}
	}
}

func TestREPLConfigShowsCallDepth(t *testing.T) {
	_, out, _ := runScripted(t, ":config")
	if !strings.Contains(out, "max call depth: 1000\n") {
		t.Fatalf(":config output = %q", out)
	}
	if !strings.Contains(out, "(defaults)") {
		t.Fatalf(":config should name the config source: %q", out)
	}
}

func TestREPLLoadChecksExtension(t *testing.T) {
	_, out, errOut := runScripted(t, ":load notes.txt", "print 1;")
	if !strings.Contains(errOut, `expected a .reef file, got "notes.txt"`) {
		t.Fatalf("stderr = %q", errOut)
	}
	if !strings.Contains(out, "1\n") {
		t.Fatalf("REPL should keep running after a failed :load: %q", out)
	}
}

func TestREPLLoadRunsIntoSession(t *testing.T) {
	path := writeScript(t, "lib.reef", "fun double(n) { return n * 2; }")
	_, out, errOut := runScripted(t, ":load "+path, "print double(21);")
	if errOut != "" {
		t.Fatalf("unexpected errors: %s", errOut)
	}
	if !strings.Contains(out, "42\n") {
		t.Fatalf("out = %q", out)
	}
}
