package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDecodeEmptyYieldsDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	def := Default()
	if cfg.Interpreter.MaxCallDepth != def.Interpreter.MaxCallDepth {
		t.Fatalf("max_call_depth = %d, want %d", cfg.Interpreter.MaxCallDepth, def.Interpreter.MaxCallDepth)
	}
	if cfg.REPL.Editor != EditorReadline {
		t.Fatalf("editor = %q, want readline", cfg.REPL.Editor)
	}
	if cfg.REPL.Prompt != "reef> " {
		t.Fatalf("prompt = %q", cfg.REPL.Prompt)
	}
}

func TestDecodeOverridesOnlyGivenKeys(t *testing.T) {
	src := `
interpreter:
  max_call_depth: 64
  trace: true
repl:
  editor: liner
natives:
  disabled: [clock]
`
	cfg, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Interpreter.MaxCallDepth != 64 || !cfg.Interpreter.Trace {
		t.Fatalf("interpreter = %+v", cfg.Interpreter)
	}
	if cfg.REPL.Editor != EditorLiner {
		t.Fatalf("editor = %q, want liner", cfg.REPL.Editor)
	}
	if cfg.REPL.Prompt != "reef> " {
		t.Fatalf("prompt should keep its default, got %q", cfg.REPL.Prompt)
	}
	if len(cfg.Natives.Disabled) != 1 || cfg.Natives.Disabled[0] != "clock" {
		t.Fatalf("disabled = %v", cfg.Natives.Disabled)
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("interpreter:\n  max_depth: 3\n"))
	if err == nil {
		t.Fatalf("expected error for unknown field")
	}
	if !strings.Contains(err.Error(), "max_depth") {
		t.Fatalf("error should name the field, got %v", err)
	}
}

func TestDecodeAggregatesValidationIssues(t *testing.T) {
	src := `
interpreter:
  max_call_depth: 0
repl:
  editor: vim
natives:
  disabled: [str, str, ""]
`
	_, err := Decode(strings.NewReader(src))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != 4 {
		t.Fatalf("issues = %d, want 4:\n%v", len(verr.Issues), err)
	}
}

func TestDecodeRejectsCallDepthAboveCeiling(t *testing.T) {
	_, err := Decode(strings.NewReader("interpreter:\n  max_call_depth: 100000000\n"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != 1 || !strings.Contains(verr.Issues[0], "must be at most 100000") {
		t.Fatalf("issues = %v", verr.Issues)
	}

	if _, err := Decode(strings.NewReader("interpreter:\n  max_call_depth: 100000\n")); err != nil {
		t.Fatalf("ceiling itself should be accepted: %v", err)
	}
}

func TestLoadRecordsPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, FileName, "repl:\n  prompt: \"> \"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
	if cfg.REPL.Prompt != "> " {
		t.Fatalf("prompt = %q", cfg.REPL.Prompt)
	}
}

func TestLoadValidationErrorCarriesPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, FileName, "interpreter:\n  max_call_depth: -1\n")

	_, err := Load(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != path {
		t.Fatalf("Path = %q, want %q", verr.Path, path)
	}
}

func TestFindExplicitMustExist(t *testing.T) {
	if _, err := Find(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/.reef_history"); got != filepath.Join(home, ".reef_history") {
		t.Fatalf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/tmp/h"); got != "/tmp/h" {
		t.Fatalf("absolute path changed: %q", got)
	}
}
