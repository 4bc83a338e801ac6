// Package config loads reef.yml, the interpreter and REPL settings file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"reef/interpreter"
)

// FileName is the settings file looked up in the working directory.
const FileName = "reef.yml"

// Editor names a REPL line-editing backend.
type Editor string

const (
	EditorReadline Editor = "readline"
	EditorLiner    Editor = "liner"
)

type Config struct {
	// Path is the file the config was read from ("" for defaults).
	Path        string            `yaml:"-"`
	Interpreter InterpreterConfig `yaml:"interpreter"`
	REPL        REPLConfig        `yaml:"repl"`
	Natives     NativesConfig     `yaml:"natives"`
}

type InterpreterConfig struct {
	MaxCallDepth int  `yaml:"max_call_depth"`
	Trace        bool `yaml:"trace"`
}

type REPLConfig struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file"`
	Editor             Editor `yaml:"editor"`
}

type NativesConfig struct {
	Disabled []string `yaml:"disabled"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed")
	if e.Path != "" {
		b.WriteString(" (" + e.Path + ")")
	}
	b.WriteString(":")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Default returns the settings used when no file is found.
func Default() *Config {
	return &Config{
		Interpreter: InterpreterConfig{MaxCallDepth: interpreter.DefaultMaxCallDepth},
		REPL: REPLConfig{
			Prompt:             "reef> ",
			ContinuationPrompt: "...> ",
			HistoryFile:        "~/.reef_history",
			Editor:             EditorReadline,
		},
		Natives: NativesConfig{Disabled: []string{}},
	}
}

// Load reads path over the defaults, so a file only needs the keys it changes.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Path = absPath
			return nil, verr
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath
	return cfg, nil
}

// Decode parses YAML from r over the defaults and validates the result.
// An empty document yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if cfg.Natives.Disabled == nil {
		cfg.Natives.Disabled = []string{}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find returns the first existing candidate: explicit, ./reef.yml, then
// $HOME/.reef.yml. An explicit path must exist. With nothing found it
// returns "" and no error.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config: %w", err)
		}
		return explicit, nil
	}

	candidates := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		candidates = append(candidates, filepath.Join(home, "."+FileName))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", nil
}

// Resolve finds and loads the config, falling back to defaults.
func Resolve(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// ValidateCallDepth checks a call-depth limit against (0, MaxAllowedCallDepth].
func ValidateCallDepth(depth int) error {
	switch {
	case depth <= 0:
		return fmt.Errorf("must be positive, got %d", depth)
	case depth > interpreter.MaxAllowedCallDepth:
		return fmt.Errorf("must be at most %d, got %d", interpreter.MaxAllowedCallDepth, depth)
	}
	return nil
}

// HistoryPath expands a leading "~" in the history file setting.
func (c *Config) HistoryPath() string {
	return ExpandHome(c.REPL.HistoryFile)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func (c *Config) validate() error {
	var errs ValidationError
	if err := ValidateCallDepth(c.Interpreter.MaxCallDepth); err != nil {
		errs.Issues = append(errs.Issues, "interpreter.max_call_depth "+err.Error())
	}
	switch c.REPL.Editor {
	case EditorReadline, EditorLiner:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("repl.editor must be %q or %q, got %q", EditorReadline, EditorLiner, c.REPL.Editor))
	}
	if c.REPL.Prompt == "" {
		errs.Issues = append(errs.Issues, "repl.prompt must not be empty")
	}
	seen := make(map[string]bool, len(c.Natives.Disabled))
	for idx, name := range c.Natives.Disabled {
		if strings.TrimSpace(name) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("natives.disabled[%d] must be a non-empty string", idx))
			continue
		}
		if seen[name] {
			errs.Issues = append(errs.Issues, fmt.Sprintf("natives.disabled lists %q more than once", name))
		}
		seen[name] = true
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
