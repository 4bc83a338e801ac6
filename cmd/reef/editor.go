package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/peterh/liner"

	"reef/config"
)

// errInterrupted is returned by ReadLine when the user presses Ctrl+C.
var errInterrupted = errors.New("interrupted")

// lineEditor is the terminal side of the REPL. ReadLine returns io.EOF on
// Ctrl+D and errInterrupted on Ctrl+C.
type lineEditor interface {
	ReadLine(prompt string) (string, error)
	AddHistory(entry string)
	Close() error
}

func newLineEditor(cfg *config.Config) (lineEditor, error) {
	switch cfg.REPL.Editor {
	case config.EditorLiner:
		return newLinerEditor(cfg.HistoryPath()), nil
	case config.EditorReadline, "":
		return newReadlineEditor(cfg.REPL.Prompt, cfg.HistoryPath())
	default:
		return nil, fmt.Errorf("unknown editor %q", cfg.REPL.Editor)
	}
}

type readlineEditor struct {
	rl *readline.Instance
}

func newReadlineEditor(prompt, histPath string) (*readlineEditor, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 prompt,
		HistoryFile:            histPath,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		HistorySearchFold:      true,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, err
	}
	return &readlineEditor{rl: rl}, nil
}

func (e *readlineEditor) ReadLine(prompt string) (string, error) {
	e.rl.SetPrompt(prompt)
	line, err := e.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", errInterrupted
	}
	return line, err
}

// AddHistory stores a whole multi-line entry as one history line.
func (e *readlineEditor) AddHistory(entry string) { _ = e.rl.SaveHistory(entry) }
func (e *readlineEditor) Close() error            { return e.rl.Close() }

type linerEditor struct {
	ln       *liner.State
	histPath string
}

func newLinerEditor(histPath string) *linerEditor {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	return &linerEditor{ln: ln, histPath: histPath}
}

func (e *linerEditor) ReadLine(prompt string) (string, error) {
	line, err := e.ln.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", errInterrupted
	}
	return line, err
}

func (e *linerEditor) AddHistory(entry string) { e.ln.AppendHistory(entry) }

func (e *linerEditor) Close() error {
	if e.histPath != "" {
		if f, err := os.Create(e.histPath); err == nil {
			_, _ = e.ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return e.ln.Close()
}
