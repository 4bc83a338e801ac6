package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"reef/config"
	"reef/interpreter"
)

func runREPL(cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) int {
	ed, err := newLineEditor(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	defer ed.Close()

	fmt.Fprintln(stdout, "Reef REPL. :help for commands, :quit to exit.")
	fmt.Fprintln(stdout, "Multi-line input continues until braces balance.")
	fmt.Fprintln(stdout)

	r := newREPL(ed, cfg, logger, stdout, stderr)
	if err := r.loop(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	return exitOK
}

type repl struct {
	ed     lineEditor
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer

	// One interpreter for the whole session, so bindings persist.
	session *interpreter.Interpreter

	buf   strings.Builder
	chunk int
}

func newREPL(ed lineEditor, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) *repl {
	return &repl{
		ed:      ed,
		cfg:     cfg,
		logger:  logger,
		out:     stdout,
		errOut:  stderr,
		session: interpreter.NewWithOptions(interpreterOptions(cfg, logger, stdout)),
	}
}

func (r *repl) prompt() string {
	if r.buf.Len() > 0 {
		return r.cfg.REPL.ContinuationPrompt
	}
	return r.cfg.REPL.Prompt
}

// loop reads entries until EOF or :quit.
func (r *repl) loop() error {
	for {
		line, err := r.ed.ReadLine(r.prompt())

		if errors.Is(err, errInterrupted) {
			if r.buf.Len() > 0 {
				r.buf.Reset()
				fmt.Fprintln(r.out, "^C (buffer cleared)")
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return err
		}

		trim := strings.TrimSpace(line)

		// Commands only when not buffering a block.
		if r.buf.Len() == 0 && strings.HasPrefix(trim, ":") {
			quit, cmdErr := r.command(trim)
			if cmdErr != nil {
				fmt.Fprintln(r.errOut, cmdErr.Error())
			}
			if quit {
				return nil
			}
			continue
		}

		r.buf.WriteString(line)
		r.buf.WriteString("\n")

		if braceDepth(r.buf.String()) > 0 {
			continue
		}

		src := r.buf.String()
		r.buf.Reset()
		if strings.TrimSpace(src) == "" {
			continue
		}

		r.ed.AddHistory(strings.TrimRight(src, "\n"))
		r.eval(src)
	}
}

// eval runs one complete entry. A bare expression is echoed; anything else
// runs as statements. Errors are reported and the session keeps whatever
// the entry did before failing.
func (r *repl) eval(src string) {
	r.chunk++
	filename := replChunkFilename(r.chunk)

	if expr, ok := parseBareExpression(src); ok {
		r.session.SetSource(filename, src)
		v, err := r.session.Evaluate(expr)
		if err != nil {
			fmt.Fprintln(r.errOut, err)
			return
		}
		fmt.Fprintln(r.out, v.String())
		return
	}

	if err := compileAndRunWith(r.session, filename, src); err != nil {
		fmt.Fprintln(r.errOut, err)
	}
}

func replChunkFilename(chunk int) string {
	return fmt.Sprintf("<repl:%d>", chunk)
}

// command handles a ":" line and reports whether the REPL should exit.
func (r *repl) command(cmd string) (bool, error) {
	switch {
	case cmd == ":q" || cmd == ":quit" || cmd == ":exit":
		return true, nil

	case cmd == ":h" || cmd == ":help":
		fmt.Fprintln(r.out, "Commands:")
		fmt.Fprintln(r.out, "  :help              Show this help")
		fmt.Fprintln(r.out, "  :quit              Exit the REPL")
		fmt.Fprintln(r.out, "  :vars              Show global variables")
		fmt.Fprintln(r.out, "  :funcs             Show user-defined functions")
		fmt.Fprintln(r.out, "  :natives           Show registered natives")
		fmt.Fprintln(r.out, "  :config            Show the active settings")
		fmt.Fprintln(r.out, "  :load <file>       Run a .reef file in this session")
		fmt.Fprintln(r.out, "  :reset             Start a fresh session (drops all globals)")
		fmt.Fprintln(r.out, "  :clear             Clear the screen")
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "A line holding a single expression (no ';') prints its value.")
		return false, nil

	case strings.HasPrefix(cmd, ":load"):
		path := strings.TrimSpace(strings.TrimPrefix(cmd, ":load"))
		if path == "" {
			return false, fmt.Errorf("usage: :load <file%s>", scriptExt)
		}
		if !strings.HasSuffix(path, scriptExt) {
			return false, fmt.Errorf("expected a %s file, got %q", scriptExt, path)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return false, fmt.Errorf("read %s: %w", path, err)
		}
		return false, compileAndRunWith(r.session, filepath.Base(path), string(b))

	case cmd == ":config":
		source := r.cfg.Path
		if source == "" {
			source = "(defaults)"
		}
		fmt.Fprintf(r.out, "config:         %s\n", source)
		fmt.Fprintf(r.out, "max call depth: %d\n", r.session.MaxCallDepth())
		fmt.Fprintf(r.out, "trace:          %t\n", r.cfg.Interpreter.Trace)
		fmt.Fprintf(r.out, "editor:         %s\n", r.cfg.REPL.Editor)
		return false, nil

	case cmd == ":reset":
		r.session = interpreter.NewWithOptions(interpreterOptions(r.cfg, r.logger, r.out))
		r.chunk = 0
		fmt.Fprintln(r.out, "(session reset)")
		return false, nil

	case cmd == ":clear":
		fmt.Fprint(r.out, "\033[2J\033[H")
		return false, nil

	case cmd == ":vars":
		globs := r.session.GlobalsSnapshot()
		keys := make([]string, 0, len(globs))
		for k, v := range globs {
			if v.Kind == interpreter.ValCallable {
				continue
			}
			keys = append(keys, k)
		}
		if len(keys) == 0 {
			fmt.Fprintln(r.out, "(no globals)")
			return false, nil
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(r.out, "%s = %s\n", k, globs[k].String())
		}
		return false, nil

	case cmd == ":funcs":
		sigs := r.session.FuncSignatures()
		if len(sigs) == 0 {
			fmt.Fprintln(r.out, "(no user functions)")
			return false, nil
		}
		for _, s := range sigs {
			fmt.Fprintln(r.out, s)
		}
		return false, nil

	case cmd == ":natives":
		for _, n := range r.session.NativeNamesBound() {
			fmt.Fprintln(r.out, n)
		}
		return false, nil

	default:
		fmt.Fprintln(r.out, "Unknown command. Try :help")
		return false, nil
	}
}

// braceDepth counts unclosed '{' in src, ignoring strings and // comments.
func braceDepth(src string) int {
	depth := 0
	inString := false
	for idx := 0; idx < len(src); idx++ {
		c := src[idx]
		switch {
		case inString:
			if c == '\\' {
				idx++
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '/' && idx+1 < len(src) && src[idx+1] == '/':
			for idx < len(src) && src[idx] != '\n' {
				idx++
			}
		case c == '{':
			depth++
		case c == '}':
			depth--
		}
	}
	if depth < 0 {
		return 0
	}
	return depth
}
