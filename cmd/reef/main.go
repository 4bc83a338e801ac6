package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"reef/config"
	"reef/interpreter"
)

const (
	exitOK      = 0
	exitUsage   = 1
	exitSyntax  = 65
	exitRuntime = 70
)

const scriptExt = ".reef"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		w := fs.Output()
		fmt.Fprintln(w, "Usage:")
		fmt.Fprintln(w, "  reef [flags]                 start the REPL")
		fmt.Fprintln(w, "  reef [flags] <file.reef>     run a script")
		fmt.Fprintln(w, "  reef [flags] run <file.reef>")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Flags:")
		fs.PrintDefaults()
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("reef", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = usage(fs)
	cfgPath := fs.String("config", "", "path to reef.yml (default ./reef.yml, then ~/.reef.yml)")
	trace := fs.Bool("trace", false, "log call frames and runtime errors to stderr")
	maxDepth := fs.Int("max-depth", 0, "override interpreter.max_call_depth")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.Resolve(*cfgPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if *trace {
		cfg.Interpreter.Trace = true
	}
	if isFlagSet(fs, "max-depth") {
		if err := config.ValidateCallDepth(*maxDepth); err != nil {
			fmt.Fprintf(stderr, "Error: -max-depth %v\n", err)
			return exitUsage
		}
		cfg.Interpreter.MaxCallDepth = *maxDepth
	}

	logger := newLogger(stderr, cfg.Interpreter.Trace)
	if cfg.Path != "" {
		logger.Debug("loaded config", slog.String("path", cfg.Path))
	}

	rest := fs.Args()
	if len(rest) > 0 && rest[0] == "run" {
		rest = rest[1:]
		if len(rest) != 1 {
			fs.Usage()
			return exitUsage
		}
	}

	switch len(rest) {
	case 0:
		return runREPL(cfg, logger, stdout, stderr)
	case 1:
		return runFile(rest[0], cfg, logger, stdout, stderr)
	default:
		fs.Usage()
		return exitUsage
	}
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// newLogger writes to stderr; without tracing only warnings get through.
func newLogger(w io.Writer, trace bool) *slog.Logger {
	level := slog.LevelWarn
	if trace {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func interpreterOptions(cfg *config.Config, logger *slog.Logger, out io.Writer) interpreter.Options {
	return interpreter.Options{
		Out:             out,
		Logger:          logger,
		MaxCallDepth:    cfg.Interpreter.MaxCallDepth,
		DisabledNatives: cfg.Natives.Disabled,
	}
}

func runFile(filename string, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) int {
	if !strings.HasSuffix(filename, scriptExt) {
		fmt.Fprintf(stderr, "Error: expected a %s file, got %q\n", scriptExt, filename)
		return exitUsage
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading %s: %v\n", filename, err)
		return exitUsage
	}

	name := filepath.Base(filename)
	in := interpreter.NewWithSource(name, string(src), interpreterOptions(cfg, logger, stdout))
	if err := compileAndRunWith(in, name, string(src)); err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(err)
	}
	return exitOK
}
