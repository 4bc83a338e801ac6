package main

import (
	"errors"

	"reef/ast"
	"reef/interpreter"
	"reef/lexer"
	"reef/parser"
)

// compileAndRunWith parses src and runs it on an existing interpreter.
// Reusing one interpreter is what makes the REPL stateful across inputs.
func compileAndRunWith(in *interpreter.Interpreter, filename, src string) error {
	ps := parser.New(lexer.New(src))
	stmts, err := ps.ParseProgram()
	if err != nil {
		return err
	}

	// Runtime errors should point into this chunk.
	in.SetSource(filename, src)

	return in.Run(stmts)
}

// parseBareExpression reports whether src is a single expression with no
// trailing semicolon, which the REPL echoes instead of executing.
func parseBareExpression(src string) (ast.Expr, bool) {
	expr, err := parser.New(lexer.New(src)).ParseExpression()
	if err != nil {
		return nil, false
	}
	return expr, true
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var syntax parser.ErrorList
	if errors.As(err, &syntax) {
		return exitSyntax
	}
	if _, ok := interpreter.KindOf(err); ok {
		return exitRuntime
	}
	return exitUsage
}
