package parser

import (
	"fmt"
	"strconv"

	"reef/ast"
	"reef/lexer"
)

// MaxArgs bounds parameter and argument lists.
const MaxArgs = 255

type Parser struct {
	lx   *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token

	errs      ErrorList
	funcDepth int
}

// errSync is returned internally after an error has been recorded; the
// declaration loop catches it and resynchronizes.
type errSync struct{}

func (errSync) Error() string { return "syntax error" }

func New(lx *lexer.Lexer) *Parser {
	p := &Parser{lx: lx}
	p.cur = lx.NextToken()
	p.peek = lx.NextToken()
	return p
}

// Parse is shorthand for New(lexer.New(src)).ParseProgram().
func Parse(src string) ([]ast.Stmt, error) {
	return New(lexer.New(src)).ParseProgram()
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lx.NextToken()
}

func sp(tok lexer.Token) ast.Span { return ast.Span{Line: tok.Line, Col: tok.Col} }

// ParseProgram parses every declaration until EOF. When any syntax error is
// found the statements are discarded and an ErrorList holding all of them is
// returned.
func (p *Parser) ParseProgram() ([]ast.Stmt, error) {
	stmts := []ast.Stmt{}
	for p.cur.Type != lexer.EOF {
		stmt, err := p.parseDeclaration()
		if err != nil {
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	if err := p.errs.Err(); err != nil {
		return nil, err
	}
	return stmts, nil
}

// ParseExpression parses a single expression followed by EOF (REPL echo).
func (p *Parser) ParseExpression() (ast.Expr, error) {
	expr, err := p.parseExpr()
	if err == nil && p.cur.Type != lexer.EOF {
		err = p.errAt(p.cur, "Expect end of expression.")
	}
	if err := p.errs.Err(); err != nil {
		return nil, err
	}
	return expr, nil
}

// synchronize discards the offending token and keeps skipping until just
// after a ';' or just before a token that starts a statement or closes a block.
func (p *Parser) synchronize() {
	for p.cur.Type != lexer.EOF {
		wasSemicolon := p.cur.Type == lexer.SEMICOLON
		p.next()
		if wasSemicolon {
			return
		}
		switch p.cur.Type {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR, lexer.IF,
			lexer.WHILE, lexer.PRINT, lexer.RETURN, lexer.RBRACE:
			return
		}
	}
}

func (p *Parser) expect(tt lexer.TokenType, msg string) (lexer.Token, error) {
	if p.cur.Type != tt {
		return lexer.Token{}, p.errAt(p.cur, msg)
	}
	tok := p.cur
	p.next()
	return tok, nil
}

func (p *Parser) parseDeclaration() (ast.Stmt, error) {
	switch p.cur.Type {
	case lexer.FUN:
		return p.parseFunctionDecl()
	case lexer.VAR:
		return p.parseVarDecl()
	case lexer.CLASS:
		return nil, p.errAt(p.cur, "Classes are not supported.")
	default:
		return p.parseStmt()
	}
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.cur.Type {
	case lexer.PRINT:
		return p.parsePrint()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parsePrint() (ast.Stmt, error) {
	printTok := p.cur
	p.next()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{S: sp(printTok), Value: expr}, nil
}

// varDecl = "var" IDENT ( "=" expr )? ";"
func (p *Parser) parseVarDecl() (ast.Stmt, error) {
	p.next()
	nameTok, err := p.expect(lexer.IDENT, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	if p.cur.Type == lexer.ASSIGN {
		p.next()
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &ast.VarStmt{S: sp(nameTok), Name: nameTok.Lexeme, Init: init}, nil
}

func (p *Parser) parseExprStmt() (ast.Stmt, error) {
	startTok := p.cur
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{S: sp(startTok), Expr: expr}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	retTok := p.cur
	if p.funcDepth == 0 {
		// Recorded but not fatal: the rest of the statement still parses.
		p.errAt(retTok, "Can't return from top-level code.")
	}
	p.next()
	var value ast.Expr
	if p.cur.Type != lexer.SEMICOLON {
		var err error
		value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{S: sp(retTok), Value: value}, nil
}

// funDecl = "fun" IDENT "(" params? ")" block
func (p *Parser) parseFunctionDecl() (ast.Stmt, error) {
	p.next()
	nameTok, err := p.expect(lexer.IDENT, "Expect function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN, "Expect '(' after function name."); err != nil {
		return nil, err
	}

	params := []string{}
	if p.cur.Type != lexer.RPAREN {
		for {
			if len(params) >= MaxArgs {
				p.errAt(p.cur, fmt.Sprintf("Can't have more than %d parameters.", MaxArgs))
			}
			paramTok, err := p.expect(lexer.IDENT, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, paramTok.Lexeme)
			if p.cur.Type != lexer.COMMA {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(lexer.RPAREN, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.LBRACE {
		return nil, p.errAt(p.cur, "Expect '{' before function body.")
	}

	p.funcDepth++
	body, err := p.parseBlockStmts()
	p.funcDepth--
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDecl{S: sp(nameTok), Name: nameTok.Lexeme, Params: params, Body: body}, nil
}

func (p *Parser) parseBlock() (ast.Stmt, error) {
	lbTok := p.cur
	stmts, err := p.parseBlockStmts()
	if err != nil {
		return nil, err
	}
	return &ast.BlockStmt{S: sp(lbTok), Stmts: stmts}, nil
}

// parseBlockStmts parses "{" declaration* "}". Errors inside the block are
// recorded and the block keeps parsing, so one bad statement does not hide
// the ones after it.
func (p *Parser) parseBlockStmts() ([]ast.Stmt, error) {
	if _, err := p.expect(lexer.LBRACE, "Expect '{'."); err != nil {
		return nil, err
	}
	block := []ast.Stmt{}
	for p.cur.Type != lexer.EOF && p.cur.Type != lexer.RBRACE {
		stmt, err := p.parseDeclaration()
		if err != nil {
			p.synchronize()
			continue
		}
		block = append(block, stmt)
	}
	if _, err := p.expect(lexer.RBRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	ifTok := p.cur
	p.next()
	if _, err := p.expect(lexer.LPAREN, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Stmt
	if p.cur.Type == lexer.ELSE {
		p.next()
		elseBranch, err = p.parseStmt()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{S: sp(ifTok), Condition: cond, Then: thenBranch, Else: elseBranch}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	wTok := p.cur
	p.next()
	if _, err := p.expect(lexer.LPAREN, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{S: sp(wTok), Condition: cond, Body: body}, nil
}

// parseFor desugars
//
//	for (init; cond; incr) body
//
// into
//
//	{ init; while (cond) { body; incr; } }
func (p *Parser) parseFor() (ast.Stmt, error) {
	forTok := p.cur
	p.next()
	if _, err := p.expect(lexer.LPAREN, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var init ast.Stmt
	var err error
	switch p.cur.Type {
	case lexer.SEMICOLON:
		p.next()
	case lexer.VAR:
		init, err = p.parseVarDecl()
	default:
		init, err = p.parseExprStmt()
	}
	if err != nil {
		return nil, err
	}

	var cond ast.Expr
	if p.cur.Type != lexer.SEMICOLON {
		cond, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMICOLON, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var incr ast.Expr
	if p.cur.Type != lexer.RPAREN {
		incr, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.RPAREN, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	span := sp(forTok)
	if incr != nil {
		body = &ast.BlockStmt{S: span, Stmts: []ast.Stmt{body, &ast.ExprStmt{S: incr.GetSpan(), Expr: incr}}}
	}
	if cond == nil {
		cond = &ast.BoolLiteral{S: span, Value: true}
	}
	var loop ast.Stmt = &ast.WhileStmt{S: span, Condition: cond, Body: body}
	if init != nil {
		loop = &ast.BlockStmt{S: span, Stmts: []ast.Stmt{init, loop}}
	}
	return loop, nil
}

// expr = assignment
func (p *Parser) parseExpr() (ast.Expr, error) { return p.parseAssignment() }

// assignment = IDENT "=" assignment | or
func (p *Parser) parseAssignment() (ast.Expr, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.ASSIGN {
		return left, nil
	}
	eqTok := p.cur
	p.next()
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if id, ok := left.(*ast.Identifier); ok {
		return &ast.AssignExpr{S: id.S, Name: id.Name, Value: value}, nil
	}
	p.errAt(eqTok, "Invalid assignment target.")
	return left, nil
}

// or = and ( "or" and )*
func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.OR {
		opTok := p.cur
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{S: sp(opTok), Left: left, Op: "or", Right: right}
	}
	return left, nil
}

// and = equality ( "and" equality )*
func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.AND {
		opTok := p.cur
		p.next()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{S: sp(opTok), Left: left, Op: "and", Right: right}
	}
	return left, nil
}

// binaryLevel parses left-associative `operand ( op operand )*` chains.
func (p *Parser) binaryLevel(operand func() (ast.Expr, error), ops ...lexer.TokenType) (ast.Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.isOneOf(p.cur.Type, ops...) {
		opTok := p.cur
		p.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{S: sp(opTok), Left: left, Op: opTok.Lexeme, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.binaryLevel(p.parseComparison, lexer.EQ, lexer.NEQ)
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	return p.binaryLevel(p.parseTerm, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE)
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	return p.binaryLevel(p.parseFactor, lexer.PLUS, lexer.MINUS)
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	return p.binaryLevel(p.parseUnary, lexer.STAR, lexer.SLASH)
}

func (p *Parser) isOneOf(t lexer.TokenType, list ...lexer.TokenType) bool {
	for _, x := range list {
		if t == x {
			return true
		}
	}
	return false
}

// unary = ( "!" | "-" ) unary | call
func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.cur.Type == lexer.BANG || p.cur.Type == lexer.MINUS {
		opTok := p.cur
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{S: sp(opTok), Op: opTok.Lexeme, Right: right}, nil
	}
	return p.parseCall()
}

// call = primary ( "(" arguments? ")" )*
func (p *Parser) parseCall() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.cur.Type {
		case lexer.LPAREN:
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case lexer.DOT:
			return nil, p.errAt(p.cur, "Property access is not supported.")
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	lpTok := p.cur
	p.next()

	args := []ast.Expr{}
	if p.cur.Type != lexer.RPAREN {
		for {
			if len(args) >= MaxArgs {
				p.errAt(p.cur, fmt.Sprintf("Can't have more than %d arguments.", MaxArgs))
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur.Type != lexer.COMMA {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(lexer.RPAREN, "Expect ')' after arguments."); err != nil {
		return nil, err
	}
	return &ast.CallExpr{S: sp(lpTok), Callee: callee, Args: args}, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur
	switch tok.Type {
	case lexer.STRING:
		p.next()
		return &ast.StringLiteral{S: sp(tok), Value: tok.Lexeme}, nil

	case lexer.NUMBER:
		n, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errAt(tok, fmt.Sprintf("Invalid number %q.", tok.Lexeme))
		}
		p.next()
		return &ast.NumberLiteral{S: sp(tok), Lexeme: tok.Lexeme, Value: n}, nil

	case lexer.TRUE:
		p.next()
		return &ast.BoolLiteral{S: sp(tok), Value: true}, nil

	case lexer.FALSE:
		p.next()
		return &ast.BoolLiteral{S: sp(tok), Value: false}, nil

	case lexer.NIL:
		p.next()
		return &ast.NilLiteral{S: sp(tok)}, nil

	case lexer.IDENT:
		p.next()
		return &ast.Identifier{S: sp(tok), Name: tok.Lexeme}, nil

	case lexer.LPAREN:
		p.next()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &ast.GroupingExpr{S: sp(tok), Inner: expr}, nil

	case lexer.THIS, lexer.SUPER:
		return nil, p.errAt(tok, fmt.Sprintf("'%s' is not supported outside classes.", tok.Lexeme))

	default:
		return nil, p.errAt(tok, "Expect expression.")
	}
}

// errAt records a syntax error for tok and returns errSync for unwinding.
func (p *Parser) errAt(tok lexer.Token, msg string) error {
	e := &SyntaxError{Line: tok.Line, Col: tok.Col, Msg: msg}
	switch tok.Type {
	case lexer.EOF:
		e.Where = "at end"
	case lexer.ILLEGAL:
		// The lexer's diagnosis replaces the parser's expectation.
		if tok.Lexeme == "Unterminated string" {
			e.Msg = "Unterminated string."
		} else {
			e.Msg = fmt.Sprintf("Unexpected character '%s'.", tok.Lexeme)
		}
	default:
		e.Where = fmt.Sprintf("at '%s'", tok.Lexeme)
	}
	p.errs = append(p.errs, e)
	return errSync{}
}
