package lexer

import "strings"

type Lexer struct {
	input []rune
	pos   int
	line  int
	col   int
}

func New(input string) *Lexer {
	return &Lexer{
		input: []rune(input),
		line:  1,
		col:   1,
	}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) advance() rune {
	ch := l.peek()
	if ch == 0 {
		return 0
	}
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

// match consumes the next rune when it equals want.
func (l *Lexer) match(want rune) bool {
	if l.peek() != want {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance()
		case ch == '/' && l.peekNext() == '/':
			for l.peek() != 0 && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	startLine := l.line
	startCol := l.col
	ch := l.peek()

	tok := func(tt TokenType, lexeme string) Token {
		return Token{Type: tt, Lexeme: lexeme, Line: startLine, Col: startCol}
	}

	if ch == 0 {
		return tok(EOF, "")
	}

	// identifiers/keywords
	if isAlpha(ch) || ch == '_' {
		var b strings.Builder
		for isAlphaNum(l.peek()) || l.peek() == '_' {
			b.WriteRune(l.advance())
		}
		lex := b.String()
		return tok(LookupIdent(lex), lex)
	}

	// numbers: digits with an optional fractional part; a trailing '.' is not consumed
	if isDigit(ch) {
		var b strings.Builder
		for isDigit(l.peek()) {
			b.WriteRune(l.advance())
		}
		if l.peek() == '.' && isDigit(l.peekNext()) {
			b.WriteRune(l.advance())
			for isDigit(l.peek()) {
				b.WriteRune(l.advance())
			}
		}
		return tok(NUMBER, b.String())
	}

	// strings "..." (may span lines)
	if ch == '"' {
		l.advance()
		var b strings.Builder
		for {
			c := l.peek()
			if c == 0 {
				return tok(ILLEGAL, "Unterminated string")
			}
			if c == '"' {
				l.advance()
				break
			}
			if c == '\\' {
				l.advance()
				esc := l.peek()
				if esc == 0 {
					return tok(ILLEGAL, "Unterminated string")
				}
				switch esc {
				case 'n':
					b.WriteRune('\n')
				case 't':
					b.WriteRune('\t')
				case '"':
					b.WriteRune('"')
				case '\\':
					b.WriteRune('\\')
				default:
					b.WriteRune(esc)
				}
				l.advance()
				continue
			}
			b.WriteRune(l.advance())
		}
		return tok(STRING, b.String())
	}

	l.advance()
	switch ch {
	case '=':
		if l.match('=') {
			return tok(EQ, "==")
		}
		return tok(ASSIGN, "=")
	case '!':
		if l.match('=') {
			return tok(NEQ, "!=")
		}
		return tok(BANG, "!")
	case '<':
		if l.match('=') {
			return tok(LTE, "<=")
		}
		return tok(LT, "<")
	case '>':
		if l.match('=') {
			return tok(GTE, ">=")
		}
		return tok(GT, ">")
	case '+':
		return tok(PLUS, "+")
	case '-':
		return tok(MINUS, "-")
	case '*':
		return tok(STAR, "*")
	case '/':
		return tok(SLASH, "/")
	case '(':
		return tok(LPAREN, "(")
	case ')':
		return tok(RPAREN, ")")
	case '{':
		return tok(LBRACE, "{")
	case '}':
		return tok(RBRACE, "}")
	case ',':
		return tok(COMMA, ",")
	case '.':
		return tok(DOT, ".")
	case ';':
		return tok(SEMICOLON, ";")
	}

	return tok(ILLEGAL, string(ch))
}

// Tokens scans the whole input, including the trailing EOF token.
func (l *Lexer) Tokens() []Token {
	out := []Token{}
	for {
		t := l.NextToken()
		out = append(out, t)
		if t.Type == EOF {
			return out
		}
	}
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlphaNum(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
