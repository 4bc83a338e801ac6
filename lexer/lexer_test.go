package lexer

import "testing"

func types(toks []Token) []TokenType {
	out := make([]TokenType, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Type)
	}
	return out
}

func TestOperatorsAndPunctuation(t *testing.T) {
	toks := New("(){},.;+-*/ ! != = == < <= > >=").Tokens()
	want := []TokenType{
		LPAREN, RPAREN, LBRACE, RBRACE, COMMA, DOT, SEMICOLON,
		PLUS, MINUS, STAR, SLASH,
		BANG, NEQ, ASSIGN, EQ, LT, LTE, GT, GTE, EOF,
	}
	got := types(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("token %d = %s, want %s", idx, got[idx], want[idx])
		}
	}
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	toks := New("fun Fun var while nil orchid or").Tokens()
	want := []TokenType{FUN, IDENT, VAR, WHILE, NIL, IDENT, OR, EOF}
	got := types(toks)
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("token %d (%q) = %s, want %s", idx, toks[idx].Lexeme, got[idx], want[idx])
		}
	}
}

func TestNumbers(t *testing.T) {
	toks := New("12 3.25 7.").Tokens()
	if toks[0].Type != NUMBER || toks[0].Lexeme != "12" {
		t.Fatalf("tok0 = %v", toks[0])
	}
	if toks[1].Type != NUMBER || toks[1].Lexeme != "3.25" {
		t.Fatalf("tok1 = %v", toks[1])
	}
	// A trailing dot is not part of the number.
	if toks[2].Lexeme != "7" || toks[3].Type != DOT {
		t.Fatalf("tok2/3 = %v %v", toks[2], toks[3])
	}
}

func TestStringsAndEscapes(t *testing.T) {
	toks := New(`"a\tb\n\"c\"\\"`).Tokens()
	if toks[0].Type != STRING {
		t.Fatalf("type = %s", toks[0].Type)
	}
	if toks[0].Lexeme != "a\tb\n\"c\"\\" {
		t.Fatalf("lexeme = %q", toks[0].Lexeme)
	}
}

func TestMultiLineStringAdvancesLine(t *testing.T) {
	toks := New("\"one\ntwo\" x").Tokens()
	if toks[0].Lexeme != "one\ntwo" {
		t.Fatalf("lexeme = %q", toks[0].Lexeme)
	}
	if toks[1].Line != 2 {
		t.Fatalf("x on line %d, want 2", toks[1].Line)
	}
}

func TestUnterminatedString(t *testing.T) {
	toks := New(`print "oops`).Tokens()
	if toks[1].Type != ILLEGAL || toks[1].Lexeme != "Unterminated string" {
		t.Fatalf("tok = %v", toks[1])
	}
}

func TestCommentsAndPositions(t *testing.T) {
	toks := New("// header\n  var x; // trailing\n@").Tokens()
	if toks[0].Type != VAR || toks[0].Line != 2 || toks[0].Col != 3 {
		t.Fatalf("var token = %+v", toks[0])
	}
	if toks[1].Col != 7 {
		t.Fatalf("x col = %d, want 7", toks[1].Col)
	}
	last := toks[len(toks)-2]
	if last.Type != ILLEGAL || last.Lexeme != "@" || last.Line != 3 {
		t.Fatalf("illegal token = %+v", last)
	}
}
