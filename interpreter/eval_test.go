package interpreter

import (
	"math"
	"testing"

	"reef/ast"
)

func TestArithmeticAndPrint(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"print 1 + 2 * 3;", "7\n"},
		{"print (1 + 2) * 3;", "9\n"},
		{"print 10 / 4;", "2.5\n"},
		{"print -3 - -3;", "0\n"},
		{`print "foo" + "bar";`, "foobar\n"},
		{"print 1 < 2;", "true\n"},
		{"print 2 <= 1;", "false\n"},
		{"print nil;", "nil\n"},
		{"print !nil;", "true\n"},
		{"print 1 / 0;", "Infinity\n"},
		{"print -1 / 0;", "-Infinity\n"},
		{"print 0 / 0;", "NaN\n"},
		{"print 0.1 + 0.2;", "0.30000000000000004\n"},
	}
	for _, c := range cases {
		if got := mustRun(t, c.src); got != c.want {
			t.Errorf("%s => %q, want %q", c.src, got, c.want)
		}
	}
}

func TestEquality(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"print 1 == 1;", "true\n"},
		{`print "a" == "a";`, "true\n"},
		{`print 1 == "1";`, "false\n"},
		{"print nil == nil;", "true\n"},
		{"print nil == false;", "false\n"},
		{"print true != false;", "true\n"},
		{"var n = 0 / 0; print n == n;", "false\n"},
		{"fun f() {} var g = f; print f == g;", "true\n"},
		{"fun f() {} fun g() {} print f == g;", "false\n"},
	}
	for _, c := range cases {
		if got := mustRun(t, c.src); got != c.want {
			t.Errorf("%s => %q, want %q", c.src, got, c.want)
		}
	}
}

func TestTruthiness(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{NilValue(), false},
		{BoolValue(false), false},
		{BoolValue(true), true},
		{NumberValue(0), true},
		{StringValue(""), true},
		{CallableValue(NewNative("n", 0, nil)), true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%s) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestTypeMismatch(t *testing.T) {
	cases := []struct {
		src string
		msg string
	}{
		{`print "a" + 1;`, "Operands of '+' must be two numbers or two strings, got string and number."},
		{`print -"x";`, "Operand of '-' must be a number, got string."},
		{`print 1 < "2";`, "Operands of '<' must be numbers, got number and string."},
		{`print nil * 2;`, "Operands of '*' must be numbers, got nil and number."},
	}
	for _, c := range cases {
		_, err := runSource(t, c.src, Options{})
		re := wantKind(t, err, TypeMismatch)
		if re.Msg != c.msg {
			t.Errorf("%s: msg = %q, want %q", c.src, re.Msg, c.msg)
		}
	}
}

func TestLogicalReturnsDeterminingOperand(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`print nil or "yes";`, "yes\n"},
		{`print "first" or "second";`, "first\n"},
		{`print nil and "never";`, "nil\n"},
		{`print 1 and 2;`, "2\n"},
		{`print false or nil;`, "nil\n"},
	}
	for _, c := range cases {
		if got := mustRun(t, c.src); got != c.want {
			t.Errorf("%s => %q, want %q", c.src, got, c.want)
		}
	}
}

func TestShortCircuitSkipsRightOperand(t *testing.T) {
	calls := 0
	in := New()
	in.RegisterNative("tick", 0, func(_ *Interpreter, _ []Value) (Value, error) {
		calls++
		return BoolValue(true), nil
	})

	if err := runOn(t, in, "false and tick(); true or tick();"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls != 0 {
		t.Fatalf("right operand evaluated %d times", calls)
	}
	if err := runOn(t, in, "true and tick(); false or tick();"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestBlockScoping(t *testing.T) {
	out := mustRun(t, `
var a = "global";
{
  var a = "inner";
  print a;
}
print a;
{
  a = "assigned";
}
print a;
`)
	if out != "inner\nglobal\nassigned\n" {
		t.Fatalf("out = %q", out)
	}
}

func TestControlFlow(t *testing.T) {
	out := mustRun(t, `
var i = 0;
while (i < 3) { print i; i = i + 1; }
if (i == 3) print "three"; else print "other";
if (nil) print "no";
for (var j = 0; j < 2; j = j + 1) print j;
`)
	if out != "0\n1\n2\nthree\n0\n1\n" {
		t.Fatalf("out = %q", out)
	}
}

func TestAssignmentIsExpression(t *testing.T) {
	out := mustRun(t, "var a; var b; a = b = 4; print a + b;")
	if out != "8\n" {
		t.Fatalf("out = %q", out)
	}
}

func TestUndefinedVariable(t *testing.T) {
	_, err := runSource(t, "print missing;", Options{})
	re := wantKind(t, err, UndefinedVariable)
	if re.Msg != "Undefined variable 'missing'." {
		t.Fatalf("msg = %q", re.Msg)
	}
	if re.Span.Line != 1 || re.Span.Col != 7 {
		t.Fatalf("span = %+v", re.Span)
	}

	_, err = runSource(t, "missing = 1;", Options{})
	wantKind(t, err, UndefinedVariable)
}

func TestEvaluatePureExpressionIsIdempotent(t *testing.T) {
	in := New()
	in.Define("x", NumberValue(20))
	expr := ast.Bin("+", ast.ID("x"), ast.Bin("*", ast.Num(11), ast.Num(2)))

	first, err := in.Evaluate(expr)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	second, err := in.Evaluate(expr)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !Equal(first, second) || first.Number != 42 {
		t.Fatalf("first = %s, second = %s", first, second)
	}
}

func TestNumberFormatting(t *testing.T) {
	cases := []struct {
		n    float64
		want string
	}{
		{3, "3"},
		{-0.5, "-0.5"},
		{1e21, "1e+21"},
		{math.Inf(1), "Infinity"},
	}
	for _, c := range cases {
		if got := NumberValue(c.n).ToString(); got != c.want {
			t.Errorf("ToString(%v) = %q, want %q", c.n, got, c.want)
		}
	}
	if got := StringValue("q").String(); got != `"q"` {
		t.Fatalf("String() = %s", got)
	}
}
