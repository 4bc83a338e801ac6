package interpreter

import "testing"

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", NumberValue(1))
	v, err := env.Get("a")
	if err != nil || v.Number != 1 {
		t.Fatalf("Get(a) = %v, %v", v, err)
	}
	env.Define("a", StringValue("again"))
	if v, _ := env.Get("a"); v.Str != "again" {
		t.Fatalf("redefine did not rebind: %v", v)
	}
}

func TestEnvironmentShadowing(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", NumberValue(1))
	inner := NewEnvironment(global)
	inner.Define("x", NumberValue(2))

	if v, _ := inner.Get("x"); v.Number != 2 {
		t.Fatalf("inner x = %v", v)
	}
	if v, _ := global.Get("x"); v.Number != 1 {
		t.Fatalf("outer x changed: %v", v)
	}
	if inner.Depth() != 1 || global.Depth() != 0 {
		t.Fatalf("depths = %d, %d", inner.Depth(), global.Depth())
	}
}

func TestEnvironmentAssignWalksChain(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", NumberValue(1))
	mid := NewEnvironment(global)
	inner := NewEnvironment(mid)

	if err := inner.Assign("x", NumberValue(5)); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if v, _ := global.Get("x"); v.Number != 5 {
		t.Fatalf("global x = %v", v)
	}
	if inner.Has("x") || mid.Has("x") {
		t.Fatalf("assign created a binding in an inner scope")
	}
}

func TestEnvironmentUndefined(t *testing.T) {
	env := NewEnvironment(NewEnvironment(nil))

	_, err := env.Get("nope")
	if kind, ok := KindOf(err); !ok || kind != UndefinedVariable {
		t.Fatalf("Get kind = %v, %v", kind, ok)
	}
	err = env.Assign("nope", NilValue())
	if kind, ok := KindOf(err); !ok || kind != UndefinedVariable {
		t.Fatalf("Assign kind = %v, %v", kind, ok)
	}
	if env.Has("nope") || env.Enclosing().Has("nope") {
		t.Fatalf("failed assign must not create a binding")
	}
}

func TestEnvironmentKeysSorted(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("b", NilValue())
	env.Define("a", NilValue())
	keys := env.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("keys = %v", keys)
	}
	snap := env.Snapshot()
	snap["c"] = NilValue()
	if env.Has("c") {
		t.Fatalf("snapshot aliases the scope")
	}
}
