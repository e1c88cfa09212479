package state_test

import (
	"testing"

	"tlua/state"
)

func TestOrderingAcrossIntAndFloat(t *testing.T) {
	ls := state.New()
	ls.OpenLibs()

	ls.LoadString(`
		return (1 < 1.5), (2 <= 2.0), (3 == 3.0)
	`, "stdin")
	ls.Call(0, 3)

	if !ls.ToBoolean(-3) {
		t.Fatalf("1 < 1.5 = false, want true")
	}
	if !ls.ToBoolean(-2) {
		t.Fatalf("2 <= 2.0 = false, want true")
	}
	if !ls.ToBoolean(-1) {
		t.Fatalf("3 == 3.0 = false, want true")
	}
}

func TestCompareMetamethodFallback(t *testing.T) {
	ls := state.New()
	ls.OpenLibs()

	ls.LoadString(`
		local mt = {__lt = function(a, b) return true end}
		local a = setmetatable({}, mt)
		local b = setmetatable({}, mt)
		return a < b
	`, "stdin")
	ls.Call(0, 1)

	if !ls.ToBoolean(-1) {
		t.Fatalf("__lt fallback = false, want true")
	}
}

func TestRawLen(t *testing.T) {
	ls := state.New()
	ls.OpenLibs()

	ls.LoadString(`
		local t = setmetatable({1, 2, 3}, {__len = function() return 100 end})
		return rawlen(t), #t
	`, "stdin")
	ls.Call(0, 2)

	if got := ls.ToInteger(-2); got != 3 {
		t.Fatalf("rawlen(t) = %d, want 3", got)
	}
	if got := ls.ToInteger(-1); got != 100 {
		t.Fatalf("#t = %d, want 100 (via __len)", got)
	}
}
