package stdlib_test

import (
	"testing"

	"tlua/state"
)

func TestRequirePreload(t *testing.T) {
	ls := state.New()
	ls.OpenLibs()
	ls.LoadString(`
		package.preload["greet"] = function()
			return "hello"
		end
		return require("greet")
	`, "stdin")
	ls.Call(0, 1)
	if s := ls.ToString(-1); s != "hello" {
		t.Fatalf("require result = %q, want hello", s)
	}
	ls.Pop(1)
}

func TestRequireCachesResult(t *testing.T) {
	ls := state.New()
	ls.OpenLibs()
	ls.LoadString(`
		local calls = 0
		package.preload["counted"] = function()
			calls = calls + 1
			return calls
		end
		local a = require("counted")
		local b = require("counted")
		return a, b
	`, "stdin")
	ls.Call(0, 2)
	if v := ls.ToInteger(-2); v != 1 {
		t.Fatalf("first require = %d, want 1", v)
	}
	if v := ls.ToInteger(-1); v != 1 {
		t.Fatalf("second require = %d, want 1 (cached)", v)
	}
	ls.Pop(2)
}
