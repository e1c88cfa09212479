package stdlib_test

import (
	"testing"

	"tlua/state"
)

func TestCoroutineWrap(t *testing.T) {
	ls := state.New()
	ls.OpenLibs()
	ls.LoadString(`
		local gen = coroutine.wrap(function()
			for i = 1, 3 do
				coroutine.yield(i)
			end
		end)
		return gen(), gen(), gen()
	`, "stdin")
	ls.Call(0, 3)
	if v := ls.ToInteger(-3); v != 1 {
		t.Fatalf("first yield = %d, want 1", v)
	}
	if v := ls.ToInteger(-2); v != 2 {
		t.Fatalf("second yield = %d, want 2", v)
	}
	if v := ls.ToInteger(-1); v != 3 {
		t.Fatalf("third yield = %d, want 3", v)
	}
	ls.Pop(3)
}
