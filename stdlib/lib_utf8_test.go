package stdlib_test

import (
	"testing"

	"tlua/state"
)

func TestUTF8Len(t *testing.T) {
	ls := state.New()
	ls.OpenLibs()
	ls.LoadString(`return utf8.len("héllo")`, "stdin")
	ls.Call(0, 1)
	if v := ls.ToInteger(-1); v != 5 {
		t.Fatalf("utf8.len = %d, want 5", v)
	}
	ls.Pop(1)
}

func TestUTF8CharAndCodepoint(t *testing.T) {
	ls := state.New()
	ls.OpenLibs()
	ls.LoadString(`return utf8.char(104, 105)`, "stdin")
	ls.Call(0, 1)
	if s := ls.ToString(-1); s != "hi" {
		t.Fatalf("utf8.char = %q, want hi", s)
	}
	ls.Pop(1)

	ls.LoadString(`return utf8.codepoint("A")`, "stdin")
	ls.Call(0, 1)
	if v := ls.ToInteger(-1); v != 65 {
		t.Fatalf("utf8.codepoint = %d, want 65", v)
	}
	ls.Pop(1)
}

func TestUTF8Codes(t *testing.T) {
	ls := state.New()
	ls.OpenLibs()
	ls.LoadString(`
		local count = 0
		for p, c in utf8.codes("abc") do
			count = count + 1
		end
		return count
	`, "stdin")
	ls.Call(0, 1)
	if v := ls.ToInteger(-1); v != 3 {
		t.Fatalf("utf8.codes iterated %d times, want 3", v)
	}
	ls.Pop(1)
}
