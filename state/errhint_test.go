package state_test

import (
	"strings"
	"testing"

	. "tlua/api"
	"tlua/state"
)

func runProtected(t *testing.T, src string) string {
	t.Helper()
	ls := state.New()
	ls.OpenLibs()
	ls.LoadString(src, "stdin")
	if status := ls.PCall(0, 1, 0); status == LUA_OK {
		t.Fatalf("script %q did not error", src)
	}
	return ls.ToString(-1)
}

func TestArithErrorHintsGlobal(t *testing.T) {
	err := runProtected(t, `
		aaa = {}
		return aaa + 1
	`)
	if !strings.Contains(err, "global 'aaa'") {
		t.Fatalf("error %q does not name the global", err)
	}
}

func TestArithErrorHintsLocal(t *testing.T) {
	err := runProtected(t, `
		local x = {}
		return x + 1
	`)
	if !strings.Contains(err, "local 'x'") {
		t.Fatalf("error %q does not name the local", err)
	}
}

func TestIndexErrorHintsField(t *testing.T) {
	err := runProtected(t, `
		local t = {}
		return t.missing.deeper
	`)
	if !strings.Contains(err, "field 'missing'") {
		t.Fatalf("error %q does not name the field", err)
	}
}

func TestCallErrorHintsMethod(t *testing.T) {
	err := runProtected(t, `
		local t = {}
		return t:nope()
	`)
	if !strings.Contains(err, "method 'nope'") {
		t.Fatalf("error %q does not name the method", err)
	}
}

func TestConcatErrorHintsGlobal(t *testing.T) {
	err := runProtected(t, `
		bbb = {}
		return "x" .. bbb
	`)
	if !strings.Contains(err, "attempt to concatenate") || !strings.Contains(err, "global 'bbb'") {
		t.Fatalf("error %q missing concat hint", err)
	}
}

func TestNestedCallErrorIsNotDoublyHinted(t *testing.T) {
	err := runProtected(t, `
		local function inner()
			local missing
			return missing()
		end
		local function outer()
			return inner()
		end
		return outer()
	`)
	if strings.Count(err, "(") > 1 {
		t.Fatalf("error %q decorated at more than one call level", err)
	}
	if !strings.Contains(err, "local 'missing'") {
		t.Fatalf("error %q does not name the innermost local", err)
	}
}
