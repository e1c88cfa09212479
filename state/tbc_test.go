package state_test

import (
	"testing"

	"tlua/state"
)

func TestCloseRunsInReverseDeclarationOrder(t *testing.T) {
	ls := state.New()
	ls.OpenLibs()

	ls.LoadString(`
		local log = {}
		local function tracker(name)
			return setmetatable({}, {__close = function() table.insert(log, name) end})
		end
		local function run()
			local a <close> = tracker("a")
			local b <close> = tracker("b")
		end
		run()
		return table.concat(log, ",")
	`, "stdin")
	ls.Call(0, 1)

	if got := ls.ToString(-1); got != "b,a" {
		t.Fatalf("close order = %q, want %q", got, "b,a")
	}
}

func TestCloseRunsDuringErrorUnwind(t *testing.T) {
	ls := state.New()
	ls.OpenLibs()

	ls.LoadString(`
		local ran = false
		local function tracker()
			return setmetatable({}, {__close = function() ran = true end})
		end
		local ok = pcall(function()
			local x <close> = tracker()
			error("boom")
		end)
		return ran
	`, "stdin")
	ls.Call(0, 1)

	if got := ls.ToBoolean(-1); !got {
		t.Fatalf("__close did not run while unwinding a pcall error")
	}
}

func TestXPCallInvokesMessageHandler(t *testing.T) {
	ls := state.New()
	ls.OpenLibs()

	ls.LoadString(`
		local ok, msg = xpcall(function() error("boom") end, function(e) return "handled: " .. e end)
		return ok, msg
	`, "stdin")
	ls.Call(0, 2)

	if ok := ls.ToBoolean(-2); ok {
		t.Fatalf("xpcall status = true, want false")
	}
	msg := ls.ToString(-1)
	if msg == "" || msg[:8] != "handled:" {
		t.Fatalf("xpcall message = %q, want handler-wrapped message", msg)
	}
}

func TestConcatCoercesAndChainsRightToLeft(t *testing.T) {
	ls := state.New()
	ls.OpenLibs()

	ls.LoadString(`return "x=" .. 1 .. "," .. 2.5`, "stdin")
	ls.Call(0, 1)

	if got := ls.ToString(-1); got != "x=1,2.5" {
		t.Fatalf("concat = %q, want %q", got, "x=1,2.5")
	}
}
