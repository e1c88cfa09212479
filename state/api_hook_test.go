package state_test

import (
	"testing"

	. "tlua/api"
	"tlua/state"
)

func TestSetHookFiresOnLineAndCall(t *testing.T) {
	ls := state.New()
	ls.OpenLibs()

	var lines, calls, returns int
	ls.SetHook(func(hs LuaState, event string, line int) {
		switch event {
		case HookLine:
			lines++
		case HookCall:
			calls++
		case HookReturn:
			returns++
		}
	}, MaskLine|MaskCall|MaskReturn, 0)

	ls.LoadString(`
		local function add(a, b)
			return a + b
		end
		return add(1, 2)
	`, "stdin")
	ls.Call(0, 1)

	if v := ls.ToInteger(-1); v != 3 {
		t.Fatalf("result = %d, want 3", v)
	}
	if lines == 0 {
		t.Fatalf("line hook never fired")
	}
	if calls == 0 {
		t.Fatalf("call hook never fired")
	}
	if returns == 0 {
		t.Fatalf("return hook never fired")
	}
}

func TestGetHookReturnsInstalledHook(t *testing.T) {
	ls := state.New()
	ls.OpenLibs()

	hook := func(hs LuaState, event string, line int) {}
	ls.SetHook(hook, MaskLine, 0)

	_, mask, count := ls.GetHook()
	if mask != MaskLine {
		t.Fatalf("mask = %d, want %d", mask, MaskLine)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
}
