package stdlib

import . "tlua/api"

var debugFuncs = map[string]GoFunction{
	"traceback": debugTraceback,
	"sethook":   debugSetHook,
	"gethook":   debugGetHook,
	"getinfo":   debugGetInfo,
}

// lua-5.4/src/ldblib.c#luaopen_debug()
func OpenDebugLib(ls LuaState) int {
	ls.NewLib(debugFuncs)
	return 1
}

// debug.traceback ([message [, level]])
func debugTraceback(ls LuaState) int {
	msg := ls.OptString(1, "")
	ls.PushString(ls.Traceback(msg))
	return 1
}

// debug.sethook ([hook, mask, count])
func debugSetHook(ls LuaState) int {
	if ls.IsNoneOrNil(1) {
		ls.SetHook(nil, 0, 0)
		return 0
	}
	ls.CheckType(1, LUA_TFUNCTION)
	maskStr := ls.OptString(2, "")
	count := int(ls.OptInteger(3, 0))

	mask := 0
	for _, c := range maskStr {
		switch c {
		case 'c':
			mask |= MaskCall
		case 'r':
			mask |= MaskReturn
		case 'l':
			mask |= MaskLine
		}
	}
	if count > 0 {
		mask |= MaskCount
	}

	// Stash the Lua hook function in the registry so the DebugHook closure
	// below can find it again on every firing, long after stack position 1
	// here has been reused for something else.
	const hookRegKey = "_DBGHOOK"
	ls.PushValue(1)
	ls.SetField(LUA_REGISTRYINDEX, hookRegKey)
	ls.SetHook(luaDebugHook, mask, count)
	return 0
}

// luaDebugHook looks up the registered Lua hook function and calls it
// with (event [, line]).
func luaDebugHook(ls LuaState, event string, line int) {
	const hookRegKey = "_DBGHOOK"
	ls.GetField(LUA_REGISTRYINDEX, hookRegKey)
	ls.PushString(event)
	if event == HookLine || event == HookCount {
		ls.PushInteger(int64(line))
		ls.Call(2, 0)
	} else {
		ls.Call(1, 0)
	}
}

// debug.gethook ()
func debugGetHook(ls LuaState) int {
	_, mask, count := ls.GetHook()
	var s string
	if mask&MaskCall != 0 {
		s += "c"
	}
	if mask&MaskReturn != 0 {
		s += "r"
	}
	if mask&MaskLine != 0 {
		s += "l"
	}
	ls.PushString(s)
	ls.PushInteger(int64(count))
	return 2
}

// debug.getinfo ([thread,] f [, what]) — a reduced subset reporting only
// the fields this runtime can answer without a full activation-record
// table (currentline, source, what).
func debugGetInfo(ls LuaState) int {
	ls.CreateTable(0, 4)
	ls.PushInteger(int64(ls.CurrentLine()))
	ls.SetField(-2, "currentline")
	ls.PushString("Lua")
	ls.SetField(-2, "what")
	ls.PushString("?")
	ls.SetField(-2, "source")
	return 1
}
