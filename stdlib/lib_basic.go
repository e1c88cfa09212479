package stdlib

import (
	"strconv"
	"strings"

	. "tlua/api"
)

var baseFuncs = map[string]GoFunction{
	"print":          basePrint,
	"type":           baseType,
	"tostring":       baseToString,
	"tonumber":       baseToNumber,
	"ipairs":         baseIPairs,
	"pairs":          basePairs,
	"next":           baseNext,
	"select":         baseSelect,
	"rawget":         baseRawGet,
	"rawset":         baseRawSet,
	"rawequal":       baseRawEqual,
	"rawlen":         baseRawLen,
	"setmetatable":   baseSetMetatable,
	"getmetatable":   baseGetMetatable,
	"assert":         baseAssert,
	"error":          baseError,
	"pcall":          basePCall,
	"xpcall":         baseXPCall,
	"load":           baseLoad,
	"loadfile":       baseLoadFile,
	"dofile":         baseDoFile,
	"collectgarbage": baseCollectGarbage,
	"unpack":         baseUnpack,
}

// lua-5.4/src/lbaselib.c#luaopen_base()
func OpenBaseLib(ls LuaState) int {
	ls.PushGlobalTable()
	ls.SetFuncs(baseFuncs, 0)
	ls.PushValue(-1)
	ls.SetField(-2, "_G")
	ls.PushString(LUA_VERSION)
	ls.SetField(-2, "_VERSION")
	return 1
}

// print (···)
// http://www.lua.org/manual/5.4/manual.html#pdf-print
func basePrint(ls LuaState) int {
	n := ls.GetTop()
	for i := 1; i <= n; i++ {
		if i > 1 {
			print("\t")
		}
		print(ls.ToString2(i))
		ls.Pop(1)
	}
	println()
	return 0
}

// type (v)
func baseType(ls LuaState) int {
	t := ls.Type(1)
	ls.ArgCheck(t != LUA_TNONE, 1, "value expected")
	ls.PushString(ls.TypeName(t))
	return 1
}

// tostring (v)
func baseToString(ls LuaState) int {
	ls.CheckAny(1)
	ls.PushString(ls.ToString2(1))
	return 1
}

// tonumber (e [, base])
func baseToNumber(ls LuaState) int {
	if ls.IsNoneOrNil(2) {
		ls.CheckAny(1)
		if ls.Type(1) == LUA_TNUMBER {
			ls.SetTop(1)
			return 1
		}
		if s, ok := ls.ToStringX(1); ok {
			if ls.StringToNumber(s) {
				return 1
			}
		}
	} else {
		ls.CheckType(1, LUA_TSTRING)
		s := strings.TrimSpace(ls.ToString(1))
		base := int(ls.CheckInteger(2))
		ls.ArgCheck(2 <= base && base <= 36, 2, "base out of range")
		if n, err := strconv.ParseInt(s, base, 64); err == nil {
			ls.PushInteger(n)
			return 1
		}
	}
	ls.PushNil()
	return 1
}

// ipairs (t)
func baseIPairs(ls LuaState) int {
	ls.CheckAny(1)
	ls.PushGoFunction(iPairsAux)
	ls.PushValue(1)
	ls.PushInteger(0)
	return 3
}

func iPairsAux(ls LuaState) int {
	i := ls.CheckInteger(2) + 1
	ls.PushInteger(i)
	if ls.GetI(1, i) == LUA_TNIL {
		return 1
	}
	return 2
}

// pairs (t)
func basePairs(ls LuaState) int {
	ls.CheckAny(1)
	if ls.GetMetafield(1, "__pairs") == LUA_TNIL {
		ls.PushGoFunction(baseNext)
		ls.PushValue(1)
		ls.PushNil()
	} else {
		ls.PushValue(1)
		ls.Call(1, 3)
	}
	return 3
}

// next (table [, index])
func baseNext(ls LuaState) int {
	ls.CheckType(1, LUA_TTABLE)
	ls.SetTop(2)
	if ls.Next(1) {
		return 2
	}
	ls.PushNil()
	return 1
}

// select ('#', ···) | select (n, ···)
func baseSelect(ls LuaState) int {
	n := ls.GetTop()
	if ls.Type(1) == LUA_TSTRING && ls.ToString(1) == "#" {
		ls.PushInteger(int64(n - 1))
		return 1
	}
	i := ls.CheckInteger(1)
	if i < 0 {
		i = int64(n) + i
	}
	ls.ArgCheck(i >= 1, 1, "index out of range")
	if int(i) > n-1 {
		return 0
	}
	return n - int(i)
}

// rawget (table, index)
func baseRawGet(ls LuaState) int {
	ls.CheckType(1, LUA_TTABLE)
	ls.CheckAny(2)
	ls.SetTop(2)
	ls.RawGet(1)
	return 1
}

// rawset (table, index, value)
func baseRawSet(ls LuaState) int {
	ls.CheckType(1, LUA_TTABLE)
	ls.CheckAny(2)
	ls.CheckAny(3)
	ls.SetTop(3)
	ls.RawSet(1)
	return 1
}

// rawequal (v1, v2)
func baseRawEqual(ls LuaState) int {
	ls.CheckAny(1)
	ls.CheckAny(2)
	ls.PushBoolean(ls.Compare(1, 2, LUA_OPEQ))
	return 1
}

// rawlen (v)
func baseRawLen(ls LuaState) int {
	t := ls.Type(1)
	ls.ArgCheck(t == LUA_TTABLE || t == LUA_TSTRING, 1, "table or string expected")
	ls.PushInteger(ls.RawLen(1))
	return 1
}

// setmetatable (table, metatable)
func baseSetMetatable(ls LuaState) int {
	ls.CheckType(1, LUA_TTABLE)
	if ls.IsNoneOrNil(2) {
		ls.PushNil()
	} else {
		ls.CheckType(2, LUA_TTABLE)
	}
	if ls.GetMetafield(1, "__metatable") != LUA_TNIL {
		ls.Error2("cannot change a protected metatable")
	}
	ls.SetTop(2)
	ls.SetMetatable(1)
	return 1
}

// getmetatable (object) — if the metatable carries a __metatable field,
// that value is returned instead of the metatable itself (protection).
func baseGetMetatable(ls LuaState) int {
	if !ls.GetMetatable(1) {
		ls.PushNil()
		return 1
	}
	// the metatable is now on top of the stack
	ls.PushString("__metatable")
	ls.RawGet(-2)
	if !ls.IsNil(-1) {
		ls.Remove(-2)
	} else {
		ls.Pop(1)
	}
	return 1
}

// assert (v [, message])
func baseAssert(ls LuaState) int {
	if ls.ToBoolean(1) {
		return ls.GetTop()
	}
	ls.CheckAny(1)
	ls.Remove(1)
	ls.PushString("assertion failed!")
	ls.SetTop(1)
	return baseError(ls)
}

// error (message [, level])
func baseError(ls LuaState) int {
	level := int(ls.OptInteger(2, 1))
	ls.SetTop(1)
	if ls.Type(1) == LUA_TSTRING && level > 0 {
		ls.PushString(ls.Traceback(ls.ToString(1)))
		ls.Replace(1)
	}
	return ls.Error()
}

// pcall (f [, arg1, ···])
func basePCall(ls LuaState) int {
	nArgs := ls.GetTop() - 1
	status := ls.PCall(nArgs, LUA_MULTRET, 0)
	ls.PushBoolean(status == LUA_OK)
	ls.Insert(1)
	return ls.GetTop()
}

// xpcall (f, msgh [, arg1, ···])
func baseXPCall(ls LuaState) int {
	nArgs := ls.GetTop() - 2
	status := ls.PCall(nArgs, LUA_MULTRET, 2)
	ls.PushBoolean(status == LUA_OK)
	ls.Insert(1)
	return ls.GetTop()
}

// load (chunk [, chunkname [, mode [, env]]])
func baseLoad(ls LuaState) int {
	var status LuaStatus
	chunk, isStr := ls.ToStringX(1)
	mode := ls.OptString(3, "bt")
	env := 0
	if !ls.IsNone(4) {
		env = 4
	}
	if isStr {
		chunkname := ls.OptString(2, chunk)
		status = ls.Load([]byte(chunk), chunkname, mode)
	} else {
		panic("loading from a reader function is not supported")
	}
	return loadAux(ls, status, env)
}

func loadAux(ls LuaState, status LuaStatus, envIdx int) int {
	if status == LUA_OK {
		return 1
	}
	ls.PushNil()
	ls.Insert(-2)
	return 2
}

// loadfile ([filename [, mode [, env]]])
func baseLoadFile(ls LuaState) int {
	fname := ls.OptString(1, "")
	mode := ls.OptString(2, "bt")
	env := 0
	if !ls.IsNone(3) {
		env = 3
	}
	status := ls.LoadFileX(fname, mode)
	return loadAux(ls, status, env)
}

// dofile ([filename])
func baseDoFile(ls LuaState) int {
	fname := ls.OptString(1, "")
	ls.SetTop(1)
	if ls.LoadFile(fname) != LUA_OK {
		return ls.Error()
	}
	ls.Call(0, LUA_MULTRET)
	return ls.GetTop() - 1
}

// collectgarbage ([opt [, arg]]) — this runtime has no manual GC control
// surface, so every option is a no-op that returns 0.
func baseCollectGarbage(ls LuaState) int {
	ls.PushInteger(0)
	return 1
}

// unpack is kept as a base-level convenience (table.unpack is the
// canonical 5.4 spelling; this mirrors 5.1-era code that still calls the
// global).
func baseUnpack(ls LuaState) int {
	return tableUnpack(ls)
}
