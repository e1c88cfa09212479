package stdlib

import (
	"os"
	"strings"

	. "tlua/api"
)

const LUA_LOADED_TABLE = "_LOADED"
const LUA_PRELOAD_TABLE = "_PRELOAD"

const (
	LUA_DIRSEP    = string(os.PathSeparator)
	LUA_PATH_SEP  = ";"
	LUA_PATH_MARK = "?"
	LUA_IGMARK    = "-"
)

var pkgFuncs = map[string]GoFunction{
	"searchpath": pkgSearchPath,
}

var requireFuncs = map[string]GoFunction{
	"require": pkgRequire,
}

// lua-5.4/src/loadlib.c#luaopen_package()
func OpenPackageLib(ls LuaState) int {
	ls.NewLib(pkgFuncs)
	createSearchersTable(ls)

	ls.PushString("?.lua;?/init.lua")
	ls.SetField(-2, "path")

	ls.PushString(LUA_DIRSEP + "\n" + LUA_PATH_SEP + "\n" +
		LUA_PATH_MARK + "\n" + LUA_IGMARK + "\n")
	ls.SetField(-2, "config")

	ls.GetSubTable(LUA_REGISTRYINDEX, LUA_LOADED_TABLE)
	ls.SetField(-2, "loaded")
	ls.GetSubTable(LUA_REGISTRYINDEX, LUA_PRELOAD_TABLE)
	ls.SetField(-2, "preload")

	ls.PushGlobalTable()
	ls.PushValue(-2)             // 'package' as upvalue for require
	ls.SetFuncs(requireFuncs, 1) // open require into global table
	ls.Pop(1)                    // pop global table
	return 1
}

func createSearchersTable(ls LuaState) {
	searchers := []GoFunction{preloadSearcher, fileSearcher}
	ls.CreateTable(len(searchers), 0)
	for idx := range searchers {
		ls.PushValue(-2) // 'package' as upvalue for all searchers
		ls.PushGoClosure(searchers[idx], 1)
		ls.RawSetI(-2, int64(idx+1))
	}
	ls.SetField(-2, "searchers")
}

func preloadSearcher(ls LuaState) int {
	name := ls.CheckString(1)
	ls.GetField(LUA_REGISTRYINDEX, LUA_PRELOAD_TABLE)
	if ls.GetField(-1, name) == LUA_TNIL {
		ls.PushString("\n\tno field package.preload['" + name + "']")
	}
	return 1
}

func fileSearcher(ls LuaState) int {
	name := ls.CheckString(1)
	ls.GetField(UpvalueIndex(1), "path")
	path, ok := ls.ToStringX(-1)
	if !ok {
		ls.Error2("'package.path' must be a string")
	}

	filename, errMsg := searchPath(name, path, ".", LUA_DIRSEP)
	if errMsg != "" {
		ls.PushString(errMsg)
		return 1
	}

	if ls.LoadFileCached(filename) == LUA_OK {
		ls.PushString(filename) // 2nd argument to the module function
		return 2
	}
	return ls.Error2("error loading module '%s' from file '%s':\n\t%s",
		name, filename, ls.CheckString(-1))
}

// package.searchpath (name, path [, sep [, rep]])
// lua-5.4/src/loadlib.c#ll_searchpath
func pkgSearchPath(ls LuaState) int {
	name := ls.CheckString(1)
	path := ls.CheckString(2)
	sep := ls.OptString(3, ".")
	rep := ls.OptString(4, LUA_DIRSEP)
	if filename, errMsg := searchPath(name, path, sep, rep); errMsg == "" {
		ls.PushString(filename)
		return 1
	} else {
		ls.PushNil()
		ls.PushString(errMsg)
		return 2
	}
}

func searchPath(name, path, sep, dirSep string) (fname, errMsg string) {
	if sep != "" {
		name = strings.Replace(name, sep, dirSep, -1)
	}
	for _, filename := range strings.Split(path, LUA_PATH_SEP) {
		filename = strings.Replace(filename, LUA_PATH_MARK, name, -1)
		if _, err := os.Stat(filename); err == nil {
			return filename, ""
		}
		errMsg += "\n\tno file '" + filename + "'"
	}
	return "", errMsg
}

// require (modname)
func pkgRequire(ls LuaState) int {
	name := ls.CheckString(1)
	ls.SetTop(1) // LOADED table ends up at index 2
	ls.GetField(LUA_REGISTRYINDEX, LUA_LOADED_TABLE)
	ls.GetField(2, name) // LOADED[name]
	if ls.ToBoolean(-1) {
		return 1 // already loaded
	}
	ls.Pop(1)
	findLoader(ls, name)
	ls.PushString(name) // name is the loader's 1st argument
	ls.Insert(-2)        // ... before the search data returned by the searcher
	ls.Call(2, 1)
	if !ls.IsNil(-1) {
		ls.SetField(2, name) // LOADED[name] = returned value
	}
	if ls.GetField(2, name) == LUA_TNIL {
		ls.PushBoolean(true)
		ls.PushValue(-1)
		ls.SetField(2, name) // LOADED[name] = true
	}
	return 1
}

func findLoader(ls LuaState, name string) {
	if ls.GetField(UpvalueIndex(1), "searchers") != LUA_TTABLE {
		ls.Error2("'package.searchers' must be a table")
	}
	searchers := ls.AbsIndex(-1)
	errMsg := "module '" + name + "' not found:"
	for i := int64(1); ; i++ {
		if ls.RawGetI(searchers, i) == LUA_TNIL {
			ls.Pop(1)
			ls.Error2(errMsg)
		}
		ls.PushString(name)
		ls.Call(1, 2)
		if ls.IsFunction(-2) {
			return // loader found; leaves loader + search data on the stack
		} else if ls.IsString(-2) {
			ls.Pop(1)
			errMsg += ls.CheckString(-1)
		} else {
			ls.Pop(2)
		}
	}
}
