package state

import (
	"os"

	. "tlua/api"
	"tlua/compiler"
)

// moduleCache memoizes compiled prototypes across require() calls within
// a process, so the same module loaded from two different require sites
// is only parsed and code-generated once.
var moduleCache = compiler.NewCache(128)

// [-0, +1, m]
// Like LoadFileX, but resolves the compiled prototype through moduleCache
// instead of always recompiling from source.
func (self *lkState) LoadFileCached(filename string) LuaStatus {
	data, err := os.ReadFile(filename)
	if err != nil {
		return LUA_ERRFILE
	}
	proto := moduleCache.CompileCached(filename, string(data), "@"+filename)
	c := newLuaClosure(proto)
	self.stack.push(c)
	if len(proto.Upvalues) > 0 {
		env := self.registry.get(LUA_RIDX_GLOBALS)
		c.upVals[0] = newClosedUpvalue(env)
	}
	return LUA_OK
}
