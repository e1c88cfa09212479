package state

import (
	"fmt"
	"os"
	"strings"

	. "tlua/api"
	"tlua/binchunk"
	"tlua/compiler"
	"tlua/internal/trace"
)

// Compile reads a source file, compiles it, and writes the corresponding
// binary chunk alongside it (source.lua -> source.luac).
func Compile(source string) *binchunk.Prototype {
	data, err := os.ReadFile(source)
	if err != nil {
		panic("cannot open " + source + ": " + err.Error())
	}

	proto := compiler.Compile(string(data), "@"+source)

	compiledData, err := proto.Dump()
	if err != nil {
		panic("dump of " + source + " failed: " + err.Error())
	}
	if err := os.WriteFile(source+"c", compiledData, 0644); err != nil {
		trace.Warn("could not write %sc: %v", source, err)
	}
	return proto
}

// [-0, +1, –]
// http://www.lua.org/manual/5.4/manual.html#lua_load
func (self *lkState) Load(chunk []byte, chunkName, mode string) LuaStatus {
	var proto *binchunk.Prototype
	var err error
	if binchunk.IsBinaryChunk(chunk) {
		proto, err = binchunk.Load(chunk)
	} else {
		src := string(chunk)
		if strings.HasPrefix(src, "#") {
			if i := strings.IndexByte(src, '\n'); i >= 0 {
				src = src[i:]
			} else {
				src = ""
			}
		}
		proto, err = compileCatch(src, chunkName)
	}
	if err != nil {
		self.stack.push(err.Error())
		return LUA_ERRSYNTAX
	}

	c := newLuaClosure(proto)
	self.stack.push(c)
	if len(proto.Upvalues) > 0 {
		env := self.registry.get(LUA_RIDX_GLOBALS)
		c.upVals[0] = newClosedUpvalue(env)
	}
	return LUA_OK
}

func compileCatch(source, chunkName string) (proto *binchunk.Prototype, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = errString(fmt.Sprintf("%v", r))
			}
		}
	}()
	proto = compiler.Compile(source, chunkName)
	return
}

type errString string

func (e errString) Error() string { return string(e) }
