package vm

import (
	"strings"

	. "tlua/api"
)

// appendHint decorates a recovered panic value with a "(kind 'name')"
// parenthetical traced back through reg, the way canonical Lua's runtime
// errors name the offending global/local/upvalue/field/method. Only the
// handful of generic type-error messages this VM raises get decorated;
// anything else (a non-string panic, an already-specific error, a value
// thrown by error()) passes through untouched.
func appendHint(vm LuaVM, reg int, r any) any {
	msg, ok := r.(string)
	// A panic already carrying a hint came from a nested instruction at a
	// different register/frame (e.g. an erroring call two levels deep) and
	// is unwinding through this one on its way out; leave it alone rather
	// than appending a second, unrelated hint from this frame's register.
	if !ok || !hintablePrefix(msg) || strings.HasSuffix(msg, "')") {
		return r
	}
	if hint := vm.VarInfoHint(reg); hint != "" {
		return msg + " (" + hint + ")"
	}
	return r
}

func hintablePrefix(msg string) bool {
	prefixes := [...]string{
		"attempt to perform arithmetic on",
		"attempt to index",
		"attempt to call",
		"attempt to concatenate",
		"attempt to get length of",
	}
	for _, p := range prefixes {
		if strings.HasPrefix(msg, p) {
			return true
		}
	}
	return false
}

// isArithable reports whether RK(rk) is itself a number or string, the
// same coercion Arith accepts, without disturbing the stack.
func isArithable(vm LuaVM, rk int) bool {
	vm.GetRK(rk)
	t := vm.Type(-1)
	vm.Pop(1)
	return t == LUA_TNUMBER || t == LUA_TSTRING
}
