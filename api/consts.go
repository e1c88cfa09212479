// Package api defines the host-facing contract between the VM dispatch
// loop (package vm), the runtime value model (package state) and the
// standard library (package stdlib): the stack-based API a C embedder of
// real Lua would call "the Lua C API", kept here as a Go interface so the
// three packages don't import each other directly.
package api

import "math/bits"

const LUA_MINSTACK = 20
const LUAI_MAXSTACK = 1000000
const LUA_REGISTRYINDEX = -LUAI_MAXSTACK - 1000
const LUA_RIDX_MAINTHREAD int64 = 1
const LUA_RIDX_GLOBALS int64 = 2
const LUA_MULTRET = -1

const LUA_VERSION = "Lua 5.4"

const (
	intBits       = bits.UintSize - 1
	LUA_MAXINTEGER = 1<<intBits - 1
	LUA_MININTEGER = -1 << intBits
)

// LuaType tags the dynamic type of a Value, mirroring lua_type()'s
// return values (§3 of the spec).
type LuaType = int

const (
	LUA_TNONE LuaType = iota - 1
	LUA_TNIL
	LUA_TBOOLEAN
	LUA_TLIGHTUSERDATA
	LUA_TNUMBER
	LUA_TSTRING
	LUA_TTABLE
	LUA_TFUNCTION
	LUA_TUSERDATA
	LUA_TTHREAD
)

// ArithOp selects the operation for Arith(); values mirror lua_Arith's
// LUA_OP* constants plus the two unary operators appended at the end.
type ArithOp = int

const (
	LUA_OPADD ArithOp = iota
	LUA_OPSUB
	LUA_OPMUL
	LUA_OPMOD
	LUA_OPPOW
	LUA_OPDIV
	LUA_OPIDIV
	LUA_OPBAND
	LUA_OPBOR
	LUA_OPBXOR
	LUA_OPSHL
	LUA_OPSHR
	LUA_OPUNM
	LUA_OPBNOT
)

// CompareOp selects the operation for Compare().
type CompareOp = int

const (
	LUA_OPEQ CompareOp = iota
	LUA_OPLT
	LUA_OPLE
)

// LuaStatus is a thread/coroutine status or a pcall-family result code.
type LuaStatus int

const (
	LUA_OK LuaStatus = iota
	LUA_YIELD
	LUA_ERRRUN
	LUA_ERRSYNTAX
	LUA_ERRMEM
	LUA_ERRGCMM
	LUA_ERRERR
	LUA_ERRFILE
)

func (s LuaStatus) String() string {
	switch s {
	case LUA_OK:
		return "ok"
	case LUA_YIELD:
		return "yield"
	case LUA_ERRRUN:
		return "runtime error"
	case LUA_ERRSYNTAX:
		return "syntax error"
	case LUA_ERRMEM:
		return "out of memory"
	case LUA_ERRGCMM:
		return "error in __gc"
	case LUA_ERRERR:
		return "error in message handler"
	case LUA_ERRFILE:
		return "file error"
	default:
		return "unknown status"
	}
}

// ThreadStatus strings, as surfaced by coroutine.status().
const (
	ThreadSuspended = "suspended"
	ThreadRunning   = "running"
	ThreadNormal    = "normal"
	ThreadDead      = "dead"
)

// DebugHookMask bits, per spec.md §4.5.8.
const (
	MaskCall = 1 << iota
	MaskReturn
	MaskLine
	MaskCount
	MaskTailCall
)

// Debug event kinds delivered to hook functions.
const (
	HookCall     = "call"
	HookReturn   = "return"
	HookLine     = "line"
	HookCount    = "count"
	HookTailCall = "tailcall"
)

// CloseMode distinguishes why OP_CLOSE is running, per spec.md §4.3.1.
type CloseMode = int

const (
	CloseScopeExit CloseMode = iota
	CloseDeclaration
	CloseExplicit
)
