package api

// GoFunction is a native function callable from Lua: a closure over the
// host language exposed through the stack-based API, exactly like a
// lua_CFunction in the reference implementation.
type GoFunction func(LuaState) int

func UpvalueIndex(i int) int {
	return LUA_REGISTRYINDEX - i
}

// LuaState is the full per-thread API surface: stack manipulation,
// value access/construction, table/global access, calls, and the
// auxiliary convenience layer (argument checking, library registration).
type LuaState interface {
	BasicAPI
	AuxLib
}

type BasicAPI interface {
	/* basic stack manipulation */
	GetTop() int
	AbsIndex(idx int) int
	CheckStack(n int) bool
	Pop(n int)
	Copy(fromIdx, toIdx int)
	PushValue(idx int)
	Replace(idx int)
	Insert(idx int)
	Remove(idx int)
	Rotate(idx, n int)
	SetTop(idx int)
	XMove(to LuaState, n int)

	/* access functions (stack -> Go) */
	TypeName(tp LuaType) string
	Type(idx int) LuaType
	IsNone(idx int) bool
	IsNil(idx int) bool
	IsNoneOrNil(idx int) bool
	IsBoolean(idx int) bool
	IsInteger(idx int) bool
	IsNumber(idx int) bool
	IsString(idx int) bool
	IsTable(idx int) bool
	IsThread(idx int) bool
	IsFunction(idx int) bool
	IsGoFunction(idx int) bool
	IsUserData(idx int) bool
	ToBoolean(idx int) bool
	ToUserData(idx int) any
	ToInteger(idx int) int64
	ToIntegerX(idx int) (int64, bool)
	ToNumber(idx int) float64
	ToNumberX(idx int) (float64, bool)
	ToString(idx int) string
	ToStringX(idx int) (string, bool)
	ToGoFunction(idx int) GoFunction
	ToThread(idx int) LuaState
	ToPointer(idx int) interface{}

	/* push functions (Go -> stack) */
	PushNil()
	PushBoolean(b bool)
	PushInteger(n int64)
	PushNumber(n float64)
	PushString(s string)
	PushFString(format string, a ...interface{})
	PushGoFunction(f GoFunction)
	PushGoClosure(f GoFunction, n int)
	PushGlobalTable()
	PushThread() bool
	Push(item any)
	PushUserData(data any)

	/* arithmetic / comparison */
	Arith(op ArithOp)
	Compare(idx1, idx2 int, op CompareOp) bool

	/* get functions (Lua -> stack) */
	NewTable()
	CreateTable(nArr, nRec int)
	GetTable(idx int) LuaType
	GetField(idx int, k string) LuaType
	GetI(idx int, i int64) LuaType
	RawGet(idx int) LuaType
	RawGetI(idx int, i int64) LuaType
	GetGlobal(name string) LuaType
	GetMetatable(idx int) bool

	/* set functions (stack -> Lua) */
	SetTable(idx int)
	SetField(idx int, k string)
	SetMetatable(idx int)
	SetI(idx int, i int64)
	RawSet(idx int)
	RawSetI(idx int, i int64)
	SetGlobal(name string)
	Register(name string, f GoFunction)

	/* load & call */
	Load(chunk []byte, chunkName, mode string) LuaStatus
	Call(nArgs, nResults int)
	PCall(nArgs, nResults, msgh int) LuaStatus

	/* misc */
	Len(idx int)
	RawLen(idx int) int64
	Next(idx int) bool
	Error() int
	StringToNumber(s string) bool
	Concat(n int)

	/* coroutine */
	NewThread() LuaState
	Resume(from LuaState, nArgs int) LuaStatus
	Yield(nResults int) LuaStatus
	Status() LuaStatus
	IsYieldable() bool
	GetStack() bool

	/* to-be-closed */
	CloseSlot(idx int)
	ToClose(idx int)

	/* debug hooks, §4.5.8 */
	SetHook(hook DebugHook, mask int, count int)
	GetHook() (DebugHook, int, int)
	CurrentLine() int

	// CatchAndPrint recovers a panicking Lua error at an API boundary
	// and prints it; isRepl leaves out the "tlua: " prefix that a
	// script-level error is printed with.
	CatchAndPrint(isRepl bool)
}

// DebugHook receives a debug event name and, for HookLine, the current
// source line (0 otherwise).
type DebugHook func(ls LuaState, event string, line int)

type FuncReg map[string]GoFunction

// AuxLib is the convenience layer built on BasicAPI: argument checking,
// error formatting, and standard-library registration helpers.
type AuxLib interface {
	Error2(format string, a ...interface{}) int
	ArgError(arg int, extraMsg string) int

	CheckStack2(sz int, msg string)
	ArgCheck(cond bool, arg int, extraMsg string)
	CheckAny(arg int) any
	CheckType(arg int, t LuaType)
	CheckInteger(arg int) int64
	CheckNumber(arg int) float64
	CheckString(arg int) string
	CheckBool(arg int) bool
	CheckTable(arg int)
	OptInteger(arg int, d int64) int64
	OptNumber(arg int, d float64) float64
	OptString(arg int, d string) string
	OptBool(arg int, d bool) bool

	DoFile(filename string) bool
	DoString(str, source string) bool
	LoadFile(filename string) LuaStatus
	LoadFileX(filename, mode string) LuaStatus
	LoadFileCached(filename string) LuaStatus
	LoadString(s, source string) LuaStatus

	TypeName2(idx int) string
	ToString2(idx int) string
	Len2(idx int) int64
	GetSubTable(idx int, fname string) bool
	GetMetafield(obj int, e string) LuaType
	CallMeta(obj int, e string) bool
	OpenLibs()
	RequireF(modname string, openf GoFunction, glb bool)
	NewLib(l FuncReg)
	NewLibTable(l FuncReg)
	SetFuncs(l FuncReg, nup int)
	Traceback(msg string) string
}
