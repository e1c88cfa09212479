package api

// LuaVM is the extra surface the instruction dispatch loop (package vm)
// needs beyond LuaState: raw PC control, constant/RK access, and the
// register-window operations only bytecode ever touches directly.
type LuaVM interface {
	LuaState
	PC() int
	AddPC(n int)
	Fetch() uint32
	GetConst(idx int)
	GetRK(rk int)
	RegisterCount() int
	LoadVararg(n int)
	LoadProto(idx int)
	CloseUpvalues(a int)
	CloseTBC(a int, mode CloseMode)
	VarInfoHint(rk int) string
}
