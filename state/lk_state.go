package state

import . "tlua/api"

type lkState struct {
	registry *lkTable
	stack    *lkStack
	/* coroutine */
	coStatus LuaStatus
	coCaller *lkState
	coChan   chan int
	/* debug hook */
	hook      DebugHook
	hookMask  int
	hookCount int
	hookCalls int
	lastLine  int
}

func New() LuaState {
	ls := &lkState{}

	registry := newLkTable(8, 0)
	registry.put(LUA_RIDX_MAINTHREAD, ls)
	registry.put(LUA_RIDX_GLOBALS, newLkTable(0, 20))

	ls.registry = registry
	ls.pushLuaStack(newLuaStack(LUA_MINSTACK, ls))
	return ls
}

func (self *lkState) isMainThread() bool {
	return self.registry.get(LUA_RIDX_MAINTHREAD) == self
}

func (self *lkState) pushLuaStack(stack *lkStack) {
	stack.prev = self.stack
	self.stack = stack
}

func (self *lkState) popLuaStack() {
	stack := self.stack
	self.stack = stack.prev
	stack.prev = nil
}
