package state

import (
	"fmt"

	"github.com/rs/zerolog"

	. "tlua/api"
	"tlua/internal/trace"
	"tlua/vm"
)

// [-(nargs+1), +nresults, e]
// http://www.lua.org/manual/5.4/manual.html#lua_call
func (self *lkState) Call(nArgs, nResults int) {
	val := self.stack.get(-(nArgs + 1))

	c, ok := val.(*closure)
	if !ok {
		if mf := getMetafield(val, "__call", self); mf != nil {
			if c, ok = mf.(*closure); ok {
				self.stack.push(val)
				self.Insert(-(nArgs + 2))
				nArgs += 1
			}
		}
	}

	if ok {
		if c.proto != nil {
			self.callLuaClosure(nArgs, nResults, c)
		} else {
			self.callGoClosure(nArgs, nResults, c)
		}
	} else {
		panic(fmt.Sprintf("attempt to call a %s value", self.TypeName(typeOf(val))))
	}
}

func (self *lkState) callGoClosure(nArgs, nResults int, c *closure) {
	newStack := newLuaStack(nArgs+LUA_MINSTACK, self)
	newStack.closure = c

	if nArgs > 0 {
		args := self.stack.popN(nArgs)
		newStack.pushN(args, nArgs)
	}
	self.stack.pop()

	self.pushLuaStack(newStack)
	r := c.goFunc(self)
	self.popLuaStack()

	if nResults != 0 {
		results := newStack.popN(r)
		self.stack.check(len(results))
		self.stack.pushN(results, nResults)
	}
}

func (self *lkState) callLuaClosure(nArgs, nResults int, c *closure) {
	nRegs := int(c.proto.MaxStackSize)
	nParams := int(c.proto.NumParams)
	isVararg := c.proto.IsVararg == 1

	newStack := newLuaStack(nRegs+LUA_MINSTACK, self)
	newStack.closure = c

	funcAndArgs := self.stack.popN(nArgs + 1)
	newStack.pushN(funcAndArgs[1:], nParams)
	newStack.top = nRegs
	if nArgs > nParams && isVararg {
		newStack.varargs = funcAndArgs[nParams+1:]
	}

	self.pushLuaStack(newStack)
	if self.hook != nil && self.hookMask&MaskCall != 0 {
		self.hook(self, HookCall, int(c.proto.LineDefined))
	}
	self.runLuaClosure()
	if self.hook != nil && self.hookMask&MaskReturn != 0 {
		self.hook(self, HookReturn, self.CurrentLine())
	}
	self.popLuaStack()

	if nResults != 0 {
		results := newStack.popN(newStack.top - nRegs)
		self.stack.check(len(results))
		self.stack.pushN(results, nResults)
	}
}

func (self *lkState) runLuaClosure() {
	for {
		inst := vm.Instruction(self.Fetch())
		if trace.Log.GetLevel() <= zerolog.DebugLevel {
			trace.Log.Debug().
				Int("pc", self.stack.lastPC).
				Str("op", inst.OpName()).
				Msg("exec")
		}
		inst.Execute(self)
		if inst.Opcode() == vm.OP_RETURN {
			break
		}
	}
}

// Calls a function in protected mode.
// http://www.lua.org/manual/5.4/manual.html#lua_pcall
//
// msgh, if nonzero, is the stack index of a message handler closure;
// it's read and removed from the stack up front so the protected call
// sees the same [f, args...] shape lua_call expects regardless of
// whether a handler was supplied.
func (self *lkState) PCall(nArgs, nResults, msgh int) (status LuaStatus) {
	caller := self.stack
	status = LUA_ERRRUN

	var msgHandler any
	if msgh != 0 {
		msgHandler = self.stack.get(msgh)
		self.Remove(msgh)
	}

	defer func() {
		if err := recover(); err != nil {
			// run every to-be-closed handler still open in the frames
			// being unwound, chaining their errors per spec.md §4.5.4
			for s := self.stack; s != caller; s = s.prev {
				err = closeFrameTBC(s, err)
			}
			if msgHandler != nil {
				err = self.callMsgHandler(msgHandler, err)
			}
			for self.stack != caller {
				self.popLuaStack()
			}
			self.stack.push(err)
		}
	}()

	self.Call(nArgs, nResults)
	status = LUA_OK
	return
}

// callMsgHandler runs xpcall's message handler in the erroring
// context (the frames between the error and the pcall boundary are
// still linked on the stack, so a traceback taken inside the handler
// sees them) and returns its result as the replacement error
// value, per spec.md §4.5.6 item 3.
func (self *lkState) callMsgHandler(handler, err any) any {
	self.stack.check(2)
	self.stack.push(handler)
	self.stack.push(err)
	self.Call(1, 1)
	return self.stack.pop()
}
