package state

import (
	"fmt"

	. "tlua/api"
)

// tbcRecord is one to-be-closed local registered by a CLOSE
// instruction in CloseDeclaration mode: reg is the 1-based stack
// register its <close> local occupies, val is the value it held at
// declaration (a <close> local is implicitly const, so this can't go
// stale before the variable leaves scope).
type tbcRecord struct {
	reg int
	val any
}

// CloseTBC implements api.LuaVM per spec.md §4.5.4. In CloseDeclaration
// mode it registers R(a) as a to-be-closed variable, checking it has a
// __close metamethod (or is nil/false, which makes CLOSE a no-op on
// it). In any other mode it closes every registered variable at or
// above register a, in reverse declaration order, chaining each
// handler's error into the next per the close-chain testable property.
func (self *lkState) CloseTBC(a int, mode CloseMode) {
	if mode == CloseDeclaration {
		val := self.stack.get(a)
		if val == nil || val == false {
			return
		}
		if getMetafield(val, "__close", self) == nil {
			panic(fmt.Sprintf("variable got a non-closable value (a %s value)", self.TypeName(typeOf(val))))
		}
		self.stack.tbc = append(self.stack.tbc, tbcRecord{reg: a, val: val})
		return
	}

	var pendingErr any
	self.stack.tbc, pendingErr = closeTBCAbove(self.stack, a, pendingErr)
	if pendingErr != nil {
		panic(pendingErr)
	}
}

// closeTBCAbove splits off every record at or above register a, runs
// their __close handlers in reverse (LIFO) declaration order chaining
// pendingErr through each call, and returns what's left along with the
// final error (nil if every handler ran clean).
func closeTBCAbove(stack *lkStack, a int, pendingErr any) ([]tbcRecord, any) {
	i := len(stack.tbc)
	for i > 0 && stack.tbc[i-1].reg >= a {
		i--
	}
	toClose := stack.tbc[i:]
	remaining := stack.tbc[:i]
	for j := len(toClose) - 1; j >= 0; j-- {
		pendingErr = invokeClose(stack.state, toClose[j].val, pendingErr)
	}
	return remaining, pendingErr
}

// invokeClose calls val's __close(val, err) handler, if it has one,
// and reports whichever error should propagate next: err unchanged if
// the handler ran clean, or the handler's own raised value if it
// panicked (a close handler's error replaces the pending one, per
// spec.md §4.5.4 and the close-error-chaining testable property).
func invokeClose(ls *lkState, val any, err any) (result any) {
	result = err
	mm := getMetafield(val, "__close", ls)
	if mm == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			result = r
		}
	}()

	ls.stack.check(3)
	ls.stack.push(mm)
	ls.stack.push(val)
	ls.stack.push(err)
	ls.Call(2, 0)
	return
}

// closeFrameTBC closes every remaining to-be-closed variable in a
// frame that's being torn down by an in-flight error (a frame popped
// by PCall's unwind rather than by its own CLOSE instructions, because
// the error fired before execution ever reached them).
func closeFrameTBC(stack *lkStack, err any) any {
	_, err = closeTBCAbove(stack, 1, err)
	return err
}

// [-0, +0, –]
// http://www.lua.org/manual/5.4/manual.html#lua_toclose
//
// Marks the value at idx as to-be-closed, same validation and
// bookkeeping as a CLOSE instruction in CloseDeclaration mode — this is
// the host-code equivalent for values a Go function pushes itself
// rather than ones a compiled <close> local declares.
func (self *lkState) ToClose(idx int) {
	absIdx := self.stack.absIndex(idx)
	val := self.stack.get(absIdx)
	if val == nil || val == false {
		return
	}
	if getMetafield(val, "__close", self) == nil {
		panic(fmt.Sprintf("variable got a non-closable value (a %s value)", self.TypeName(typeOf(val))))
	}
	self.stack.tbc = append(self.stack.tbc, tbcRecord{reg: absIdx, val: val})
}

// [-0, +0, e]
// http://www.lua.org/manual/5.4/manual.html#lua_closeslot
//
// Closes the to-be-closed slot at idx out of order, removing it from
// the pending list whether or not its handler runs clean.
func (self *lkState) CloseSlot(idx int) {
	absIdx := self.stack.absIndex(idx)
	tbc := self.stack.tbc
	i := len(tbc) - 1
	for i >= 0 && tbc[i].reg != absIdx {
		i--
	}
	if i < 0 {
		return
	}
	val := tbc[i].val
	self.stack.tbc = append(tbc[:i], tbc[i+1:]...)
	if err := invokeClose(self, val, nil); err != nil {
		panic(err)
	}
}
