package state

import (
	"fmt"
	"os"

	. "tlua/api"
	"tlua/internal/errs"
)

// [-0, +0, –]
func (self *lkState) SetHook(hook DebugHook, mask int, count int) {
	self.hook = hook
	self.hookMask = mask
	self.hookCount = count
	self.hookCalls = 0
	self.lastLine = -1
}

// [-0, +0, –]
func (self *lkState) GetHook() (DebugHook, int, int) {
	return self.hook, self.hookMask, self.hookCount
}

// [-0, +0, –]
func (self *lkState) CurrentLine() int {
	s := self.stack
	if s == nil || s.closure == nil || s.closure.proto == nil {
		return -1
	}
	proto := s.closure.proto
	if s.lastPC < 0 || s.lastPC >= len(proto.LineInfo) {
		return -1
	}
	return int(proto.LineInfo[s.lastPC])
}

// fireLineHook runs the installed line hook when the current instruction
// starts a new source line, mirroring luaG_traceexec's line-event check.
func (self *lkState) fireLineHook() {
	if self.hook == nil || self.hookMask&MaskLine == 0 {
		return
	}
	line := self.CurrentLine()
	if line < 0 || line == self.lastLine {
		return
	}
	self.lastLine = line
	self.hook(self, HookLine, line)
}

// CatchAndPrint recovers a panicking Lua error at an API boundary (the
// top level of a script run, or a single REPL chunk) and prints it to
// stderr. isRepl leaves out the "tlua: " prefix that a script-level
// error is printed with.
func (self *lkState) CatchAndPrint(isRepl bool) {
	r := recover()
	if r == nil {
		return
	}
	le := errs.Wrap(r, self.Traceback(""))
	if isRepl {
		fmt.Fprintln(os.Stderr, le.Error())
	} else {
		fmt.Fprintln(os.Stderr, "tlua: "+le.Error())
	}
}

// fireCountHook runs the installed count hook every hookCount instructions.
func (self *lkState) fireCountHook() {
	if self.hook == nil || self.hookMask&MaskCount == 0 || self.hookCount <= 0 {
		return
	}
	self.hookCalls++
	if self.hookCalls >= self.hookCount {
		self.hookCalls = 0
		self.hook(self, HookCount, self.CurrentLine())
	}
}
