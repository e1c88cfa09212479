package state

func (self *lkState) PC() int {
	return self.stack.pc
}

func (self *lkState) AddPC(n int) {
	self.stack.lastPC = self.stack.pc
	self.stack.pc += n
}

func (self *lkState) Fetch() uint32 {
	i := self.stack.closure.proto.Code[self.stack.pc]
	self.stack.lastPC = self.stack.pc
	self.stack.pc++
	self.fireLineHook()
	self.fireCountHook()
	return i
}

func (self *lkState) GetConst(idx int) {
	c := self.stack.closure.proto.Constants[idx]
	self.stack.push(c)
}

func (self *lkState) GetRK(rk int) {
	if rk > 0xFF { // constant
		self.GetConst(rk & 0xFF)
	} else { // register
		self.PushValue(rk + 1)
	}
}

func (self *lkState) RegisterCount() int {
	return int(self.stack.closure.proto.MaxStackSize)
}

func (self *lkState) LoadVararg(n int) {
	if n < 0 {
		n = len(self.stack.varargs)
	}

	self.stack.check(n)
	self.stack.pushN(self.stack.varargs, n)
}

func (self *lkState) LoadProto(idx int) {
	stack := self.stack
	subProto := stack.closure.proto.Protos[idx]
	closure := newLuaClosure(subProto)
	stack.push(closure)

	for i := range subProto.Upvalues {
		uvIdx := int(subProto.Upvalues[i].Idx)
		if subProto.Upvalues[i].Instack == 1 {
			if stack.openuvs == nil {
				stack.openuvs = map[int]*upvalue{}
			}

			if openuv, found := stack.openuvs[uvIdx]; found {
				closure.upVals[i] = openuv
			} else {
				closure.upVals[i] = newOpenUpvalue(stack, uvIdx)
				stack.openuvs[uvIdx] = closure.upVals[i]
			}
		} else {
			closure.upVals[i] = stack.closure.upVals[uvIdx]
		}
	}
}

// CloseUpvalues closes every open upvalue aliasing a slot at or above a,
// detaching it from the departing stack frame so it keeps the value it
// held at the moment its owning scope ended.
func (self *lkState) CloseUpvalues(a int) {
	for i, uv := range self.stack.openuvs {
		if i >= a-1 {
			uv.close()
			delete(self.stack.openuvs, i)
		}
	}
}
