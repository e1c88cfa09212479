package state

// upvalue is a shared cell an inner function captures from an enclosing
// scope. While open it aliases a slot on the stack frame that declared
// it, so writes through the outer local and the inner closure observe
// each other; OP_CLOSE detaches it into its own storage the moment that
// frame's scope ends, after which it outlives the frame (§3.4/§4.3.1).
type upvalue struct {
	stack  *lkStack
	index  int
	closed bool
	value  any
}

// newOpenUpvalue captures a stack slot by reference.
func newOpenUpvalue(stack *lkStack, index int) *upvalue {
	return &upvalue{stack: stack, index: index}
}

// newClosedUpvalue wraps an already-detached value, for upvalues that
// never alias a stack slot (a loaded chunk's _ENV, a Go closure's
// captured arguments).
func newClosedUpvalue(val any) *upvalue {
	return &upvalue{closed: true, value: val}
}

func (uv *upvalue) get() any {
	if uv.closed {
		return uv.value
	}
	return uv.stack.slots[uv.index]
}

func (uv *upvalue) set(val any) {
	if uv.closed {
		uv.value = val
		return
	}
	uv.stack.slots[uv.index] = val
}

// close detaches the upvalue from the stack slot it aliased, copying
// the slot's current value into its own storage. Idempotent.
func (uv *upvalue) close() {
	if uv.closed {
		return
	}
	uv.value = uv.stack.slots[uv.index]
	uv.closed = true
	uv.stack = nil
}
