package state

import (
	"fmt"

	"tlua/binchunk"
	"tlua/vm"
)

// VarInfoHint implements api.LuaVM per spec.md §7's error taxonomy: given
// an RK-encoded operand (same convention as GetRK — values above 0xFF name
// a constant, anything else a register), it names what put that value
// there, so runtime type errors can read e.g. "(global 'aaa')" the way
// canonical Lua's getobjname/varinfo does. Returns "" when nothing useful
// can be said (a constant operand, or a register whose origin can't be
// traced), in which case the caller appends no parenthetical at all.
func (self *lkState) VarInfoHint(rk int) string {
	if rk > 0xFF {
		return ""
	}
	return varInfoHint(self.stack, rk)
}

func varInfoHint(stack *lkStack, reg int) string {
	if stack.closure == nil || stack.closure.proto == nil {
		return ""
	}
	proto := stack.closure.proto
	pc := stack.lastPC

	if name := localNameAt(proto, reg, pc); name != "" {
		return fmt.Sprintf("local '%s'", name)
	}

	for p := pc - 1; p >= 0; p-- {
		inst := vm.Instruction(proto.Code[p])
		a, b, c := inst.ABC()
		if a != reg {
			continue
		}

		switch inst.Opcode() {
		case vm.OP_GETTABUP:
			key, ok := rkString(proto, c)
			if !ok {
				return ""
			}
			if b < len(proto.UpvalueNames) && proto.UpvalueNames[b] == "_ENV" {
				return fmt.Sprintf("global '%s'", key)
			}
			return fmt.Sprintf("field '%s'", key)
		case vm.OP_GETTABLE:
			key, ok := rkString(proto, c)
			if !ok {
				return ""
			}
			return fmt.Sprintf("field '%s'", key)
		case vm.OP_GETUPVAL:
			if b < len(proto.UpvalueNames) {
				return fmt.Sprintf("upvalue '%s'", proto.UpvalueNames[b])
			}
			return ""
		case vm.OP_SELF:
			key, ok := rkString(proto, c)
			if !ok {
				return ""
			}
			return fmt.Sprintf("method '%s'", key)
		case vm.OP_MOVE:
			return varInfoHint(stack, b)
		default:
			return ""
		}
	}
	return ""
}

// localNameAt reports the name of the local occupying reg at pc, if any.
func localNameAt(proto *binchunk.Prototype, reg, pc int) string {
	for _, lv := range proto.LocVars {
		if int(lv.Slot) == reg && uint32(pc) >= lv.StartPC && uint32(pc) < lv.EndPC {
			return lv.VarName
		}
	}
	return ""
}

// rkString resolves an RK operand to a constant string, if it is one. A
// register operand, or a constant of any other type, yields ok=false.
func rkString(proto *binchunk.Prototype, rk int) (string, bool) {
	if rk <= 0xFF {
		return "", false
	}
	idx := rk & 0xFF
	if idx < 0 || idx >= len(proto.Constants) {
		return "", false
	}
	s, ok := proto.Constants[idx].(string)
	return s, ok
}
