package state

import (
	"fmt"
	"math"

	. "tlua/api"
	"tlua/utils"
)

type operator struct {
	metamethod  string
	integerFunc func(int64, int64) int64
	floatFunc   func(float64, float64) float64
}

var (
	iadd  = func(a, b int64) int64 { return a + b }
	fadd  = func(a, b float64) float64 { return a + b }
	isub  = func(a, b int64) int64 { return a - b }
	fsub  = func(a, b float64) float64 { return a - b }
	imul  = func(a, b int64) int64 { return a * b }
	fmul  = func(a, b float64) float64 { return a * b }
	imod  = utils.IMod
	fmod  = utils.FMod
	pow   = math.Pow
	div   = func(a, b float64) float64 { return a / b }
	iidiv = utils.IFloorDiv
	fidiv = utils.FFloorDiv
	band  = func(a, b int64) int64 { return a & b }
	bor   = func(a, b int64) int64 { return a | b }
	bxor  = func(a, b int64) int64 { return a ^ b }
	shl   = utils.ShiftLeft
	shr   = utils.ShiftRight
	iunm  = func(a, _ int64) int64 { return -a }
	funm  = func(a, _ float64) float64 { return -a }
	bnot  = func(a, _ int64) int64 { return ^a }
)

var operators = []operator{
	{"__add", iadd, fadd},
	{"__sub", isub, fsub},
	{"__mul", imul, fmul},
	{"__mod", imod, fmod},
	{"__pow", nil, pow},
	{"__div", nil, div},
	{"__idiv", iidiv, fidiv},
	{"__band", band, nil},
	{"__bor", bor, nil},
	{"__bxor", bxor, nil},
	{"__shl", shl, nil},
	{"__shr", shr, nil},
	{"__unm", iunm, funm},
	{"__bnot", bnot, nil},
}

func opSymbol(opName string) string {
	switch opName {
	case "__add":
		return "+"
	case "__sub":
		return "-"
	case "__mul":
		return "*"
	case "__mod":
		return "%"
	case "__pow":
		return "^"
	case "__div":
		return "/"
	case "__idiv":
		return "//"
	case "__band":
		return "&"
	case "__bor":
		return "|"
	case "__bxor":
		return "~"
	case "__shl":
		return "<<"
	case "__shr":
		return ">>"
	case "__unm":
		return "-"
	case "__bnot":
		return "~"
	default:
		return opName
	}
}

// [-(2|1), +1, e]
// http://www.lua.org/manual/5.3/manual.html#lua_arith
func (self *lkState) Arith(op ArithOp) {
	var a, b any // operands
	b = self.stack.pop()
	if op != LUA_OPUNM && op != LUA_OPBNOT {
		a = self.stack.pop()
	} else {
		a = b
	}

	operator := operators[op]
	if result, ok := _arith(a, b, operator); ok {
		self.stack.push(result)
		return
	}

	mm := operator.metamethod
	if result, ok := callMetamethod(a, b, mm, self); ok {
		self.stack.push(result)
		return
	}

	bad := a
	if _, ok := convertToFloat(a); ok && operator.floatFunc != nil {
		bad = b
	}
	panic(fmt.Sprintf("attempt to perform arithmetic on a %s value", self.TypeName(typeOf(bad))))
}

// _arith applies the bitwise-or-numeric operation with Lua 5.4's integer
// preservation and string coercion rules. Bitwise ops demand both operands
// be integer-representable; arithmetic prefers an integer result but falls
// back to float the moment either operand is (or coerces to) one.
func _arith(a, b any, op operator) (any, bool) {
	if op.floatFunc == nil { // bitwise: always integer, strings coerce too
		if x, ok := convertToInteger(a); ok {
			if y, ok := convertToInteger(b); ok {
				return op.integerFunc(x, y), true
			}
		}
		return nil, false
	}

	if op.integerFunc != nil { // add, sub, mul, mod, idiv, unm
		if x, ok := a.(int64); ok {
			if y, ok := b.(int64); ok {
				return op.integerFunc(x, y), true
			}
		}
	}
	if x, ok := convertToFloat(a); ok {
		if y, ok := convertToFloat(b); ok {
			return op.floatFunc(x, y), true
		}
	}
	return nil, false
}
