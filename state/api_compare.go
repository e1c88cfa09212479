package state

import (
	"fmt"

	. "tlua/api"
)

// [-0, +0, e]
// http://www.lua.org/manual/5.4/manual.html#lua_compare
func (self *lkState) Compare(idx1, idx2 int, op CompareOp) bool {
	a := self.stack.get(idx1)
	b := self.stack.get(idx2)

	switch op {
	case LUA_OPEQ:
		return self.valuesEqual(a, b)
	case LUA_OPLT:
		return self.lessThan(a, b)
	case LUA_OPLE:
		return self.lessEqual(a, b)
	default:
		panic("invalid compare op!")
	}
}

// valuesEqual implements ==: numbers compare across int/float
// representation, strings and booleans compare by value, tables and
// userdata compare by identity unless __eq says otherwise (only
// consulted when both operands share that type and aren't already the
// same object, per the manual).
func (self *lkState) valuesEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}

	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return x == y
		case float64:
			return float64(x) == y
		}
		return false
	case float64:
		switch y := b.(type) {
		case int64:
			return x == float64(y)
		case float64:
			return x == y
		}
		return false
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case *lkTable:
		y, ok := b.(*lkTable)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if result, ok := callMetamethod(x, y, "__eq", self); ok {
			return convertToBoolean(result)
		}
		return false
	case *lkUserData:
		y, ok := b.(*lkUserData)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		if result, ok := callMetamethod(x, y, "__eq", self); ok {
			return convertToBoolean(result)
		}
		return false
	default:
		return a == b
	}
}

// lessThan implements <: numbers and strings compare directly, anything
// else falls back to __lt.
func (self *lkState) lessThan(a, b any) bool {
	if x, ok := numericValue(a); ok {
		if y, ok := numericValue(b); ok {
			return x < y
		}
	}
	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			return x < y
		}
	}
	if result, ok := callMetamethod(a, b, "__lt", self); ok {
		return convertToBoolean(result)
	}
	panic(self.compareError(a, b))
}

// lessEqual implements <=, via __le only — Lua 5.4 dropped the
// not-(b<a) fallback 5.3 used when __le was missing.
func (self *lkState) lessEqual(a, b any) bool {
	if x, ok := numericValue(a); ok {
		if y, ok := numericValue(b); ok {
			return x <= y
		}
	}
	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			return x <= y
		}
	}
	if result, ok := callMetamethod(a, b, "__le", self); ok {
		return convertToBoolean(result)
	}
	panic(self.compareError(a, b))
}

func (self *lkState) compareError(a, b any) string {
	ta, tb := self.TypeName(typeOf(a)), self.TypeName(typeOf(b))
	if ta == tb {
		return fmt.Sprintf("attempt to compare two %s values", ta)
	}
	return fmt.Sprintf("attempt to compare %s with %s", ta, tb)
}

// numericValue reports a's value as a float64 if it's a number, without
// the string-coercion convertToFloat allows for arithmetic — Lua never
// coerces strings for ordering comparisons.
func numericValue(a any) (float64, bool) {
	switch x := a.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

// [-0, +0, –]
// http://www.lua.org/manual/5.4/manual.html#lua_rawlen
func (self *lkState) RawLen(idx int) int64 {
	val := self.stack.get(idx)
	switch x := val.(type) {
	case string:
		return int64(len(x))
	case *lkTable:
		return int64(x.len())
	default:
		panic("table or string expected")
	}
}
