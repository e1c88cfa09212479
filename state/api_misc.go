package state

import (
	"fmt"

	"tlua/utils"
)

// [-0, +1, e]
// http://www.lua.org/manual/5.3/manual.html#lua_len
func (self *lkState) Len(idx int) {
	val := self.stack.get(idx)

	if s, ok := val.(string); ok {
		self.stack.push(int64(len(s)))
	} else if result, ok := callMetamethod(val, val, "__len", self); ok {
		self.stack.push(result)
	} else if t := toTable(val); t != nil {
		self.stack.push(int64(t.len()))
	} else {
		panic(fmt.Sprintf("attempt to get length of a %s value", self.TypeName(typeOf(val))))
	}
}

// [-1, +(2|0), e]
// http://www.lua.org/manual/5.3/manual.html#lua_next
func (self *lkState) Next(idx int) bool {
	val := self.stack.get(idx)
	if t := toTable(val); t != nil {
		key := self.stack.pop()
		if nextKey := t.nextKey(key); nextKey != nil {
			self.stack.push(nextKey)
			self.stack.push(t.get(nextKey))
			return true
		}
		return false
	}
	panic(fmt.Sprintf("table expected, got %T", val))
}

// [-n, +1, e]
// http://www.lua.org/manual/5.3/manual.html#lua_concat
//
// Pops n values and pushes their concatenation, right to left so a chain
// of .. folds like a binary operator would: each adjacent pair that isn't
// two string/number values falls back to __concat before giving up.
func (self *lkState) Concat(n int) {
	if n == 0 {
		self.stack.push("")
		return
	}

	for n > 1 {
		if self.isConcatable(-2) && self.isConcatable(-1) {
			b := self.ToString(-1)
			a := self.ToString(-2)
			self.stack.pop()
			self.stack.pop()
			self.stack.push(a + b)
		} else {
			b := self.stack.pop()
			a := self.stack.pop()
			if result, ok := callMetamethod(a, b, "__concat", self); ok {
				self.stack.push(result)
			} else {
				bad := a
				if self.isConcatable2(a) {
					bad = b
				}
				panic(fmt.Sprintf("attempt to concatenate a %s value", self.TypeName(typeOf(bad))))
			}
		}
		n--
	}
}

func (self *lkState) isConcatable(idx int) bool {
	return self.isConcatable2(self.stack.get(idx))
}

func (self *lkState) isConcatable2(val any) bool {
	switch val.(type) {
	case string, int64, float64:
		return true
	default:
		return false
	}
}

// [-1, +0, v]
// http://www.lua.org/manual/5.3/manual.html#lua_error
func (self *lkState) Error() int {
	err := self.stack.pop()
	panic(err)
}

// [-0, +1, –]
// http://www.lua.org/manual/5.3/manual.html#lua_stringtoutils
func (self *lkState) StringToNumber(s string) bool {
	if n, ok := utils.ParseInteger(s); ok {
		self.PushInteger(n)
		return true
	}
	if n, ok := utils.ParseFloat(s); ok {
		self.PushNumber(n)
		return true
	}
	return false
}
