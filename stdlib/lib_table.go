package stdlib

import (
	"sort"
	"strings"

	. "tlua/api"
)

var tableLib = map[string]GoFunction{
	"insert": tableInsert,
	"remove": tableRemove,
	"concat": tableConcat,
	"sort":   tableSort,
	"pack":   tablePack,
	"unpack": tableUnpack,
	"move":   tableMove,
}

// lua-5.4/src/ltablib.c#luaopen_table()
func OpenTableLib(ls LuaState) int {
	ls.NewLib(tableLib)
	return 1
}

func tableLen(ls LuaState, idx int) int64 {
	ls.Len(idx)
	n := ls.ToInteger(-1)
	ls.Pop(1)
	return n
}

// insert (list, [pos,] value)
func tableInsert(ls LuaState) int {
	e := int(tableLen(ls, 1)) + 1
	var pos int
	switch ls.GetTop() {
	case 2:
		pos = e
	case 3:
		pos = int(ls.CheckInteger(2))
		ls.ArgCheck(1 <= pos && pos <= e, 2, "position out of bounds")
		for i := e; i > pos; i-- {
			ls.GetI(1, int64(i-1))
			ls.SetI(1, int64(i))
		}
	default:
		return ls.Error2("wrong number of arguments to 'insert'")
	}
	ls.SetI(1, int64(pos))
	return 0
}

// remove (list [, pos])
func tableRemove(ls LuaState) int {
	size := int(tableLen(ls, 1))
	pos := int(ls.OptInteger(2, int64(size)))
	if size == 0 {
		return 0
	}
	if pos != size {
		ls.ArgCheck(1 <= pos && pos <= size+1, 2, "position out of bounds")
	}
	ls.GetI(1, int64(pos))
	for ; pos < size; pos++ {
		ls.GetI(1, int64(pos+1))
		ls.SetI(1, int64(pos))
	}
	ls.PushNil()
	ls.SetI(1, int64(pos))
	return 1
}

// concat (list [, sep [, i [, j]]])
func tableConcat(ls LuaState) int {
	sep := ls.OptString(2, "")
	i := ls.OptInteger(3, 1)
	j := ls.OptInteger(4, tableLen(ls, 1))

	var b strings.Builder
	for ; i <= j; i++ {
		ls.GetI(1, i)
		if !ls.IsString(-1) {
			ls.Error2("invalid value (at index %d) in table for 'concat'", i)
		}
		b.WriteString(ls.ToString(-1))
		ls.Pop(1)
		if i != j {
			b.WriteString(sep)
		}
	}
	ls.PushString(b.String())
	return 1
}

// pack (···)
func tablePack(ls LuaState) int {
	n := ls.GetTop()
	ls.CreateTable(n, 1)
	ls.Insert(1) // move the new table below all the arguments
	for i := n; i >= 1; i-- {
		ls.SetI(1, int64(i))
	}
	ls.PushInteger(int64(n))
	ls.SetField(1, "n")
	return 1
}

// unpack (list [, i [, j]])
func tableUnpack(ls LuaState) int {
	i := ls.OptInteger(2, 1)
	j := ls.OptInteger(3, tableLen(ls, 1))
	if i > j {
		return 0
	}
	n := j - i + 1
	if n <= 0 || int64(int(n)) != n {
		return ls.Error2("too many results to unpack")
	}
	ls.CheckStack2(int(n), "too many results to unpack")
	for ; i <= j; i++ {
		ls.GetI(1, i)
	}
	return int(n)
}

// move (a1, f, e, t [, a2])
func tableMove(ls LuaState) int {
	f := ls.CheckInteger(2)
	e := ls.CheckInteger(3)
	t := ls.CheckInteger(4)
	tt := 1
	if !ls.IsNoneOrNil(5) {
		tt = 5
	}
	if e >= f {
		if t > e || t <= f || tt != 1 {
			for i := int64(0); i <= e-f; i++ {
				ls.GetI(1, f+i)
				ls.SetI(tt, t+i)
			}
		} else {
			for i := e - f; i >= 0; i-- {
				ls.GetI(1, f+i)
				ls.SetI(tt, t+i)
			}
		}
	}
	ls.PushValue(tt)
	return 1
}

// sort (list [, comp])
func tableSort(ls LuaState) int {
	n := int(tableLen(ls, 1))
	hasComp := !ls.IsNoneOrNil(2)

	items := make([]any, n)
	for i := 0; i < n; i++ {
		ls.GetI(1, int64(i+1))
		items[i] = ls.ToPointer(-1)
		ls.Pop(1)
	}

	sort.SliceStable(items, func(a, b int) bool {
		if hasComp {
			ls.PushValue(2)
			pushValue(ls, items[a])
			pushValue(ls, items[b])
			ls.Call(2, 1)
			less := ls.ToBoolean(-1)
			ls.Pop(1)
			return less
		}
		return luaLess(ls, items[a], items[b])
	})

	for i, v := range items {
		pushValue(ls, v)
		ls.SetI(1, int64(i+1))
	}
	return 0
}

func luaLess(ls LuaState, a, b any) bool {
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return x < y
		case float64:
			return float64(x) < y
		}
	case float64:
		switch y := b.(type) {
		case int64:
			return x < float64(y)
		case float64:
			return x < y
		}
	case string:
		if y, ok := b.(string); ok {
			return x < y
		}
	}
	ls.Error2("attempt to compare incompatible values in 'sort'")
	return false
}
