package stdlib

import (
	"fmt"
	"reflect"

	. "tlua/api"
)

func pushValue(ls LuaState, item any) {
	switch i := item.(type) {
	case string:
		ls.PushString(i)
	case int64:
		ls.PushInteger(i)
	case int:
		ls.PushInteger(int64(i))
	case float64:
		ls.PushNumber(i)
	case bool:
		ls.PushBoolean(i)
	case GoFunction:
		ls.PushGoFunction(i)
	case nil:
		ls.PushNil()
	default:
		v := reflect.ValueOf(i)
		switch v.Kind() {
		case reflect.Slice:
			items := make([]any, v.Len())
			for i := 0; i < v.Len(); i++ {
				items[i] = v.Index(i).Interface()
			}
			ls.CreateTable(len(items), 0)
			for i := range items {
				pushValue(ls, items[i])
				ls.SetI(-2, int64(i+1))
			}
			return
		case reflect.Map:
			keys := v.MapKeys()
			ls.CreateTable(0, len(keys)+1)
			for idx := range keys {
				key := &keys[idx]
				pushValue(ls, v.MapIndex(*key).Interface())
				ls.SetField(-2, (*key).String())
			}
			return
		}
		panic(fmt.Sprintf("unsupported type: %T", item))
	}
}

// getIntField reads an integer field off the table at the top of the
// stack, erroring unless it is absent and dft supplies a fallback.
func getIntField(ls LuaState, key string, dft int64) int {
	t := ls.GetField(-1, key)
	res, isNum := ls.ToIntegerX(-1)
	if !isNum {
		if t != LUA_TNIL {
			return ls.Error2("field '%s' is not an integer", key)
		} else if dft < 0 {
			return ls.Error2("field '%s' missing in date table", key)
		}
		res = dft
	}
	ls.Pop(1)
	return int(res)
}
