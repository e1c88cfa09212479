package stdlib

import (
	jsoniter "github.com/json-iterator/go"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tidwall/gjson"

	. "tlua/api"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var jsonLib = map[string]GoFunction{
	"encode": jsonEncode,
	"decode": jsonDecode,
	"get":    jsonGet,
}

// gjsonCache memoizes the parsed gjson.Result for a source document, so
// repeated json.get calls against the same payload skip re-parsing it.
var gjsonCache, _ = lru.New[string, gjson.Result](16)

func OpenJsonLib(ls LuaState) int {
	ls.NewLib(jsonLib)
	return 1
}

// json.encode (value)
func jsonEncode(ls LuaState) int {
	ls.CheckAny(1)
	v := luaToGo(ls, 1)
	data, err := json.Marshal(v)
	if err != nil {
		ls.PushNil()
		ls.PushString(err.Error())
		return 2
	}
	ls.PushString(string(data))
	return 1
}

// json.decode (str)
func jsonDecode(ls LuaState) int {
	s := ls.CheckString(1)
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		ls.PushNil()
		ls.PushString(err.Error())
		return 2
	}
	goToLua(ls, v)
	return 1
}

// json.get (source, path) — gjson path query, cheaper than a full decode
// when only one field of a large document is needed.
func jsonGet(ls LuaState) int {
	source := ls.CheckString(1)
	path := ls.CheckString(2)

	result, ok := gjsonCache.Get(source)
	if !ok {
		result = gjson.Parse(source)
		gjsonCache.Add(source, result)
	}

	field := result.Get(path)
	if !field.Exists() {
		ls.PushBoolean(false)
		ls.PushString("")
		return 2
	}
	ls.PushBoolean(true)
	ls.PushString(field.String())
	return 2
}

// luaToGo converts the Lua value at idx into a Go value json-iterator can
// marshal. Tables with only positive integer keys 1..n become []any;
// anything else becomes map[string]any.
func luaToGo(ls LuaState, idx int) any {
	switch ls.Type(idx) {
	case LUA_TNIL:
		return nil
	case LUA_TBOOLEAN:
		return ls.ToBoolean(idx)
	case LUA_TNUMBER:
		if ls.IsInteger(idx) {
			return ls.ToInteger(idx)
		}
		return ls.ToNumber(idx)
	case LUA_TSTRING:
		return ls.ToString(idx)
	case LUA_TTABLE:
		return luaTableToGo(ls, idx)
	default:
		return ls.ToString2(idx)
	}
}

func luaTableToGo(ls LuaState, idx int) any {
	idx = ls.AbsIndex(idx)
	n := ls.RawLen(idx)

	if n > 0 && isArrayTable(ls, idx, n) {
		arr := make([]any, n)
		for i := int64(1); i <= n; i++ {
			ls.RawGetI(idx, i)
			arr[i-1] = luaToGo(ls, -1)
			ls.Pop(1)
		}
		return arr
	}

	obj := map[string]any{}
	ls.PushNil()
	for ls.Next(idx) {
		key := ls.ToString2(-2)
		obj[key] = luaToGo(ls, -1)
		ls.Pop(1) // keep key for Next
	}
	return obj
}

// isArrayTable reports whether every integer key 1..n maps to a non-nil
// value and no other keys exist, i.e. the table round-trips as a JSON array.
func isArrayTable(ls LuaState, idx int, n int64) bool {
	count := int64(0)
	ls.PushNil()
	for ls.Next(idx) {
		ls.Pop(1)
		count++
	}
	return count == n
}

// goToLua pushes a decoded JSON value onto the stack as its Lua
// equivalent: objects become tables keyed by string, arrays become
// 1-based integer-keyed tables.
func goToLua(ls LuaState, v any) {
	switch x := v.(type) {
	case nil:
		ls.PushNil()
	case bool:
		ls.PushBoolean(x)
	case float64:
		if x == float64(int64(x)) {
			ls.PushInteger(int64(x))
		} else {
			ls.PushNumber(x)
		}
	case string:
		ls.PushString(x)
	case []any:
		ls.CreateTable(len(x), 0)
		for i, elem := range x {
			goToLua(ls, elem)
			ls.RawSetI(-2, int64(i+1))
		}
	case map[string]any:
		ls.CreateTable(0, len(x))
		for k, elem := range x {
			goToLua(ls, elem)
			ls.SetField(-2, k)
		}
	default:
		ls.PushNil()
	}
}
