package state

import (
	"fmt"

	. "tlua/api"
	"tlua/utils"
)

func typeOf(val any) LuaType {
	switch val.(type) {
	case nil:
		return LUA_TNIL
	case bool:
		return LUA_TBOOLEAN
	case int64, float64:
		return LUA_TNUMBER
	case string:
		return LUA_TSTRING
	case *lkTable:
		return LUA_TTABLE
	case *closure:
		return LUA_TFUNCTION
	case *lkState:
		return LUA_TTHREAD
	case *lkUserData:
		return LUA_TUSERDATA
	default:
		panic(fmt.Sprintf("invalid type: %T<%v>", val, val))
	}
}

func convertToBoolean(val any) bool {
	switch x := val.(type) {
	case nil:
		return false
	case bool:
		return x
	default:
		return true
	}
}

// http://www.lua.org/manual/5.3/manual.html#3.4.3
func convertToFloat(val any) (float64, bool) {
	switch x := val.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case string:
		return utils.ParseFloat(x)
	default:
		return 0, false
	}
}

// http://www.lua.org/manual/5.3/manual.html#3.4.3
func convertToInteger(val any) (int64, bool) {
	switch x := val.(type) {
	case int64:
		return x, true
	case float64:
		return utils.FloatToInteger(x)
	case string:
		return _stringToInteger(x)
	default:
		return 0, false
	}
}

func _stringToInteger(s string) (int64, bool) {
	if i, ok := utils.ParseInteger(s); ok {
		return i, true
	}
	if f, ok := utils.ParseFloat(s); ok {
		return utils.FloatToInteger(f)
	}
	return 0, false
}

/* metatable */

// The registry keys "_MTSTRING" and "_MT<type tag>" hold the shared
// metatable for all values of that primitive type, the way real Lua keeps one metatable per non-table,
// non-userdata type rather than per-value.
func getMetatable(val any, ls *lkState) *lkTable {
	switch x := val.(type) {
	case *lkTable:
		return x.metatable
	case *lkUserData:
		return x.metatable
	case string:
		if mt := ls.registry.get("_MTSTRING"); mt != nil {
			return mt.(*lkTable)
		}
		return nil
	default:
		key := fmt.Sprintf("_MT%d", typeOf(val))
		if mt := ls.registry.get(key); mt != nil {
			return mt.(*lkTable)
		}
		return nil
	}
}

func setMetatable(val any, mt *lkTable, ls *lkState) {
	switch x := val.(type) {
	case *lkTable:
		x.metatable = mt
	case *lkUserData:
		x.metatable = mt
	case string:
		ls.registry.put("_MTSTRING", mt)
	default:
		key := fmt.Sprintf("_MT%d", typeOf(val))
		ls.registry.put(key, mt)
	}
}

func getMetafield(val any, fieldName string, ls *lkState) any {
	mt := getMetatable(val, ls)
	if mt == nil {
		return nil
	}
	return mt.get(fieldName)
}

func callMetamethod(a, b any, mmName string, ls *lkState) (any, bool) {
	var mm any
	if mm = getMetafield(a, mmName, ls); mm == nil {
		if mm = getMetafield(b, mmName, ls); mm == nil {
			return nil, false
		}
	}

	ls.stack.check(4)
	ls.stack.push(mm)
	ls.stack.push(a)
	ls.stack.push(b)
	ls.Call(2, 1)
	return ls.stack.pop(), true
}
