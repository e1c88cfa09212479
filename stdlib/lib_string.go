package stdlib

import (
	"strconv"
	"strings"

	. "tlua/api"
)

var strLib = map[string]GoFunction{
	"len":     strLen,
	"rep":     strRep,
	"reverse": strReverse,
	"lower":   strLower,
	"upper":   strUpper,
	"sub":     strSub,
	"byte":    strByte,
	"char":    strChar,
	"format":  strFormat,
	"find":    strFind,
	"match":   strMatch,
	"gmatch":  strGmatch,
	"gsub":    strGsub,
}

// lua-5.4/src/lstrlib.c#luaopen_string()
func OpenStringLib(ls LuaState) int {
	ls.NewLib(strLib)
	return 1
}

// string.len (s)
func strLen(ls LuaState) int {
	s := ls.CheckString(1)
	ls.PushInteger(int64(len(s)))
	return 1
}

// string.rep (s, n [, sep])
func strRep(ls LuaState) int {
	s := ls.CheckString(1)
	n := ls.CheckInteger(2)
	sep := ls.OptString(3, "")

	if n <= 0 {
		ls.PushString("")
	} else if n == 1 {
		ls.PushString(s)
	} else {
		a := make([]string, n)
		for i := 0; i < int(n); i++ {
			a[i] = s
		}
		ls.PushString(strings.Join(a, sep))
	}

	return 1
}

// string.reverse (s)
func strReverse(ls LuaState) int {
	s := ls.CheckString(1)
	n := len(s)
	a := make([]byte, n)
	for i := 0; i < n; i++ {
		a[i] = s[n-1-i]
	}
	ls.PushString(string(a))
	return 1
}

// string.lower (s)
func strLower(ls LuaState) int {
	s := ls.CheckString(1)
	ls.PushString(strings.ToLower(s))
	return 1
}

// string.upper (s)
func strUpper(ls LuaState) int {
	s := ls.CheckString(1)
	ls.PushString(strings.ToUpper(s))
	return 1
}

// string.sub (s, i [, j])
func strSub(ls LuaState) int {
	s := ls.CheckString(1)
	sLen := len(s)
	i := posRelat(ls.CheckInteger(2), sLen)
	j := posRelat(ls.OptInteger(3, -1), sLen)

	if i < 1 {
		i = 1
	}
	if j > sLen {
		j = sLen
	}

	if i <= j {
		ls.PushString(s[i-1 : j])
	} else {
		ls.PushString("")
	}

	return 1
}

// string.byte (s [, i [, j]])
func strByte(ls LuaState) int {
	s := ls.CheckString(1)
	sLen := len(s)
	i := posRelat(ls.OptInteger(2, 1), sLen)
	j := posRelat(ls.OptInteger(3, int64(i)), sLen)

	if i < 1 {
		i = 1
	}
	if j > sLen {
		j = sLen
	}
	if i > j {
		return 0
	}

	n := j - i + 1
	ls.CheckStack2(n, "string slice too long")
	for k := 0; k < n; k++ {
		ls.PushInteger(int64(s[i+k-1]))
	}
	return n
}

// string.char (···)
func strChar(ls LuaState) int {
	nArgs := ls.GetTop()
	s := make([]byte, nArgs)
	for i := 1; i <= nArgs; i++ {
		c := ls.CheckInteger(i)
		ls.ArgCheck(int64(byte(c)) == c, i, "value out of range")
		s[i-1] = byte(c)
	}
	ls.PushString(string(s))
	return 1
}

// string.find (s, pattern [, init [, plain]])
func strFind(ls LuaState) int {
	return strFindAux(ls, true)
}

// string.match (s, pattern [, init])
func strMatch(ls LuaState) int {
	return strFindAux(ls, false)
}

func strFindAux(ls LuaState, find bool) int {
	s := ls.CheckString(1)
	pattern := ls.CheckString(2)
	sLen := len(s)

	init := posRelat(ls.OptInteger(3, 1), sLen)
	if init < 1 {
		init = 1
	} else if init > sLen+1 {
		ls.PushNil()
		return 1
	}

	plain := ls.OptBool(4, false)
	if find && (plain || !hasPatternSpecials(pattern)) {
		idx := strings.Index(s[init-1:], pattern)
		if idx < 0 {
			ls.PushNil()
			return 1
		}
		ls.PushInteger(int64(init + idx))
		ls.PushInteger(int64(init + idx + len(pattern) - 1))
		return 2
	}

	anchor := false
	pp := 0
	if len(pattern) > 0 && pattern[0] == '^' {
		anchor = true
		pp = 1
	}

	s1 := init - 1
	ms := &matchState{src: s, pattern: pattern}
	for {
		ms.level = 0
		e := ms.match(s1, pp)
		if e != -1 {
			if find {
				ls.PushInteger(int64(s1 + 1))
				ls.PushInteger(int64(e))
				return 2 + pushCapturesOnto(ls, ms, -1, -1)
			}
			pushCapturesResult(ls, ms, s1, e)
			return ms.level
		}
		s1++
		if s1 > sLen || anchor {
			break
		}
	}
	ls.PushNil()
	return 1
}

func hasPatternSpecials(p string) bool {
	return strings.ContainsAny(p, "^$*+?.([%-")
}

// pushCapturesOnto pushes only the extra captures (used after find already
// pushed the whole-match start/end), returning how many it pushed.
func pushCapturesOnto(ls LuaState, ms *matchState, s, e int) int {
	if ms.level == 0 {
		return 0
	}
	caps := ms.pushCaptures(s, e)
	for _, c := range caps {
		pushValue(ls, c)
	}
	return len(caps)
}

func pushCapturesResult(ls LuaState, ms *matchState, s, e int) {
	caps := ms.pushCaptures(s, e)
	for _, c := range caps {
		pushValue(ls, c)
	}
}

// string.gmatch (s, pattern)
func strGmatch(ls LuaState) int {
	s := ls.CheckString(1)
	pattern := ls.CheckString(2)
	ls.PushString(s)
	ls.PushString(pattern)
	ls.PushInteger(0)
	ls.PushGoClosure(gmatchAux, 3)
	return 1
}

func gmatchAux(ls LuaState) int {
	s := ls.ToString(UpvalueIndex(1))
	pattern := ls.ToString(UpvalueIndex(2))
	pos := int(ls.ToInteger(UpvalueIndex(3)))

	ms := &matchState{src: s, pattern: pattern}
	for s1 := pos; s1 <= len(s); s1++ {
		ms.level = 0
		e := ms.match(s1, 0)
		if e != -1 {
			newPos := e
			if e == s1 {
				newPos++
			}
			ls.PushInteger(int64(newPos))
			ls.Replace(UpvalueIndex(3))
			pushCapturesResult(ls, ms, s1, e)
			return ms.level
		}
	}
	return 0
}

// string.gsub (s, pattern, repl [, n])
func strGsub(ls LuaState) int {
	s := ls.CheckString(1)
	pattern := ls.CheckString(2)
	ls.CheckAny(3)
	maxN := int(ls.OptInteger(4, int64(len(s)+1)))

	anchor := false
	pp := 0
	if len(pattern) > 0 && pattern[0] == '^' {
		anchor = true
		pp = 1
	}

	var b strings.Builder
	ms := &matchState{src: s, pattern: pattern}
	count := 0
	s1 := 0
	for count < maxN {
		ms.level = 0
		e := ms.match(s1, pp)
		if e != -1 {
			count++
			applyGsubRepl(ls, ms, s1, e, &b)
		}
		if e != -1 && e > s1 {
			s1 = e
		} else if s1 < len(s) {
			b.WriteByte(s[s1])
			s1++
		} else {
			break
		}
		if anchor {
			break
		}
	}
	if s1 < len(s) {
		b.WriteString(s[s1:])
	}

	ls.PushString(b.String())
	ls.PushInteger(int64(count))
	return 2
}

func applyGsubRepl(ls LuaState, ms *matchState, s, e int, b *strings.Builder) {
	whole := ms.src[s:e]
	switch ls.Type(3) {
	case LUA_TSTRING, LUA_TNUMBER:
		repl := ls.ToString(3)
		for i := 0; i < len(repl); i++ {
			if repl[i] == '%' && i+1 < len(repl) {
				i++
				c := repl[i]
				if c == '%' {
					b.WriteByte('%')
				} else if c == '0' {
					b.WriteString(whole)
				} else if c >= '1' && c <= '9' {
					caps := ms.pushCaptures(s, e)
					idx := int(c - '1')
					if idx < len(caps) {
						b.WriteString(toGsubString(caps[idx]))
					}
				} else {
					panic("invalid use of '%' in replacement string")
				}
			} else {
				b.WriteByte(repl[i])
			}
		}
	case LUA_TTABLE:
		caps := ms.pushCaptures(s, e)
		ls.PushValue(3)
		pushValue(ls, caps[0])
		ls.GetTable(-2)
		writeGsubValue(ls, whole, b)
	case LUA_TFUNCTION:
		caps := ms.pushCaptures(s, e)
		ls.PushValue(3)
		for _, c := range caps {
			pushValue(ls, c)
		}
		ls.Call(len(caps), 1)
		writeGsubValue(ls, whole, b)
	default:
		panic("bad argument #3 to 'gsub' (string/function/table expected)")
	}
}

// writeGsubValue consumes the stack top (a table/function lookup result):
// false or nil keeps the original match text, a string/number replaces it.
func writeGsubValue(ls LuaState, whole string, b *strings.Builder) {
	if ls.IsNil(-1) || (ls.IsBoolean(-1) && !ls.ToBoolean(-1)) {
		b.WriteString(whole)
	} else if ls.IsString(-1) || ls.IsNumber(-1) {
		b.WriteString(ls.ToString(-1))
	} else {
		panic("invalid replacement value")
	}
	ls.Pop(1)
}

func toGsubString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return ""
	}
}
