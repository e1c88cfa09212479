package stdlib

import (
	"strings"
	"unicode/utf8"

	. "tlua/api"
)

var utf8Funcs = map[string]GoFunction{
	"char":      utf8Char,
	"codepoint": utf8Codepoint,
	"len":       utf8Len,
	"offset":    utf8Offset,
	"codes":     utf8Codes,
}

const utf8CharPattern = "[\x00-\x7F\xC2-\xFD][\x80-\xBF]*"

// lua-5.4/src/lutf8lib.c#luaopen_utf8()
func OpenUTF8Lib(ls LuaState) int {
	ls.NewLib(utf8Funcs)
	ls.PushString(utf8CharPattern)
	ls.SetField(-2, "charpattern")
	return 1
}

// utf8.char (···)
func utf8Char(ls LuaState) int {
	n := ls.GetTop()
	var b strings.Builder
	for i := 1; i <= n; i++ {
		b.WriteRune(rune(ls.CheckInteger(i)))
	}
	ls.PushString(b.String())
	return 1
}

// utf8.len (s [, i [, j]])
func utf8Len(ls LuaState) int {
	s := ls.CheckString(1)
	i := posRelat(ls.OptInteger(2, 1), len(s))
	j := posRelat(ls.OptInteger(3, -1), len(s))
	if i < 1 {
		i = 1
	}
	if j > len(s) {
		j = len(s)
	}
	if i > j+1 {
		ls.PushInteger(0)
		return 1
	}

	sub := s[i-1 : j]
	count := 0
	for idx := 0; idx < len(sub); {
		r, size := utf8.DecodeRuneInString(sub[idx:])
		if r == utf8.RuneError && size <= 1 {
			ls.PushNil()
			ls.PushInteger(int64(i + idx))
			return 2
		}
		idx += size
		count++
	}
	ls.PushInteger(int64(count))
	return 1
}

// utf8.codepoint (s [, i [, j]])
func utf8Codepoint(ls LuaState) int {
	s := ls.CheckString(1)
	i := posRelat(ls.OptInteger(2, 1), len(s))
	j := posRelat(ls.OptInteger(3, int64(i)), len(s))
	ls.ArgCheck(i >= 1, 2, "out of bounds")
	ls.ArgCheck(j <= len(s), 3, "out of bounds")

	results := 0
	for idx := i - 1; idx < j; {
		r, size := utf8.DecodeRuneInString(s[idx:])
		if r == utf8.RuneError && size <= 1 {
			ls.Error2("invalid UTF-8 code")
		}
		ls.PushInteger(int64(r))
		results++
		idx += size
	}
	return results
}

// utf8.offset (s, n [, i])
func utf8Offset(ls LuaState) int {
	s := ls.CheckString(1)
	n := ls.CheckInteger(2)
	var dflt int64 = 1
	if n < 0 {
		dflt = int64(len(s) + 1)
	}
	i := posRelat(ls.OptInteger(3, dflt), len(s))
	ls.ArgCheck(i >= 1 && i <= len(s)+1, 3, "position out of bounds")

	pos := i - 1
	switch {
	case n == 0:
		for pos > 0 && isCont(s, pos) {
			pos--
		}
	case n > 0:
		if pos < len(s) && isCont(s, pos) {
			ls.Error2("initial position is a continuation byte")
		}
		n--
		for n > 0 && pos < len(s) {
			pos++
			for pos < len(s) && isCont(s, pos) {
				pos++
			}
			n--
		}
		if n > 0 {
			ls.PushNil()
			return 1
		}
	default:
		for n < 0 && pos > 0 {
			pos--
			for pos > 0 && isCont(s, pos) {
				pos--
			}
			n++
		}
		if n < 0 {
			ls.PushNil()
			return 1
		}
	}
	ls.PushInteger(int64(pos + 1))
	return 1
}

func isCont(s string, pos int) bool {
	return pos < len(s) && s[pos]&0xC0 == 0x80
}

// utf8.codes (s) — iterator returning (position, codepoint) pairs.
func utf8Codes(ls LuaState) int {
	ls.CheckString(1)
	ls.PushGoFunction(utf8CodesAux)
	ls.PushValue(1)
	ls.PushInteger(0)
	return 3
}

func utf8CodesAux(ls LuaState) int {
	s := ls.CheckString(1)
	pos := int(ls.CheckInteger(2))
	if pos > 0 {
		_, size := utf8.DecodeRuneInString(s[pos-1:])
		pos += size
	} else {
		pos = 1
	}
	if pos > len(s) {
		return 0
	}
	r, size := utf8.DecodeRuneInString(s[pos-1:])
	if r == utf8.RuneError && size <= 1 {
		ls.Error2("invalid UTF-8 code")
	}
	ls.PushInteger(int64(pos))
	ls.PushInteger(int64(r))
	return 2
}
