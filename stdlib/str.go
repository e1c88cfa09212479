package stdlib

import (
	"fmt"
	"regexp"
	"strings"

	. "tlua/api"
)

// tag = %[flags][width][.precision]specifier
var tagPattern = regexp.MustCompile(`%[ #+-0]?[0-9]*(\.[0-9]+)?[cdeEfgGioqsuxX%]`)

func parseFmtStr(format string) []string {
	if format == "" || strings.IndexByte(format, '%') < 0 {
		return []string{format}
	}

	parsed := make([]string, 0, len(format)/2)
	for {
		if format == "" {
			break
		}

		loc := tagPattern.FindStringIndex(format)
		if loc == nil {
			parsed = append(parsed, format)
			break
		}

		head := format[:loc[0]]
		tag := format[loc[0]:loc[1]]
		tail := format[loc[1]:]

		if head != "" {
			parsed = append(parsed, head)
		}
		parsed = append(parsed, tag)
		format = tail
	}
	return parsed
}

// string.format (formatstring, ···)
func strFormat(ls LuaState) int {
	fmtStr := ls.CheckString(1)
	if len(fmtStr) <= 1 || strings.IndexByte(fmtStr, '%') < 0 {
		ls.PushString(fmtStr)
		return 1
	}

	argIdx := 1
	arr := parseFmtStr(fmtStr)
	for i := range arr {
		if arr[i][0] == '%' {
			if arr[i] == "%%" {
				arr[i] = "%"
			} else {
				argIdx += 1
				arr[i] = fmtArg(arr[i], ls, argIdx)
			}
		}
	}

	ls.PushString(strings.Join(arr, ""))
	return 1
}

func fmtArg(tag string, ls LuaState, argIdx int) string {
	switch tag[len(tag)-1] { // specifier
	case 'c': // character
		return string([]byte{byte(ls.ToInteger(argIdx))})
	case 'i':
		tag = tag[:len(tag)-1] + "d" // %i -> %d
		return fmt.Sprintf(tag, ls.ToInteger(argIdx))
	case 'd', 'o': // integer, octal
		return fmt.Sprintf(tag, ls.ToInteger(argIdx))
	case 'u': // unsigned integer
		tag = tag[:len(tag)-1] + "d" // %u -> %d
		return fmt.Sprintf(tag, uint(ls.ToInteger(argIdx)))
	case 'x', 'X': // hex integer
		return fmt.Sprintf(tag, uint(ls.ToInteger(argIdx)))
	case 'e', 'E', 'g', 'G', 'f': // float
		return fmt.Sprintf(tag, ls.ToNumber(argIdx))
	case 'q': // quoted string, Lua-readable
		return quoteString(ls.CheckString(argIdx))
	case 's': // string
		return fmt.Sprintf(tag, ls.ToString2(argIdx))
	default:
		panic("invalid conversion '" + tag + "' to 'format'")
	}
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
