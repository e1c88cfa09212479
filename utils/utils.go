package utils

import (
	"crypto/md5"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

func Md5(data []byte) string {
	return fmt.Sprintf("%x", md5.Sum(data))
}

func Exist(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// ParseInteger parses a Lua numeral as an integer, accepting the same
// decimal and 0x-hex forms the lexer does. Hex literals wrap on
// overflow per §3.1 instead of falling back to float.
func ParseInteger(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	neg := false
	body := s
	if body[0] == '+' || body[0] == '-' {
		neg = body[0] == '-'
		body = body[1:]
	}

	if len(body) > 1 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		var n uint64
		hex := body[2:]
		if hex == "" {
			return 0, false
		}
		for _, c := range hex {
			d, ok := hexDigit(byte(c))
			if !ok {
				return 0, false
			}
			n = n*16 + uint64(d)
		}
		i := int64(n)
		if neg {
			i = -i
		}
		return i, true
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

// ParseFloat parses a Lua numeral as a float, accepting decimal and
// 0x-hex-float forms (§3.1).
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FloatToInteger converts f to an integer if it has no fractional part
// and fits in an int64, per §3.1's float-to-integer coercion rule.
func FloatToInteger(f float64) (int64, bool) {
	if math.Floor(f) != f || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= -math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// FloatToString renders a float the way real Lua's LUAI_NUMFFORMAT
// ("%.14g") does, appending ".0" when the result would otherwise look
// like an integer (no '.', 'e', "inf" or "nan"), so tostring(1.0) reads
// "1.0" and not "1".
func FloatToString(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', 14, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// IFloorDiv is integer floor division (§3.4.2): rounds toward negative
// infinity, unlike Go's truncating '/'.
func IFloorDiv(a, b int64) int64 {
	if a > 0 && b > 0 || a < 0 && b < 0 || a%b == 0 {
		return a / b
	}
	return a/b - 1
}

// FFloorDiv is float floor division.
func FFloorDiv(a, b float64) float64 {
	return math.Floor(a / b)
}

// IMod is the integer modulo of §3.4.2: a - floor(a/b)*b, always taking
// the sign of b, unlike Go's '%'.
func IMod(a, b int64) int64 {
	return a - IFloorDiv(a, b)*b
}

// FMod is the float modulo counterpart of IMod.
func FMod(a, b float64) float64 {
	if math.IsInf(b, 0) && !math.IsInf(a, 0) {
		if (a >= 0) == (b > 0) {
			return a
		}
		return b
	}
	m := math.Mod(a, b)
	if m*b < 0 {
		m += b
	}
	return m
}

// ShiftLeft implements Lua's '<<' (§3.4.3): a negative shift count shifts
// the other way, and counts >= 64 produce 0.
func ShiftLeft(a, n int64) int64 {
	if n <= -64 || n >= 64 {
		return 0
	}
	if n >= 0 {
		return int64(uint64(a) << uint(n))
	}
	return ShiftRight(a, -n)
}

// ShiftRight implements Lua's '>>': logical (unsigned), not arithmetic.
func ShiftRight(a, n int64) int64 {
	if n <= -64 || n >= 64 {
		return 0
	}
	if n >= 0 {
		return int64(uint64(a) >> uint(n))
	}
	return ShiftLeft(a, -n)
}
