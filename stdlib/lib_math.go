package stdlib

import (
	"math"
	"math/rand"
	"time"

	. "tlua/api"
	"tlua/utils"
)

var mathLib = map[string]GoFunction{
	"max":        mathMax,
	"min":        mathMin,
	"exp":        mathExp,
	"log":        mathLog,
	"deg":        mathDeg,
	"rad":        mathRad,
	"sin":        mathSin,
	"cos":        mathCos,
	"tan":        mathTan,
	"asin":       mathAsin,
	"acos":       mathAcos,
	"atan":       mathAtan,
	"ceil":       mathCeil,
	"floor":      mathFloor,
	"fmod":       mathFmod,
	"modf":       mathModf,
	"abs":        mathAbs,
	"sqrt":       mathSqrt,
	"ult":        mathUlt,
	"type":       mathType,
	"tointeger":  mathToInt,
	"random":     mathRandom,
	"randomseed": mathRandomSeed,
}

// lua-5.4/src/lmathlib.c#luaopen_math() — math.random is seeded from wall
// clock at library open, same as the teacher's randRandom did.
func OpenMathLib(ls LuaState) int {
	rand.Seed(time.Now().UnixNano())
	ls.NewLib(mathLib)
	ls.PushNumber(math.Pi)
	ls.SetField(-2, "pi")
	ls.PushNumber(math.Inf(1))
	ls.SetField(-2, "huge")
	ls.PushInteger(math.MaxInt64)
	ls.SetField(-2, "maxinteger")
	ls.PushInteger(math.MinInt64)
	ls.SetField(-2, "mininteger")
	return 1
}

// math.max (x, ···)
func mathMax(ls LuaState) int {
	n := ls.GetTop()
	imax := 1
	ls.ArgCheck(n >= 1, 1, "value expected")
	for i := 2; i <= n; i++ {
		if ls.Compare(imax, i, LUA_OPLT) {
			imax = i
		}
	}
	ls.PushValue(imax)
	return 1
}

// math.min (x, ···)
func mathMin(ls LuaState) int {
	n := ls.GetTop()
	imin := 1
	ls.ArgCheck(n >= 1, 1, "value expected")
	for i := 2; i <= n; i++ {
		if ls.Compare(i, imin, LUA_OPLT) {
			imin = i
		}
	}
	ls.PushValue(imin)
	return 1
}

func mathExp(ls LuaState) int { ls.PushNumber(math.Exp(ls.CheckNumber(1))); return 1 }

// math.log (x [, base])
func mathLog(ls LuaState) int {
	x := ls.CheckNumber(1)
	var res float64
	if ls.IsNoneOrNil(2) {
		res = math.Log(x)
	} else {
		base := ls.ToNumber(2)
		if base == 2 {
			res = math.Log2(x)
		} else if base == 10 {
			res = math.Log10(x)
		} else {
			res = math.Log(x) / math.Log(base)
		}
	}
	ls.PushNumber(res)
	return 1
}

func mathDeg(ls LuaState) int { ls.PushNumber(ls.CheckNumber(1) * 180 / math.Pi); return 1 }
func mathRad(ls LuaState) int { ls.PushNumber(ls.CheckNumber(1) * math.Pi / 180); return 1 }
func mathSin(ls LuaState) int { ls.PushNumber(math.Sin(ls.CheckNumber(1))); return 1 }
func mathCos(ls LuaState) int { ls.PushNumber(math.Cos(ls.CheckNumber(1))); return 1 }
func mathTan(ls LuaState) int { ls.PushNumber(math.Tan(ls.CheckNumber(1))); return 1 }
func mathAsin(ls LuaState) int { ls.PushNumber(math.Asin(ls.CheckNumber(1))); return 1 }
func mathAcos(ls LuaState) int { ls.PushNumber(math.Acos(ls.CheckNumber(1))); return 1 }

// math.atan (y [, x])
func mathAtan(ls LuaState) int {
	y := ls.CheckNumber(1)
	x := ls.OptNumber(2, 1.0)
	ls.PushNumber(math.Atan2(y, x))
	return 1
}

// math.ceil (x)
func mathCeil(ls LuaState) int {
	if ls.IsInteger(1) {
		ls.SetTop(1)
	} else {
		pushNumInt(ls, math.Ceil(ls.CheckNumber(1)))
	}
	return 1
}

// math.floor (x)
func mathFloor(ls LuaState) int {
	if ls.IsInteger(1) {
		ls.SetTop(1)
	} else {
		pushNumInt(ls, math.Floor(ls.CheckNumber(1)))
	}
	return 1
}

// math.fmod (x, y)
func mathFmod(ls LuaState) int {
	if ls.IsInteger(1) && ls.IsInteger(2) {
		d := ls.ToInteger(2)
		if uint64(d)+1 <= 1 {
			ls.ArgCheck(d != 0, 2, "zero")
			ls.PushInteger(0)
		} else {
			ls.PushInteger(ls.ToInteger(1) % d)
		}
	} else {
		ls.PushNumber(utils.FMod(ls.CheckNumber(1), ls.CheckNumber(2)))
	}
	return 1
}

// math.modf (x)
func mathModf(ls LuaState) int {
	if ls.IsInteger(1) {
		ls.SetTop(1)
		ls.PushNumber(0)
	} else {
		x := ls.CheckNumber(1)
		i, f := math.Modf(x)
		pushNumInt(ls, i)
		if math.IsInf(x, 0) {
			ls.PushNumber(0)
		} else {
			ls.PushNumber(f)
		}
	}
	return 2
}

// math.abs (x)
func mathAbs(ls LuaState) int {
	if ls.IsInteger(1) {
		x := ls.ToInteger(1)
		if x < 0 {
			x = -x
		}
		ls.PushInteger(x)
	} else {
		ls.PushNumber(math.Abs(ls.CheckNumber(1)))
	}
	return 1
}

func mathSqrt(ls LuaState) int { ls.PushNumber(math.Sqrt(ls.CheckNumber(1))); return 1 }

// math.ult (m, n)
func mathUlt(ls LuaState) int {
	m := ls.CheckInteger(1)
	n := ls.CheckInteger(2)
	ls.PushBoolean(uint64(m) < uint64(n))
	return 1
}

// math.type (x)
func mathType(ls LuaState) int {
	if ls.Type(1) == LUA_TNUMBER {
		if ls.IsInteger(1) {
			ls.PushString("integer")
		} else {
			ls.PushString("float")
		}
	} else {
		ls.CheckAny(1)
		ls.PushNil()
	}
	return 1
}

// math.tointeger (x)
func mathToInt(ls LuaState) int {
	if n, ok := ls.ToIntegerX(1); ok {
		ls.PushInteger(n)
	} else {
		ls.PushNil()
	}
	return 1
}

func pushNumInt(ls LuaState, d float64) {
	if i, ok := utils.FloatToInteger(d); ok {
		ls.PushInteger(i)
	} else {
		ls.PushNumber(d)
	}
}

// math.random ([m [, n]])
func mathRandom(ls LuaState) int {
	var low, up int64
	switch ls.GetTop() {
	case 0:
		ls.PushNumber(rand.Float64())
		return 1
	case 1:
		low = 1
		up = ls.CheckInteger(1)
	case 2:
		low = ls.CheckInteger(1)
		up = ls.CheckInteger(2)
	default:
		return ls.Error2("wrong number of arguments")
	}
	ls.ArgCheck(low <= up, 1, "interval is empty")
	ls.ArgCheck(low >= 0 || up <= math.MaxInt64+low, 1, "interval too large")
	if up-low == math.MaxInt64 {
		ls.PushInteger(low + rand.Int63())
	} else {
		ls.PushInteger(low + rand.Int63n(up-low+1))
	}
	return 1
}

// math.randomseed ([x])
func mathRandomSeed(ls LuaState) int {
	if ls.IsNoneOrNil(1) {
		rand.Seed(time.Now().UnixNano())
	} else {
		rand.Seed(int64(ls.CheckNumber(1)))
	}
	return 0
}
