package stdlib

import (
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	. "tlua/api"
)

var osLib = map[string]GoFunction{
	"time":      osTime,
	"clock":     osClock,
	"date":      osDate,
	"difftime":  osDiffTime,
	"remove":    osRemove,
	"rename":    osRename,
	"tmpname":   osTmpName,
	"getenv":    osGetEnv,
	"execute":   osExecute,
	"exit":      osExit,
	"setlocale": osSetLocale,
}

var startTime = time.Now()

// lua-5.4/src/loslib.c#luaopen_os()
func OpenOSLib(ls LuaState) int {
	ls.NewLib(osLib)
	return 1
}

// os.time ([table])
func osTime(ls LuaState) int {
	if ls.IsNoneOrNil(1) {
		ls.PushInteger(time.Now().Unix())
		return 1
	}
	ls.CheckType(1, LUA_TTABLE)
	sec := getIntField(ls, "sec", 0)
	min := getIntField(ls, "min", 0)
	hour := getIntField(ls, "hour", 12)
	day := getIntField(ls, "day", -1)
	month := getIntField(ls, "month", -1)
	year := getIntField(ls, "year", -1)
	t := time.Date(year, time.Month(month), day, hour, min, sec, 0, time.Local).Unix()
	ls.PushInteger(t)
	return 1
}

// os.clock () — process CPU time is not observable portably from Go, so
// this reports wall-clock elapsed since the library was opened instead.
func osClock(ls LuaState) int {
	ls.PushNumber(time.Since(startTime).Seconds())
	return 1
}

// os.date ([format [, time]])
func osDate(ls LuaState) int {
	format := ls.OptString(1, "%c")
	var t time.Time
	if ls.IsInteger(2) {
		t = time.Unix(ls.ToInteger(2), 0)
	} else {
		t = time.Now()
	}

	if format != "" && format[0] == '!' {
		format = format[1:]
		t = t.In(time.UTC)
	} else {
		t = t.Local()
	}

	if format == "*t" || format == "!*t" {
		ls.CreateTable(0, 9)
		setDateField(ls, "sec", t.Second())
		setDateField(ls, "min", t.Minute())
		setDateField(ls, "hour", t.Hour())
		setDateField(ls, "day", t.Day())
		setDateField(ls, "month", int(t.Month()))
		setDateField(ls, "year", t.Year())
		setDateField(ls, "wday", int(t.Weekday())+1)
		setDateField(ls, "yday", t.YearDay())
		ls.PushBoolean(false)
		ls.SetField(-2, "isdst")
	} else {
		ls.PushString(strftime(format, t))
	}
	return 1
}

func setDateField(ls LuaState, key string, value int) {
	ls.PushInteger(int64(value))
	ls.SetField(-2, key)
}

// strftime implements the handful of C strftime directives os.date's
// default format ("%c" and friends) actually needs.
func strftime(format string, t time.Time) string {
	var b []byte
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			b = append(b, format[i])
			continue
		}
		i++
		switch format[i] {
		case 'c':
			b = append(b, t.Format("Mon Jan  2 15:04:05 2006")...)
		case 'Y':
			b = append(b, t.Format("2006")...)
		case 'y':
			b = append(b, t.Format("06")...)
		case 'm':
			b = append(b, t.Format("01")...)
		case 'd':
			b = append(b, t.Format("02")...)
		case 'H':
			b = append(b, t.Format("15")...)
		case 'M':
			b = append(b, t.Format("04")...)
		case 'S':
			b = append(b, t.Format("05")...)
		case 'x':
			b = append(b, t.Format("01/02/06")...)
		case 'X':
			b = append(b, t.Format("15:04:05")...)
		case 'A':
			b = append(b, t.Format("Monday")...)
		case 'a':
			b = append(b, t.Format("Mon")...)
		case 'B':
			b = append(b, t.Format("January")...)
		case 'b':
			b = append(b, t.Format("Jan")...)
		case '%':
			b = append(b, '%')
		default:
			b = append(b, '%', format[i])
		}
	}
	return string(b)
}

// os.difftime (t2, t1)
func osDiffTime(ls LuaState) int {
	t2 := ls.CheckNumber(1)
	t1 := ls.CheckNumber(2)
	ls.PushNumber(t2 - t1)
	return 1
}

// os.remove (filename)
func osRemove(ls LuaState) int {
	filename := ls.CheckString(1)
	if err := os.Remove(filename); err != nil {
		ls.PushNil()
		ls.PushString(err.Error())
		return 2
	}
	ls.PushBoolean(true)
	return 1
}

// os.rename (oldname, newname)
func osRename(ls LuaState) int {
	oldName := ls.CheckString(1)
	newName := ls.CheckString(2)
	if err := os.Rename(oldName, newName); err != nil {
		ls.PushNil()
		ls.PushString(err.Error())
		return 2
	}
	ls.PushBoolean(true)
	return 1
}

// os.tmpname () — names (but does not create) a file under the system
// temp directory, keyed by a uuid so concurrent scripts never collide.
func osTmpName(ls LuaState) int {
	ls.PushString(filepath.Join(os.TempDir(), "lua_"+uuid.NewString()))
	return 1
}

// os.getenv (varname)
func osGetEnv(ls LuaState) int {
	key := ls.CheckString(1)
	if env, ok := os.LookupEnv(key); ok {
		ls.PushString(env)
	} else {
		ls.PushNil()
	}
	return 1
}

// os.execute ([command])
func osExecute(ls LuaState) int {
	if ls.IsNoneOrNil(1) {
		ls.PushBoolean(true)
		return 1
	}
	command := ls.CheckString(1)
	cmd := exec.Command("sh", "-c", command)
	err := cmd.Run()
	if err == nil {
		ls.PushBoolean(true)
		ls.PushString("exit")
		ls.PushInteger(0)
		return 3
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		ls.PushNil()
		ls.PushString("exit")
		ls.PushInteger(int64(exitErr.ExitCode()))
		return 3
	}
	ls.PushNil()
	ls.PushString("exit")
	ls.PushInteger(-1)
	return 3
}

// os.exit ([code [, close]])
func osExit(ls LuaState) int {
	if ls.IsBoolean(1) {
		if ls.ToBoolean(1) {
			os.Exit(0)
		} else {
			os.Exit(1)
		}
	} else {
		code := ls.OptInteger(1, 0)
		os.Exit(int(code))
	}
	return 0
}

// os.setlocale ([locale [, category]]) — locales are not modeled, so this
// always reports "C" (the only locale every category behaves as).
func osSetLocale(ls LuaState) int {
	ls.PushString("C")
	return 1
}
