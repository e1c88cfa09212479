package stdlib

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	. "tlua/api"
)

// fileHandle is the Go value a file-handle userdata wraps.
type fileHandle struct {
	f      *os.File
	r      *bufio.Reader
	closed bool
}

var ioLib = map[string]GoFunction{
	"open":  ioOpen,
	"close": ioClose,
	"read":  ioRead,
	"write": ioWrite,
	"lines": ioLines,
}

var fileMethods = map[string]GoFunction{
	"read":  fileReadMethod,
	"write": fileWriteMethod,
	"close": fileCloseMethod,
	"lines": fileLinesMethod,
	"flush": fileFlushMethod,
}

const ioFileMetaKey = "_IOFH"

var defaultOutput *fileHandle
var defaultInput *fileHandle

// lua-5.4/src/liolib.c#luaopen_io()
func OpenIOLib(ls LuaState) int {
	ls.NewLib(ioLib)

	ls.NewTable()
	ls.PushValue(-1)
	ls.SetField(-2, "__index")
	ls.SetFuncs(fileMethods, 0)
	ls.SetField(LUA_REGISTRYINDEX, ioFileMetaKey)

	defaultOutput = &fileHandle{f: os.Stdout}
	defaultInput = &fileHandle{f: os.Stdin, r: bufio.NewReader(os.Stdin)}

	pushFile(ls, defaultOutput)
	ls.SetField(-2, "stdout")
	pushFile(ls, defaultInput)
	ls.SetField(-2, "stdin")
	pushFile(ls, &fileHandle{f: os.Stderr})
	ls.SetField(-2, "stderr")

	return 1
}

func pushFile(ls LuaState, fh *fileHandle) {
	ls.PushUserData(fh)
	ls.GetField(LUA_REGISTRYINDEX, ioFileMetaKey)
	ls.SetMetatable(-2)
}

func checkFile(ls LuaState, idx int) *fileHandle {
	ls.ArgCheck(ls.IsUserData(idx), idx, "file expected")
	fh, ok := ls.ToUserData(idx).(*fileHandle)
	ls.ArgCheck(ok, idx, "file expected")
	return fh
}

// io.open (filename [, mode])
func ioOpen(ls LuaState) int {
	filename := ls.CheckString(1)
	mode := ls.OptString(2, "r")

	var flag int
	switch strings.TrimSuffix(mode, "b") {
	case "r":
		flag = os.O_RDONLY
	case "w":
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case "a":
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case "r+":
		flag = os.O_RDWR
	case "w+":
		flag = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	case "a+":
		flag = os.O_RDWR | os.O_CREATE | os.O_APPEND
	default:
		return ls.Error2("invalid mode '%s'", mode)
	}

	f, err := os.OpenFile(filename, flag, 0644)
	if err != nil {
		ls.PushNil()
		ls.PushString(err.Error())
		return 2
	}
	pushFile(ls, &fileHandle{f: f, r: bufio.NewReader(f)})
	return 1
}

// io.close ([file])
func ioClose(ls LuaState) int {
	fh := defaultOutput
	if !ls.IsNoneOrNil(1) {
		fh = checkFile(ls, 1)
	}
	return closeFile(ls, fh)
}

func closeFile(ls LuaState, fh *fileHandle) int {
	if fh.closed {
		ls.PushBoolean(true)
		return 1
	}
	fh.closed = true
	if err := fh.f.Close(); err != nil {
		ls.PushNil()
		ls.PushString(err.Error())
		return 2
	}
	ls.PushBoolean(true)
	return 1
}

// io.read (···) — reads from the default input handle.
func ioRead(ls LuaState) int {
	return readFormats(ls, defaultInput, 1)
}

// io.write (···) — writes to the default output handle.
func ioWrite(ls LuaState) int {
	writeArgs(ls, defaultOutput, 1)
	pushFile(ls, defaultOutput)
	return 1
}

// io.lines ([filename, ···])
func ioLines(ls LuaState) int {
	if ls.IsNoneOrNil(1) {
		return makeLinesIterator(ls, defaultInput, false)
	}
	filename := ls.CheckString(1)
	f, err := os.Open(filename)
	if err != nil {
		return ls.Error2("cannot open '%s'", filename)
	}
	fh := &fileHandle{f: f, r: bufio.NewReader(f)}
	return makeLinesIterator(ls, fh, true)
}

func fileReadMethod(ls LuaState) int {
	fh := checkFile(ls, 1)
	return readFormats(ls, fh, 2)
}

func fileWriteMethod(ls LuaState) int {
	fh := checkFile(ls, 1)
	writeArgs(ls, fh, 2)
	ls.PushValue(1)
	return 1
}

func fileCloseMethod(ls LuaState) int {
	fh := checkFile(ls, 1)
	return closeFile(ls, fh)
}

func fileFlushMethod(ls LuaState) int {
	fh := checkFile(ls, 1)
	fh.f.Sync()
	ls.PushValue(1)
	return 1
}

func fileLinesMethod(ls LuaState) int {
	fh := checkFile(ls, 1)
	return makeLinesIterator(ls, fh, false)
}

// readFormats implements the "l"/"L"/"a"/"n" read formats, defaulting to
// a single line ("l") when no format is given.
func readFormats(ls LuaState, fh *fileHandle, firstArg int) int {
	n := ls.GetTop()
	if firstArg > n {
		return pushReadResult(ls, readLine(fh, false))
	}
	results := 0
	for i := firstArg; i <= n; i++ {
		spec := ls.OptString(i, "l")
		spec = strings.TrimPrefix(spec, "*")
		switch spec {
		case "l":
			results += pushReadResult(ls, readLine(fh, false))
		case "L":
			results += pushReadResult(ls, readLine(fh, true))
		case "a":
			data, _ := io.ReadAll(fh.r)
			ls.PushString(string(data))
			results++
		case "n":
			results += pushReadResult(ls, readNumberToken(fh))
		default:
			return ls.Error2("invalid format '%s'", spec)
		}
	}
	return results
}

func pushReadResult(ls LuaState, s string, ok bool) int {
	if !ok {
		ls.PushNil()
		return 1
	}
	ls.PushString(s)
	return 1
}

func readLine(fh *fileHandle, keepNewline bool) (string, bool) {
	line, err := fh.r.ReadString('\n')
	if line == "" && err != nil {
		return "", false
	}
	if !keepNewline {
		line = strings.TrimRight(line, "\n")
		line = strings.TrimRight(line, "\r")
	}
	return line, true
}

func readNumberToken(fh *fileHandle) (string, bool) {
	var b strings.Builder
	for {
		c, _, err := fh.r.ReadRune()
		if err != nil {
			break
		}
		if c == ' ' || c == '\t' || c == '\n' {
			if b.Len() == 0 {
				continue
			}
			break
		}
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' {
			b.WriteRune(c)
		} else {
			fh.r.UnreadRune()
			break
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	if _, err := strconv.ParseFloat(b.String(), 64); err != nil {
		return "", false
	}
	return b.String(), true
}

func writeArgs(ls LuaState, fh *fileHandle, firstArg int) int {
	n := ls.GetTop()
	for i := firstArg; i <= n; i++ {
		s := ls.ToString2(i)
		fh.f.WriteString(s)
	}
	return n - firstArg + 1
}

func makeLinesIterator(ls LuaState, fh *fileHandle, closeAtEOF bool) int {
	ls.PushUserData(fh)
	ls.PushBoolean(closeAtEOF)
	ls.PushGoClosure(linesIteratorAux, 2)
	return 1
}

func linesIteratorAux(ls LuaState) int {
	fh := ls.ToUserData(UpvalueIndex(1)).(*fileHandle)
	closeAtEOF := ls.ToBoolean(UpvalueIndex(2))
	line, ok := readLine(fh, false)
	if !ok {
		if closeAtEOF {
			fh.f.Close()
			fh.closed = true
		}
		ls.PushNil()
		return 1
	}
	ls.PushString(line)
	return 1
}
