// Command tlua runs Lua 5.4 source files, or drops into an interactive
// REPL when given none.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	. "tlua/api"
	"tlua/internal/errs"
	"tlua/internal/trace"
	"tlua/state"
)

func main() {
	traceFlag := flag.Bool("trace", false, "log every VM instruction at debug level")
	inspect := flag.Bool("inspect", false, "open a live state browser while the script runs")
	exec := flag.String("e", "", "execute the given statement instead of a file")
	flag.Parse()

	if *traceFlag {
		trace.SetLevel(zerolog.DebugLevel)
	}

	ls := state.New()
	ls.OpenLibs()
	applyEnv(ls)

	if initChunk, ok := os.LookupEnv("LUA_INIT"); ok && initChunk != "" {
		runChunk(ls, initChunk, "=LUA_INIT")
	}

	if *exec != "" {
		runChunk(ls, *exec, "=(command line)")
		return
	}

	file := flag.Arg(0)
	if file == "" {
		runREPL(ls)
		return
	}

	setArgTable(ls, file, flag.Args()[1:])

	if *inspect {
		go runInspector(ls)
	}

	if ls.LoadFile(file) != LUA_OK {
		fail(ls)
	}
	if ls.PCall(0, LUA_MULTRET, 0) != LUA_OK {
		fail(ls)
	}
}

// applyEnv honors LUA_PATH the way the real lua interpreter does,
// overriding package.path set at OpenPackageLib time.
func applyEnv(ls LuaState) {
	path, ok := os.LookupEnv("LUA_PATH")
	if !ok || path == "" {
		return
	}
	if ls.GetGlobal("package") != LUA_TTABLE {
		ls.Pop(1)
		return
	}
	ls.PushString(path)
	ls.SetField(-2, "path")
	ls.Pop(1)
}

func setArgTable(ls LuaState, file string, rest []string) {
	ls.CreateTable(len(rest), 1)
	ls.PushString(file)
	ls.SetI(-2, 0)
	for i, a := range rest {
		ls.PushString(a)
		ls.SetI(-2, int64(i+1))
	}
	ls.SetGlobal("arg")
}

func runChunk(ls LuaState, chunk, chunkName string) {
	if ls.LoadString(chunk, chunkName) != LUA_OK {
		fail(ls)
	}
	if ls.PCall(0, LUA_MULTRET, 0) != LUA_OK {
		fail(ls)
	}
}

func fail(ls LuaState) {
	msg := ls.ToString(-1)
	ls.Pop(1)
	le := errs.Wrap(msg, ls.Traceback(""))
	fmt.Fprintln(os.Stderr, "tlua: "+le.Error())
	os.Exit(1)
}
