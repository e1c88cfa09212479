// Command tluac compiles Lua 5.4 source into a binary chunk, the same
// format LoadFile/Load accept at the other end.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"tlua/binchunk"
	"tlua/compiler"
)

func main() {
	output := pflag.StringP("output", "o", "luac.out", "output file")
	stripDebug := pflag.BoolP("strip-debug", "s", false, "strip debug information")
	listOnly := pflag.BoolP("parse", "p", false, "parse only, do not produce output")
	pflag.Parse()

	if pflag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: tluac [-o output] [-s] [-p] source.lua")
		os.Exit(1)
	}

	sources := make([]string, 0, pflag.NArg())
	for _, arg := range pflag.Args() {
		data, err := os.ReadFile(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "tluac: "+err.Error())
			os.Exit(1)
		}
		sources = append(sources, string(data))
	}

	chunkName := "@" + pflag.Arg(0)
	proto := compiler.Compile(strings.Join(sources, "\n"), chunkName)

	if *stripDebug {
		stripDebugInfo(proto)
	}

	if *listOnly {
		return
	}

	data, err := proto.Dump()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tluac: "+err.Error())
		os.Exit(1)
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		fmt.Fprintln(os.Stderr, "tluac: "+err.Error())
		os.Exit(1)
	}
}

// stripDebugInfo clears per-function source positions and local/upvalue
// names, the way luac -s drops everything a debugger would need but a
// running VM does not.
func stripDebugInfo(proto *binchunk.Prototype) {
	proto.Source = ""
	proto.LineInfo = nil
	proto.LocVars = nil
	proto.UpvalueNames = nil
	for _, p := range proto.Protos {
		stripDebugInfo(p)
	}
}
