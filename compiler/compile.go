package compiler

import (
	. "tlua/binchunk"
	"tlua/parser"
)

// Compile lexes, parses, and generates bytecode for a Lua 5.4 chunk.
func Compile(source, chunkName string) *Prototype {
	block := parser.Parse(source, chunkName)
	return GenProto(block)
}
