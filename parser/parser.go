package parser

import (
	. "tlua/ast"
	. "tlua/lexer"
)

// Parse runs the recursive-descent parser over a Lua 5.4 chunk, returning
// its top-level block.
func Parse(chunk, chunkName string) *Block {
	lexer := NewLexer(chunk, chunkName)
	block := ParseBlock(lexer)
	lexer.NextTokenOfKind(TOKEN_EOF)
	return block
}
