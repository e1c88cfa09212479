package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	. "tlua/api"
)

func runREPL(ls LuaState) {
	fmt.Printf("tlua %s -- enter statements, blank line on an empty prompt to exit\n", LUA_VERSION)

	fd := int(os.Stdin.Fd())
	oldState, rawErr := term.MakeRaw(fd)
	var t *term.Terminal
	if rawErr == nil {
		defer term.Restore(fd, oldState)
		t = term.NewTerminal(os.Stdin, "> ")
	}

	var pending []string
	for {
		line, ok := readLine(t)
		if !ok {
			fmt.Println()
			return
		}
		line = strings.TrimRight(line, "\n")
		if line == "" && len(pending) == 0 {
			fmt.Println()
			return
		}

		pending = append(pending, line)
		chunk := strings.Join(pending, "\n")
		if blockUnbalanced(chunk) {
			setPrompt(t, ">> ")
			continue
		}
		setPrompt(t, "> ")
		pending = nil
		evalChunk(ls, chunk)
	}
}

func readLine(t *term.Terminal) (string, bool) {
	if t != nil {
		line, err := t.ReadLine()
		return line, err == nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	return line, err == nil
}

func setPrompt(t *term.Terminal, p string) {
	if t != nil {
		t.SetPrompt(p)
	} else {
		fmt.Print(p)
	}
}

func evalChunk(ls LuaState, chunk string) {
	defer ls.CatchAndPrint(true)

	if ls.LoadString(chunk, "=stdin") != LUA_OK {
		fmt.Fprintln(os.Stderr, ls.ToString(-1))
		ls.Pop(1)
		return
	}
	if ls.PCall(0, LUA_MULTRET, 0) != LUA_OK {
		fmt.Fprintln(os.Stderr, ls.ToString(-1))
		ls.Pop(1)
	}
}

// blockUnbalanced reports whether chunk still has open function/do/if
// blocks (needing "end"), or an open "repeat" (needing "until"), or an
// unterminated string literal — i.e. whether the REPL should keep
// reading lines instead of evaluating yet. "elseif...then" never adds
// depth on its own; only the "if" that started the chain does.
func blockUnbalanced(chunk string) bool {
	depth := 0
	repeats := 0
	inString := false
	var quote byte

	var stripped strings.Builder
	for i := 0; i < len(chunk); i++ {
		c := chunk[i]
		if inString {
			if c == quote && (i == 0 || chunk[i-1] != '\\') {
				inString = false
			}
			stripped.WriteByte(' ')
			continue
		}
		if c == '\'' || c == '"' {
			inString = true
			quote = c
			stripped.WriteByte(' ')
			continue
		}
		stripped.WriteByte(c)
	}
	if inString {
		return true
	}

	words := strings.FieldsFunc(stripped.String(), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '(' || r == ')' ||
			r == ',' || r == '.'
	})

	for _, w := range words {
		switch w {
		case "function", "do", "if":
			depth++
		case "end":
			depth--
		case "repeat":
			repeats++
		case "until":
			repeats--
		}
	}
	return depth > 0 || repeats > 0
}
