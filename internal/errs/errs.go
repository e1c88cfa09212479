// Package errs gives raised Lua values a typed carrier at the boundary
// between the interpreter's panic/recover control flow and ordinary Go
// error handling, so callers can tell a string error (which wants a
// "file:line:" location prefix) apart from an arbitrary Lua value
// (table, number, ...) raised via error(v).
package errs

import "fmt"

// LuaError wraps whatever value was passed to error() (or panicked its
// way out of a closure call) together with the traceback captured at
// the point it crossed back into Go.
type LuaError struct {
	Value     any
	Traceback string
}

func (e *LuaError) Error() string {
	if s, ok := e.Value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", e.Value)
}

// Wrap turns a recovered panic value into a *LuaError (the CLI's error
// path and CatchAndPrint use it), passing existing *LuaError values
// through unchanged.
func Wrap(v any, traceback string) *LuaError {
	if le, ok := v.(*LuaError); ok {
		return le
	}
	return &LuaError{Value: v, Traceback: traceback}
}
