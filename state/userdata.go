package state

// lkUserData wraps an arbitrary Go value (a file handle, for instance) as
// a full userdata: an opaque value carrying its own metatable, the way
// real Lua attaches __index/__gc/__tostring to things like file handles.
type lkUserData struct {
	Data      any
	metatable *lkTable
}
