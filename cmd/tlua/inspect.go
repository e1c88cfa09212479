package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	. "tlua/api"
)

// runInspector opens a live state browser alongside a running script: a
// scrollable list of globals on the left, and a log of hook events (line
// executed, call entered/returned) streaming on the right. It installs
// itself as the VM's debug hook, so it only shows activity for scripts
// run with -inspect.
func runInspector(ls LuaState) {
	app := tview.NewApplication()

	globals := tview.NewTextView().
		SetDynamicColors(true).
		SetChangedFunc(func() { app.Draw() })
	globals.SetBorder(true).SetTitle(" globals ")

	events := tview.NewTextView().
		SetDynamicColors(true).
		SetChangedFunc(func() { app.Draw() })
	events.SetBorder(true).SetTitle(" trace ")

	flex := tview.NewFlex().
		AddItem(globals, 0, 1, false).
		AddItem(events, 0, 2, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC || event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	// The hook fires synchronously on the script's own goroutine, while
	// the tview event loop runs on the one runInspector was launched on
	// (main.go starts it with "go runInspector(ls)"); QueueUpdateDraw
	// marshals the redraw onto the UI goroutine instead of racing it.
	ls.SetHook(func(hs LuaState, event string, line int) {
		snapshot := renderGlobals(hs)
		app.QueueUpdateDraw(func() {
			fmt.Fprintf(events, "%s line %d\n", event, line)
			globals.Clear()
			fmt.Fprint(globals, snapshot)
		})
	}, MaskLine|MaskCall|MaskReturn, 0)

	if err := app.SetRoot(flex, true).Run(); err != nil {
		fmt.Println("inspect: " + err.Error())
	}
}

// renderGlobals walks the global table's string-keyed entries and
// formats each as "name = type", the way a debugger's variable pane
// would.
func renderGlobals(ls LuaState) string {
	var b strings.Builder
	ls.PushGlobalTable()
	ls.PushNil()
	for ls.Next(-2) {
		if ls.IsString(-2) {
			name := ls.ToString(-2)
			fmt.Fprintf(&b, "%-16s %s\n", name, ls.TypeName(ls.Type(-1)))
		}
		ls.Pop(1)
	}
	ls.Pop(1)
	return b.String()
}
