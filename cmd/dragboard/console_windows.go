//go:build windows

package main

import "syscall"

// manageConsole detaches the window build from its console unless debug
// logging is compiled in. Terminal commands never call it.
func manageConsole(keep bool) {
	if keep {
		return
	}
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	freeConsole := kernel32.NewProc("FreeConsole")
	freeConsole.Call()
}
