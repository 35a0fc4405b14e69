//go:build windows && !arm64

package platform

// External drops arrive as WM_DROPFILES on the subclassed Gio window.

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/justyntemme/dragboard/internal/debug"
)

const wmDropFiles = 0x0233

var (
	shell32  = windows.NewLazySystemDLL("shell32.dll")
	comctl32 = windows.NewLazySystemDLL("comctl32.dll")

	procDragAcceptFiles   = shell32.NewProc("DragAcceptFiles")
	procDragQueryFileW    = shell32.NewProc("DragQueryFileW")
	procDragFinish        = shell32.NewProc("DragFinish")
	procSetWindowSubclass = comctl32.NewProc("SetWindowSubclass")
	procDefSubclassProc   = comctl32.NewProc("DefSubclassProc")

	// Kept so the callback is not collected
	subclassCallback uintptr
)

const dropSubclassID = 1

// Supported reports whether external drops reach the window on this platform.
func Supported() bool { return true }

// SetupExternalDrop makes the window with handle hwnd accept file drops.
func SetupExternalDrop(hwnd uintptr) {
	if hwnd == 0 {
		return
	}
	procDragAcceptFiles.Call(hwnd, 1)

	if subclassCallback == 0 {
		subclassCallback = syscall.NewCallback(dropSubclassProc)
	}
	if ret, _, err := procSetWindowSubclass.Call(hwnd, subclassCallback, dropSubclassID, 0); ret == 0 {
		debug.Log(debug.APP, "External drop: SetWindowSubclass failed: %v", err)
		return
	}
	debug.Log(debug.APP, "External drop: accepting files on hwnd=0x%x", hwnd)
}

// dropSubclassProc is a SUBCLASSPROC(HWND, UINT, WPARAM, LPARAM, UINT_PTR, DWORD_PTR)
func dropSubclassProc(hwnd uintptr, msg uint32, wParam, lParam, id, refData uintptr) uintptr {
	if msg == wmDropFiles {
		deliver(queryDropFiles(wParam))
		return 0
	}
	ret, _, _ := procDefSubclassProc.Call(hwnd, uintptr(msg), wParam, lParam)
	return ret
}

// queryDropFiles reads the paths out of an HDROP and releases it
func queryDropFiles(hDrop uintptr) []string {
	defer procDragFinish.Call(hDrop)

	count, _, _ := procDragQueryFileW.Call(hDrop, 0xFFFFFFFF, 0, 0)
	paths := make([]string, 0, count)
	for i := uintptr(0); i < count; i++ {
		size, _, _ := procDragQueryFileW.Call(hDrop, i, 0, 0)
		if size == 0 {
			continue
		}
		buf := make([]uint16, size+1)
		procDragQueryFileW.Call(hDrop, i, uintptr(unsafe.Pointer(&buf[0])), size+1)
		paths = append(paths, windows.UTF16ToString(buf))
	}
	debug.Log(debug.APP, "External drop: %d files", len(paths))
	return paths
}
