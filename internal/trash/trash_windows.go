//go:build windows

package trash

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// The Recycle Bin is reached through SHFileOperationW with FOF_ALLOWUNDO.

var (
	shell32              = windows.NewLazySystemDLL("shell32.dll")
	procSHFileOperationW = shell32.NewProc("SHFileOperationW")
)

// SHFILEOPSTRUCTW
type shFileOpStruct struct {
	hwnd                  uintptr
	wFunc                 uint32
	pFrom                 *uint16
	pTo                   *uint16
	fFlags                uint16
	fAnyOperationsAborted int32
	hNameMappings         uintptr
	lpszProgressTitle     *uint16
}

const (
	foDelete          = 0x0003
	fofSilent         = 0x0004
	fofNoConfirmation = 0x0010
	fofAllowUndo      = 0x0040
	fofNoErrorUI      = 0x0400
)

func isAvailable() bool {
	return true
}

func moveToTrash(absPath string) (string, error) {
	// pFrom is a double-NUL-terminated list
	from, err := windows.UTF16FromString(absPath)
	if err != nil {
		return "", err
	}
	from = append(from, 0)

	op := shFileOpStruct{
		wFunc:  foDelete,
		pFrom:  &from[0],
		fFlags: fofAllowUndo | fofNoConfirmation | fofNoErrorUI | fofSilent,
	}
	if ret, _, _ := procSHFileOperationW.Call(uintptr(unsafe.Pointer(&op))); ret != 0 {
		return "", fmt.Errorf("SHFileOperationW failed with code %d", ret)
	}
	if op.fAnyOperationsAborted != 0 {
		return "", fmt.Errorf("move to %s was aborted", displayName())
	}
	return "", nil
}

func displayName() string {
	return "Recycle Bin"
}
