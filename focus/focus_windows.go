//go:build windows

package focus

import (
	"strings"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

var (
	user32             = syscall.NewLazyDLL("user32.dll")
	procEnumWindows    = user32.NewProc("EnumWindows")
	procGetWindowTextW = user32.NewProc("GetWindowTextW")
)

func windowTitle(hwnd win.HWND) string {
	buf := make([]uint16, 256)
	r0, _, _ := syscall.Syscall(procGetWindowTextW.Addr(), 3,
		uintptr(hwnd),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)))
	if n := int(r0); n > 0 {
		return syscall.UTF16ToString(buf[:n])
	}
	return ""
}

// visibleWindows は表示中のトップレベルウィンドウを列挙し、fn が false を返したら止めます。
func visibleWindows(fn func(hwnd win.HWND, title string) bool) {
	cb := syscall.NewCallback(func(hwnd win.HWND, lParam uintptr) uintptr {
		if !win.IsWindowVisible(hwnd) {
			return 1
		}
		title := windowTitle(hwnd)
		if title == "" || fn(hwnd, title) {
			return 1 // 続行
		}
		return 0 // 列挙中止
	})
	_, _, _ = procEnumWindows.Call(cb, 0)
}

// Titles は表示されているトップレベルウィンドウのタイトル一覧を返します。
func Titles() []string {
	var titles []string
	visibleWindows(func(_ win.HWND, title string) bool {
		titles = append(titles, title)
		return true
	})
	return titles
}

// Activate はタイトルに title を含む最初の表示中ウィンドウを前面にします。
// 電子書籍リーダーはタイトルに書名が付くため部分一致で探します。
// 見つからなければ false を返します。
func Activate(title string) bool {
	var found win.HWND
	visibleWindows(func(hwnd win.HWND, t string) bool {
		if strings.Contains(t, title) {
			found = hwnd
			return false
		}
		return true
	})
	if found == 0 {
		return false
	}
	if win.IsIconic(found) {
		win.ShowWindow(found, win.SW_RESTORE)
	}
	return win.SetForegroundWindow(found)
}
