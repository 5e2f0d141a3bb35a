//go:build windows

package ui

import (
	"syscall"

	"github.com/lxn/win"
)

// mbTopmost は他のウィンドウより手前にメッセージボックスを表示します。
const mbTopmost = 0x00040000

// ShowError はエラーメッセージをメッセージボックスで表示します。
func ShowError(msg string) {
	messageBox("エラー", msg, win.MB_OK|win.MB_ICONERROR)
}

// ShowInfo は情報メッセージをメッセージボックスで表示します。
// OK が押されるまで戻りません。
func ShowInfo(title, msg string) {
	messageBox(title, msg, win.MB_OK|win.MB_ICONINFORMATION|mbTopmost)
}

func messageBox(title, msg string, flags uint32) int32 {
	t, _ := syscall.UTF16PtrFromString(title)
	m, _ := syscall.UTF16PtrFromString(msg)
	return win.MessageBox(0, m, t, flags)
}
