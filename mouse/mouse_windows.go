//go:build windows

package mouse

import (
	"errors"
	"unsafe"

	"github.com/lxn/win"
)

const (
	inputMouse          = 0
	mouseeventfLeftDown = 0x0002
	mouseeventfLeftUp   = 0x0004
	mouseeventfWheel    = 0x0800
	wheelDelta          = 120
)

// Position はマウスカーソルのスクリーン座標を返します。
func Position() (int, int, error) {
	var pt win.POINT
	if !win.GetCursorPos(&pt) {
		return 0, 0, errors.New("GetCursorPos に失敗しました")
	}
	return int(pt.X), int(pt.Y), nil
}

// Click は (x, y) にカーソルを移動して左クリックします。
func Click(x, y int) error {
	if err := moveTo(x, y); err != nil {
		return err
	}
	if err := send(mouseeventfLeftDown, 0); err != nil {
		return err
	}
	return send(mouseeventfLeftUp, 0)
}

// Scroll は (x, y) にカーソルを移動してホイールを clicks ノッチ回します。負の値は下方向です。
func Scroll(x, y, clicks int) error {
	if err := moveTo(x, y); err != nil {
		return err
	}
	return send(mouseeventfWheel, uint32(int32(clicks*wheelDelta)))
}

func moveTo(x, y int) error {
	if !win.SetCursorPos(int32(x), int32(y)) {
		return errors.New("SetCursorPos に失敗しました")
	}
	return nil
}

func send(flags, data uint32) error {
	in := win.MOUSE_INPUT{
		Type: inputMouse,
		Mi: win.MOUSEINPUT{
			MouseData: data,
			DwFlags:   flags,
		},
	}
	if win.SendInput(1, unsafe.Pointer(&in), int32(unsafe.Sizeof(in))) != 1 {
		return errors.New("SendInput に失敗しました")
	}
	return nil
}
