// Package desktop は capture, keyboard, mouse, focus をまとめて
// 撮影ループと座標取得ツールのバックエンドとして提供します。
package desktop

import (
	"image"
	"image/color"

	"KindleShot/capture"
	"KindleShot/focus"
	"KindleShot/keyboard"
	"KindleShot/mouse"
)

// Desktop は実際の画面と入力デバイスを操作します。
type Desktop struct{}

func (Desktop) Capture(r capture.Region) (image.Image, error) { return capture.Capture(r) }

func (Desktop) PressKey(key string) error { return keyboard.Send(key) }

func (Desktop) Hotkey(combo string) error { return keyboard.Send(combo) }

func (Desktop) Click(x, y int) error { return mouse.Click(x, y) }

func (Desktop) Scroll(x, y, clicks int) error { return mouse.Scroll(x, y, clicks) }

func (Desktop) Position() (int, int, error) { return mouse.Position() }

func (Desktop) PixelAt(x, y int) (color.RGBA, error) { return capture.PixelAt(x, y) }

func (Desktop) Activate(title string) bool { return focus.Activate(title) }

func (Desktop) Titles() []string { return focus.Titles() }
