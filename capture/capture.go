package capture

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/kbinani/screenshot"
)

// Region はキャプチャ範囲（左上座標と幅・高さ、ピクセル単位）を表します。
type Region struct {
	X, Y, Width, Height int
}

// Validate は座標が非負で、幅・高さが正であることを確認します。
func (r Region) Validate() error {
	if r.X < 0 || r.Y < 0 {
		return fmt.Errorf("領域の座標が負です: %s", r)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("領域の幅・高さは正である必要があります: %s", r)
	}
	return nil
}

// Rect はスクリーン座標系の矩形を返します。
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Center は領域の中心点を返します。
func (r Region) Center() image.Point {
	return image.Pt(r.X+r.Width/2, r.Y+r.Height/2)
}

func (r Region) String() string {
	return fmt.Sprintf("x=%d, y=%d, width=%d, height=%d", r.X, r.Y, r.Width, r.Height)
}

// Capture は指定範囲をキャプチャして image.Image を返します。
func Capture(region Region) (image.Image, error) {
	if err := region.Validate(); err != nil {
		return nil, err
	}
	img, err := screenshot.CaptureRect(region.Rect())
	if err != nil {
		return nil, err
	}
	return img, nil
}

// PixelAt は (x, y) の1ピクセルをキャプチャしてその色を返します。
func PixelAt(x, y int) (color.RGBA, error) {
	img, err := screenshot.CaptureRect(image.Rect(x, y, x+1, y+1))
	if err != nil {
		return color.RGBA{}, err
	}
	b := img.Bounds()
	return img.RGBAAt(b.Min.X, b.Min.Y), nil
}

// Screens はアクティブなディスプレイの範囲を返します。
func Screens() ([]image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, errors.New("アクティブなディスプレイがありません")
	}
	screens := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		screens = append(screens, screenshot.GetDisplayBounds(i))
	}
	return screens, nil
}
