package ui

import (
	"image"
	"sync"

	"KindleShot/capture"
	"KindleShot/probe"
)

// minDrag より小さいドラッグはクリックとみなして無視します。
const minDrag = 3

// drag はオーバーレイ上のドラッグ状態です。座標はオーバーレイのクライアント座標です。
type drag struct {
	mu       sync.Mutex
	origin   image.Point // 仮想スクリーンの左上
	start    image.Point
	current  image.Point
	dragging bool
	result   capture.Region
	ok       bool
}

func (d *drag) begin(p image.Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.start, d.current, d.dragging = p, p, true
}

func (d *drag) move(p image.Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dragging {
		d.current = p
	}
}

// end はドラッグを終了し、範囲が確定したら true を返します。
func (d *drag) end(p image.Point) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.dragging {
		return false
	}
	d.dragging = false
	r := probe.RegionFromPoints(d.start, p)
	if r.Width < minDrag || r.Height < minDrag {
		return true
	}
	r.X += d.origin.X
	r.Y += d.origin.Y
	d.result, d.ok = r, true
	return true
}

// rect は描画中の矩形を返します。
func (d *drag) rect() (image.Rectangle, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return image.Rectangle{Min: d.start, Max: d.current}.Canon(), d.dragging
}
