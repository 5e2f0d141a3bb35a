package ui

import (
	"image"
	"testing"

	"KindleShot/capture"

	"github.com/stretchr/testify/assert"
)

func TestDragSelectsRegion(t *testing.T) {
	d := &drag{origin: image.Pt(-1920, 0)}
	d.begin(image.Pt(500, 400))
	d.move(image.Pt(300, 100))

	r, dragging := d.rect()
	assert.True(t, dragging)
	assert.Equal(t, image.Rect(300, 100, 500, 400), r)

	assert.True(t, d.end(image.Pt(100, 50)))
	assert.True(t, d.ok)
	// 仮想スクリーンの原点を足したスクリーン座標
	assert.Equal(t, capture.Region{X: -1820, Y: 50, Width: 400, Height: 350}, d.result)

	_, dragging = d.rect()
	assert.False(t, dragging)
}

func TestDragTooSmallIsIgnored(t *testing.T) {
	d := &drag{}
	d.begin(image.Pt(10, 10))
	assert.True(t, d.end(image.Pt(11, 40)))
	assert.False(t, d.ok)
}

func TestDragEndWithoutBegin(t *testing.T) {
	d := &drag{}
	d.move(image.Pt(5, 5))
	assert.False(t, d.end(image.Pt(50, 50)))
	assert.False(t, d.ok)
}
