package compare

import (
	"bytes"
	"crypto/sha256"
	"image"
	"image/draw"
)

// Hash は画像のピクセルデータの SHA256 ハッシュを返します。
func Hash(img image.Image) []byte {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	h := sha256.New()
	h.Write([]byte{byte(b.Dx() >> 24), byte(b.Dx() >> 16), byte(b.Dx() >> 8), byte(b.Dx())})
	h.Write(rgba.Pix[:4*b.Dx()*b.Dy()])
	return h.Sum(nil)
}

// Tracker は直前のページと同じ画像が何回続いたかを数えます。
type Tracker struct {
	last    []byte
	repeats int
}

// Observe は hash を記録し、直前から連続して同じだった回数を返します。
// 直前と異なれば0です。
func (t *Tracker) Observe(hash []byte) int {
	if t.last != nil && bytes.Equal(t.last, hash) {
		t.repeats++
	} else {
		t.repeats = 0
	}
	t.last = hash
	return t.repeats
}

// Reset は記録を消去します。撮影に失敗したページの後に呼びます。
func (t *Tracker) Reset() {
	t.last = nil
	t.repeats = 0
}
