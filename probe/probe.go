// Package probe はマウス座標の確認と、2点からのキャプチャ範囲の取得を行います。
package probe

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"time"

	"KindleShot/capture"
	"KindleShot/timing"
)

// DefaultInterval は Watch の既定のサンプリング間隔です。
const DefaultInterval = 100 * time.Millisecond

// Pointer はマウスカーソルのスクリーン座標を返します。
type Pointer interface {
	Position() (int, int, error)
}

// Sampler はスクリーン上の1ピクセルの色を返します。
type Sampler interface {
	PixelAt(x, y int) (color.RGBA, error)
}

// Waiter はメッセージを表示してユーザーの操作を待ちます。
type Waiter interface {
	WaitEnter(ctx context.Context, msg string) error
}

// Sample はある時点のカーソル位置とその下の色です。
type Sample struct {
	X, Y  int
	Color color.RGBA
}

func (s Sample) String() string {
	return fmt.Sprintf("マウス位置: X=%d, Y=%d, RGB=(%d, %d, %d)", s.X, s.Y, s.Color.R, s.Color.G, s.Color.B)
}

// RegionFromPoints は2点を対角とする矩形を返します。どちらの角を先に指定しても同じ結果です。
func RegionFromPoints(a, b image.Point) capture.Region {
	return capture.Region{
		X:      min(a.X, b.X),
		Y:      min(a.Y, b.Y),
		Width:  abs(b.X - a.X),
		Height: abs(b.Y - a.Y),
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Snippet は設定ファイルにそのまま貼り付けられる region の行を返します。
func Snippet(r capture.Region) string {
	return fmt.Sprintf(`"region": [%d, %d, %d, %d]`, r.X, r.Y, r.Width, r.Height)
}

// Describe は取得した範囲の表示用テキストです。
func Describe(r capture.Region) string {
	return fmt.Sprintf("region = (%d, %d, %d, %d)\n\nconfig.json用:\n%s", r.X, r.Y, r.Width, r.Height, Snippet(r))
}

// Watch は ctx が終了するまで interval ごとにカーソル位置と色を取得し、fn に渡します。
// ctx の終了による停止ではエラーを返しません。
func Watch(ctx context.Context, p Pointer, s Sampler, sleeper timing.Sleeper, interval time.Duration, fn func(Sample)) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	for {
		x, y, err := p.Position()
		if err != nil {
			return err
		}
		c, err := s.PixelAt(x, y)
		if err != nil {
			return err
		}
		fn(Sample{X: x, Y: y, Color: c})
		if err := sleeper.Sleep(ctx, interval); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// MarkRegion は左上と右下でそれぞれ Enter を待ってカーソル位置を読み、範囲を返します。
// 結果は out に設定ファイル用の形式でも表示します。
func MarkRegion(ctx context.Context, p Pointer, w Waiter, out io.Writer) (capture.Region, error) {
	fmt.Fprintln(out, "領域座標取得ツール")
	fmt.Fprintln(out, "1. 開始点（左上）でEnterを押してください")
	fmt.Fprintln(out, "2. 終了点（右下）でEnterを押してください")
	fmt.Fprintln(out)

	start, err := pick(ctx, p, w, "開始点（左上）の位置にマウスを移動してEnterを押してください...")
	if err != nil {
		return capture.Region{}, err
	}
	fmt.Fprintf(out, "開始点: X=%d, Y=%d\n", start.X, start.Y)

	end, err := pick(ctx, p, w, "終了点（右下）の位置にマウスを移動してEnterを押してください...")
	if err != nil {
		return capture.Region{}, err
	}
	fmt.Fprintf(out, "終了点: X=%d, Y=%d\n", end.X, end.Y)

	r := RegionFromPoints(start, end)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "取得した領域:")
	fmt.Fprintln(out, Describe(r))
	if err := r.Validate(); err != nil {
		fmt.Fprintf(out, "注意: %v\n", err)
	}
	return r, nil
}

func pick(ctx context.Context, p Pointer, w Waiter, msg string) (image.Point, error) {
	if err := w.WaitEnter(ctx, msg); err != nil {
		return image.Point{}, err
	}
	x, y, err := p.Position()
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(x, y), nil
}

// ScreenInfo は各ディスプレイの範囲を表示します。
func ScreenInfo(out io.Writer, screens []image.Rectangle) {
	fmt.Fprintln(out, "画面情報:")
	for i, b := range screens {
		fmt.Fprintf(out, "  ディスプレイ %d: %d x %d (左上 X=%d, Y=%d)\n", i, b.Dx(), b.Dy(), b.Min.X, b.Min.Y)
	}
}
