//go:build windows

package ui

import (
	"context"
	"fmt"
	"image"
	"time"

	"KindleShot/capture"
	"KindleShot/probe"
	"KindleShot/timing"

	"github.com/lxn/walk"
	"github.com/lxn/win"
)

// minimizeSettle はウィンドウを最小化してから最初の確認を出すまでの時間です。
const minimizeSettle = time.Second

// RunProbeWindow は座標取得ツールのウィンドウを表示し、閉じられるまで戻りません。
func RunProbeWindow(p probe.Pointer, s probe.Sampler) error {
	dlg, err := walk.NewDialog(nil)
	if err != nil {
		return fmt.Errorf("ダイアログの作成に失敗しました: %w", err)
	}
	defer dlg.Dispose()
	dlg.SetTitle("座標取得ツール")
	dlg.SetLayout(walk.NewVBoxLayout())

	titleLabel, err := walk.NewLabel(dlg)
	if err != nil {
		return fmt.Errorf("UIの作成に失敗しました: %w", err)
	}
	titleLabel.SetText("座標取得ツール")

	posLabel, _ := walk.NewLabel(dlg)
	posLabel.SetText("マウス位置: 移動中...")

	resultLabel, _ := walk.NewLabel(dlg)
	resultLabel.SetText("領域: (未取得)")

	var last capture.Region
	var have bool
	showResult := func(r capture.Region) {
		last, have = r, true
		resultLabel.SetText(probe.Snippet(r))
		ShowInfo("結果", probe.Describe(r))
	}

	btnComp, _ := walk.NewComposite(dlg)
	btnComp.SetLayout(walk.NewHBoxLayout())

	markBtn, _ := walk.NewPushButton(btnComp)
	markBtn.SetText("領域座標を取得")
	markBtn.Clicked().Attach(func() {
		r, err := markWithDialogs(dlg, p)
		if err != nil {
			ShowError(fmt.Sprintf("座標の取得に失敗しました: %v", err))
			return
		}
		showResult(r)
	})

	dragBtn, _ := walk.NewPushButton(btnComp)
	dragBtn.SetText("ドラッグで選択...")
	dragBtn.Clicked().Attach(func() {
		hwnd := dlg.Handle()
		win.ShowWindow(hwnd, win.SW_MINIMIZE)
		r, ok := SelectRegion()
		win.ShowWindow(hwnd, win.SW_RESTORE)
		if ok {
			showResult(r)
		}
	})

	copyBtn, _ := walk.NewPushButton(btnComp)
	copyBtn.SetText("コピー")
	copyBtn.Clicked().Attach(func() {
		if !have {
			return
		}
		if err := walk.Clipboard().SetText(probe.Snippet(last)); err != nil {
			ShowError(fmt.Sprintf("クリップボードにコピーできませんでした: %v", err))
		}
	})

	infoLabel, _ := walk.NewLabel(dlg)
	infoLabel.SetText("「領域座標を取得」を押すとウィンドウが最小化され、\n開始点と終了点を選択できます")

	closeBtn, _ := walk.NewPushButton(dlg)
	closeBtn.SetText("閉じる")
	closeBtn.Clicked().Attach(func() { dlg.Cancel() })
	dlg.SetCancelButton(closeBtn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		err := probe.Watch(ctx, p, s, timing.Real{}, probe.DefaultInterval, func(smp probe.Sample) {
			dlg.Synchronize(func() { posLabel.SetText(smp.String()) })
		})
		if err != nil {
			dlg.Synchronize(func() { posLabel.SetText(fmt.Sprintf("マウス位置: 取得に失敗しました (%v)", err)) })
		}
	}()

	dlg.Run()
	// Dispose より前に監視を止める
	cancel()
	<-done
	return nil
}

// markWithDialogs はウィンドウを最小化し、2回のメッセージボックスでカーソル位置を読み取ります。
// 終了後はウィンドウを元に戻します。
func markWithDialogs(dlg *walk.Dialog, p probe.Pointer) (capture.Region, error) {
	hwnd := dlg.Handle()
	win.ShowWindow(hwnd, win.SW_MINIMIZE)
	defer win.ShowWindow(hwnd, win.SW_RESTORE)
	time.Sleep(minimizeSettle)

	ShowInfo("開始点", "開始点（左上）の位置にマウスを置いて Enter を押してください")
	x1, y1, err := p.Position()
	if err != nil {
		return capture.Region{}, err
	}
	ShowInfo("終了点", "終了点（右下）の位置にマウスを置いて Enter を押してください")
	x2, y2, err := p.Position()
	if err != nil {
		return capture.Region{}, err
	}
	return probe.RegionFromPoints(image.Pt(x1, y1), image.Pt(x2, y2)), nil
}
