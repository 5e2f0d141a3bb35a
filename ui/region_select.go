//go:build windows

package ui

import (
	"image"
	"sync"
	"syscall"
	"unsafe"

	"KindleShot/capture"

	"github.com/lxn/win"
)

const overlayClassName = "KindleShotRegionSelect"

var (
	registerOnce sync.Once
	// active は表示中のオーバーレイのドラッグ状態です。ウィンドウクラスは一度だけ登録するため、
	// ウィンドウプロシージャはこの変数を参照します。
	active *drag
)

func pointFromLParam(lParam uintptr) image.Point {
	return image.Pt(int(int16(win.LOWORD(uint32(lParam)))), int(int16(win.HIWORD(uint32(lParam)))))
}

func overlayProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	d := active
	if d == nil {
		return win.DefWindowProc(hwnd, msg, wParam, lParam)
	}
	switch msg {
	case win.WM_LBUTTONDOWN:
		d.begin(pointFromLParam(lParam))
		win.InvalidateRect(hwnd, nil, true)
		return 0
	case win.WM_MOUSEMOVE:
		if wParam&win.MK_LBUTTON != 0 {
			d.move(pointFromLParam(lParam))
			win.InvalidateRect(hwnd, nil, true)
		}
		return 0
	case win.WM_LBUTTONUP:
		if d.end(pointFromLParam(lParam)) {
			win.PostQuitMessage(0)
		}
		return 0
	case win.WM_KEYDOWN:
		if wParam == win.VK_ESCAPE {
			win.PostQuitMessage(0)
		}
		return 0
	case win.WM_PAINT:
		var ps win.PAINTSTRUCT
		hdc := win.BeginPaint(hwnd, &ps)
		if r, ok := d.rect(); hdc != 0 && ok {
			pen := createPen(win.PS_SOLID, 3, uint32(win.RGB(255, 0, 0)))
			oldPen := win.SelectObject(hdc, win.HGDIOBJ(pen))
			win.SelectObject(hdc, win.GetStockObject(win.NULL_BRUSH))
			win.Rectangle_(hdc, int32(r.Min.X), int32(r.Min.Y), int32(r.Max.X), int32(r.Max.Y))
			win.SelectObject(hdc, oldPen)
			win.DeleteObject(win.HGDIOBJ(pen))
		}
		win.EndPaint(hwnd, &ps)
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func registerOverlayClass() {
	registerOnce.Do(func() {
		win.RegisterClassEx(&win.WNDCLASSEX{
			CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
			Style:         win.CS_HREDRAW | win.CS_VREDRAW,
			LpfnWndProc:   syscall.NewCallback(overlayProc),
			HInstance:     win.GetModuleHandle(nil),
			LpszClassName: syscall.StringToUTF16Ptr(overlayClassName),
			HCursor:       win.LoadCursor(0, win.MAKEINTRESOURCE(win.IDC_CROSS)),
			HbrBackground: win.HBRUSH(win.COLOR_WINDOW + 1),
		})
	})
}

// SelectRegion は全画面の半透明オーバーレイを表示し、マウスドラッグで範囲を選択させます。
// Esc でキャンセルした場合は false を返します。
func SelectRegion() (capture.Region, bool) {
	bounds := virtualScreenBounds()
	if bounds.Empty() {
		return capture.Region{}, false
	}
	registerOverlayClass()
	d := &drag{origin: bounds.Min}
	active = d
	defer func() { active = nil }()

	hwnd := win.CreateWindowEx(
		win.WS_EX_LAYERED|win.WS_EX_TOPMOST|win.WS_EX_TOOLWINDOW,
		syscall.StringToUTF16Ptr(overlayClassName),
		nil,
		win.WS_POPUP|win.WS_VISIBLE,
		int32(bounds.Min.X), int32(bounds.Min.Y), int32(bounds.Dx()), int32(bounds.Dy()),
		0, 0, win.GetModuleHandle(nil), nil,
	)
	if hwnd == 0 {
		return capture.Region{}, false
	}
	setLayeredWindowAttributes(hwnd, 0, 180, 0x2) // LWA_ALPHA = 0x2
	win.SetForegroundWindow(hwnd)

	var msg win.MSG
	for win.GetMessage(&msg, 0, 0, 0) > 0 {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
	win.DestroyWindow(hwnd)

	return d.result, d.ok
}

// virtualScreenBounds は全ディスプレイを含む矩形を返します。
func virtualScreenBounds() image.Rectangle {
	screens, err := capture.Screens()
	if err != nil {
		return image.Rect(0, 0, 1920, 1080)
	}
	var all image.Rectangle
	for _, b := range screens {
		all = all.Union(b)
	}
	return all
}

var (
	gdi32CreatePen   = syscall.NewLazyDLL("gdi32.dll").NewProc("CreatePen")
	user32SetLayered = syscall.NewLazyDLL("user32.dll").NewProc("SetLayeredWindowAttributes")
)

func createPen(style, width int32, color uint32) win.HPEN {
	r, _, _ := gdi32CreatePen.Call(uintptr(style), uintptr(width), uintptr(color))
	return win.HPEN(r)
}

func setLayeredWindowAttributes(hwnd win.HWND, crKey uint32, bAlpha uint8, dwFlags uint32) bool {
	r, _, _ := user32SetLayered.Call(uintptr(hwnd), uintptr(crKey), uintptr(bAlpha), uintptr(dwFlags))
	return r != 0
}
