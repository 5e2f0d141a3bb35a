// Package keyboard はキー操作文字列（例: "right", "Ctrl+Right"）を解析して送信します。
// 送信は Windows のみ対応で、それ以外では errors.ErrUnsupported を返します。
package keyboard
