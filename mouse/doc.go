// Package mouse はマウスカーソルの取得、クリック、ホイール操作を送信します。
// Windows 以外では errors.ErrUnsupported を返します。
package mouse
