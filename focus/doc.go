// Package focus は撮影対象のウィンドウを前面に出します。
package focus
