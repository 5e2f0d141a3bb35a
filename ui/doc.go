// Package ui は座標取得ツールの GUI 版です（Windows のみ）。
package ui
