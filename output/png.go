package output

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
)

// PageFileName は index ページ目のファイル名（page_001.png 形式）を返します。
func PageFileName(index int) string {
	return fmt.Sprintf("page_%03d.png", index)
}

// EnsureFolder は dir が無ければ作成します。新しく作成した場合は true を返します。
func EnsureFolder(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s はフォルダではありません", dir)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, err
	}
	return true, nil
}

// SavePNG は画像を指定フォルダに連番の PNG として保存し、ファイルパスを返します。
// エンコードに失敗した場合は書きかけのファイルを削除します。
func SavePNG(dir string, index int, img image.Image) (string, error) {
	path := filepath.Join(dir, PageFileName(index))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
