//go:build !windows

package keyboard

import (
	"errors"
	"fmt"
	"runtime"
)

// Send はこのプラットフォームでは使えません。
func Send(keyOperation string) error {
	if _, err := ParseCombo(keyOperation); err != nil {
		return err
	}
	return fmt.Errorf("キー送信 (%s): %w", runtime.GOOS, errors.ErrUnsupported)
}
