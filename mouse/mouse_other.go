//go:build !windows

package mouse

import (
	"errors"
	"fmt"
	"runtime"
)

var errUnsupported = fmt.Errorf("マウス操作 (%s): %w", runtime.GOOS, errors.ErrUnsupported)

// Position はこのプラットフォームでは使えません。
func Position() (int, int, error) { return 0, 0, errUnsupported }

// Click はこのプラットフォームでは使えません。
func Click(x, y int) error { return errUnsupported }

// Scroll はこのプラットフォームでは使えません。
func Scroll(x, y, clicks int) error { return errUnsupported }
