//go:build !windows

package ui

import (
	"errors"
	"fmt"
	"runtime"

	"KindleShot/probe"
)

// RunProbeWindow はこのプラットフォームでは使えません。
func RunProbeWindow(p probe.Pointer, s probe.Sampler) error {
	return fmt.Errorf("GUI版 (%s): %w", runtime.GOOS, errors.ErrUnsupported)
}
