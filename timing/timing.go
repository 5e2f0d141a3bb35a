// Package timing は中断可能な待機を提供します。
package timing

import (
	"context"
	"time"
)

// Sleeper は d だけ待機します。ctx が終了した場合は ctx.Err() を返します。
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Real は実時間で待機する Sleeper です。
type Real struct{}

// Sleep は time.Timer で待機します。
func (Real) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Seconds は秒数（小数可）を time.Duration に変換します。
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
