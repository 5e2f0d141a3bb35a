//go:build !windows

package focus

// Titles はこのプラットフォームでは常に空です。
func Titles() []string { return nil }

// Activate はこのプラットフォームでは常に false を返します。
func Activate(title string) bool { return false }
