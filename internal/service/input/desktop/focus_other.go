//go:build !windows

package desktop

// FocusProbe на других платформах недоступен; остаётся только угол экрана.
func FocusProbe() func() bool { return nil }
