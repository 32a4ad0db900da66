//go:build windows

package desktop

import "github.com/lxn/win"

// FocusProbe запоминает активное окно и срабатывает, когда фокус ушёл в другое окно.
func FocusProbe() func() bool {
	start := win.GetForegroundWindow()
	if start == 0 {
		return nil
	}
	return func() bool {
		cur := win.GetForegroundWindow()
		return cur != 0 && cur != start
	}
}
