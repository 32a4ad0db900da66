// Package desktop — драйвер ввода в реальное окно в фокусе (robotgo + системный буфер обмена).
package desktop

import (
	"sync/atomic"

	"github.com/atotto/clipboard"
	"github.com/go-vgo/robotgo"
	"go.uber.org/zap"
)

// Driver реализует input.Input. После Halt все вызовы игнорируются.
type Driver struct {
	logger *zap.SugaredLogger
	halted atomic.Bool
}

func New(logger *zap.SugaredLogger) *Driver {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Driver{logger: logger}
}

// Halt немедленно прекращает любой дальнейший ввод.
func (d *Driver) Halt() { d.halted.Store(true) }

func (d *Driver) TypeText(s string) {
	if d.halted.Load() || s == "" {
		return
	}
	robotgo.TypeStr(s)
}

func (d *Driver) PressKey(name string, repeat int) {
	for range max(1, repeat) {
		if d.halted.Load() {
			return
		}
		if err := robotgo.KeyTap(name); err != nil {
			d.logger.Warnw("Не удалось нажать клавишу", "key", name, "error", err)
		}
	}
}

func (d *Driver) Hotkey(keys ...string) {
	if d.halted.Load() || len(keys) == 0 {
		return
	}
	key := keys[len(keys)-1]
	mods := make([]interface{}, 0, len(keys)-1)
	for _, m := range keys[:len(keys)-1] {
		mods = append(mods, m)
	}
	if err := robotgo.KeyTap(key, mods...); err != nil {
		d.logger.Warnw("Не удалось нажать сочетание", "keys", keys, "error", err)
	}
}

func (d *Driver) CopyToClipboard(text string) {
	if d.halted.Load() {
		return
	}
	if err := clipboard.WriteAll(text); err != nil {
		d.logger.Warnw("Не удалось записать в буфер обмена", "error", err)
	}
}

// CornerProbe срабатывает, когда курсор мыши уведён в любой угол экрана.
func CornerProbe() func() bool {
	return func() bool {
		w, h := robotgo.GetScreenSize()
		x, y := robotgo.Location()
		atX := x <= 0 || x >= w-1
		atY := y <= 0 || y >= h-1
		return atX && atY
	}
}
