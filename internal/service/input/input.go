// Package input описывает коллаборатор ввода: отправку символов, клавиш,
// сочетаний и работу с буфером обмена в окно, находящееся в фокусе.
package input

import "errors"

// ErrAborted — причина отмены контекста при срабатывании fail-safe.
var ErrAborted = errors.New("input: аварийная остановка (fail-safe)")

// Input — примитивы ввода. Ошибок нет: после аварийной остановки драйвер
// молча игнорирует все дальнейшие вызовы.
type Input interface {
	// TypeText отправляет текст как есть (ожидается ASCII).
	TypeText(s string)
	// PressKey нажимает клавишу repeat раз (не меньше одного).
	PressKey(name string, repeat int)
	// Hotkey нажимает сочетание: все клавиши кроме последней — модификаторы.
	Hotkey(keys ...string)
	CopyToClipboard(text string)
}

// Имена клавиш в нотации robotgo.
const (
	KeyBackspace = "backspace"
	KeyEnter     = "enter"
)

// Keymap — сочетания для навигации по документу.
type Keymap struct {
	Name string
	// DocStart переносит каретку в начало документа.
	DocStart []string
	// NextWord переносит каретку к началу следующего слова.
	NextWord []string
	// SelectWord выделяет от каретки до начала следующего слова.
	SelectWord []string
	Paste      []string
	// SelectStopsAtLineEnd — выделение SelectWord у последнего слова абзаца
	// заканчивается в конце строки и не захватывает разрыв абзаца.
	SelectStopsAtLineEnd bool
}

var (
	PC = Keymap{
		Name:       "pc",
		DocStart:   []string{"ctrl", "home"},
		NextWord:   []string{"ctrl", "right"},
		SelectWord: []string{"ctrl", "shift", "right"},
		Paste:      []string{"ctrl", "v"},
	}
	Mac = Keymap{
		Name:       "mac",
		DocStart:   []string{"cmd", "up"},
		NextWord:   []string{"alt", "right"},
		SelectWord: []string{"alt", "shift", "right"},
		Paste:      []string{"cmd", "v"},
	}
)

// KeymapByName возвращает раскладку по имени, по умолчанию PC.
func KeymapByName(name string) Keymap {
	if name == Mac.Name {
		return Mac
	}
	return PC
}
