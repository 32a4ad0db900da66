package keyboard

import (
	"HumanTyper/internal/service/input"
	"unicode"
)

// Emitter отправляет один логический символ в коллаборатор ввода.
// Не-ASCII символы идут через буфер обмена и вставку: прямой ввод
// произвольного Unicode поддерживается не везде.
type Emitter struct {
	in    input.Input
	paste []string
}

func NewEmitter(in input.Input, km input.Keymap) *Emitter {
	return &Emitter{in: in, paste: km.Paste}
}

func (e *Emitter) Emit(r rune) {
	switch {
	case r == '\n':
		e.in.PressKey(input.KeyEnter, 1)
	case r <= unicode.MaxASCII:
		e.in.TypeText(string(r))
	default:
		e.in.CopyToClipboard(string(r))
		e.in.Hotkey(e.paste...)
	}
}

// EmitString отправляет строку посимвольно.
func (e *Emitter) EmitString(s string) {
	for _, r := range s {
		e.Emit(r)
	}
}

// Backspace стирает n символов.
func (e *Emitter) Backspace(n int) {
	if n <= 0 {
		return
	}
	e.in.PressKey(input.KeyBackspace, n)
}

// ParagraphBreak отправляет два перевода строки.
func (e *Emitter) ParagraphBreak() {
	e.in.PressKey(input.KeyEnter, 2)
}
