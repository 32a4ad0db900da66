package input

import (
	"slices"
	"strings"
	"sync"
	"unicode"
)

// Editor — текстовое поле в памяти, реализующее Input. Используется в dry-run
// и в тестах: каретка, выделение, навигация по словам, backspace, вставка.
type Editor struct {
	keymap Keymap

	mu        sync.Mutex
	buf       []rune
	caret     int
	anchor    int // начало выделения; -1 — выделения нет
	clipboard string
	strokes   int
}

func NewEditor(km Keymap) *Editor {
	return &Editor{keymap: km, anchor: -1}
}

// Text возвращает текущее содержимое поля.
func (e *Editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.buf)
}

// Caret возвращает позицию каретки в рунах.
func (e *Editor) Caret() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.caret
}

// Keystrokes — число отправленных нажатий и сочетаний.
func (e *Editor) Keystrokes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.strokes
}

func (e *Editor) TypeText(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range s {
		e.strokes++
		e.insert(r)
	}
}

func (e *Editor) PressKey(name string, repeat int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for range max(1, repeat) {
		e.strokes++
		e.press(name)
	}
}

func (e *Editor) Hotkey(keys ...string) {
	if len(keys) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.strokes++

	switch {
	case slices.Equal(keys, e.keymap.Paste):
		e.deleteSelection()
		for _, r := range e.clipboard {
			e.insert(r)
		}
	case slices.Equal(keys, e.keymap.DocStart):
		e.anchor = -1
		e.caret = 0
	case slices.Equal(keys, e.keymap.NextWord):
		e.anchor = -1
		e.caret = e.nextWordStart(e.caret)
	case slices.Equal(keys, e.keymap.SelectWord):
		if e.anchor < 0 {
			e.anchor = e.caret
		}
		e.caret = e.selectEnd(e.caret)
	}
}

func (e *Editor) CopyToClipboard(text string) {
	e.mu.Lock()
	e.clipboard = text
	e.mu.Unlock()
}

func (e *Editor) press(name string) {
	switch strings.ToLower(name) {
	case KeyBackspace:
		if e.deleteSelection() || e.caret == 0 {
			return
		}
		e.buf = slices.Delete(e.buf, e.caret-1, e.caret)
		e.caret--
	case "delete":
		if e.deleteSelection() || e.caret == len(e.buf) {
			return
		}
		e.buf = slices.Delete(e.buf, e.caret, e.caret+1)
	case KeyEnter:
		e.insert('\n')
	case "space":
		e.insert(' ')
	case "left":
		e.anchor = -1
		e.caret = max(0, e.caret-1)
	case "right":
		e.anchor = -1
		e.caret = min(len(e.buf), e.caret+1)
	case "home":
		e.anchor = -1
		e.caret = 0
	case "end":
		e.anchor = -1
		e.caret = len(e.buf)
	default:
		// Одиночная печатная клавиша, например "a"
		if r := []rune(name); len(r) == 1 {
			e.insert(r[0])
		}
	}
}

// insert заменяет выделение (если есть) и вставляет символ в позицию каретки.
func (e *Editor) insert(r rune) {
	e.deleteSelection()
	e.buf = slices.Insert(e.buf, e.caret, r)
	e.caret++
}

func (e *Editor) deleteSelection() bool {
	if e.anchor < 0 || e.anchor == e.caret {
		e.anchor = -1
		return false
	}
	from, to := min(e.anchor, e.caret), max(e.anchor, e.caret)
	e.buf = slices.Delete(e.buf, from, to)
	e.caret = from
	e.anchor = -1
	return true
}

// nextWordStart пропускает текущее слово и пробельные символы за ним.
func (e *Editor) nextWordStart(pos int) int {
	for pos < len(e.buf) && !unicode.IsSpace(e.buf[pos]) {
		pos++
	}
	for pos < len(e.buf) && unicode.IsSpace(e.buf[pos]) {
		pos++
	}
	return pos
}

// selectEnd — конец выделения до следующего слова. С SelectStopsAtLineEnd
// выделение не переходит через перевод строки.
func (e *Editor) selectEnd(pos int) int {
	if !e.keymap.SelectStopsAtLineEnd {
		return e.nextWordStart(pos)
	}
	for pos < len(e.buf) && !unicode.IsSpace(e.buf[pos]) {
		pos++
	}
	for pos < len(e.buf) && unicode.IsSpace(e.buf[pos]) && e.buf[pos] != '\n' {
		pos++
	}
	return pos
}
