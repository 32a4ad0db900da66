package typist

import (
	"HumanTyper/internal/service/input"
	"HumanTyper/internal/service/keyboard"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Entry — запланированная ошибка: позиция слова, верный текст и то, что
// было напечатано после слова (пробел, пробел с разрывом абзаца или ничего).
type Entry struct {
	Index    int
	Word     string
	Trailing string
}

// Queue упорядочена по возрастанию Index.
type Queue []Entry

var ErrCursorBehind = errors.New("typist: каретка уже за целевым словом")

const (
	selectPause  = 400 * time.Millisecond
	settledPause = 500 * time.Millisecond
)

// Cursor отслеживает, у начала какого слова стоит каретка. Двигается только вперёд.
type Cursor struct {
	in    input.Input
	next  []string
	rng   *rand.Rand
	sleep Sleeper
	pos   int
}

func NewCursor(in input.Input, km input.Keymap, rng *rand.Rand, sleep Sleeper) *Cursor {
	return &Cursor{in: in, next: km.NextWord, rng: rng, sleep: sleep}
}

// Pos — индекс слова под кареткой.
func (c *Cursor) Pos() int { return c.pos }

// AdvanceTo шагает по одному слову до index с короткой паузой после каждого шага.
func (c *Cursor) AdvanceTo(ctx context.Context, index int) error {
	if index < c.pos {
		return fmt.Errorf("%w: позиция %d, цель %d", ErrCursorBehind, c.pos, index)
	}
	for c.pos < index {
		c.in.Hotkey(c.next...)
		c.pos++
		if err := c.sleep(ctx, seconds(uniform(c.rng, 0.1, 0.2))); err != nil {
			return err
		}
	}
	return nil
}

// passed — слово под кареткой перепечатано вместе с разделителем,
// каретка стоит у начала следующего.
func (c *Cursor) passed() { c.pos++ }

// Repairer — вторая фаза: вычитка и исправление запланированных ошибок.
type Repairer struct {
	in     input.Input
	keymap input.Keymap
	em     *keyboard.Emitter
	rng    *rand.Rand
	sleep  Sleeper
	logger *zap.SugaredLogger
}

func NewRepairer(deps Deps) *Repairer {
	deps = deps.withDefaults()
	return &Repairer{
		in:     deps.Input,
		keymap: deps.Keymap,
		em:     keyboard.NewEmitter(deps.Input, deps.Keymap),
		rng:    deps.Rand,
		sleep:  deps.Sleep,
		logger: deps.Logger,
	}
}

// Repair переносит каретку в начало документа и исправляет каждую запись
// очереди по порядку, навигируя только по словам.
func (r *Repairer) Repair(ctx context.Context, queue Queue) error {
	if len(queue) == 0 {
		return nil
	}
	r.in.Hotkey(r.keymap.DocStart...)
	cur := NewCursor(r.in, r.keymap, r.rng, r.sleep)

	for i, entry := range queue {
		if err := cur.AdvanceTo(ctx, entry.Index); err != nil {
			return err
		}
		// «О, тут опечатка»
		if err := r.sleep(ctx, seconds(uniform(r.rng, 1, 2.5))); err != nil {
			return err
		}
		r.in.Hotkey(r.keymap.SelectWord...)
		if err := r.sleep(ctx, selectPause); err != nil {
			return err
		}
		r.em.Backspace(1)
		for _, c := range entry.Word {
			r.em.Emit(c)
			if err := r.sleep(ctx, seconds(uniform(r.rng, 0.05, 0.12))); err != nil {
				return err
			}
		}
		r.retypeTrailing(entry.Trailing)
		cur.passed()
		r.logger.Debugw("Corrected word", "index", entry.Index, "word", entry.Word, "progress", fmt.Sprintf("%d/%d", i+1, len(queue)))
		if err := r.sleep(ctx, settledPause); err != nil {
			return err
		}
	}
	return nil
}

// retypeTrailing печатает разделитель, удалённый вместе со словом. Если
// выделение остановилось в конце строки, разрыв абзаца остался на месте:
// печатаем только пробел и переводим каретку к следующему слову.
func (r *Repairer) retypeTrailing(trailing string) {
	if !r.keymap.SelectStopsAtLineEnd || !strings.Contains(trailing, "\n") {
		r.em.EmitString(trailing)
		return
	}
	r.em.EmitString(strings.TrimRight(trailing, "\n"))
	r.in.Hotkey(r.keymap.NextWord...)
}
