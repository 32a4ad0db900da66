// Package typist — движок имитации набора: первая фаза печатает документ
// с паузами, разгоном и опечатками и копит очередь запланированных ошибок,
// вторая фаза (Repairer) возвращается к ним и исправляет.
package typist

import (
	"HumanTyper/internal/ai"
	"HumanTyper/internal/config"
	"HumanTyper/internal/service/document"
	"HumanTyper/internal/service/input"
	"HumanTyper/internal/service/keyboard"
	"context"
	"math/rand/v2"
	"time"
	"unicode"

	"go.uber.org/zap"
)

const (
	minBigBreakSecs   = 30
	minSmallBreakSecs = 5
	correctionPause   = 300 * time.Millisecond
	minPlannedWordLen = 5
)

// Deps — коллабораторы движка. Пустые Rand/Sleep/Logger заменяются дефолтами.
type Deps struct {
	Input   input.Input
	Keymap  input.Keymap
	Advisor ai.Advisor // nil — без ghost rethink
	Rand    *rand.Rand
	Sleep   Sleeper
	Logger  *zap.SugaredLogger
}

func (d Deps) withDefaults() Deps {
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if d.Sleep == nil {
		d.Sleep = Sleep
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop().Sugar()
	}
	return d
}

// Engine — первая фаза (черновик).
type Engine struct {
	cfg     config.Timing
	table   DeviationTable
	em      *keyboard.Emitter
	advisor ai.Advisor
	rng     *rand.Rand
	sleep   Sleeper
	logger  *zap.SugaredLogger

	base     time.Duration
	momentum Momentum
	stats    Stats
}

func NewEngine(cfg config.Timing, deps Deps) *Engine {
	deps = deps.withDefaults()
	return &Engine{
		cfg:     cfg,
		table:   NewDeviationTable(cfg),
		em:      keyboard.NewEmitter(deps.Input, deps.Keymap),
		advisor: deps.Advisor,
		rng:     deps.Rand,
		sleep:   deps.Sleep,
		logger:  deps.Logger,
	}
}

// Momentum возвращает текущее значение разгона.
func (e *Engine) Momentum() float64 { return e.momentum.Value() }

func (e *Engine) Stats() Stats { return e.stats }

// Run печатает документ и возвращает очередь исправлений для второй фазы.
// При отмене ctx возвращает уже собранную очередь и причину отмены.
func (e *Engine) Run(ctx context.Context, doc *document.Document) (Queue, error) {
	e.base = BaseDelay(doc.CharCount(), e.cfg.WritingTimeMinutes)
	e.momentum.Reset()
	e.stats = Stats{}

	var queue Queue
	lastWord := doc.WordCount() - 1

	for pi, p := range doc.Paragraphs {
		if pi > 0 {
			e.em.ParagraphBreak()
			e.momentum.Reset()
			if e.chance(e.cfg.BigBreakChance) {
				d := seconds(uniform(e.rng, minBigBreakSecs, e.cfg.MaxBigBreakSecs))
				e.logger.Infow("Taking a big break", "duration", d.Round(time.Second).String(), "paragraph", pi)
				e.stats.BigBreaks++
				if err := e.sleep(ctx, d); err != nil {
					return queue, err
				}
			}
		}

		lastSentence := len(p.Sentences) - 1
		for si, s := range p.Sentences {
			if si > 0 && e.chance(e.cfg.SmallBreakChance) {
				d := seconds(uniform(e.rng, minSmallBreakSecs, e.cfg.MaxSmallBreakSecs))
				e.logger.Infow("Thinking pause", "duration", d.Round(time.Second).String())
				e.stats.SmallBreaks++
				if err := e.sleep(ctx, d); err != nil {
					return queue, err
				}
			}

			if e.chance(e.cfg.GhostSentenceChance) {
				if err := e.ghostRethink(ctx, s.Text); err != nil {
					return queue, err
				}
			}

			for wi, w := range s.Words {
				typed := w.Text
				if w.Len() >= minPlannedWordLen && e.chance(e.cfg.PlannedErrorRate) {
					typed = swapLastTwo(w.Text)
					entry := Entry{Index: w.Index, Word: w.Text, Trailing: trailing(w.Index == lastWord, si == lastSentence && wi == len(s.Words)-1)}
					queue = append(queue, entry)
					e.stats.PlannedErrors++
					e.logger.Debugw("Planned error", "index", w.Index, "word", w.Text, "typed", typed)
				}

				for _, r := range typed {
					if err := e.typeRune(ctx, r); err != nil {
						return queue, err
					}
				}
				e.stats.Words++

				if w.Index != lastWord {
					e.em.Emit(' ')
					e.momentum.Decay()
					if err := e.sleep(ctx, e.scaled(0.5, 1.0)); err != nil {
						return queue, err
					}
				}
			}

			if err := e.sleep(ctx, seconds(uniform(e.rng, 1, 3))); err != nil {
				return queue, err
			}
		}
	}
	return queue, nil
}

// typeRune набирает один символ с возможным отклонением и выдерживает паузу.
func (e *Engine) typeRune(ctx context.Context, r rune) error {
	delay := e.scaled(0.8, 1.2)
	kind := e.table.Decide(e.rng.Float64(), r)

	switch kind {
	case ShiftMiss:
		if err := e.fixAfter(ctx, unicode.ToLower(r), r); err != nil {
			return err
		}
		e.momentum.Reset()
	case CorrectedTypo:
		if err := e.fixAfter(ctx, keyboard.Typo(e.rng, r), r); err != nil {
			return err
		}
		e.momentum.Reset()
	case PermanentTypo:
		e.em.Emit(keyboard.Typo(e.rng, r))
	case AccentDrop:
		plain, _ := keyboard.StripAccent(r)
		e.em.Emit(plain)
		e.momentum.Bump()
	default:
		e.em.Emit(r)
		e.momentum.Bump()
	}
	e.stats.count(kind)

	if document.IsTerminator(r) {
		e.momentum.Reset()
	}
	return e.sleep(ctx, delay)
}

// fixAfter печатает неверный символ, замечает ошибку и исправляет её.
func (e *Engine) fixAfter(ctx context.Context, wrong, right rune) error {
	e.em.Emit(wrong)
	if err := e.sleep(ctx, correctionPause); err != nil {
		return err
	}
	e.em.Backspace(1)
	e.em.Emit(right)
	return nil
}

// ghostRethink печатает часть альтернативного начала предложения и стирает его.
func (e *Engine) ghostRethink(ctx context.Context, sentence string) error {
	if e.advisor == nil {
		return nil
	}
	alt, ok := e.advisor.SuggestAlternativeStart(ctx, sentence)
	if !ok {
		e.logger.Debugw("No rethink suggestion", "sentence", sentence)
		return context.Cause(ctx)
	}
	runes := []rune(alt)
	prefix := runes[:int(float64(len(runes))*uniform(e.rng, 0.4, 0.7))]
	if len(prefix) == 0 {
		return nil
	}
	e.stats.GhostRethinks++
	e.logger.Debugw("Ghost rethink", "typed", string(prefix))

	for _, r := range prefix {
		e.em.Emit(r)
		if err := e.sleep(ctx, seconds(uniform(e.rng, 0.1, 0.2))); err != nil {
			return err
		}
	}
	if err := e.sleep(ctx, seconds(uniform(e.rng, 1.5, 3))); err != nil {
		return err
	}
	for range prefix {
		e.em.Backspace(1)
		if err := e.sleep(ctx, seconds(uniform(e.rng, 0.04, 0.06))); err != nil {
			return err
		}
	}
	return nil
}

// scaled — базовая задержка с учётом разгона и случайного множителя [lo, hi).
func (e *Engine) scaled(lo, hi float64) time.Duration {
	return time.Duration(float64(e.base) / e.momentum.Value() * uniform(e.rng, lo, hi))
}

func (e *Engine) chance(p float64) bool {
	return p > 0 && e.rng.Float64() < p
}

// swapLastTwo меняет местами два последних символа слова.
func swapLastTwo(w string) string {
	r := []rune(w)
	if len(r) < 2 {
		return w
	}
	r[len(r)-1], r[len(r)-2] = r[len(r)-2], r[len(r)-1]
	return string(r)
}

// trailing — то, что движок напечатал после слова: пробел, пробел и разрыв
// абзаца, или ничего для последнего слова документа. Вычитка удаляет его
// вместе со словом, если SelectWord захватывает разрыв абзаца; при
// Keymap.SelectStopsAtLineEnd разрыв остаётся в тексте (см. retypeTrailing).
func trailing(lastInDoc, lastInParagraph bool) string {
	switch {
	case lastInDoc:
		return ""
	case lastInParagraph:
		return " " + document.ParagraphBreak
	default:
		return " "
	}
}
