package typist

import (
	"HumanTyper/internal/ai"
	"HumanTyper/internal/config"
	"HumanTyper/internal/service/document"
	"HumanTyper/internal/service/input"
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const essay = `Typing simulators reproduce human cadence. Writers pause between thoughts, hesitate before difficult words, and return later to polish their drafts.

Every paragraph begins slowly! Momentum builds as familiar phrases flow through quick fingers. Sometimes a sentence starts badly and gets rewritten.

Café owners in Montréal serve crème brûlée. Does anybody remember écoles françaises?`

// quiet — все вероятности нулевые.
func quiet() config.Timing {
	return config.Timing{WritingTimeMinutes: 1, MaxSmallBreakSecs: 30, MaxBigBreakSecs: 120}
}

func seeded(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }

// typedText — то, что печатает движок без отклонений: пробел после каждого
// слова кроме последнего, двойной перевод строки между абзацами.
func typedText(doc *document.Document) string {
	return strings.ReplaceAll(doc.Text(), document.ParagraphBreak, " "+document.ParagraphBreak)
}

type harness struct {
	editor *input.Editor
	engine *Engine
	deps   Deps
	sleeps []time.Duration
	// momenta[i] — разгон в момент i-й паузы
	momenta []float64
}

func newHarness(t *testing.T, timing config.Timing, seed uint64, advisor ai.Advisor) *harness {
	t.Helper()
	h := &harness{editor: input.NewEditor(input.PC)}
	h.deps = Deps{
		Input:   h.editor,
		Keymap:  input.PC,
		Advisor: advisor,
		Rand:    seeded(seed),
		Sleep: func(ctx context.Context, d time.Duration) error {
			h.sleeps = append(h.sleeps, d)
			if h.engine != nil {
				m := h.engine.Momentum()
				h.momenta = append(h.momenta, m)
				require.GreaterOrEqual(t, m, MinMomentum)
				require.LessOrEqual(t, m, MaxMomentum)
			}
			return context.Cause(ctx)
		},
	}
	h.engine = NewEngine(timing, h.deps)
	return h
}

func TestRunDeviationFreeBaseline(t *testing.T) {
	h := newHarness(t, quiet(), 1, nil)
	doc := document.Parse("Hi there. How are you?")

	queue, err := h.engine.Run(context.Background(), doc)
	require.NoError(t, err)

	assert.Empty(t, queue)
	assert.Equal(t, "Hi there. How are you?", h.editor.Text())
	assert.Equal(t, 1.0, h.engine.Momentum())
	assert.Zero(t, h.engine.Stats().BigBreaks+h.engine.Stats().SmallBreaks)
	assert.Equal(t, 18, h.engine.Stats().Characters)
}

func TestRunNormalizesSpacing(t *testing.T) {
	h := newHarness(t, quiet(), 1, nil)

	_, err := h.engine.Run(context.Background(), document.Parse("one   two\nthree"))
	require.NoError(t, err)
	assert.Equal(t, "one two three", h.editor.Text())
}

func TestRunParagraphBreaks(t *testing.T) {
	timing := quiet()
	timing.BigBreakChance = 1
	h := newHarness(t, timing, 7, nil)
	doc := document.Parse("First paragraph.\n\nSecond one.\n\nThird.")

	_, err := h.engine.Run(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "First paragraph. \n\nSecond one. \n\nThird.", h.editor.Text())
	assert.Equal(t, 2, h.engine.Stats().BigBreaks)

	var big int
	for _, d := range h.sleeps {
		if d >= 30*time.Second {
			assert.LessOrEqual(t, d, 120*time.Second)
			big++
		}
	}
	assert.Equal(t, 2, big)
}

func TestRunSmallBreaksSkipFirstSentence(t *testing.T) {
	timing := quiet()
	timing.SmallBreakChance = 1
	h := newHarness(t, timing, 3, nil)

	_, err := h.engine.Run(context.Background(), document.Parse("One. Two. Three.\n\nFour. Five."))
	require.NoError(t, err)
	assert.Equal(t, 3, h.engine.Stats().SmallBreaks)
}

func TestRunPlannedErrorsQueueEveryEligibleWord(t *testing.T) {
	timing := quiet()
	timing.PlannedErrorRate = 1
	h := newHarness(t, timing, 11, nil)
	doc := document.Parse("Lovely weather today. Absolutely wonderful afternoon.\n\nHappy walkers everywhere.")

	queue, err := h.engine.Run(context.Background(), doc)
	require.NoError(t, err)

	require.Len(t, queue, doc.WordCount())
	for i, e := range queue {
		assert.Equal(t, i, e.Index)
		if i > 0 {
			assert.Greater(t, e.Index, queue[i-1].Index)
		}
	}
	fields := strings.Fields(h.editor.Text())
	assert.Equal(t, "Lovley", fields[0])
	assert.Equal(t, "toda.y", fields[2])
	assert.Equal(t, "Lovely", queue[0].Word)
	assert.Equal(t, " \n\n", queue[5].Trailing)
	assert.Empty(t, queue[len(queue)-1].Trailing)
	assert.Equal(t, " ", queue[0].Trailing)
}

func TestRunShortWordsNeverPlanned(t *testing.T) {
	timing := quiet()
	timing.PlannedErrorRate = 1
	h := newHarness(t, timing, 5, nil)

	queue, err := h.engine.Run(context.Background(), document.Parse("I am at the zoo, okay?"))
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestRunShiftMissIsCorrected(t *testing.T) {
	timing := quiet()
	timing.ShiftMissRate = 1
	h := newHarness(t, timing, 2, nil)

	_, err := h.engine.Run(context.Background(), document.Parse("Hello World"))
	require.NoError(t, err)

	assert.Equal(t, "Hello World", h.editor.Text())
	assert.Equal(t, 2, h.engine.Stats().ShiftMisses)
	assert.Contains(t, h.sleeps, correctionPause)
}

func TestRunCorrectedTyposLeaveTextIntact(t *testing.T) {
	timing := quiet()
	timing.CorrectedTypoRate = 1
	h := newHarness(t, timing, 4, nil)

	_, err := h.engine.Run(context.Background(), document.Parse("quick brown fox, 42 times."))
	require.NoError(t, err)

	assert.Equal(t, "quick brown fox, 42 times.", h.editor.Text())
	assert.Equal(t, 18, h.engine.Stats().CorrectedTypos)
}

func TestRunPermanentTyposStay(t *testing.T) {
	timing := quiet()
	timing.PermanentTypoRate = 1
	h := newHarness(t, timing, 9, nil)

	_, err := h.engine.Run(context.Background(), document.Parse("ab 7"))
	require.NoError(t, err)

	got := []rune(h.editor.Text())
	require.Len(t, got, 4)
	assert.Contains(t, "qwsz", string(got[0]))
	assert.Contains(t, "vghn", string(got[1]))
	assert.Equal(t, " 7", string(got[2:]))
	assert.Equal(t, 2, h.engine.Stats().PermanentTypos)
}

func TestRunAccentDrop(t *testing.T) {
	timing := quiet()
	timing.AccentDropRate = 1
	h := newHarness(t, timing, 6, nil)

	_, err := h.engine.Run(context.Background(), document.Parse("Déjà vu à Montréal"))
	require.NoError(t, err)

	assert.Equal(t, "Deja vu a Montreal", h.editor.Text())
	assert.Equal(t, 4, h.engine.Stats().AccentDrops)
}

func TestRunGhostRethinkIsErased(t *testing.T) {
	timing := quiet()
	timing.GhostSentenceChance = 1
	h := newHarness(t, timing, 8, ai.NewStubClient("Honestly, what I wanted to say"))
	doc := document.Parse("The plan worked. Nobody expected that.")

	_, err := h.engine.Run(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "The plan worked. Nobody expected that.", h.editor.Text())
	assert.Equal(t, 2, h.engine.Stats().GhostRethinks)
}

func TestRunGhostRethinkWithoutSuggestion(t *testing.T) {
	timing := quiet()
	timing.GhostSentenceChance = 1
	h := newHarness(t, timing, 8, ai.NewStubClient(""))

	_, err := h.engine.Run(context.Background(), document.Parse("Still fine."))
	require.NoError(t, err)

	assert.Equal(t, "Still fine.", h.editor.Text())
	assert.Zero(t, h.engine.Stats().GhostRethinks)
}

func TestRunMomentumStaysInRange(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		timing := config.DefaultTiming()
		timing.ShiftMissRate = 0.2
		timing.CorrectedTypoRate = 0.2
		h := newHarness(t, timing, seed, ai.NewStubClient("Perhaps it would be better to"))

		_, err := h.engine.Run(context.Background(), document.Parse(essay))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, h.engine.Momentum(), MinMomentum)
		assert.LessOrEqual(t, h.engine.Momentum(), MaxMomentum)
	}
}

func TestRunReturnsCauseOnAbort(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	ed := input.NewEditor(input.PC)
	calls := 0
	eng := NewEngine(quiet(), Deps{
		Input:  ed,
		Keymap: input.PC,
		Rand:   seeded(1),
		Sleep: func(ctx context.Context, _ time.Duration) error {
			calls++
			if calls == 3 {
				cancel(input.ErrAborted)
			}
			return context.Cause(ctx)
		},
	})

	_, err := eng.Run(ctx, document.Parse("Stop right here please."))
	require.ErrorIs(t, err, input.ErrAborted)
	assert.Equal(t, "Sto", ed.Text())
}

// ratioWithin проверяет d/(base/m) в [lo, hi] с поправкой на усечение до наносекунд.
func ratioWithin(t *testing.T, d, base time.Duration, m, lo, hi float64, msgAndArgs ...any) {
	t.Helper()
	r := float64(d) * m / float64(base)
	assert.GreaterOrEqual(t, r, lo-1e-6, msgAndArgs...)
	assert.LessOrEqual(t, r, hi+1e-6, msgAndArgs...)
}

func TestRunDelaysFollowMomentum(t *testing.T) {
	h := newHarness(t, quiet(), 3, nil)
	doc := document.Parse("abcd efgh")
	base := BaseDelay(doc.CharCount(), quiet().WritingTimeMinutes)

	_, err := h.engine.Run(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, h.sleeps, 10)

	tests := []struct {
		name     string
		momentum float64 // разгон, от которого считается пауза
		lo, hi   float64
	}{
		{"a", 1.0, 0.8, 1.2},
		{"b", 1.1, 0.8, 1.2},
		{"c", 1.2, 0.8, 1.2},
		{"d", 1.3, 0.8, 1.2},
		{"пробел после затухания", 1.0, 0.5, 1.0},
		{"e", 1.0, 0.8, 1.2},
		{"f", 1.1, 0.8, 1.2},
		{"g", 1.2, 0.8, 1.2},
		{"h", 1.3, 0.8, 1.2},
	}
	for i, tc := range tests {
		ratioWithin(t, h.sleeps[i], base, tc.momentum, tc.lo, tc.hi, tc.name)
	}
	assert.InDelta(t, 1.0, h.momenta[4], 1e-9, "затухание после пробела")

	last := h.sleeps[len(h.sleeps)-1]
	assert.GreaterOrEqual(t, last, time.Second, "пауза в конце предложения")
	assert.LessOrEqual(t, last, 3*time.Second, "пауза в конце предложения")
}

func TestRunDelayBoundsAcrossSeeds(t *testing.T) {
	doc := document.Parse("Quick brown foxes jump. Lazy dogs sleep soundly!\n\nMornings arrive early.")
	base := BaseDelay(doc.CharCount(), quiet().WritingTimeMinutes)
	lastWord := doc.WordCount() - 1

	for seed := uint64(1); seed <= 10; seed++ {
		h := newHarness(t, quiet(), seed, nil)
		_, err := h.engine.Run(context.Background(), doc)
		require.NoError(t, err)

		i := 0
		var before float64 // разгон перед очередным символом
		for _, p := range doc.Paragraphs {
			before = MinMomentum
			for _, s := range p.Sentences {
				for _, w := range s.Words {
					for range w.Text {
						ratioWithin(t, h.sleeps[i], base, before, 0.8, 1.2, "seed %d sleep %d", seed, i)
						before = h.momenta[i]
						i++
					}
					if w.Index != lastWord {
						ratioWithin(t, h.sleeps[i], base, h.momenta[i], 0.5, 1.0, "seed %d sleep %d", seed, i)
						before = h.momenta[i]
						i++
					}
				}
				assert.GreaterOrEqual(t, h.sleeps[i], time.Second, "seed %d sleep %d", seed, i)
				assert.LessOrEqual(t, h.sleeps[i], 3*time.Second, "seed %d sleep %d", seed, i)
				before = h.momenta[i]
				i++
			}
		}
		assert.Len(t, h.sleeps, i, "seed %d", seed)
	}
}

func TestRunGhostRethinkPacing(t *testing.T) {
	timing := quiet()
	timing.GhostSentenceChance = 1
	h := newHarness(t, timing, 4, ai.NewStubClient("abcdefghij"))

	_, err := h.engine.Run(context.Background(), document.Parse("Hi."))
	require.NoError(t, err)
	require.Equal(t, "Hi.", h.editor.Text())
	require.Equal(t, 1, h.engine.Stats().GhostRethinks)

	// n символов, пауза, n backspace, затем 3 символа и конец предложения
	n := (len(h.sleeps) - 1 - 4) / 2
	require.GreaterOrEqual(t, n, 4)
	require.LessOrEqual(t, n, 6)
	require.Len(t, h.sleeps, 2*n+1+4)

	for _, d := range h.sleeps[:n] {
		assert.GreaterOrEqual(t, d, 100*time.Millisecond)
		assert.LessOrEqual(t, d, 200*time.Millisecond)
	}
	pause := h.sleeps[n]
	assert.GreaterOrEqual(t, pause, 1500*time.Millisecond)
	assert.LessOrEqual(t, pause, 3*time.Second)
	for _, d := range h.sleeps[n+1 : 2*n+1] {
		assert.GreaterOrEqual(t, d, 40*time.Millisecond)
		assert.LessOrEqual(t, d, 60*time.Millisecond)
	}
}

func TestBaseDelay(t *testing.T) {
	assert.Equal(t, 2*time.Second, BaseDelay(900, 45))
	assert.Zero(t, BaseDelay(0, 45))
}

func TestSwapLastTwo(t *testing.T) {
	assert.Equal(t, "helol", swapLastTwo("hello"))
	assert.Equal(t, "caéf", swapLastTwo("café"))
	assert.Equal(t, "a", swapLastTwo("a"))
	// повтор в конце слова даёт «ошибку» без изменений
	assert.Equal(t, "coffee", swapLastTwo("coffee"))
}
