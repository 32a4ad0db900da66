package session

import (
	"HumanTyper/internal/ai"
	"HumanTyper/internal/app/typist"
	"HumanTyper/internal/config"
	"HumanTyper/internal/service/document"
	"HumanTyper/internal/service/input"
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Notifier — звуковой сигнал на границе фаз.
type Notifier interface {
	Play(ctx context.Context) error
}

type Params struct {
	Config   *config.Config
	Input    input.Input
	Advisor  ai.Advisor
	Notifier Notifier
	Logger   *zap.SugaredLogger
	// Sleep по умолчанию typist.Sleep, в DryRun — typist.NoSleep
	Sleep typist.Sleeper
	// Probes вызывается после отсчёта на фокусировку: пробы fail-safe
	// снимают состояние (например, активное окно) в момент старта набора.
	Probes  func() []input.Probe
	OnAbort func()
}

// Report — итог сессии.
type Report struct {
	Stats    typist.Stats
	Queue    typist.Queue
	Repaired int
	Duration time.Duration
}

// Session проводит полный сеанс: отсчёт -> черновик -> пауза -> вычитка.
type Session struct {
	cfg      *config.Config
	deps     typist.Deps
	notifier Notifier
	logger   *zap.SugaredLogger
	probes   func() []input.Probe
	onAbort  func()
}

func New(p Params) *Session {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = typist.Sleep
		if p.Config.DryRun {
			sleep = typist.NoSleep
		}
	}
	km := input.KeymapByName(p.Config.Keymap)
	km.SelectStopsAtLineEnd = p.Config.SelectStopsAtEOL
	seed := p.Config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Session{
		cfg: p.Config,
		deps: typist.Deps{
			Input:   p.Input,
			Keymap:  km,
			Advisor: p.Advisor,
			Rand:    rand.New(rand.NewPCG(seed, seed>>1|1)),
			Sleep:   sleep,
			Logger:  logger,
		},
		notifier: p.Notifier,
		logger:   logger,
		probes:   p.Probes,
		onAbort:  p.OnAbort,
	}
}

// Run печатает документ и исправляет запланированные ошибки. Вторая фаза
// начинается только после полного завершения первой.
func (s *Session) Run(ctx context.Context, text string) (Report, error) {
	var rep Report
	start := time.Now()
	doc := document.Parse(text)

	s.logger.Infow("Focus the target window", "startDelay", s.cfg.StartDelay.String(),
		"words", doc.WordCount(), "paragraphs", len(doc.Paragraphs),
		"baseDelay", typist.BaseDelay(doc.CharCount(), s.cfg.Timing.WritingTimeMinutes).String())
	if err := s.deps.Sleep(ctx, s.cfg.StartDelay); err != nil {
		s.logAbort("countdown", err)
		return rep, err
	}

	if s.cfg.FailSafe && s.probes != nil {
		var cancel context.CancelCauseFunc
		ctx, cancel = context.WithCancelCause(ctx)
		done := input.Watch(ctx, input.DefaultPollInterval, cancel, s.onAbort, s.probes()...)
		defer func() {
			cancel(nil)
			<-done
		}()
	}

	// Фаза 1: черновик
	engine := typist.NewEngine(s.cfg.Timing, s.deps)
	queue, err := engine.Run(ctx, doc)
	rep.Stats, rep.Queue = engine.Stats(), queue
	if err != nil {
		s.logAbort("draft", err)
		return rep, err
	}
	s.logger.Infow("Draft finished",
		"chars", rep.Stats.Characters,
		"plannedErrors", rep.Stats.PlannedErrors,
		"permanentTypos", rep.Stats.PermanentTypos,
		"ghostRethinks", rep.Stats.GhostRethinks,
		"elapsed", time.Since(start).Round(time.Second).String())
	s.notify(ctx)

	// Фаза 2: вычитка
	s.logger.Infow("Reviewing and correcting", "items", len(queue), "settle", s.cfg.RepassDelay.String())
	if len(queue) > 0 {
		if err := s.deps.Sleep(ctx, s.cfg.RepassDelay); err != nil {
			s.logAbort("repass", err)
			return rep, err
		}
		if err := typist.NewRepairer(s.deps).Repair(ctx, queue); err != nil {
			s.logAbort("repass", err)
			return rep, err
		}
	}
	rep.Repaired = len(queue)
	rep.Duration = time.Since(start)
	s.notify(ctx)
	s.logger.Infow("Document finalized", "duration", rep.Duration.Round(time.Second).String())
	return rep, nil
}

func (s *Session) notify(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Play(ctx); err != nil {
		s.logger.Debugw("Notification skipped", "error", err)
	}
}

func (s *Session) logAbort(phase string, err error) {
	s.logger.Errorw("Typing stopped", "phase", phase, "error", err)
}
