package main

import (
	"HumanTyper/internal/ai"
	"HumanTyper/internal/app/session"
	"HumanTyper/internal/config"
	"HumanTyper/internal/service/input"
	"HumanTyper/internal/service/input/desktop"
	"HumanTyper/internal/service/notify"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.NewConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 2
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() { _ = logger.Sync() }()

	text, err := cfg.LoadDocument(os.Stdin)
	if err == nil {
		err = cfg.Validate(text)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sugar.Infow(
		"Starting app",
		"DebugMode", cfg.DebugMode,
		"DryRun", cfg.DryRun,
		"Model", cfg.OpenAIModel,
		"Keymap", cfg.Keymap,
		"WritingTimeMinutes", cfg.Timing.WritingTimeMinutes,
	)

	params := session.Params{
		Config:   cfg,
		Logger:   sugar,
		Notifier: notify.NewSoundNotifier(sugar, cfg.NotificationSoundPath),
	}

	var editor *input.Editor
	if cfg.DryRun {
		editor = input.NewEditor(input.KeymapByName(cfg.Keymap))
		params.Input = editor
		params.Advisor = ai.NewStubClient("Thinking about it again, I")
	} else {
		drv := desktop.New(sugar)
		params.Input = drv
		params.OnAbort = drv.Halt
		params.Probes = func() []input.Probe {
			return []input.Probe{desktop.CornerProbe(), desktop.FocusProbe()}
		}
		oClient := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
		params.Advisor = ai.NewTextClient(&oClient, cfg.OpenAIModel, sugar)
	}

	rep, err := session.New(params).Run(ctx, text)
	if err != nil {
		if errors.Is(err, input.ErrAborted) {
			fmt.Fprintln(os.Stderr, "Остановлено оператором (fail-safe).")
			return 1
		}
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	if editor != nil {
		fmt.Println(editor.Text())
		fmt.Fprintf(os.Stderr, "\nplanned errors fixed: %d, permanent typos: %d, accent drops: %d, ghost rethinks: %d, keystrokes: %d\n",
			rep.Repaired, rep.Stats.PermanentTypos, rep.Stats.AccentDrops, rep.Stats.GhostRethinks, editor.Keystrokes())
	}
	return 0
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.LogJSON {
		zc := zap.NewProductionConfig()
		if cfg.DebugMode {
			zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
		return zc.Build()
	}
	// создаём предустановленный регистратор zap
	zc := zap.NewDevelopmentConfig()
	if !cfg.DebugMode {
		zc.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return zc.Build()
}
