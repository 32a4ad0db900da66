package notify

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// SoundNotifier проигрывает короткий звук на границах фаз набора.
// С пустым путём уведомления выключены.
type SoundNotifier struct {
	logger *zap.SugaredLogger
	path   string
	ply    Player
}

func NewSoundNotifier(logger *zap.SugaredLogger, path string) *SoundNotifier {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SoundNotifier{logger: logger, path: strings.TrimSpace(path), ply: beepPlayer{}}
}

// Enabled — задан ли звуковой файл.
func (n *SoundNotifier) Enabled() bool { return n.path != "" }

// Play проигрывает звук уведомления. Ошибки логируются и возвращаются,
// чтобы вызывающий мог принять решение (например, проигнорировать).
func (n *SoundNotifier) Play(ctx context.Context) error {
	if !n.Enabled() {
		return nil
	}
	if err := context.Cause(ctx); err != nil {
		return err
	}

	f, err := os.Open(n.path)
	if err != nil {
		n.logger.Warnw("Не удалось открыть звуковой файл уведомления", "path", n.path, "error", err)
		return err
	}
	defer f.Close()

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(n.path), "."))
	if ext == "" {
		ext = "mp3" // по умолчанию
	}
	if err := n.ply.Play(ctx, ext, f); err != nil {
		n.logger.Warnw("Не удалось воспроизвести звуковое уведомление", "path", n.path, "error", err)
		return err
	}
	return nil
}
