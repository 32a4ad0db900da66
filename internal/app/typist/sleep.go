package typist

import (
	"context"
	"math/rand/v2"
	"time"
)

// Sleeper — приостановка с учётом отмены. Возвращает context.Cause при отмене.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep — реальная пауза.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return context.Cause(ctx)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	case <-t.C:
		return nil
	}
}

// NoSleep не ждёт вовсе, но уважает отмену (dry-run и тесты).
func NoSleep(ctx context.Context, _ time.Duration) error {
	return context.Cause(ctx)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// BaseDelay — средняя пауза между нажатиями, чтобы уложиться в целевое время.
func BaseDelay(chars int, writingMinutes float64) time.Duration {
	if chars <= 0 {
		return 0
	}
	return seconds(writingMinutes * 60 / (float64(chars) * 1.5))
}
