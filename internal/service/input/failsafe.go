package input

import (
	"context"
	"time"
)

// Probe сообщает, что оператор подал сигнал аварийной остановки.
type Probe func() bool

// DefaultPollInterval — период опроса проб fail-safe.
const DefaultPollInterval = 50 * time.Millisecond

// Watch опрашивает пробы до отмены ctx. При первом срабатывании вызывает
// cancel с причиной ErrAborted и onAbort (обычно — блокировка драйвера ввода).
// Возвращённый канал закрывается, когда горутина наблюдателя завершилась.
func Watch(ctx context.Context, interval time.Duration, cancel context.CancelCauseFunc, onAbort func(), probes ...Probe) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				for _, p := range probes {
					if p == nil || !p() {
						continue
					}
					if onAbort != nil {
						onAbort()
					}
					cancel(ErrAborted)
					return
				}
			}
		}
	}()
	return done
}
