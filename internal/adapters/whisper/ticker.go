package whisper

import (
	"context"
	"sync"
	"time"

	"github.com/ofarias/transcreva/internal/domain"
	"github.com/ofarias/transcreva/internal/ports"
)

// startTicker emits elapsed wall-clock time through onTick at the
// given interval. The returned stop function cancels the ticker and
// waits for the goroutine to exit, so once stop returns no further
// tick can be delivered.
func startTicker(interval time.Duration, onTick ports.ProgressFunc) (stop func()) {
	if onTick == nil {
		return func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	start := time.Now()

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				onTick(domain.FormatElapsed(time.Since(start)))
			}
		}
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}
