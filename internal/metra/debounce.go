package metra

import (
	"context"
	"sync"
	"time"
)

// Debouncer coalesces rapid search input into a single query issued after
// a quiet period. Each trigger supersedes any pending or in-flight one:
// the previous context is cancelled and its sequence number invalidated,
// so a stale result can never land after a newer one.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timer  *time.Timer
	seq    uint64
	cancel context.CancelFunc
	run    func(ctx context.Context, query string)
}

// NewDebouncer wires run as the debounced action. run receives a context
// that is cancelled as soon as a newer trigger fires; implementations
// must check ctx.Err() before publishing their result.
func NewDebouncer(delay time.Duration, run func(ctx context.Context, query string)) *Debouncer {
	return &Debouncer{delay: delay, run: run}
}

// Trigger registers a keystroke. The action fires once the input has been
// quiet for the configured delay.
func (d *Debouncer) Trigger(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(seq, query)
	})
}

func (d *Debouncer) fire(seq uint64, query string) {
	d.mu.Lock()
	if seq != d.seq {
		d.mu.Unlock()
		return
	}
	if d.cancel != nil {
		d.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.mu.Unlock()

	d.run(ctx, query)
}

// Stop cancels any pending trigger and in-flight action.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
