// Package heartbeat provides the periodic trigger that drives session ticks
// in headless mode. The heartbeat never touches session state itself: it
// only delivers beats on a channel to whichever goroutine owns the engine.
package heartbeat

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/stepcook/internal/logger"
)

// Option configures the heartbeat.
type Option func(*Heartbeat)

// WithInterval sets how often a beat is delivered.
func WithInterval(d time.Duration) Option {
	return func(h *Heartbeat) {
		if d > 0 {
			h.interval = d
		}
	}
}

// Heartbeat is a restartable ticker. Beats are dropped when the consumer
// lags; the engine measures wall-clock time between ticks, so a dropped
// beat only delays the next update.
type Heartbeat struct {
	log      *logger.Logger
	interval time.Duration
	beats    chan time.Time

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a stopped heartbeat.
func New(log *logger.Logger, opts ...Option) *Heartbeat {
	h := &Heartbeat{
		log:      log,
		interval: time.Second,
		beats:    make(chan time.Time, 1),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// C returns the channel beats are delivered on.
func (h *Heartbeat) C() <-chan time.Time {
	return h.beats
}

// Interval returns the configured beat interval.
func (h *Heartbeat) Interval() time.Duration {
	return h.interval
}

// Running reports whether the heartbeat is currently delivering beats.
func (h *Heartbeat) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

// Start begins delivering beats. Non-blocking.
func (h *Heartbeat) Start(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		h.log.Warn("heartbeat already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.done = make(chan struct{})
	h.running = true

	go h.loop(childCtx, h.done)

	h.log.Debug("heartbeat started (interval=%s)", h.interval)
}

// Stop halts beat delivery and waits for the ticker goroutine to exit.
// No beat is sent after Stop returns, though one may still be buffered.
func (h *Heartbeat) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.cancel()
	done := h.done
	h.running = false
	h.mu.Unlock()

	<-done
	h.log.Debug("heartbeat stopped")
}

// Drain discards a pending beat, if any.
func (h *Heartbeat) Drain() {
	select {
	case <-h.beats:
	default:
	}
}

func (h *Heartbeat) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			select {
			case h.beats <- t:
			default:
				// Consumer is behind; the next tick covers the gap.
			}
		}
	}
}
