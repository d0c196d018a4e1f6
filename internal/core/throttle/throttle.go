// Package throttle paces calls to rate limited marketplace and LLM APIs.
// Limiters only ever delay a caller; they fail only when the context ends
package throttle

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Limiter admits one call; release must be called once the call is done
type Limiter interface {
	Acquire(ctx context.Context) (func(), error)
}

// seams for tests
var (
	nowFn   = time.Now
	sleepFn = Sleep
)

// Sleep waits for d or until ctx is done
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func noop() {}

// Unlimited admits everything immediately
type Unlimited struct{}

// Acquire implements Limiter
func (Unlimited) Acquire(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return noop, nil
}

// FixedWindow admits at most n calls per window; callers past the limit
// sleep for the rest of the window
type FixedWindow struct {
	mu     sync.Mutex
	n      int
	window time.Duration
	start  time.Time
	count  int

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewFixedWindow returns a limiter admitting n calls per second
func NewFixedWindow(n int) *FixedWindow {
	return NewFixedWindowPer(n, time.Second)
}

// NewFixedWindowPer returns a limiter admitting n calls per window
func NewFixedWindowPer(n int, window time.Duration) *FixedWindow {
	if n <= 0 {
		n = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return &FixedWindow{n: n, window: window, now: nowFn, sleep: sleepFn}
}

// Acquire implements Limiter
func (w *FixedWindow) Acquire(ctx context.Context) (func(), error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w.mu.Lock()
		now := w.now()
		if elapsed := now.Sub(w.start); elapsed >= w.window || elapsed < 0 {
			w.start = now
			w.count = 0
		}
		if w.count < w.n {
			w.count++
			w.mu.Unlock()
			return noop, nil
		}
		wait := w.window - now.Sub(w.start)
		w.mu.Unlock()

		if err := w.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

// Semaphore bounds concurrent calls to n and pauses callers once the free
// slots drop to lowWater
type Semaphore struct {
	sem      *semaphore.Weighted
	free     atomic.Int64
	lowWater int64
	pause    time.Duration

	sleep func(context.Context, time.Duration) error
}

// NewSemaphore returns a concurrency limiter
func NewSemaphore(n, lowWater int, pause time.Duration) *Semaphore {
	if n <= 0 {
		n = 1
	}
	s := &Semaphore{
		sem:      semaphore.NewWeighted(int64(n)),
		lowWater: int64(lowWater),
		pause:    pause,
		sleep:    sleepFn,
	}
	s.free.Store(int64(n))
	return s
}

// Acquire implements Limiter
func (s *Semaphore) Acquire(ctx context.Context) (func(), error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	left := s.free.Add(-1)
	release := sync.OnceFunc(func() {
		s.free.Add(1)
		s.sem.Release(1)
	})
	if left <= s.lowWater && s.pause > 0 {
		if err := s.sleep(ctx, s.pause); err != nil {
			release()
			return nil, err
		}
	}
	return release, nil
}

// Free reports the currently available slots
func (s *Semaphore) Free() int { return int(s.free.Load()) }

// Every spaces calls at least interval apart
type Every struct {
	lim *rate.Limiter
}

// NewEvery returns a pacing limiter with burst 1; interval <= 0 disables pacing
func NewEvery(interval time.Duration) *Every {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Every{lim: rate.NewLimiter(limit, 1)}
}

// Acquire implements Limiter
func (e *Every) Acquire(ctx context.Context) (func(), error) {
	if err := e.lim.Wait(ctx); err != nil {
		return nil, err
	}
	return noop, nil
}
