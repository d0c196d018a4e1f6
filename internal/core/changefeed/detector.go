// Package changefeed turns "list items newer than T" snapshot endpoints into a
// deduplicated stream of new items
package changefeed

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"sellerbot/internal/core/throttle"
	"sellerbot/internal/platform/logger"
)

const (
	defaultProbeLimit uint32 = 20
	defaultRingSize          = 16
)

// Fetcher returns up to limit items published at or after dateFrom (unix seconds),
// newest first
type Fetcher[T any] func(ctx context.Context, limit uint32, dateFrom uint64) ([]T, error)

// Key is the identity of an item as seen by the detector
type Key struct {
	ID          string
	PublishedAt uint64
}

// State is the lifecycle stage of a Detector
type State int32

const (
	StateIdle State = iota
	StatePriming
	StateActive
	StateFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StatePriming:
		return "priming"
	case StateActive:
		return "active"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "idle"
	}
}

// Options tunes a Detector
type Options struct {
	ProbeLimit uint32
	Interval   time.Duration
	RingSize   int
	Log        *logger.Logger
}

// Detector polls a Fetcher and emits every item it has not seen yet.
// The first poll only sets the watermark; items existing before Run are never emitted
type Detector[T any] struct {
	name  string
	fetch Fetcher[T]
	keyOf func(T) Key
	opts  Options
	log   *logger.Logger

	state atomic.Int32
	wm    atomic.Uint64
	ring  *ring
}

// New builds a detector; name labels its log lines
func New[T any](name string, fetch Fetcher[T], keyOf func(T) Key, opts Options) *Detector[T] {
	if opts.ProbeLimit == 0 {
		opts.ProbeLimit = defaultProbeLimit
	}
	if opts.RingSize <= 0 {
		opts.RingSize = defaultRingSize
	}
	log := opts.Log
	if log == nil {
		log = logger.Named("changefeed")
	}
	l := log.With().Str("detector", name).Logger()
	return &Detector[T]{
		name:  name,
		fetch: fetch,
		keyOf: keyOf,
		opts:  opts,
		log:   &l,
		ring:  newRing(opts.RingSize),
	}
}

// Name returns the label given to New
func (d *Detector[T]) Name() string { return d.name }

// State reports the current lifecycle stage
func (d *Detector[T]) State() State { return State(d.state.Load()) }

// Watermark reports the timestamp the next poll starts from
func (d *Detector[T]) Watermark() uint64 { return d.wm.Load() }

// Run polls until ctx is done or a fetch fails. It returns nil when stopped by
// ctx and the fetch error otherwise; no fetch happens after a failure.
// Run does not close out. A Detector must not be run twice
func (d *Detector[T]) Run(ctx context.Context, out chan<- T) error {
	d.state.Store(int32(StatePriming))
	batch, err := d.fetch(ctx, d.opts.ProbeLimit, 0)
	if err != nil {
		return d.stop(ctx, err)
	}
	d.sort(batch)
	if len(batch) > 0 {
		d.wm.Store(d.keyOf(batch[0]).PublishedAt + 1)
	}
	d.state.Store(int32(StateActive))
	d.log.Debug().Uint64("watermark", d.Watermark()).Int("seen", len(batch)).Msg("primed")

	for {
		if err := d.cycle(ctx, out); err != nil {
			return d.stop(ctx, err)
		}
		if ctx.Err() != nil {
			return d.stop(ctx, nil)
		}
		if err := throttle.Sleep(ctx, d.opts.Interval); err != nil {
			return d.stop(ctx, nil)
		}
	}
}

// cycle runs one active poll and emits its unseen items oldest first
func (d *Detector[T]) cycle(ctx context.Context, out chan<- T) error {
	dateFrom := d.wm.Load()
	batch, err := d.fetch(ctx, d.opts.ProbeLimit, dateFrom)
	if err != nil {
		return err
	}
	d.sort(batch)

	for i := len(batch) - 1; i >= 0; i-- {
		item := batch[i]
		k := d.keyOf(item)
		if k.PublishedAt < dateFrom {
			continue
		}
		rk := keyFor(k)
		if d.ring.has(rk) {
			continue
		}
		if k.PublishedAt > 0 && k.PublishedAt-1 > d.wm.Load() {
			d.wm.Store(k.PublishedAt - 1)
		}
		select {
		case out <- item:
		case <-ctx.Done():
			return nil
		}
		d.ring.add(rk)
	}
	return nil
}

func (d *Detector[T]) stop(ctx context.Context, err error) error {
	if err == nil || ctx.Err() != nil {
		d.state.Store(int32(StateClosed))
		return nil
	}
	d.state.Store(int32(StateFailed))
	d.log.Warn().Err(err).Msg("fetch failed, detector stopped")
	return err
}

// sort orders the batch newest first
func (d *Detector[T]) sort(batch []T) {
	slices.SortStableFunc(batch, func(a, b T) int {
		ta, tb := d.keyOf(a).PublishedAt, d.keyOf(b).PublishedAt
		switch {
		case ta > tb:
			return -1
		case ta < tb:
			return 1
		}
		return 0
	})
}
