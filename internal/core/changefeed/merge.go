package changefeed

import (
	"context"
	"errors"
	"sync"

	"sellerbot/internal/core/feedback"

	"golang.org/x/sync/errgroup"
)

// Event is one element of the merged stream. An Event with Err set is terminal;
// Item.Kind then names the side that failed
type Event struct {
	Item feedback.Item
	Err  error
}

// streamBuffer lets a detector run a few polls ahead of a slow reader
const streamBuffer = 16

// errSideStopped cancels the other side when one detector ends without error
var errSideStopped = errors.New("changefeed: side stopped")

// Merger fans questions and reviews into one stream and couples their lifecycles
type Merger struct {
	events chan Event
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// Merge runs both detectors. The first failure or stop on either side stops the
// other; Events is closed once every goroutine has returned
func Merge(ctx context.Context, questions *Detector[feedback.Question], reviews *Detector[feedback.Review]) *Merger {
	m := &Merger{
		events: make(chan Event, streamBuffer),
		done:   make(chan struct{}),
	}
	g, gctx := errgroup.WithContext(ctx)
	side(gctx, g, m.events, questions, feedback.KindQuestion, feedback.OfQuestion)
	side(gctx, g, m.events, reviews, feedback.KindReview, feedback.OfReview)

	go func() {
		err := g.Wait()
		if errors.Is(err, errSideStopped) || errors.Is(err, context.Canceled) {
			err = nil
		}
		m.mu.Lock()
		m.err = err
		m.mu.Unlock()
		close(m.events)
		close(m.done)
	}()
	return m
}

// Events is the merged stream; cancel the ctx given to Merge to stop it
func (m *Merger) Events() <-chan Event { return m.events }

// Done is closed after both sides stopped and Events was closed
func (m *Merger) Done() <-chan struct{} { return m.done }

// Err returns the terminal error once Done is closed
func (m *Merger) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// side starts a detector and the forwarder tagging its items with kind
func side[T any](ctx context.Context, g *errgroup.Group, out chan<- Event, d *Detector[T], kind feedback.Kind, wrap func(T) feedback.Item) {
	items := make(chan T, streamBuffer)
	errc := make(chan error, 1)

	g.Go(func() error {
		errc <- d.Run(ctx, items)
		close(items)
		return nil
	})

	g.Go(func() error {
		for v := range items {
			select {
			case out <- Event{Item: wrap(v)}:
			case <-ctx.Done():
			}
		}
		err := <-errc
		if err == nil {
			return errSideStopped
		}
		select {
		case out <- Event{Item: feedback.Item{Kind: kind}, Err: err}:
		case <-ctx.Done():
		}
		return err
	})
}
