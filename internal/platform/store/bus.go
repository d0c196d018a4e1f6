package store

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"
)

// natsBus publishes on a core nats connection
type natsBus struct{ nc *nats.Conn }

func newNATSBus(nc *nats.Conn) *natsBus { return &natsBus{nc: nc} }

var _ Bus = (*natsBus)(nil)

// Publish sends data and flushes so the caller learns about a dead link
func (b *natsBus) Publish(ctx context.Context, subject string, data []byte) error {
	if err := b.nc.Publish(subject, data); err != nil {
		return err
	}
	return b.nc.FlushWithContext(ctx)
}

func (b *natsBus) Ping(ctx context.Context) error {
	if st := b.nc.Status(); st != nats.CONNECTED {
		return errors.New("nats: " + st.String())
	}
	return b.nc.FlushWithContext(ctx)
}

// Close drains pending messages before closing
func (b *natsBus) Close() error {
	if b.nc.IsClosed() {
		return nil
	}
	return b.nc.Drain()
}
