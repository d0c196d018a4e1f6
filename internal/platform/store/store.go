// Package store opens the optional storage backends a binary asks for
// and exposes them through narrow seams repos depend on
package store

import (
	"context"
	"errors"
	"fmt"

	"sellerbot/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Store is the facade for optional backends; zero value is safe but does nothing
type Store struct {
	// Log is used by subclients; zero means a no-op logger
	Log logger.Logger

	// SQL is postgres or sqlite, nil when neither is enabled
	SQL TxRunner

	// Dialect names the backend behind SQL
	Dialect Dialect

	// CH is the clickhouse seam, nil when disabled
	CH Clickhouse

	// Redis is the cache client, nil when disabled
	Redis redis.UniversalClient

	// Bus publishes events, nil when disabled
	Bus Bus
}

// Dialect identifies the SQL backend
type Dialect string

const (
	DialectPG     Dialect = "pgsql"
	DialectSQLite Dialect = "sqlite"
)

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a write did
type CommandTag interface {
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql.
// Statements use $N placeholders on every dialect
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the seam for columnar writes and queries
type Clickhouse interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Insert(ctx context.Context, table string, rows [][]any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Bus publishes a payload on a subject
type Bus interface {
	Publish(ctx context.Context, subject string, data []byte) error
	Close() error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store with the backends enabled in cfg; the rest stay nil.
// Backends injected through options are kept as is
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Logger()

	if cfg.PG.Enabled && cfg.SQLite.Enabled {
		return nil, errors.New("store: enable either pgsql or sqlite, not both")
	}

	steps := []struct {
		on   bool
		name string
		open func() error
	}{
		{cfg.PG.Enabled && s.SQL == nil, "pgsql", func() error { return openPG(ctx, cfg, s) }},
		{cfg.SQLite.Enabled && s.SQL == nil, "sqlite", func() error { return openSQLite(ctx, cfg, s) }},
		{cfg.CH.Enabled && s.CH == nil, "clickhouse", func() error { return openCH(ctx, cfg, s) }},
		{cfg.RDS.Enabled && s.Redis == nil, "redis", func() error { return openRedis(ctx, cfg, s) }},
		{cfg.NATS.Enabled && s.Bus == nil, "nats", func() error { return openNATS(cfg, s) }},
	}
	for _, st := range steps {
		if !st.on {
			continue
		}
		if err := st.open(); err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("%s: %w", st.name, err)
		}
		s.Log.Debug().Str("backend", st.name).Msg("store backend ready")
	}
	return s, nil
}

// Guard pings every configured backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	check := func(name string, v any) {
		if p, ok := v.(Pinger); ok && p != nil {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}
	if s.SQL != nil {
		check(string(s.Dialect), s.SQL)
	}
	if s.CH != nil {
		check("clickhouse", s.CH)
	}
	if s.Redis != nil {
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if s.Bus != nil {
		check("nats", s.Bus)
	}
	return errors.Join(errs...)
}

// Close closes all initialized backends; nil backends are ignored
func (s *Store) Close(_ context.Context) error {
	var errs []error
	if s.Bus != nil {
		errs = append(errs, s.Bus.Close())
	}
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.SQL.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
