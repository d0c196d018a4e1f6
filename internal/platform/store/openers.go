package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	chx "sellerbot/internal/platform/store/ch"
	"sellerbot/internal/platform/store/pg"
	"sellerbot/internal/platform/store/sqltrace"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	_ "modernc.org/sqlite"
)

// openPG opens the pool, waits for it with backoff, migrates, then publishes the adapter
func openPG(ctx context.Context, cfg Config, s *Store) error {
	var tracer sqltrace.QueryTracer
	if cfg.PG.LogSQL {
		tracer = sqltrace.Tracer(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		Slow:     cfg.PG.Slow,
	}, tracer, nil)
	if err != nil {
		return err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = 20
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	var lastErr error
	backoff := 150 * time.Millisecond
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(toCtx)
		cancel()
		if lastErr == nil {
			break
		}
		select {
		case <-ctx.Done():
			p.Close()
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, 2*time.Second)
	}
	if lastErr != nil {
		p.Close()
		return fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
	}

	if cfg.PG.Migrate {
		version, err := MigratePG(p.Pool)
		if err != nil {
			p.Close()
			return err
		}
		s.Log.Info().Uint("version", version).Msg("postgres schema migrated")
	}

	s.SQL = newPGAdapter(p)
	s.Dialect = DialectPG
	return nil
}

// openSQLite opens modernc sqlite, enables WAL for files and migrates the schema
func openSQLite(ctx context.Context, cfg Config, s *Store) error {
	path := cfg.SQLite.Path
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if path != ":memory:" {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return err
		}
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return err
	}
	if _, err := MigrateSQLite(db); err != nil {
		_ = db.Close()
		return err
	}

	var tracer sqltrace.QueryTracer
	if cfg.SQLite.LogSQL {
		tracer = sqltrace.Tracer(s.Log)
	}
	s.SQL = newSQLiteAdapter(db, tracer, cfg.SQLite.Slow)
	s.Dialect = DialectSQLite
	return nil
}

func openCH(ctx context.Context, cfg Config, s *Store) error {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.CH.URL, Role: cfg.AppName})
	if err != nil {
		return err
	}
	s.CH = newCHAdapter(c)
	return nil
}

func openRedis(ctx context.Context, cfg Config, s *Store) error {
	c := redis.NewClient(&redis.Options{
		Addr:         cfg.RDS.Addr,
		Password:     cfg.RDS.Password,
		DB:           cfg.RDS.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return err
	}
	s.Redis = c
	return nil
}

func openNATS(cfg Config, s *Store) error {
	log := s.Log
	nc, err := nats.Connect(cfg.NATS.URL,
		nats.Name(cfg.NATS.Name),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return err
	}
	s.Bus = newNATSBus(nc)
	return nil
}
