package store

import (
	"context"
	"errors"
	"time"

	"sellerbot/internal/platform/store/pg"
	"sellerbot/internal/platform/store/sqltrace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgQueryer is the subset shared by *pgxpool.Pool and pgx.Tx
type pgQueryer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgAdapter wraps pg.PG and implements TxRunner, tracing every statement
type pgAdapter struct {
	p *pg.PG
	pgRunner
}

// pgRunner runs statements on a pool or a tx with the same tracing
type pgRunner struct {
	q      pgQueryer
	tracer sqltrace.QueryTracer
	slow   time.Duration
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{p: p, pgRunner: pgRunner{q: p.Pool, tracer: p.Tracer, slow: p.Slow}}
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil {
		return errors.New("pg: nil adapter")
	}
	return a.p.Pool.Ping(ctx)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(pgRunner{q: tx, tracer: a.tracer, slow: a.slow}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (r pgRunner) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := r.q.Exec(ctx, sql, args...)
	sqltrace.Emit(ctx, r.tracer, "pgsql", r.slow, sql, args, start, err)
	return ct, err
}

func (r pgRunner) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := r.q.Query(ctx, sql, args...)
	sqltrace.Emit(ctx, r.tracer, "pgsql", r.slow, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (r pgRunner) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return pgRow{
		r: r.q.QueryRow(ctx, sql, args...),
		after: func(scanErr error) {
			sqltrace.Emit(ctx, r.tracer, "pgsql", r.slow, sql, args, start, scanErr)
		},
	}
}

// pgRow emits the trace after Scan so the event carries the scan error
type pgRow struct {
	r     pgx.Row
	after func(error)
}

func (x pgRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if errors.Is(err, pgx.ErrNoRows) {
		x.after(nil)
		return ErrNoRows
	}
	x.after(err)
	return err
}
