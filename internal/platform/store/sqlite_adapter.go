package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"sellerbot/internal/platform/store/sqltrace"
)

// ErrNoRows is returned by Row.Scan on every dialect when nothing matched
var ErrNoRows = sql.ErrNoRows

// sqliteQueryer is the subset shared by *sql.DB and *sql.Tx
type sqliteQueryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqliteAdapter struct {
	db *sql.DB
	sqliteRunner
}

type sqliteRunner struct {
	q      sqliteQueryer
	tracer sqltrace.QueryTracer
	slow   time.Duration
}

func newSQLiteAdapter(db *sql.DB, tracer sqltrace.QueryTracer, slow time.Duration) *sqliteAdapter {
	return &sqliteAdapter{db: db, sqliteRunner: sqliteRunner{q: db, tracer: tracer, slow: slow}}
}

func (a *sqliteAdapter) Ping(ctx context.Context) error { return a.db.PingContext(ctx) }

func (a *sqliteAdapter) Close() error { return a.db.Close() }

func (a *sqliteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(sqliteRunner{q: tx, tracer: a.tracer, slow: a.slow}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// dollarParam matches postgres style placeholders
var dollarParam = regexp.MustCompile(`\$(\d+)`)

// rebind rewrites $N into sqlite's numbered ?N so repos share one statement text
func rebind(q string) string { return dollarParam.ReplaceAllString(q, "?$1") }

func (r sqliteRunner) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	start := time.Now()
	res, err := r.q.ExecContext(ctx, rebind(query), args...)
	sqltrace.Emit(ctx, r.tracer, "sqlite", r.slow, query, args, start, err)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	return affected(n), nil
}

func (r sqliteRunner) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := r.q.QueryContext(ctx, rebind(query), args...)
	sqltrace.Emit(ctx, r.tracer, "sqlite", r.slow, query, args, start, err)
	if err != nil {
		return nil, err
	}
	return sqlRows{rs}, nil
}

func (r sqliteRunner) QueryRow(ctx context.Context, query string, args ...any) Row {
	start := time.Now()
	row := r.q.QueryRowContext(ctx, rebind(query), args...)
	return sqlRow{r: row, after: func(err error) {
		sqltrace.Emit(ctx, r.tracer, "sqlite", r.slow, query, args, start, err)
	}}
}

type sqlRow struct {
	r     *sql.Row
	after func(error)
}

func (x sqlRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if errors.Is(err, sql.ErrNoRows) {
		x.after(nil)
		return ErrNoRows
	}
	x.after(err)
	return err
}

type sqlRows struct{ r *sql.Rows }

func (x sqlRows) Next() bool            { return x.r.Next() }
func (x sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x sqlRows) Err() error            { return x.r.Err() }
func (x sqlRows) Close()                { _ = x.r.Close() }

type affected int64

func (a affected) RowsAffected() int64 { return int64(a) }
