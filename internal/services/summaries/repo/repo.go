// Package repo provides the product summary repository and its cache
package repo

import (
	"context"
	"errors"

	"sellerbot/internal/modkit/repokit"
	perr "sellerbot/internal/platform/errors"
	"sellerbot/internal/platform/store"
	"sellerbot/internal/services/summaries/domain"
)

type (
	sqlRepo struct{ q repokit.Queryer }
	binder  struct{}
)

// NewSQL constructs a binder for postgres and sqlite; statements are shared
func NewSQL() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &sqlRepo{q: q} }

// Storage persists summaries
type Storage interface {
	Get(ctx context.Context, id string) (domain.Summary, error)
	Upsert(ctx context.Context, s domain.Summary) error
}

func scanSummary(r store.Row) (domain.Summary, error) {
	var s domain.Summary
	err := r.Scan(&s.ID, &s.Text, &s.CreatedAt)
	return s, err
}

// Get implements Storage
func (r *sqlRepo) Get(ctx context.Context, id string) (domain.Summary, error) {
	s, err := store.One(ctx, r.q, scanSummary,
		`SELECT id, ai_summary, created_at FROM product_ai_summary WHERE id = $1`, id)
	if errors.Is(err, perr.ErrNotFound) {
		return domain.Summary{}, perr.NotFoundf("summary %s not found", id)
	}
	if err != nil {
		return domain.Summary{}, perr.Wrapf(err, perr.ErrorCodeDB, "select summary %s", id)
	}
	return s, nil
}

// Upsert implements Storage; an existing row is replaced
func (r *sqlRepo) Upsert(ctx context.Context, s domain.Summary) error {
	_, err := r.q.Exec(ctx, `INSERT INTO product_ai_summary (id, ai_summary, created_at) VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET ai_summary = excluded.ai_summary, created_at = excluded.created_at`,
		s.ID, s.Text, s.CreatedAt)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "upsert summary %s", s.ID)
	}
	return nil
}
