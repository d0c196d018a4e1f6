package service

import (
	"context"

	"sellerbot/internal/modkit/repokit"
	"sellerbot/internal/services/observer/domain"
	"sellerbot/internal/services/observer/repo"
)

const (
	defaultRecent = 50
	maxRecent     = 500
)

// Query implements domain.QueryPort without needing a seller
type Query struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
}

var _ domain.QueryPort = (*Query)(nil)

// NewQuery constructs a read only answers service
func NewQuery(db repokit.TxRunner, b repokit.Binder[repo.Storage]) *Query {
	return &Query{DB: db, Binder: b}
}

// Recent implements domain.QueryPort; limit falls back to 50 outside 1..500
func (q *Query) Recent(ctx context.Context, limit int) ([]domain.Answer, error) {
	if limit <= 0 || limit > maxRecent {
		limit = defaultRecent
	}
	return q.Binder.Bind(q.DB).Recent(ctx, limit)
}
