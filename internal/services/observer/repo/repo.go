// Package repo provides answer storage and the clickhouse journal
package repo

import (
	"context"
	"errors"

	"sellerbot/internal/core/feedback"
	"sellerbot/internal/modkit/repokit"
	perr "sellerbot/internal/platform/errors"
	"sellerbot/internal/platform/store"
	"sellerbot/internal/services/observer/domain"
)

type (
	sqlRepo struct{ q repokit.Queryer }
	binder  struct{}
)

// NewSQL constructs a binder for postgres and sqlite
func NewSQL() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &sqlRepo{q: q} }

// Storage persists drafted answers
type Storage interface {
	Save(ctx context.Context, a domain.Answer) error
	MarkPublished(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Answer, error)
	Recent(ctx context.Context, limit int) ([]domain.Answer, error)
}

const columns = `id, place, kind, feedback_id, product_id, question, answer, published, created_at`

func scanAnswer(r store.Row) (domain.Answer, error) {
	var a domain.Answer
	var kind string
	err := r.Scan(&a.ID, &a.Place, &kind, &a.FeedbackID, &a.ProductID, &a.Question, &a.Answer, &a.Published, &a.CreatedAt)
	a.Kind = feedback.Kind(kind)
	return a, err
}

// Save implements Storage; a redrafted answer replaces the old one
func (r *sqlRepo) Save(ctx context.Context, a domain.Answer) error {
	_, err := r.q.Exec(ctx, `INSERT INTO feedback_answer (`+columns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET answer = excluded.answer, published = excluded.published, created_at = excluded.created_at`,
		a.ID, a.Place, string(a.Kind), a.FeedbackID, a.ProductID, a.Question, a.Answer, a.Published, a.CreatedAt)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "save answer %s", a.ID)
	}
	return nil
}

// MarkPublished implements Storage
func (r *sqlRepo) MarkPublished(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE feedback_answer SET published = $1 WHERE id = $2`, true, id)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "mark answer %s published", id)
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("answer %s not found", id)
	}
	return nil
}

// Get implements Storage
func (r *sqlRepo) Get(ctx context.Context, id string) (domain.Answer, error) {
	a, err := store.One(ctx, r.q, scanAnswer, `SELECT `+columns+` FROM feedback_answer WHERE id = $1`, id)
	if errors.Is(err, perr.ErrNotFound) {
		return domain.Answer{}, perr.NotFoundf("answer %s not found", id)
	}
	if err != nil {
		return domain.Answer{}, perr.Wrapf(err, perr.ErrorCodeDB, "select answer %s", id)
	}
	return a, nil
}

// Recent implements Storage, newest first
func (r *sqlRepo) Recent(ctx context.Context, limit int) ([]domain.Answer, error) {
	xs, err := store.Many(ctx, r.q, scanAnswer,
		`SELECT `+columns+` FROM feedback_answer ORDER BY created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "list answers")
	}
	return xs, nil
}
