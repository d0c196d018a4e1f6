package pg

import (
	"context"
	"errors"
	"testing"

	kit "sellerbot/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_BadURL(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "::not a dsn::"}, nil, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_AppliesMaxConnsAndMutator(t *testing.T) {
	var seen *pgxpool.Config
	kit.Swap(t, &newPool, func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = c
		return nil, errors.New("no pool in unit tests")
	})
	mutated := false
	_, err := Open(context.Background(),
		Config{URL: "postgres://u:p@localhost:5432/sellerbot", MaxConns: 7},
		nil,
		func(*pgxpool.Config) { mutated = true })
	if err == nil {
		t.Fatalf("expected seam error")
	}
	if seen == nil || seen.MaxConns != 7 || !mutated {
		t.Fatalf("config not applied: %+v mutated=%v", seen, mutated)
	}
}

func TestClose_NilSafe(t *testing.T) {
	var p *PG
	p.Close()
	(&PG{}).Close()
}
