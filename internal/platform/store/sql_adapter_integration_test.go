//go:build integration_pg

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"sellerbot/internal/platform/logger"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres launches a disposable postgres and returns its DSN
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "sellerbot",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/sellerbot?sslmode=disable", host, mp.Port())
}

func TestPG_MigrateUpsertTx(t *testing.T) {
	dsn := startPostgres(t)
	ctx := context.Background()

	s, err := Open(ctx, Config{
		AppName: "sellerbot-test",
		PG:      PGConfig{Enabled: true, URL: dsn, Migrate: true, LogSQL: true},
	}, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close(ctx)

	if s.Dialect != DialectPG {
		t.Fatalf("Dialect = %q, want %q", s.Dialect, DialectPG)
	}
	if err := s.Guard(ctx); err != nil {
		t.Fatalf("Guard: %v", err)
	}

	const upsert = `INSERT INTO feedback_answer (id, place, kind, feedback_id, product_id, question, answer, published, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT(id) DO UPDATE SET answer = excluded.answer, published = excluded.published`

	for _, ans := range []string{"first", "second"} {
		if _, err := s.SQL.Exec(ctx, upsert, "wb/question/1", "wb", "question", "1", "42", "q?", ans, true, int64(100)); err != nil {
			t.Fatalf("upsert %s: %v", ans, err)
		}
	}
	got, err := Scalar[string](ctx, s.SQL, `SELECT answer FROM feedback_answer WHERE id = $1`, "wb/question/1")
	if err != nil || got != "second" {
		t.Fatalf("answer = %q, %v; want second", got, err)
	}

	err = s.SQL.Tx(ctx, func(q RowQuerier) error {
		_, err := q.Exec(ctx, `DELETE FROM feedback_answer`)
		if err != nil {
			return err
		}
		return fmt.Errorf("rollback")
	})
	if err == nil {
		t.Fatalf("Tx err = nil, want rollback")
	}
	n, err := Scalar[int64](ctx, s.SQL, `SELECT COUNT(*) FROM feedback_answer`)
	if err != nil || n != 1 {
		t.Fatalf("count = %d, %v; want 1", n, err)
	}

	// a second open sees the schema at the same version
	v, err := MigratePG(s.SQL.(*pgAdapter).p.Pool)
	if err != nil || v != 1 {
		t.Fatalf("MigratePG again = %d, %v; want 1", v, err)
	}
}
