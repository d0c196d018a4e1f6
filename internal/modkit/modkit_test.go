package modkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"sellerbot/internal/modkit/httpkit"
	"sellerbot/internal/platform/config"
	"sellerbot/internal/platform/logger"
	phttp "sellerbot/internal/platform/net/http"
	"sellerbot/internal/platform/store"

	"github.com/go-chi/chi/v5"
)

func TestDepsFrom(t *testing.T) {
	d := DepsFrom(logger.Nop(), config.New(), nil)
	if d.SQL != nil || d.Redis != nil || d.Bus != nil || d.CH != nil {
		t.Fatalf("DepsFrom(nil store) = %+v, want empty backends", d)
	}

	s, err := store.Open(context.Background(), store.Config{
		SQLite: store.SQLiteConfig{Enabled: true, Path: ":memory:"},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer s.Close(context.Background())

	d = DepsFrom(logger.Nop(), config.New(), s)
	if d.SQL == nil || d.Dialect != store.DialectSQLite {
		t.Fatalf("DepsFrom = %+v, want sqlite", d)
	}
}

func TestBuild_Defaults(t *testing.T) {
	b := Build()
	if b.Name != "" || b.Prefix != "" || b.Ports != nil || len(b.Mw) != 0 {
		t.Fatalf("Build() = %+v, want zero", b)
	}
	b.Register(nil)
}

func TestBuild_WithOptionsMounts(t *testing.T) {
	var seen []string
	mw := func(tag string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = append(seen, tag)
				next.ServeHTTP(w, r)
			})
		}
	}
	b := Build(
		WithName("templates"),
		WithPrefix("/api"),
		WithMiddlewares(mw("a")),
		WithMiddlewares(mw("b")),
		WithPorts(42),
		WithRegister(func(r httpkit.Router) {
			r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
		}),
	)
	if b.Name != "templates" || b.Ports != 42 {
		t.Fatalf("Build = %+v", b)
	}

	mux := chi.NewRouter()
	b.Mount(phttp.AdaptChi(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Fatalf("middleware order = %v, want [a b]", seen)
	}
}

func TestBuild_NoPrefixMountsAtRoot(t *testing.T) {
	b := Build(WithRegister(func(r httpkit.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	}))
	mux := chi.NewRouter()
	b.Mount(phttp.AdaptChi(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
