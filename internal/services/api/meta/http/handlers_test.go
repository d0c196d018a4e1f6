package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "sellerbot/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func serve(t *testing.T, d Deps, path string) map[string]any {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), d)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s = %d, want 200", path, rec.Code)
	}
	var env struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env.Data
}

func TestReady_ReportsFailingCheck(t *testing.T) {
	d := Deps{Checks: []Check{
		{Name: "sqlite", Ping: func(context.Context) error { return nil }},
		{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }},
	}}
	got := serve(t, d, "/ready")
	if got["status"] != "fail" {
		t.Fatalf("status = %v, want fail", got["status"])
	}
	checks, _ := got["checks"].([]any)
	if len(checks) != 2 {
		t.Fatalf("checks = %v", got["checks"])
	}
	second, _ := checks[1].(map[string]any)
	if second["name"] != "redis" || second["error"] != "connection refused" {
		t.Fatalf("redis check = %v", second)
	}
}

func TestReady_NoChecksIsOK(t *testing.T) {
	if got := serve(t, Deps{}, "/ready"); got["status"] != "ok" {
		t.Fatalf("status = %v, want ok", got["status"])
	}
}

func TestVersionAndService(t *testing.T) {
	d := Deps{ServiceName: "sellerbot-web", StartedAt: time.Now().Add(-time.Minute)}
	if got := serve(t, d, "/version"); got["service"] != "sellerbot-web" || got["version"] == "" {
		t.Fatalf("version = %v", got)
	}
	got := serve(t, d, "/service")
	if got["name"] != "sellerbot-web" {
		t.Fatalf("service = %v", got)
	}
	if up, _ := got["uptime"].(float64); up < 59 {
		t.Fatalf("uptime = %v, want >= 59", got["uptime"])
	}
}
