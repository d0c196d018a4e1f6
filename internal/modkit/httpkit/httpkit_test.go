package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sellerbot/internal/platform/net/middleware"
	phttp "sellerbot/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func newRouter() (*chi.Mux, Router) {
	mux := chi.NewRouter()
	return mux, phttp.AdaptChi(mux)
}

func TestGuarded_RequiresToken(t *testing.T) {
	mux, r := newRouter()
	GetJSON(r, "/open", func(*http.Request) (any, error) { return "ok", nil })
	Guarded(r, "s3cret", func(g Router) {
		GetJSON(g, "/closed", func(*http.Request) (any, error) { return "ok", nil })
	})

	cases := []struct {
		path, auth string
		want       int
	}{
		{"/open", "", http.StatusOK},
		{"/closed", "", http.StatusUnauthorized},
		{"/closed", "Bearer nope", http.StatusUnauthorized},
		{"/closed", "Bearer s3cret", http.StatusOK},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, c.path, nil)
		if c.auth != "" {
			req.Header.Set("Authorization", c.auth)
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != c.want {
			t.Fatalf("%s auth=%q status = %d, want %d", c.path, c.auth, rec.Code, c.want)
		}
	}
}

func TestMountUnder_AndParam(t *testing.T) {
	mux, r := newRouter()
	MountUnder(r, "/api", nil, func(sub Router) {
		sub.Get("/read/{name}", Handle(func(req *http.Request) Response {
			return OK(Param(req, "name"))
		}))
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/read/question", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data != "question" {
		t.Fatalf("data = %v, want question", env.Data)
	}
}

func TestCommonStack_Heartbeat(t *testing.T) {
	mux, r := newRouter()
	r.Use(CommonStack(time.Second, middleware.CORSOptions{})...)
	r.Get("/x", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), ".") {
		t.Fatalf("heartbeat = %d %q", rec.Code, rec.Body.String())
	}
}
