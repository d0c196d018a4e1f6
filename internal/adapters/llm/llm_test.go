package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"sellerbot/internal/platform/config"
	perr "sellerbot/internal/platform/errors"
	"sellerbot/internal/platform/logger"
	kit "sellerbot/internal/platform/testkit"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	l := logger.Nop()
	return New(Options{BaseURL: srv.URL + "/v1/", APIKey: "sk-test", Model: "gpt-test", RetryWait: time.Millisecond, Log: &l})
}

func TestPrompt(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" || r.Method != http.MethodPost {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		var req ChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "gpt-test" || len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "hi" {
			t.Errorf("request = %+v", req)
		}
		if req.Temperature != nil || req.Stream != nil {
			t.Errorf("optional fields should be omitted: %+v", req)
		}
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-test",
			"choices":[{"index":0,"message":{"role":"assistant","content":"Здравствуйте!"},"finish_reason":"stop"},
			           {"index":1,"message":{"role":"assistant","content":"second"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":1,"completion_tokens":2,"total_tokens":3}}`)
	})

	got, err := c.Prompt(context.Background(), "", "hi")
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if got != "Здравствуйте!" {
		t.Fatalf("Prompt = %q, want %q", got, "Здравствуйте!")
	}
}

func TestPrompt_NoChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"c2","model":"m","choices":[]}`)
	})
	_, err := c.Prompt(context.Background(), "m", "hi")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestChat_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = io.WriteString(w, `{"id":"c3","choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}],"usage":{"total_tokens":9}}`)
	})
	resp, err := c.Chat(context.Background(), ChatRequest{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if calls.Load() != 3 || resp.Usage.TotalTokens != 9 {
		t.Fatalf("calls = %d, usage = %+v", calls.Load(), resp.Usage)
	}
}

func TestChat_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `model overloaded`)
	})
	_, err := c.Prompt(context.Background(), "m", "hi")
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("err = %v, want upstream", err)
	}
	kit.MustContain(t, err.Error(), "model overloaded")
}

func TestFromConfig(t *testing.T) {
	t.Setenv("AI_PROVIDER_BASE_URL", "https://llm.example.com/v1")
	t.Setenv("AI_PROVIDER_API_KEY", "k")
	t.Setenv("AI_PROVIDER_MODEL", "m")
	t.Setenv("AI_PROVIDER_INTERVAL", "250ms")

	o := FromConfig(config.New())
	if o.BaseURL != "https://llm.example.com/v1" || o.APIKey != "k" || o.Model != "m" {
		t.Fatalf("FromConfig = %+v", o)
	}
	if o.Timeout != 60*time.Second || o.Interval != 250*time.Millisecond {
		t.Fatalf("timeout/interval = %v/%v", o.Timeout, o.Interval)
	}
}
