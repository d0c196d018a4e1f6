package sqltrace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	cases := map[string]string{
		"select 1": "select 1",
		"  SELECT\t*\nFROM\r\tproduct_ai_summary  WHERE id = $1 ": "SELECT * FROM product_ai_summary WHERE id = $1",
		"": "",
	}
	for in, want := range cases {
		if got := compact(in); got != want {
			t.Fatalf("compact(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEmit_SlowAndErrorsWarn(t *testing.T) {
	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf).Level(zerolog.ErrorLevel))

	start := time.Now().Add(-20 * time.Millisecond)
	Emit(context.Background(), tr, "sqlite", 10*time.Millisecond, "SELECT 1", nil, start, nil)
	Emit(context.Background(), tr, "pgsql", 0, "SELECT\n2", []any{1}, time.Now(), errors.New("boom"))
	Emit(context.Background(), nil, "pgsql", 0, "ignored", nil, time.Now(), nil)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2: %s", len(lines), buf.String())
	}
	var first, second map[string]any
	_ = json.Unmarshal(lines[0], &first)
	_ = json.Unmarshal(lines[1], &second)
	if first["level"] != "warn" || first["slow"] != true || first["backend"] != "sqlite" {
		t.Fatalf("first = %v", first)
	}
	if second["level"] != "warn" || second["sql"] != "SELECT 2" || second["error"] != "boom" {
		t.Fatalf("second = %v", second)
	}
}
