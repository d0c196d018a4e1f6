package net

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-1")
	if got := RequestID(ctx); got != "req-1" {
		t.Fatalf("RequestID = %q, want %q", got, "req-1")
	}
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("RequestID on bare ctx = %q, want empty", got)
	}
	if WithRequest(ctx, "") != ctx {
		t.Fatalf("empty id should not wrap the context")
	}
}
