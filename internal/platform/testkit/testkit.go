// Package testkit provides testing helpers
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// MustPanic asserts that fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustContain asserts that haystack contains needle, dumping haystack to a temp file when it doesn't
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		tmpfile := filepath.Join(t.TempDir(), "output.txt")
		_ = os.WriteFile(tmpfile, []byte(haystack), 0o600)
		t.Fatalf("expected output to contain %q\n\nfull output written to %s", needle, tmpfile)
	}
}

// Eventually polls cond every 5ms until it holds or within elapses
func Eventually(t *testing.T, within time.Duration, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(within)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met within %v: %s", within, what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Recv receives one value from ch or fails after within
func Recv[T any](t *testing.T, ch <-chan T, within time.Duration) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed, expected a value")
		}
		return v
	case <-time.After(within):
		t.Fatalf("no value received within %v", within)
	}
	var zero T
	return zero
}

// NoRecv asserts nothing arrives on ch for the given window; a closed channel also fails
func NoRecv[T any](t *testing.T, ch <-chan T, window time.Duration) {
	t.Helper()
	select {
	case v, ok := <-ch:
		if ok {
			t.Fatalf("unexpected value: %+v", v)
		}
		t.Fatalf("channel closed unexpectedly")
	case <-time.After(window):
	}
}

// WaitClosed drains ch until it is closed, failing after within
func WaitClosed[T any](t *testing.T, ch <-chan T, within time.Duration) []T {
	t.Helper()
	var got []T
	timeout := time.After(within)
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, v)
		case <-timeout:
			t.Fatalf("channel not closed within %v (drained %d values)", within, len(got))
			return got
		}
	}
}
