package testkit

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestMustPanic(t *testing.T) {
	t.Parallel()
	MustPanic(t, func() { panic("boom") })
}

func TestMustContain(t *testing.T) {
	t.Parallel()
	MustContain(t, "alpha beta gamma", "beta")
}

func TestEventually(t *testing.T) {
	t.Parallel()
	var n atomic.Int32
	go func() {
		time.Sleep(20 * time.Millisecond)
		n.Store(1)
	}()
	Eventually(t, time.Second, func() bool { return n.Load() == 1 }, "flag set")
}

func TestRecvAndWaitClosed(t *testing.T) {
	t.Parallel()
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	ch <- 3
	close(ch)

	if v := Recv(t, ch, time.Second); v != 1 {
		t.Fatalf("Recv = %d, want 1", v)
	}
	rest := WaitClosed(t, ch, time.Second)
	if len(rest) != 2 || rest[0] != 2 || rest[1] != 3 {
		t.Fatalf("WaitClosed = %v", rest)
	}
}

func TestNoRecv(t *testing.T) {
	t.Parallel()
	NoRecv(t, make(chan string), 20*time.Millisecond)
}
