package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsMessage(t *testing.T) {
	var out syncBuffer
	s := newSpinnerTo(context.Background(), &out, "Connecting to redis store...")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	if got := out.String(); !strings.Contains(got, "Connecting to redis store...") {
		t.Errorf("spinner output = %q, want the message", got)
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after Stop, want false")
	}
}

func TestSpinnerParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerTo(ctx, &syncBuffer{}, "Rendering SVG...")
	s.Start()
	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Cancelled() = false, want true")
	}
}

func TestSpinnerStopTwice(t *testing.T) {
	s := newSpinnerTo(context.Background(), &syncBuffer{}, "x")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	var out syncBuffer
	s := newSpinnerTo(context.Background(), &out, "x")
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() blocked on a spinner that never started")
	}
	if out.String() != "" {
		t.Errorf("output = %q, want nothing", out.String())
	}
}
