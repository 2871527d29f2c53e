package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a one-line status message until stopped or until its
// context is done. Store connections and SVG rendering can block for a while;
// everything else finishes before the first frame.
type spinner struct {
	w       io.Writer
	message string
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	started bool
	once    sync.Once
	mu      sync.Mutex
}

// newSpinnerWithContext creates a spinner on stderr bound to ctx.
func newSpinnerWithContext(ctx context.Context, message string) *spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, w io.Writer, message string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &spinner{
		w:       w,
		message: message,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start runs the animation in a goroutine.
func (s *spinner) Start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop ends the animation and clears the line. It is safe to call more than once.
func (s *spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		s.mu.Lock()
		started := s.started
		s.mu.Unlock()
		if !started {
			return
		}
		<-s.stopped
		s.mu.Lock()
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
		s.mu.Unlock()
	})
}

// StopWithError stops the spinner and prints message as an error.
func (s *spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context ended for a reason other
// than Stop.
func (s *spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
