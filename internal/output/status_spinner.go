// internal/output/status_spinner.go
package output

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var statusSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// StatusSpinner displays an animated spinner while a submission waits on the
// node. Thread-safe for concurrent updates.
type StatusSpinner struct {
	out      io.Writer
	interval time.Duration
	frameIdx int
	message  string
	stop     chan struct{}
	done     chan struct{}
	mu       sync.Mutex
	running  bool
	disabled bool
}

// NewStatusSpinner creates a new StatusSpinner writing to stderr.
// A disabled spinner accepts every call and prints nothing, which keeps
// machine output and non-terminal runs clean.
func NewStatusSpinner(disabled bool) *StatusSpinner {
	return &StatusSpinner{out: os.Stderr, interval: 100 * time.Millisecond, disabled: disabled}
}

// SetWriter redirects the spinner output.
func (s *StatusSpinner) SetWriter(w io.Writer) {
	s.mu.Lock()
	s.out = w
	s.mu.Unlock()
}

// Start begins the spinner animation with the given message.
func (s *StatusSpinner) Start(message string) {
	s.mu.Lock()
	if s.running || s.disabled {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.message = message
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		defer close(s.done)

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.render()
			}
		}
	}()
}

// Update changes the spinner message.
func (s *StatusSpinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	running := s.running
	s.mu.Unlock()
	if running {
		s.render()
	}
}

// Running reports whether the animation is active.
func (s *StatusSpinner) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Stop stops the spinner and clears the line.
func (s *StatusSpinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	s.mu.Unlock()

	<-s.done
	fmt.Fprintf(s.out, "\r%80s\r", "") // Clear line
}

func (s *StatusSpinner) render() {
	s.mu.Lock()
	msg := s.message
	idx := s.frameIdx
	s.frameIdx = (s.frameIdx + 1) % len(statusSpinnerFrames)
	out := s.out
	s.mu.Unlock()

	fmt.Fprintf(out, "\r%s %s          ", statusSpinnerFrames[idx], msg)
}
