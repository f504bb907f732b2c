// Package chat holds the per-role chat session controller and the
// typed-out playback of agent replies.
package chat

import (
	"sync"
	"time"
)

// DefaultRevealInterval is the delay between revealed characters.
const DefaultRevealInterval = 20 * time.Millisecond

// Revealer plays back an already-complete string one character per tick,
// so a reply that arrived in one response reads like live typing. Starting
// a new playback cancels any in-flight one; two reveals never interleave.
type Revealer struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewRevealer creates a revealer ticking at interval (DefaultRevealInterval
// when zero).
func NewRevealer(interval time.Duration) *Revealer {
	if interval <= 0 {
		interval = DefaultRevealInterval
	}
	return &Revealer{interval: interval}
}

// Start begins revealing text. frame is called after every tick with the
// currently visible prefix and a done flag; the final call carries the
// full text. frame runs on the revealer's goroutine.
func (r *Revealer) Start(text string, frame func(visible string, done bool)) {
	r.Cancel()

	r.mu.Lock()
	stop := make(chan struct{})
	r.stop = stop
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()

		runes := []rune(text)
		if len(runes) == 0 {
			frame("", true)
			return
		}

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for i := 1; i <= len(runes); i++ {
			select {
			case <-stop:
				return
			case <-ticker.C:
				frame(string(runes[:i]), i == len(runes))
			}
		}
	}()
}

// Cancel stops any in-flight reveal and waits for its goroutine to exit,
// so no frame callback can arrive after Cancel returns.
func (r *Revealer) Cancel() {
	r.mu.Lock()
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
	r.mu.Unlock()
	r.wg.Wait()
}
