package clock

import (
	"sync"
	"time"
)

// Ticker calls tick every Interval on its own goroutine.
type Ticker struct {
	Interval time.Duration
}

// NewTicker returns a one-second ticker.
func NewTicker() Ticker {
	return Ticker{Interval: time.Second}
}

// Start begins ticking. The returned stop func waits for the goroutine to
// exit and is safe to call more than once.
func (t Ticker) Start(tick func()) (stop func()) {
	interval := t.Interval
	if interval <= 0 {
		interval = time.Second
	}
	tk := time.NewTicker(interval)
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		defer tk.Stop()
		for {
			select {
			case <-tk.C:
				tick()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-exited
		})
	}
}
