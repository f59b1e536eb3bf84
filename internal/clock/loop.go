package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Loop is a wall-clock Clock that serialises all work scheduled on it.
// Tick callbacks and functions passed to Do never run concurrently.
type Loop struct {
	mu sync.Mutex
}

// NewLoop creates a new Loop
func NewLoop() *Loop {
	return &Loop{}
}

// Now returns the current wall-clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Do runs f on the loop. It must not be called from inside a tick callback
// or another Do.
func (l *Loop) Do(f func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f()
}

// Every starts a goroutine that calls f on the loop every d.
func (l *Loop) Every(d time.Duration, f func()) Ticker {
	t := &loopTicker{done: make(chan struct{})}
	tk := time.NewTicker(d)

	go func() {
		defer tk.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-tk.C:
				l.mu.Lock()
				// Stop may have been called while we waited for the lock.
				if !t.stopped.Load() {
					f()
				}
				l.mu.Unlock()
			}
		}
	}()

	return t
}

type loopTicker struct {
	stopped atomic.Bool
	done    chan struct{}
}

func (t *loopTicker) Stop() {
	if t.stopped.CompareAndSwap(false, true) {
		close(t.done)
	}
}
