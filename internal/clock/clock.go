// Package clock provides the tick sources that drive countdown timers.
//
// A Clock hands out periodic Tickers. Loop is the production clock: it runs
// every tick callback, and every function passed to Do, behind a single lock
// so that a game and its timers only ever see one logical thread of control.
// Manual is a deterministic clock for tests.
package clock

import "time"

// Ticker is a cancellable periodic task.
type Ticker interface {
	// Stop cancels the task. Once Stop returns the callback is never
	// invoked again. Stop is idempotent.
	Stop()
}

// Clock provides time-related operations.
type Clock interface {
	Now() time.Time
	// Every invokes f every d until the returned Ticker is stopped.
	Every(d time.Duration, f func()) Ticker
}

// Serial is a Clock that can also run arbitrary work on the same logical
// thread as its tick callbacks.
type Serial interface {
	Clock
	Do(f func())
}
