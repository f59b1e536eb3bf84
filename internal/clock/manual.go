package clock

import "time"

// Manual is a Clock whose time only moves when Advance is called. Ticks fire
// synchronously inside Advance, in time order. It is not safe for concurrent
// use.
type Manual struct {
	now     time.Time
	tickers []*manualTicker
}

// NewManual creates a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	return m.now
}

func (m *Manual) Every(d time.Duration, f func()) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for Every")
	}
	t := &manualTicker{period: d, next: m.now.Add(d), f: f}
	m.tickers = append(m.tickers, t)
	return t
}

// Do runs f immediately.
func (m *Manual) Do(f func()) {
	f()
}

// Advance moves the clock forward by d, firing every tick that falls due.
// Tickers created by a callback start counting from the time of that tick.
func (m *Manual) Advance(d time.Duration) {
	end := m.now.Add(d)
	for {
		due := m.nextDue(end)
		if due == nil {
			break
		}
		m.now = due.next
		due.next = due.next.Add(due.period)
		due.f()
	}
	m.now = end
	m.prune()
}

// Active reports how many tickers are still running.
func (m *Manual) Active() int {
	n := 0
	for _, t := range m.tickers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (m *Manual) nextDue(end time.Time) *manualTicker {
	var due *manualTicker
	for _, t := range m.tickers {
		if t.stopped || t.next.After(end) {
			continue
		}
		if due == nil || t.next.Before(due.next) {
			due = t
		}
	}
	return due
}

func (m *Manual) prune() {
	live := m.tickers[:0]
	for _, t := range m.tickers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.tickers); i++ {
		m.tickers[i] = nil
	}
	m.tickers = live
}

type manualTicker struct {
	period  time.Duration
	next    time.Time
	f       func()
	stopped bool
}

func (t *manualTicker) Stop() {
	t.stopped = true
}
