package core

import (
	"sync"
	"sync/atomic"
	"time"
)

const coarseClockResolution = 500 * time.Microsecond

var (
	coarseClockOnce sync.Once
	coarseNow       atomic.Pointer[time.Time]
)

// StartCoarseClock starts the background goroutine that caches
// time.Now() every 500µs. It is safe to call multiple times; the
// goroutine is started exactly once and runs for the lifetime of
// the process.
func StartCoarseClock() {
	coarseClockOnce.Do(func() {
		t := time.Now()
		coarseNow.Store(&t)
		go runCoarseClock()
	})
}

// runCoarseClock refreshes the cached time until the process exits.
func runCoarseClock() {
	ticker := time.NewTicker(coarseClockResolution)
	for range ticker.C {
		t := time.Now()
		coarseNow.Store(&t)
	}
}

// CoarseNow returns the most recently cached time. It falls back to
// time.Now when StartCoarseClock has not been called.
func CoarseNow() time.Time {
	if t := coarseNow.Load(); t != nil {
		return *t
	}
	return time.Now()
}

// Clock returns a timestamp source: CoarseNow when coarse is true
// (starting the coarse clock if needed), time.Now otherwise.
func Clock(coarse bool) func() time.Time {
	if !coarse {
		return time.Now
	}
	StartCoarseClock()
	return CoarseNow
}
