package logger

import (
	"time"

	"go.uber.org/zap"
)

// process is the async worker. It sleeps until a message is queued, the
// auto-flush ticker fires, or Shutdown closes l.stop, and exits only once
// stop is closed and the queue is empty.
func (l *Logger) process() {
	defer l.wg.Done()

	var tick <-chan time.Time
	if l.autoFlush {
		c, stop := l.ticker(l.flushInterval)
		defer stop()
		tick = c
	}

	for {
		stopping := false
		select {
		case <-l.queue.Ready():
		case <-tick:
			// The ticker fires once per interval, so every tick is due.
			l.tryAutoFlush()
		case <-l.stop:
			stopping = true
		}

		l.dispatchPending()

		if stopping && l.queue.Len() == 0 {
			return
		}
	}
}

// tickerFunc returns a channel firing every d and a function releasing it.
type tickerFunc func(d time.Duration) (<-chan time.Time, func())

func newTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// tryAutoFlush drains the whole queue and flushes sinks if the engine lock
// is free. It never waits: on contention the flush is skipped and retried
// on a later tick, so auto-flush gives no latency guarantee.
func (l *Logger) tryAutoFlush() bool {
	if !l.mu.TryLock() {
		l.stats.skippedAutoFlushes.Add(1)
		l.diag.Debug("auto-flush skipped, engine busy")
		return false
	}
	defer l.mu.Unlock()

	if l.closed {
		return false
	}
	l.drain(-1)
	if err := l.sinks.Flush(); err != nil {
		l.diag.Warn("auto-flush: sink flush failed", zap.Error(err))
	}
	l.stats.autoFlushes.Add(1)
	return true
}

// dispatchPending delivers queued messages one at a time, releasing the
// engine lock between messages so Flush and AddSink are not starved.
func (l *Logger) dispatchPending() {
	for {
		l.mu.Lock()
		msg, ok := l.queue.Pop()
		if ok {
			l.dispatch(msg)
		}
		l.mu.Unlock()

		if !ok {
			return
		}
	}
}
