package logger

import "sync/atomic"

// stats tracks engine statistics with atomic counters
type stats struct {
	logged             atomic.Uint64
	enqueued           atomic.Uint64
	delivered          atomic.Uint64
	unrouted           atomic.Uint64
	truncated          atomic.Uint64
	autoFlushes        atomic.Uint64
	skippedAutoFlushes atomic.Uint64
	sinkPanics         atomic.Uint64
	rejectedSinks      atomic.Uint64
}

// Snapshot is a point-in-time copy of a logger's statistics
type Snapshot struct {
	// Logged counts messages accepted by Log
	Logged uint64
	// Enqueued counts messages placed on the async queue
	Enqueued uint64
	// Delivered counts individual sink deliveries
	Delivered uint64
	// Unrouted counts messages that no sink's threshold accepted
	Unrouted uint64
	// Truncated counts messages whose text was cut to fit the buffer
	Truncated uint64
	// AutoFlushes counts completed auto-flush drains
	AutoFlushes uint64
	// SkippedAutoFlushes counts auto-flush attempts skipped on lock contention
	SkippedAutoFlushes uint64
	// SinkPanics counts recovered panics from sink deliveries
	SinkPanics uint64
	// RejectedSinks counts failed AddSink calls
	RejectedSinks uint64
}

func (s *stats) snapshot() Snapshot {
	return Snapshot{
		Logged:             s.logged.Load(),
		Enqueued:           s.enqueued.Load(),
		Delivered:          s.delivered.Load(),
		Unrouted:           s.unrouted.Load(),
		Truncated:          s.truncated.Load(),
		AutoFlushes:        s.autoFlushes.Load(),
		SkippedAutoFlushes: s.skippedAutoFlushes.Load(),
		SinkPanics:         s.sinkPanics.Load(),
		RejectedSinks:      s.rejectedSinks.Load(),
	}
}
