// Package core defines the shared types used across clog.
//
// It provides the Level type for severity filtering, the Message type
// that represents a single log event, and CallerInfo for source
// locations.
//
// A Message is immutable after NewMessage returns. Its text is bounded
// by a configurable buffer size; longer text is truncated to the
// buffer size minus one byte, cut back to a UTF-8 rune boundary, and
// flagged via Truncated. Truncation is never an error.
//
// The coarse clock trades timestamp precision (500µs) for a cheaper
// time lookup on the logging hot path.
package core
