// Package queue provides the delivery queue that sits between log
// producers and the background dispatcher.
//
// Queue is an unbounded FIFO guarded by its own mutex. Producers only
// ever hold that mutex for the duration of a single append, so logging
// in async mode never waits on sink delivery. Each Push also posts a
// wake-up on a one-slot channel returned by Ready, which lets a
// consumer block in a select instead of spinning.
package queue
