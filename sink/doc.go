// Package sink defines the contract between the logging engine and its
// output destinations, plus the ordered registry and the fan-out that
// delivers a message to every qualifying sink.
//
// A Sink only has to implement Deliver. Teardown and buffer flushing are
// optional capabilities discovered by type assertion: a sink that also
// implements io.Closer is closed exactly once when its owning logger
// shuts down, and a sink that implements Flusher is flushed whenever the
// logger flushes.
//
// A Handle pairs a Sink with its severity threshold. Dispatch walks the
// handles in registration order and calls Deliver for each one whose
// threshold the message meets, so a sink never observes a message below
// its configured level.
//
// Sinks are called while the logger holds its engine lock. They must not
// call back into the logger that owns them.
package sink
