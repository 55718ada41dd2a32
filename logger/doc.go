// Package logger is the public API of clog. A Logger decouples producing
// log messages from delivering them to sinks.
//
// There is no package-level default Logger; create one with New and pass
// it to the code that logs:
//
//	log, err := logger.New(logger.Config{
//	    Name:          "api",
//	    Mode:          logger.Async,
//	    AutoFlush:     true,
//	    FlushInterval: 500 * time.Millisecond,
//	})
//	if err != nil {
//	    return err
//	}
//	defer log.Shutdown()
//
//	log.AddSink(sink.NewHandle(logger.WarnLevel, mySink))
//	log.Errorf("upstream %s failed: %v", name, err)
//
// In Sync mode, Log fans the message out on the caller's goroutine and
// returns when every qualifying sink has run. In Async mode, Log appends
// to an unbounded queue and returns; a single worker goroutine delivers
// queued messages in FIFO order. Flush blocks until everything queued
// before the call has been delivered, and Shutdown drains the queue
// completely before tearing sinks down.
//
// Two locks are involved. The queue has its own mutex, held only for an
// append or a pop, so producers never wait on sinks. The engine lock
// guards the sink registry and serializes every dispatch, so each sink
// sees one delivery at a time and in order. When both are needed the
// engine lock is taken first.
//
// Auto-flush is best effort: the worker attempts it with TryLock and
// skips the round if the engine lock is busy. It is not a latency
// guarantee.
//
// Internal events (rejected sinks, sink panics, teardown errors) are
// reported to Config.Diagnostics, a *zap.Logger, rather than returned
// from Log.
package logger
