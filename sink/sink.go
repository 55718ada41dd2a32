package sink

import (
	"github.com/philipp01105/clog/core"
)

// Sink receives log messages from a logger
type Sink interface {
	// Deliver handles one message. It is called synchronously and should
	// return quickly. The message must be treated as read-only.
	Deliver(msg *core.Message)
}

// Flusher is an optional interface for sinks that buffer output.
type Flusher interface {
	Flush() error
}

// Func adapts an ordinary function to the Sink interface.
type Func func(msg *core.Message)

// Deliver calls f(msg).
func (f Func) Deliver(msg *core.Message) {
	f(msg)
}

// Discard is a Sink that drops every message.
var Discard Sink = Func(func(*core.Message) {})
