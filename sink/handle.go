package sink

import (
	"errors"
	"io"
	"sync"

	"github.com/philipp01105/clog/core"
)

// Handle is a registered sink together with its severity threshold. Both
// are fixed when the handle is created.
type Handle struct {
	threshold core.Level
	sink      Sink

	owner     string
	attached  bool
	closeOnce sync.Once
	closeErr  error
}

// NewHandle creates a Handle that receives messages at threshold or above.
func NewHandle(threshold core.Level, s Sink) *Handle {
	return &Handle{threshold: threshold, sink: s}
}

// Threshold returns the lowest level the sink receives.
func (h *Handle) Threshold() core.Level {
	return h.threshold
}

// Sink returns the wrapped sink.
func (h *Handle) Sink() Sink {
	return h.sink
}

// Owner returns the name of the logger the handle is registered with.
func (h *Handle) Owner() string {
	return h.owner
}

// Attached reports whether the handle has been added to a registry.
func (h *Handle) Attached() bool {
	return h.attached
}

// accepts reports whether msg meets the handle's threshold.
func (h *Handle) accepts(msg *core.Message) bool {
	return h.sink != nil && msg.Level().Enabled(h.threshold)
}

// close tears down the sink at most once.
func (h *Handle) close() error {
	h.closeOnce.Do(func() {
		if c, ok := h.sink.(io.Closer); ok {
			h.closeErr = c.Close()
		}
	})
	return h.closeErr
}

func (h *Handle) flush() error {
	if f, ok := h.sink.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

var (
	// ErrNilHandle is returned when registering a nil handle or a handle without a sink.
	ErrNilHandle = errors.New("sink: nil handle")
	// ErrRegistryFull is returned when the registry is at capacity.
	ErrRegistryFull = errors.New("sink: registry full")
	// ErrAlreadyAttached is returned when a handle is registered twice.
	ErrAlreadyAttached = errors.New("sink: handle already attached")
)
