package benchmark

import (
	"github.com/philipp01105/clog/core"
	"github.com/philipp01105/clog/sink"
)

// noopSink touches the message so delivery cannot be optimized away.
type noopSink struct {
	n int
}

func newNoopSink() sink.Sink {
	return &noopSink{}
}

func (s *noopSink) Deliver(m *core.Message) {
	s.n += len(m.Text())
}
