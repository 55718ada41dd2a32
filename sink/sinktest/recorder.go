// Package sinktest provides a recording Sink for tests of code that
// logs through clog.
package sinktest

import (
	"errors"
	"sync"
	"time"

	"github.com/philipp01105/clog/core"
)

// ErrClosed is returned by Close when the recorder was already closed.
var ErrClosed = errors.New("sinktest: recorder closed twice")

// Recorder is a thread-safe Sink that keeps every delivered message.
type Recorder struct {
	// Delay, when set, is slept inside every Deliver to simulate a slow sink.
	Delay time.Duration
	// PanicOn, when set, makes Deliver panic for messages with this text.
	PanicOn string
	// CloseErr is returned from Close.
	CloseErr error
	// OnDeliver, when set, is called after a message is recorded.
	OnDeliver func(msg *core.Message)

	mu       sync.Mutex
	messages []*core.Message
	flushes  int
	closes   int
}

// New creates an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

// Deliver records msg.
func (r *Recorder) Deliver(msg *core.Message) {
	if r.Delay > 0 {
		time.Sleep(r.Delay)
	}
	if r.PanicOn != "" && msg.Text() == r.PanicOn {
		panic("sinktest: panic on " + r.PanicOn)
	}
	r.mu.Lock()
	r.messages = append(r.messages, msg)
	r.mu.Unlock()

	if r.OnDeliver != nil {
		r.OnDeliver(msg)
	}
}

// Flush counts the call.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	r.flushes++
	r.mu.Unlock()
	return nil
}

// Close counts the call and returns CloseErr. A second Close returns ErrClosed.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closes++
	if r.closes > 1 {
		return ErrClosed
	}
	return r.CloseErr
}

// Messages returns a copy of the recorded messages in delivery order.
func (r *Recorder) Messages() []*core.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*core.Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Texts returns the bodies of the recorded messages in delivery order.
func (r *Recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	for i, m := range r.messages {
		out[i] = m.Text()
	}
	return out
}

// Len returns the number of recorded messages.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

// Flushes returns how many times Flush was called.
func (r *Recorder) Flushes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushes
}

// Closes returns how many times Close was called.
func (r *Recorder) Closes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closes
}
