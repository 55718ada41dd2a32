package sink

import (
	"github.com/philipp01105/clog/core"
)

// PanicFunc is told about a sink that panicked during Deliver.
type PanicFunc func(h *Handle, recovered any)

// Dispatch delivers msg to every handle whose threshold it meets, in
// order, and returns the number of sinks that received it. A panicking
// sink is recovered and reported to onPanic (which may be nil); delivery
// continues with the next handle.
func Dispatch(msg *core.Message, handles []*Handle, onPanic PanicFunc) int {
	if msg == nil {
		return 0
	}
	delivered := 0
	for _, h := range handles {
		if !h.accepts(msg) {
			continue
		}
		if deliver(h, msg, onPanic) {
			delivered++
		}
	}
	return delivered
}

func deliver(h *Handle, msg *core.Message, onPanic PanicFunc) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			if onPanic != nil {
				onPanic(h, r)
			}
		}
	}()
	h.sink.Deliver(msg)
	return true
}
