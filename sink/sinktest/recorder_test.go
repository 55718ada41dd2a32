package sinktest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/clog/core"
)

func TestRecorder(t *testing.T) {
	r := New()

	r.Deliver(core.NewMessage(core.InfoLevel, core.CallerInfo{}, time.Now(), "one", 0))
	r.Deliver(core.NewMessage(core.ErrorLevel, core.CallerInfo{}, time.Now(), "two", 0))

	assert.Equal(t, []string{"one", "two"}, r.Texts())
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, core.ErrorLevel, r.Messages()[1].Level())

	require.NoError(t, r.Flush())
	assert.Equal(t, 1, r.Flushes())

	require.NoError(t, r.Close())
	require.ErrorIs(t, r.Close(), ErrClosed)
	assert.Equal(t, 2, r.Closes())
}

func TestRecorder_PanicOn(t *testing.T) {
	r := &Recorder{PanicOn: "boom"}

	assert.Panics(t, func() {
		r.Deliver(core.NewMessage(core.InfoLevel, core.CallerInfo{}, time.Now(), "boom", 0))
	})
	assert.Zero(t, r.Len())
}
