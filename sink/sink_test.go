package sink_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/philipp01105/clog/core"
	"github.com/philipp01105/clog/sink"
	"github.com/philipp01105/clog/sink/sinktest"
)

func msg(level core.Level, text string) *core.Message {
	return core.NewMessage(level, core.CallerInfo{}, time.Now(), text, 0)
}

func TestRegistry_Add(t *testing.T) {
	r := sink.NewRegistry(2)
	h := sink.NewHandle(core.InfoLevel, sinktest.New())

	require.NoError(t, r.Add(h, "app"))
	assert.True(t, h.Attached())
	assert.Equal(t, "app", h.Owner())
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 2, r.Cap())
}

func TestHandle_Accessors(t *testing.T) {
	rec := sinktest.New()
	h := sink.NewHandle(core.WarnLevel, rec)

	assert.Equal(t, core.WarnLevel, h.Threshold())
	assert.Same(t, rec, h.Sink())
	assert.False(t, h.Attached())

	require.NoError(t, sink.NewRegistry(1).Add(h, "app"))
	assert.Equal(t, core.WarnLevel, h.Threshold(), "registration must not change the threshold")
}

func TestRegistry_AddRejects(t *testing.T) {
	tcs := map[string]struct {
		handle *sink.Handle
		want   error
	}{
		"nil handle": {
			handle: nil,
			want:   sink.ErrNilHandle,
		},
		"nil sink": {
			handle: sink.NewHandle(core.InfoLevel, nil),
			want:   sink.ErrNilHandle,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			r := sink.NewRegistry(4)
			require.ErrorIs(t, r.Add(tc.handle, "app"), tc.want)
			assert.Zero(t, r.Len())
		})
	}
}

func TestRegistry_Capacity(t *testing.T) {
	const n = 3
	r := sink.NewRegistry(n)
	for i := 0; i < n; i++ {
		require.NoError(t, r.Add(sink.NewHandle(core.TraceLevel, sinktest.New()), "app"))
	}

	extra := sink.NewHandle(core.TraceLevel, sinktest.New())
	require.ErrorIs(t, r.Add(extra, "app"), sink.ErrRegistryFull)
	assert.Equal(t, n, r.Len())
	assert.False(t, extra.Attached(), "rejected handle must not be modified")
	assert.Empty(t, extra.Owner())
}

func TestRegistry_DefaultCapacity(t *testing.T) {
	assert.Equal(t, sink.DefaultCapacity, sink.NewRegistry(0).Cap())
}

func TestRegistry_AlreadyAttached(t *testing.T) {
	h := sink.NewHandle(core.InfoLevel, sinktest.New())
	require.NoError(t, sink.NewRegistry(1).Add(h, "first"))

	other := sink.NewRegistry(1)
	require.ErrorIs(t, other.Add(h, "second"), sink.ErrAlreadyAttached)
	assert.Equal(t, "first", h.Owner())
	assert.Zero(t, other.Len())
}

func TestRegistry_CloseOnceInOrder(t *testing.T) {
	var order []string
	r := sink.NewRegistry(3)
	for _, name := range []string{"a", "b", "c"} {
		name := name
		require.NoError(t, r.Add(sink.NewHandle(core.InfoLevel, &closer{close: func() error {
			order = append(order, name)
			return nil
		}}), "app"))
	}

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestRegistry_CloseCombinesErrors(t *testing.T) {
	errA := errors.New("a failed")
	errC := errors.New("c failed")

	r := sink.NewRegistry(3)
	a := &sinktest.Recorder{CloseErr: errA}
	b := sinktest.New()
	c := &sinktest.Recorder{CloseErr: errC}
	for _, s := range []sink.Sink{a, b, c} {
		require.NoError(t, r.Add(sink.NewHandle(core.InfoLevel, s), "app"))
	}

	err := r.Close()
	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errC)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Equal(t, 1, b.Closes())
}

func TestRegistry_CloseSkipsNonClosers(t *testing.T) {
	r := sink.NewRegistry(1)
	require.NoError(t, r.Add(sink.NewHandle(core.InfoLevel, sink.Discard), "app"))
	require.NoError(t, r.Close())
}

func TestRegistry_Flush(t *testing.T) {
	rec := sinktest.New()
	r := sink.NewRegistry(2)
	require.NoError(t, r.Add(sink.NewHandle(core.InfoLevel, rec), "app"))
	require.NoError(t, r.Add(sink.NewHandle(core.InfoLevel, sink.Discard), "app"))

	require.NoError(t, r.Flush())
	assert.Equal(t, 1, rec.Flushes())
}

func TestDispatch_Threshold(t *testing.T) {
	debug := sinktest.New()
	errs := sinktest.New()
	handles := []*sink.Handle{
		sink.NewHandle(core.DebugLevel, debug),
		sink.NewHandle(core.ErrorLevel, errs),
	}

	assert.Equal(t, 0, sink.Dispatch(msg(core.TraceLevel, "trace"), handles, nil))
	assert.Equal(t, 1, sink.Dispatch(msg(core.InfoLevel, "info"), handles, nil))
	assert.Equal(t, 2, sink.Dispatch(msg(core.ErrorLevel, "error"), handles, nil))

	assert.Equal(t, []string{"info", "error"}, debug.Texts())
	assert.Equal(t, []string{"error"}, errs.Texts())
}

func TestDispatch_RegistrationOrder(t *testing.T) {
	var order []int
	var handles []*sink.Handle
	for i := 0; i < 5; i++ {
		i := i
		handles = append(handles, sink.NewHandle(core.TraceLevel, sink.Func(func(*core.Message) {
			order = append(order, i)
		})))
	}

	sink.Dispatch(msg(core.InfoLevel, "x"), handles, nil)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestDispatch_RecoversPanic(t *testing.T) {
	bad := &sinktest.Recorder{PanicOn: "boom"}
	good := sinktest.New()
	handles := []*sink.Handle{
		sink.NewHandle(core.InfoLevel, bad),
		sink.NewHandle(core.InfoLevel, good),
	}

	var panicked *sink.Handle
	var value any
	n := sink.Dispatch(msg(core.InfoLevel, "boom"), handles, func(h *sink.Handle, r any) {
		panicked = h
		value = r
	})

	assert.Equal(t, 1, n)
	assert.Same(t, handles[0], panicked)
	assert.Equal(t, "sinktest: panic on boom", fmt.Sprint(value))
	assert.Equal(t, []string{"boom"}, good.Texts())
}

func TestDispatch_NilMessage(t *testing.T) {
	rec := sinktest.New()
	assert.Zero(t, sink.Dispatch(nil, []*sink.Handle{sink.NewHandle(core.TraceLevel, rec)}, nil))
	assert.Zero(t, rec.Len())
}

type closer struct {
	close func() error
}

func (c *closer) Deliver(*core.Message) {}

func (c *closer) Close() error { return c.close() }

func BenchmarkDispatch(b *testing.B) {
	handles := []*sink.Handle{
		sink.NewHandle(core.DebugLevel, sink.Discard),
		sink.NewHandle(core.WarnLevel, sink.Discard),
		sink.NewHandle(core.ErrorLevel, sink.Discard),
	}
	m := msg(core.WarnLevel, "benchmark")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink.Dispatch(m, handles, nil)
	}
}
