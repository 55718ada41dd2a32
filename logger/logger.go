package logger

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/clog/core"
	"github.com/philipp01105/clog/queue"
	"github.com/philipp01105/clog/sink"
)

var (
	// ErrNilLogger is returned when a method is called on a nil *Logger.
	ErrNilLogger = errors.New("nil logger")
	// ErrClosed is returned by operations on a logger that has been shut down.
	ErrClosed = errors.New("logger is shut down")
)

// noSinks is the minimum level reported while no sink is registered; no
// Level reaches it.
const noSinks = int32(core.FatalLevel) + 1

// Logger owns a sink registry and, in async mode, a delivery queue and a
// single background worker. All dispatch happens under the engine lock, so
// sinks never see concurrent deliveries from one Logger.
type Logger struct {
	name           string
	mode           Mode
	maxMessageSize int
	autoFlush      bool
	flushInterval  time.Duration
	now            func() time.Time
	diag           *zap.Logger

	mu       sync.Mutex // engine lock: sinks, closed, and every dispatch
	sinks    *sink.Registry
	closed   bool
	minLevel atomic.Int32

	queue   *queue.Queue[*core.Message]
	gate    sync.RWMutex // held shared by async producers across push
	running atomic.Bool
	stop    chan struct{}
	wg      sync.WaitGroup
	ticker  tickerFunc

	shutdownOnce sync.Once
	shutdownErr  error

	onPanic sink.PanicFunc
	stats   stats
}

// New creates a Logger. In Async mode the background worker is running
// when New returns.
func New(cfg Config) (*Logger, error) {
	return newWithTicker(cfg, newTicker)
}

func newWithTicker(cfg Config, ticker tickerFunc) (*Logger, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	l := &Logger{
		name:           cfg.Name,
		mode:           cfg.Mode,
		maxMessageSize: cfg.MaxMessageSize,
		autoFlush:      cfg.AutoFlush && cfg.Mode == Async,
		flushInterval:  cfg.FlushInterval,
		now:            core.Clock(cfg.CoarseTimestamps),
		diag:           cfg.Diagnostics.Named("clog").With(zap.String("logger", cfg.Name)),
		sinks:          sink.NewRegistry(cfg.MaxSinks),
		ticker:         ticker,
	}
	l.minLevel.Store(noSinks)
	l.onPanic = l.sinkPanicked
	l.running.Store(true)

	if l.mode == Async {
		l.queue = queue.New[*core.Message]()
		l.stop = make(chan struct{})
		l.wg.Add(1)
		go l.process()
	}

	l.diag.Debug("logger started",
		zap.Stringer("mode", l.mode),
		zap.Bool("auto_flush", l.autoFlush),
		zap.Duration("flush_interval", l.flushInterval),
		zap.Int("max_sinks", cfg.MaxSinks),
	)
	return l, nil
}

// Name returns the configured logger name
func (l *Logger) Name() string {
	if l == nil {
		return ""
	}
	return l.name
}

// Mode returns the delivery mode
func (l *Logger) Mode() Mode {
	if l == nil {
		return Sync
	}
	return l.mode
}

// Stats returns a snapshot of the current statistics
func (l *Logger) Stats() Snapshot {
	if l == nil {
		return Snapshot{}
	}
	return l.stats.snapshot()
}

// MaxMessageSize returns the buffer size message bodies are bounded by.
// A body holds at most MaxMessageSize-1 bytes.
func (l *Logger) MaxMessageSize() int {
	if l == nil {
		return core.DefaultMaxMessageSize
	}
	return l.maxMessageSize
}

// SinkCount returns the number of registered sinks
func (l *Logger) SinkCount() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sinks.Len()
}

// AddSink registers h after the sinks already present. Messages are
// fanned out in registration order. A rejected handle leaves the logger
// and the handle unchanged.
func (l *Logger) AddSink(h *sink.Handle) error {
	if l == nil {
		return ErrNilLogger
	}

	l.mu.Lock()
	var err error
	if l.closed {
		err = ErrClosed
	} else {
		err = l.sinks.Add(h, l.name)
	}
	if err == nil && int32(h.Threshold()) < l.minLevel.Load() {
		l.minLevel.Store(int32(h.Threshold()))
	}
	l.mu.Unlock()

	if err != nil {
		l.stats.rejectedSinks.Add(1)
		l.diag.Warn("sink rejected", zap.Error(err))
		return err
	}
	l.diag.Debug("sink added", zap.Stringer("threshold", h.Threshold()))
	return nil
}

// Enabled reports whether any registered sink accepts messages at level.
// Messages below every threshold are discarded before they are formatted.
func (l *Logger) Enabled(level Level) bool {
	if l == nil {
		return false
	}
	return int32(level) >= l.minLevel.Load()
}

// Log formats a message and hands it to the sinks whose threshold it
// meets. In Sync mode delivery finishes before Log returns; in Async mode
// the message is queued. Arguments are applied with fmt.Sprintf; without
// arguments the format is used verbatim. An empty format is ignored.
func (l *Logger) Log(level Level, format string, args ...any) {
	if l == nil || format == "" {
		return
	}
	l.logf(level, core.GetCaller(1), format, args)
}

// LogAt is Log with an explicit source location.
func (l *Logger) LogAt(level Level, caller core.CallerInfo, format string, args ...any) {
	if l == nil || format == "" {
		return
	}
	l.logf(level, caller, format, args)
}

// Emit delivers a pre-built message. It exists for bridges that produce
// their own messages. The message is filtered by level like any other,
// and a body longer than the logger's MaxMessageSize allows is truncated
// to fit.
func (l *Logger) Emit(msg *core.Message) {
	if l == nil || msg == nil {
		return
	}
	if !l.Enabled(msg.Level()) {
		l.stats.unrouted.Add(1)
		return
	}
	if len(msg.Text()) >= l.maxMessageSize {
		msg = core.NewMessage(msg.Level(), msg.Caller(), msg.Time(), msg.Text(), l.maxMessageSize)
	}
	l.emit(msg)
}

func (l *Logger) logf(level Level, caller core.CallerInfo, format string, args []any) {
	if !l.Enabled(level) {
		l.stats.unrouted.Add(1)
		return
	}
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	l.emit(core.NewMessage(level, caller, l.now(), text, l.maxMessageSize))
}

func (l *Logger) emit(msg *core.Message) {
	if !l.running.Load() {
		return
	}

	if l.mode == Async {
		// Shutdown flips running under the exclusive gate, so a push that
		// sees running here lands before the worker's final drain.
		l.gate.RLock()
		if !l.running.Load() {
			l.gate.RUnlock()
			return
		}
		l.queue.Push(msg)
		l.gate.RUnlock()
		l.count(msg)
		l.stats.enqueued.Add(1)
		return
	}

	l.mu.Lock()
	if !l.closed {
		l.count(msg)
		l.dispatch(msg)
	}
	l.mu.Unlock()
}

func (l *Logger) count(msg *core.Message) {
	l.stats.logged.Add(1)
	if msg.Truncated() {
		l.stats.truncated.Add(1)
	}
}

// dispatch fans msg out to the registered sinks. l.mu must be held.
func (l *Logger) dispatch(msg *core.Message) {
	n := sink.Dispatch(msg, l.sinks.Handles(), l.onPanic)
	if n == 0 {
		l.stats.unrouted.Add(1)
		return
	}
	l.stats.delivered.Add(uint64(n))
}

// drain pops and dispatches up to limit queued messages, or all of them
// when limit is negative. l.mu must be held.
func (l *Logger) drain(limit int) int {
	n := 0
	for limit < 0 || n < limit {
		msg, ok := l.queue.Pop()
		if !ok {
			break
		}
		l.dispatch(msg)
		n++
	}
	return n
}

func (l *Logger) sinkPanicked(h *sink.Handle, r any) {
	l.stats.sinkPanics.Add(1)
	l.diag.Error("sink panicked",
		zap.Stringer("threshold", h.Threshold()),
		zap.String("sink", fmt.Sprintf("%T", h.Sink())),
		zap.Any("panic", r),
	)
}

// Flush delivers every message queued at the time of the call and then
// flushes sinks that buffer output. In Sync mode nothing is ever queued,
// so only sink buffers are flushed.
func (l *Logger) Flush() error {
	if l == nil {
		return ErrNilLogger
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	if l.mode == Async {
		// The worker pops only while holding l.mu, so everything enqueued
		// before this call is either delivered already or still queued.
		l.drain(l.queue.Len())
	}
	return l.sinks.Flush()
}

// Shutdown stops the logger. In Async mode it waits for the worker to
// deliver every queued message. Each sink is then flushed and torn down
// exactly once, in registration order. Later calls return the first
// call's result. The logger must not be used after Shutdown.
func (l *Logger) Shutdown() error {
	if l == nil {
		return ErrNilLogger
	}

	l.shutdownOnce.Do(func() {
		l.gate.Lock()
		l.running.Store(false)
		l.gate.Unlock()
		if l.mode == Async {
			close(l.stop)
			l.wg.Wait()
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.mode == Async {
			// Normally empty: the worker drains before it exits.
			if n := l.drain(-1); n > 0 {
				l.diag.Debug("delivered late messages", zap.Int("count", n))
			}
		}
		err := l.sinks.Flush()
		err = multierr.Append(err, l.sinks.Close())
		l.closed = true
		l.shutdownErr = err

		if err != nil {
			l.diag.Warn("sink teardown failed", zap.Error(err))
		}
		l.diag.Debug("logger stopped", zap.Int("sinks", l.sinks.Len()))
	})
	return l.shutdownErr
}

// Trace logs a trace message
func (l *Logger) Trace(msg string) {
	if l == nil {
		return
	}
	l.logf(TraceLevel, core.GetCaller(1), msg, nil)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	l.logf(DebugLevel, core.GetCaller(1), msg, nil)
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.logf(InfoLevel, core.GetCaller(1), msg, nil)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.logf(WarnLevel, core.GetCaller(1), msg, nil)
}

// Error logs an error message
func (l *Logger) Error(msg string) {
	if l == nil {
		return
	}
	l.logf(ErrorLevel, core.GetCaller(1), msg, nil)
}

// Fatal logs a fatal message. It does not exit the process.
func (l *Logger) Fatal(msg string) {
	if l == nil {
		return
	}
	l.logf(FatalLevel, core.GetCaller(1), msg, nil)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...any) {
	if l == nil || format == "" {
		return
	}
	l.logf(TraceLevel, core.GetCaller(1), format, args)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || format == "" {
		return
	}
	l.logf(DebugLevel, core.GetCaller(1), format, args)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...any) {
	if l == nil || format == "" {
		return
	}
	l.logf(InfoLevel, core.GetCaller(1), format, args)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...any) {
	if l == nil || format == "" {
		return
	}
	l.logf(WarnLevel, core.GetCaller(1), format, args)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...any) {
	if l == nil || format == "" {
		return
	}
	l.logf(ErrorLevel, core.GetCaller(1), format, args)
}

// Fatalf logs a fatal message with formatting. It does not exit the process.
func (l *Logger) Fatalf(format string, args ...any) {
	if l == nil || format == "" {
		return
	}
	l.logf(FatalLevel, core.GetCaller(1), format, args)
}
