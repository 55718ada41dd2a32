package logger

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/philipp01105/clog/core"
	"github.com/philipp01105/clog/sink"
)

// ErrInvalidConfig is returned by New when the configuration cannot be used.
var ErrInvalidConfig = errors.New("invalid logger config")

// Mode selects how Log delivers messages. It is fixed for a logger's lifetime.
type Mode int

const (
	// Sync delivers on the caller's goroutine before Log returns.
	Sync Mode = iota
	// Async queues messages for a single background worker.
	Async
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case Sync:
		return "sync"
	case Async:
		return "async"
	default:
		return "unknown"
	}
}

// DefaultFlushInterval is the auto-flush interval used when AutoFlush is
// enabled without an explicit FlushInterval.
const DefaultFlushInterval = time.Second

// Config holds configuration for a Logger
type Config struct {
	// Name identifies the logger in diagnostics and sink back-references
	Name string
	// Mode selects synchronous or asynchronous delivery (default: Sync)
	Mode Mode
	// AutoFlush enables the worker's periodic best-effort drain (async only)
	AutoFlush bool
	// FlushInterval is the auto-flush period (default: 1s when AutoFlush is set)
	FlushInterval time.Duration
	// MaxSinks bounds the sink registry (default: 16)
	MaxSinks int
	// MaxMessageSize is the message buffer size; text keeps at most
	// MaxMessageSize-1 bytes (default: 1024)
	MaxMessageSize int
	// CoarseTimestamps stamps messages from the cached coarse clock
	CoarseTimestamps bool
	// Diagnostics receives the engine's own events (default: no-op)
	Diagnostics *zap.Logger
}

// applyDefaults fills in zero-value fields with defaults.
func applyDefaults(cfg *Config) {
	if cfg.MaxSinks == 0 {
		cfg.MaxSinks = sink.DefaultCapacity
	}
	if cfg.MaxMessageSize == 0 {
		cfg.MaxMessageSize = core.DefaultMaxMessageSize
	}
	if cfg.AutoFlush && cfg.FlushInterval == 0 {
		cfg.FlushInterval = DefaultFlushInterval
	}
	if cfg.Diagnostics == nil {
		cfg.Diagnostics = zap.NewNop()
	}
}

func (cfg *Config) validate() error {
	switch {
	case cfg.Mode != Sync && cfg.Mode != Async:
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, int(cfg.Mode))
	case cfg.MaxSinks < 0:
		return fmt.Errorf("%w: negative MaxSinks %d", ErrInvalidConfig, cfg.MaxSinks)
	case cfg.MaxMessageSize < 0:
		return fmt.Errorf("%w: negative MaxMessageSize %d", ErrInvalidConfig, cfg.MaxMessageSize)
	case cfg.FlushInterval < 0:
		return fmt.Errorf("%w: negative FlushInterval %s", ErrInvalidConfig, cfg.FlushInterval)
	}
	return nil
}
