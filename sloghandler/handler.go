package sloghandler

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/philipp01105/clog/core"
	"github.com/philipp01105/clog/logger"
)

// Handler is an adapter that implements slog.Handler on top of a Logger.
type Handler struct {
	logger *logger.Logger
	level  core.Level
	attrs  string
	group  string
}

// New creates a slog.Handler that logs through l. Every level is
// forwarded unless raised with WithLevel.
func New(l *logger.Logger) *Handler {
	return &Handler{logger: l, level: core.TraceLevel}
}

// WithLevel returns a copy of the handler that ignores records below level.
func (h *Handler) WithLevel(level core.Level) *Handler {
	c := *h
	c.level = level
	return &c
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	lvl := SlogLevelToCore(level)
	return lvl >= h.level && h.logger.Enabled(lvl)
}

// Handle converts the record to a message and passes it to the logger.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(record.Message)
	b.WriteString(h.attrs)
	record.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.group, a)
		return true
	})

	t := record.Time
	if t.IsZero() {
		t = time.Now()
	}
	h.logger.Emit(core.NewMessage(SlogLevelToCore(record.Level), core.CallerFromPC(record.PC),
		t, b.String(), h.logger.MaxMessageSize()))
	return nil
}

// WithAttrs returns a new Handler with additional attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.group, a)
	}
	c := *h
	c.attrs = b.String()
	return &c
}

// WithGroup returns a new Handler with the given group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	if c.group != "" {
		c.group += "." + name
	} else {
		c.group = name
	}
	return &c
}

// SlogLevelToCore converts a slog.Level to a core.Level.
func SlogLevelToCore(level slog.Level) core.Level {
	switch {
	case level > slog.LevelError:
		return core.FatalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendAttr writes " key=value" to b, prefixing the key with group and
// flattening nested groups.
func appendAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			appendAttr(b, key, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	s := a.Value.String()
	if needsQuoting(s) {
		s = strconv.Quote(s)
	}
	b.WriteString(s)
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r == ' ' || r == '=' || r == '"' || r < 0x20 {
			return true
		}
	}
	return false
}
