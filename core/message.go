package core

import (
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultMaxMessageSize is the message buffer size used when none is configured.
// One byte of it is reserved, so at most DefaultMaxMessageSize-1 bytes of text
// are kept.
const DefaultMaxMessageSize = 1024

// Message is a single log event. It is immutable once built by NewMessage,
// so the same *Message can be handed to several sinks.
type Message struct {
	time      time.Time
	level     Level
	caller    CallerInfo
	text      string
	truncated bool
}

// NewMessage builds a Message whose text is bounded by limit. Text longer
// than limit-1 bytes is cut at the last rune boundary that fits.
func NewMessage(level Level, caller CallerInfo, t time.Time, text string, limit int) *Message {
	if limit <= 0 {
		limit = DefaultMaxMessageSize
	}
	body, cut := truncate(text, limit-1)
	return &Message{
		time:      t,
		level:     level,
		caller:    caller,
		text:      body,
		truncated: cut,
	}
}

// Level returns the severity of the message
func (m *Message) Level() Level { return m.level }

// Time returns when the message was created
func (m *Message) Time() time.Time { return m.time }

// Caller returns the source location the message was logged from
func (m *Message) Caller() CallerInfo { return m.caller }

// Text returns the (possibly truncated) message body
func (m *Message) Text() string { return m.text }

// Truncated reports whether the body was cut to fit the buffer
func (m *Message) Truncated() bool { return m.truncated }

func truncate(s string, max int) (string, bool) {
	if max < 0 {
		max = 0
	}
	if len(s) <= max {
		return s, false
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	// Copy so a huge formatted string is not pinned by the retained prefix.
	return strings.Clone(s[:cut]), true
}
