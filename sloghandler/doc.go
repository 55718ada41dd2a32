// Package sloghandler provides an adapter from a clog Logger to
// log/slog.Handler, so code written against the standard library's
// structured logging can feed clog sinks.
//
// Records become clog messages: the slog level is mapped onto the clog
// levels, the source location comes from the record's program counter,
// and attributes are appended to the message text as key=value pairs
// with group names joined by dots.
package sloghandler
