// MFP  - Miulti-Function Printers and scanners toolkit
// log  - Structured, context-scoped logging
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Logging facade

// Package log provides a small context-carried logging facade used
// throughout the scanner backend. It does not own any sink: by
// default messages go to the standard logger, but a context may
// carry a different [Sink] (the concrete trace/log sink wiring is an
// external collaborator, out of scope for this module).
package log

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
)

// Level is the logging severity level.
type Level int

// Known levels, most to least severe.
const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
	LevelDebug
)

// Sink receives formatted log lines.
type Sink interface {
	Send(level Level, line string)
}

// defaultSink writes to the standard library logger.
type defaultSink struct {
	lock sync.Mutex
	std  *log.Logger
}

func (s *defaultSink) Send(level Level, line string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.std.Print(line)
}

var stderrSink Sink = &defaultSink{std: log.New(os.Stderr, "", log.LstdFlags)}

type ctxKey int

const (
	keyPrefix ctxKey = iota
	keySink
)

// WithPrefix returns a derived context that prepends prefix to every
// message logged through it. Nested prefixes accumulate, separated
// by ": ".
func WithPrefix(ctx context.Context, prefix string) context.Context {
	if p, ok := ctx.Value(keyPrefix).(string); ok && p != "" {
		prefix = p + ": " + prefix
	}
	return context.WithValue(ctx, keyPrefix, prefix)
}

// WithSink returns a derived context that logs to the given Sink
// instead of the default stderr sink.
func WithSink(ctx context.Context, sink Sink) context.Context {
	return context.WithValue(ctx, keySink, sink)
}

func prefixOf(ctx context.Context) string {
	p, _ := ctx.Value(keyPrefix).(string)
	return p
}

func sinkOf(ctx context.Context) Sink {
	if s, ok := ctx.Value(keySink).(Sink); ok {
		return s
	}
	return stderrSink
}

func emit(ctx context.Context, level Level, format string, args ...any) {
	prefix := prefixOf(ctx)
	msg := fmt.Sprintf(format, args...)
	if prefix != "" {
		msg = prefix + ": " + msg
	}
	sinkOf(ctx).Send(level, msg)
}

// Debug logs a debug-level message.
func Debug(ctx context.Context, format string, args ...any) {
	emit(ctx, LevelDebug, format, args...)
}

// Info logs an info-level message.
func Info(ctx context.Context, format string, args ...any) {
	emit(ctx, LevelInfo, format, args...)
}

// Warning logs a warning-level message.
func Warning(ctx context.Context, format string, args ...any) {
	emit(ctx, LevelWarning, format, args...)
}

// Error logs an error-level message.
func Error(ctx context.Context, format string, args ...any) {
	emit(ctx, LevelError, format, args...)
}
