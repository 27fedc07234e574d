// MFP  - Miulti-Function Printers and scanners toolkit
// log  - Structured, context-scoped logging
//
// Copyright (C) 2024 and up by Alexander Pevzner (pzz@apevzner.com)
// See LICENSE for license terms and conditions
//
// Log records: group several related lines and send them in order

package log

import (
	"context"
	"encoding"
	"fmt"
	"strings"
)

// Record accumulates a group of related log lines (e.g., all lines
// describing a single discovery event or HTTP transaction) and
// sends them to the Sink on Commit, in the order they were added.
// Each line goes out with its own Sink.Send call, so the lines of
// records committed concurrently may interleave. Every line is sent
// at LevelDebug, whichever method appended it.
type Record struct {
	ctx   context.Context
	lines []string
}

// Begin starts a new Record, bound to ctx's prefix and sink.
func Begin(ctx context.Context) *Record {
	return &Record{ctx: ctx}
}

// Debug appends a debug-level line to the record.
func (rec *Record) Debug(format string, args ...any) *Record {
	rec.add(LevelDebug, format, args...)
	return rec
}

// Info appends a line to the record. The level is not kept; see [Record].
func (rec *Record) Info(format string, args ...any) *Record {
	rec.add(LevelInfo, format, args...)
	return rec
}

// Warning appends a line to the record. The level is not kept; see [Record].
func (rec *Record) Warning(format string, args ...any) *Record {
	rec.add(LevelWarning, format, args...)
	return rec
}

// Error appends a line to the record. The level is not kept; see [Record].
func (rec *Record) Error(format string, args ...any) *Record {
	rec.add(LevelError, format, args...)
	return rec
}

// Object appends the text representation of obj, indented by indent
// spaces per line, one line per line of its MarshalText output.
func (rec *Record) Object(level Level, indent int, obj encoding.TextMarshaler) *Record {
	text, err := obj.MarshalText()
	if err != nil {
		rec.add(level, "%s", err)
		return rec
	}

	pad := strings.Repeat(" ", indent)
	for _, line := range strings.Split(string(text), "\n") {
		rec.add(level, "%s%s", pad, line)
	}
	return rec
}

// Commit sends the accumulated lines to the context's Sink, in
// order, one Send call per line at LevelDebug, and resets the record.
func (rec *Record) Commit() {
	for _, line := range rec.lines {
		sinkOf(rec.ctx).Send(LevelDebug, line)
	}
	rec.lines = nil
}

// Flush sends the lines accumulated so far, same as Commit. It's
// used to push out a record's first lines as soon as they're known
// (e.g., the HTTP status line), while the record stays open for more.
func (rec *Record) Flush() {
	rec.Commit()
}

func (rec *Record) add(level Level, format string, args ...any) {
	_ = level
	rec.lines = append(rec.lines, sprintfPrefixed(rec.ctx, format, args...))
}

func sprintfPrefixed(ctx context.Context, format string, args ...any) string {
	prefix := prefixOf(ctx)
	msg := fmt.Sprintf(format, args...)
	if prefix != "" {
		return prefix + ": " + msg
	}
	return msg
}
