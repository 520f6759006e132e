// Copyright (c) 2026 The tricensus Authors
// SPDX-License-Identifier: MIT

// Package progresslog provides a zerolog-backed implementation of the
// census package's Progress interface, the default one cmd/census wires up
// for long-running enumeration and search jobs.
package progresslog

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Logger implements census.Progress by emitting structured log events
// through zerolog and observing ctx for cancellation, rather than exposing
// its own Cancel method -- cancellation is the caller's context to own.
type Logger struct {
	log      zerolog.Logger
	ctx      context.Context
	name     string
	interval time.Duration

	cancelled atomic.Bool
	finished  atomic.Bool
	lastLog   atomic.Int64 // unix nanos of the last message actually logged
}

// New returns a Logger named name, deriving its cancellation signal from
// ctx and rate-limiting SetMessage log lines to at most one per interval
// (a zero interval logs every call).
func New(ctx context.Context, log zerolog.Logger, name string, interval time.Duration) *Logger {
	l := &Logger{
		log:      log.With().Str("job", name).Logger(),
		ctx:      ctx,
		name:     name,
		interval: interval,
	}
	l.log.Info().Msg("census job started")
	return l
}

// IsCancelled reports whether ctx has been cancelled, latching the zerolog
// event for the transition to cancelled so it is only logged once.
func (l *Logger) IsCancelled() bool {
	if l.cancelled.Load() {
		return true
	}
	select {
	case <-l.ctx.Done():
		if l.cancelled.CompareAndSwap(false, true) {
			l.log.Warn().Err(l.ctx.Err()).Msg("census job cancelled")
		}
		return true
	default:
		return false
	}
}

// SetMessage logs msg at debug level, subject to the configured rate
// limit.
func (l *Logger) SetMessage(msg string) {
	now := time.Now().UnixNano()
	last := l.lastLog.Load()
	if l.interval > 0 && time.Duration(now-last) < l.interval {
		return
	}
	if !l.lastLog.CompareAndSwap(last, now) {
		return
	}
	l.log.Debug().Msg(msg)
}

// SetFinished logs completion once; repeated calls are no-ops.
func (l *Logger) SetFinished() {
	if l.finished.CompareAndSwap(false, true) {
		l.log.Info().Msg("census job finished")
	}
}
