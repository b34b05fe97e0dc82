// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package log implements a leveled, contextual logger in the style of the
// teacher's historical log15-based package: records carry a level, a
// message, and an ordered list of key/value context pairs, and are routed
// through a chain of Handlers (a filter, a multiplexer, a formatter over a
// stream) rather than a single global sink.
package log

import (
	"time"

	"github.com/go-stack/stack"
)

// Record is a single log event: everything a Handler needs to format and
// emit it.
type Record struct {
	Time time.Time
	Lvl  Lvl
	Msg  string
	Ctx  []interface{}
	Call stack.Call
}

// Logger writes structured, leveled log records with persistent context.
type Logger interface {
	// New returns a Logger whose context is this logger's context with ctx
	// appended; it does not affect this logger's own output.
	New(ctx ...interface{}) Logger

	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})

	// GetHandler gets the handler associated with this logger.
	GetHandler() Handler
	// SetHandler updates this logger (and all children previously
	// constructed from it via New) to write records to the given handler.
	SetHandler(h Handler)
}

type logger struct {
	ctx []interface{}
	h   *swapHandler
}

// swapHandler lets SetHandler replace the active handler on a logger (and
// every descendant New() produced from it, since they share this pointer)
// without a lock on every Log call.
type swapHandler struct {
	handler Handler
}

func (s *swapHandler) Log(r *Record) error {
	h := s.handler
	if h == nil {
		h = DiscardHandler()
	}
	return h.Log(r)
}

// New creates a root logger carrying ctx, writing to DiscardHandler until
// SetHandler or SetDefault configures it.
func New(ctx ...interface{}) Logger {
	return &logger{ctx: normalize(ctx), h: new(swapHandler)}
}

func (l *logger) write(msg string, lvl Lvl, ctx []interface{}, skip int) {
	r := &Record{
		Time: time.Now(),
		Lvl:  lvl,
		Msg:  msg,
		Ctx:  newContext(l.ctx, ctx),
		Call: stack.Caller(skip),
	}
	_ = l.h.Log(r)
}

func (l *logger) New(ctx ...interface{}) Logger {
	child := &logger{ctx: newContext(l.ctx, normalize(ctx)), h: new(swapHandler)}
	child.SetHandler(l.h)
	return child
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(msg, LvlTrace, ctx, 3) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(msg, LvlDebug, ctx, 3) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(msg, LvlInfo, ctx, 3) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(msg, LvlWarn, ctx, 3) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(msg, LvlError, ctx, 3) }
func (l *logger) Crit(msg string, ctx ...interface{})  { l.write(msg, LvlCrit, ctx, 3) }

func (l *logger) GetHandler() Handler { return l.h.handler }
func (l *logger) SetHandler(h Handler) {
	l.h.handler = h
}

func newContext(prefix []interface{}, suffix []interface{}) []interface{} {
	normalizedSuffix := normalize(suffix)
	newCtx := make([]interface{}, 0, len(prefix)+len(normalizedSuffix))
	newCtx = append(newCtx, prefix...)
	newCtx = append(newCtx, normalizedSuffix...)
	return newCtx
}

// normalize pads an odd-length context with an errorKey/missing-value
// marker so key/value formatting never indexes out of range.
func normalize(ctx []interface{}) []interface{} {
	if len(ctx)%2 != 0 {
		ctx = append(ctx, nil, errorKey, "Normalized odd number of arguments by adding nil")
	}
	return ctx
}

const errorKey = "LOG15_ERROR"
