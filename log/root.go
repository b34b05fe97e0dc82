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

package log

import (
	"sync/atomic"

	"github.com/mattn/go-colorable"
)

var root atomic.Value

func init() {
	root.Store(&logger{ctx: []interface{}{}, h: new(swapHandler)})
	Root().SetHandler(StreamHandler(colorable.NewColorableStderr(), TerminalFormat(true)))
}

// Root returns the root logger.
func Root() Logger {
	return root.Load().(Logger)
}

// SetDefault sets l as the default/root logger; used by callers that want
// to fully replace the root logger's behavior (e.g. swap in a custom test
// double) rather than just reconfigure its handler.
func SetDefault(l Logger) {
	root.Store(l)
}

// CallerFileHandler returns a Handler that annotates each record with the
// "caller" context key, set to "file:line" of the record's Call, the
// github.com/go-stack/stack frame captured when the record was written.
func CallerFileHandler(h Handler) Handler {
	return FuncHandler(func(r *Record) error {
		r.Ctx = append(r.Ctx, "caller", r.Call.String())
		return h.Log(r)
	})
}

// The following package-level helpers log against Root(), the same
// convenience surface the teacher's own call sites use instead of
// threading a Logger through every function.

func New(ctx ...interface{}) Logger           { return Root().New(ctx...) }
func Trace(msg string, ctx ...interface{})    { Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...interface{})    { Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...interface{})     { Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...interface{})     { Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...interface{})    { Root().Error(msg, ctx...) }
func Crit(msg string, ctx ...interface{})     { Root().Crit(msg, ctx...) }

// NewDefaultHandler wires a level-filtered, colorized stderr handler,
// mirroring the teacher's glog-style CLI flag wiring without importing a CLI framework
// (out of scope per spec.md §1).
func NewDefaultHandler(maxLvl Lvl) Handler {
	return LvlFilterHandler(maxLvl, StreamHandler(colorable.NewColorableStderr(), TerminalFormat(true)))
}
