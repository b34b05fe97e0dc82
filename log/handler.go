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
	"io"
	"sync"
)

// Handler writes a Record somewhere -- a stream, a multiplexer, a filter.
// Handlers are composed rather than subclassed: StreamHandler wraps a
// Format over an io.Writer, LvlFilterHandler wraps another Handler and
// drops records above a threshold level, and so on.
type Handler interface {
	Log(r *Record) error
}

// FuncHandler turns a plain function into a Handler.
type FuncHandler func(r *Record) error

func (h FuncHandler) Log(r *Record) error {
	return h(r)
}

// StreamHandler writes records to wr, serialized with fmtr, one per
// Write call. It serializes concurrent writers with a mutex, the way the
// teacher's own log15-derived handler does, since multiple goroutines
// (send loop, receive loop) may log concurrently on the same session.
func StreamHandler(wr io.Writer, fmtr Format) Handler {
	h := FuncHandler(func(r *Record) error {
		_, err := wr.Write(fmtr.Format(r))
		return err
	})
	return syncHandler(h)
}

func syncHandler(h Handler) Handler {
	var mu sync.Mutex
	return FuncHandler(func(r *Record) error {
		mu.Lock()
		defer mu.Unlock()
		return h.Log(r)
	})
}

// LvlFilterHandler returns a Handler that only lets records at or above
// maxLvl's severity (i.e. Lvl <= maxLvl, since Lvl is ordered
// most-to-least severe) through to h.
func LvlFilterHandler(maxLvl Lvl, h Handler) Handler {
	return FuncHandler(func(r *Record) error {
		if r.Lvl > maxLvl {
			return nil
		}
		return h.Log(r)
	})
}

// MultiHandler dispatches every record to each of hs in turn, stopping at
// the first error.
func MultiHandler(hs ...Handler) Handler {
	return FuncHandler(func(r *Record) error {
		for _, h := range hs {
			if err := h.Log(r); err != nil {
				return err
			}
		}
		return nil
	})
}

// DiscardHandler returns a Handler that drops every record; it is the
// default handler for a Logger before SetHandler/SetDefault is called.
func DiscardHandler() Handler {
	return FuncHandler(func(r *Record) error { return nil })
}
