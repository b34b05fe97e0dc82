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

package metrics

import "sync/atomic"

// Counter holds an int64 that can be incremented, decremented, and reset.
type Counter interface {
	Clear()
	Dec(int64)
	Inc(int64)
	Snapshot() Counter
	Count() int64
}

// NewCounter constructs a new standard Counter.
func NewCounter() Counter {
	return &StandardCounter{}
}

// NewRegisteredCounter constructs and registers a new standard Counter.
func NewRegisteredCounter(name string, r Registry) Counter {
	c := NewCounter()
	if r == nil {
		r = DefaultRegistry
	}
	r.Register(name, c)
	return c
}

// GetOrRegisterCounter returns an existing Counter or constructs and
// registers a new one.
func GetOrRegisterCounter(name string, r Registry) Counter {
	if r == nil {
		r = DefaultRegistry
	}
	return r.GetOrRegister(name, NewCounter).(Counter)
}

// CounterSnapshot is a read-only copy of a Counter's value at some point
// in time.
type CounterSnapshot int64

func (c CounterSnapshot) Clear()            { panic("Clear called on a CounterSnapshot") }
func (c CounterSnapshot) Dec(int64)         { panic("Dec called on a CounterSnapshot") }
func (c CounterSnapshot) Inc(int64)         { panic("Inc called on a CounterSnapshot") }
func (c CounterSnapshot) Snapshot() Counter { return c }
func (c CounterSnapshot) Count() int64      { return int64(c) }

// StandardCounter is the standard Counter implementation, backed by an
// atomic int64.
type StandardCounter struct {
	count atomic.Int64
}

func (c *StandardCounter) Clear()            { c.count.Store(0) }
func (c *StandardCounter) Dec(i int64)       { c.count.Add(-i) }
func (c *StandardCounter) Inc(i int64)       { c.count.Add(i) }
func (c *StandardCounter) Snapshot() Counter { return CounterSnapshot(c.count.Load()) }
func (c *StandardCounter) Count() int64      { return c.count.Load() }
