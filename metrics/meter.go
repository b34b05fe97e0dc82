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

import (
	"sync"
	"sync/atomic"
	"time"
)

// Meter tracks the rate of events over time using 1-, 5-, and 15-minute
// exponentially weighted moving averages, plus the overall mean rate
// since the meter was created.
type Meter interface {
	Count() int64
	Mark(int64)
	Rate1() float64
	Rate5() float64
	Rate15() float64
	RateMean() float64
	Snapshot() Meter
	Stop()
}

// NewMeter constructs a new standard Meter and registers it with the
// background arbiter that ticks its EWMAs every 5 seconds.
func NewMeter() Meter {
	m := newStandardMeter()
	arbiter.add(m)
	return m
}

// NewRegisteredMeter constructs and registers a new standard Meter.
func NewRegisteredMeter(name string, r Registry) Meter {
	m := NewMeter()
	if r == nil {
		r = DefaultRegistry
	}
	r.Register(name, m)
	return m
}

// GetOrRegisterMeter returns an existing Meter or constructs and
// registers a new one.
func GetOrRegisterMeter(name string, r Registry) Meter {
	if r == nil {
		r = DefaultRegistry
	}
	return r.GetOrRegister(name, NewMeter).(Meter)
}

// MeterSnapshot is a read-only copy of a Meter's state.
type MeterSnapshot struct {
	count                            int64
	rate1, rate5, rate15, rateMean   float64
}

func (m *MeterSnapshot) Count() int64       { return m.count }
func (m *MeterSnapshot) Rate1() float64     { return m.rate1 }
func (m *MeterSnapshot) Rate5() float64     { return m.rate5 }
func (m *MeterSnapshot) Rate15() float64    { return m.rate15 }
func (m *MeterSnapshot) RateMean() float64  { return m.rateMean }
func (m *MeterSnapshot) Snapshot() Meter    { return m }
func (m *MeterSnapshot) Mark(n int64)       { panic("Mark called on a MeterSnapshot") }
func (m *MeterSnapshot) Stop()              {}

// StandardMeter is the standard Meter implementation.
type StandardMeter struct {
	count     atomic.Int64
	rate1     *EWMA
	rate5     *EWMA
	rate15    *EWMA
	startTime time.Time

	mu      sync.Mutex
	stopped bool
}

func newStandardMeter() *StandardMeter {
	return &StandardMeter{
		rate1:     NewEWMA1(),
		rate5:     NewEWMA5(),
		rate15:    NewEWMA15(),
		startTime: time.Now(),
	}
}

func (m *StandardMeter) Mark(n int64) {
	m.count.Add(n)
	m.rate1.Update(n)
	m.rate5.Update(n)
	m.rate15.Update(n)
}

func (m *StandardMeter) Count() int64 { return m.count.Load() }

func (m *StandardMeter) Rate1() float64  { return m.rate1.Rate() }
func (m *StandardMeter) Rate5() float64  { return m.rate5.Rate() }
func (m *StandardMeter) Rate15() float64 { return m.rate15.Rate() }

func (m *StandardMeter) RateMean() float64 {
	elapsed := time.Since(m.startTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(m.count.Load()) / elapsed
}

func (m *StandardMeter) Snapshot() Meter {
	return &MeterSnapshot{
		count:    m.count.Load(),
		rate1:    m.rate1.Rate(),
		rate5:    m.rate5.Rate(),
		rate15:   m.rate15.Rate(),
		rateMean: m.RateMean(),
	}
}

func (m *StandardMeter) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.stopped {
		m.stopped = true
		arbiter.remove(m)
	}
}

func (m *StandardMeter) tick() {
	m.rate1.Tick()
	m.rate5.Tick()
	m.rate15.Tick()
}

// meterArbiter ticks every live StandardMeter's EWMAs on a shared 5-second
// timer, so individual meters don't each need their own goroutine.
type meterArbiter struct {
	mu      sync.Mutex
	started bool
	meters  map[*StandardMeter]struct{}
}

var arbiter = &meterArbiter{meters: make(map[*StandardMeter]struct{})}

func (a *meterArbiter) add(m *StandardMeter) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.meters[m] = struct{}{}
	if !a.started {
		a.started = true
		go a.tick()
	}
}

func (a *meterArbiter) remove(m *StandardMeter) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.meters, m)
}

func (a *meterArbiter) tick() {
	for range time.Tick(5 * time.Second) {
		a.mu.Lock()
		for m := range a.meters {
			m.tick()
		}
		a.mu.Unlock()
	}
}
