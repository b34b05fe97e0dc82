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

// Package metrics provides counters and meters for instrumenting the
// session and transport layers, in the style of the rcrowley/go-metrics
// library that go-ethereum vendors.
package metrics

import (
	"math"
	"sync"
	"sync/atomic"
)

// EWMA is an exponentially weighted moving average, updated at a fixed
// tick interval. It is safe for concurrent use.
type EWMA struct {
	alpha     float64
	interval  float64
	uncounted atomic.Int64

	mu   sync.Mutex
	rate float64
	init bool
}

// newEWMA creates an EWMA with the given decay factor and a 5-second tick
// interval.
func newEWMA(alpha float64) *EWMA {
	return &EWMA{alpha: alpha, interval: 5.0}
}

// NewEWMA1 returns a 1-minute EWMA, matching the decay of the Unix
// one-minute load average.
func NewEWMA1() *EWMA { return newEWMA(1 - math.Exp(-5.0/60.0)) }

// NewEWMA5 returns a 5-minute EWMA.
func NewEWMA5() *EWMA { return newEWMA(1 - math.Exp(-5.0/300.0)) }

// NewEWMA15 returns a 15-minute EWMA.
func NewEWMA15() *EWMA { return newEWMA(1 - math.Exp(-5.0/900.0)) }

// Update adds n to the sample count accumulated since the last Tick.
func (e *EWMA) Update(n int64) {
	e.uncounted.Add(n)
}

// Tick decays the moving average and folds in samples accumulated since
// the previous tick. Callers must invoke it at the EWMA's tick interval.
func (e *EWMA) Tick() {
	count := e.uncounted.Swap(0)
	instantRate := float64(count) / e.interval

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.init {
		e.rate += e.alpha * (instantRate - e.rate)
	} else {
		e.rate = instantRate
		e.init = true
	}
}

// Rate returns the moving average rate of events per second.
func (e *EWMA) Rate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rate
}

// Snapshot returns a read-only copy of the current rate.
func (e *EWMA) Snapshot() *EWMA {
	return &EWMA{rate: e.Rate(), init: true}
}
