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

package event

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrMuxClosed is returned by Post when the TypeMux it is called on has
// already been stopped.
var ErrMuxClosed = errors.New("event: mux closed")

// TypeMux dispatches events to receivers registered for a particular event
// type. It predates Feed and is kept for subsystems that still key their
// subscriptions by concrete Go type rather than a single channel.
//
// The zero value is ready to use.
type TypeMux struct {
	mutex   sync.RWMutex
	subm    map[reflect.Type][]*TypeMuxSubscription
	stopped bool
}

// Subscribe registers a subscription for every type in types. The returned
// subscription's channel receives every posted value whose concrete type
// matches one of them.
func (mux *TypeMux) Subscribe(types ...interface{}) *TypeMuxSubscription {
	sub := &TypeMuxSubscription{mux: mux, c: make(chan interface{}), closed: make(chan struct{})}

	mux.mutex.Lock()
	defer mux.mutex.Unlock()
	if mux.stopped {
		sub.closewait()
		return sub
	}
	if mux.subm == nil {
		mux.subm = make(map[reflect.Type][]*TypeMuxSubscription)
	}
	for _, t := range types {
		rtyp := reflect.TypeOf(t)
		oldsubs := mux.subm[rtyp]
		if indexOfSub(oldsubs, sub) != -1 {
			panic(fmt.Sprintf("event: duplicate type %s in Subscribe", rtyp))
		}
		subs := make([]*TypeMuxSubscription, len(oldsubs)+1)
		copy(subs, oldsubs)
		subs[len(oldsubs)] = sub
		mux.subm[rtyp] = subs
	}
	return sub
}

// Post delivers ev to every subscriber registered for its concrete type. It
// returns ErrMuxClosed if the mux has been stopped.
func (mux *TypeMux) Post(ev interface{}) error {
	rtyp := reflect.TypeOf(ev)

	mux.mutex.RLock()
	if mux.stopped {
		mux.mutex.RUnlock()
		return ErrMuxClosed
	}
	subs := mux.subm[rtyp]
	mux.mutex.RUnlock()

	for _, sub := range subs {
		sub.deliver(ev)
	}
	return nil
}

// Stop closes the mux and every live subscription. Post calls after Stop
// return ErrMuxClosed.
func (mux *TypeMux) Stop() {
	mux.mutex.Lock()
	defer mux.mutex.Unlock()
	for _, subs := range mux.subm {
		for _, sub := range subs {
			sub.closewait()
		}
	}
	mux.subm = nil
	mux.stopped = true
}

func (mux *TypeMux) del(s *TypeMuxSubscription) {
	mux.mutex.Lock()
	defer mux.mutex.Unlock()
	for typ, subs := range mux.subm {
		if pos := indexOfSub(subs, s); pos >= 0 {
			if len(subs) == 1 {
				delete(mux.subm, typ)
			} else {
				mux.subm[typ] = append(subs[:pos:pos], subs[pos+1:]...)
			}
			break
		}
	}
}

func indexOfSub(subs []*TypeMuxSubscription, s *TypeMuxSubscription) int {
	for i, v := range subs {
		if v == s {
			return i
		}
	}
	return -1
}

// TypeMuxSubscription is a subscription created by TypeMux.Subscribe.
type TypeMuxSubscription struct {
	mux    *TypeMux
	c      chan interface{}
	closed chan struct{}
	once   sync.Once
}

// Chan returns the channel that receives every posted value whose type
// this subscription was registered for.
func (s *TypeMuxSubscription) Chan() <-chan interface{} {
	return s.c
}

// Unsubscribe removes the subscription and closes its channel.
func (s *TypeMuxSubscription) Unsubscribe() {
	s.mux.del(s)
	s.closewait()
}

func (s *TypeMuxSubscription) closewait() {
	s.once.Do(func() {
		close(s.closed)
		close(s.c)
	})
}

func (s *TypeMuxSubscription) deliver(ev interface{}) {
	select {
	case <-s.closed:
		return
	default:
	}
	select {
	case s.c <- ev:
	case <-s.closed:
	}
}
