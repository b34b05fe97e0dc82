// Copyright 2016 The go-ethereum Authors
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

// Package event implements the publish/subscribe building blocks the
// session layer uses for peer-lifecycle notifications: a generic,
// reflection-based Feed, and the older type-keyed TypeMux.
package event

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var errBadChannel = errors.New("event: Subscribe argument does not have sendable channel type")

// Feed implements one-to-many subscriptions where the carrier of events is a
// channel. Values sent to a Feed are delivered to all subscribed channels
// simultaneously. A Feed can only be used with a single type, determined by
// the first Send or Subscribe call; later calls with a mismatched type
// panic.
//
// The zero value is ready to use.
type Feed struct {
	sendLock  chan struct{}    // one-element buffer, empty while a Send holds it
	removeSub chan interface{} // interrupts an in-progress Send
	sendCases caseList         // the active select cases used by Send

	mu    sync.Mutex
	inbox caseList
	etype reflect.Type
}

// firstSubSendCase is the index of the first real subscriber case;
// sendCases[0] is always the removeSub interrupt case.
const firstSubSendCase = 1

type feedTypeError struct {
	got, want reflect.Type
	op        string
}

func (e feedTypeError) Error() string {
	return fmt.Sprintf("event: wrong type in %s got %s, want %s", e.op, e.got, e.want)
}

func (f *Feed) init(etype reflect.Type) {
	f.etype = etype
	f.removeSub = make(chan interface{})
	f.sendLock = make(chan struct{}, 1)
	f.sendLock <- struct{}{}
	f.sendCases = caseList{{Chan: reflect.ValueOf(f.removeSub), Dir: reflect.SelectRecv}}
}

// typecheck binds etype on the first call and reports whether typ matches
// it thereafter. Callers must hold f.mu.
func (f *Feed) typecheck(typ reflect.Type) bool {
	if f.etype == nil {
		f.init(typ)
		return true
	}
	return f.etype == typ
}

// Subscribe adds channel to the feed. Future sends are delivered on it
// until the returned Subscription is canceled. Every channel added to one
// Feed must share the same element type.
func (f *Feed) Subscribe(channel interface{}) Subscription {
	chanval := reflect.ValueOf(channel)
	chantyp := chanval.Type()
	if chantyp.Kind() != reflect.Chan || chantyp.ChanDir()&reflect.SendDir == 0 {
		panic(errBadChannel)
	}
	sub := &feedSub{feed: f, channel: chanval, err: make(chan error, 1)}

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.typecheck(chantyp.Elem()) {
		panic(feedTypeError{op: "Subscribe", got: chantyp, want: reflect.ChanOf(reflect.SendDir, f.etype)})
	}
	f.inbox = append(f.inbox, reflect.SelectCase{Dir: reflect.SelectSend, Chan: chanval})
	return sub
}

func (f *Feed) remove(sub *feedSub) {
	ch := sub.channel.Interface()

	f.mu.Lock()
	if index := f.inbox.find(ch); index != -1 {
		f.inbox = f.inbox.delete(index)
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	select {
	case f.removeSub <- ch:
		// an in-progress Send will remove it from sendCases
	case <-f.sendLock:
		f.sendCases = f.sendCases.delete(f.sendCases.find(ch))
		f.sendLock <- struct{}{}
	}
}

// Send delivers value to all subscribed channels simultaneously, blocking
// until every one of them has accepted it. It returns the number of
// subscribers the value was delivered to.
func (f *Feed) Send(value interface{}) (nsent int) {
	rvalue := reflect.ValueOf(value)

	f.mu.Lock()
	if !f.typecheck(rvalue.Type()) {
		f.mu.Unlock()
		panic(feedTypeError{op: "Send", got: rvalue.Type(), want: f.etype})
	}
	f.sendCases = append(f.sendCases, f.inbox...)
	f.inbox = nil
	f.mu.Unlock()

	<-f.sendLock
	cases := f.sendCases
	for i := firstSubSendCase; i < len(cases); i++ {
		cases[i].Send = rvalue
	}

	for {
		// Fast path: opportunistically try every pending channel without
		// blocking before falling back to a blocking select.
		for i := firstSubSendCase; i < len(cases); i++ {
			if cases[i].Chan.TrySend(rvalue) {
				nsent++
				cases = cases.deactivate(i)
				i--
			}
		}
		if len(cases) == firstSubSendCase {
			break
		}
		chosen, recv, _ := reflect.Select(cases)
		if chosen == 0 {
			// removeSub fired: a concurrent Unsubscribe wants this
			// channel taken out of the active set.
			index := f.sendCases.find(recv.Interface())
			f.sendCases = f.sendCases.delete(index)
			if index >= 0 && index < len(cases) {
				// Shrink cases too, because the removed case was still active.
				cases = f.sendCases[:len(cases)-1]
			}
		} else {
			cases = cases.deactivate(chosen)
			nsent++
		}
	}

	for i := firstSubSendCase; i < len(f.sendCases); i++ {
		f.sendCases[i].Send = reflect.Value{}
	}
	f.sendLock <- struct{}{}
	return nsent
}

// caseList is a slice of reflect.SelectCase, kept sorted only by how Send
// rearranges it: active cases first, deactivated ones swapped to the tail.
type caseList []reflect.SelectCase

func (cs caseList) find(channel interface{}) int {
	for i, cas := range cs {
		if cas.Chan.Interface() == channel {
			return i
		}
	}
	return -1
}

func (cs caseList) delete(index int) caseList {
	return append(cs[:index], cs[index+1:]...)
}

// deactivate moves the case at index to the end of cs and shrinks the
// returned slice past it, so it is no longer selected on but remains in
// the backing array for a subsequent append.
func (cs caseList) deactivate(index int) caseList {
	last := len(cs) - 1
	cs[index], cs[last] = cs[last], cs[index]
	return cs[:last]
}

// Subscription represents a stream of events delivered by some producer.
// Implementations must ensure Err() eventually receives exactly one value
// (nil on a caller-initiated Unsubscribe) or is closed.
type Subscription interface {
	Err() <-chan error
	Unsubscribe()
}

type feedSub struct {
	feed    *Feed
	channel reflect.Value
	errOnce sync.Once
	err     chan error
}

func (sub *feedSub) Unsubscribe() {
	sub.errOnce.Do(func() {
		sub.feed.remove(sub)
		close(sub.err)
	})
}

func (sub *feedSub) Err() <-chan error {
	return sub.err
}
