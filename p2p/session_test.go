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

package p2p

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/GeniusVentures/rlp-sub000/crypto"
)

// sessionPair spins up a real TCP listener and connects to it, running the
// full Connect/Accept handshake+Hello exchange on each side, and returns
// both active sessions.
func sessionPair(t *testing.T) (initiator, recipient *Session) {
	t.Helper()
	initKey, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	recKey, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	type acceptResult struct {
		s   *Session
		err error
	}
	acceptCh := make(chan acceptResult, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			acceptCh <- acceptResult{nil, err}
			return
		}
		s, err := Accept(Params{
			LocalKey: recKey,
			Hello:    Hello{ProtocolVersion: 5, ClientID: "recipient", NodeID: make([]byte, 64)},
			Timeout:  5 * time.Second,
		}, conn)
		acceptCh <- acceptResult{s, err}
	}()

	init, err := Connect(Params{
		Addr:      ln.Addr().String(),
		LocalKey:  initKey,
		RemoteKey: &recKey.PublicKey,
		Hello:     Hello{ProtocolVersion: 5, ClientID: "initiator", NodeID: make([]byte, 64)},
		Timeout:   5 * time.Second,
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	ar := <-acceptCh
	if ar.err != nil {
		t.Fatalf("accept: %v", ar.err)
	}
	return init, ar.s
}

func TestSessionHandshakeReachesActive(t *testing.T) {
	a, b := sessionPair(t)
	defer a.Disconnect(DiscRequested)
	defer b.Disconnect(DiscRequested)

	if a.State() != StateActive {
		t.Fatalf("initiator state = %v, want Active", a.State())
	}
	if b.State() != StateActive {
		t.Fatalf("recipient state = %v, want Active", b.State())
	}
	if a.RemoteHello().ClientID != "recipient" {
		t.Fatalf("initiator remote hello = %+v", a.RemoteHello())
	}
	if b.RemoteHello().ClientID != "initiator" {
		t.Fatalf("recipient remote hello = %+v", b.RemoteHello())
	}
}

func TestSessionPostAndReceiveFIFO(t *testing.T) {
	a, b := sessionPair(t)
	defer a.Disconnect(DiscRequested)
	defer b.Disconnect(DiscRequested)

	messages := []Msg{
		{Code: 0x04, Payload: []byte{0x01}},
		{Code: 0x04, Payload: []byte{0x02}},
		{Code: 0x04, Payload: []byte{0x03}},
	}
	for _, m := range messages {
		if err := a.PostMessage(m); err != nil {
			t.Fatal(err)
		}
	}
	for _, want := range messages {
		got, err := b.ReceiveMessage()
		if err != nil {
			t.Fatal(err)
		}
		if got.Code != want.Code || !bytes.Equal(got.Payload, want.Payload) {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	}
}

func TestSessionPostMessageRejectedWhenNotActive(t *testing.T) {
	s := newSession(nil)
	if err := s.PostMessage(Msg{Code: 0x04}); err == nil {
		t.Fatal("expected NotConnected error before the session becomes active")
	}
}

func TestSessionPingAnsweredWithPong(t *testing.T) {
	a, b := sessionPair(t)
	defer a.Disconnect(DiscRequested)
	defer b.Disconnect(DiscRequested)

	if err := a.PostMessage(Msg{Code: PingMsg, Payload: encodeEmptyList()}); err != nil {
		t.Fatal(err)
	}
	// b's receive loop answers with Pong on its send queue, which its
	// send loop writes back to a. a's receive loop consumes Pong silently,
	// so observe indirectly: post a real message afterward and confirm
	// the session is still healthy.
	if err := a.PostMessage(Msg{Code: 0x05, Payload: []byte{0xAA}}); err != nil {
		t.Fatal(err)
	}
	got, err := b.ReceiveMessage()
	if err != nil {
		t.Fatal(err)
	}
	if got.Code != 0x05 {
		t.Fatalf("got code %#x, want 0x05", got.Code)
	}
}

func TestSessionDisconnectIsIdempotent(t *testing.T) {
	a, b := sessionPair(t)
	defer b.Disconnect(DiscRequested)

	if err := a.Disconnect(DiscRequested); err != nil {
		t.Fatal(err)
	}
	if err := a.Disconnect(DiscRequested); err != nil {
		t.Fatal(err)
	}
	if a.State() != StateClosed {
		t.Fatalf("state = %v, want Closed", a.State())
	}
}

func TestSessionDisconnectNotifiesPeer(t *testing.T) {
	a, b := sessionPair(t)
	defer b.Disconnect(DiscRequested)

	received := make(chan DiscReason, 1)
	b.SetHandlers(Handlers{OnDisconnect: func(r DiscReason) { received <- r }})

	if err := a.Disconnect(DiscQuitting); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-received:
		if r != DiscQuitting {
			t.Fatalf("got reason %v, want %v", r, DiscQuitting)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for disconnect notification")
	}
}

func TestSessionFeedReportsDisconnect(t *testing.T) {
	a, b := sessionPair(t)
	defer b.Disconnect(DiscRequested)

	changes := make(chan StateChangeEvent, 8)
	sub := a.Feed().Subscribe(changes)
	defer sub.Unsubscribe()

	if err := a.Disconnect(DiscRequested); err != nil {
		t.Fatal(err)
	}

	sawClosed := false
	for !sawClosed {
		select {
		case ev := <-changes:
			if ev.To == StateClosed {
				sawClosed = true
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for Closed state change event")
		}
	}
}

func TestSessionMetricsCountFramesAndBytes(t *testing.T) {
	a, b := sessionPair(t)
	defer a.Disconnect(DiscRequested)
	defer b.Disconnect(DiscRequested)

	payload := []byte{0xAA, 0xBB, 0xCC}
	if err := a.PostMessage(Msg{Code: 0x05, Payload: payload}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.ReceiveMessage(); err != nil {
		t.Fatal(err)
	}

	sent := a.metrics.FramesSent.Snapshot().Count()
	if sent < 1 {
		t.Fatalf("FramesSent = %d, want at least 1", sent)
	}
	recv := b.metrics.FramesRecv.Snapshot().Count()
	if recv < 1 {
		t.Fatalf("FramesRecv = %d, want at least 1", recv)
	}
	if got := b.metrics.BytesRecv.Snapshot().Count(); got < int64(len(payload)) {
		t.Fatalf("BytesRecv = %d, want at least %d", got, len(payload))
	}
}
