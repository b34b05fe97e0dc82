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
	"testing"
)

func TestHelloRoundTrip(t *testing.T) {
	h := Hello{
		ProtocolVersion: baseProtocolVersion,
		ClientID:        "test-client/1.0",
		Caps:            []Cap{{Name: "eth", Version: 68}, {Name: "snap", Version: 1}},
		ListenPort:      30303,
		NodeID:          bytes.Repeat([]byte{0x07}, 64),
	}
	enc, err := EncodeHello(h)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeHello(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got.ProtocolVersion != h.ProtocolVersion || got.ClientID != h.ClientID ||
		got.ListenPort != h.ListenPort || !bytes.Equal(got.NodeID, h.NodeID) {
		t.Fatalf("got %+v, want %+v", got, h)
	}
	if len(got.Caps) != len(h.Caps) {
		t.Fatalf("got %d caps, want %d", len(got.Caps), len(h.Caps))
	}
	for i := range h.Caps {
		if got.Caps[i] != h.Caps[i] {
			t.Fatalf("cap %d: got %+v, want %+v", i, got.Caps[i], h.Caps[i])
		}
	}
}

func TestHelloEmptyCaps(t *testing.T) {
	h := Hello{ProtocolVersion: 5, ClientID: "x", NodeID: make([]byte, 64)}
	enc, err := EncodeHello(h)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeHello(enc)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Caps) != 0 {
		t.Fatalf("got %d caps, want 0", len(got.Caps))
	}
}

func TestDisconnectRoundTrip(t *testing.T) {
	enc, err := EncodeDisconnect(DiscQuitting)
	if err != nil {
		t.Fatal(err)
	}
	// S8: a Disconnect(ClientQuitting=0x08) message decodes from exactly
	// two bytes 0xc1 0x08.
	if !bytes.Equal(enc, []byte{0xc1, 0x08}) {
		t.Fatalf("got % x, want c1 08", enc)
	}
	got, err := DecodeDisconnect(enc)
	if err != nil {
		t.Fatal(err)
	}
	if got != DiscQuitting {
		t.Fatalf("got %v, want %v", got, DiscQuitting)
	}
}

func TestDisconnectAllReasonsRoundTrip(t *testing.T) {
	reasons := []DiscReason{
		DiscRequested, DiscTcpError, DiscProtocolError, DiscUselessPeer,
		DiscTooManyPeers, DiscAlreadyConnected, DiscIncompatibleVersion,
		DiscInvalidIdentity, DiscQuitting, DiscUnexpectedIdentity,
		DiscSelfConnection, DiscTimeout, DiscSubprotocolError,
	}
	for _, r := range reasons {
		enc, err := EncodeDisconnect(r)
		if err != nil {
			t.Fatalf("reason %v: %v", r, err)
		}
		got, err := DecodeDisconnect(enc)
		if err != nil {
			t.Fatalf("reason %v: %v", r, err)
		}
		if got != r {
			t.Fatalf("got %v, want %v", got, r)
		}
		if got.String() == "" {
			t.Fatalf("reason %v has empty String()", r)
		}
	}
}

func TestCapString(t *testing.T) {
	c := Cap{Name: "eth", Version: 68}
	if c.String() != "eth/68" {
		t.Fatalf("got %q, want %q", c.String(), "eth/68")
	}
}
