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

	"github.com/GeniusVentures/rlp-sub000/p2p/rlpx"
)

func testCipherPair(t *testing.T) (*rlpx.FrameCipher, *rlpx.FrameCipher) {
	t.Helper()
	initSecrets, recSecrets := runHandshakeForTest(t)
	a, err := rlpx.NewFrameCipher(initSecrets)
	if err != nil {
		t.Fatal(err)
	}
	b, err := rlpx.NewFrameCipher(recSecrets)
	if err != nil {
		t.Fatal(err)
	}
	return a, b
}

func TestMessageRoundTripUncompressed(t *testing.T) {
	senderCipher, receiverCipher := testCipherPair(t)
	sender := NewMessageStream(senderCipher)
	receiver := NewMessageStream(receiverCipher)

	var wire bytes.Buffer
	want := Msg{Code: 0x04, Payload: []byte{0x83, 'c', 'a', 't'}}
	if err := sender.WriteMessage(&wire, want); err != nil {
		t.Fatal(err)
	}
	got, err := receiver.ReadMessage(&wire)
	if err != nil {
		t.Fatal(err)
	}
	if got.Code != want.Code || !bytes.Equal(got.Payload, want.Payload) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestMessageRoundTripCompressed(t *testing.T) {
	senderCipher, receiverCipher := testCipherPair(t)
	sender := NewMessageStream(senderCipher)
	receiver := NewMessageStream(receiverCipher)
	sender.EnableSnappy()
	receiver.EnableSnappy()

	var wire bytes.Buffer
	want := Msg{Code: 0x10, Payload: bytes.Repeat([]byte{0x01}, 300)}
	if err := sender.WriteMessage(&wire, want); err != nil {
		t.Fatal(err)
	}
	got, err := receiver.ReadMessage(&wire)
	if err != nil {
		t.Fatal(err)
	}
	if got.Code != want.Code || !bytes.Equal(got.Payload, want.Payload) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestMessageEmptyPayload(t *testing.T) {
	senderCipher, receiverCipher := testCipherPair(t)
	sender := NewMessageStream(senderCipher)
	receiver := NewMessageStream(receiverCipher)

	var wire bytes.Buffer
	want := Msg{Code: PingMsg, Payload: encodeEmptyList()}
	if err := sender.WriteMessage(&wire, want); err != nil {
		t.Fatal(err)
	}
	got, err := receiver.ReadMessage(&wire)
	if err != nil {
		t.Fatal(err)
	}
	if got.Code != want.Code || !bytes.Equal(got.Payload, want.Payload) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDecodeBodyRejectsTruncatedList(t *testing.T) {
	if _, err := decodeBody([]byte{0xc1}); err == nil {
		t.Fatal("expected an error decoding a truncated list header")
	}
}
