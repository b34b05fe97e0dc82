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
	"net"
	"testing"

	"github.com/GeniusVentures/rlp-sub000/crypto"
	"github.com/GeniusVentures/rlp-sub000/p2p/rlpx"
)

// runHandshakeForTest drives a real rlpx auth handshake over an in-memory
// pipe and returns both sides' derived secrets, for tests that need a
// working FrameCipher pair without a real TCP connection.
func runHandshakeForTest(t *testing.T) (initiator, recipient rlpx.Secrets) {
	t.Helper()
	initKey, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	recKey, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}

	initConn, recConn := net.Pipe()
	defer initConn.Close()
	defer recConn.Close()

	type result struct {
		s   rlpx.Secrets
		err error
	}
	initCh := make(chan result, 1)
	recCh := make(chan result, 1)

	go func() {
		s, err := rlpx.InitiatorHandshake(initConn, initKey, &recKey.PublicKey)
		initCh <- result{s, err}
	}()
	go func() {
		s, err := rlpx.RecipientHandshake(recConn, recKey)
		recCh <- result{s, err}
	}()

	ir := <-initCh
	rr := <-recCh
	if ir.err != nil {
		t.Fatalf("initiator handshake: %v", ir.err)
	}
	if rr.err != nil {
		t.Fatalf("recipient handshake: %v", rr.err)
	}
	return ir.s, rr.s
}
