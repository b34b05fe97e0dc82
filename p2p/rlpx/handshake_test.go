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

package rlpx

import (
	"bytes"
	"net"
	"testing"

	"github.com/GeniusVentures/rlp-sub000/crypto"
)

// runHandshake executes the initiator and recipient sides of the auth
// handshake concurrently over an in-memory pipe and returns both sides'
// derived secrets.
func runHandshake(t *testing.T) (initiator, recipient Secrets) {
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
		s   Secrets
		err error
	}
	initCh := make(chan result, 1)
	recCh := make(chan result, 1)

	go func() {
		s, err := InitiatorHandshake(initConn, initKey, &recKey.PublicKey)
		initCh <- result{s, err}
	}()
	go func() {
		s, err := RecipientHandshake(recConn, recKey)
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

func TestHandshakeDerivesSharedSecrets(t *testing.T) {
	initSecrets, recSecrets := runHandshake(t)

	if !bytes.Equal(initSecrets.AES, recSecrets.AES) {
		t.Fatal("AES secrets differ between initiator and recipient")
	}
	if !bytes.Equal(initSecrets.MAC, recSecrets.MAC) {
		t.Fatal("MAC secrets differ between initiator and recipient")
	}
	if initSecrets.EgressSeed != recSecrets.IngressSeed {
		t.Fatal("initiator egress seed must equal recipient ingress seed")
	}
	if initSecrets.IngressSeed != recSecrets.EgressSeed {
		t.Fatal("initiator ingress seed must equal recipient egress seed")
	}
}

func TestHandshakeRejectsWrongRecipientKey(t *testing.T) {
	initKey, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	recKey, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	wrongPub, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}

	initConn, recConn := net.Pipe()
	defer initConn.Close()
	defer recConn.Close()

	errCh := make(chan error, 2)
	go func() {
		_, err := InitiatorHandshake(initConn, initKey, &wrongPub.PublicKey)
		initConn.Close() // unblock the peer's pending read on failure
		errCh <- err
	}()
	go func() {
		_, err := RecipientHandshake(recConn, recKey)
		recConn.Close() // unblock the peer's pending read on failure
		errCh <- err
	}()

	e1 := <-errCh
	e2 := <-errCh
	if e1 == nil && e2 == nil {
		t.Fatal("expected handshake against the wrong recipient key to fail on at least one side")
	}
}
