// Copyright 2014 The go-ethereum Authors
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

package eth

import (
	"testing"

	"github.com/GeniusVentures/rlp-sub000/common"
	"github.com/holiman/uint256"
)

func testHash(b byte) common.Hash {
	var h common.Hash
	for i := range h {
		h[i] = b
	}
	return h
}

func TestStatusRoundTrip(t *testing.T) {
	want := StatusPacket{
		ProtocolVersion: ProtocolVersion,
		NetworkID:       1,
		TD:              uint256.NewInt(17179869184),
		Head:            testHash(1),
		Genesis:         testHash(2),
		ForkID:          ForkID{Hash: [4]byte{0xde, 0xad, 0xbe, 0xef}, Next: 1150000},
	}
	encoded, err := EncodeStatus(want)
	if err != nil {
		t.Fatalf("EncodeStatus: %v", err)
	}
	got, err := DecodeStatus(encoded)
	if err != nil {
		t.Fatalf("DecodeStatus: %v", err)
	}
	if got.ProtocolVersion != want.ProtocolVersion || got.NetworkID != want.NetworkID ||
		got.TD.Cmp(want.TD) != 0 || got.Head != want.Head || got.Genesis != want.Genesis ||
		got.ForkID != want.ForkID {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestGetBlockHeadersEncodeDecode(t *testing.T) {
	hash := testHash(7)

	tests := []struct {
		packet GetBlockHeadersPacket
		fail   bool
	}{
		{packet: GetBlockHeadersPacket{Origin: HashOrNumber{Number: 314}}},
		{packet: GetBlockHeadersPacket{Origin: HashOrNumber{Hash: hash}}},
		{packet: GetBlockHeadersPacket{Origin: HashOrNumber{Number: 314}, Amount: 10, Skip: 1, Reverse: true}},
		{packet: GetBlockHeadersPacket{Origin: HashOrNumber{Hash: hash}, Amount: 10, Skip: 1, Reverse: true}},
		{packet: GetBlockHeadersPacket{Origin: HashOrNumber{Hash: hash, Number: 314}}, fail: true},
	}
	for i, tt := range tests {
		encoded, err := EncodeGetBlockHeaders(tt.packet)
		if tt.fail {
			if err == nil {
				t.Errorf("test %d: expected encode failure", i)
			}
			continue
		}
		if err != nil {
			t.Fatalf("test %d: EncodeGetBlockHeaders: %v", i, err)
		}
		got, err := DecodeGetBlockHeaders(encoded)
		if err != nil {
			t.Fatalf("test %d: DecodeGetBlockHeaders: %v", i, err)
		}
		if got != tt.packet {
			t.Fatalf("test %d: round trip mismatch: got %+v, want %+v", i, got, tt.packet)
		}
	}
}

func TestHeaderRoundTripWithAndWithoutBaseFee(t *testing.T) {
	base := &Header{
		ParentHash:  testHash(1),
		UncleHash:   testHash(2),
		Coinbase:    common.BytesToAddress([]byte{9, 9, 9}),
		Root:        testHash(3),
		TxHash:      testHash(4),
		ReceiptHash: testHash(5),
		Difficulty:  uint256.NewInt(131072),
		Number:      uint256.NewInt(1),
		GasLimit:    5000,
		GasUsed:     0,
		Time:        1438269973,
		Extra:       []byte("hello"),
		MixDigest:   testHash(6),
	}

	encoded, err := EncodeHeader(base)
	if err != nil {
		t.Fatalf("EncodeHeader: %v", err)
	}
	got, err := DecodeHeaderBytes(encoded)
	if err != nil {
		t.Fatalf("DecodeHeaderBytes: %v", err)
	}
	if got.BaseFee != nil {
		t.Fatalf("expected nil BaseFee on pre-London header, got %v", got.BaseFee)
	}
	if got.Number.Cmp(base.Number) != 0 || got.GasLimit != base.GasLimit || string(got.Extra) != string(base.Extra) {
		t.Fatalf("round trip mismatch: got %+v", got)
	}

	withFee := *base
	withFee.BaseFee = uint256.NewInt(7)
	encoded, err = EncodeHeader(&withFee)
	if err != nil {
		t.Fatalf("EncodeHeader with base fee: %v", err)
	}
	got, err = DecodeHeaderBytes(encoded)
	if err != nil {
		t.Fatalf("DecodeHeaderBytes with base fee: %v", err)
	}
	if got.BaseFee == nil || got.BaseFee.Cmp(withFee.BaseFee) != 0 {
		t.Fatalf("expected BaseFee to round trip, got %v", got.BaseFee)
	}
}

func TestTransactionsPacketRoundTrip(t *testing.T) {
	// Raw transactions are opaque to this package; any well-formed RLP
	// item is a valid stand-in.
	txs := TransactionsPacket{
		RawTransaction([]byte{0x83, 'c', 'a', 't'}),
		RawTransaction([]byte{0xc0}), // empty list, e.g. a typed-tx placeholder
	}
	encoded, err := EncodeTransactions(txs)
	if err != nil {
		t.Fatalf("EncodeTransactions: %v", err)
	}
	got, err := DecodeTransactions(encoded)
	if err != nil {
		t.Fatalf("DecodeTransactions: %v", err)
	}
	if len(got) != len(txs) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(txs))
	}
	for i := range txs {
		if string(got[i]) != string(txs[i]) {
			t.Fatalf("tx %d mismatch: got %x, want %x", i, got[i], txs[i])
		}
	}
}

func TestReceiptsPacketRoundTrip(t *testing.T) {
	want := ReceiptsPacket{
		{
			{PostStateOrStatus: []byte{1}, CumulativeGasUsed: 123, Logs: nil},
		},
		{
			{
				PostStateOrStatus: []byte{1},
				CumulativeGasUsed: 456,
				Logs: []Log{
					{Address: common.BytesToAddress([]byte{1}), Topics: []common.Hash{testHash(1)}, Data: []byte("x")},
				},
			},
		},
	}
	encoded, err := EncodeReceipts(want)
	if err != nil {
		t.Fatalf("EncodeReceipts: %v", err)
	}
	got, err := DecodeReceipts(encoded)
	if err != nil {
		t.Fatalf("DecodeReceipts: %v", err)
	}
	if len(got) != len(want) || len(got[1][0].Logs) != 1 {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
	if got[1][0].Logs[0].Address != want[1][0].Logs[0].Address {
		t.Fatalf("log address mismatch: got %v, want %v", got[1][0].Logs[0].Address, want[1][0].Logs[0].Address)
	}
}

func TestNewPooledTransactionHashesRoundTrip(t *testing.T) {
	want := NewPooledTransactionHashesPacket{
		Types:  []byte{0, 2},
		Sizes:  []uint64{100, 200},
		Hashes: []common.Hash{testHash(1), testHash(2)},
	}
	encoded, err := EncodeNewPooledTransactionHashes(want)
	if err != nil {
		t.Fatalf("EncodeNewPooledTransactionHashes: %v", err)
	}
	got, err := DecodeNewPooledTransactionHashes(encoded)
	if err != nil {
		t.Fatalf("DecodeNewPooledTransactionHashes: %v", err)
	}
	if len(got.Hashes) != 2 || got.Hashes[0] != want.Hashes[0] || got.Sizes[1] != want.Sizes[1] {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestNewBlockHashesRoundTrip(t *testing.T) {
	want := NewBlockHashesPacket{
		{Hash: testHash(1), Number: 1},
		{Hash: testHash(2), Number: 2},
	}
	encoded, err := EncodeNewBlockHashes(want)
	if err != nil {
		t.Fatalf("EncodeNewBlockHashes: %v", err)
	}
	got, err := DecodeNewBlockHashes(encoded)
	if err != nil {
		t.Fatalf("DecodeNewBlockHashes: %v", err)
	}
	if len(got) != 2 || got[0].Number != 1 || got[1].Hash != want[1].Hash {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestNewBlockRoundTrip(t *testing.T) {
	header := &Header{
		ParentHash:  testHash(1),
		UncleHash:   testHash(2),
		Root:        testHash(3),
		TxHash:      testHash(4),
		ReceiptHash: testHash(5),
		Difficulty:  uint256.NewInt(1),
		Number:      uint256.NewInt(42),
		MixDigest:   testHash(6),
	}
	want := NewBlockPacket{
		Header:       header,
		Transactions: []RawTransaction{{0x80}},
		Uncles:       nil,
		TD:           uint256.NewInt(9999),
	}
	encoded, err := EncodeNewBlock(want)
	if err != nil {
		t.Fatalf("EncodeNewBlock: %v", err)
	}
	got, err := DecodeNewBlock(encoded)
	if err != nil {
		t.Fatalf("DecodeNewBlock: %v", err)
	}
	if got.Header.Number.Cmp(header.Number) != 0 || got.TD.Cmp(want.TD) != 0 || len(got.Transactions) != 1 {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}
