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
	"errors"

	"github.com/GeniusVentures/rlp-sub000/common"
	"github.com/GeniusVentures/rlp-sub000/rlp"
	"github.com/holiman/uint256"
)

// ErrOriginConflict is returned when a GetBlockHeadersPacket's Origin
// names both a hash and a nonzero number, which spec §6 forbids: the
// union is discriminated at decode time purely by payload length (32
// bytes ⇒ hash), so an encoder that sets both fields would silently lose
// one of them; this is rejected up front instead.
var ErrOriginConflict = errors.New("eth: GetBlockHeadersPacket.Origin sets both Hash and Number")

// ForkID identifies a chain's fork schedule: the CRC32 checksum of all
// already-activated fork block numbers/timestamps, and the next one due.
type ForkID struct {
	Hash [4]byte
	Next uint64
}

func encodeForkID(enc *rlp.Encoder, f ForkID) {
	enc.BeginList()
	enc.AddBytes(f.Hash[:])
	enc.AddUnsigned(f.Next)
	enc.EndList()
}

func decodeForkID(s *rlp.Stream) (ForkID, error) {
	if _, err := s.ReadListHeader(); err != nil {
		return ForkID{}, err
	}
	var f ForkID
	h, err := s.ReadFixed(4)
	if err != nil {
		return ForkID{}, err
	}
	copy(f.Hash[:], h)
	if f.Next, err = s.ReadUnsigned(); err != nil {
		return ForkID{}, err
	}
	if err := s.ListEnd(); err != nil {
		return ForkID{}, err
	}
	return f, nil
}

// StatusPacket is the STATUS message body (spec §6): [protocol_version,
// network_id, total_difficulty, best_hash, genesis_hash, [fork_hash,
// next_fork]].
type StatusPacket struct {
	ProtocolVersion uint32
	NetworkID       uint64
	TD              *uint256.Int
	Head            common.Hash
	Genesis         common.Hash
	ForkID          ForkID
}

func EncodeStatus(p StatusPacket) ([]byte, error) {
	enc := rlp.NewEncoder(128)
	enc.BeginList()
	enc.AddUnsigned(uint64(p.ProtocolVersion))
	enc.AddUnsigned(p.NetworkID)
	enc.AddUnsigned256(p.TD)
	enc.AddBytes(p.Head[:])
	enc.AddBytes(p.Genesis[:])
	encodeForkID(enc, p.ForkID)
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	return enc.Finish()
}

func DecodeStatus(payload []byte) (StatusPacket, error) {
	return rlp.Decode(payload, rlp.ProhibitLeftover, func(s *rlp.Stream) (StatusPacket, error) {
		if _, err := s.ReadListHeader(); err != nil {
			return StatusPacket{}, err
		}
		var p StatusPacket
		v, err := s.ReadUnsigned32()
		if err != nil {
			return StatusPacket{}, err
		}
		p.ProtocolVersion = v
		if p.NetworkID, err = s.ReadUnsigned(); err != nil {
			return StatusPacket{}, err
		}
		if p.TD, err = s.ReadUnsigned256(); err != nil {
			return StatusPacket{}, err
		}
		if p.Head, err = readHash(s); err != nil {
			return StatusPacket{}, err
		}
		if p.Genesis, err = readHash(s); err != nil {
			return StatusPacket{}, err
		}
		if p.ForkID, err = decodeForkID(s); err != nil {
			return StatusPacket{}, err
		}
		if err := s.ListEnd(); err != nil {
			return StatusPacket{}, err
		}
		return p, nil
	})
}

// HashOrNumber is the union GetBlockHeadersPacket.Origin discriminates by
// inspecting the decoded payload's length: exactly 32 bytes means a
// hash, anything else (including the compact encoding of a number) means
// a block number (spec §6).
type HashOrNumber struct {
	Hash   common.Hash
	Number uint64
}

func encodeHashOrNumber(enc *rlp.Encoder, o HashOrNumber) error {
	if o.Hash != (common.Hash{}) && o.Number != 0 {
		return ErrOriginConflict
	}
	if o.Hash != (common.Hash{}) {
		enc.AddBytes(o.Hash[:])
	} else {
		enc.AddUnsigned(o.Number)
	}
	return nil
}

func decodeHashOrNumber(s *rlp.Stream) (HashOrNumber, error) {
	b, err := s.ReadBytes()
	if err != nil {
		return HashOrNumber{}, err
	}
	if len(b) == common.HashLength {
		return HashOrNumber{Hash: common.BytesToHash(b)}, nil
	}
	n, err := rlp.FromBigCompact(b)
	if err != nil {
		return HashOrNumber{}, err
	}
	return HashOrNumber{Number: n}, nil
}

// GetBlockHeadersPacket is the GET_BLOCK_HEADERS message body: [origin,
// amount, skip, reverse].
type GetBlockHeadersPacket struct {
	Origin  HashOrNumber
	Amount  uint64
	Skip    uint64
	Reverse bool
}

func EncodeGetBlockHeaders(p GetBlockHeadersPacket) ([]byte, error) {
	enc := rlp.NewEncoder(64)
	enc.BeginList()
	if err := encodeHashOrNumber(enc, p.Origin); err != nil {
		return nil, err
	}
	enc.AddUnsigned(p.Amount)
	enc.AddUnsigned(p.Skip)
	enc.AddBool(p.Reverse)
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	return enc.Finish()
}

func DecodeGetBlockHeaders(payload []byte) (GetBlockHeadersPacket, error) {
	return rlp.Decode(payload, rlp.ProhibitLeftover, func(s *rlp.Stream) (GetBlockHeadersPacket, error) {
		if _, err := s.ReadListHeader(); err != nil {
			return GetBlockHeadersPacket{}, err
		}
		var p GetBlockHeadersPacket
		origin, err := decodeHashOrNumber(s)
		if err != nil {
			return GetBlockHeadersPacket{}, err
		}
		p.Origin = origin
		if p.Amount, err = s.ReadUnsigned(); err != nil {
			return GetBlockHeadersPacket{}, err
		}
		if p.Skip, err = s.ReadUnsigned(); err != nil {
			return GetBlockHeadersPacket{}, err
		}
		if p.Reverse, err = s.ReadBool(); err != nil {
			return GetBlockHeadersPacket{}, err
		}
		if err := s.ListEnd(); err != nil {
			return GetBlockHeadersPacket{}, err
		}
		return p, nil
	})
}

// BlockHeadersPacket is the BLOCK_HEADERS response body: a list of
// headers.
type BlockHeadersPacket struct {
	Headers []*Header
}

func EncodeBlockHeaders(p BlockHeadersPacket) ([]byte, error) {
	enc := rlp.NewEncoder(512 * len(p.Headers))
	enc.BeginList()
	for _, h := range p.Headers {
		encoded, err := EncodeHeader(h)
		if err != nil {
			return nil, err
		}
		if _, err := enc.AddRaw(encoded); err != nil {
			return nil, err
		}
	}
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	return enc.Finish()
}

func DecodeBlockHeaders(payload []byte) (BlockHeadersPacket, error) {
	return rlp.Decode(payload, rlp.ProhibitLeftover, func(s *rlp.Stream) (BlockHeadersPacket, error) {
		headers, err := rlp.ReadListIntoVec(s, DecodeHeader)
		if err != nil {
			return BlockHeadersPacket{}, err
		}
		return BlockHeadersPacket{Headers: headers}, nil
	})
}

// NewBlockHashesPacket is the NEW_BLOCK_HASHES message body: a list of
// (hash, number) announcements.
type NewBlockHashesPacket []struct {
	Hash   common.Hash
	Number uint64
}

func EncodeNewBlockHashes(p NewBlockHashesPacket) ([]byte, error) {
	enc := rlp.NewEncoder(48 * len(p))
	enc.BeginList()
	for _, a := range p {
		enc.BeginList()
		enc.AddBytes(a.Hash[:])
		enc.AddUnsigned(a.Number)
		if _, err := enc.EndList(); err != nil {
			return nil, err
		}
	}
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	return enc.Finish()
}

func DecodeNewBlockHashes(payload []byte) (NewBlockHashesPacket, error) {
	return rlp.Decode(payload, rlp.ProhibitLeftover, func(s *rlp.Stream) (NewBlockHashesPacket, error) {
		type entry = struct {
			Hash   common.Hash
			Number uint64
		}
		items, err := rlp.ReadListIntoVec(s, func(s *rlp.Stream) (entry, error) {
			if _, err := s.ReadListHeader(); err != nil {
				return entry{}, err
			}
			var e entry
			if e.Hash, err = readHash(s); err != nil {
				return entry{}, err
			}
			if e.Number, err = s.ReadUnsigned(); err != nil {
				return entry{}, err
			}
			if err := s.ListEnd(); err != nil {
				return entry{}, err
			}
			return e, nil
		})
		if err != nil {
			return nil, err
		}
		return NewBlockHashesPacket(items), nil
	})
}

// RawTransaction is an opaque, already fully RLP-encoded transaction
// envelope. This core treats transactions as an encoding boundary only
// (spec §1: no concrete sub-protocol business logic beyond encoding
// shapes), so it never parses the envelope's internal fields -- only
// splices it whole into the surrounding list.
type RawTransaction []byte

// TransactionsPacket is the TRANSACTIONS message body: a list of raw
// transaction envelopes.
type TransactionsPacket []RawTransaction

func EncodeTransactions(p TransactionsPacket) ([]byte, error) {
	size := 0
	for _, tx := range p {
		size += len(tx)
	}
	enc := rlp.NewEncoder(size + 8)
	enc.BeginList()
	for _, tx := range p {
		if _, err := enc.AddRaw(tx); err != nil {
			return nil, err
		}
	}
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	return enc.Finish()
}

func DecodeTransactions(payload []byte) (TransactionsPacket, error) {
	return rlp.Decode(payload, rlp.ProhibitLeftover, func(s *rlp.Stream) (TransactionsPacket, error) {
		return rlp.ReadListIntoVec(s, func(s *rlp.Stream) (RawTransaction, error) {
			b, err := s.ReadRawItem()
			if err != nil {
				return nil, err
			}
			return RawTransaction(append([]byte(nil), b...)), nil
		})
	})
}

// NewBlockPacket is the NEW_BLOCK message body: [[header, transactions,
// uncles], total_difficulty].
type NewBlockPacket struct {
	Header       *Header
	Transactions []RawTransaction
	Uncles       []*Header
	TD           *uint256.Int
}

func EncodeNewBlock(p NewBlockPacket) ([]byte, error) {
	enc := rlp.NewEncoder(1024)
	enc.BeginList() // outer [block, td]
	enc.BeginList() // block := [header, txs, uncles]
	headerBytes, err := EncodeHeader(p.Header)
	if err != nil {
		return nil, err
	}
	if _, err := enc.AddRaw(headerBytes); err != nil {
		return nil, err
	}
	enc.BeginList()
	for _, tx := range p.Transactions {
		if _, err := enc.AddRaw(tx); err != nil {
			return nil, err
		}
	}
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	enc.BeginList()
	for _, u := range p.Uncles {
		uncleBytes, err := EncodeHeader(u)
		if err != nil {
			return nil, err
		}
		if _, err := enc.AddRaw(uncleBytes); err != nil {
			return nil, err
		}
	}
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	if _, err := enc.EndList(); err != nil { // close block
		return nil, err
	}
	enc.AddUnsigned256(p.TD)
	if _, err := enc.EndList(); err != nil { // close outer
		return nil, err
	}
	return enc.Finish()
}

func DecodeNewBlock(payload []byte) (NewBlockPacket, error) {
	return rlp.Decode(payload, rlp.ProhibitLeftover, func(s *rlp.Stream) (NewBlockPacket, error) {
		if _, err := s.ReadListHeader(); err != nil {
			return NewBlockPacket{}, err
		}
		if _, err := s.ReadListHeader(); err != nil {
			return NewBlockPacket{}, err
		}
		var p NewBlockPacket
		header, err := DecodeHeader(s)
		if err != nil {
			return NewBlockPacket{}, err
		}
		p.Header = header
		p.Transactions, err = rlp.ReadListIntoVec(s, func(s *rlp.Stream) (RawTransaction, error) {
			b, err := s.ReadRawItem()
			if err != nil {
				return nil, err
			}
			return RawTransaction(append([]byte(nil), b...)), nil
		})
		if err != nil {
			return NewBlockPacket{}, err
		}
		p.Uncles, err = rlp.ReadListIntoVec(s, DecodeHeader)
		if err != nil {
			return NewBlockPacket{}, err
		}
		if err := s.ListEnd(); err != nil { // close block
			return NewBlockPacket{}, err
		}
		if p.TD, err = s.ReadUnsigned256(); err != nil {
			return NewBlockPacket{}, err
		}
		if err := s.ListEnd(); err != nil { // close outer
			return NewBlockPacket{}, err
		}
		return p, nil
	})
}

// NewPooledTransactionHashesPacket is the NEW_POOLED_TX_HASHES message
// body in its eth/68 shape: parallel arrays of transaction type, encoded
// size, and hash, rather than eth/65's bare hash list, so a peer can
// prioritize which announced transactions to fetch.
type NewPooledTransactionHashesPacket struct {
	Types  []byte
	Sizes  []uint64
	Hashes []common.Hash
}

func EncodeNewPooledTransactionHashes(p NewPooledTransactionHashesPacket) ([]byte, error) {
	enc := rlp.NewEncoder(40 * len(p.Hashes))
	enc.BeginList()
	enc.AddBytes(p.Types)
	enc.BeginList()
	for _, sz := range p.Sizes {
		enc.AddUnsigned(sz)
	}
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	enc.BeginList()
	for _, h := range p.Hashes {
		enc.AddBytes(h[:])
	}
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	return enc.Finish()
}

func DecodeNewPooledTransactionHashes(payload []byte) (NewPooledTransactionHashesPacket, error) {
	return rlp.Decode(payload, rlp.ProhibitLeftover, func(s *rlp.Stream) (NewPooledTransactionHashesPacket, error) {
		if _, err := s.ReadListHeader(); err != nil {
			return NewPooledTransactionHashesPacket{}, err
		}
		var p NewPooledTransactionHashesPacket
		types, err := s.ReadBytes()
		if err != nil {
			return NewPooledTransactionHashesPacket{}, err
		}
		p.Types = append([]byte(nil), types...)
		p.Sizes, err = rlp.ReadListIntoVec(s, (*rlp.Stream).ReadUnsigned)
		if err != nil {
			return NewPooledTransactionHashesPacket{}, err
		}
		p.Hashes, err = rlp.ReadListIntoVec(s, func(s *rlp.Stream) (common.Hash, error) {
			b, err := s.ReadFixed(common.HashLength)
			if err != nil {
				return common.Hash{}, err
			}
			return common.BytesToHash(b), nil
		})
		if err != nil {
			return NewPooledTransactionHashesPacket{}, err
		}
		if err := s.ListEnd(); err != nil {
			return NewPooledTransactionHashesPacket{}, err
		}
		return p, nil
	})
}

func encodeHashList(hashes []common.Hash) ([]byte, error) {
	enc := rlp.NewEncoder(40 * len(hashes))
	enc.BeginList()
	for _, h := range hashes {
		enc.AddBytes(h[:])
	}
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	return enc.Finish()
}

func decodeHashList(payload []byte) ([]common.Hash, error) {
	return rlp.Decode(payload, rlp.ProhibitLeftover, func(s *rlp.Stream) ([]common.Hash, error) {
		return rlp.ReadListIntoVec(s, func(s *rlp.Stream) (common.Hash, error) {
			b, err := s.ReadFixed(common.HashLength)
			if err != nil {
				return common.Hash{}, err
			}
			return common.BytesToHash(b), nil
		})
	})
}

// GetPooledTransactionsPacket is the GET_POOLED_TRANSACTIONS message
// body: a list of requested transaction hashes.
type GetPooledTransactionsPacket []common.Hash

func EncodeGetPooledTransactions(p GetPooledTransactionsPacket) ([]byte, error) {
	return encodeHashList(p)
}

func DecodeGetPooledTransactions(payload []byte) (GetPooledTransactionsPacket, error) {
	h, err := decodeHashList(payload)
	if err != nil {
		return nil, err
	}
	return GetPooledTransactionsPacket(h), nil
}

// PooledTransactionsPacket is the POOLED_TRANSACTIONS response body: a
// list of raw transaction envelopes matching a GetPooledTransactions
// request.
type PooledTransactionsPacket []RawTransaction

func EncodePooledTransactions(p PooledTransactionsPacket) ([]byte, error) {
	return EncodeTransactions(TransactionsPacket(p))
}

func DecodePooledTransactions(payload []byte) (PooledTransactionsPacket, error) {
	txs, err := DecodeTransactions(payload)
	if err != nil {
		return nil, err
	}
	return PooledTransactionsPacket(txs), nil
}

// GetReceiptsPacket is the GET_RECEIPTS message body: a list of
// requested block hashes.
type GetReceiptsPacket []common.Hash

func EncodeGetReceipts(p GetReceiptsPacket) ([]byte, error) {
	return encodeHashList(p)
}

func DecodeGetReceipts(payload []byte) (GetReceiptsPacket, error) {
	h, err := decodeHashList(payload)
	if err != nil {
		return nil, err
	}
	return GetReceiptsPacket(h), nil
}

// ReceiptsPacket is the RECEIPTS response body: one receipt list per
// requested block.
type ReceiptsPacket [][]Receipt

func EncodeReceipts(p ReceiptsPacket) ([]byte, error) {
	enc := rlp.NewEncoder(256 * len(p))
	enc.BeginList()
	for _, block := range p {
		enc.BeginList()
		for _, r := range block {
			encodeReceipt(enc, r)
		}
		if _, err := enc.EndList(); err != nil {
			return nil, err
		}
	}
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	return enc.Finish()
}

func DecodeReceipts(payload []byte) (ReceiptsPacket, error) {
	return rlp.Decode(payload, rlp.ProhibitLeftover, func(s *rlp.Stream) (ReceiptsPacket, error) {
		return rlp.ReadListIntoVec(s, func(s *rlp.Stream) ([]Receipt, error) {
			return rlp.ReadListIntoVec(s, decodeReceipt)
		})
	})
}
