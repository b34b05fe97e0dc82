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
	"github.com/GeniusVentures/rlp-sub000/common"
	"github.com/GeniusVentures/rlp-sub000/rlp"
	"github.com/holiman/uint256"
)

// BloomByteLength is the width of a block header's/receipt's log bloom
// filter per the Yellow Paper.
const BloomByteLength = 256

// Header is the canonical Ethereum block header (Yellow Paper §4.3),
// encoded as a 15- or 16-item RLP list. BaseFee is the 16th item, present
// only on post-London headers; a nil BaseFee omits it entirely rather
// than encoding a zero, matching go-ethereum's own EIP-1559 rollout
// behavior.
type Header struct {
	ParentHash  common.Hash
	UncleHash   common.Hash
	Coinbase    common.Address
	Root        common.Hash
	TxHash      common.Hash
	ReceiptHash common.Hash
	Bloom       [BloomByteLength]byte
	Difficulty  *uint256.Int
	Number      *uint256.Int
	GasLimit    uint64
	GasUsed     uint64
	Time        uint64
	Extra       []byte
	MixDigest   common.Hash
	Nonce       [8]byte
	BaseFee     *uint256.Int // nil pre-London
}

// EncodeHeader RLP-encodes h as a block header list.
func EncodeHeader(h *Header) ([]byte, error) {
	enc := rlp.NewEncoder(512 + len(h.Extra))
	enc.BeginList()
	enc.AddBytes(h.ParentHash[:])
	enc.AddBytes(h.UncleHash[:])
	enc.AddBytes(h.Coinbase[:])
	enc.AddBytes(h.Root[:])
	enc.AddBytes(h.TxHash[:])
	enc.AddBytes(h.ReceiptHash[:])
	enc.AddBytes(h.Bloom[:])
	enc.AddUnsigned256(h.Difficulty)
	enc.AddUnsigned256(h.Number)
	enc.AddUnsigned(h.GasLimit)
	enc.AddUnsigned(h.GasUsed)
	enc.AddUnsigned(h.Time)
	enc.AddBytes(h.Extra)
	enc.AddBytes(h.MixDigest[:])
	enc.AddBytes(h.Nonce[:])
	if h.BaseFee != nil {
		enc.AddUnsigned256(h.BaseFee)
	}
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	return enc.Finish()
}

// DecodeHeader parses a block header list. A 16th item, if present, is
// read as BaseFee; its absence leaves BaseFee nil.
func DecodeHeader(s *rlp.Stream) (*Header, error) {
	if _, err := s.ReadListHeader(); err != nil {
		return nil, err
	}
	var err error
	h := new(Header)
	if h.ParentHash, err = readHash(s); err != nil {
		return nil, err
	}
	if h.UncleHash, err = readHash(s); err != nil {
		return nil, err
	}
	if h.Coinbase, err = readAddress(s); err != nil {
		return nil, err
	}
	if h.Root, err = readHash(s); err != nil {
		return nil, err
	}
	if h.TxHash, err = readHash(s); err != nil {
		return nil, err
	}
	if h.ReceiptHash, err = readHash(s); err != nil {
		return nil, err
	}
	bloom, err := s.ReadFixed(BloomByteLength)
	if err != nil {
		return nil, err
	}
	copy(h.Bloom[:], bloom)
	if h.Difficulty, err = s.ReadUnsigned256(); err != nil {
		return nil, err
	}
	if h.Number, err = s.ReadUnsigned256(); err != nil {
		return nil, err
	}
	if h.GasLimit, err = s.ReadUnsigned(); err != nil {
		return nil, err
	}
	if h.GasUsed, err = s.ReadUnsigned(); err != nil {
		return nil, err
	}
	if h.Time, err = s.ReadUnsigned(); err != nil {
		return nil, err
	}
	extra, err := s.ReadBytes()
	if err != nil {
		return nil, err
	}
	h.Extra = append([]byte(nil), extra...)
	if h.MixDigest, err = readHash(s); err != nil {
		return nil, err
	}
	nonce, err := s.ReadFixed(8)
	if err != nil {
		return nil, err
	}
	copy(h.Nonce[:], nonce)
	if !s.IsFinished() {
		if h.BaseFee, err = s.ReadUnsigned256(); err != nil {
			return nil, err
		}
	}
	if err := s.ListEnd(); err != nil {
		return nil, err
	}
	return h, nil
}

// DecodeHeaderBytes decodes a single top-level header item, rejecting any
// trailing bytes.
func DecodeHeaderBytes(data []byte) (*Header, error) {
	return rlp.Decode(data, rlp.ProhibitLeftover, DecodeHeader)
}

func readHash(s *rlp.Stream) (common.Hash, error) {
	b, err := s.ReadFixed(common.HashLength)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(b), nil
}

func readAddress(s *rlp.Stream) (common.Address, error) {
	b, err := s.ReadFixed(common.AddressLength)
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(b), nil
}
