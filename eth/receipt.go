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
)

// Log is one Yellow Paper log entry: the emitting contract's address, the
// indexed topics, and the opaque data payload.
type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

func encodeLog(enc *rlp.Encoder, l Log) {
	enc.BeginList()
	enc.AddBytes(l.Address[:])
	enc.BeginList()
	for _, t := range l.Topics {
		enc.AddBytes(t[:])
	}
	enc.EndList()
	enc.AddBytes(l.Data)
	enc.EndList()
}

func decodeLog(s *rlp.Stream) (Log, error) {
	if _, err := s.ReadListHeader(); err != nil {
		return Log{}, err
	}
	var l Log
	addr, err := s.ReadFixed(common.AddressLength)
	if err != nil {
		return Log{}, err
	}
	l.Address = common.BytesToAddress(addr)
	l.Topics, err = rlp.ReadListIntoVec(s, func(s *rlp.Stream) (common.Hash, error) {
		b, err := s.ReadFixed(common.HashLength)
		if err != nil {
			return common.Hash{}, err
		}
		return common.BytesToHash(b), nil
	})
	if err != nil {
		return Log{}, err
	}
	if l.Data, err = s.ReadBytes(); err != nil {
		return Log{}, err
	}
	l.Data = append([]byte(nil), l.Data...)
	if err := s.ListEnd(); err != nil {
		return Log{}, err
	}
	return l, nil
}

// Receipt is the Yellow Paper pre-typed receipt RLP shape: a
// post-transaction state root (pre-Byzantium) or a status byte
// (Byzantium onward) in PostStateOrStatus, cumulative gas used, the log
// bloom filter, and the transaction's logs. Typed-transaction receipts
// (EIP-2718) prefix this list with a one-byte transaction type on the
// wire; that framing is the caller's concern (§1 Non-goals: no concrete
// sub-protocol business logic beyond encoding shapes), so this type
// models only the inner list.
type Receipt struct {
	PostStateOrStatus []byte
	CumulativeGasUsed uint64
	Bloom             [BloomByteLength]byte
	Logs              []Log
}

func encodeReceipt(enc *rlp.Encoder, r Receipt) {
	enc.BeginList()
	enc.AddBytes(r.PostStateOrStatus)
	enc.AddUnsigned(r.CumulativeGasUsed)
	enc.AddBytes(r.Bloom[:])
	enc.BeginList()
	for _, l := range r.Logs {
		encodeLog(enc, l)
	}
	enc.EndList()
	enc.EndList()
}

func decodeReceipt(s *rlp.Stream) (Receipt, error) {
	if _, err := s.ReadListHeader(); err != nil {
		return Receipt{}, err
	}
	var r Receipt
	status, err := s.ReadBytes()
	if err != nil {
		return Receipt{}, err
	}
	r.PostStateOrStatus = append([]byte(nil), status...)
	if r.CumulativeGasUsed, err = s.ReadUnsigned(); err != nil {
		return Receipt{}, err
	}
	bloom, err := s.ReadFixed(BloomByteLength)
	if err != nil {
		return Receipt{}, err
	}
	copy(r.Bloom[:], bloom)
	r.Logs, err = rlp.ReadListIntoVec(s, decodeLog)
	if err != nil {
		return Receipt{}, err
	}
	if err := s.ListEnd(); err != nil {
		return Receipt{}, err
	}
	return r, nil
}
