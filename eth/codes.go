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

// Package eth encodes and decodes the Ethereum wire sub-protocol's message
// bodies: the reference consumer of the session's encrypted channel. This
// package has no dependency on p2p or p2p/rlpx -- it only knows how to turn
// typed values into RLP payload bytes and back, the same "encoding shapes,
// not business logic" boundary the core draws around every sub-protocol.
package eth

// Message codes are relative to the sub-protocol's negotiated offset
// above the base protocol range (p2p.HelloMsg..p2p.PongMsg occupy
// 0x00-0x03). A Session delivers every non-base message with its code
// unchanged, so the caller adds that offset when posting a message and
// removes it before choosing this protocol's decoder.
const (
	StatusMsg                     = 0x00
	NewBlockHashesMsg              = 0x01
	TransactionsMsg                 = 0x02
	GetBlockHeadersMsg               = 0x03
	BlockHeadersMsg                   = 0x04
	GetBlockBodiesMsg                  = 0x05 // reserved: bodies reuse BlockHeadersPacket/NewBlockPacket's shapes, see SPEC_FULL.md
	BlockBodiesMsg                      = 0x06 // reserved, not separately encoded
	NewBlockMsg                          = 0x07
	NewPooledTransactionHashesMsg          = 0x08
	GetPooledTransactionsMsg                = 0x09
	PooledTransactionsMsg                     = 0x0a
	GetReceiptsMsg                             = 0x0d
	ReceiptsMsg                                  = 0x0e
)

// ProtocolVersion is the eth sub-protocol version this package's packet
// shapes correspond to.
const ProtocolVersion = 68
