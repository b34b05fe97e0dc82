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

package rlp

import "github.com/holiman/uint256"

// Encoder accumulates RLP-encoded bytes incrementally, tracking a stack of
// open list positions so that list headers -- whose length is not known
// until every element has been written -- can be patched in after the
// fact. A zero-value Encoder is ready to use.
//
// Encoder is not safe for concurrent use.
type Encoder struct {
	buf   []byte
	stack []int // buffer offsets recorded by BeginList, in order
}

// NewEncoder returns an Encoder with the given initial buffer capacity.
func NewEncoder(sizeHint int) *Encoder {
	return &Encoder{buf: make([]byte, 0, sizeHint)}
}

// AddBytes appends data as an RLP string item: a bare byte when data is a
// single byte below 0x80, otherwise a short- or long-form header followed
// by the payload.
func (e *Encoder) AddBytes(data []byte) *Encoder {
	e.buf = appendString(e.buf, data)
	return e
}

// AddRaw appends data verbatim, as an already RLP-encoded item. It is used
// to splice precomputed items (e.g. a cached sub-message) into a larger
// structure without re-encoding them. It fails ErrEmptyInput if data is
// empty, since there is no canonical zero-length "already encoded" item.
func (e *Encoder) AddRaw(data []byte) (*Encoder, error) {
	if len(data) == 0 {
		return e, ErrEmptyInput
	}
	e.buf = append(e.buf, data...)
	return e, nil
}

// AddUnsigned appends the compact big-endian encoding of n as an RLP
// string: zero becomes 0x80, a single byte below 0x80 is emitted bare.
func (e *Encoder) AddUnsigned(n uint64) *Encoder {
	e.buf = appendUint(e.buf, n)
	return e
}

// AddUnsigned256 appends the compact big-endian encoding of a 256-bit
// unsigned integer as an RLP string, following the same zero-is-empty
// rule as AddUnsigned.
func (e *Encoder) AddUnsigned256(n *uint256.Int) *Encoder {
	e.buf = appendString(e.buf, ToBigCompact256(n))
	return e
}

// AddBool appends true as 0x01 and false as 0x80, matching the strict
// encoding enforced by the decoder's ReadBool.
func (e *Encoder) AddBool(b bool) *Encoder {
	if b {
		e.buf = append(e.buf, 0x01)
	} else {
		e.buf = append(e.buf, 0x80)
	}
	return e
}

// BeginList opens a new list scope. Every subsequent Add* call appends to
// the payload of this list until the matching EndList.
func (e *Encoder) BeginList() *Encoder {
	e.stack = append(e.stack, len(e.buf))
	return e
}

// EndList closes the most recently opened list scope, computing its
// payload length and inserting a canonical list header immediately before
// the recorded start offset. It fails ErrUnmatchedEndList if no list is
// open.
func (e *Encoder) EndList() (*Encoder, error) {
	if len(e.stack) == 0 {
		return e, ErrUnmatchedEndList
	}
	start := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]

	payload := e.buf[start:]
	header := listHeader(len(payload))

	// Join header and payload in a fresh slice first, then copy that back
	// over the payload's position, so the payload is not overwritten while
	// it is still being read.
	e.buf = append(e.buf[:start], append(header, payload...)...)
	return e, nil
}

// Finish returns the accumulated buffer. It fails ErrUnclosedList if any
// BeginList call has no matching EndList.
func (e *Encoder) Finish() ([]byte, error) {
	if len(e.stack) != 0 {
		return nil, ErrUnclosedList
	}
	return e.buf, nil
}

// Reset clears the encoder so its buffer can be reused for a new item.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
	e.stack = e.stack[:0]
}

// --- low-level, allocation-conscious helpers -------------------------------
//
// These mirror the incremental builder API above but operate directly on a
// destination slice. The Encoder methods are built on top of them; they are
// exported separately because hot paths (e.g. per-frame message assembly in
// the RLPx message stream) benefit from appending directly into a reusable
// buffer instead of going through the list-stack bookkeeping.

// AppendBytes appends the RLP string encoding of data to dst.
func AppendBytes(dst, data []byte) []byte {
	return appendString(dst, data)
}

// AppendUint appends the RLP string encoding of the compact big-endian
// representation of n to dst.
func AppendUint(dst []byte, n uint64) []byte {
	return appendUint(dst, n)
}

// AppendListHeader appends a canonical list header for a payload of the
// given length to dst. The caller must follow it with exactly payloadLen
// bytes of already-encoded list items.
func AppendListHeader(dst []byte, payloadLen int) []byte {
	return append(dst, listHeader(payloadLen)...)
}

// WrapList wraps an already RLP-encoded payload (the concatenation of a
// list's items) in its canonical list header.
func WrapList(payload []byte) []byte {
	return append(listHeader(len(payload)), payload...)
}

func appendString(dst, data []byte) []byte {
	n := len(data)
	if n == 1 && data[0] < 0x80 {
		return append(dst, data[0])
	}
	if n <= 55 {
		dst = append(dst, 0x80+byte(n))
		return append(dst, data...)
	}
	lenBytes := ToBigCompact(uint64(n))
	dst = append(dst, 0xb7+byte(len(lenBytes)))
	dst = append(dst, lenBytes...)
	return append(dst, data...)
}

func appendUint(dst []byte, n uint64) []byte {
	if n == 0 {
		return append(dst, 0x80)
	}
	if n < 0x80 {
		return append(dst, byte(n))
	}
	return appendString(dst, ToBigCompact(n))
}

func listHeader(payloadLen int) []byte {
	if payloadLen <= 55 {
		return []byte{0xc0 + byte(payloadLen)}
	}
	lenBytes := ToBigCompact(uint64(payloadLen))
	header := make([]byte, 1+len(lenBytes))
	header[0] = 0xf7 + byte(len(lenBytes))
	copy(header[1:], lenBytes)
	return header
}
