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

// ToBigCompact returns the minimal big-endian representation of n: empty for
// zero, otherwise the big-endian bytes of n with the leading zero byte
// stripped. This is the byte-string payload used whenever an unsigned
// integer is RLP-encoded (§4.1).
func ToBigCompact(n uint64) []byte {
	if n == 0 {
		return nil
	}
	var buf [8]byte
	buf[0] = byte(n >> 56)
	buf[1] = byte(n >> 48)
	buf[2] = byte(n >> 40)
	buf[3] = byte(n >> 32)
	buf[4] = byte(n >> 24)
	buf[5] = byte(n >> 16)
	buf[6] = byte(n >> 8)
	buf[7] = byte(n)
	i := 0
	for i < 7 && buf[i] == 0 {
		i++
	}
	return buf[i:]
}

// ToBigCompact256 returns the minimal big-endian representation of a 256-bit
// unsigned integer, following the same zero-is-empty rule as ToBigCompact.
func ToBigCompact256(n *uint256.Int) []byte {
	if n.IsZero() {
		return nil
	}
	b := n.Bytes32()
	i := 0
	for i < 31 && b[i] == 0 {
		i++
	}
	out := make([]byte, 32-i)
	copy(out, b[i:])
	return out
}

// FromBigCompact decodes the minimal big-endian representation produced by
// ToBigCompact back into a uint64. It fails with ErrLeadingZero if the
// payload carries a redundant leading zero byte, and with ErrOverflow if the
// payload is wider than 8 bytes.
func FromBigCompact(b []byte) (uint64, error) {
	if len(b) == 0 {
		return 0, nil
	}
	if len(b) > 1 && b[0] == 0 {
		return 0, ErrLeadingZero
	}
	if len(b) > 8 {
		return 0, ErrOverflow
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

// FromBigCompact32/16/8 are width-restricted variants of FromBigCompact,
// rejecting payloads that would not fit the narrower target type.
func FromBigCompact32(b []byte) (uint32, error) {
	v, err := FromBigCompact(b)
	if err != nil {
		return 0, err
	}
	if len(b) > 4 {
		return 0, ErrOverflow
	}
	return uint32(v), nil
}

func FromBigCompact16(b []byte) (uint16, error) {
	v, err := FromBigCompact(b)
	if err != nil {
		return 0, err
	}
	if len(b) > 2 {
		return 0, ErrOverflow
	}
	return uint16(v), nil
}

func FromBigCompact8(b []byte) (uint8, error) {
	v, err := FromBigCompact(b)
	if err != nil {
		return 0, err
	}
	if len(b) > 1 {
		return 0, ErrOverflow
	}
	return uint8(v), nil
}

// FromBigCompact256 decodes a minimal big-endian payload into a 256-bit
// unsigned integer, applying the same leading-zero and width checks as
// FromBigCompact.
func FromBigCompact256(b []byte) (*uint256.Int, error) {
	if len(b) == 0 {
		return new(uint256.Int), nil
	}
	if len(b) > 1 && b[0] == 0 {
		return nil, ErrLeadingZero
	}
	if len(b) > 32 {
		return nil, ErrOverflow
	}
	return new(uint256.Int).SetBytes(b), nil
}
