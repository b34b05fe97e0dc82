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

// Package common holds small, dependency-free helpers shared across the
// rest of the module: byte-slice utilities and the fixed-size Hash/Address
// types the session and protocol layers pass around.
package common

import "encoding/hex"

// CopyBytes returns an exact copy of b.
func CopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// LeftPadBytes zero-pads b on the left up to length l. If b is already at
// least l bytes long it is returned unmodified.
func LeftPadBytes(b []byte, l int) []byte {
	if len(b) >= l {
		return b
	}
	out := make([]byte, l)
	copy(out[l-len(b):], b)
	return out
}

// RightPadBytes zero-pads b on the right up to length l. If b is already
// at least l bytes long it is returned unmodified.
func RightPadBytes(b []byte, l int) []byte {
	if len(b) >= l {
		return b
	}
	out := make([]byte, l)
	copy(out, b)
	return out
}

// FromHex decodes a hex string, tolerating an optional "0x" prefix and an
// odd-length string (a leading zero nibble is implied).
func FromHex(s string) []byte {
	if len(s) > 1 && (s[0:2] == "0x" || s[0:2] == "0X") {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}

// isHex reports whether s consists solely of hex digits, an even number of
// them, without any "0x" prefix.
func isHex(s string) bool {
	if len(s)%2 != 0 {
		return false
	}
	for _, c := range []byte(s) {
		if !isHexCharacter(c) {
			return false
		}
	}
	return true
}

func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
