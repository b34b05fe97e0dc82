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

package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
)

// HMACSHA256 computes the HMAC-SHA256 MAC of data under key.
func HMACSHA256(key []byte, data ...[]byte) []byte {
	m := hmac.New(sha256.New, key)
	for _, b := range data {
		m.Write(b)
	}
	return m.Sum(nil)
}

// HMACSHA256Short is C4's hmac_sha256_short: HMAC-SHA256 truncated to the
// leading 16 bytes, the width of the two rolling-MAC seeds the auth
// handshake derives. (ECIES tags its envelope with the full 32-byte
// HMACSHA256.)
func HMACSHA256Short(key []byte, data ...[]byte) []byte {
	return HMACSHA256(key, data...)[:16]
}

// ConstantTimeCompare reports whether a and b are equal, in time
// independent of their contents (but not their lengths). Every MAC
// verification in this module goes through this instead of bytes.Equal.
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
