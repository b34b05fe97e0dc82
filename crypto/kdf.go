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
	"encoding/binary"
	"hash"
)

// ConcatKDF implements the NIST SP 800-56C concatenation key derivation
// function: derive msgLen bytes from secret and shared-info s1 using hashFn,
// one counter-prefixed block at a time. This is C4's concat_kdf, the sole
// derivation primitive the auth handshake uses to stretch the ECDH secret
// into AES and MAC keys.
func ConcatKDF(hashFn func() hash.Hash, secret, s1 []byte, msgLen int) []byte {
	h := hashFn()
	hashLen := h.Size()
	reps := (msgLen + hashLen - 1) / hashLen
	if reps == 0 {
		reps = 1
	}

	counter := make([]byte, 4)
	k := make([]byte, 0, reps*hashLen)
	for i := 1; i <= reps; i++ {
		binary.BigEndian.PutUint32(counter, uint32(i))
		h.Reset()
		h.Write(counter)
		h.Write(secret)
		h.Write(s1)
		k = h.Sum(k)
	}
	return k[:msgLen]
}
