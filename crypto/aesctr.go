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
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// NewCTRStream builds an AES-CTR keystream cipher.Stream over key (16 bytes
// for ECIES's AES-128-CTR envelope, 32 for RLPx's AES-256-CTR frame cipher)
// and iv (block-size length). Encryption and decryption are the same
// XOR-with-keystream operation, matching the teacher's own aesCTR helper.
func NewCTRStream(key, iv []byte) (cipher.Stream, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("crypto: IV length %d, want %d", len(iv), block.BlockSize())
	}
	return cipher.NewCTR(block, iv), nil
}

// NewECBEncrypter returns an AES-ECB single-block encrypter keyed by key.
// RLPx's rolling frame MAC folds its running Keccak state through this on
// every frame header and body block -- it is never used to encrypt more
// than one block at a time, which is the only context in which ECB mode is
// an acceptable construction.
func NewECBEncrypter(key []byte) (cipher.Block, error) {
	return aes.NewCipher(key)
}
