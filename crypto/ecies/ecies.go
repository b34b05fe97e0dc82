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

// Package ecies implements the Elliptic Curve Integrated Encryption Scheme
// used by the auth handshake (spec §4.4) to encrypt the initiator's auth
// message and the recipient's ack message under the peer's static public
// key, before either side has derived any shared session secrets.
package ecies

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"errors"
	"io"

	"github.com/GeniusVentures/rlp-sub000/crypto"
)

// Overhead is the number of bytes ECIES adds to a plaintext: a 65-byte
// uncompressed ephemeral public key, a 16-byte AES-CTR IV, and a 32-byte
// HMAC-SHA256 tag.
const Overhead = 65 + 16 + 32

var (
	ErrInvalidMessage   = errors.New("ecies: invalid message")
	ErrInvalidPublicKey = errors.New("ecies: invalid public key")
	ErrSharedKeyTooBig  = errors.New("ecies: shared key params are too big")
	ErrInvalidMAC       = errors.New("ecies: invalid message authentication code")
)

// deriveKeys stretches the raw ECDH secret into a 16-byte AES key and a
// 32-byte MAC key via the NIST SP 800-56C concat KDF, matching C4's
// concat_kdf and the teacher's own ecies.deriveKeys.
func deriveKeys(secret, s1 []byte) (encKey, macKey []byte) {
	k := crypto.ConcatKDF(sha256.New, secret, s1, 16+32)
	encKey = k[:16]
	mac := sha256.Sum256(k[16:])
	macKey = mac[:]
	return encKey, macKey
}

// Encrypt encrypts message for pub using ECIES: s1 is mixed into the key
// derivation (authenticated but not encrypted), s2 is mixed into the MAC
// only. Both may be nil.
func Encrypt(rnd io.Reader, pub *ecdsa.PublicKey, message, s1, s2 []byte) ([]byte, error) {
	ephemeral, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	secret, err := crypto.Ecdh(pub, ephemeral)
	if err != nil {
		return nil, err
	}
	encKey, macKey := deriveKeys(secret, s1)

	iv := make([]byte, 16)
	if _, err := io.ReadFull(rnd, iv); err != nil {
		return nil, err
	}
	stream, err := crypto.NewCTRStream(encKey, iv)
	if err != nil {
		return nil, err
	}
	ciphertext := make([]byte, len(message))
	stream.XORKeyStream(ciphertext, message)

	tag := messageTag(macKey, iv, ciphertext, s2)

	ephPub := crypto.FromECDSAPub(&ephemeral.PublicKey)
	out := make([]byte, 0, 1+len(ephPub)+len(iv)+len(ciphertext)+len(tag))
	out = append(out, 0x04)
	out = append(out, ephPub...)
	out = append(out, iv...)
	out = append(out, ciphertext...)
	out = append(out, tag...)
	return out, nil
}

// Decrypt reverses Encrypt using the recipient's static private key.
func Decrypt(prv *ecdsa.PrivateKey, ct, s1, s2 []byte) ([]byte, error) {
	if len(ct) < 1+crypto.PubkeyLen+1+16+32 {
		return nil, ErrInvalidMessage
	}
	if ct[0] != 0x04 {
		return nil, ErrInvalidPublicKey
	}
	ephPub, err := crypto.UnmarshalPubkey(ct[1 : 1+crypto.PubkeyLen])
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	rest := ct[1+crypto.PubkeyLen:]
	iv := rest[:16]
	tag := rest[len(rest)-32:]
	ciphertext := rest[16 : len(rest)-32]

	secret, err := crypto.Ecdh(ephPub, prv)
	if err != nil {
		return nil, err
	}
	encKey, macKey := deriveKeys(secret, s1)

	want := messageTag(macKey, iv, ciphertext, s2)
	if !crypto.ConstantTimeCompare(tag, want) {
		return nil, ErrInvalidMAC
	}

	stream, err := crypto.NewCTRStream(encKey, iv)
	if err != nil {
		return nil, err
	}
	message := make([]byte, len(ciphertext))
	stream.XORKeyStream(message, ciphertext)
	return message, nil
}

func messageTag(macKey, iv, ciphertext, s2 []byte) []byte {
	return crypto.HMACSHA256(macKey, iv, ciphertext, s2)
}
