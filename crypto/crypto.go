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

// Package crypto is the thin façade over secp256k1 ECDSA/ECDH, Keccak-256,
// AES-256-CTR and HMAC-SHA256 that every higher layer (ECIES, the auth
// handshake, the frame cipher) is built on. It wraps github.com/btcsuite/btcd
// rather than a cgo binding to libsecp256k1 so the module stays pure Go.
package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"golang.org/x/crypto/sha3"
)

const (
	// PubkeyLen is the length of an uncompressed secp256k1 public key with
	// the 0x04 format byte stripped off, as used throughout RLPx.
	PubkeyLen = 64

	// SignatureLen is the length of a recoverable ECDSA signature: 32
	// bytes r, 32 bytes s, 1 byte recovery id.
	SignatureLen = 65

	// DigestLen is the length of a Keccak-256 digest.
	DigestLen = 32
)

// S256 returns the secp256k1 curve, satisfying the standard library's
// elliptic.Curve interface so that *ecdsa.PrivateKey/PublicKey can be used
// as the canonical key representation throughout this module.
func S256() elliptic.Curve {
	return btcec.S256()
}

// Keccak256 computes the Keccak-256 digest of the concatenation of data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash is Keccak256 with the result copied into a fixed-size array,
// convenient for use as a map key or struct field.
func Keccak256Hash(data ...[]byte) (h [32]byte) {
	copy(h[:], Keccak256(data...))
	return h
}

// GenerateKey generates a new secp256k1 private key, reading randomness
// from rand.Reader. It corresponds to C4's generate_ephemeral_keypair: the
// underlying curve library internally resamples until a valid scalar is
// drawn.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(S256(), rand.Reader)
}

// FromECDSAPub returns the 64-byte uncompressed representation of pub
// (x||y, without the leading format byte).
func FromECDSAPub(pub *ecdsa.PublicKey) []byte {
	if pub == nil || pub.X == nil || pub.Y == nil {
		return nil
	}
	return elliptic.Marshal(S256(), pub.X, pub.Y)[1:]
}

// UnmarshalPubkey parses a 64-byte uncompressed public key (x||y) into an
// *ecdsa.PublicKey, verifying that the point lies on the curve.
func UnmarshalPubkey(pub []byte) (*ecdsa.PublicKey, error) {
	if len(pub) != PubkeyLen {
		return nil, fmt.Errorf("crypto: invalid public key length %d, want %d", len(pub), PubkeyLen)
	}
	full := make([]byte, PubkeyLen+1)
	full[0] = 4
	copy(full[1:], pub)
	x, y := elliptic.Unmarshal(S256(), full)
	if x == nil {
		return nil, errors.New("crypto: invalid public key point")
	}
	return &ecdsa.PublicKey{Curve: S256(), X: x, Y: y}, nil
}

// ValidatePublicKey reports whether pub is a valid point on secp256k1.
func ValidatePublicKey(pub []byte) bool {
	_, err := UnmarshalPubkey(pub)
	return err == nil
}

// FromECDSA returns the big-endian, left-zero-padded 32-byte scalar of a
// private key.
func FromECDSA(prv *ecdsa.PrivateKey) []byte {
	if prv == nil {
		return nil
	}
	b := make([]byte, 32)
	d := prv.D.Bytes()
	copy(b[32-len(d):], d)
	return b
}

// ToECDSA parses a 32-byte scalar as a private key on secp256k1.
func ToECDSA(d []byte) (*ecdsa.PrivateKey, error) {
	if len(d) != 32 {
		return nil, fmt.Errorf("crypto: invalid private key length %d", len(d))
	}
	k := new(big.Int).SetBytes(d)
	if k.Sign() == 0 || k.Cmp(S256().Params().N) >= 0 {
		return nil, errors.New("crypto: private key scalar out of range")
	}
	prv := new(ecdsa.PrivateKey)
	prv.PublicKey.Curve = S256()
	prv.D = k
	prv.PublicKey.X, prv.PublicKey.Y = S256().ScalarBaseMult(d)
	return prv, nil
}

func toBtcecPrivate(prv *ecdsa.PrivateKey) *btcec.PrivateKey {
	priv, _ := btcec.PrivKeyFromBytes(FromECDSA(prv))
	return priv
}

func toBtcecPublic(pub *ecdsa.PublicKey) (*btcec.PublicKey, error) {
	return btcec.ParsePubKey(elliptic.Marshal(S256(), pub.X, pub.Y))
}

// Sign produces a recoverable ECDSA signature over a 32-byte digest: 32
// bytes r, 32 bytes s, and a single recovery-id byte in [0,3].
func Sign(digest []byte, prv *ecdsa.PrivateKey) ([]byte, error) {
	if len(digest) != DigestLen {
		return nil, fmt.Errorf("crypto: digest must be %d bytes, got %d", DigestLen, len(digest))
	}
	priv := toBtcecPrivate(prv)
	// btcecdsa.SignCompact produces the Bitcoin-style compact signature:
	// 1 header byte (27+recid[+4 if compressed]) followed by r||s.
	compact := btcecdsa.SignCompact(priv, digest, false)
	recid := (compact[0] - 27) & 3
	sig := make([]byte, SignatureLen)
	copy(sig, compact[1:])
	sig[64] = recid
	return sig, nil
}

// Ecrecover recovers the 64-byte uncompressed public key that produced sig
// over digest.
func Ecrecover(digest, sig []byte) ([]byte, error) {
	pub, err := SigToPub(digest, sig)
	if err != nil {
		return nil, err
	}
	return FromECDSAPub(pub), nil
}

// SigToPub recovers the public key that produced sig over digest.
func SigToPub(digest, sig []byte) (*ecdsa.PublicKey, error) {
	if len(sig) != SignatureLen {
		return nil, fmt.Errorf("crypto: signature must be %d bytes, got %d", SignatureLen, len(sig))
	}
	if len(digest) != DigestLen {
		return nil, fmt.Errorf("crypto: digest must be %d bytes, got %d", DigestLen, len(digest))
	}
	compact := make([]byte, SignatureLen)
	compact[0] = 27 + sig[64]
	copy(compact[1:], sig[:64])
	pub, _, err := btcecdsa.RecoverCompact(compact, digest)
	if err != nil {
		return nil, fmt.Errorf("crypto: signature recovery failed: %w", err)
	}
	x, y := elliptic.Unmarshal(S256(), pub.SerializeUncompressed())
	return &ecdsa.PublicKey{Curve: S256(), X: x, Y: y}, nil
}

// Ecdh computes the x-coordinate of localPriv * peerPub, the raw secp256k1
// ECDH shared secret (C4 ecdh_shared_secret). Both sides of a key exchange
// arrive at the same value: a*B = a*b*G = b*A.
func Ecdh(peerPub *ecdsa.PublicKey, localPriv *ecdsa.PrivateKey) ([]byte, error) {
	if peerPub == nil || localPriv == nil {
		return nil, errors.New("crypto: nil key in ECDH")
	}
	x, _ := S256().ScalarMult(peerPub.X, peerPub.Y, localPriv.D.Bytes())
	if x == nil {
		return nil, errors.New("crypto: ECDH scalar multiplication failed")
	}
	secret := make([]byte, 32)
	xb := x.Bytes()
	copy(secret[32-len(xb):], xb)
	return secret, nil
}

