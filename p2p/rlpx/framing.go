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

package rlpx

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"hash"
	"io"

	"github.com/GeniusVentures/rlp-sub000/crypto"
	"golang.org/x/crypto/sha3"
)

// DefaultMaxFrameSize is the largest body a FrameCipher will allocate for
// a single incoming frame, guarding against a peer claiming an absurd
// length in a forged header.
const DefaultMaxFrameSize = 16 * 1024 * 1024

var (
	ErrFrameTooLarge = errors.New("rlpx: frame size exceeds maximum")
	ErrZeroFrame     = errors.New("rlpx: frame size is zero")
	ErrBadHeaderMAC  = errors.New("rlpx: invalid header MAC")
	ErrBadBodyMAC    = errors.New("rlpx: invalid body MAC")
)

// FrameCipher encrypts and decrypts RLPx frames for one connection. It is
// bound to one direction pair (egress/ingress) produced by a single
// handshake and keeps two independent rolling MAC states; it must not be
// shared across goroutines without external locking.
type FrameCipher struct {
	aesSecret []byte
	macBlock  cipher.Block

	egressMAC  hash.Hash
	ingressMAC hash.Hash

	MaxFrameSize int
}

// NewFrameCipher builds a FrameCipher from handshake secrets. The rolling
// MAC states start from the egress/ingress seeds the handshake derived.
func NewFrameCipher(s Secrets) (*FrameCipher, error) {
	macBlock, err := aes.NewCipher(s.MAC)
	if err != nil {
		return nil, fmt.Errorf("rlpx: invalid MAC secret: %w", err)
	}
	egress := sha3.NewLegacyKeccak256()
	egress.Write(s.EgressSeed[:])
	ingress := sha3.NewLegacyKeccak256()
	ingress.Write(s.IngressSeed[:])

	return &FrameCipher{
		aesSecret:    s.AES,
		macBlock:     macBlock,
		egressMAC:    egress,
		ingressMAC:   ingress,
		MaxFrameSize: DefaultMaxFrameSize,
	}, nil
}

// macState returns the current 16-byte rolling state of mac: the leading
// 16 bytes of its running Keccak-256 digest.
func macState(mac hash.Hash) []byte {
	return mac.Sum(nil)[:16]
}

// updateMAC folds seed into mac's rolling state via
// mac <- keccak256.update(mac, AES_ECB(mac_secret, mac_state[0:16]) ⊕ seed)
// and returns the new state's leading 16 bytes -- the canonical DevP2P
// scheme, not the SHA-256 approximation some original sources use.
func updateMAC(mac hash.Hash, block cipher.Block, seed []byte) []byte {
	aesBuf := make([]byte, aes.BlockSize)
	block.Encrypt(aesBuf, mac.Sum(nil))
	for i := range aesBuf {
		aesBuf[i] ^= seed[i]
	}
	mac.Write(aesBuf)
	return mac.Sum(nil)[:16]
}

// WriteFrame encrypts body as one frame and writes it to w.
func (c *FrameCipher) WriteFrame(w io.Writer, body []byte) error {
	if len(body) == 0 {
		return ErrZeroFrame
	}
	if len(body) > c.MaxFrameSize {
		return ErrFrameTooLarge
	}

	headerPlain := make([]byte, 16)
	putUint24(uint32(len(body)), headerPlain)

	headerIV := macState(c.egressMAC)
	headerStream, err := crypto.NewCTRStream(c.aesSecret, headerIV)
	if err != nil {
		return err
	}
	headerCT := make([]byte, 16)
	headerStream.XORKeyStream(headerCT, headerPlain)
	headerMAC := updateMAC(c.egressMAC, c.macBlock, headerCT)

	if _, err := w.Write(headerCT); err != nil {
		return err
	}
	if _, err := w.Write(headerMAC); err != nil {
		return err
	}

	bodyIV := macState(c.egressMAC)
	bodyStream, err := crypto.NewCTRStream(c.aesSecret, bodyIV)
	if err != nil {
		return err
	}
	bodyCT := make([]byte, len(body))
	bodyStream.XORKeyStream(bodyCT, body)

	if _, err := w.Write(bodyCT); err != nil {
		return err
	}
	c.egressMAC.Write(bodyCT)
	bodyMAC := updateMAC(c.egressMAC, c.macBlock, macState(c.egressMAC))
	if _, err := w.Write(bodyMAC); err != nil {
		return err
	}
	return nil
}

// ReadFrame reads and decrypts one frame from r, verifying both MACs in
// constant time before returning the plaintext body.
func (c *FrameCipher) ReadFrame(r io.Reader) ([]byte, error) {
	headerCT := make([]byte, 16)
	if _, err := io.ReadFull(r, headerCT); err != nil {
		return nil, err
	}
	headerMAC := make([]byte, 16)
	if _, err := io.ReadFull(r, headerMAC); err != nil {
		return nil, err
	}

	// Capture the IV before updateMAC mutates the rolling state -- the
	// writer encrypted the header with the state as it stood prior to
	// folding this header in.
	headerIV := macState(c.ingressMAC)
	wantHeaderMAC := updateMAC(c.ingressMAC, c.macBlock, headerCT)
	if !crypto.ConstantTimeCompare(headerMAC, wantHeaderMAC) {
		return nil, ErrBadHeaderMAC
	}

	headerStream, err := crypto.NewCTRStream(c.aesSecret, headerIV)
	if err != nil {
		return nil, err
	}
	headerPlain := make([]byte, 16)
	headerStream.XORKeyStream(headerPlain, headerCT)
	size := readUint24(headerPlain)
	if size == 0 {
		return nil, ErrZeroFrame
	}
	if int(size) > c.MaxFrameSize {
		return nil, ErrFrameTooLarge
	}

	bodyCT := make([]byte, size)
	if _, err := io.ReadFull(r, bodyCT); err != nil {
		return nil, err
	}
	bodyMAC := make([]byte, 16)
	if _, err := io.ReadFull(r, bodyMAC); err != nil {
		return nil, err
	}

	bodyIV := macState(c.ingressMAC)
	c.ingressMAC.Write(bodyCT)
	wantBodyMAC := updateMAC(c.ingressMAC, c.macBlock, macState(c.ingressMAC))
	if !crypto.ConstantTimeCompare(bodyMAC, wantBodyMAC) {
		return nil, ErrBadBodyMAC
	}

	bodyStream, err := crypto.NewCTRStream(c.aesSecret, bodyIV)
	if err != nil {
		return nil, err
	}
	bodyPlain := make([]byte, size)
	bodyStream.XORKeyStream(bodyPlain, bodyCT)
	return bodyPlain, nil
}

func putUint24(v uint32, b []byte) {
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}

func readUint24(b []byte) uint32 {
	return uint32(b[2]) | uint32(b[1])<<8 | uint32(b[0])<<16
}

