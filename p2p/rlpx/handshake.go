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

// Package rlpx implements the RLPx transport: the two-message encrypted
// auth handshake (C5) that derives session secrets, and the rolling-MAC
// frame cipher (C6) that those secrets key.
package rlpx

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/GeniusVentures/rlp-sub000/crypto"
	"github.com/GeniusVentures/rlp-sub000/crypto/ecies"
)

const (
	sigLen     = 65 // r[32] || s[32] || recid[1]
	pubLen     = 64 // uncompressed secp256k1 point, no format byte
	hashLen    = 32
	versionLen = 1
	nonceLen   = 32

	authBodyLen = sigLen + hashLen + pubLen + nonceLen + versionLen // 194
	ackBodyLen  = pubLen + nonceLen + versionLen                    // 97

	encAuthLen = authBodyLen + ecies.Overhead
	encAckLen  = ackBodyLen + ecies.Overhead

	handshakeVersion = 0x00
)

// ErrAuthenticationFailed is returned for every handshake failure --
// malformed packet, signature recovery failure, MAC/binding mismatch, or
// I/O shortfall -- per §4.5's failure model: the handshake exposes a
// single opaque failure kind so that partial derivation state is never
// inspectable by the caller.
var ErrAuthenticationFailed = errors.New("rlpx: authentication failed")

// Secrets holds the frame secrets derived by a completed auth handshake:
// the two 32-byte symmetric keys and the two 16-byte rolling MAC seeds,
// assigned so that one side's egress seed equals the other's ingress seed.
type Secrets struct {
	Remote     *ecdsa.PublicKey
	AES        []byte
	MAC        []byte
	EgressSeed [16]byte
	IngressSeed [16]byte
}

// handshakeState tracks everything accumulated across the two messages of
// one handshake run.
type handshakeState struct {
	initiator bool

	remote    *ecdsa.PublicKey  // peer's static public key
	localEph  *ecdsa.PrivateKey // own ephemeral keypair
	remoteEph *ecdsa.PublicKey  // peer's ephemeral public key

	initNonce []byte
	respNonce []byte

	authPacket []byte // raw bytes as transmitted on the wire
	ackPacket  []byte
}

// InitiatorHandshake runs the auth handshake as the initiator (dialing)
// side over conn, using prv as the local static key and remote as the
// peer's known static public key.
func InitiatorHandshake(conn io.ReadWriter, prv *ecdsa.PrivateKey, remote *ecdsa.PublicKey) (Secrets, error) {
	h := &handshakeState{initiator: true, remote: remote}

	authPacket, err := h.makeAuthMsg(prv)
	if err != nil {
		return Secrets{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	h.authPacket = authPacket
	if _, err := conn.Write(authPacket); err != nil {
		return Secrets{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	ackPacket := make([]byte, encAckLen)
	if _, err := io.ReadFull(conn, ackPacket); err != nil {
		return Secrets{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	h.ackPacket = ackPacket
	if err := h.handleAuthAck(prv, ackPacket); err != nil {
		return Secrets{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	return h.secrets()
}

// RecipientHandshake runs the auth handshake as the recipient (listening)
// side over conn, using prv as the local static key.
func RecipientHandshake(conn io.ReadWriter, prv *ecdsa.PrivateKey) (Secrets, error) {
	h := &handshakeState{initiator: false}

	authPacket := make([]byte, encAuthLen)
	if _, err := io.ReadFull(conn, authPacket); err != nil {
		return Secrets{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	h.authPacket = authPacket
	if err := h.handleAuthMsg(prv, authPacket); err != nil {
		return Secrets{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	ackPacket, err := h.makeAuthAck(prv)
	if err != nil {
		return Secrets{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	h.ackPacket = ackPacket
	if _, err := conn.Write(ackPacket); err != nil {
		return Secrets{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	return h.secrets()
}

// makeAuthMsg builds and ECIES-encrypts the initiator's auth message:
// sig[64] || recid[1] || keccak256(eph_pub)[32] || initiator_pub[64] ||
// initiator_nonce[32] || version[1].
func (h *handshakeState) makeAuthMsg(prv *ecdsa.PrivateKey) ([]byte, error) {
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	h.initNonce = nonce

	eph, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	h.localEph = eph

	token, err := crypto.Ecdh(h.remote, prv)
	if err != nil {
		return nil, err
	}
	signed := xor(token, nonce)
	sig, err := crypto.Sign(signed, eph)
	if err != nil {
		return nil, err
	}

	ephHash := crypto.Keccak256(crypto.FromECDSAPub(&eph.PublicKey))

	body := make([]byte, 0, authBodyLen)
	body = append(body, sig...)
	body = append(body, ephHash...)
	body = append(body, crypto.FromECDSAPub(&prv.PublicKey)...)
	body = append(body, nonce...)
	body = append(body, handshakeVersion)

	return ecies.Encrypt(rand.Reader, h.remote, body, nil, nil)
}

// handleAuthMsg decrypts and validates an incoming auth message, recovering
// the initiator's ephemeral public key from its signature and checking it
// against the transmitted binding hash.
func (h *handshakeState) handleAuthMsg(prv *ecdsa.PrivateKey, packet []byte) error {
	body, err := ecies.Decrypt(prv, packet, nil, nil)
	if err != nil {
		return err
	}
	if len(body) != authBodyLen {
		return fmt.Errorf("auth body length %d, want %d", len(body), authBodyLen)
	}
	sig := body[:sigLen]
	ephHash := body[sigLen : sigLen+hashLen]
	initiatorPub := body[sigLen+hashLen : sigLen+hashLen+pubLen]
	nonce := body[sigLen+hashLen+pubLen : sigLen+hashLen+pubLen+nonceLen]

	remote, err := crypto.UnmarshalPubkey(initiatorPub)
	if err != nil {
		return err
	}

	token, err := crypto.Ecdh(remote, prv)
	if err != nil {
		return err
	}
	signed := xor(token, nonce)
	remoteEph, err := crypto.SigToPub(signed, sig)
	if err != nil {
		return err
	}
	if !crypto.ConstantTimeCompare(crypto.Keccak256(crypto.FromECDSAPub(remoteEph)), ephHash) {
		return errors.New("ephemeral key binding mismatch")
	}

	h.remote = remote
	h.remoteEph = remoteEph
	h.initNonce = nonce

	eph, err := crypto.GenerateKey()
	if err != nil {
		return err
	}
	h.localEph = eph
	return nil
}

// makeAuthAck builds and ECIES-encrypts the recipient's ack message:
// recipient_eph_pub[64] || recipient_nonce[32] || version[1].
func (h *handshakeState) makeAuthAck(prv *ecdsa.PrivateKey) ([]byte, error) {
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	h.respNonce = nonce

	body := make([]byte, 0, ackBodyLen)
	body = append(body, crypto.FromECDSAPub(&h.localEph.PublicKey)...)
	body = append(body, nonce...)
	body = append(body, handshakeVersion)

	return ecies.Encrypt(rand.Reader, h.remote, body, nil, nil)
}

// handleAuthAck decrypts an incoming ack message.
func (h *handshakeState) handleAuthAck(prv *ecdsa.PrivateKey, packet []byte) error {
	body, err := ecies.Decrypt(prv, packet, nil, nil)
	if err != nil {
		return err
	}
	if len(body) != ackBodyLen {
		return fmt.Errorf("ack body length %d, want %d", len(body), ackBodyLen)
	}
	remoteEphPub := body[:pubLen]
	nonce := body[pubLen : pubLen+nonceLen]

	remoteEph, err := crypto.UnmarshalPubkey(remoteEphPub)
	if err != nil {
		return err
	}
	h.remoteEph = remoteEph
	h.respNonce = nonce
	return nil
}

// secrets derives the frame secrets per §4.5: an ephemeral ECDH secret
// stretched with SHA-256 and the concat KDF into AES/MAC keys, then two
// HMAC-SHA256-derived 16-byte seeds for the rolling MAC, assigned so that
// one side's egress seed is the other's ingress seed.
func (h *handshakeState) secrets() (Secrets, error) {
	ephShared, err := crypto.Ecdh(h.remoteEph, h.localEph)
	if err != nil {
		return Secrets{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	// The ephemeral key's only remaining purpose was this ECDH; zero it
	// so it does not linger in memory for the life of the session.
	if h.localEph != nil && h.localEph.D != nil {
		h.localEph.D.SetInt64(0)
	}

	sum := sha256.Sum256(append(append([]byte{}, h.respNonce...), h.initNonce...))
	secretMaterial := append(append([]byte{}, ephShared...), sum[:]...)
	keys := crypto.ConcatKDF(sha256.New, secretMaterial, nil, 64)
	aesSecret := keys[:32]
	macSecret := keys[32:64]

	var ownNonce, peerNonce, ownSent, peerSent []byte
	if h.initiator {
		ownNonce, peerNonce = h.initNonce, h.respNonce
		ownSent, peerSent = h.authPacket, h.ackPacket
	} else {
		ownNonce, peerNonce = h.respNonce, h.initNonce
		ownSent, peerSent = h.ackPacket, h.authPacket
	}

	egress := crypto.HMACSHA256Short(macSecret, xor(macSecret, peerNonce), ownSent)
	ingress := crypto.HMACSHA256Short(macSecret, xor(macSecret, ownNonce), peerSent)

	s := Secrets{Remote: h.remote, AES: aesSecret, MAC: macSecret}
	copy(s.EgressSeed[:], egress)
	copy(s.IngressSeed[:], ingress)
	return s, nil
}

func xor(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = a[i] ^ b[i]
	}
	return out
}
