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

// Package p2p implements the devp2p session layer: turning (id, payload)
// pairs into framed, optionally compressed ciphertext over an rlpx.FrameCipher
// (the message stream), and the session state machine that drives the send
// and receive loops on top of it.
package p2p

import (
	"errors"
	"fmt"
	"io"

	"github.com/GeniusVentures/rlp-sub000/p2p/rlpx"
	"github.com/GeniusVentures/rlp-sub000/rlp"
	"github.com/golang/snappy"
)

// MaxDecompressedSize bounds how large a snappy-compressed frame body may
// expand to, so a peer cannot force an unbounded allocation with a forged
// length prefix.
const MaxDecompressedSize = 24 * 1024 * 1024

var (
	// ErrMessageTooLarge is returned when an encoded message payload would
	// exceed the frame cipher's configured maximum.
	ErrMessageTooLarge = errors.New("p2p: message too large")

	// ErrDecompressedTooLarge is returned when a peer's snappy-compressed
	// frame would decompress past MaxDecompressedSize.
	ErrDecompressedTooLarge = errors.New("p2p: decompressed message too large")

	// ErrDecode is returned when the frame body is not a well-formed
	// (id, payload) list.
	ErrDecode = errors.New("p2p: malformed message body")
)

// Msg is one decoded devp2p message: its code and the raw RLP-encoded
// payload bytes that followed it in the frame body.
type Msg struct {
	Code    uint64
	Payload []byte
}

// MessageStream turns Msg values into ciphertext frames and back, using a
// FrameCipher for the encryption/MAC layer (C6) and optional Snappy
// compression of the frame body once the caller enables it (normally right
// after a successful Hello exchange).
type MessageStream struct {
	cipher *rlpx.FrameCipher
	snappy bool
}

// NewMessageStream wraps cipher in a MessageStream. Compression starts
// disabled; EnableSnappy turns it on once both peers have negotiated it.
func NewMessageStream(cipher *rlpx.FrameCipher) *MessageStream {
	return &MessageStream{cipher: cipher}
}

// EnableSnappy turns on Snappy compression of frame bodies for both
// directions. It must only be called after Hello has been exchanged.
func (ms *MessageStream) EnableSnappy() {
	ms.snappy = true
}

// encodeBody builds the frame body for (code, payload): an RLP list whose
// first item is code and whose remaining bytes are payload, spliced in
// verbatim rather than re-encoded as a nested item.
func encodeBody(code uint64, payload []byte) ([]byte, error) {
	enc := rlp.NewEncoder(len(payload) + 9)
	enc.BeginList()
	enc.AddUnsigned(code)
	if len(payload) > 0 {
		if _, err := enc.AddRaw(payload); err != nil {
			return nil, err
		}
	}
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	return enc.Finish()
}

// decodeBody is the inverse of encodeBody: it reads the leading code and
// returns the remaining raw bytes of the list as the payload.
func decodeBody(body []byte) (Msg, error) {
	s := rlp.NewStream(body)
	if _, err := s.ReadListHeader(); err != nil {
		return Msg{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	code, err := s.ReadUnsigned()
	if err != nil {
		return Msg{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	payload, err := s.ReadRaw(s.Remaining())
	if err != nil {
		return Msg{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := s.ListEnd(); err != nil {
		return Msg{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return Msg{Code: code, Payload: out}, nil
}

// WriteMessage encodes msg, optionally compresses the body, and writes it
// as one frame to w.
func (ms *MessageStream) WriteMessage(w io.Writer, msg Msg) error {
	body, err := encodeBody(msg.Code, msg.Payload)
	if err != nil {
		return err
	}
	if ms.snappy {
		body = snappy.Encode(nil, body)
	}
	if len(body) > ms.cipher.MaxFrameSize {
		return ErrMessageTooLarge
	}
	return ms.cipher.WriteFrame(w, body)
}

// ReadMessage reads and decrypts one frame from r and decodes it into a
// Msg, decompressing the body first if compression is enabled.
func (ms *MessageStream) ReadMessage(r io.Reader) (Msg, error) {
	body, err := ms.cipher.ReadFrame(r)
	if err != nil {
		return Msg{}, err
	}
	if ms.snappy {
		n, err := snappy.DecodedLen(body)
		if err != nil {
			return Msg{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if n > MaxDecompressedSize {
			return Msg{}, ErrDecompressedTooLarge
		}
		body, err = snappy.Decode(nil, body)
		if err != nil {
			return Msg{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}
	return decodeBody(body)
}
