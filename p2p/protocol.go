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

package p2p

import (
	"fmt"

	"github.com/GeniusVentures/rlp-sub000/rlp"
)

// Base protocol message codes (§6). Every Session handles these itself;
// codes 0x04 and above belong to negotiated sub-protocols, offset from
// this range.
const (
	HelloMsg      = 0x00
	DisconnectMsg = 0x01
	PingMsg       = 0x02
	PongMsg       = 0x03

	baseProtocolLength = 0x04
	baseProtocolVersion = 5
)

// Cap is a single (name, version) capability advertised in Hello and used
// to negotiate which sub-protocols two peers share.
type Cap struct {
	Name    string
	Version uint64
}

func (c Cap) String() string {
	return fmt.Sprintf("%s/%d", c.Name, c.Version)
}

// Hello is the payload of the base protocol's Hello message: [protocol_version
// (u8), client_id (string), capabilities ([[name, version], …]), listen_port
// (u16), node_id (bytes[64])].
type Hello struct {
	ProtocolVersion uint64
	ClientID        string
	Caps            []Cap
	ListenPort      uint64
	NodeID          []byte // 64-byte uncompressed public key, no format byte
}

func encodeCap(enc *rlp.Encoder, c Cap) (*rlp.Encoder, error) {
	enc.BeginList()
	enc.AddBytes([]byte(c.Name))
	enc.AddUnsigned(c.Version)
	return enc.EndList()
}

func readCap(s *rlp.Stream) (Cap, error) {
	if _, err := s.ReadListHeader(); err != nil {
		return Cap{}, err
	}
	name, err := s.ReadBytes()
	if err != nil {
		return Cap{}, err
	}
	version, err := s.ReadUnsigned()
	if err != nil {
		return Cap{}, err
	}
	if err := s.ListEnd(); err != nil {
		return Cap{}, err
	}
	return Cap{Name: string(name), Version: version}, nil
}

// EncodeHello RLP-encodes h as the Hello message payload.
func EncodeHello(h Hello) ([]byte, error) {
	enc := rlp.NewEncoder(64 + len(h.ClientID) + 16*len(h.Caps))
	enc.BeginList()
	enc.AddUnsigned(h.ProtocolVersion)
	enc.AddBytes([]byte(h.ClientID))
	enc.BeginList()
	for _, c := range h.Caps {
		if _, err := encodeCap(enc, c); err != nil {
			return nil, err
		}
	}
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	enc.AddUnsigned(h.ListenPort)
	enc.AddBytes(h.NodeID)
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	return enc.Finish()
}

// DecodeHello parses a Hello message payload.
func DecodeHello(payload []byte) (Hello, error) {
	return rlp.Decode(payload, rlp.ProhibitLeftover, func(s *rlp.Stream) (Hello, error) {
		if _, err := s.ReadListHeader(); err != nil {
			return Hello{}, err
		}
		var h Hello
		var err error
		if h.ProtocolVersion, err = s.ReadUnsigned(); err != nil {
			return Hello{}, err
		}
		clientID, err := s.ReadBytes()
		if err != nil {
			return Hello{}, err
		}
		h.ClientID = string(clientID)
		h.Caps, err = rlp.ReadListIntoVec(s, readCap)
		if err != nil {
			return Hello{}, err
		}
		if h.ListenPort, err = s.ReadUnsigned(); err != nil {
			return Hello{}, err
		}
		nodeID, err := s.ReadFixed(64)
		if err != nil {
			return Hello{}, err
		}
		h.NodeID = append([]byte(nil), nodeID...)
		if err := s.ListEnd(); err != nil {
			return Hello{}, err
		}
		return h, nil
	})
}

// DiscReason is the single-byte reason code carried by a Disconnect message.
type DiscReason uint8

const (
	DiscRequested         DiscReason = 0x00
	DiscTcpError          DiscReason = 0x01
	DiscProtocolError     DiscReason = 0x02
	DiscUselessPeer       DiscReason = 0x03
	DiscTooManyPeers      DiscReason = 0x04
	DiscAlreadyConnected  DiscReason = 0x05
	DiscIncompatibleVersion DiscReason = 0x06
	DiscInvalidIdentity   DiscReason = 0x07
	DiscQuitting          DiscReason = 0x08
	DiscUnexpectedIdentity DiscReason = 0x09
	DiscSelfConnection    DiscReason = 0x0A
	DiscTimeout           DiscReason = 0x0B
	DiscSubprotocolError  DiscReason = 0x10
)

var discReasonNames = map[DiscReason]string{
	DiscRequested:           "disconnect requested",
	DiscTcpError:            "network error",
	DiscProtocolError:       "breach of protocol",
	DiscUselessPeer:         "useless peer",
	DiscTooManyPeers:        "too many peers",
	DiscAlreadyConnected:    "already connected",
	DiscIncompatibleVersion: "incompatible p2p protocol version",
	DiscInvalidIdentity:     "invalid node identity",
	DiscQuitting:            "client quitting",
	DiscUnexpectedIdentity:  "unexpected identity",
	DiscSelfConnection:      "connected to self",
	DiscTimeout:             "read timeout",
	DiscSubprotocolError:    "subprotocol error",
}

func (d DiscReason) String() string {
	if s, ok := discReasonNames[d]; ok {
		return s
	}
	return fmt.Sprintf("unknown disconnect reason %#x", uint8(d))
}

func (d DiscReason) Error() string { return d.String() }

// EncodeDisconnect RLP-encodes a Disconnect message payload: [reason (u8)].
func EncodeDisconnect(reason DiscReason) ([]byte, error) {
	enc := rlp.NewEncoder(2)
	enc.BeginList()
	enc.AddUnsigned(uint64(reason))
	return finishList(enc)
}

// DecodeDisconnect parses a Disconnect message payload.
func DecodeDisconnect(payload []byte) (DiscReason, error) {
	return rlp.Decode(payload, rlp.ProhibitLeftover, func(s *rlp.Stream) (DiscReason, error) {
		if _, err := s.ReadListHeader(); err != nil {
			return 0, err
		}
		reason, err := s.ReadUnsigned8()
		if err != nil {
			return 0, err
		}
		if err := s.ListEnd(); err != nil {
			return 0, err
		}
		return DiscReason(reason), nil
	})
}

// encodeEmptyList produces the canonical empty-list RLP encoding used by
// Ping and Pong payloads.
func encodeEmptyList() []byte {
	return []byte{0xc0}
}

func finishList(enc *rlp.Encoder) ([]byte, error) {
	if _, err := enc.EndList(); err != nil {
		return nil, err
	}
	return enc.Finish()
}
