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

// Package rlp implements the RLP (Recursive Length Prefix) serialization
// format used throughout the DevP2P stack.
//
// RLP encodes nested arrays of byte strings. Every encodable value is either
// a string (an opaque byte sequence) or a list (an ordered sequence of
// further values). There is no separate encoding for integers, booleans,
// floats, or any other higher-level type: callers agree on a canonical
// mapping to strings and lists ahead of time.
//
// The canonical encoding of an unsigned integer is its minimal big-endian
// byte representation, with the sole exception that zero encodes as the
// empty string. Booleans encode as 0x01 (true) or the empty string (false).
//
// Unlike the reference encoder/decoder pair shipped with most DevP2P
// implementations, this package exposes the encoder and decoder as explicit
// builder/cursor types (Encoder and Stream) rather than a reflection-driven
// Marshal/Unmarshal pair. Callers assemble and walk RLP structures item by
// item, which keeps the hot path of the RLPx transport (§4.7 in the design
// notes) free of reflection.
package rlp
