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

package rlp

import (
	"fmt"

	"github.com/holiman/uint256"
)

// LeftoverPolicy controls whether a top-level Decode call tolerates
// unconsumed bytes after the value it was asked to read.
type LeftoverPolicy int

const (
	// ProhibitLeftover rejects any trailing bytes with ErrInputTooLong.
	ProhibitLeftover LeftoverPolicy = iota
	// AllowLeftover returns the decoded value even if bytes remain.
	AllowLeftover
)

// Stream is a cursor over an RLP-encoded byte slice. It never copies the
// input; all returned byte slices are sub-slices of the original buffer and
// must be copied by the caller if they outlive it.
//
// Stream is not safe for concurrent use.
type Stream struct {
	data  []byte
	pos   int
	stack []int // exclusive end offsets of open list scopes, innermost last
}

// NewStream creates a Stream reading from data.
func NewStream(data []byte) *Stream {
	return &Stream{data: data}
}

// limit returns the current read boundary: either the end of the innermost
// open list, or the end of the whole input.
func (s *Stream) limit() int {
	if n := len(s.stack); n > 0 {
		return s.stack[n-1]
	}
	return len(s.data)
}

// Remaining returns the number of unconsumed bytes within the current
// scope.
func (s *Stream) Remaining() int {
	return s.limit() - s.pos
}

// IsFinished reports whether the current scope has been fully consumed.
func (s *Stream) IsFinished() bool {
	return s.pos >= s.limit()
}

// header describes the decoded prefix of one RLP item.
type header struct {
	isList     bool
	payloadLen int
	headerLen  int // bytes occupied by the prefix itself (0 for a bare literal)
	literal    bool
}

// PeekHeader reports the shape of the next item -- whether it is a list,
// its payload length, and the number of header bytes it occupies -- without
// advancing the cursor. It enforces every canonical-size rule from §3: no
// leading zeros in a length-of-length field, no long form for payloads
// <=55 bytes, and no header at all for single-byte literals below 0x80.
func (s *Stream) PeekHeader() (isList bool, payloadLen int, headerLen int, err error) {
	h, err := s.peekHeaderAt(s.pos)
	if err != nil {
		return false, 0, 0, err
	}
	return h.isList, h.payloadLen, h.headerLen, nil
}

func (s *Stream) peekHeaderAt(pos int) (header, error) {
	lim := s.limit()
	if pos >= lim {
		return header{}, ErrInputTooShort
	}
	b := s.data[pos]
	switch {
	case b < 0x80:
		return header{isList: false, payloadLen: 1, headerLen: 0, literal: true}, nil

	case b <= 0xb7: // short string, 0-55 bytes
		n := int(b - 0x80)
		if n == 1 {
			// A single-byte payload here would have to be >= 0x80 to be
			// canonical (values < 0x80 must be written bare, without a
			// header at all).
			if pos+1 >= lim {
				return header{}, ErrInputTooShort
			}
			if s.data[pos+1] < 0x80 {
				return header{}, ErrNonCanonicalSize
			}
		}
		if pos+1+n > lim {
			return header{}, ErrInputTooShort
		}
		return header{isList: false, payloadLen: n, headerLen: 1}, nil

	case b <= 0xbf: // long string
		lenOfLen := int(b - 0xb7)
		if pos+1+lenOfLen > lim {
			return header{}, ErrInputTooShort
		}
		n, err := decodeLength(s.data[pos+1 : pos+1+lenOfLen])
		if err != nil {
			return header{}, err
		}
		if n <= 55 {
			return header{}, ErrNonCanonicalSize
		}
		if pos+1+lenOfLen+n > lim {
			return header{}, ErrInputTooShort
		}
		return header{isList: false, payloadLen: n, headerLen: 1 + lenOfLen}, nil

	case b <= 0xf7: // short list, 0-55 bytes
		n := int(b - 0xc0)
		if pos+1+n > lim {
			return header{}, ErrInputTooShort
		}
		return header{isList: true, payloadLen: n, headerLen: 1}, nil

	default: // long list
		lenOfLen := int(b - 0xf7)
		if pos+1+lenOfLen > lim {
			return header{}, ErrInputTooShort
		}
		n, err := decodeLength(s.data[pos+1 : pos+1+lenOfLen])
		if err != nil {
			return header{}, err
		}
		if n <= 55 {
			return header{}, ErrNonCanonicalSize
		}
		if pos+1+lenOfLen+n > lim {
			return header{}, ErrInputTooShort
		}
		return header{isList: true, payloadLen: n, headerLen: 1 + lenOfLen}, nil
	}
}

// decodeLength decodes a length-of-length field, rejecting leading zeros
// (a length field with a leading zero byte is never canonical: a shorter
// lenOfLen would have sufficed).
func decodeLength(b []byte) (int, error) {
	if len(b) > 1 && b[0] == 0 {
		return 0, ErrNonCanonicalSize
	}
	var n uint64
	for _, c := range b {
		n = n<<8 | uint64(c)
	}
	if n > 1<<32 {
		return 0, ErrMalformedHeader
	}
	return int(n), nil
}

// IsList reports whether the next item is a list, without consuming it.
func (s *Stream) IsList() (bool, error) {
	isList, _, _, err := s.PeekHeader()
	return isList, err
}

// IsString reports whether the next item is a string, without consuming
// it.
func (s *Stream) IsString() (bool, error) {
	isList, err := s.IsList()
	return !isList, err
}

// ReadBytes consumes the next item as a string and returns its payload.
// It fails ErrUnexpectedList if the next item is a list.
func (s *Stream) ReadBytes() ([]byte, error) {
	h, err := s.peekHeaderAt(s.pos)
	if err != nil {
		return nil, err
	}
	if h.isList {
		return nil, ErrUnexpectedList
	}
	if h.literal {
		b := s.data[s.pos : s.pos+1]
		s.pos++
		return b, nil
	}
	start := s.pos + h.headerLen
	end := start + h.payloadLen
	s.pos = end
	return s.data[start:end], nil
}

// ReadUnsigned consumes the next item as a string and parses it as a
// big-endian unsigned integer, enforcing the same canonical rules as
// FromBigCompact: no leading zero byte, and a single byte below 0x80 must
// have been written bare (caught already by PeekHeader/ReadBytes).
func (s *Stream) ReadUnsigned() (uint64, error) {
	b, err := s.ReadBytes()
	if err != nil {
		return 0, err
	}
	return FromBigCompact(b)
}

// ReadUnsigned32/16/8 are width-restricted variants of ReadUnsigned.
func (s *Stream) ReadUnsigned32() (uint32, error) {
	b, err := s.ReadBytes()
	if err != nil {
		return 0, err
	}
	return FromBigCompact32(b)
}

func (s *Stream) ReadUnsigned16() (uint16, error) {
	b, err := s.ReadBytes()
	if err != nil {
		return 0, err
	}
	return FromBigCompact16(b)
}

func (s *Stream) ReadUnsigned8() (uint8, error) {
	b, err := s.ReadBytes()
	if err != nil {
		return 0, err
	}
	return FromBigCompact8(b)
}

// ReadUnsigned256 consumes the next item as a string and parses it as a
// 256-bit big-endian unsigned integer, applying the same canonical rules
// as ReadUnsigned.
func (s *Stream) ReadUnsigned256() (*uint256.Int, error) {
	b, err := s.ReadBytes()
	if err != nil {
		return nil, err
	}
	return FromBigCompact256(b)
}

// ReadBool consumes the next item and decodes it as a boolean, accepting
// only the canonical encodings: the empty string (false) or a bare 0x01
// (true). Anything else -- including a bare 0x00, which go-ethereum's
// historical decoder tolerated -- fails ErrOverflow per the strict reading
// chosen for Open Question (1).
func (s *Stream) ReadBool() (bool, error) {
	b, err := s.ReadBytes()
	if err != nil {
		return false, err
	}
	switch {
	case len(b) == 0:
		return false, nil
	case len(b) == 1 && b[0] == 0x01:
		return true, nil
	default:
		return false, ErrOverflow
	}
}

// ReadFixed consumes the next item as a string of exactly n bytes.
func (s *Stream) ReadFixed(n int) ([]byte, error) {
	b, err := s.ReadBytes()
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrListLengthMismatch, n, len(b))
	}
	return b, nil
}

// ReadListHeader consumes a list header and enters its scope: subsequent
// reads are bounded by the list's declared payload length until the
// matching ListEnd. It returns the payload length in bytes and fails
// ErrUnexpectedString if the next item is not a list.
func (s *Stream) ReadListHeader() (int, error) {
	h, err := s.peekHeaderAt(s.pos)
	if err != nil {
		return 0, err
	}
	if !h.isList {
		return 0, ErrUnexpectedString
	}
	start := s.pos + h.headerLen
	end := start + h.payloadLen
	s.pos = start
	s.stack = append(s.stack, end)
	return h.payloadLen, nil
}

// ListEnd closes the innermost open list scope. It fails
// ErrListLengthMismatch if items remain unconsumed at the list boundary.
func (s *Stream) ListEnd() error {
	if len(s.stack) == 0 {
		return ErrUnexpectedString
	}
	end := s.stack[len(s.stack)-1]
	if s.pos != end {
		return ErrListLengthMismatch
	}
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

// ReadListIntoVec reads a list whose items are all produced by calling
// read for each one, and returns the results in order. It calls read
// until the list's declared payload is consumed, then closes the list
// scope with ListEnd.
func ReadListIntoVec[T any](s *Stream, read func(*Stream) (T, error)) ([]T, error) {
	if _, err := s.ReadListHeader(); err != nil {
		return nil, err
	}
	var out []T
	for !s.IsFinished() {
		v, err := read(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := s.ListEnd(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadRaw consumes exactly n bytes from the current position verbatim,
// without interpreting them as an RLP item. It is used by callers that
// splice a raw, already-encoded blob inside a list alongside formally
// decoded items (e.g. a message id followed by an opaque payload).
func (s *Stream) ReadRaw(n int) ([]byte, error) {
	if n < 0 || s.pos+n > s.limit() {
		return nil, ErrInputTooShort
	}
	b := s.data[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

// ReadRawItem consumes the next item -- string or list -- and returns its
// complete encoding, header included, as a verbatim sub-slice of the
// input. It is used to splice an opaque already-encoded item (e.g. a raw
// transaction blob in a list of transactions) without decoding its
// internal structure.
func (s *Stream) ReadRawItem() ([]byte, error) {
	h, err := s.peekHeaderAt(s.pos)
	if err != nil {
		return nil, err
	}
	start := s.pos
	if h.literal {
		s.pos++
	} else {
		s.pos += h.headerLen + h.payloadLen
	}
	return s.data[start:s.pos], nil
}

// SkipItem advances the cursor past one complete item -- string or list --
// without interpreting its contents.
func (s *Stream) SkipItem() error {
	h, err := s.peekHeaderAt(s.pos)
	if err != nil {
		return err
	}
	if h.literal {
		s.pos++
		return nil
	}
	s.pos += h.headerLen + h.payloadLen
	return nil
}

// Decode reads exactly one item from data using read, applying policy to
// any bytes left over afterward.
func Decode[T any](data []byte, policy LeftoverPolicy, read func(*Stream) (T, error)) (T, error) {
	s := NewStream(data)
	v, err := read(s)
	if err != nil {
		var zero T
		return zero, err
	}
	if policy == ProhibitLeftover && !s.IsFinished() {
		var zero T
		return zero, ErrInputTooLong
	}
	return v, nil
}
