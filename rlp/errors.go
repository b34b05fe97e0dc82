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

import "errors"

// Encoding errors. These are returned by the Encoder when the caller
// mis-uses the builder API; none of them can occur from well-formed input
// alone, so a correct caller never observes them.
var (
	// ErrUnclosedList is returned by Finish when a BeginList call has no
	// matching EndList.
	ErrUnclosedList = errors.New("rlp: unclosed list")

	// ErrUnmatchedEndList is returned by EndList when there is no open
	// list to close.
	ErrUnmatchedEndList = errors.New("rlp: EndList without BeginList")

	// ErrEmptyInput is returned by AddRaw when given a zero-length buffer;
	// there is no such thing as a precomputed item of length zero.
	ErrEmptyInput = errors.New("rlp: empty raw input")

	// ErrPayloadTooLarge is returned when a payload length cannot be
	// represented; practically unreachable on 64-bit length fields.
	ErrPayloadTooLarge = errors.New("rlp: payload length overflows encoding")
)

// Decoding errors. These correspond to the codec error kinds in the
// component design: malformed or non-canonical input is always rejected,
// never silently repaired.
var (
	// ErrInputTooShort is returned when the input ends before a declared
	// header or payload has been fully read.
	ErrInputTooShort = errors.New("rlp: input too short")

	// ErrInputTooLong is returned by a ProhibitLeftover top-level read
	// when bytes remain after the decoded value.
	ErrInputTooLong = errors.New("rlp: input contains unconsumed trailing bytes")

	// ErrNonCanonicalSize is returned for any length-encoding violation:
	// leading zeros in a length-of-length field, a payload length <= 55
	// encoded in long form, or a single byte below 0x80 wrapped in a string
	// header instead of written bare.
	ErrNonCanonicalSize = errors.New("rlp: non-canonical size")

	// ErrUnexpectedList is returned when a string was expected but the
	// cursor is positioned on a list.
	ErrUnexpectedList = errors.New("rlp: unexpected list")

	// ErrUnexpectedString is returned when a list was expected but the
	// cursor is positioned on a string.
	ErrUnexpectedString = errors.New("rlp: unexpected string")

	// ErrListLengthMismatch is returned by ListEnd when elements remain
	// unconsumed at the declared list boundary, and by ReadFixed when a
	// string is not the requested length.
	ErrListLengthMismatch = errors.New("rlp: list length mismatch")

	// ErrMalformedHeader is returned for a long-form header whose length
	// field declares a payload larger than 2^32 bytes.
	ErrMalformedHeader = errors.New("rlp: malformed header")

	// ErrLeadingZero is returned when an unsigned integer's big-endian
	// payload carries a leading zero byte.
	ErrLeadingZero = errors.New("rlp: leading zero byte in integer payload")

	// ErrOverflow is returned when a decoded integer does not fit the
	// requested fixed-width type.
	ErrOverflow = errors.New("rlp: value overflows target type")
)
