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
	"bytes"
	"testing"

	"github.com/holiman/uint256"
)

func TestDecodeStringDog(t *testing.T) {
	s := NewStream([]byte{0x83, 0x64, 0x6f, 0x67})
	b, err := s.ReadBytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, []byte("dog")) {
		t.Fatalf("got %q", b)
	}
	if !s.IsFinished() {
		t.Fatal("expected stream to be finished")
	}
}

func TestDecodeListCatDog(t *testing.T) {
	s := NewStream([]byte{0xc8, 0x83, 0x63, 0x61, 0x74, 0x83, 0x64, 0x6f, 0x67})
	if _, err := s.ReadListHeader(); err != nil {
		t.Fatal(err)
	}
	a, err := s.ReadBytes()
	if err != nil || string(a) != "cat" {
		t.Fatalf("first: %q, %v", a, err)
	}
	b, err := s.ReadBytes()
	if err != nil || string(b) != "dog" {
		t.Fatalf("second: %q, %v", b, err)
	}
	if err := s.ListEnd(); err != nil {
		t.Fatal(err)
	}
}

func TestDecodeUnsigned(t *testing.T) {
	cases := []struct {
		in   []byte
		want uint64
	}{
		{[]byte{0x80}, 0},
		{[]byte{0x0f}, 15},
		{[]byte{0x82, 0x04, 0x00}, 1024},
	}
	for _, c := range cases {
		v, err := NewStream(c.in).ReadUnsigned()
		if err != nil {
			t.Fatalf("input %x: %v", c.in, err)
		}
		if v != c.want {
			t.Errorf("input %x: got %d, want %d", c.in, v, c.want)
		}
	}
}

// S4: a short-string header wrapping a single byte < 0x80 is non-canonical;
// that byte should have been written bare, with no header at all.
func TestDecodeNonCanonicalSingleByte(t *testing.T) {
	_, err := NewStream([]byte{0x81, 0x05}).ReadBytes()
	if err != ErrNonCanonicalSize {
		t.Fatalf("got %v, want ErrNonCanonicalSize", err)
	}
}

// S5: an integer payload with a leading zero byte must be rejected.
func TestDecodeLeadingZeroInteger(t *testing.T) {
	_, err := NewStream([]byte{0x82, 0x00, 0xf4}).ReadUnsigned()
	if err != ErrLeadingZero {
		t.Fatalf("got %v, want ErrLeadingZero", err)
	}
}

func TestDecodeLongFormForShortPayloadRejected(t *testing.T) {
	// 0xb8 0x03 "dog" -- encodes length 3 (<=55) using the long form.
	_, err := NewStream([]byte{0xb8, 0x03, 0x64, 0x6f, 0x67}).ReadBytes()
	if err != ErrNonCanonicalSize {
		t.Fatalf("got %v, want ErrNonCanonicalSize", err)
	}
}

func TestDecodeLengthOfLengthLeadingZero(t *testing.T) {
	// 0xb9 0x00 0x38 ... : two-byte length-of-length field with a leading
	// zero is never canonical (one byte would have sufficed).
	payload := bytes.Repeat([]byte{0x61}, 56)
	input := append([]byte{0xb9, 0x00, 0x38}, payload...)
	_, err := NewStream(input).ReadBytes()
	if err != ErrNonCanonicalSize {
		t.Fatalf("got %v, want ErrNonCanonicalSize", err)
	}
}

func TestDecodeTruncatedInput(t *testing.T) {
	_, err := NewStream([]byte{0x83, 0x64, 0x6f}).ReadBytes()
	if err != ErrInputTooShort {
		t.Fatalf("got %v, want ErrInputTooShort", err)
	}
}

func TestDecodeUnexpectedList(t *testing.T) {
	_, err := NewStream([]byte{0xc0}).ReadBytes()
	if err != ErrUnexpectedList {
		t.Fatalf("got %v, want ErrUnexpectedList", err)
	}
}

func TestDecodeUnexpectedString(t *testing.T) {
	_, err := NewStream([]byte{0x80}).ReadListHeader()
	if err != ErrUnexpectedString {
		t.Fatalf("got %v, want ErrUnexpectedString", err)
	}
}

func TestDecodeListLengthMismatch(t *testing.T) {
	// Declares two items worth of payload but only one is consumed before
	// ListEnd: [ "cat" ] with an extra trailing byte glued into the header
	// length so ListEnd observes a short read.
	s := NewStream([]byte{0xc5, 0x83, 0x63, 0x61, 0x74, 0x00})
	if _, err := s.ReadListHeader(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ReadBytes(); err != nil {
		t.Fatal(err)
	}
	if err := s.ListEnd(); err != ErrListLengthMismatch {
		t.Fatalf("got %v, want ErrListLengthMismatch", err)
	}
}

// S8: Disconnect(ClientQuitting=0x08) decodes from exactly two bytes.
func TestDecodeDisconnectReason(t *testing.T) {
	s := NewStream([]byte{0xc1, 0x08})
	if _, err := s.ReadListHeader(); err != nil {
		t.Fatal(err)
	}
	reason, err := s.ReadUnsigned8()
	if err != nil {
		t.Fatal(err)
	}
	if reason != 0x08 {
		t.Fatalf("got %#x, want 0x08", reason)
	}
	if err := s.ListEnd(); err != nil {
		t.Fatal(err)
	}
}

func TestReadBoolStrict(t *testing.T) {
	if v, err := NewStream([]byte{0x80}).ReadBool(); err != nil || v != false {
		t.Fatalf("false: got %v, %v", v, err)
	}
	if v, err := NewStream([]byte{0x01}).ReadBool(); err != nil || v != true {
		t.Fatalf("true: got %v, %v", v, err)
	}
	if _, err := NewStream([]byte{0x00}).ReadBool(); err != ErrOverflow {
		t.Fatalf("bare 0x00: got %v, want ErrOverflow", err)
	}
	if _, err := NewStream([]byte{0x02}).ReadBool(); err != ErrOverflow {
		t.Fatalf("bare 0x02: got %v, want ErrOverflow", err)
	}
}

func TestReadFixed(t *testing.T) {
	s := NewStream(AppendBytes(nil, bytes.Repeat([]byte{0xAB}, 32)))
	b, err := s.ReadFixed(32)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 32 {
		t.Fatalf("got %d bytes", len(b))
	}
	s2 := NewStream(AppendBytes(nil, []byte{1, 2, 3}))
	if _, err := s2.ReadFixed(32); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestSkipItem(t *testing.T) {
	e := NewEncoder(0)
	e.AddBytes([]byte("a"))
	e.BeginList()
	e.AddBytes([]byte("b"))
	if _, err := e.EndList(); err != nil {
		t.Fatal(err)
	}
	e.AddBytes([]byte("c"))
	buf, _ := e.Finish()

	s := NewStream(buf)
	if err := s.SkipItem(); err != nil {
		t.Fatal(err)
	}
	if err := s.SkipItem(); err != nil {
		t.Fatal(err)
	}
	got, err := s.ReadBytes()
	if err != nil || string(got) != "c" {
		t.Fatalf("got %q, %v", got, err)
	}
	if !s.IsFinished() {
		t.Fatal("expected finished stream")
	}
}

func TestReadListIntoVec(t *testing.T) {
	e := NewEncoder(0)
	e.BeginList()
	e.AddUnsigned(1)
	e.AddUnsigned(2)
	e.AddUnsigned(3)
	if _, err := e.EndList(); err != nil {
		t.Fatal(err)
	}
	buf, _ := e.Finish()

	s := NewStream(buf)
	vals, err := ReadListIntoVec(s, func(s *Stream) (uint64, error) { return s.ReadUnsigned() })
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 3 || vals[0] != 1 || vals[1] != 2 || vals[2] != 3 {
		t.Fatalf("got %v", vals)
	}
}

func TestDecodeLeftoverPolicy(t *testing.T) {
	buf := append(AppendBytes(nil, []byte("dog")), 0xFF)
	_, err := Decode(buf, ProhibitLeftover, func(s *Stream) ([]byte, error) { return s.ReadBytes() })
	if err != ErrInputTooLong {
		t.Fatalf("got %v, want ErrInputTooLong", err)
	}
	v, err := Decode(buf, AllowLeftover, func(s *Stream) ([]byte, error) { return s.ReadBytes() })
	if err != nil || string(v) != "dog" {
		t.Fatalf("got %q, %v", v, err)
	}
}

// The 0xF8..0xFF prefix range is a long-list marker; as a solitary input
// byte (no length-of-length bytes follow) it is truncated, because its own
// header claims more length bytes than exist.
func TestDecodeSolitaryLongListPrefix(t *testing.T) {
	_, err := NewStream([]byte{0xf8}).ReadListHeader()
	if err != ErrInputTooShort {
		t.Fatalf("got %v, want ErrInputTooShort", err)
	}
}

func TestDecodeUnsigned256RoundTrip(t *testing.T) {
	e := NewEncoder(0)
	e.AddUnsigned256(uint256.NewInt(1179869184))
	encoded, _ := e.Finish()

	s := NewStream(encoded)
	got, err := s.ReadUnsigned256()
	if err != nil {
		t.Fatal(err)
	}
	if got.Cmp(uint256.NewInt(1179869184)) != 0 {
		t.Fatalf("got %v, want 1179869184", got)
	}
}

func TestReadRawItemSplicesWholeItem(t *testing.T) {
	e := NewEncoder(0)
	e.BeginList()
	e.AddBytes([]byte("cat"))
	e.AddBytes([]byte("dog"))
	e.EndList()
	encoded, _ := e.Finish()

	s := NewStream(encoded)
	if _, err := s.ReadListHeader(); err != nil {
		t.Fatal(err)
	}
	first, err := s.ReadRawItem()
	if err != nil {
		t.Fatal(err)
	}
	want := AppendBytes(nil, []byte("cat"))
	if !bytes.Equal(first, want) {
		t.Fatalf("got %x, want %x", first, want)
	}
	second, err := s.ReadBytes()
	if err != nil || string(second) != "dog" {
		t.Fatalf("second: %q, %v", second, err)
	}
	if err := s.ListEnd(); err != nil {
		t.Fatal(err)
	}
}
