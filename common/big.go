// Copyright 2014 The go-ethereum Authors
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

package common

import "math/big"

var (
	tt255   = new(big.Int).Lsh(big.NewInt(1), 255)
	tt256   = new(big.Int).Lsh(big.NewInt(1), 256)
	tt256m1 = new(big.Int).Sub(tt256, big.NewInt(1))
)

// Big parses s (base 10) into a *big.Int, returning nil if it is malformed.
func Big(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil
	}
	return n
}

// BigD interprets b as a big-endian unsigned integer.
func BigD(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// BigCopy returns a copy of b.
func BigCopy(b *big.Int) *big.Int {
	return new(big.Int).Set(b)
}

// BigMax returns the larger of a and b.
func BigMax(a, b *big.Int) *big.Int {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// BigMin returns the smaller of a and b.
func BigMin(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// BigToBytes returns n's minimal big-endian byte representation. For
// base 16, a leading zero byte is prepended when n's hex form has an odd
// number of digits, so the result always lines up on whole-byte
// boundaries the way a hex string would.
func BigToBytes(n *big.Int, base int) []byte {
	b := n.Bytes()
	if base == 16 && len(n.Text(16))%2 != 0 {
		return append([]byte{0}, b...)
	}
	return b
}

// BitTest reports whether bit i of n is set.
func BitTest(n *big.Int, i int) bool {
	return n.Bit(i) == 1
}

// U256 reduces n into the unsigned 256-bit range in place and returns it.
func U256(n *big.Int) *big.Int {
	return n.And(n, tt256m1)
}

// S256 interprets n (already reduced into the unsigned 256-bit range) as
// a signed two's-complement 256-bit integer and returns it.
func S256(n *big.Int) *big.Int {
	if n.Cmp(tt255) < 0 {
		return n
	}
	return new(big.Int).Sub(n, tt256)
}
