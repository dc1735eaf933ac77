// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Package rlp implements the length-prefixed recursive encoding used by
// every on-disk and on-wire artifact in the snapshot subsystem.
//
// The wire format is a recursive sum type of two variants: a byte-string
// (a flat run of octets) and a list (a finite ordered sequence of items,
// each itself a byte-string or a list). Encoding is deterministic: the
// same logical value always produces byte-identical output. The decoder
// rejects anything that isn't in canonical form.
package rlp

import "fmt"

// maxListDepth bounds decoder recursion.
const maxListDepth = 64

// Item is the generic, recursive value this package encodes and decodes.
// A nil List with non-nil Str (or a zero Item) represents a byte-string;
// a non-nil List represents a list, irrespective of Str.
type Item struct {
	Str  []byte
	List []Item
}

// String constructs a byte-string Item.
func String(b []byte) Item { return Item{Str: b} }

// NewList constructs a list Item from its elements. items is never nil here:
// Go's variadic call convention passes a nil slice for a zero-argument
// call, which would otherwise make an intentionally empty list
// indistinguishable from the byte-string variant's zero value.
func NewList(items ...Item) Item {
	if items == nil {
		items = []Item{}
	}
	return Item{List: items}
}

// IsList reports whether it is the list variant.
func (it Item) IsList() bool { return it.List != nil }

// Encode serialises it according to this package's encoding rules and
// returns the encoded bytes.
func Encode(it Item) []byte {
	var out []byte
	return appendItem(out, it)
}

func appendItem(out []byte, it Item) []byte {
	if it.List != nil {
		var body []byte
		for _, child := range it.List {
			body = appendItem(body, child)
		}
		return appendHeader(out, 0xc0, 0xf7, body)
	}
	return appendString(out, it.Str)
}

func appendString(out []byte, s []byte) []byte {
	if len(s) == 1 && s[0] < 0x80 {
		return append(out, s[0])
	}
	return appendHeader(out, 0x80, 0xb7, s)
}

// appendHeader writes the length-prefix header for a byte-string (shortBase
// 0x80, longBase 0xb7) or list (0xc0, 0xf7), then the payload.
func appendHeader(out []byte, shortBase, longBase byte, payload []byte) []byte {
	n := len(payload)
	if n < 56 {
		out = append(out, shortBase+byte(n))
		return append(out, payload...)
	}
	lenBytes := minimalBigEndian(uint64(n))
	out = append(out, longBase+byte(len(lenBytes)))
	out = append(out, lenBytes...)
	return append(out, payload...)
}

// minimalBigEndian returns v as big-endian bytes with no leading zero byte;
// it returns an empty slice for v == 0: the empty string encodes the
// integer zero.
func minimalBigEndian(v uint64) []byte {
	if v == 0 {
		return nil
	}
	var buf [8]byte
	i := 8
	for v > 0 {
		i--
		buf[i] = byte(v)
		v >>= 8
	}
	return buf[i:]
}

// Decode parses data as a single top-level Item, rejecting any malformed
// input or trailing bytes.
func Decode(data []byte) (Item, error) {
	it, rest, err := decodeItem(data, 0)
	if err != nil {
		return Item{}, err
	}
	if len(rest) != 0 {
		return Item{}, ErrTrailingBytes
	}
	return it, nil
}

func decodeItem(data []byte, depth int) (Item, []byte, error) {
	if depth > maxListDepth {
		return Item{}, nil, ErrRecursionLimit
	}
	if len(data) == 0 {
		return Item{}, nil, ErrShortInput
	}
	b0 := data[0]
	switch {
	case b0 < 0x80:
		return Item{Str: data[0:1]}, data[1:], nil
	case b0 < 0xb8:
		n := int(b0 - 0x80)
		return decodeStringBody(data[1:], n, b0)
	case b0 < 0xc0:
		lenOfLen := int(b0 - 0xb7)
		n, rest, err := decodeLongLength(data[1:], lenOfLen)
		if err != nil {
			return Item{}, nil, err
		}
		if n < 56 {
			return Item{}, nil, ErrNonCanonicalSize
		}
		return decodeStringBody(rest, n, b0)
	case b0 < 0xf8:
		n := int(b0 - 0xc0)
		return decodeListBody(data[1:], n, depth)
	default:
		lenOfLen := int(b0 - 0xf7)
		n, rest, err := decodeLongLength(data[1:], lenOfLen)
		if err != nil {
			return Item{}, nil, err
		}
		if n < 56 {
			return Item{}, nil, ErrNonCanonicalSize
		}
		return decodeListBody(rest, n, depth)
	}
}

func decodeStringBody(data []byte, n int, header byte) (Item, []byte, error) {
	if len(data) < n {
		return Item{}, nil, ErrShortInput
	}
	if n == 0 {
		return Item{Str: nil}, data, nil
	}
	body := data[:n]
	if n == 1 && body[0] < 0x80 {
		// A single byte below 0x80 must be encoded as itself, not with
		// an 0x81 header; reject the non-canonical long form.
		return Item{}, nil, newDecodeErr(fmt.Sprintf("non-canonical single byte 0x%02x encoded with header 0x%02x", body[0], header))
	}
	return Item{Str: body}, data[n:], nil
}

func decodeListBody(data []byte, n int, depth int) (Item, []byte, error) {
	if len(data) < n {
		return Item{}, nil, ErrShortInput
	}
	body, rest := data[:n], data[n:]
	var items []Item
	for len(body) > 0 {
		it, tail, err := decodeItem(body, depth+1)
		if err != nil {
			return Item{}, nil, err
		}
		items = append(items, it)
		body = tail
	}
	if items == nil {
		items = []Item{}
	}
	return Item{List: items}, rest, nil
}

// decodeLongLength reads a lenOfLen-byte big-endian length prefix,
// rejecting leading zero bytes (non-canonical).
func decodeLongLength(data []byte, lenOfLen int) (int, []byte, error) {
	if lenOfLen == 0 || lenOfLen > 8 {
		return 0, nil, newDecodeErr("invalid length-of-length")
	}
	if len(data) < lenOfLen {
		return 0, nil, ErrShortInput
	}
	if data[0] == 0 {
		return 0, nil, ErrNonCanonicalInt
	}
	var n uint64
	for _, b := range data[:lenOfLen] {
		n = n<<8 | uint64(b)
	}
	return int(n), data[lenOfLen:], nil
}
