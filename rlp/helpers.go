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

package rlp

import (
	"github.com/holiman/uint256"
)

// EncodeUint64 encodes v as a minimal big-endian byte string: integers are
// encoded as big-endian byte strings with leading zeroes stripped; the
// empty string encodes the integer zero.
func EncodeUint64(v uint64) Item { return String(minimalBigEndian(v)) }

// DecodeUint64 decodes a minimal big-endian byte-string Item into a uint64,
// rejecting non-canonical (zero-padded) encodings.
func DecodeUint64(it Item) (uint64, error) {
	if it.IsList() {
		return 0, ErrExpectedString
	}
	if len(it.Str) > 8 {
		return 0, newDecodeErr("uint64 overflow")
	}
	if len(it.Str) > 0 && it.Str[0] == 0 {
		return 0, ErrNonCanonicalInt
	}
	var v uint64
	for _, b := range it.Str {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// EncodeBool encodes a boolean as the 1-byte string 0x00/0x01.
func EncodeBool(v bool) Item {
	if v {
		return String([]byte{0x01})
	}
	return String([]byte{0x00})
}

func DecodeBool(it Item) (bool, error) {
	if it.IsList() {
		return false, ErrExpectedString
	}
	switch len(it.Str) {
	case 0:
		return false, nil
	case 1:
		switch it.Str[0] {
		case 0x00:
			return false, nil
		case 0x01:
			return true, nil
		}
	}
	return false, newDecodeErr("invalid boolean encoding")
}

// EncodeUint256 encodes a 256-bit unsigned integer the same way any other
// integer is encoded: minimal big-endian bytes.
func EncodeUint256(v *uint256.Int) Item {
	if v == nil || v.IsZero() {
		return String(nil)
	}
	b := v.Bytes()
	return String(b)
}

func DecodeUint256(it Item) (*uint256.Int, error) {
	if it.IsList() {
		return nil, ErrExpectedString
	}
	if len(it.Str) > 32 {
		return nil, newDecodeErr("uint256 overflow")
	}
	if len(it.Str) > 0 && it.Str[0] == 0 {
		return nil, ErrNonCanonicalInt
	}
	return new(uint256.Int).SetBytes(it.Str), nil
}

// EncodeHash32 encodes a fixed 32-byte hash as a raw byte string (hashes
// are not integers and are never leading-zero-stripped).
func EncodeHash32(h [32]byte) Item { return String(h[:]) }

func DecodeHash32(it Item) ([32]byte, error) {
	var h [32]byte
	if it.IsList() {
		return h, ErrExpectedString
	}
	if len(it.Str) != 32 {
		return h, newDecodeErr("expected 32-byte hash")
	}
	copy(h[:], it.Str)
	return h, nil
}

// EncodeHashList encodes a list of 32-byte hashes, used for the manifest's
// state-chunk and block-chunk hash lists.
func EncodeHashList(hashes [][32]byte) Item {
	items := make([]Item, len(hashes))
	for i, h := range hashes {
		items[i] = EncodeHash32(h)
	}
	return NewList(items...)
}

func DecodeHashList(it Item) ([][32]byte, error) {
	if !it.IsList() {
		return nil, ErrExpectedList
	}
	out := make([][32]byte, len(it.List))
	for i, child := range it.List {
		h, err := DecodeHash32(child)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}
