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

// Package common holds the small set of domain primitives the snapshot
// subsystem needs: fixed-width hashes and addresses, and the content-hash
// function used to address chunks, accounts and blocks.
package common

import (
	"encoding/hex"
	"golang.org/x/crypto/sha3"
)

// HashLength is the length in bytes of a Hash.
const HashLength = 32

// AddressLength is the length in bytes of an Address.
const AddressLength = 20

// Hash is a 32-byte content digest. All chunk, account-key and state-root
// references in the snapshot format are Hash values.
type Hash [HashLength]byte

// Bytes returns a copy of h as a slice.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the lowercase hex encoding of h with no prefix, used as the
// on-disk chunk file name: 64 lowercase hex characters, no "0x".
func (h Hash) Hex() string { return hex.EncodeToString(h[:]) }

func (h Hash) String() string { return h.Hex() }

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool { return h == Hash{} }

// BytesToHash truncates or left-pads b to HashLength bytes.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// Address is a 20-byte account address.
type Address [AddressLength]byte

func (a Address) Bytes() []byte { return a[:] }
func (a Address) Hex() string   { return hex.EncodeToString(a[:]) }

// Keccak256 hashes data with Keccak-256, the hash function used throughout
// the snapshot format: chunk content addressing, account-code hashing, and
// block hashing.
func Keccak256(data ...[]byte) Hash {
	hw := sha3.NewLegacyKeccak256()
	for _, b := range data {
		hw.Write(b)
	}
	var h Hash
	hw.Sum(h[:0])
	return h
}

// EmptyCodeHash is Keccak256 of the empty byte string, the code_hash value
// an account without code carries.
var EmptyCodeHash = Keccak256(nil)

// EmptyRootHash is the well-known root of an empty Merkle-Patricia trie
// (Keccak256 of the RLP encoding of the empty byte string), the
// storage_root value an account without storage carries.
var EmptyRootHash = Keccak256([]byte{0x80})
