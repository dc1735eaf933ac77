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

// Package accounts holds the two account encodings the snapshot format
// moves between: ThinAccount, the on-chain 4-tuple, and FatAccount, the
// snapshot-only expansion with inlined storage and code.
//
// Grounded on original_source/ethcore/src/snapshot/mod.rs's AccountReader
// (from_thin_rlp / to_fat_rlp), generalized to Go's explicit-encode style
// matching erigon-lib/types/accounts usage seen in
// core/state/history_reader_v3.go.
package accounts

import (
	"github.com/holiman/uint256"

	"github.com/erigontech/snapsync/common"
	"github.com/erigontech/snapsync/rlp"
)

// ThinAccount is the on-chain account encoding: a 4-tuple of
// (nonce, balance, storage_root, code_hash).
type ThinAccount struct {
	Nonce       uint64
	Balance     *uint256.Int
	StorageRoot common.Hash
	CodeHash    common.Hash
}

// HasCode reports whether the account's code_hash differs from the
// well-known empty-code digest.
func (a *ThinAccount) HasCode() bool { return a.CodeHash != common.EmptyCodeHash }

// ToItem encodes the thin account as a 4-element list.
func (a *ThinAccount) ToItem() rlp.Item {
	return rlp.NewList(
		rlp.EncodeUint64(a.Nonce),
		rlp.EncodeUint256(a.Balance),
		rlp.String(a.StorageRoot.Bytes()),
		rlp.String(a.CodeHash.Bytes()),
	)
}

// ThinAccountFromItem decodes a ThinAccount previously produced by ToItem.
func ThinAccountFromItem(it rlp.Item) (*ThinAccount, error) {
	if !it.IsList() || len(it.List) != 4 {
		return nil, rlp.ErrExpectedList
	}
	nonce, err := rlp.DecodeUint64(it.List[0])
	if err != nil {
		return nil, err
	}
	balance, err := rlp.DecodeUint256(it.List[1])
	if err != nil {
		return nil, err
	}
	storageRoot, err := rlp.DecodeHash32(it.List[2])
	if err != nil {
		return nil, err
	}
	codeHash, err := rlp.DecodeHash32(it.List[3])
	if err != nil {
		return nil, err
	}
	return &ThinAccount{Nonce: nonce, Balance: balance, StorageRoot: storageRoot, CodeHash: codeHash}, nil
}

// StoragePair is one (key, value) entry of an account's storage trie.
type StoragePair struct {
	Key   []byte
	Value []byte
}

// FatAccount is the snapshot-only expanded encoding of an account: the
// thin fields, plus an inlined (has_code, code_bytes) pair and the
// account's entire storage, in the storage trie's natural ordering.
type FatAccount struct {
	Nonce       uint64
	Balance     *uint256.Int
	StorageRoot common.Hash
	HasCode     bool
	Code        []byte
	Storage     []StoragePair
}

// ToItem encodes the fat account as the 5-element list:
// nonce, balance, storage_root, (has_code, code), storage_pairs.
func (a *FatAccount) ToItem() rlp.Item {
	storageItems := make([]rlp.Item, len(a.Storage))
	for i, p := range a.Storage {
		storageItems[i] = rlp.NewList(rlp.String(p.Key), rlp.String(p.Value))
	}
	codeBlock := rlp.NewList(rlp.EncodeBool(a.HasCode), rlp.String(a.Code))
	return rlp.NewList(
		rlp.EncodeUint64(a.Nonce),
		rlp.EncodeUint256(a.Balance),
		rlp.String(a.StorageRoot.Bytes()),
		codeBlock,
		rlp.NewList(storageItems...),
	)
}

// FatAccountFromItem decodes a FatAccount previously produced by ToItem.
func FatAccountFromItem(it rlp.Item) (*FatAccount, error) {
	if !it.IsList() || len(it.List) != 5 {
		return nil, rlp.ErrExpectedList
	}
	l := it.List
	nonce, err := rlp.DecodeUint64(l[0])
	if err != nil {
		return nil, err
	}
	balance, err := rlp.DecodeUint256(l[1])
	if err != nil {
		return nil, err
	}
	storageRoot, err := rlp.DecodeHash32(l[2])
	if err != nil {
		return nil, err
	}
	codeBlock := l[3]
	if !codeBlock.IsList() || len(codeBlock.List) != 2 {
		return nil, rlp.ErrExpectedList
	}
	hasCode, err := rlp.DecodeBool(codeBlock.List[0])
	if err != nil {
		return nil, err
	}
	code := codeBlock.List[1].Str
	pairsItem := l[4]
	if !pairsItem.IsList() {
		return nil, rlp.ErrExpectedList
	}
	storage := make([]StoragePair, len(pairsItem.List))
	for i, pairItem := range pairsItem.List {
		if !pairItem.IsList() || len(pairItem.List) != 2 {
			return nil, rlp.ErrExpectedList
		}
		storage[i] = StoragePair{Key: pairItem.List[0].Str, Value: pairItem.List[1].Str}
	}
	return &FatAccount{
		Nonce:       nonce,
		Balance:     balance,
		StorageRoot: storageRoot,
		HasCode:     hasCode,
		Code:        code,
		Storage:     storage,
	}, nil
}
