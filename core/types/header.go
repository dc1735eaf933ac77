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

// Package types holds the block header shape the snapshot subsystem
// abridges and re-synthesises (see AbridgedBlock), grounded on
// go-ethereum/Erigon's Header layout (see
// _examples/other_examples/1e0173ec_EDXFund-Validator__core-types-block.go.go)
// but trimmed to what the snapshot core actually touches: transaction and
// uncle payloads are carried through as opaque encoded lists rather than
// fully typed, since their execution-level structure is an external
// collaborator's concern.
package types

import (
	"github.com/holiman/uint256"

	"github.com/erigontech/snapsync/common"
	"github.com/erigontech/snapsync/rlp"
)

// Header is the full block header, including the fields recomputable on
// replay that the abridged form elides.
type Header struct {
	ParentHash  common.Hash
	UnclesHash  common.Hash
	Author      common.Address
	StateRoot   common.Hash // recomputable
	TxRoot      common.Hash // recomputable
	ReceiptRoot common.Hash // recomputable
	LogsBloom   []byte      // recomputable
	Difficulty  *uint256.Int
	Number      uint64
	GasLimit    uint64
	GasUsed     uint64 // recomputable
	Timestamp   uint64
	ExtraData   []byte
	MixDigest   common.Hash
	Nonce       uint64
}

// Hash is the canonical block hash: Keccak256 of the header's RLP encoding.
func (h *Header) Hash() common.Hash {
	return common.Keccak256(rlp.Encode(h.ToItem()))
}

// ToItem encodes the full header as the 15-field list:
// parent_hash, uncles_hash, author, state_root, tx_root, receipt_root,
// logs_bloom, difficulty, number, gas_limit, gas_used, timestamp,
// extra_data, mix_digest, nonce.
func (h *Header) ToItem() rlp.Item {
	return rlp.NewList(
		rlp.String(h.ParentHash.Bytes()),
		rlp.String(h.UnclesHash.Bytes()),
		rlp.String(h.Author.Bytes()),
		rlp.String(h.StateRoot.Bytes()),
		rlp.String(h.TxRoot.Bytes()),
		rlp.String(h.ReceiptRoot.Bytes()),
		rlp.String(h.LogsBloom),
		rlp.EncodeUint256(h.Difficulty),
		rlp.EncodeUint64(h.Number),
		rlp.EncodeUint64(h.GasLimit),
		rlp.EncodeUint64(h.GasUsed),
		rlp.EncodeUint64(h.Timestamp),
		rlp.String(h.ExtraData),
		rlp.String(h.MixDigest.Bytes()),
		rlp.EncodeUint64(h.Nonce),
	)
}

// HeaderFromItem decodes a Header previously produced by ToItem.
func HeaderFromItem(it rlp.Item) (*Header, error) {
	if !it.IsList() || len(it.List) != 15 {
		return nil, rlp.ErrExpectedList
	}
	l := it.List
	parentHash, err := rlp.DecodeHash32(l[0])
	if err != nil {
		return nil, err
	}
	unclesHash, err := rlp.DecodeHash32(l[1])
	if err != nil {
		return nil, err
	}
	author, err := decodeAddress(l[2])
	if err != nil {
		return nil, err
	}
	stateRoot, err := rlp.DecodeHash32(l[3])
	if err != nil {
		return nil, err
	}
	txRoot, err := rlp.DecodeHash32(l[4])
	if err != nil {
		return nil, err
	}
	receiptRoot, err := rlp.DecodeHash32(l[5])
	if err != nil {
		return nil, err
	}
	difficulty, err := rlp.DecodeUint256(l[7])
	if err != nil {
		return nil, err
	}
	number, err := rlp.DecodeUint64(l[8])
	if err != nil {
		return nil, err
	}
	gasLimit, err := rlp.DecodeUint64(l[9])
	if err != nil {
		return nil, err
	}
	gasUsed, err := rlp.DecodeUint64(l[10])
	if err != nil {
		return nil, err
	}
	timestamp, err := rlp.DecodeUint64(l[11])
	if err != nil {
		return nil, err
	}
	mixDigest, err := rlp.DecodeHash32(l[13])
	if err != nil {
		return nil, err
	}
	nonce, err := rlp.DecodeUint64(l[14])
	if err != nil {
		return nil, err
	}
	return &Header{
		ParentHash:  parentHash,
		UnclesHash:  unclesHash,
		Author:      author,
		StateRoot:   stateRoot,
		TxRoot:      txRoot,
		ReceiptRoot: receiptRoot,
		LogsBloom:   l[6].Str,
		Difficulty:  difficulty,
		Number:      number,
		GasLimit:    gasLimit,
		GasUsed:     gasUsed,
		Timestamp:   timestamp,
		ExtraData:   l[12].Str,
		MixDigest:   mixDigest,
		Nonce:       nonce,
	}, nil
}

func decodeAddress(it rlp.Item) (common.Address, error) {
	var a common.Address
	if it.IsList() {
		return a, rlp.ErrExpectedString
	}
	if len(it.Str) != common.AddressLength {
		return a, rlp.ErrShortInput
	}
	copy(a[:], it.Str)
	return a, nil
}
