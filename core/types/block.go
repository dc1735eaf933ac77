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

package types

import (
	"github.com/holiman/uint256"

	"github.com/erigontech/snapsync/common"
	"github.com/erigontech/snapsync/rlp"
)

// AbridgedBlock is a block header with the fields recomputable on replay
// omitted: state root, transactions root, receipts root, gas used and the
// log bloom. It retains parent hash, author, uncles hash,
// extra data, difficulty, timestamp, gas limit, seal (mix digest + nonce),
// transactions and uncles.
//
// Block number is deliberately absent: within a BlockChunk it is implied by
// position, the pair at position i corresponds to block number
// first_block_number + i.
type AbridgedBlock struct {
	ParentHash common.Hash
	Author     common.Address
	UnclesHash common.Hash
	ExtraData  []byte
	Difficulty *uint256.Int
	Timestamp  uint64
	GasLimit   uint64
	MixDigest  common.Hash
	Nonce      uint64

	// Transactions and Uncles are carried through as opaque already-encoded
	// lists: their execution-level shape belongs to an external executor,
	// not to this core.
	Transactions rlp.Item
	Uncles       rlp.Item
}

// AbridgeHeader drops the recomputable fields from a full Header.
func AbridgeHeader(h *Header, transactions, uncles rlp.Item) *AbridgedBlock {
	return &AbridgedBlock{
		ParentHash:   h.ParentHash,
		Author:       h.Author,
		UnclesHash:   h.UnclesHash,
		ExtraData:    h.ExtraData,
		Difficulty:   h.Difficulty,
		Timestamp:    h.Timestamp,
		GasLimit:     h.GasLimit,
		MixDigest:    h.MixDigest,
		Nonce:        h.Nonce,
		Transactions: transactions,
		Uncles:       uncles,
	}
}

// ToItem encodes the abridged block as a 11-item list.
func (ab *AbridgedBlock) ToItem() rlp.Item {
	return rlp.NewList(
		rlp.String(ab.ParentHash.Bytes()),
		rlp.String(ab.Author.Bytes()),
		rlp.String(ab.UnclesHash.Bytes()),
		rlp.String(ab.ExtraData),
		rlp.EncodeUint256(ab.Difficulty),
		rlp.EncodeUint64(ab.Timestamp),
		rlp.EncodeUint64(ab.GasLimit),
		rlp.String(ab.MixDigest.Bytes()),
		rlp.EncodeUint64(ab.Nonce),
		ab.Transactions,
		ab.Uncles,
	)
}

// AbridgedBlockFromItem decodes an AbridgedBlock previously produced by ToItem.
func AbridgedBlockFromItem(it rlp.Item) (*AbridgedBlock, error) {
	if !it.IsList() || len(it.List) != 11 {
		return nil, rlp.ErrExpectedList
	}
	l := it.List
	parentHash, err := rlp.DecodeHash32(l[0])
	if err != nil {
		return nil, err
	}
	author, err := decodeAddress(l[1])
	if err != nil {
		return nil, err
	}
	unclesHash, err := rlp.DecodeHash32(l[2])
	if err != nil {
		return nil, err
	}
	difficulty, err := rlp.DecodeUint256(l[4])
	if err != nil {
		return nil, err
	}
	timestamp, err := rlp.DecodeUint64(l[5])
	if err != nil {
		return nil, err
	}
	gasLimit, err := rlp.DecodeUint64(l[6])
	if err != nil {
		return nil, err
	}
	mixDigest, err := rlp.DecodeHash32(l[7])
	if err != nil {
		return nil, err
	}
	nonce, err := rlp.DecodeUint64(l[8])
	if err != nil {
		return nil, err
	}
	return &AbridgedBlock{
		ParentHash:   parentHash,
		Author:       author,
		UnclesHash:   unclesHash,
		ExtraData:    l[3].Str,
		Difficulty:   difficulty,
		Timestamp:    timestamp,
		GasLimit:     gasLimit,
		MixDigest:    mixDigest,
		Nonce:        nonce,
		Transactions: l[9],
		Uncles:       l[10],
	}, nil
}

// Reconstruct re-synthesises a full Header from the abridged form plus the
// fields replay recomputes: the block number (implied by chunk position),
// and the post-execution state root, transactions root, receipts root,
// gas used and log bloom.
func (ab *AbridgedBlock) Reconstruct(number uint64, stateRoot, txRoot, receiptRoot common.Hash, gasUsed uint64, logsBloom []byte) *Header {
	return &Header{
		ParentHash:  ab.ParentHash,
		UnclesHash:  ab.UnclesHash,
		Author:      ab.Author,
		StateRoot:   stateRoot,
		TxRoot:      txRoot,
		ReceiptRoot: receiptRoot,
		LogsBloom:   logsBloom,
		Difficulty:  ab.Difficulty,
		Number:      number,
		GasLimit:    ab.GasLimit,
		GasUsed:     gasUsed,
		Timestamp:   ab.Timestamp,
		ExtraData:   ab.ExtraData,
		MixDigest:   ab.MixDigest,
		Nonce:       ab.Nonce,
	}
}
