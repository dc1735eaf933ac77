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

package snapshot

import (
	"github.com/erigontech/snapsync/common"
	"github.com/erigontech/snapsync/rlp"
)

// Manifest binds an ordered set of chunk hashes to a single canonical
// state root. It is created last, after every chunk it references exists,
// and is never itself chunked or content-addressed; its identity is
// StateRoot.
//
// Grounded on original_source/ethcore/src/snapshot/mod.rs's ManifestData.
type Manifest struct {
	// StateHashes lists state chunks in trie-iteration (production) order.
	StateHashes []common.Hash
	// BlockHashes lists block chunks in flush order: reverse-chronological,
	// the chunk holding the highest block numbers first.
	BlockHashes []common.Hash
	// StateRoot is the Merkle root of the fully reconstructed account trie
	// after restoration, the snapshot's single canonical identity.
	StateRoot common.Hash
}

// Encode serialises the manifest as the 3-tuple (state_hashes, block_hashes,
// state_root).
func (m *Manifest) Encode() []byte {
	return rlp.Encode(rlp.NewList(
		rlp.EncodeHashList(toRawHashes(m.StateHashes)),
		rlp.EncodeHashList(toRawHashes(m.BlockHashes)),
		rlp.String(m.StateRoot.Bytes()),
	))
}

// DecodeManifest decodes a manifest previously produced by Encode.
func DecodeManifest(data []byte) (*Manifest, error) {
	it, err := rlp.Decode(data)
	if err != nil {
		return nil, err
	}
	if !it.IsList() || len(it.List) != 3 {
		return nil, rlp.ErrExpectedList
	}
	stateHashes, err := rlp.DecodeHashList(it.List[0])
	if err != nil {
		return nil, err
	}
	blockHashes, err := rlp.DecodeHashList(it.List[1])
	if err != nil {
		return nil, err
	}
	stateRoot, err := rlp.DecodeHash32(it.List[2])
	if err != nil {
		return nil, err
	}
	return &Manifest{StateHashes: fromRawHashes(stateHashes), BlockHashes: fromRawHashes(blockHashes), StateRoot: stateRoot}, nil
}

func toRawHashes(hashes []common.Hash) [][32]byte {
	raw := make([][32]byte, len(hashes))
	for i, h := range hashes {
		raw[i] = [32]byte(h)
	}
	return raw
}

func fromRawHashes(raw [][32]byte) []common.Hash {
	hashes := make([]common.Hash, len(raw))
	for i, r := range raw {
		hashes[i] = common.Hash(r)
	}
	return hashes
}
