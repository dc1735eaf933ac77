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
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/snapsync/common"
	"github.com/erigontech/snapsync/core/types"
	"github.com/erigontech/snapsync/logutil"
	"github.com/erigontech/snapsync/rlp"
	"github.com/erigontech/snapsync/snapshot/snapshottest"
)

func TestChunkBlocksEmptyChainProducesNoChunks(t *testing.T) {
	store := snapshottest.NewStore()
	genesisHash := common.Keccak256([]byte("genesis"))

	hashes, err := ChunkBlocksFS(afero.NewMemMapFs(), store, genesisHash, genesisHash, "/blocks", logutil.Noop)
	require.NoError(t, err)
	require.Empty(t, hashes)
}

func TestChunkBlocksSingleBlockProducesOneChunkWithHeader(t *testing.T) {
	store := snapshottest.NewStore()
	genesisHash := common.Keccak256([]byte("genesis"))

	header := &types.Header{
		ParentHash:  genesisHash,
		UnclesHash:  common.EmptyRootHash,
		Number:      1,
		GasLimit:    30_000_000,
		Timestamp:   1700000000,
		Difficulty:  nil,
		LogsBloom:   make([]byte, 256),
		StateRoot:   common.Keccak256([]byte("state")),
		TxRoot:      common.Keccak256([]byte("tx")),
		ReceiptRoot: common.Keccak256([]byte("receipt")),
	}
	raw := types.EncodeBlock(header, rlp.NewList(), rlp.NewList())
	blockHash := header.Hash()
	store.AddBlock(blockHash, raw, []byte("receipts-for-block-1"))

	fs := afero.NewMemMapFs()
	hashes, err := ChunkBlocksFS(fs, store, blockHash, genesisHash, "/blocks", logutil.Noop)
	require.NoError(t, err)
	require.Len(t, hashes, 1)

	exists, err := afero.Exists(fs, "/blocks/"+hashes[0].Hex())
	require.NoError(t, err)
	require.True(t, exists)

	restorer := NewRestorer(store, store, store, store, snapshottest.NewScriptedExecutor(), logutil.Noop)
	for _, h := range hashes {
		compressed, err := afero.ReadFile(fs, "/blocks/"+h.Hex())
		require.NoError(t, err)
		store.PutChunk(h, compressed)
	}
	manifest := &Manifest{BlockHashes: hashes, StateRoot: snapshottest.NewTrie().Root()}

	headers, err := restorer.Restore(manifest, genesisHash)
	require.NoError(t, err)
	require.Len(t, headers, 1)
	require.Equal(t, genesisHash, headers[0].ParentHash)
	require.Equal(t, uint64(1), headers[0].Number)
}
