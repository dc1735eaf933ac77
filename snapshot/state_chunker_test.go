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

	"github.com/holiman/uint256"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/snapsync/accounts"
	"github.com/erigontech/snapsync/common"
	"github.com/erigontech/snapsync/logutil"
	"github.com/erigontech/snapsync/rlp"
	"github.com/erigontech/snapsync/snapshot/snapshottest"
)

// buildAccountTrie seeds a snapshottest.Store with one account, with code
// and two storage entries, and registers its storage and account tries so
// ChunkStateFS/Restorer can walk them through the TrieOpener contract.
func buildAccountTrie(t *testing.T, store *snapshottest.Store) (root, accountKey common.Hash, code []byte) {
	t.Helper()

	storageTrie := snapshottest.NewTrie()
	require.NoError(t, storageTrie.Insert([]byte{0x01}, []byte{0xaa}))
	require.NoError(t, storageTrie.Insert([]byte{0x02}, []byte{0xbb}))
	storageRoot := store.RegisterTrie(storageTrie)

	code = []byte{0x60, 0x00, 0x60, 0x00, 0xf3}
	codeHash := common.Keccak256(code)
	require.NoError(t, store.PutCode(codeHash, code))

	thin := &accounts.ThinAccount{
		Nonce:       1,
		Balance:     uint256.NewInt(500),
		StorageRoot: storageRoot,
		CodeHash:    codeHash,
	}
	accountKey = common.Keccak256([]byte("account-1"))

	accountTrie := snapshottest.NewTrie()
	require.NoError(t, accountTrie.Insert(accountKey.Bytes(), rlp.Encode(thin.ToItem())))
	root = store.RegisterTrie(accountTrie)
	return root, accountKey, code
}

func TestChunkStateSingleAccountRoundTrip(t *testing.T) {
	store := snapshottest.NewStore()
	root, accountKey, code := buildAccountTrie(t, store)

	fs := afero.NewMemMapFs()
	hashes, err := ChunkStateFS(fs, store, store, root, "/state", logutil.Noop)
	require.NoError(t, err)
	require.Len(t, hashes, 1)

	for _, h := range hashes {
		compressed, err := afero.ReadFile(fs, "/state/"+h.Hex())
		require.NoError(t, err)
		store.PutChunk(h, compressed)
	}

	restored := snapshottest.NewStore()
	restorer := NewRestorer(store, restored, restored, restored, snapshottest.NewScriptedExecutor(), logutil.Noop)
	manifest := &Manifest{StateHashes: hashes, StateRoot: expectedAccountTrieRoot(t, accountKey, code)}

	_, err = restorer.Restore(manifest, common.Hash{})
	require.NoError(t, err)

	gotCode, ok := restored.Get(common.Keccak256(code))
	require.True(t, ok)
	require.Equal(t, code, gotCode)
}

// expectedAccountTrieRoot rebuilds, independently of the restorer, the
// account trie a correct restoration produces, the same thin encoding
// the fixture's own HasCode predicate would recompute.
func expectedAccountTrieRoot(t *testing.T, accountKey common.Hash, code []byte) common.Hash {
	t.Helper()
	storageTrie := snapshottest.NewTrie()
	require.NoError(t, storageTrie.Insert([]byte{0x01}, []byte{0xaa}))
	require.NoError(t, storageTrie.Insert([]byte{0x02}, []byte{0xbb}))

	thin := &accounts.ThinAccount{
		Nonce:       1,
		Balance:     uint256.NewInt(500),
		StorageRoot: storageTrie.Root(),
		CodeHash:    common.Keccak256(code),
	}
	accountTrie := snapshottest.NewTrie()
	require.NoError(t, accountTrie.Insert(accountKey.Bytes(), rlp.Encode(thin.ToItem())))
	return accountTrie.Root()
}
