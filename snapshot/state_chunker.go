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
	"fmt"

	"github.com/spf13/afero"

	"github.com/erigontech/snapsync/accounts"
	"github.com/erigontech/snapsync/chunk"
	"github.com/erigontech/snapsync/common"
	"github.com/erigontech/snapsync/compress"
	"github.com/erigontech/snapsync/logutil"
	"github.com/erigontech/snapsync/rlp"
)

// stateChunker walks the account trie and emits fat-account chunks bounded
// by compress.PreferredChunkSize.
//
// Grounded on original_source/ethcore/src/snapshot/mod.rs's StateChunker:
// unlike the block walk, accounts arrive already in the order the trie
// iterator yields them, so pending pairs accumulate in forward append
// order, no deque needed.
type stateChunker struct {
	opener  TrieOpener
	db      HashDB
	writer  *chunk.Writer
	dir     string
	log     logutil.Logger
	pending []rlp.Item // (account_key, fat_account) pairs
	curSize int
	hashes  []common.Hash
}

// ChunkState walks the account trie rooted at root, opened through opener
// over db, expanding every account to its fat form (inlined code and
// storage, read through db) and writing bounded chunks to dir.
func ChunkState(opener TrieOpener, db HashDB, root common.Hash, dir string, log logutil.Logger) ([]common.Hash, error) {
	return ChunkStateFS(afero.NewOsFs(), opener, db, root, dir, log)
}

// ChunkStateFS is ChunkState parameterised over the filesystem, for tests.
func ChunkStateFS(fs afero.Fs, opener TrieOpener, db HashDB, root common.Hash, dir string, log logutil.Logger) ([]common.Hash, error) {
	if log == nil {
		log = logutil.Noop
	}
	it, err := opener.OpenTrie(db, root)
	if err != nil {
		return nil, fmt.Errorf("chunk state: open account trie: %w", err)
	}

	sc := &stateChunker{
		opener: opener,
		db:     db,
		writer: chunk.NewWriter(fs),
		dir:    dir,
		log:    log,
	}
	log.Debug("beginning state chunking")

	for {
		key, value, ok, err := it.Next()
		if err != nil {
			return nil, fmt.Errorf("chunk state: walk account trie: %w", err)
		}
		if !ok {
			break
		}
		valueItem, err := rlp.Decode(value)
		if err != nil {
			return nil, fmt.Errorf("chunk state: decode account %x: %w", key, err)
		}
		thin, err := accounts.ThinAccountFromItem(valueItem)
		if err != nil {
			return nil, fmt.Errorf("chunk state: decode account %x: %w", key, err)
		}
		fat, err := sc.expandAccount(thin)
		if err != nil {
			return nil, fmt.Errorf("chunk state: expand account %x: %w", key, err)
		}
		if err := sc.push(key, fat); err != nil {
			return nil, err
		}
	}

	if sc.curSize != 0 {
		if err := sc.writeChunk(); err != nil {
			return nil, err
		}
	}
	return sc.hashes, nil
}

// expandAccount walks account's storage trie (rooted at its StorageRoot)
// and, if it carries code, resolves it from db, turning a ThinAccount
// into its FatAccount form.
//
// HasCode is the corrected predicate: code is inlined iff CodeHash differs
// from the well-known empty-code digest, not the inverted check the
// account reader this is grounded on actually performs.
func (sc *stateChunker) expandAccount(thin *accounts.ThinAccount) (*accounts.FatAccount, error) {
	fat := &accounts.FatAccount{
		Nonce:       thin.Nonce,
		Balance:     thin.Balance,
		StorageRoot: thin.StorageRoot,
		HasCode:     thin.HasCode(),
	}
	if fat.HasCode {
		code, ok := sc.db.Get(thin.CodeHash)
		if !ok {
			return nil, fmt.Errorf("%w: code hash %s", ErrTrieNodeMissing, thin.CodeHash)
		}
		fat.Code = code
	}

	if thin.StorageRoot == common.EmptyRootHash {
		return fat, nil
	}
	storageIt, err := sc.opener.OpenTrie(sc.db, thin.StorageRoot)
	if err != nil {
		return nil, err
	}
	for {
		k, v, ok, err := storageIt.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		fat.Storage = append(fat.Storage, accounts.StoragePair{Key: k, Value: v})
	}
	return fat, nil
}

// push stages one (account_key, fat_account) pair, flushing first if
// adding it would cross the chunk size bound.
func (sc *stateChunker) push(key []byte, fat *accounts.FatAccount) error {
	pairItem := rlp.NewList(rlp.String(key), fat.ToItem())
	pairSize := len(rlp.Encode(pairItem))

	if sc.curSize+pairSize >= compress.PreferredChunkSize {
		if err := sc.writeChunk(); err != nil {
			return err
		}
	}
	sc.curSize += pairSize
	sc.pending = append(sc.pending, pairItem)
	return nil
}

func (sc *stateChunker) writeChunk() error {
	raw := rlp.Encode(rlp.NewList(sc.pending...))
	sc.pending = sc.pending[:0]

	hash, size, err := sc.writer.Write(sc.dir, raw)
	if err != nil {
		return fmt.Errorf("chunk state: write chunk: %w", err)
	}
	sc.log.Info("wrote state chunk", "hash", hash.Hex(), "size", size, "uncompressed_size", len(raw))

	chunksWritten.WithLabelValues("state").Inc()
	chunkBytesWritten.WithLabelValues("state").Add(float64(size))
	sc.hashes = append(sc.hashes, hash)
	sc.curSize = 0
	return nil
}
