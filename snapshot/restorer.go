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

	"github.com/cenkalti/backoff/v4"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/erigontech/snapsync/accounts"
	"github.com/erigontech/snapsync/common"
	"github.com/erigontech/snapsync/compress"
	"github.com/erigontech/snapsync/core/types"
	"github.com/erigontech/snapsync/logutil"
	"github.com/erigontech/snapsync/rlp"
)

// chunkCacheSize bounds the restorer's decompressed-chunk cache. A single
// chunk can be up to compress.PreferredChunkSize uncompressed; this keeps
// a handful resident without pinning arbitrary amounts of memory for a
// snapshot with thousands of chunks.
const chunkCacheSize = 32

// Restorer replays a manifest against a fresh database, verifying every
// hash and every recomputed root as it goes. It is the consumer-side
// symmetric counterpart to BlockChunker/StateChunker.
type Restorer struct {
	fetcher  ChunkFetcher
	builders TrieBuilderOpener
	db       HashDB
	codeDB   CodeWriter
	executor BlockExecutor
	log      logutil.Logger

	cache   *lru.Cache[common.Hash, []byte]
	newBack func() backoff.BackOff
}

// RestorerOption configures optional Restorer behavior.
type RestorerOption func(*Restorer)

// WithRetryPolicy overrides the default exponential backoff used around
// each chunk fetch. Supplying &backoff.StopBackOff{} makes a fetch fail on
// its first error; a constant backoff retries without ever giving up.
func WithRetryPolicy(newBack func() backoff.BackOff) RestorerOption {
	return func(r *Restorer) { r.newBack = newBack }
}

// NewRestorer builds a Restorer. fetcher retrieves chunks by hash,
// builders constructs fresh tries to accumulate restored state into, db
// resolves already-known content (used only to satisfy HashDB in places
// that need it), codeDB receives resolved contract code, and executor
// replays block bodies to recompute the fields AbridgedBlock omits.
func NewRestorer(fetcher ChunkFetcher, builders TrieBuilderOpener, db HashDB, codeDB CodeWriter, executor BlockExecutor, log logutil.Logger, opts ...RestorerOption) *Restorer {
	if log == nil {
		log = logutil.Noop
	}
	cache, err := lru.New[common.Hash, []byte](chunkCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which chunkCacheSize
		// never is.
		panic(err)
	}
	r := &Restorer{
		fetcher:  fetcher,
		builders: builders,
		db:       db,
		codeDB:   codeDB,
		executor: executor,
		log:      log,
		cache:    cache,
		newBack: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Restore replays manifest in full: every state chunk, then every block
// chunk. Manifest.BlockHashes lists block chunks newest first, so block
// chunks are replayed from the end of that list back to its start, and the
// reconstructed headers are returned in ascending block-number order.
func (r *Restorer) Restore(manifest *Manifest, genesisHash common.Hash) ([]*types.Header, error) {
	restoreInFlight.Set(1)
	defer restoreInFlight.Set(0)

	accountTrie := r.builders.NewTrieBuilder(r.db)

	for _, hash := range manifest.StateHashes {
		if err := r.restoreStateChunk(hash, accountTrie); err != nil {
			return nil, err
		}
	}

	if root := accountTrie.Root(); root != manifest.StateRoot {
		return nil, fmt.Errorf("%w: got %s want %s", ErrStateRootMismatch, root, manifest.StateRoot)
	}
	r.log.Info("verified reconstructed state root", "root", manifest.StateRoot.Hex())

	var headers []*types.Header
	parent := genesisHash
	number := uint64(1)
	for i := len(manifest.BlockHashes) - 1; i >= 0; i-- {
		chunkHeaders, nextParent, nextNumber, err := r.restoreBlockChunk(manifest.BlockHashes[i], parent, number)
		if err != nil {
			return nil, err
		}
		headers = append(headers, chunkHeaders...)
		parent, number = nextParent, nextNumber
	}
	return headers, nil
}

// fetchAndVerify retrieves a chunk, verifying its compressed bytes hash to
// the name it was requested under before decompressing it; a restorer
// never trusts a fetcher not to return substituted content.
func (r *Restorer) fetchAndVerify(hash common.Hash) ([]byte, error) {
	if cached, ok := r.cache.Get(hash); ok {
		return cached, nil
	}

	var compressed []byte
	first := true
	op := func() error {
		if !first {
			chunkFetchRetries.Inc()
		}
		first = false
		b, err := r.fetcher.FetchChunk(hash)
		if err != nil {
			return err
		}
		compressed = b
		return nil
	}
	if err := backoff.Retry(op, r.newBack()); err != nil {
		return nil, fmt.Errorf("restore: fetch chunk %s: %w", hash, err)
	}

	if common.Keccak256(compressed) != hash {
		return nil, fmt.Errorf("%w: %s", ErrChunkHashMismatch, hash)
	}
	raw, err := compress.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("restore: decompress chunk %s: %w", hash, err)
	}
	r.cache.Add(hash, raw)
	return raw, nil
}

func (r *Restorer) restoreStateChunk(hash common.Hash, accountTrie TrieBuilder) error {
	raw, err := r.fetchAndVerify(hash)
	if err != nil {
		return err
	}
	it, err := rlp.Decode(raw)
	if err != nil {
		return fmt.Errorf("restore: decode state chunk %s: %w", hash, err)
	}
	if !it.IsList() {
		return rlp.ErrExpectedList
	}
	chunksRestored.WithLabelValues("state").Inc()

	for _, pairItem := range it.List {
		if !pairItem.IsList() || len(pairItem.List) != 2 {
			return rlp.ErrExpectedList
		}
		key := pairItem.List[0].Str
		fat, err := accounts.FatAccountFromItem(pairItem.List[1])
		if err != nil {
			return fmt.Errorf("restore: decode fat account %x: %w", key, err)
		}
		thin, err := r.restoreAccount(common.BytesToHash(key), fat)
		if err != nil {
			return err
		}
		if err := accountTrie.Insert(key, rlp.Encode(thin.ToItem())); err != nil {
			return fmt.Errorf("restore: insert account %x: %w", key, err)
		}
	}
	return nil
}

// restoreAccount rebuilds one account's storage trie from its inlined
// pairs, verifies the result against the thin storage root, resolves and
// verifies code if present, and returns the thin encoding to insert into
// the account trie.
func (r *Restorer) restoreAccount(key common.Hash, fat *accounts.FatAccount) (*accounts.ThinAccount, error) {
	storageTrie := r.builders.NewTrieBuilder(r.db)
	for _, pair := range fat.Storage {
		if err := storageTrie.Insert(pair.Key, pair.Value); err != nil {
			return nil, fmt.Errorf("restore: account %s: insert storage pair: %w", key, err)
		}
	}
	if root := storageTrie.Root(); root != fat.StorageRoot {
		return nil, storageRootMismatch(key, fat.StorageRoot, root)
	}

	codeHash := common.EmptyCodeHash
	if fat.HasCode {
		codeHash = common.Keccak256(fat.Code)
		if err := r.codeDB.PutCode(codeHash, fat.Code); err != nil {
			return nil, fmt.Errorf("restore: account %s: store code: %w", key, err)
		}
	}

	return &accounts.ThinAccount{
		Nonce:       fat.Nonce,
		Balance:     fat.Balance,
		StorageRoot: fat.StorageRoot,
		CodeHash:    codeHash,
	}, nil
}

func (r *Restorer) restoreBlockChunk(hash common.Hash, expectedParent common.Hash, firstNumber uint64) ([]*types.Header, common.Hash, uint64, error) {
	raw, err := r.fetchAndVerify(hash)
	if err != nil {
		return nil, common.Hash{}, 0, err
	}
	it, err := rlp.Decode(raw)
	if err != nil {
		return nil, common.Hash{}, 0, fmt.Errorf("restore: decode block chunk %s: %w", hash, err)
	}
	if !it.IsList() || len(it.List) < 2 {
		return nil, common.Hash{}, 0, rlp.ErrExpectedList
	}
	parentHash, err := rlp.DecodeHash32(it.List[0])
	if err != nil {
		return nil, common.Hash{}, 0, err
	}
	number, err := rlp.DecodeUint64(it.List[1])
	if err != nil {
		return nil, common.Hash{}, 0, err
	}
	if parentHash != expectedParent || number != firstNumber {
		return nil, common.Hash{}, 0, fmt.Errorf("%w: got (%s, %d) want (%s, %d)", ErrChunkContinuityMismatch, parentHash, number, expectedParent, firstNumber)
	}
	chunksRestored.WithLabelValues("block").Inc()

	headers := make([]*types.Header, 0, len(it.List)-2)
	parent := parentHash
	n := number
	for _, pairItem := range it.List[2:] {
		if !pairItem.IsList() || len(pairItem.List) != 2 {
			return nil, common.Hash{}, 0, rlp.ErrExpectedList
		}
		ab, err := types.AbridgedBlockFromItem(pairItem.List[0])
		if err != nil {
			return nil, common.Hash{}, 0, fmt.Errorf("restore: decode abridged block: %w", err)
		}
		if ab.ParentHash != parent {
			return nil, common.Hash{}, 0, fmt.Errorf("restore: block %d: parent hash does not extend chain: got %s want %s", n, ab.ParentHash, parent)
		}
		receipts := pairItem.List[1].Str

		executed, err := r.executor.ExecuteBlock(parent, n, ab, receipts)
		if err != nil {
			return nil, common.Hash{}, 0, fmt.Errorf("restore: execute block %d: %w", n, err)
		}
		header := ab.Reconstruct(n, executed.StateRoot, executed.TxRoot, executed.ReceiptRoot, executed.GasUsed, executed.LogsBloom)
		headers = append(headers, header)

		parent = header.Hash()
		n++
	}
	return headers, parent, n, nil
}
