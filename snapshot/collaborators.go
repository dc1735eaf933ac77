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
	"github.com/erigontech/snapsync/core/types"
)

// BlockChainClient is the read-only chain-data collaborator the producer
// consumes. It is referenced only by contract; the network transport and
// the underlying chain database are out of scope.
type BlockChainClient interface {
	// Block returns the raw encoded block ([header, transactions, uncles])
	// stored under hash.
	Block(hash common.Hash) ([]byte, error)
	// BlockReceipts returns the already-encoded receipts blob for the
	// block at hash.
	BlockReceipts(hash common.Hash) ([]byte, error)
}

// HashDB is the read-only content-addressed store collaborator. The core
// never writes through it; the restorer writes reconstructed code through
// CodeWriter and account entries through TrieBuilder.
type HashDB interface {
	Get(hash common.Hash) ([]byte, bool)
}

// TrieIterator yields (key, value) pairs in ascending key order from a
// Merkle-Patricia trie rooted at some hash. The concrete trie
// implementation is an external collaborator; this core only consumes the
// iteration contract.
type TrieIterator interface {
	// Next returns the next (key, value) pair, or ok == false when the
	// trie has been fully walked.
	Next() (key, value []byte, ok bool, err error)
}

// TrieOpener constructs a TrieIterator over the trie rooted at root, as
// stored in db.
type TrieOpener interface {
	OpenTrie(db HashDB, root common.Hash) (TrieIterator, error)
}

// ChunkFetcher retrieves a chunk's compressed bytes by its content hash.
// The network transport behind it is out of scope; the restorer only
// consumes this contract.
type ChunkFetcher interface {
	FetchChunk(hash common.Hash) ([]byte, error)
}

// TrieBuilder accumulates (key, value) pairs into a Merkle-Patricia trie
// and reports its root once all pairs are inserted. The restoration
// verifier uses one to rebuild each account's storage trie and the
// top-level account trie.
type TrieBuilder interface {
	Insert(key, value []byte) error
	Root() common.Hash
}

// TrieBuilderOpener constructs a fresh, empty TrieBuilder backed by db.
type TrieBuilderOpener interface {
	NewTrieBuilder(db HashDB) TrieBuilder
}

// BlockExecutor replays an abridged block's transactions against the
// evolving post-state, producing the fields AbridgedBlock omits. Execution
// itself is treated as a pure function (pre_state, block) -> post_state
// supplied by an external executor.
type BlockExecutor interface {
	ExecuteBlock(parentHash common.Hash, number uint64, ab *types.AbridgedBlock, receipts []byte) (ExecutedBlock, error)
}

// ExecutedBlock carries the fields recomputed by replaying a block: the
// values AbridgedBlock.Reconstruct needs to re-synthesise a full header.
type ExecutedBlock struct {
	StateRoot   common.Hash
	TxRoot      common.Hash
	ReceiptRoot common.Hash
	GasUsed     uint64
	LogsBloom   []byte
}

// CodeWriter inserts resolved contract code into the database during
// restoration.
type CodeWriter interface {
	PutCode(hash common.Hash, code []byte) error
}
