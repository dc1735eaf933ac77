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

	"github.com/erigontech/snapsync/chunk"
	"github.com/erigontech/snapsync/common"
	"github.com/erigontech/snapsync/compress"
	"github.com/erigontech/snapsync/core/types"
	"github.com/erigontech/snapsync/logutil"
	"github.com/erigontech/snapsync/rlp"
)

// blockChunker walks a chain backwards from its head, batching abridged
// (block, receipts) pairs into chunks bounded by compress.PreferredChunkSize.
//
// Grounded on original_source/ethcore/src/snapshot/mod.rs's BlockChunker:
// the pending pairs live in a deque because chunk_all discovers blocks
// newest-first but a chunk's own encoding is oldest-first, so each pair is
// pushed to the front as it's read, and a completed chunk is flushed
// still holding everything read since the last flush.
type blockChunker struct {
	client  BlockChainClient
	writer  *chunk.Writer
	dir     string
	log     logutil.Logger
	pending [][]byte // (abridged_block, receipts) pairs, oldest-first
	hashes  []common.Hash
}

// ChunkBlocks creates block chunks for the chain segment (genesisHash,
// bestBlockHash] and writes them to dir, returning the chunk hashes in the
// order chunk_all produced them (newest chunk first, since flushes happen
// as the walk moves backward from the head).
func ChunkBlocks(client BlockChainClient, bestBlockHash, genesisHash common.Hash, dir string, log logutil.Logger) ([]common.Hash, error) {
	return ChunkBlocksFS(afero.NewOsFs(), client, bestBlockHash, genesisHash, dir, log)
}

// ChunkBlocksFS is ChunkBlocks parameterised over the filesystem, for tests.
func ChunkBlocksFS(fs afero.Fs, client BlockChainClient, bestBlockHash, genesisHash common.Hash, dir string, log logutil.Logger) ([]common.Hash, error) {
	if log == nil {
		log = logutil.Noop
	}
	bc := &blockChunker{
		client: client,
		writer: chunk.NewWriter(fs),
		dir:    dir,
		log:    log,
	}
	if err := bc.chunkAll(bestBlockHash, genesisHash); err != nil {
		return nil, err
	}
	return bc.hashes, nil
}

func (bc *blockChunker) chunkAll(bestBlockHash, genesisHash common.Hash) error {
	loadedSize := 0
	current := bestBlockHash

	for current != genesisHash {
		raw, err := bc.client.Block(current)
		if err != nil {
			return fmt.Errorf("chunk blocks: fetch block %s: %w", current, err)
		}
		view, err := types.DecodeBlockView(raw)
		if err != nil {
			return fmt.Errorf("chunk blocks: decode block %s: %w", current, err)
		}
		abridged := types.AbridgeHeader(view.Header, view.Transactions, view.Uncles)

		receipts, err := bc.client.BlockReceipts(current)
		if err != nil {
			return fmt.Errorf("chunk blocks: fetch receipts %s: %w", current, err)
		}

		pair := rlp.Encode(rlp.NewList(abridged.ToItem(), rlp.String(receipts)))

		newLoadedSize := loadedSize + len(pair)
		if newLoadedSize > compress.PreferredChunkSize {
			// Everything pending starts at the current block's child, so the
			// chunk attaches at the current block's hash and number+1.
			if err := bc.writeChunk(current, view.Header.Number+1); err != nil {
				return err
			}
			loadedSize = len(pair)
		} else {
			loadedSize = newLoadedSize
		}

		bc.pending = append([][]byte{pair}, bc.pending...)
		current = view.Header.ParentHash
	}

	if loadedSize != 0 {
		// The genesis block itself is never stored as a chunked block; once
		// the walk reaches it, everything still pending belongs to one final
		// chunk whose parent is the genesis hash and first number is 1.
		if err := bc.writeChunk(genesisHash, 1); err != nil {
			return err
		}
	}
	return nil
}

func (bc *blockChunker) writeChunk(parentHash common.Hash, number uint64) error {
	bc.log.Debug("prepared block chunk", "blocks", len(bc.pending))

	items := make([]rlp.Item, 0, len(bc.pending)+2)
	items = append(items, rlp.String(parentHash.Bytes()), rlp.EncodeUint64(number))
	for _, pair := range bc.pending {
		it, err := rlp.Decode(pair)
		if err != nil {
			return newInvariantViolation("re-decoding a pair this process just encoded", err)
		}
		items = append(items, it)
	}
	raw := rlp.Encode(rlp.NewList(items...))
	bc.pending = bc.pending[:0]

	hash, size, err := bc.writer.Write(bc.dir, raw)
	if err != nil {
		return fmt.Errorf("chunk blocks: write chunk: %w", err)
	}
	bc.log.Info("wrote block chunk", "hash", hash.Hex(), "size", size, "uncompressed_size", len(raw))

	chunksWritten.WithLabelValues("block").Inc()
	chunkBytesWritten.WithLabelValues("block").Add(float64(size))
	bc.hashes = append(bc.hashes, hash)
	return nil
}
