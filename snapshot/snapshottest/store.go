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

package snapshottest

import (
	"fmt"
	"sync"

	"github.com/erigontech/snapsync/common"
	"github.com/erigontech/snapsync/snapshot"
)

// Store is a single in-memory stand-in for every external collaborator the
// snapshot package consumes: HashDB, CodeWriter, TrieOpener,
// TrieBuilderOpener, ChunkFetcher and BlockChainClient. Production code
// never sees this type; it exists so tests can exercise the chunkers and
// the restorer end to end.
type Store struct {
	mu sync.Mutex

	code     map[common.Hash][]byte
	tries    map[common.Hash]*Trie
	chunks   map[common.Hash][]byte
	blocks   map[common.Hash][]byte
	receipts map[common.Hash][]byte
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		code:     make(map[common.Hash][]byte),
		tries:    make(map[common.Hash]*Trie),
		chunks:   make(map[common.Hash][]byte),
		blocks:   make(map[common.Hash][]byte),
		receipts: make(map[common.Hash][]byte),
	}
}

// Get implements snapshot.HashDB: it resolves content-addressed code
// blobs, which is the only thing this fixture's HashDB is ever asked for.
func (s *Store) Get(hash common.Hash) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.code[hash]
	return b, ok
}

// PutCode implements snapshot.CodeWriter.
func (s *Store) PutCode(hash common.Hash, code []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.code[hash] = append([]byte(nil), code...)
	return nil
}

// RegisterTrie publishes t under its own Root so a later OpenTrie call
// can find it, mirroring how inserting a real trie's nodes into a HashDB
// makes it resolvable by root.
func (s *Store) RegisterTrie(t *Trie) common.Hash {
	root := t.Root()
	s.mu.Lock()
	s.tries[root] = t
	s.mu.Unlock()
	return root
}

// OpenTrie implements snapshot.TrieOpener.
func (s *Store) OpenTrie(_ snapshot.HashDB, root common.Hash) (snapshot.TrieIterator, error) {
	s.mu.Lock()
	t, ok := s.tries[root]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTrieNotFound, root)
	}
	return t.Iterator(), nil
}

// NewTrieBuilder implements snapshot.TrieBuilderOpener.
func (s *Store) NewTrieBuilder(_ snapshot.HashDB) snapshot.TrieBuilder {
	return NewTrie()
}

// PutChunk seeds the fixture's chunk store, as if a chunk had arrived over
// the (out of scope) network transport.
func (s *Store) PutChunk(hash common.Hash, compressed []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[hash] = append([]byte(nil), compressed...)
}

// FetchChunk implements snapshot.ChunkFetcher.
func (s *Store) FetchChunk(hash common.Hash) ([]byte, error) {
	s.mu.Lock()
	b, ok := s.chunks[hash]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("snapshottest: no chunk registered for hash %s", hash)
	}
	return b, nil
}

// AddBlock seeds the fixture's chain with a block, keyed by its own hash.
func (s *Store) AddBlock(hash common.Hash, raw, receipts []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[hash] = raw
	s.receipts[hash] = receipts
}

// Block implements snapshot.BlockChainClient.
func (s *Store) Block(hash common.Hash) ([]byte, error) {
	s.mu.Lock()
	b, ok := s.blocks[hash]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("snapshottest: no block registered for hash %s", hash)
	}
	return b, nil
}

// BlockReceipts implements snapshot.BlockChainClient.
func (s *Store) BlockReceipts(hash common.Hash) ([]byte, error) {
	s.mu.Lock()
	r, ok := s.receipts[hash]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("snapshottest: no receipts registered for hash %s", hash)
	}
	return r, nil
}
