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

// Package snapshottest provides in-memory fixtures for the snapshot
// package's external collaborator interfaces (BlockChainClient, HashDB,
// TrieOpener, ...), so the chunkers and restorer can be exercised without
// a real chain database or Merkle-Patricia trie implementation, both of
// which are out of scope for this core.
package snapshottest

import (
	"bytes"
	"fmt"

	"github.com/google/btree"

	"github.com/erigontech/snapsync/common"
	"github.com/erigontech/snapsync/rlp"
)

// Trie is an ordered key/value set, backed by a google/btree.BTree keyed
// by raw byte comparison, the same ascending-key-order contract
// TrieIterator promises, without implementing actual Merkle hashing.
//
// Root is a deterministic digest of the trie's full content (the
// recursive encoding of its ascending (key, value) pairs, hashed), not a
// real incremental Merkle root. That's sufficient for this fixture's only
// job: let a restorer's rebuilt trie be compared against the value a
// producer's walk over the same content would have reported.
type Trie struct {
	tree *btree.BTreeG[pair]
}

type pair struct {
	key, value []byte
}

func pairLess(a, b pair) bool { return bytes.Compare(a.key, b.key) < 0 }

// NewTrie returns an empty Trie.
func NewTrie() *Trie {
	return &Trie{tree: btree.NewG[pair](32, pairLess)}
}

// Insert implements snapshot.TrieBuilder.
func (t *Trie) Insert(key, value []byte) error {
	k := append([]byte(nil), key...)
	v := append([]byte(nil), value...)
	t.tree.ReplaceOrInsert(pair{k, v})
	return nil
}

// Root implements snapshot.TrieBuilder.
func (t *Trie) Root() common.Hash {
	items := make([]rlp.Item, 0, t.tree.Len())
	t.tree.Ascend(func(p pair) bool {
		items = append(items, rlp.NewList(rlp.String(p.key), rlp.String(p.value)))
		return true
	})
	return common.Keccak256(rlp.Encode(rlp.NewList(items...)))
}

// Iterator returns a snapshot.TrieIterator walking t in ascending key
// order, a fixed-point snapshot of t's content at call time.
func (t *Trie) Iterator() *TrieIterator {
	pairs := make([]pair, 0, t.tree.Len())
	t.tree.Ascend(func(p pair) bool {
		pairs = append(pairs, p)
		return true
	})
	return &TrieIterator{pairs: pairs}
}

// TrieIterator implements snapshot.TrieIterator over a fixed slice of
// pairs captured at construction time.
type TrieIterator struct {
	pairs []pair
	pos   int
}

// Next implements snapshot.TrieIterator.
func (it *TrieIterator) Next() (key, value []byte, ok bool, err error) {
	if it.pos >= len(it.pairs) {
		return nil, nil, false, nil
	}
	p := it.pairs[it.pos]
	it.pos++
	return p.key, p.value, true, nil
}

// ErrTrieNotFound is returned by Store.OpenTrie when no trie was
// registered under the requested root.
var ErrTrieNotFound = fmt.Errorf("snapshottest: no trie registered for that root")
