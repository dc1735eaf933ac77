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

	pkgerrors "github.com/pkg/errors"

	"github.com/erigontech/snapsync/common"
)

// ErrTrieNodeMissing marks the trie-error kind: the database lacks a node
// a trie references, or the trie is structurally inconsistent.
var ErrTrieNodeMissing = pkgerrors.New("trie: referenced node missing from database")

// ErrStateRootMismatch is returned by Restorer when the reconstructed
// account-trie root differs from the manifest's.
var ErrStateRootMismatch = pkgerrors.New("restore: reconstructed state root does not match manifest")

// ErrChunkHashMismatch is returned when a fetched chunk's compressed bytes
// don't hash to the name/manifest entry it was fetched under.
var ErrChunkHashMismatch = pkgerrors.New("restore: chunk content hash does not match its name")

// ErrChunkContinuityMismatch is returned when a block chunk's declared
// first parent hash or first block number doesn't extend the previous
// chunk's last block, i.e. the manifest's chunk order does not form a
// contiguous chain.
var ErrChunkContinuityMismatch = pkgerrors.New("restore: block chunk does not extend previous chunk")

// InvariantViolation wraps a condition the code proves cannot occur, a
// compressor reporting a too-small buffer it sized itself, or rejecting
// input it already validated. It is unrecoverable: callers log and abort,
// never retry.
type InvariantViolation struct {
	cause error
}

func newInvariantViolation(msg string, cause error) error {
	return &InvariantViolation{cause: pkgerrors.Wrap(cause, msg)}
}

func (e *InvariantViolation) Error() string { return "invariant violation: " + e.cause.Error() }
func (e *InvariantViolation) Unwrap() error { return e.cause }

// storageRootMismatch formats the restorer's per-account storage
// verification failure.
func storageRootMismatch(key common.Hash, want, got common.Hash) error {
	return fmt.Errorf("restore: account %s: storage root mismatch: want %s got %s", key, want, got)
}
