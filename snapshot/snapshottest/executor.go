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
	"github.com/erigontech/snapsync/common"
	"github.com/erigontech/snapsync/core/types"
	"github.com/erigontech/snapsync/snapshot"
)

// ScriptedExecutor implements snapshot.BlockExecutor by looking up a
// pre-recorded snapshot.ExecutedBlock for each block number, as if a real
// executor had already run once and a test had captured its output.
// Transaction execution itself is out of scope for this core; tests only
// need a stand-in that returns consistent, known values.
type ScriptedExecutor struct {
	Results map[uint64]snapshot.ExecutedBlock
}

// NewScriptedExecutor returns an executor with no recorded results.
func NewScriptedExecutor() *ScriptedExecutor {
	return &ScriptedExecutor{Results: make(map[uint64]snapshot.ExecutedBlock)}
}

// ExecuteBlock implements snapshot.BlockExecutor.
func (e *ScriptedExecutor) ExecuteBlock(_ common.Hash, number uint64, _ *types.AbridgedBlock, _ []byte) (snapshot.ExecutedBlock, error) {
	result, ok := e.Results[number]
	if !ok {
		// An empty-state result is still deterministic and good enough for
		// tests that don't care about the replayed values themselves.
		return snapshot.ExecutedBlock{StateRoot: common.EmptyRootHash, TxRoot: common.EmptyRootHash, ReceiptRoot: common.EmptyRootHash}, nil
	}
	return result, nil
}
