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

package trace

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/snapsync/common"
)

// callAction builds a minimal ActionCall with the given gas, so traces in
// the test tree are distinguishable by their Gas field.
func callAction(gas uint64) Action {
	return Action{Kind: ActionCall, Value: uint256.NewInt(0), Gas: gas}
}

func callResult() Result { return Result{Kind: ResultCall} }

// buildTestTree mirrors a root call with two children, the second of which
// has one grandchild, four nodes total.
func buildTestTree() Trace {
	grandchild := Trace{Action: callAction(100), Result: callResult()}
	child0 := Trace{Action: callAction(200), Result: callResult()}
	child1 := Trace{Action: callAction(300), Result: callResult(), Subs: []Trace{grandchild}}
	return Trace{Action: callAction(1000), Result: callResult(), Subs: []Trace{child0, child1}}
}

func TestFlattenProducesPreOrderWithTraceAddresses(t *testing.T) {
	flat := Flatten(buildTestTree())
	require.Len(t, flat, 4)

	require.Equal(t, uint64(1000), flat[0].Action.Gas)
	require.Empty(t, flat[0].TraceAddress)
	require.Equal(t, 2, flat[0].Subtraces)

	require.Equal(t, uint64(200), flat[1].Action.Gas)
	require.Equal(t, []int{0}, flat[1].TraceAddress)
	require.Equal(t, 0, flat[1].Subtraces)

	require.Equal(t, uint64(300), flat[2].Action.Gas)
	require.Equal(t, []int{1}, flat[2].TraceAddress)
	require.Equal(t, 1, flat[2].Subtraces)

	require.Equal(t, uint64(100), flat[3].Action.Gas)
	require.Equal(t, []int{1, 0}, flat[3].TraceAddress)
	require.Equal(t, 0, flat[3].Subtraces)
}

func TestFlattenBlockPreservesTransactionOrder(t *testing.T) {
	txs := []Trace{
		{Action: callAction(1), Result: callResult()},
		{Action: callAction(2), Result: callResult(), Subs: []Trace{{Action: callAction(3), Result: callResult()}}},
	}
	block := FlattenBlock(txs)
	require.Len(t, block, 2)
	require.Len(t, block[0], 1)
	require.Len(t, block[1], 2)
	require.Equal(t, uint64(1), block[0][0].Action.Gas)
	require.Equal(t, uint64(2), block[1][0].Action.Gas)
	require.Equal(t, uint64(3), block[1][1].Action.Gas)
}

func TestFlatBlockTracesEncodeDecodeRoundTrip(t *testing.T) {
	call := Trace{
		Action: Action{Kind: ActionCall, From: common.Address{0x01}, To: common.Address{0x02}, Value: uint256.NewInt(7), Gas: 21000, Input: []byte{0xde, 0xad}},
		Result: Result{Kind: ResultCall, GasUsed: 21000, Output: []byte{0xbe, 0xef}},
	}
	create := Trace{
		Action: Action{Kind: ActionCreate, From: common.Address{0x03}, Value: uint256.NewInt(0), Gas: 100000, Input: []byte{0x60, 0x60}},
		Result: Result{Kind: ResultCreate, GasUsed: 50000, Address: common.Address{0x04}, Code: []byte{0x00}},
	}
	failed := Trace{
		Action: Action{Kind: ActionCall, From: common.Address{0x05}, To: common.Address{0x06}, Value: uint256.NewInt(1), Gas: 5000},
		Result: Result{Kind: ResultFailedCall, Error: "out of gas"},
	}
	block := FlattenBlock([]Trace{call, create, failed})

	got, err := DecodeFlatBlockTraces(block.Encode())
	require.NoError(t, err)
	require.Equal(t, block, got)
}
