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

package types

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/snapsync/common"
)

func sampleHeader() *Header {
	return &Header{
		ParentHash:  common.Keccak256([]byte("parent")),
		UnclesHash:  common.Keccak256([]byte("uncles")),
		Author:      common.Address{0x01, 0x02, 0x03},
		StateRoot:   common.Keccak256([]byte("state")),
		TxRoot:      common.Keccak256([]byte("tx")),
		ReceiptRoot: common.Keccak256([]byte("receipt")),
		LogsBloom:   make([]byte, 256),
		Difficulty:  uint256.NewInt(17),
		Number:      9001,
		GasLimit:    30_000_000,
		GasUsed:     21_000,
		Timestamp:   1_700_000_000,
		ExtraData:   []byte("extra"),
		MixDigest:   common.Keccak256([]byte("mix")),
		Nonce:       0xdeadbeef,
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	h := sampleHeader()
	got, err := HeaderFromItem(h.ToItem())
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestHeaderHashIsDeterministic(t *testing.T) {
	h1 := sampleHeader()
	h2 := sampleHeader()
	require.Equal(t, h1.Hash(), h2.Hash())

	h2.Nonce++
	require.NotEqual(t, h1.Hash(), h2.Hash())
}
