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

package accounts

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/snapsync/common"
)

func TestThinAccountRoundTrip(t *testing.T) {
	a := &ThinAccount{
		Nonce:       7,
		Balance:     uint256.NewInt(1_000_000),
		StorageRoot: common.Keccak256([]byte("storage")),
		CodeHash:    common.Keccak256([]byte("code")),
	}
	got, err := ThinAccountFromItem(a.ToItem())
	require.NoError(t, err)
	require.Equal(t, a, got)
}

func TestThinAccountHasCode(t *testing.T) {
	withCode := &ThinAccount{CodeHash: common.Keccak256([]byte("code"))}
	require.True(t, withCode.HasCode())

	withoutCode := &ThinAccount{CodeHash: common.EmptyCodeHash}
	require.False(t, withoutCode.HasCode())
}

func TestFatAccountRoundTrip(t *testing.T) {
	a := &FatAccount{
		Nonce:       3,
		Balance:     uint256.NewInt(42),
		StorageRoot: common.Keccak256([]byte("root")),
		HasCode:     true,
		Code:        []byte{0x60, 0x00, 0x60, 0x00},
		Storage: []StoragePair{
			{Key: []byte{0x01}, Value: []byte{0xaa}},
			{Key: []byte{0x02}, Value: []byte{0xbb, 0xcc}},
		},
	}
	got, err := FatAccountFromItem(a.ToItem())
	require.NoError(t, err)
	require.Equal(t, a, got)
}

func TestFatAccountWithoutCodeOrStorage(t *testing.T) {
	a := &FatAccount{
		Nonce:       0,
		Balance:     uint256.NewInt(0),
		StorageRoot: common.EmptyRootHash,
		HasCode:     false,
		Code:        nil,
		Storage:     nil,
	}
	got, err := FatAccountFromItem(a.ToItem())
	require.NoError(t, err)
	require.False(t, got.HasCode)
	require.Empty(t, got.Code)
	require.Empty(t, got.Storage)
}
