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

package rlp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalUint64SliceRoundTrip(t *testing.T) {
	a, b := uint64(7), uint64(1 << 40)
	values := []*uint64{&a, nil, &b, nil}

	encoded := EncodeOptionalUint64Slice(values)
	got, err := DecodeOptionalUint64Slice(encoded)
	require.NoError(t, err)
	require.Len(t, got, len(values))
	for i, v := range values {
		if v == nil {
			require.Nil(t, got[i])
		} else {
			require.NotNil(t, got[i])
			require.Equal(t, *v, *got[i])
		}
	}
}

func TestOptionalUint64SliceEmpty(t *testing.T) {
	encoded := EncodeOptionalUint64Slice(nil)
	got, err := DecodeOptionalUint64Slice(encoded)
	require.NoError(t, err)
	require.Empty(t, got)
}
