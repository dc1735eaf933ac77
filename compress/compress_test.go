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

package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressIntoDecompressRoundTrip(t *testing.T) {
	src := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog"), 4096)

	var dst []byte
	n, err := CompressInto(&dst, src)
	require.NoError(t, err)
	require.LessOrEqual(t, n, len(dst))

	got, err := Decompress(dst[:n])
	require.NoError(t, err)
	require.Equal(t, src, got)
}

func TestCompressIntoGrowsUndersizedBuffer(t *testing.T) {
	src := bytes.Repeat([]byte{0xAB}, 1<<20)

	dst := make([]byte, 4)
	n, err := CompressInto(&dst, src)
	require.NoError(t, err)
	require.GreaterOrEqual(t, cap(dst), n)

	got, err := Decompress(dst[:n])
	require.NoError(t, err)
	require.Equal(t, src, got)
}

func TestCompressIntoReusesBuffer(t *testing.T) {
	var dst []byte
	_, err := CompressInto(&dst, bytes.Repeat([]byte{0xCD}, 4096))
	require.NoError(t, err)
	reused := dst

	// A second, much smaller input fits within the buffer already grown
	// for the first, so the underlying array must not change.
	_, err = CompressInto(&dst, []byte("small"))
	require.NoError(t, err)
	require.Same(t, &reused[0], &dst[0])
}
