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

package chunk

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/snapsync/common"
	"github.com/erigontech/snapsync/compress"
)

func TestWriteNamesFileAfterCompressedHash(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)

	raw := bytes.Repeat([]byte("snapshot chunk payload"), 1000)
	hash, n, err := w.Write("/chunks", raw)
	require.NoError(t, err)

	path := filepath.Join("/chunks", hash.Hex())
	stored, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	require.Len(t, stored, n)
	require.Equal(t, hash, common.Keccak256(stored))

	decompressed, err := compress.Decompress(stored)
	require.NoError(t, err)
	require.Equal(t, raw, decompressed)
}

func TestWriteReusesScratchBufferAcrossCalls(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)

	_, _, err := w.Write("/chunks", bytes.Repeat([]byte{0x01}, 1<<20))
	require.NoError(t, err)
	scratch := w.scratch

	_, _, err = w.Write("/chunks", []byte("tiny"))
	require.NoError(t, err)
	require.Same(t, &scratch[0], &w.scratch[0])
}

func TestWriteDistinctContentDistinctNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)

	h1, _, err := w.Write("/chunks", []byte("alpha"))
	require.NoError(t, err)
	h2, _, err := w.Write("/chunks", []byte("beta"))
	require.NoError(t, err)

	require.NotEqual(t, h1, h2)
}
