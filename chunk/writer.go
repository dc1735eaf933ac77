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

// Package chunk implements ChunkWriter: compress a fully formed payload,
// hash the compressed bytes, and persist the result as a hash-named file.
package chunk

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/erigontech/snapsync/common"
	"github.com/erigontech/snapsync/compress"
)

// Writer compresses and persists chunk payloads. A Writer owns exactly one
// reusable scratch buffer across all chunks it writes; it is not safe for
// concurrent use from multiple goroutines.
type Writer struct {
	fs      afero.Fs
	scratch []byte
}

// NewWriter returns a Writer backed by fs, with its scratch buffer
// pre-sized to compress.BufferSize.
func NewWriter(fs afero.Fs) *Writer {
	return &Writer{fs: fs, scratch: make([]byte, compress.BufferSize)}
}

// Write compresses raw, hashes the compressed bytes, and writes them to
// dir/<hex(hash)>. It returns the hash and the compressed size.
//
// Any filesystem failure is returned to the caller; a partially written
// file is left in place; cleanup is the caller's job.
func (w *Writer) Write(dir string, raw []byte) (common.Hash, int, error) {
	n, err := compress.CompressInto(&w.scratch, raw)
	if err != nil {
		return common.Hash{}, 0, err
	}
	compressed := w.scratch[:n]
	hash := common.Keccak256(compressed)

	path := filepath.Join(dir, hash.Hex())
	if err := afero.WriteFile(w.fs, path, compressed, 0o644); err != nil {
		return common.Hash{}, 0, err
	}
	return hash, n, nil
}
