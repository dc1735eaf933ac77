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

// Package compress wraps github.com/golang/snappy block compression behind
// the narrow contract the snapshot chunkers need: a
// deterministic bound on output size, and a single-shot compress-into-buffer
// call that grows the destination transparently.
package compress

import (
	"fmt"

	"github.com/golang/snappy"
)

// PreferredChunkSize is the uncompressed size chunkers try to stay under.
const PreferredChunkSize = 16 * 1024 * 1024

// BufferSize is the initial size of a chunker's reusable scratch buffer.
// It must stay strictly larger than PreferredChunkSize to absorb worst-case
// snappy expansion without a resize on the common path.
const BufferSize = 20 * 1024 * 1024

// MaxCompressedLen returns snappy's deterministic upper bound on the
// compressed size of an n-byte input.
func MaxCompressedLen(n int) int { return snappy.MaxEncodedLen(n) }

// CompressInto compresses src into dst, growing dst if its capacity is
// smaller than MaxCompressedLen(len(src)), and returns the number of
// compressed bytes written. dst's length (not just capacity) is updated so
// callers can slice dst[:n] directly next call; the byte slice header
// pointed to by *dst may change on growth, so callers must always reread
// *dst after calling this function.
//
// The two failure modes snappy.Encode can ever report, too-small buffer or
// invalid input, cannot occur here because the buffer is always sized
// first and any []byte is valid snappy input; if either happens anyway it
// is an InvariantViolation, not a recoverable error.
func CompressInto(dst *[]byte, src []byte) (int, error) {
	need := MaxCompressedLen(len(src))
	if cap(*dst) < need {
		grown := make([]byte, need)
		*dst = grown
	}
	*dst = (*dst)[:cap(*dst)]

	compressed := snappy.Encode(*dst, src)
	if len(compressed) > len(*dst) {
		return 0, fmt.Errorf("compress: %w: snappy wrote %d bytes into a %d-byte buffer sized for it", ErrInvariant, len(compressed), len(*dst))
	}
	return len(compressed), nil
}

// Decompress decompresses src (a full snappy block produced by CompressInto)
// and returns the uncompressed bytes.
func Decompress(src []byte) ([]byte, error) {
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return nil, fmt.Errorf("compress: decode length: %w", err)
	}
	dst := make([]byte, n)
	out, err := snappy.Decode(dst, src)
	if err != nil {
		return nil, fmt.Errorf("compress: decode: %w", err)
	}
	return out, nil
}
