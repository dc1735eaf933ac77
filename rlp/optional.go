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

import "encoding/binary"

// EncodeOptionalUint64Slice encodes a slice of optional uint64 values using
// the length-stack convention of Parity's IPC binary codec
// (original_source/ipc/rpc/src/binary.rs): an 8-byte element count, followed
// by one (8-byte length, payload) pair per element: length 8 and an 8-byte
// big-endian payload for a present value, length 0 and no payload for an
// absent one.
//
// This is the one narrow piece of that otherwise out-of-scope codec this
// package exercises directly; the rest of the IPC binary-conversion layer
// is not implemented here.
func EncodeOptionalUint64Slice(values []*uint64) []byte {
	out := make([]byte, 8, 8+len(values)*16)
	binary.BigEndian.PutUint64(out, uint64(len(values)))
	for _, v := range values {
		if v == nil {
			out = binary.BigEndian.AppendUint64(out, 0)
			continue
		}
		out = binary.BigEndian.AppendUint64(out, 8)
		out = binary.BigEndian.AppendUint64(out, *v)
	}
	return out
}

// DecodeOptionalUint64Slice is the inverse of EncodeOptionalUint64Slice.
func DecodeOptionalUint64Slice(data []byte) ([]*uint64, error) {
	if len(data) < 8 {
		return nil, ErrShortInput
	}
	count := binary.BigEndian.Uint64(data[:8])
	data = data[8:]
	out := make([]*uint64, 0, count)
	for i := uint64(0); i < count; i++ {
		if len(data) < 8 {
			return nil, ErrShortInput
		}
		length := binary.BigEndian.Uint64(data[:8])
		data = data[8:]
		switch length {
		case 0:
			out = append(out, nil)
		case 8:
			if len(data) < 8 {
				return nil, ErrShortInput
			}
			v := binary.BigEndian.Uint64(data[:8])
			out = append(out, &v)
			data = data[8:]
		default:
			return nil, newDecodeErr("unsupported optional element length")
		}
	}
	if len(data) != 0 {
		return nil, ErrTrailingBytes
	}
	return out, nil
}
