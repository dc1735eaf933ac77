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

import "errors"

// DecoderError is the error kind returned for any malformed encoded input
// on the restore path.
type DecoderError struct {
	msg string
}

func (e *DecoderError) Error() string { return "rlp: " + e.msg }

func newDecodeErr(msg string) error { return &DecoderError{msg: msg} }

var (
	// ErrShortInput is returned when the input ends before a declared
	// length prefix or payload is fully consumed.
	ErrShortInput = newDecodeErr("input too short")
	// ErrNonCanonicalInt is returned for integers encoded with leading
	// zero bytes, which the canonical form forbids.
	ErrNonCanonicalInt = newDecodeErr("non-canonical integer (leading zero bytes)")
	// ErrNonCanonicalSize is returned when a long-form length prefix is
	// used for a payload that would have fit the short form.
	ErrNonCanonicalSize = newDecodeErr("non-canonical size (long form used for short payload)")
	// ErrTrailingBytes is returned when bytes remain after decoding the
	// outermost item.
	ErrTrailingBytes = newDecodeErr("tail bytes after outermost item")
	// ErrRecursionLimit bounds decode recursion so a maliciously deeply
	// nested input cannot exhaust the goroutine stack.
	ErrRecursionLimit = newDecodeErr("exceeded maximum list nesting depth")
	// ErrExpectedString is returned when a list is found where a
	// byte-string was expected.
	ErrExpectedString = newDecodeErr("expected byte-string, got list")
	// ErrExpectedList is returned when a byte-string is found where a
	// list was expected.
	ErrExpectedList = newDecodeErr("expected list, got byte-string")
)

// IsDecoderError reports whether err is (or wraps) a DecoderError.
func IsDecoderError(err error) bool {
	var de *DecoderError
	return errors.As(err, &de)
}
