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

import "github.com/erigontech/snapsync/rlp"

// BlockView is a read-only view over an encoded block ([header,
// transactions, uncles]), grounded on Parity's BlockView/HeaderView, which
// operate directly on the RLP structure rather than a fully materialised
// domain object (original_source/ethcore/src/snapshot/mod.rs uses exactly
// this: "let view = BlockView::new(&block); ... view.header_view()").
type BlockView struct {
	Header       *Header
	Transactions rlp.Item
	Uncles       rlp.Item
}

// DecodeBlockView decodes a block previously obtained from a
// BlockChainClient into its header and opaque transaction/uncle lists.
func DecodeBlockView(raw []byte) (*BlockView, error) {
	it, err := rlp.Decode(raw)
	if err != nil {
		return nil, err
	}
	if !it.IsList() || len(it.List) != 3 {
		return nil, rlp.ErrExpectedList
	}
	header, err := HeaderFromItem(it.List[0])
	if err != nil {
		return nil, err
	}
	return &BlockView{Header: header, Transactions: it.List[1], Uncles: it.List[2]}, nil
}

// EncodeBlock encodes a full block: [header, transactions, uncles].
func EncodeBlock(h *Header, transactions, uncles rlp.Item) []byte {
	return rlp.Encode(rlp.NewList(h.ToItem(), transactions, uncles))
}
