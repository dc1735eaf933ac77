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

package trace

import "github.com/erigontech/snapsync/rlp"

// Trace is the nested call tree an EVM execution produces: one node per
// CALL/CREATE/SUICIDE, with its sub-calls attached directly as children.
type Trace struct {
	Action Action
	Result Result
	Subs   []Trace
}

// FlatTrace is one node of a Trace tree, relocated into a flat, ordered
// vector. Parent/child relationships are recovered from TraceAddress: the
// path of child indices from the transaction's root call to this node.
type FlatTrace struct {
	Action       Action
	Result       Result
	Subtraces    int
	TraceAddress []int
}

func (ft FlatTrace) toItem() rlp.Item {
	addr := make([]rlp.Item, len(ft.TraceAddress))
	for i, a := range ft.TraceAddress {
		addr[i] = rlp.EncodeUint64(uint64(a))
	}
	return rlp.NewList(ft.Action.toItem(), ft.Result.toItem(), rlp.EncodeUint64(uint64(ft.Subtraces)), rlp.NewList(addr...))
}

func flatTraceFromItem(it rlp.Item) (FlatTrace, error) {
	if !it.IsList() || len(it.List) != 4 {
		return FlatTrace{}, rlp.ErrExpectedList
	}
	action, err := actionFromItem(it.List[0])
	if err != nil {
		return FlatTrace{}, err
	}
	result, err := resultFromItem(it.List[1])
	if err != nil {
		return FlatTrace{}, err
	}
	subtraces, err := rlp.DecodeUint64(it.List[2])
	if err != nil {
		return FlatTrace{}, err
	}
	if !it.List[3].IsList() {
		return FlatTrace{}, rlp.ErrExpectedList
	}
	var addr []int
	if len(it.List[3].List) > 0 {
		addr = make([]int, len(it.List[3].List))
		for i, a := range it.List[3].List {
			n, err := rlp.DecodeUint64(a)
			if err != nil {
				return FlatTrace{}, err
			}
			addr[i] = int(n)
		}
	}
	return FlatTrace{Action: action, Result: result, Subtraces: int(subtraces), TraceAddress: addr}, nil
}

// FlatTransactionTraces holds every FlatTrace a single transaction
// produced, in depth-first pre-order.
type FlatTransactionTraces []FlatTrace

// FlatBlockTraces holds the FlatTransactionTraces of every transaction in
// a block, indexed by transaction position.
type FlatBlockTraces []FlatTransactionTraces

// Flatten walks trace depth-first, relocating it into pre-order FlatTrace
// nodes addressed by their path of child indices from the root.
//
// Grounded on FlatBlockTraces::flatten in
// original_source/ethcore/src/trace/flat.rs: the root is emitted before
// its children (pre-order), and a child's address is its parent's address
// with its own index among siblings appended.
func Flatten(t Trace) FlatTransactionTraces {
	return flatten(nil, t)
}

func flatten(address []int, t Trace) []FlatTrace {
	root := FlatTrace{
		Action:       t.Action,
		Result:       t.Result,
		Subtraces:    len(t.Subs),
		TraceAddress: append([]int(nil), address...),
	}
	out := []FlatTrace{root}
	for i, sub := range t.Subs {
		childAddress := append(append([]int(nil), address...), i)
		out = append(out, flatten(childAddress, sub)...)
	}
	return out
}

// FlattenBlock flattens every transaction's trace tree into FlatBlockTraces,
// preserving transaction order.
func FlattenBlock(txTraces []Trace) FlatBlockTraces {
	out := make(FlatBlockTraces, len(txTraces))
	for i, t := range txTraces {
		out[i] = Flatten(t)
	}
	return out
}

// Encode serialises the block's flattened traces.
func (fb FlatBlockTraces) Encode() []byte {
	txItems := make([]rlp.Item, len(fb))
	for i, tx := range fb {
		traceItems := make([]rlp.Item, len(tx))
		for j, ft := range tx {
			traceItems[j] = ft.toItem()
		}
		txItems[i] = rlp.NewList(traceItems...)
	}
	return rlp.Encode(rlp.NewList(txItems...))
}

// DecodeFlatBlockTraces decodes a value previously produced by
// FlatBlockTraces.Encode.
func DecodeFlatBlockTraces(data []byte) (FlatBlockTraces, error) {
	it, err := rlp.Decode(data)
	if err != nil {
		return nil, err
	}
	if !it.IsList() {
		return nil, rlp.ErrExpectedList
	}
	out := make(FlatBlockTraces, len(it.List))
	for i, txItem := range it.List {
		if !txItem.IsList() {
			return nil, rlp.ErrExpectedList
		}
		tx := make(FlatTransactionTraces, len(txItem.List))
		for j, traceItem := range txItem.List {
			ft, err := flatTraceFromItem(traceItem)
			if err != nil {
				return nil, err
			}
			tx[j] = ft
		}
		out[i] = tx
	}
	return out, nil
}
