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

// Package trace flattens the nested call tree an EVM execution produces
// into the ordered, address-indexed form a client stores and serves
// (grounded on original_source/ethcore/src/trace/flat.rs).
package trace

import (
	"github.com/holiman/uint256"

	"github.com/erigontech/snapsync/common"
	"github.com/erigontech/snapsync/rlp"
)

// ActionKind discriminates the Action sum type.
type ActionKind uint8

const (
	ActionCall ActionKind = iota
	ActionCreate
	ActionSuicide
)

// Action is the operation a single trace node performed.
type Action struct {
	Kind ActionKind

	// Call fields.
	From  common.Address
	To    common.Address // zero for Create and Suicide
	Value *uint256.Int
	Gas   uint64
	Input []byte // Call input, or Create init code

	// Suicide fields.
	RefundAddress common.Address
	Balance       *uint256.Int
}

func (a Action) toItem() rlp.Item {
	switch a.Kind {
	case ActionCall:
		return rlp.NewList(
			rlp.String([]byte{byte(ActionCall)}),
			rlp.String(a.From.Bytes()),
			rlp.String(a.To.Bytes()),
			rlp.EncodeUint256(a.Value),
			rlp.EncodeUint64(a.Gas),
			rlp.String(a.Input),
		)
	case ActionCreate:
		return rlp.NewList(
			rlp.String([]byte{byte(ActionCreate)}),
			rlp.String(a.From.Bytes()),
			rlp.EncodeUint256(a.Value),
			rlp.EncodeUint64(a.Gas),
			rlp.String(a.Input),
		)
	default: // ActionSuicide
		return rlp.NewList(
			rlp.String([]byte{byte(ActionSuicide)}),
			rlp.String(a.From.Bytes()),
			rlp.String(a.RefundAddress.Bytes()),
			rlp.EncodeUint256(a.Balance),
		)
	}
}

func actionFromItem(it rlp.Item) (Action, error) {
	if !it.IsList() || len(it.List) == 0 {
		return Action{}, rlp.ErrExpectedList
	}
	if len(it.List[0].Str) != 1 {
		return Action{}, rlp.ErrExpectedString
	}
	kind := ActionKind(it.List[0].Str[0])
	l := it.List[1:]
	switch kind {
	case ActionCall:
		if len(l) != 5 {
			return Action{}, rlp.ErrExpectedList
		}
		value, err := rlp.DecodeUint256(l[2])
		if err != nil {
			return Action{}, err
		}
		gas, err := rlp.DecodeUint64(l[3])
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionCall, From: addressOf(l[0]), To: addressOf(l[1]), Value: value, Gas: gas, Input: l[4].Str}, nil
	case ActionCreate:
		if len(l) != 4 {
			return Action{}, rlp.ErrExpectedList
		}
		value, err := rlp.DecodeUint256(l[1])
		if err != nil {
			return Action{}, err
		}
		gas, err := rlp.DecodeUint64(l[2])
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionCreate, From: addressOf(l[0]), Value: value, Gas: gas, Input: l[3].Str}, nil
	case ActionSuicide:
		if len(l) != 3 {
			return Action{}, rlp.ErrExpectedList
		}
		balance, err := rlp.DecodeUint256(l[2])
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionSuicide, From: addressOf(l[0]), RefundAddress: addressOf(l[1]), Balance: balance}, nil
	default:
		return Action{}, rlp.ErrExpectedList
	}
}

func addressOf(it rlp.Item) common.Address {
	var a common.Address
	copy(a[:], it.Str)
	return a
}

// ResultKind discriminates the Result sum type.
type ResultKind uint8

const (
	ResultCall ResultKind = iota
	ResultCreate
	ResultFailedCall
	ResultFailedCreate
)

// Result is the outcome a trace node's action produced.
type Result struct {
	Kind ResultKind

	GasUsed uint64
	Output  []byte         // Call output
	Address common.Address // Create address
	Code    []byte         // Create deployed code
	Error   string         // FailedCall / FailedCreate
}

func (r Result) toItem() rlp.Item {
	switch r.Kind {
	case ResultCall:
		return rlp.NewList(rlp.String([]byte{byte(ResultCall)}), rlp.EncodeUint64(r.GasUsed), rlp.String(r.Output))
	case ResultCreate:
		return rlp.NewList(rlp.String([]byte{byte(ResultCreate)}), rlp.EncodeUint64(r.GasUsed), rlp.String(r.Address.Bytes()), rlp.String(r.Code))
	default: // ResultFailedCall / ResultFailedCreate
		return rlp.NewList(rlp.String([]byte{byte(r.Kind)}), rlp.String([]byte(r.Error)))
	}
}

func resultFromItem(it rlp.Item) (Result, error) {
	if !it.IsList() || len(it.List) == 0 {
		return Result{}, rlp.ErrExpectedList
	}
	if len(it.List[0].Str) != 1 {
		return Result{}, rlp.ErrExpectedString
	}
	kind := ResultKind(it.List[0].Str[0])
	l := it.List[1:]
	switch kind {
	case ResultCall:
		gasUsed, err := rlp.DecodeUint64(l[0])
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultCall, GasUsed: gasUsed, Output: l[1].Str}, nil
	case ResultCreate:
		gasUsed, err := rlp.DecodeUint64(l[0])
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultCreate, GasUsed: gasUsed, Address: addressOf(l[1]), Code: l[2].Str}, nil
	case ResultFailedCall, ResultFailedCreate:
		return Result{Kind: kind, Error: string(l[0].Str)}, nil
	default:
		return Result{}, rlp.ErrExpectedList
	}
}
