// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package host - the boundary between a program and the ledger that
// invokes it
package host

import (
	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/fault"
)

// AllocationService - address of the host's slot allocation service,
// also the owner of every slot that has not been allocated to a program
var AllocationService = address.Address{}

// Slot - one storage slot as presented to a program
//
// Data is the slot's buffer; a program writes records directly into it
// and the host persists the final contents only if the whole
// invocation succeeds.
type Slot struct {
	Key        address.Address
	Owner      address.Address
	Lamports   uint64
	Data       []byte
	IsSigner   bool
	IsWritable bool
}

// IsAllocated - true once the slot holds data or funds, or belongs to
// a program
func (s *Slot) IsAllocated() bool {
	return 0 != s.Lamports || 0 != len(s.Data) || s.Owner != AllocationService
}

//go:generate mockgen -source=host.go -destination=mocks/runtime.go -package=mocks

// Runtime - services a program may request from the host during an
// invocation
type Runtime interface {
	// minimum balance for a slot of this size to be retained indefinitely
	MinimumBalance(size int) uint64

	// current time of the invocation
	UnixTimestamp() int64

	// allocate target with size zero bytes, funded with lamports
	// taken from payer and owned by owner; seeds (including the bump)
	// must derive target for the calling program
	CreateSlot(payer *Slot, target *Slot, service *Slot, lamports uint64, size int, owner address.Address, seeds [][]byte) error
}

// SlotIterator - positional access to the slots of an invocation
type SlotIterator struct {
	slots []*Slot
	index int
}

// NewSlotIterator - iterate over slots in the order supplied
func NewSlotIterator(slots []*Slot) *SlotIterator {
	return &SlotIterator{slots: slots}
}

// Next - the next slot, or ErrNotEnoughSlots
func (it *SlotIterator) Next() (*Slot, error) {
	if it.index >= len(it.slots) {
		return nil, fault.ErrNotEnoughSlots
	}
	s := it.slots[it.index]
	it.index += 1
	return s, nil
}
