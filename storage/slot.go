// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/host"
)

const slotHeaderSize = address.Length + 8

// PackSlot - owner ++ lamports ++ data
func PackSlot(slot *host.Slot) []byte {
	buffer := make([]byte, slotHeaderSize, slotHeaderSize+len(slot.Data))
	copy(buffer, slot.Owner[:])
	binary.BigEndian.PutUint64(buffer[address.Length:], slot.Lamports)
	return append(buffer, slot.Data...)
}

// UnpackSlot - decode a stored slot; the data is copied
func UnpackSlot(key address.Address, buffer []byte) (*host.Slot, error) {
	if len(buffer) < slotHeaderSize {
		return nil, fault.ErrRecordTruncated
	}
	slot := &host.Slot{
		Key:      key,
		Lamports: binary.BigEndian.Uint64(buffer[address.Length:slotHeaderSize]),
		Data:     make([]byte, len(buffer)-slotHeaderSize),
	}
	copy(slot.Owner[:], buffer[:address.Length])
	copy(slot.Data, buffer[slotHeaderSize:])
	return slot, nil
}

// GetSlot - read a slot, staged values included
//
// a key that was never written gives an empty slot owned by the
// allocation service
func GetSlot(key address.Address) (*host.Slot, error) {
	buffer := Pool.Slots.Get(key.Bytes())
	if nil == buffer {
		return &host.Slot{
			Key:   key,
			Owner: host.AllocationService,
		}, nil
	}
	return UnpackSlot(key, buffer)
}

// PutSlot - stage a slot; an unallocated slot is removed
func PutSlot(trx Transaction, slot *host.Slot) {
	if !slot.IsAllocated() {
		trx.Delete(Pool.Slots, slot.Key.Bytes())
		return
	}
	trx.Put(Pool.Slots, slot.Key.Bytes(), PackSlot(slot))
}
