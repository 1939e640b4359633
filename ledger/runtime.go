// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/host"
)

// the host.Runtime seen by one running program
type invocation struct {
	*Ledger
	program address.Address
	debits  map[address.Address]uint64
	created map[address.Address]struct{}
}

// CreateSlot - the allocation service
func (inv *invocation) CreateSlot(payer *host.Slot, target *host.Slot, service *host.Slot, lamports uint64, size int, owner address.Address, seeds [][]byte) error {
	if service.Key != host.AllocationService {
		return fault.ErrIncorrectService
	}
	if size < 0 || size > MaximumSlotSize {
		return fault.ErrInvalidSlotSize
	}
	if !payer.IsSigner {
		return fault.ErrMissingSignature
	}
	if !payer.IsWritable || !target.IsWritable {
		return fault.ErrReadOnlyModified
	}
	if owner != inv.program {
		return fault.ErrIllegalOwner
	}
	if target.IsAllocated() {
		return fault.ErrAlreadyAllocated
	}

	expected, err := inv.deriver.CreateProgramAddress(seeds, owner)
	if nil != err || expected != target.Key {
		return fault.ErrAddressMismatch
	}

	if payer.Lamports < lamports {
		return fault.ErrInsufficientFunds
	}

	payer.Lamports -= lamports
	inv.debits[payer.Key] += lamports

	target.Lamports = lamports
	target.Owner = owner
	target.Data = make([]byte, size)
	inv.created[target.Key] = struct{}{}

	inv.log.Debugf("create slot: %s  size: %d  lamports: %d  payer: %s", target.Key, size, lamports, payer.Key)
	return nil
}
