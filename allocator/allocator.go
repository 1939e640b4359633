// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package allocator - create rent funded, program owned slots at
// derived addresses
package allocator

import (
	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/host"
)

// Allocator - requests new slots from the host
type Allocator struct {
	deriver address.Deriver
}

// New - allocator that checks addresses with the given deriver
func New(deriver address.Deriver) *Allocator {
	return &Allocator{
		deriver: deriver,
	}
}

// Allocate - create target with size bytes, owned by program and
// funded by payer to the minimum retention balance
//
// seeds and bump must derive target.Key for program; errors from the
// host (insufficient funds, already allocated) are returned unchanged
func (a *Allocator) Allocate(runtime host.Runtime, program address.Address, payer *host.Slot, target *host.Slot, service *host.Slot, size int, seeds [][]byte, bump uint8) error {
	if service.Key != host.AllocationService {
		return fault.ErrIncorrectService
	}

	signerSeeds := make([][]byte, 0, len(seeds)+1)
	signerSeeds = append(signerSeeds, seeds...)
	signerSeeds = append(signerSeeds, []byte{bump})

	expected, err := a.deriver.CreateProgramAddress(signerSeeds, program)
	if nil != err || expected != target.Key {
		return fault.ErrAddressMismatch
	}

	lamports := runtime.MinimumBalance(size)
	return runtime.CreateSlot(payer, target, service, lamports, size, program, signerSeeds)
}
