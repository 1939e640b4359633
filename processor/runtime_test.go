// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor_test

import (
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/host"
	"github.com/bitmark-inc/productd/processor"
)

const (
	testingDirName = "testing"
	testTimestamp  = 1600000000
	rentPerByte    = 10
)

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

// in memory ledger: each invocation works on copies of the stored
// slots which are written back only on success
type memoryLedger struct {
	deriver   address.Deriver
	program   address.Address
	processor *processor.Processor
	slots     map[address.Address]host.Slot
	clock     int64
	allocated int
}

func newMemoryLedger() *memoryLedger {
	deriver := address.New()
	return &memoryLedger{
		deriver:   deriver,
		program:   processor.DefaultProgramID,
		processor: processor.New(deriver),
		slots:     make(map[address.Address]host.Slot),
		clock:     testTimestamp,
	}
}

func (m *memoryLedger) MinimumBalance(size int) uint64 {
	return uint64(128+size) * rentPerByte
}

func (m *memoryLedger) UnixTimestamp() int64 {
	return m.clock
}

func (m *memoryLedger) CreateSlot(payer *host.Slot, target *host.Slot, service *host.Slot, lamports uint64, size int, owner address.Address, seeds [][]byte) error {
	if !payer.IsSigner {
		return fault.ErrMissingSignature
	}
	if target.IsAllocated() {
		return fault.ErrAlreadyAllocated
	}
	if payer.Lamports < lamports {
		return fault.ErrInsufficientFunds
	}
	a, err := m.deriver.CreateProgramAddress(seeds, owner)
	if nil != err || a != target.Key {
		return fault.ErrAddressMismatch
	}
	payer.Lamports -= lamports
	target.Lamports = lamports
	target.Owner = owner
	target.Data = make([]byte, size)
	m.allocated += 1
	return nil
}

// fund a key directly
func (m *memoryLedger) fund(key address.Address, lamports uint64) {
	s := m.slots[key]
	s.Key = key
	s.Lamports += lamports
	m.slots[key] = s
}

func (m *memoryLedger) get(key address.Address) host.Slot {
	s, ok := m.slots[key]
	if !ok {
		return host.Slot{Key: key}
	}
	s.Data = append([]byte{}, s.Data...)
	return s
}

type meta struct {
	key    address.Address
	signer bool
}

func (m *memoryLedger) invoke(data []byte, metas ...meta) error {
	slots := make([]*host.Slot, len(metas))
	for i, mt := range metas {
		s := m.get(mt.key)
		s.IsSigner = mt.signer
		s.IsWritable = true
		slots[i] = &s
	}

	err := m.processor.Process(m, m.program, slots, data)
	if nil != err {
		return err
	}

	for _, s := range slots {
		s.IsSigner = false
		s.IsWritable = false
		m.slots[s.Key] = *s
	}
	return nil
}

func (m *memoryLedger) productAddress(owner address.Address, id uint64) address.Address {
	a, _ := m.deriver.FindProgramAddress(processor.ProductSeeds(owner, id), m.program)
	return a
}

func (m *memoryLedger) counterAddress(product address.Address) address.Address {
	a, _ := m.deriver.FindProgramAddress(processor.CounterSeeds(product), m.program)
	return a
}

func (m *memoryLedger) priceAddress(product address.Address, n uint64) address.Address {
	a, _ := m.deriver.FindProgramAddress(processor.PriceSeeds(product, n), m.program)
	return a
}

// slot metas for create and record price
func (m *memoryLedger) pricing(owner address.Address, id uint64, n uint64, signed bool) []meta {
	product := m.productAddress(owner, id)
	return []meta{
		{key: owner, signer: signed},
		{key: product},
		{key: m.counterAddress(product)},
		{key: m.priceAddress(product, n)},
		{key: host.AllocationService},
	}
}
