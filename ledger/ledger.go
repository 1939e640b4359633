// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/chain"
	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/host"
	"github.com/bitmark-inc/productd/storage"
)

// overhead counted for every slot when computing rent
const slotOverhead = 128

// MaximumSlotSize - largest data size of a single slot
const MaximumSlotSize = 10 * 1024

// Program - a callback run by the ledger
type Program interface {
	Process(runtime host.Runtime, program address.Address, slots []*host.Slot, data []byte) error
}

// Rent - parameters of the minimum balance calculation
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  float64
}

// Ledger - runs programs over the slot store
type Ledger struct {
	sync.Mutex

	log      *logger.L
	chain    string
	rent     Rent
	deriver  address.Deriver
	programs map[address.Address]Program
	clock    func() time.Time
}

// New - create a ledger; storage must already be initialised
func New(chainName string, rent Rent, deriver address.Deriver) (*Ledger, error) {
	if !chain.Valid(chainName) {
		return nil, fault.ErrInvalidChain
	}
	return &Ledger{
		log:      logger.New("ledger"),
		chain:    chainName,
		rent:     rent,
		deriver:  deriver,
		programs: make(map[address.Address]Program),
		clock:    time.Now,
	}, nil
}

// Register - make a program invocable under an id
func (l *Ledger) Register(id address.Address, program Program) error {
	l.Lock()
	defer l.Unlock()

	if _, ok := l.programs[id]; ok {
		return fault.ErrProgramAlreadyRegistered
	}
	l.programs[id] = program
	l.log.Infof("registered program: %s", id)
	return nil
}

// Chain - name of the chain served
func (l *Ledger) Chain() string {
	return l.chain
}

// MinimumBalance - lamports for a slot of the given size to be exempt
// from rent
func (l *Ledger) MinimumBalance(size int) uint64 {
	perYear := uint64(slotOverhead+size) * l.rent.LamportsPerByteYear
	return uint64(float64(perYear) * l.rent.ExemptionThreshold)
}

// UnixTimestamp - the ledger clock
func (l *Ledger) UnixTimestamp() int64 {
	return l.clock().Unix()
}

// Slot - read one committed slot
func (l *Ledger) Slot(key address.Address) (*host.Slot, error) {
	l.Lock()
	defer l.Unlock()
	return storage.GetSlot(key)
}

// Fund - credit a slot, only on test chains
func (l *Ledger) Fund(key address.Address, lamports uint64) (uint64, error) {
	if !chain.IsTesting(l.chain) {
		return 0, fault.ErrOnlyOnTestChain
	}
	if 0 == lamports {
		return 0, fault.ErrInvalidLamports
	}

	l.Lock()
	defer l.Unlock()

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return 0, err
	}

	slot, err := storage.GetSlot(key)
	if nil != err {
		trx.Abort()
		return 0, err
	}
	if slot.Lamports+lamports < slot.Lamports {
		trx.Abort()
		return 0, fault.ErrLamportsOverflow
	}
	slot.Lamports += lamports

	storage.PutSlot(trx, slot)
	err = trx.Commit()
	if nil != err {
		return 0, err
	}

	l.log.Infof("fund: %s  lamports: %d  balance: %d", key, lamports, slot.Lamports)
	return slot.Lamports, nil
}

// Invoke - verify and run a transaction
//
// returns the addresses of the slots that were changed
func (l *Ledger) Invoke(t *Transaction) ([]address.Address, error) {
	if 0 == len(t.Slots) || len(t.Slots) > MaximumSlots {
		return nil, fault.ErrInvalidSlotCount
	}
	seen := make(map[address.Address]struct{}, len(t.Slots))
	for _, meta := range t.Slots {
		if _, ok := seen[meta.Key]; ok {
			return nil, fault.ErrDuplicateSlot
		}
		seen[meta.Key] = struct{}{}
	}

	err := t.Verify()
	if nil != err {
		return nil, err
	}

	l.Lock()
	defer l.Unlock()

	program, ok := l.programs[t.Program]
	if !ok {
		return nil, fault.ErrUnknownProgram
	}

	digest := t.Digest()
	if storage.IsProcessed(digest[:]) {
		l.log.Warnf("program: %s  replayed: %x", t.Program, digest)
		return nil, fault.ErrAlreadyProcessed
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			trx.Abort()
		}
	}()

	slots := make([]*host.Slot, len(t.Slots))
	originals := make([]host.Slot, len(t.Slots))
	for i, meta := range t.Slots {
		slot, err := storage.GetSlot(meta.Key)
		if nil != err {
			return nil, err
		}
		originals[i] = *slot
		originals[i].Data = append([]byte{}, slot.Data...)

		slot.IsSigner = meta.IsSigner
		slot.IsWritable = meta.IsWritable
		slots[i] = slot
	}

	inv := &invocation{
		Ledger:  l,
		program: t.Program,
		debits:  make(map[address.Address]uint64),
		created: make(map[address.Address]struct{}),
	}

	err = program.Process(inv, t.Program, slots, t.Data)
	if nil != err {
		l.log.Warnf("program: %s  error: %s", t.Program, err)
		return nil, err
	}

	changed, err := inv.check(originals, slots)
	if nil != err {
		l.log.Errorf("program: %s  host rule violated: %s", t.Program, err)
		return nil, err
	}

	touched := make([]address.Address, 0, len(changed))
	for _, slot := range changed {
		storage.PutSlot(trx, slot)
		touched = append(touched, slot.Key)
	}
	storage.PutProcessed(trx, digest[:], l.UnixTimestamp())

	err = trx.Commit()
	if nil != err {
		return nil, err
	}
	committed = true

	l.log.Debugf("program: %s  changed slots: %d", t.Program, len(touched))
	return touched, nil
}

// enforce the host rules on the slots after a successful run and
// return the slots to be written
func (inv *invocation) check(originals []host.Slot, slots []*host.Slot) ([]*host.Slot, error) {
	var before, after uint64
	changed := make([]*host.Slot, 0, len(slots))

	for i, slot := range slots {
		original := &originals[i]
		before += original.Lamports
		after += slot.Lamports

		if slot.Key != original.Key {
			return nil, fault.ErrExternalDataModified
		}

		dataChanged := !bytes.Equal(slot.Data, original.Data)
		ownerChanged := slot.Owner != original.Owner
		lamportsChanged := slot.Lamports != original.Lamports
		if !dataChanged && !ownerChanged && !lamportsChanged {
			continue
		}

		if !slot.IsWritable {
			return nil, fault.ErrReadOnlyModified
		}

		_, created := inv.created[slot.Key]
		owned := original.Owner == inv.program
		if (dataChanged || ownerChanged) && !owned && !created {
			return nil, fault.ErrExternalDataModified
		}
		if slot.Lamports < original.Lamports && !owned {
			if original.Lamports-slot.Lamports > inv.debits[slot.Key] {
				return nil, fault.ErrExternalDataModified
			}
		}

		changed = append(changed, slot)
	}

	if before != after {
		return nil, fault.ErrUnbalancedTransaction
	}
	return changed, nil
}
