// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"math"
	"unicode/utf8"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/allocator"
	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/host"
	"github.com/bitmark-inc/productd/instruction"
	"github.com/bitmark-inc/productd/record"
)

// Processor - executes product commands
type Processor struct {
	log       *logger.L
	deriver   address.Deriver
	allocator *allocator.Allocator
}

// New - create a processor using the given address deriver
//
// the logger must have been initialised
func New(deriver address.Deriver) *Processor {
	return &Processor{
		log:       logger.New("processor"),
		deriver:   deriver,
		allocator: allocator.New(deriver),
	}
}

// Process - decode one command and run it against the slots
func (p *Processor) Process(runtime host.Runtime, program address.Address, slots []*host.Slot, data []byte) error {
	command, err := instruction.Unpack(data)
	if nil != err {
		p.log.Warnf("command: %x  error: %s", data, err)
		return err
	}

	switch c := command.(type) {
	case instruction.CreateProduct:
		p.log.Debugf("create product: id: %d  name: %q  price: %f", c.ID, c.Name, c.Price)
		err = p.CreateProduct(runtime, program, slots, c.ID, c.Name, c.Price)

	case instruction.RenameProduct:
		p.log.Debugf("rename product: name: %q", c.Name)
		err = p.RenameProduct(program, slots, c.Name)

	case instruction.RecordPrice:
		p.log.Debugf("record price: %f", c.Price)
		err = p.RecordPrice(runtime, program, slots, c.Price)

	default:
		err = fault.ErrInvalidCommand
	}

	if nil != err {
		p.log.Warnf("command variant: %d  rejected: %s", command.Variant(), err)
	}
	return err
}

// CreateProduct - create the product (owner, id), its price counter
// and its first price entry
//
// slots: signer, product, counter, price entry, allocation service
func (p *Processor) CreateProduct(runtime host.Runtime, program address.Address, slots []*host.Slot, id uint64, name string, price float64) error {
	it := host.NewSlotIterator(slots)
	signer, err := it.Next()
	if nil != err {
		return err
	}
	productSlot, err := it.Next()
	if nil != err {
		return err
	}
	counterSlot, err := it.Next()
	if nil != err {
		return err
	}
	if _, err := it.Next(); nil != err {
		return err
	}
	service, err := it.Next()
	if nil != err {
		return err
	}

	if !signer.IsSigner {
		return fault.ErrMissingSignature
	}

	productSeeds := ProductSeeds(signer.Key, id)
	productAddress, productBump := p.deriver.FindProgramAddress(productSeeds, program)
	if productAddress != productSlot.Key {
		return fault.ErrAddressMismatch
	}

	if !validName(name) || !validPrice(price) {
		return fault.ErrInvalidInput
	}

	counterSeeds := CounterSeeds(productAddress)
	counterAddress, counterBump := p.deriver.FindProgramAddress(counterSeeds, program)
	if counterAddress != counterSlot.Key {
		return fault.ErrAddressMismatch
	}

	if initialised(productSlot, program, isProduct) || initialised(counterSlot, program, isCounter) {
		return fault.ErrAlreadyInitialized
	}

	err = p.allocator.Allocate(runtime, program, signer, productSlot, service, record.MaximumProductSize, productSeeds, productBump)
	if nil != err {
		return err
	}
	if initialised(productSlot, program, isProduct) {
		return fault.ErrAlreadyInitialized
	}

	product := record.Product{
		Initialized: true,
		Owner:       signer.Key,
		ID:          id,
		Name:        name,
		Price:       price,
	}
	if err := product.PackInto(productSlot.Data); nil != err {
		return err
	}

	err = p.allocator.Allocate(runtime, program, signer, counterSlot, service, record.CounterSize, counterSeeds, counterBump)
	if nil != err {
		return err
	}
	if initialised(counterSlot, program, isCounter) {
		return fault.ErrAlreadyInitialized
	}

	counter := record.PriceCounter{
		Initialized: true,
		Counter:     0,
	}
	if err := counter.PackInto(counterSlot.Data); nil != err {
		return err
	}

	return p.RecordPrice(runtime, program, slots, price)
}

// RenameProduct - change the name of a product, owner only
//
// slots: signer, product
func (p *Processor) RenameProduct(program address.Address, slots []*host.Slot, name string) error {
	it := host.NewSlotIterator(slots)
	signer, err := it.Next()
	if nil != err {
		return err
	}
	productSlot, err := it.Next()
	if nil != err {
		return err
	}

	if productSlot.Owner != program {
		return fault.ErrIllegalOwner
	}
	if !signer.IsSigner {
		return fault.ErrMissingSignature
	}

	// too short to be a product, so not the derived product slot
	product, err := record.UnpackProduct(productSlot.Data)
	if nil != err {
		return fault.ErrAddressMismatch
	}

	if p.productAddress(signer.Key, product.ID, program) != productSlot.Key {
		return fault.ErrAddressMismatch
	}

	if !product.Initialized {
		return fault.ErrUninitializedAccount
	}
	if !validName(name) {
		return fault.ErrInvalidInput
	}

	product.Name = name
	return product.PackInto(productSlot.Data)
}

// RecordPrice - append a price entry and make it the product's price
//
// slots: product owner, product, counter, price entry, allocation service
func (p *Processor) RecordPrice(runtime host.Runtime, program address.Address, slots []*host.Slot, price float64) error {
	it := host.NewSlotIterator(slots)
	owner, err := it.Next()
	if nil != err {
		return err
	}
	productSlot, err := it.Next()
	if nil != err {
		return err
	}
	counterSlot, err := it.Next()
	if nil != err {
		return err
	}
	entrySlot, err := it.Next()
	if nil != err {
		return err
	}
	service, err := it.Next()
	if nil != err {
		return err
	}

	if !productSlot.IsAllocated() {
		return fault.ErrUninitializedAccount
	}
	if productSlot.Owner != program || counterSlot.Owner != program {
		return fault.ErrIllegalOwner
	}
	if !owner.IsSigner {
		return fault.ErrMissingSignature
	}

	product, err := record.UnpackProduct(productSlot.Data)
	if nil != err {
		return fault.ErrAddressMismatch
	}
	if p.productAddress(owner.Key, product.ID, program) != productSlot.Key {
		return fault.ErrAddressMismatch
	}
	if !product.Initialized {
		return fault.ErrUninitializedAccount
	}
	if !validPrice(price) {
		return fault.ErrInvalidInput
	}

	counterAddress, _ := p.deriver.FindProgramAddress(CounterSeeds(productSlot.Key), program)
	if counterAddress != counterSlot.Key {
		return fault.ErrAddressMismatch
	}
	counter, err := record.UnpackCounter(counterSlot.Data)
	if nil != err {
		return fault.ErrAddressMismatch
	}
	if !counter.Initialized {
		return fault.ErrUninitializedAccount
	}

	entrySeeds := PriceSeeds(productSlot.Key, counter.Counter)
	entryAddress, entryBump := p.deriver.FindProgramAddress(entrySeeds, program)
	if entryAddress != entrySlot.Key {
		return fault.ErrAddressMismatch
	}

	err = p.allocator.Allocate(runtime, program, owner, entrySlot, service, record.PriceSize, entrySeeds, entryBump)
	if nil != err {
		return err
	}
	if initialised(entrySlot, program, isPrice) {
		return fault.ErrAlreadyInitialized
	}

	entry := record.PriceEntry{
		Initialized: true,
		Product:     productSlot.Key,
		Price:       price,
		Timestamp:   runtime.UnixTimestamp(),
	}
	if err := entry.PackInto(entrySlot.Data); nil != err {
		return err
	}

	counter.Counter += 1
	if err := counter.PackInto(counterSlot.Data); nil != err {
		return err
	}

	product.Price = price
	return product.PackInto(productSlot.Data)
}

// the product address for the id read from a slot; the bump is not
// stored so it is searched for again
func (p *Processor) productAddress(owner address.Address, id uint64, program address.Address) address.Address {
	a, _ := p.deriver.FindProgramAddress(ProductSeeds(owner, id), program)
	return a
}

func validName(name string) bool {
	return "" != name && utf8.ValidString(name) && record.ProductSize(name) <= record.MaximumProductSize
}

func validPrice(price float64) bool {
	return !math.IsNaN(price) && !math.IsInf(price, 0) && price > 0
}

type recordKind int

const (
	isProduct recordKind = iota
	isCounter
	isPrice
)

// true if the slot belongs to the program and already holds an
// initialised record of the kind
func initialised(slot *host.Slot, program address.Address, kind recordKind) bool {
	if slot.Owner != program {
		return false
	}
	switch kind {
	case isProduct:
		r, err := record.UnpackProduct(slot.Data)
		return nil == err && r.Initialized
	case isCounter:
		r, err := record.UnpackCounter(slot.Data)
		return nil == err && r.Initialized
	case isPrice:
		r, err := record.UnpackPrice(slot.Data)
		return nil == err && r.Initialized
	default:
		logger.Panicf("processor: unknown record kind: %d", kind)
	}
	return false
}
