// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/productd/account"
	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/host"
	"github.com/bitmark-inc/productd/instruction"
	"github.com/bitmark-inc/productd/ledger"
	"github.com/bitmark-inc/productd/processor"
	"github.com/bitmark-inc/productd/record"
)

// ProductAddresses - the slots belonging to one product
type ProductAddresses struct {
	Product address.Address `json:"product"`
	Counter address.Address `json:"counter"`
}

// Addresses - derive the product and counter addresses of an owner's product
func Addresses(deriver address.Deriver, program address.Address, owner address.Address, id uint64) ProductAddresses {
	product, _ := deriver.FindProgramAddress(processor.ProductSeeds(owner, id), program)
	counter, _ := deriver.FindProgramAddress(processor.CounterSeeds(product), program)
	return ProductAddresses{
		Product: product,
		Counter: counter,
	}
}

// CreateProductTransaction - signed transaction creating a product
// and its first price entry
func CreateProductTransaction(deriver address.Deriver, program address.Address, keyPair *account.KeyPair, id uint64, name string, price float64) (*ledger.Transaction, error) {
	command := instruction.CreateProduct{
		ID:    id,
		Name:  name,
		Price: price,
	}
	return priced(deriver, program, keyPair, id, 0, command)
}

// RecordPriceTransaction - signed transaction recording the n'th price
func RecordPriceTransaction(deriver address.Deriver, program address.Address, keyPair *account.KeyPair, id uint64, n uint64, price float64) (*ledger.Transaction, error) {
	command := instruction.RecordPrice{
		Price: price,
	}
	return priced(deriver, program, keyPair, id, n, command)
}

// RenameProductTransaction - signed transaction renaming a product
func RenameProductTransaction(deriver address.Deriver, program address.Address, keyPair *account.KeyPair, id uint64, name string) (*ledger.Transaction, error) {
	a := Addresses(deriver, program, keyPair.Address(), id)
	command := instruction.RenameProduct{
		Name: name,
	}
	t := &ledger.Transaction{
		Program: program,
		Nonce:   nonce(),
		Slots: []ledger.SlotMeta{
			{Key: keyPair.Address(), IsSigner: true},
			{Key: a.Product, IsWritable: true},
		},
		Data: command.Pack(),
	}
	if err := t.Sign(keyPair); nil != err {
		return nil, err
	}
	return t, nil
}

// slots: owner, product, counter, price entry, allocation service
func priced(deriver address.Deriver, program address.Address, keyPair *account.KeyPair, id uint64, n uint64, command instruction.Command) (*ledger.Transaction, error) {
	a := Addresses(deriver, program, keyPair.Address(), id)
	entry, _ := deriver.FindProgramAddress(processor.PriceSeeds(a.Product, n), program)

	t := &ledger.Transaction{
		Program: program,
		Nonce:   nonce(),
		Slots: []ledger.SlotMeta{
			{Key: keyPair.Address(), IsSigner: true, IsWritable: true},
			{Key: a.Product, IsWritable: true},
			{Key: a.Counter, IsWritable: true},
			{Key: entry, IsWritable: true},
			{Key: host.AllocationService},
		},
		Data: command.Pack(),
	}
	if err := t.Sign(keyPair); nil != err {
		return nil, err
	}
	return t, nil
}

var lastNonce uint64

// strictly increasing so each submission is a distinct invocation
func nonce() uint64 {
	for {
		last := atomic.LoadUint64(&lastNonce)
		n := uint64(time.Now().UnixNano())
		if n <= last {
			n = last + 1
		}
		if atomic.CompareAndSwapUint64(&lastNonce, last, n) {
			return n
		}
	}
}

// ---

// ProductInfo - a product with its price history
type ProductInfo struct {
	Addresses ProductAddresses     `json:"addresses"`
	Product   *record.Product      `json:"product"`
	Counter   *record.PriceCounter `json:"counter"`
	Prices    []*record.PriceEntry `json:"prices,omitempty"`
}

// CreateProduct - create a product and record its initial price
func (c *Client) CreateProduct(keyPair *account.KeyPair, id uint64, name string, price float64) ([]address.Address, error) {
	t, err := CreateProductTransaction(c.deriver, c.program, keyPair, id, name, price)
	if nil != err {
		return nil, err
	}
	return c.Submit(t)
}

// RenameProduct - change the name of an owned product
func (c *Client) RenameProduct(keyPair *account.KeyPair, id uint64, name string) ([]address.Address, error) {
	t, err := RenameProductTransaction(c.deriver, c.program, keyPair, id, name)
	if nil != err {
		return nil, err
	}
	return c.Submit(t)
}

// RecordPrice - append a price using the product's current counter
func (c *Client) RecordPrice(keyPair *account.KeyPair, id uint64, price float64) ([]address.Address, error) {
	a := Addresses(c.deriver, c.program, keyPair.Address(), id)

	slot, err := c.Slot(a.Counter)
	if nil != err {
		return nil, err
	}
	counter, err := record.UnpackCounter(slot.Data)
	if nil != err {
		return nil, err
	}

	t, err := RecordPriceTransaction(c.deriver, c.program, keyPair, id, counter.Counter, price)
	if nil != err {
		return nil, err
	}
	return c.Submit(t)
}

// Show - fetch a product, its counter and optionally its price entries
func (c *Client) Show(owner address.Address, id uint64, history bool) (*ProductInfo, error) {
	a := Addresses(c.deriver, c.program, owner, id)

	slot, err := c.Slot(a.Product)
	if nil != err {
		return nil, err
	}
	if !slot.IsAllocated() {
		return nil, fault.ErrUninitializedAccount
	}
	product, err := record.UnpackProduct(slot.Data)
	if nil != err {
		return nil, err
	}

	slot, err = c.Slot(a.Counter)
	if nil != err {
		return nil, err
	}
	counter, err := record.UnpackCounter(slot.Data)
	if nil != err {
		return nil, err
	}

	info := &ProductInfo{
		Addresses: a,
		Product:   product,
		Counter:   counter,
	}
	if !history {
		return info, nil
	}

	for n := uint64(0); n < counter.Counter; n += 1 {
		key, _ := c.deriver.FindProgramAddress(processor.PriceSeeds(a.Product, n), c.program)
		slot, err := c.Slot(key)
		if nil != err {
			return nil, err
		}
		entry, err := record.UnpackPrice(slot.Data)
		if nil != err {
			return nil, err
		}
		info.Prices = append(info.Prices, entry)
	}
	return info, nil
}
