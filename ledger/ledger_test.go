// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/productd/account"
	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/chain"
	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/host"
	"github.com/bitmark-inc/productd/instruction"
	"github.com/bitmark-inc/productd/ledger"
	"github.com/bitmark-inc/productd/processor"
	"github.com/bitmark-inc/productd/record"
)

var deriver = address.New()

func productAddress(owner address.Address, id uint64) address.Address {
	a, _ := deriver.FindProgramAddress(processor.ProductSeeds(owner, id), processor.DefaultProgramID)
	return a
}

func counterAddress(product address.Address) address.Address {
	a, _ := deriver.FindProgramAddress(processor.CounterSeeds(product), processor.DefaultProgramID)
	return a
}

func priceAddress(product address.Address, n uint64) address.Address {
	a, _ := deriver.FindProgramAddress(processor.PriceSeeds(product, n), processor.DefaultProgramID)
	return a
}

func pricingTransaction(t *testing.T, signer *account.KeyPair, id uint64, n uint64, command instruction.Command) *ledger.Transaction {
	product := productAddress(signer.Address(), id)
	tx := &ledger.Transaction{
		Program: processor.DefaultProgramID,
		Slots: []ledger.SlotMeta{
			{Key: signer.Address(), IsSigner: true, IsWritable: true},
			{Key: product, IsWritable: true},
			{Key: counterAddress(product), IsWritable: true},
			{Key: priceAddress(product, n), IsWritable: true},
			{Key: host.AllocationService},
		},
		Data: command.Pack(),
	}
	err := tx.Sign(signer)
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}
	return tx
}

func readSlot(t *testing.T, l *ledger.Ledger, key address.Address) *host.Slot {
	slot, err := l.Slot(key)
	if nil != err {
		t.Fatalf("slot error: %s", err)
	}
	return slot
}

func TestMinimumBalance(t *testing.T) {
	setupTestLogger()
	defer teardown()

	l, err := ledger.New(chain.Local, testRent, deriver)
	assert.Nil(t, err, "new")
	assert.Equal(t, uint64((128+1000)*10*2), l.MinimumBalance(1000), "1000 bytes")
	assert.Equal(t, uint64(128*10*2), l.MinimumBalance(0), "empty")

	_, err = ledger.New("nochain", testRent, deriver)
	assert.Equal(t, fault.ErrInvalidChain, err, "bad chain")
}

func TestWidgetThroughLedger(t *testing.T) {
	l := setup(t, chain.Local)
	defer teardown()

	alice := newSigner(t, l)
	product := productAddress(alice.Address(), 1)

	start := time.Now().Unix()
	tx := pricingTransaction(t, alice, 1, 0, instruction.CreateProduct{ID: 1, Name: "Widget", Price: 9.99})
	touched, err := l.Invoke(tx)
	assert.Nil(t, err, "create")
	assert.Equal(t, 4, len(touched), "payer, product, counter and entry changed")

	p, err := record.UnpackProduct(readSlot(t, l, product).Data)
	assert.Nil(t, err, "product")
	assert.Equal(t, "Widget", p.Name, "name")
	assert.Equal(t, 9.99, p.Price, "price")

	c, err := record.UnpackCounter(readSlot(t, l, counterAddress(product)).Data)
	assert.Nil(t, err, "counter")
	assert.Equal(t, uint64(1), c.Counter, "counter")

	e, err := record.UnpackPrice(readSlot(t, l, priceAddress(product, 0)).Data)
	assert.Nil(t, err, "entry")
	assert.Equal(t, 9.99, e.Price, "entry price")
	assert.True(t, e.Timestamp >= start, "entry timestamp")

	tx = pricingTransaction(t, alice, 1, 1, instruction.RecordPrice{Price: 12.50})
	_, err = l.Invoke(tx)
	assert.Nil(t, err, "record price")

	p, _ = record.UnpackProduct(readSlot(t, l, product).Data)
	assert.Equal(t, 12.50, p.Price, "new price")
	c, _ = record.UnpackCounter(readSlot(t, l, counterAddress(product)).Data)
	assert.Equal(t, uint64(2), c.Counter, "counter")
	e, _ = record.UnpackPrice(readSlot(t, l, priceAddress(product, 0)).Data)
	assert.Equal(t, 9.99, e.Price, "entry 0 unchanged")
	e, _ = record.UnpackPrice(readSlot(t, l, priceAddress(product, 1)).Data)
	assert.Equal(t, 12.50, e.Price, "entry 1")

	cost := l.MinimumBalance(record.MaximumProductSize) + l.MinimumBalance(record.CounterSize) + 2*l.MinimumBalance(record.PriceSize)
	assert.Equal(t, uint64(initialFunds)-cost, readSlot(t, l, alice.Address()).Lamports, "payer balance")
}

func TestFailureCommitsNothing(t *testing.T) {
	l := setup(t, chain.Local)
	defer teardown()

	alice := newSigner(t, l)
	product := productAddress(alice.Address(), 7)

	// entry slot for n=1 does not match a fresh counter, so the
	// product and counter allocations are rolled back
	tx := pricingTransaction(t, alice, 7, 1, instruction.CreateProduct{ID: 7, Name: "Widget", Price: 1})
	_, err := l.Invoke(tx)
	assert.Equal(t, fault.ErrAddressMismatch, err, "create")

	assert.False(t, readSlot(t, l, product).IsAllocated(), "product allocated")
	assert.False(t, readSlot(t, l, counterAddress(product)).IsAllocated(), "counter allocated")
	assert.Equal(t, uint64(initialFunds), readSlot(t, l, alice.Address()).Lamports, "payer charged")
}

func TestDuplicateCreate(t *testing.T) {
	l := setup(t, chain.Local)
	defer teardown()

	alice := newSigner(t, l)
	_, err := l.Invoke(pricingTransaction(t, alice, 1, 0, instruction.CreateProduct{ID: 1, Name: "Widget", Price: 9.99}))
	assert.Nil(t, err, "first create")

	_, err = l.Invoke(pricingTransaction(t, alice, 1, 0, instruction.CreateProduct{ID: 1, Name: "Other", Price: 1}))
	assert.Equal(t, fault.ErrAlreadyInitialized, err, "second create")

	p, _ := record.UnpackProduct(readSlot(t, l, productAddress(alice.Address(), 1)).Data)
	assert.Equal(t, "Widget", p.Name, "name")
}

func TestInsufficientFunds(t *testing.T) {
	l := setup(t, chain.Local)
	defer teardown()

	poor, _ := account.NewKeyPair(true)
	_, err := l.Fund(poor.Address(), 1)
	assert.Nil(t, err, "fund")

	_, err = l.Invoke(pricingTransaction(t, poor, 1, 0, instruction.CreateProduct{ID: 1, Name: "Widget", Price: 9.99}))
	assert.Equal(t, fault.ErrInsufficientFunds, err, "create")
}

func TestInvocationChecks(t *testing.T) {
	l := setup(t, chain.Local)
	defer teardown()

	alice := newSigner(t, l)
	create := instruction.CreateProduct{ID: 1, Name: "Widget", Price: 9.99}

	tx := pricingTransaction(t, alice, 1, 0, create)
	tx.Signatures[0][0] ^= 0xff
	_, err := l.Invoke(tx)
	assert.Equal(t, fault.ErrInvalidSignature, err, "bad signature")

	tx = pricingTransaction(t, alice, 1, 0, create)
	tx.Program = address.Address{0x99}
	_ = tx.Sign(alice)
	_, err = l.Invoke(tx)
	assert.Equal(t, fault.ErrUnknownProgram, err, "unknown program")

	tx = pricingTransaction(t, alice, 1, 0, create)
	tx.Slots[1].IsWritable = false
	_ = tx.Sign(alice)
	_, err = l.Invoke(tx)
	assert.Equal(t, fault.ErrReadOnlyModified, err, "read only product")

	tx = pricingTransaction(t, alice, 1, 0, create)
	tx.Slots[2] = tx.Slots[1]
	_ = tx.Sign(alice)
	_, err = l.Invoke(tx)
	assert.Equal(t, fault.ErrDuplicateSlot, err, "duplicate slot")

	_, err = l.Invoke(&ledger.Transaction{Program: processor.DefaultProgramID})
	assert.Equal(t, fault.ErrInvalidSlotCount, err, "no slots")
}

// programs that break the host rules
type rogueProgram func(slots []*host.Slot)

func (r rogueProgram) Process(runtime host.Runtime, program address.Address, slots []*host.Slot, data []byte) error {
	r(slots)
	return nil
}

func TestHostRules(t *testing.T) {
	l := setup(t, chain.Local)
	defer teardown()

	alice := newSigner(t, l)
	_, err := l.Invoke(pricingTransaction(t, alice, 1, 0, instruction.CreateProduct{ID: 1, Name: "Widget", Price: 9.99}))
	assert.Nil(t, err, "create")
	product := productAddress(alice.Address(), 1)

	rogue := address.Address{0xee}
	tests := []struct {
		name    string
		program rogueProgram
		err     error
	}{
		{
			name: "mint lamports",
			program: func(slots []*host.Slot) {
				slots[0].Lamports += 1
			},
			err: fault.ErrUnbalancedTransaction,
		},
		{
			name: "take lamports from signer",
			program: func(slots []*host.Slot) {
				slots[0].Lamports -= 5
				slots[1].Lamports += 5
			},
			err: fault.ErrExternalDataModified,
		},
		{
			name: "write another program's data",
			program: func(slots []*host.Slot) {
				slots[1].Data[10] ^= 0xff
			},
			err: fault.ErrExternalDataModified,
		},
		{
			name: "change owner",
			program: func(slots []*host.Slot) {
				slots[1].Owner = rogue
			},
			err: fault.ErrExternalDataModified,
		},
	}

	for i, test := range tests {
		id := address.Address{0xee, byte(i)}
		err := l.Register(id, test.program)
		assert.Nil(t, err, "%s: register", test.name)

		tx := &ledger.Transaction{
			Program: id,
			Slots: []ledger.SlotMeta{
				{Key: alice.Address(), IsSigner: true, IsWritable: true},
				{Key: product, IsWritable: true},
			},
		}
		_ = tx.Sign(alice)

		_, err = l.Invoke(tx)
		assert.Equal(t, test.err, err, test.name)
	}

	p, _ := record.UnpackProduct(readSlot(t, l, product).Data)
	assert.Equal(t, "Widget", p.Name, "product intact")

	err = l.Register(processor.DefaultProgramID, processor.New(deriver))
	assert.Equal(t, fault.ErrProgramAlreadyRegistered, err, "register twice")
}

func TestFund(t *testing.T) {
	l := setup(t, chain.Bitmark)
	defer teardown()

	key := address.Address{0x42}
	_, err := l.Fund(key, 100)
	assert.Equal(t, fault.ErrOnlyOnTestChain, err, "fund on live chain")
	assert.False(t, readSlot(t, l, key).IsAllocated(), "funded")
}

func TestFundTestChain(t *testing.T) {
	l := setup(t, chain.Testing)
	defer teardown()

	key := address.Address{0x42}
	balance, err := l.Fund(key, 100)
	assert.Nil(t, err, "fund")
	assert.Equal(t, uint64(100), balance, "balance")

	balance, err = l.Fund(key, 50)
	assert.Nil(t, err, "fund again")
	assert.Equal(t, uint64(150), balance, "balance")

	_, err = l.Fund(key, 0)
	assert.Equal(t, fault.ErrInvalidLamports, err, "zero")

	_, err = l.Fund(key, ^uint64(0))
	assert.Equal(t, fault.ErrLamportsOverflow, err, "overflow")
	assert.Equal(t, uint64(150), readSlot(t, l, key).Lamports, "unchanged")
}

func renameTransaction(t *testing.T, signer *account.KeyPair, id uint64, nonce uint64, name string) *ledger.Transaction {
	tx := &ledger.Transaction{
		Program: processor.DefaultProgramID,
		Nonce:   nonce,
		Slots: []ledger.SlotMeta{
			{Key: signer.Address(), IsSigner: true},
			{Key: productAddress(signer.Address(), id), IsWritable: true},
		},
		Data: instruction.RenameProduct{Name: name}.Pack(),
	}
	err := tx.Sign(signer)
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}
	return tx
}

func TestReplayRejected(t *testing.T) {
	l := setup(t, chain.Local)
	defer teardown()

	alice := newSigner(t, l)
	product := productAddress(alice.Address(), 1)
	_, err := l.Invoke(pricingTransaction(t, alice, 1, 0, instruction.CreateProduct{ID: 1, Name: "Widget", Price: 9.99}))
	assert.Nil(t, err, "create")

	first := renameTransaction(t, alice, 1, 1, "First")
	_, err = l.Invoke(first)
	assert.Nil(t, err, "rename first")

	_, err = l.Invoke(renameTransaction(t, alice, 1, 2, "Second"))
	assert.Nil(t, err, "rename second")

	captured, err := ledger.Unpack(first.Pack())
	assert.Nil(t, err, "unpack captured")
	_, err = l.Invoke(captured)
	assert.Equal(t, fault.ErrAlreadyProcessed, err, "replay")

	p, _ := record.UnpackProduct(readSlot(t, l, product).Data)
	assert.Equal(t, "Second", p.Name, "later rename kept")

	// same command under a fresh nonce is a new invocation
	_, err = l.Invoke(renameTransaction(t, alice, 1, 3, "First"))
	assert.Nil(t, err, "rename with new nonce")
	p, _ = record.UnpackProduct(readSlot(t, l, product).Data)
	assert.Equal(t, "First", p.Name, "renamed again")
}

func TestFailedTransactionNotRecorded(t *testing.T) {
	l := setup(t, chain.Local)
	defer teardown()

	poor, _ := account.NewKeyPair(true)
	_, err := l.Fund(poor.Address(), 1)
	assert.Nil(t, err, "fund")

	tx := pricingTransaction(t, poor, 1, 0, instruction.CreateProduct{ID: 1, Name: "Widget", Price: 9.99})
	_, err = l.Invoke(tx)
	assert.Equal(t, fault.ErrInsufficientFunds, err, "create without funds")

	_, err = l.Fund(poor.Address(), initialFunds)
	assert.Nil(t, err, "fund again")

	_, err = l.Invoke(tx)
	assert.Nil(t, err, "signed create runs once funded")
	_, err = l.Invoke(tx)
	assert.Equal(t, fault.ErrAlreadyProcessed, err, "second run")
}
