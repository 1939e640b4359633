// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/productd/account"
	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/ledger"
)

func testTransaction(t *testing.T) (*ledger.Transaction, *account.KeyPair) {
	keyPair, err := account.NewKeyPair(true)
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}

	tx := &ledger.Transaction{
		Program: address.Address{0x55},
		Slots: []ledger.SlotMeta{
			{Key: keyPair.Address(), IsSigner: true, IsWritable: true},
			{Key: address.Address{0x01}, IsWritable: true},
			{Key: address.Address{0x02}},
		},
		Data: []byte{0x02, 1, 2, 3, 4, 5, 6, 7, 8},
	}
	return tx, keyPair
}

func TestPackUnpack(t *testing.T) {
	tx, keyPair := testTransaction(t)
	tx.Nonce = 300

	err := tx.Sign(keyPair)
	assert.Nil(t, err, "sign")
	assert.Equal(t, 1, len(tx.Signatures), "signature count")

	packed := tx.Pack()
	assert.Equal(t, tx.Message(), packed[:len(tx.Message())], "message prefix")

	unpacked, err := ledger.Unpack(packed)
	assert.Nil(t, err, "unpack")
	assert.Equal(t, tx, unpacked, "unpacked transaction")
	assert.Nil(t, unpacked.Verify(), "verify")
}

func TestMessageFlags(t *testing.T) {
	tx, _ := testTransaction(t)
	message := tx.Message()

	// program, nonce, count, then key ++ flags per slot
	assert.Equal(t, byte(0x55), message[0], "program")
	assert.Equal(t, byte(0), message[32], "nonce")
	assert.Equal(t, byte(3), message[33], "slot count")
	assert.Equal(t, byte(0x03), message[34+32], "signer and writable")
	assert.Equal(t, byte(0x02), message[34+2*32+1], "writable")
	assert.Equal(t, byte(0x00), message[34+3*32+2], "read only")
}

func TestNonceChangesDigest(t *testing.T) {
	tx, keyPair := testTransaction(t)
	_ = tx.Sign(keyPair)
	digest := tx.Digest()

	tx.Nonce = 1
	assert.NotEqual(t, digest, tx.Digest(), "digest with new nonce")
	assert.Equal(t, fault.ErrInvalidSignature, tx.Verify(), "signature covers nonce")
}

func TestSignRequiresEverySigner(t *testing.T) {
	tx, _ := testTransaction(t)

	other, _ := account.NewKeyPair(true)
	err := tx.Sign(other)
	assert.Equal(t, fault.ErrMissingSignature, err, "wrong key")
	assert.Nil(t, tx.Signatures, "no signatures set")

	assert.Equal(t, fault.ErrInvalidSignature, tx.Verify(), "unsigned")
}

func TestVerifyTampered(t *testing.T) {
	tx, keyPair := testTransaction(t)
	_ = tx.Sign(keyPair)

	tx.Data[1] ^= 0xff
	assert.Equal(t, fault.ErrInvalidSignature, tx.Verify(), "tampered data")
}

func TestUnpackFailures(t *testing.T) {
	tx, keyPair := testTransaction(t)
	_ = tx.Sign(keyPair)
	packed := tx.Pack()

	for i := 0; i < len(packed); i += 1 {
		_, err := ledger.Unpack(packed[:i])
		assert.NotNil(t, err, "truncated at: %d", i)
	}

	_, err := ledger.Unpack(append(append([]byte{}, packed...), 0x00))
	assert.Equal(t, fault.ErrInvalidTransaction, err, "trailing byte")

	bad := append([]byte{}, packed...)
	bad[34+32] = 0x04
	_, err = ledger.Unpack(bad)
	assert.Equal(t, fault.ErrInvalidTransaction, err, "unknown flag")

	_, err = ledger.Unpack(make([]byte, ledger.MaximumTransactionSize+1))
	assert.Equal(t, fault.ErrTransactionTooLarge, err, "too large")

	noSlots := make([]byte, 34)
	_, err = ledger.Unpack(noSlots)
	assert.Equal(t, fault.ErrInvalidSlotCount, err, "zero slots")
}
