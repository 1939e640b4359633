// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/productd/account"
	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/util"
)

// limits
const (
	MaximumSlots           = 32
	MaximumDataLength      = 4096
	MaximumTransactionSize = 8192
)

const (
	signerFlag   = 0x01
	writableFlag = 0x02
)

// SlotMeta - a slot named by a transaction and how it may be used
type SlotMeta struct {
	Key        address.Address `json:"key"`
	IsSigner   bool            `json:"signer"`
	IsWritable bool            `json:"writable"`
}

// Transaction - one program invocation
//
// the nonce makes otherwise identical invocations distinct; a
// committed message is never run again
type Transaction struct {
	Program    address.Address `json:"program"`
	Nonce      uint64          `json:"nonce,string"`
	Slots      []SlotMeta      `json:"slots"`
	Data       []byte          `json:"data"`
	Signatures [][]byte        `json:"signatures"`
}

// Message - the signed part of the transaction
func (t *Transaction) Message() []byte {
	message := make([]byte, 0, address.Length+len(t.Slots)*(address.Length+1)+len(t.Data)+16)
	message = append(message, t.Program[:]...)
	message = append(message, util.ToVarint64(t.Nonce)...)
	message = append(message, util.ToVarint64(uint64(len(t.Slots)))...)
	for _, s := range t.Slots {
		flags := byte(0)
		if s.IsSigner {
			flags |= signerFlag
		}
		if s.IsWritable {
			flags |= writableFlag
		}
		message = append(message, s.Key[:]...)
		message = append(message, flags)
	}
	return util.AppendBytes(message, t.Data)
}

// Digest - identifies the signed message
func (t *Transaction) Digest() [32]byte {
	return sha3.Sum256(t.Message())
}

// Pack - message followed by the signatures
func (t *Transaction) Pack() []byte {
	packed := t.Message()
	packed = append(packed, util.ToVarint64(uint64(len(t.Signatures)))...)
	for _, signature := range t.Signatures {
		packed = util.AppendBytes(packed, signature)
	}
	return packed
}

// Signers - addresses of the signer slots in order
func (t *Transaction) Signers() []address.Address {
	signers := make([]address.Address, 0, len(t.Slots))
	for _, s := range t.Slots {
		if s.IsSigner {
			signers = append(signers, s.Key)
		}
	}
	return signers
}

// Sign - replace the signatures with ones from the given key pairs,
// one for each signer slot
func (t *Transaction) Sign(keyPairs ...*account.KeyPair) error {
	message := t.Message()
	signatures := make([][]byte, 0, len(keyPairs))

signers_loop:
	for _, signer := range t.Signers() {
		for _, keyPair := range keyPairs {
			if keyPair.Address() == signer {
				signatures = append(signatures, keyPair.Sign(message))
				continue signers_loop
			}
		}
		return fault.ErrMissingSignature
	}

	t.Signatures = signatures
	return nil
}

// Verify - every signer slot has a valid signature
func (t *Transaction) Verify() error {
	signers := t.Signers()
	if len(signers) != len(t.Signatures) {
		return fault.ErrInvalidSignature
	}

	message := t.Message()
	for i, signer := range signers {
		err := account.Verify(signer, message, t.Signatures[i])
		if nil != err {
			return err
		}
	}
	return nil
}

// Unpack - decode a packed transaction
func Unpack(buffer []byte) (*Transaction, error) {
	if len(buffer) > MaximumTransactionSize {
		return nil, fault.ErrTransactionTooLarge
	}
	if len(buffer) < address.Length {
		return nil, fault.ErrInvalidTransaction
	}

	t := &Transaction{}
	copy(t.Program[:], buffer)
	n := address.Length

	nonce, l := util.FromVarint64(buffer[n:])
	if 0 == l {
		return nil, fault.ErrInvalidTransaction
	}
	t.Nonce = nonce
	n += l

	count, l := util.ClippedVarint64(buffer[n:], 1, MaximumSlots)
	if 0 == l {
		return nil, fault.ErrInvalidSlotCount
	}
	n += l

	t.Slots = make([]SlotMeta, count)
	for i := 0; i < count; i += 1 {
		if n+address.Length+1 > len(buffer) {
			return nil, fault.ErrInvalidTransaction
		}
		copy(t.Slots[i].Key[:], buffer[n:])
		n += address.Length

		flags := buffer[n]
		n += 1
		if 0 != flags&^(signerFlag|writableFlag) {
			return nil, fault.ErrInvalidTransaction
		}
		t.Slots[i].IsSigner = 0 != flags&signerFlag
		t.Slots[i].IsWritable = 0 != flags&writableFlag
	}

	data, l := util.ExtractBytes(buffer[n:], MaximumDataLength)
	if 0 == l {
		return nil, fault.ErrInvalidTransaction
	}
	t.Data = data
	n += l

	signatureCount, l := util.ClippedVarint64(buffer[n:], 0, MaximumSlots)
	if 0 == l {
		return nil, fault.ErrInvalidTransaction
	}
	n += l

	t.Signatures = make([][]byte, signatureCount)
	for i := 0; i < signatureCount; i += 1 {
		signature, l := util.ExtractBytes(buffer[n:], ed25519.SignatureSize)
		if 0 == l || ed25519.SignatureSize != len(signature) {
			return nil, fault.ErrInvalidTransaction
		}
		t.Signatures[i] = signature
		n += l
	}

	if n != len(buffer) {
		return nil, fault.ErrInvalidTransaction
	}
	return t, nil
}
