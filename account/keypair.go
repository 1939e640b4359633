// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/fault"
)

// KeyPair - a signer identity and the seed it was generated from
type KeyPair struct {
	Seed       string
	Test       bool
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
}

// NewKeyPair - create a new seed and generate its key pair
func NewKeyPair(test bool) (*KeyPair, error) {
	seed, err := NewSeed(test)
	if nil != err {
		return nil, err
	}
	return KeyPairFromSeed(seed)
}

// KeyPairFromSeed - regenerate the key pair of an existing seed
func KeyPairFromSeed(seed string) (*KeyPair, error) {
	ed25519Seed, test, err := unpackSeed(seed)
	if nil != err {
		return nil, err
	}

	privateKey := ed25519.NewKeyFromSeed(ed25519Seed)
	publicKey := privateKey.Public().(ed25519.PublicKey)

	return &KeyPair{
		Seed:       seed,
		Test:       test,
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}, nil
}

// Address - the slot address of the signer
func (keyPair *KeyPair) Address() address.Address {
	a := address.Address{}
	copy(a[:], keyPair.PublicKey)
	return a
}

// Sign - sign a message
func (keyPair *KeyPair) Sign(message []byte) []byte {
	return ed25519.Sign(keyPair.PrivateKey, message)
}

// Verify - check a signature made by the holder of an address
func Verify(signer address.Address, message []byte, signature []byte) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(signer[:]), message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}
