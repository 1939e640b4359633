// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/productd/fault"
)

// seed parameters
var (
	seedHeader = []byte{0x5a, 0xfe, 0x01}

	seedNonce = [24]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	authSeedIndex = [16]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0xe7,
	}
)

const (
	seedHeaderLength   = 3
	seedPrefixLength   = 1
	secretKeyLength    = 32
	seedChecksumLength = 4

	seedLength = seedHeaderLength + seedPrefixLength + secretKeyLength + seedChecksumLength
)

// NewSeed - create a new seed from secure random data
//
//   seed = base58(5a fe 01 ++ net ++ secret(32) ++ checksum(4))
func NewSeed(test bool) (string, error) {
	secret := make([]byte, secretKeyLength)
	if _, err := rand.Read(secret); nil != err {
		return "", err
	}
	return packSeed(secret, test), nil
}

func packSeed(secret []byte, test bool) string {
	net := byte(0x00)
	if test {
		net = 0x01
	}
	packed := make([]byte, 0, seedLength)
	packed = append(packed, seedHeader...)
	packed = append(packed, net)
	packed = append(packed, secret...)
	checksum := sha3.Sum256(packed)
	packed = append(packed, checksum[:seedChecksumLength]...)

	return base58.Encode(packed)
}

// decode a seed into the ed25519 seed bytes and the network flag
func unpackSeed(seed string) ([]byte, bool, error) {
	packed, err := base58.Decode(seed)
	if nil != err {
		return nil, false, err
	}
	if seedLength != len(packed) {
		return nil, false, fault.ErrInvalidKeyLength
	}

	checksumStart := seedLength - seedChecksumLength
	digest := sha3.Sum256(packed[:checksumStart])
	if !bytes.Equal(digest[:seedChecksumLength], packed[checksumStart:]) {
		return nil, false, fault.ErrSeedChecksumMismatch
	}
	if !bytes.Equal(seedHeader, packed[:seedHeaderLength]) {
		return nil, false, fault.ErrSeedHeaderMismatch
	}

	test := 0x01 == packed[seedHeaderLength]

	var sk [secretKeyLength]byte
	copy(sk[:], packed[seedHeaderLength+seedPrefixLength:checksumStart])

	// sealing a fixed index gives 16 bytes of tag plus 16 bytes of
	// ciphertext, exactly one ed25519 seed
	expanded := secretbox.Seal([]byte{}, authSeedIndex[:], &seedNonce, &sk)
	return expanded[:ed25519.SeedSize], test, nil
}
