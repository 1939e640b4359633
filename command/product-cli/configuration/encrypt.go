// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/bitmark-inc/productd/account"
	"github.com/bitmark-inc/productd/fault"
)

// argon2id parameters
const (
	argonIterations  = 5
	argonMemory      = 1 << 16
	argonParallelism = 4
	argonKeyLength   = 32

	nonceLength   = 24
	maxDataLength = 1024
)

// decryptIdentity - check if password unlocks data in the configuration file
func decryptIdentity(password string, identity *Identity) (*account.KeyPair, error) {

	salt := new(Salt)
	err := salt.UnmarshalText([]byte(identity.Salt))
	if nil != err || "" == identity.Data {
		return nil, fault.ErrCryptoFailed
	}

	seed, err := decryptData(identity.Data, generateKey(password, salt))
	if nil != err {
		return nil, fault.ErrWrongPassword
	}

	return account.KeyPairFromSeed(seed)
}

func hashPassword(password string) (*Salt, *[32]byte, error) {
	salt, err := MakeSalt()
	if nil != err {
		return nil, nil, err
	}
	return salt, generateKey(password, salt), nil
}

func generateKey(password string, salt *Salt) *[32]byte {
	hash := argon2.IDKey([]byte(password), salt.Bytes(), argonIterations, argonMemory, argonParallelism, argonKeyLength)

	var secretKey [32]byte
	copy(secretKey[:], hash)
	return &secretKey
}

// encrypt a string and convert to hex
func encryptData(data string, secretKey *[32]byte) (string, error) {

	if 0 == len(data) || len(data) > maxDataLength {
		return "", fault.ErrCryptoFailed
	}

	// a fresh random nonce is stored ahead of the ciphertext
	var nonce [nonceLength]byte
	if _, err := rand.Read(nonce[:]); nil != err {
		return "", fault.ErrCryptoFailed
	}

	ciphertext := secretbox.Seal(nonce[:], []byte(data), &nonce, secretKey)
	return hex.EncodeToString(ciphertext), nil
}

// decrypt a hex string and return plaintext
func decryptData(ciphertext string, secretKey *[32]byte) (string, error) {

	encrypted, err := hex.DecodeString(ciphertext)
	if nil != err {
		return "", err
	}
	if len(encrypted) <= nonceLength {
		return "", fault.ErrCryptoFailed
	}

	var nonce [nonceLength]byte
	copy(nonce[:], encrypted[:nonceLength])

	decrypted, ok := secretbox.Open(nil, encrypted[nonceLength:], &nonce, secretKey)
	if !ok {
		return "", fault.ErrCryptoFailed
	}

	return string(decrypted), nil
}
