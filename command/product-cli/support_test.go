// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/productd/account"
	"github.com/bitmark-inc/productd/command/product-cli/configuration"
	"github.com/bitmark-inc/productd/fault"
)

func TestCheckName(t *testing.T) {
	m := &metadata{
		config: &configuration.Configuration{DefaultIdentity: "first"},
	}

	name, err := checkName("", m)
	assert.Nil(t, err, "default identity")
	assert.Equal(t, "first", name, "wrong default")

	name, err = checkName("second", m)
	assert.Nil(t, err, "given identity")
	assert.Equal(t, "second", name, "wrong name")

	_, err = checkName("", &metadata{})
	assert.Equal(t, fault.ErrIdentityNameRequired, err, "no identity")
}

func TestCheckSeed(t *testing.T) {
	seed, err := checkSeed("", true)
	assert.Nil(t, err, "new seed")
	keyPair, err := account.KeyPairFromSeed(seed)
	assert.Nil(t, err, "generated seed invalid")
	assert.True(t, keyPair.Test, "wrong network")

	same, err := checkSeed(seed, true)
	assert.Nil(t, err, "existing seed")
	assert.Equal(t, seed, same, "seed changed")

	_, err = checkSeed(seed, false)
	assert.Equal(t, fault.ErrInvalidChain, err, "test seed on live network")

	_, err = checkSeed("junk", true)
	assert.NotNil(t, err, "junk seed accepted")
}

func TestCheckConnect(t *testing.T) {
	connect, err := checkConnect(" 127.0.0.1:2130 ")
	assert.Nil(t, err, "connect error")
	assert.Equal(t, "127.0.0.1:2130", connect, "not trimmed")

	_, err = checkConnect("")
	assert.Equal(t, fault.ErrConnectRequired, err, "empty connect")
}

func TestCheckFingerprint(t *testing.T) {
	fingerprint, err := checkFingerprint("")
	assert.Nil(t, err, "empty fingerprint error")
	assert.Equal(t, "", fingerprint, "empty fingerprint")

	hexFingerprint := "00112233445566778899AABBCCDDEEFF00112233445566778899aabbccddeeff"
	fingerprint, err = checkFingerprint(" " + hexFingerprint + " ")
	assert.Nil(t, err, "fingerprint error")
	assert.Equal(t, "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff", fingerprint, "not normalised")

	_, err = checkFingerprint("0011")
	assert.Equal(t, fault.ErrInvalidFingerprint, err, "short fingerprint")
}

func TestPrintJson(t *testing.T) {
	var b bytes.Buffer
	printJson(&b, fundReply{Lamports: 12})
	assert.Contains(t, b.String(), `"lamports": "12"`, "wrong output")
}
