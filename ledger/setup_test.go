// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/productd/account"
	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/chain"
	"github.com/bitmark-inc/productd/ledger"
	"github.com/bitmark-inc/productd/processor"
	"github.com/bitmark-inc/productd/storage"
)

const (
	testingDirName = "testing"
	initialFunds   = 10000000
)

var testRent = ledger.Rent{
	LamportsPerByteYear: 10,
	ExemptionThreshold:  2.0,
}

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

// ledger on a fresh database with the product program registered
func setup(t *testing.T, chainName string) *ledger.Ledger {
	setupTestLogger()

	err := storage.Initialise(testingDirName+"/ledger", storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}

	deriver := address.New()
	l, err := ledger.New(chainName, testRent, deriver)
	if nil != err {
		t.Fatalf("ledger error: %s", err)
	}

	err = l.Register(processor.DefaultProgramID, processor.New(deriver))
	if nil != err {
		t.Fatalf("register error: %s", err)
	}
	return l
}

func teardown() {
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

// a funded signer
func newSigner(t *testing.T, l *ledger.Ledger) *account.KeyPair {
	keyPair, err := account.NewKeyPair(true)
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}
	if chain.IsTesting(l.Chain()) {
		_, err = l.Fund(keyPair.Address(), initialFunds)
		if nil != err {
			t.Fatalf("fund error: %s", err)
		}
	}
	return keyPair
}
