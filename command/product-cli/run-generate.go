// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/productd/account"
	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/chain"
)

type generateReply struct {
	Seed    string          `json:"seed"`
	Account address.Address `json:"account"`
	TestNet bool            `json:"testnet"`
}

func runGenerate(c *cli.Context) error {

	testnet := chain.IsTesting(c.GlobalString("network"))

	keyPair, err := account.NewKeyPair(testnet)
	if nil != err {
		return err
	}

	printJson(c.App.Writer, generateReply{
		Seed:    keyPair.Seed,
		Account: keyPair.Address(),
		TestNet: keyPair.Test,
	})
	return nil
}
