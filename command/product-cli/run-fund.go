// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/fault"
)

type fundReply struct {
	Account  address.Address `json:"account"`
	Lamports uint64          `json:"lamports,string"`
}

func runFund(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	lamports := c.Uint64("lamports")
	if 0 == lamports {
		return fault.ErrInvalidLamports
	}

	name, err := checkName(c.GlobalString("identity"), m)
	if nil != err {
		return err
	}
	id, err := m.config.Identity(name)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	balance, err := client.Fund(id.Account, lamports)
	if nil != err {
		return err
	}

	printJson(m.w, fundReply{
		Account:  id.Account,
		Lamports: balance,
	})
	return nil
}
