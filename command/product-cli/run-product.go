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

type submitReply struct {
	Slots []address.Address `json:"slots"`
}

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := c.String("name")
	if "" == name {
		return fault.ErrMissingParameters
	}

	keyPair, err := keyPair(c, m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	slots, err := client.CreateProduct(keyPair, c.Uint64("id"), name, c.Float64("price"))
	if nil != err {
		return err
	}

	printJson(m.w, submitReply{Slots: slots})
	return nil
}

func runRename(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := c.String("name")
	if "" == name {
		return fault.ErrMissingParameters
	}

	keyPair, err := keyPair(c, m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	slots, err := client.RenameProduct(keyPair, c.Uint64("id"), name)
	if nil != err {
		return err
	}

	printJson(m.w, submitReply{Slots: slots})
	return nil
}

func runPrice(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	keyPair, err := keyPair(c, m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	slots, err := client.RecordPrice(keyPair, c.Uint64("id"), c.Float64("price"))
	if nil != err {
		return err
	}

	printJson(m.w, submitReply{Slots: slots})
	return nil
}

func runShow(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	var owner address.Address
	if o := c.String("owner"); "" != o {
		a, err := address.FromBase58(o)
		if nil != err {
			return err
		}
		owner = a
	} else {
		name, err := checkName(c.GlobalString("identity"), m)
		if nil != err {
			return err
		}
		id, err := m.config.Identity(name)
		if nil != err {
			return err
		}
		owner = id.Account
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	info, err := client.Show(owner, c.Uint64("id"), c.Bool("history"))
	if nil != err {
		return err
	}

	printJson(m.w, info)
	return nil
}
