// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"encoding/hex"

	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/host"
	"github.com/bitmark-inc/productd/ledger"
	rpcledger "github.com/bitmark-inc/productd/rpc/ledger"
	"github.com/bitmark-inc/productd/rpc/node"
)

// Submit - send a signed transaction
func (c *Client) Submit(transaction *ledger.Transaction) ([]address.Address, error) {
	arguments := rpcledger.SubmitArguments{
		Transaction: hex.EncodeToString(transaction.Pack()),
	}
	var reply rpcledger.SubmitReply
	if err := c.call("Ledger.Submit", &arguments, &reply); nil != err {
		return nil, err
	}
	return reply.Slots, nil
}

// Slot - fetch one slot
func (c *Client) Slot(key address.Address) (*host.Slot, error) {
	arguments := rpcledger.SlotArguments{
		Key: key,
	}
	var reply rpcledger.SlotReply
	if err := c.call("Ledger.Slot", &arguments, &reply); nil != err {
		return nil, err
	}

	data, err := hex.DecodeString(reply.Data)
	if nil != err {
		return nil, err
	}
	return &host.Slot{
		Key:      reply.Key,
		Owner:    reply.Owner,
		Lamports: reply.Lamports,
		Data:     data,
	}, nil
}

// Fund - credit a slot on a test chain
func (c *Client) Fund(key address.Address, lamports uint64) (uint64, error) {
	arguments := rpcledger.FundArguments{
		Key:      key,
		Lamports: lamports,
	}
	var reply rpcledger.FundReply
	if err := c.call("Ledger.Fund", &arguments, &reply); nil != err {
		return 0, err
	}
	return reply.Lamports, nil
}

// Info - node status
func (c *Client) Info() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := c.call("Node.Info", &node.InfoArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
