// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/counter"
	"github.com/bitmark-inc/productd/rpc/ledger"
	"github.com/bitmark-inc/productd/rpc/node"
	"github.com/bitmark-inc/productd/storage"
)

// Create - an RPC server with the Ledger and Node services registered
func Create(log *logger.L, version string, host ledger.Host, program address.Address, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	var pool node.Pool
	if nil != storage.Pool.Slots {
		pool = storage.Pool.Slots
	}

	server := rpc.NewServer()

	_ = server.Register(ledger.New(log, host))
	_ = server.Register(node.New(log, pool, start, version, host.Chain(), program, rpcCount))

	return server
}
