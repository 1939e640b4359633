// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/counter"
	"github.com/bitmark-inc/productd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Pool - the stored slots
type Pool interface {
	Count() int
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Chain   string
	Program address.Address
	Pool    Pool
	counter *counter.Counter
}

// New - create the node service
func New(log *logger.L, pool Pool, start time.Time, version string, chain string, program address.Address, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Chain:   chain,
		Program: program,
		Pool:    pool,
		counter: counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain   string          `json:"chain"`
	Program address.Address `json:"program"`
	RPCs    uint64          `json:"rpcs"`
	Slots   int             `json:"slots"`
	Version string          `json:"version"`
	Uptime  string          `json:"uptime"`
}

// Info - return some information about this node
func (node *Node) Info(arguments *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Chain = node.Chain
	reply.Program = node.Program
	reply.RPCs = node.counter.Uint64()
	if nil != node.Pool {
		reply.Slots = node.Pool.Count()
	}
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()

	return nil
}
