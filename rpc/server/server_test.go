// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/chain"
	"github.com/bitmark-inc/productd/counter"
	"github.com/bitmark-inc/productd/rpc/fixtures"
	"github.com/bitmark-inc/productd/rpc/ledger"
	"github.com/bitmark-inc/productd/rpc/mocks"
	"github.com/bitmark-inc/productd/rpc/node"
	"github.com/bitmark-inc/productd/rpc/server"
)

func serve(t *testing.T, r *rpc.Server) *rpc.Client {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if nil != err {
		t.Fatalf("listen error: %s", err)
	}
	t.Cleanup(func() { l.Close() })

	go func() {
		for {
			conn, err := l.Accept()
			if nil != err {
				return
			}
			go r.ServeCodec(jsonrpc.NewServerCodec(conn))
		}
	}()

	conn, err := net.Dial("tcp", l.Addr().String())
	if nil != err {
		t.Fatalf("dial error: %s", err)
	}
	client := jsonrpc.NewClient(conn)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestCreate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	h := mocks.NewMockHost(ctl)
	h.EXPECT().Chain().Return(chain.Local).AnyTimes()

	key := address.Address{0x07}
	h.EXPECT().Fund(key, uint64(1000)).Return(uint64(1000), nil).Times(1)

	program := address.Address{0x99}
	c := counter.Counter(1)
	r := server.Create(logger.New(fixtures.LogCategory), "1.0", h, program, &c)

	client := serve(t, r)

	var info node.InfoReply
	err := client.Call("Node.Info", node.InfoArguments{}, &info)
	assert.Nil(t, err, "wrong Node.Info")
	assert.Equal(t, chain.Local, info.Chain, "wrong chain")
	assert.Equal(t, program, info.Program, "wrong program")
	assert.Equal(t, "1.0", info.Version, "wrong version")
	assert.Equal(t, uint64(1), info.RPCs, "wrong rpc count")

	var fund ledger.FundReply
	err = client.Call("Ledger.Fund", ledger.FundArguments{Key: key, Lamports: 1000}, &fund)
	assert.Nil(t, err, "wrong Ledger.Fund")
	assert.Equal(t, uint64(1000), fund.Lamports, "wrong balance")

	var submit ledger.SubmitReply
	err = client.Call("Ledger.Submit", ledger.SubmitArguments{}, &submit)
	assert.NotNil(t, err, "empty submit accepted")
}
