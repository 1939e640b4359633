// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/rpc/certificate"
)

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	deriver address.Deriver
	program address.Address
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a productd
//
// a non-empty fingerprint pins the server certificate
func NewClient(connect string, fingerprint string, program address.Address, verbose bool, handle io.Writer) (*Client, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}
	if "" != fingerprint {
		fin, err := certificate.ParseFingerprint(fingerprint)
		if nil != err {
			return nil, err
		}
		tlsConfig = certificate.Pin(fin)
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if nil != err {
		return nil, err
	}

	return newClient(conn, program, verbose, handle), nil
}

func newClient(conn net.Conn, program address.Address, verbose bool, handle io.Writer) *Client {
	return &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		deriver: address.New(),
		program: program,
		verbose: verbose,
		handle:  handle,
	}
}

// Close - shutdown the productd connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}

func (c *Client) call(method string, arguments interface{}, reply interface{}) error {
	if c.verbose {
		fmt.Fprintf(c.handle, "%s: %+v\n", method, arguments)
	}
	err := c.client.Call(method, arguments, reply)
	if nil != err {
		return err
	}
	if c.verbose {
		fmt.Fprintf(c.handle, "reply: %+v\n", reply)
	}
	return nil
}
