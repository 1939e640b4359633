// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/productd/account"
	"github.com/bitmark-inc/productd/command/product-cli/rpccalls"
	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/rpc/certificate"
)

func checkName(name string, m *metadata) (string, error) {
	if "" == name && nil != m.config {
		name = m.config.DefaultIdentity
	}
	if "" == name {
		return "", fault.ErrIdentityNameRequired
	}
	return name, nil
}

func checkConnect(connect string) (string, error) {
	connect = strings.TrimSpace(connect)
	if "" == connect {
		return "", fault.ErrConnectRequired
	}
	return connect, nil
}

// optional; the hex form productd logs at start
func checkFingerprint(fingerprint string) (string, error) {
	fingerprint = strings.TrimSpace(fingerprint)
	if "" == fingerprint {
		return "", nil
	}
	fin, err := certificate.ParseFingerprint(fingerprint)
	if nil != err {
		return "", err
	}
	return hex.EncodeToString(fin[:]), nil
}

func checkDescription(description string) (string, error) {
	if "" == description {
		return "", fault.ErrMissingParameters
	}
	return description, nil
}

// blank seed generates a new one
func checkSeed(seed string, testnet bool) (string, error) {
	if "" == seed {
		return account.NewSeed(testnet)
	}
	keyPair, err := account.KeyPairFromSeed(seed)
	if nil != err {
		return "", err
	}
	if keyPair.Test != testnet {
		return "", fault.ErrInvalidChain
	}
	return seed, nil
}

// true if a directory
func checkFileExists(name string) (bool, error) {
	info, err := os.Stat(name)
	if nil != err {
		return false, err
	}
	return info.IsDir(), nil
}

// the current identity's key pair, prompting for the password when
// none was given
func keyPair(c *cli.Context, m *metadata) (*account.KeyPair, error) {
	name, err := checkName(c.GlobalString("identity"), m)
	if nil != err {
		return nil, err
	}

	password := c.GlobalString("password")
	if "" == password {
		password, err = promptCheckPassword()
		if nil != err {
			return nil, err
		}
	}

	return m.config.KeyPair(password, name)
}

func connect(m *metadata) (*rpccalls.Client, error) {
	return rpccalls.NewClient(m.config.Connect, m.config.Fingerprint, m.config.Program, m.verbose, m.e)
}

func printJson(handle io.Writer, message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		fmt.Fprintf(handle, "formatting error: %s", err)
		return
	}
	fmt.Fprintf(handle, "%s\n", b)
}
