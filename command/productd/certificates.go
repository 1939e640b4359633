// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/pem"
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"

	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/rpc/certificate"
	"github.com/bitmark-inc/productd/util"
)

// create a self-signed certificate and return its fingerprint
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) ([32]byte, error) {
	var fin [32]byte

	if util.EnsureFileExists(certificateFileName) {
		return fin, fault.ErrCertificateFileExists
	}

	if util.EnsureFileExists(privateKeyFileName) {
		return fin, fault.ErrKeyFileExists
	}

	org := "productd self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if nil != err {
		return fin, err
	}

	block, _ := pem.Decode(cert)
	if nil == block {
		return fin, fault.ErrInvalidFingerprint
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); nil != err {
		return fin, err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); nil != err {
		_ = os.Remove(certificateFileName)
		return fin, err
	}

	return certificate.Fingerprint(block.Bytes), nil
}
