// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/productd/fault"
)

// Get - TLS server configuration for a PEM certificate and key
//
// the certificate must be currently valid; also returns its fingerprint
func Get(log *logger.L, name, certificate, key string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if err != nil {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	leaf, err := x509.ParseCertificate(keyPair.Certificate[0])
	if nil != err {
		log.Errorf("%s failed to parse certificate: %v", name, err)
		return nil, fin, err
	}
	now := time.Now()
	if now.Before(leaf.NotBefore) || now.After(leaf.NotAfter) {
		log.Errorf("%s certificate valid: %s to %s", name, leaf.NotBefore, leaf.NotAfter)
		return nil, fin, fault.ErrCertificateExpired
	}
	keyPair.Leaf = leaf

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
	}

	fin = Fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}

// Fingerprint - compute the fingerprint of a certificate
//
// FreeBSD: openssl x509 -outform DER -in productd-local-rpc.crt | sha3sum -a 256
func Fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}

// ParseFingerprint - decode the hex form logged by productd
func ParseFingerprint(s string) ([32]byte, error) {
	var fin [32]byte
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if nil != err || len(fin) != len(b) {
		return fin, fault.ErrInvalidFingerprint
	}
	copy(fin[:], b)
	return fin, nil
}

// Pin - client configuration accepting only a server certificate with
// the given fingerprint
//
// productd certificates are self-signed so the chain is not verified
func Pin(fin [32]byte) *tls.Config {
	return &tls.Config{
		InsecureSkipVerify: true,
		MinVersion:         tls.VersionTLS12,
		VerifyPeerCertificate: func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			if 0 == len(rawCerts) || Fingerprint(rawCerts[0]) != fin {
				return fault.ErrFingerprintMismatch
			}
			return nil
		},
	}
}
