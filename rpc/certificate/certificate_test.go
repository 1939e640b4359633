// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/rpc/certificate"
	"github.com/bitmark-inc/productd/rpc/fixtures"
)

func TestGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	tlsConfig, fingerprint, err := certificate.Get(
		logger.New(fixtures.LogCategory),
		"test",
		fixtures.Certificate,
		fixtures.Key,
	)
	assert.Nil(t, err, "wrong Get")

	pair, _ := tls.X509KeyPair([]byte(fixtures.Certificate), []byte(fixtures.Key))

	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair.Certificate, tlsConfig.Certificates[0].Certificate, "wrong config")
	assert.Equal(t, uint16(tls.VersionTLS12), tlsConfig.MinVersion, "wrong minimum version")
}

func TestGetBadKey(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, _, err := certificate.Get(
		logger.New(fixtures.LogCategory),
		"test",
		fixtures.Certificate,
		"not a key",
	)
	assert.NotNil(t, err, "bad key accepted")
}

func TestGetExpired(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cert, key, err := certgen.NewTLSCertPair("expiring", time.Now().Add(time.Second), false, nil)
	assert.Nil(t, err, "certgen")

	time.Sleep(2 * time.Second)

	_, _, err = certificate.Get(logger.New(fixtures.LogCategory), "test", string(cert), string(key))
	assert.Equal(t, fault.ErrCertificateExpired, err, "expired certificate accepted")
}

func TestParseFingerprint(t *testing.T) {
	expected := sha3.Sum256([]byte("certificate"))

	fin, err := certificate.ParseFingerprint(" " + hex.EncodeToString(expected[:]) + "\n")
	assert.Nil(t, err, "parse")
	assert.Equal(t, expected, fin, "fingerprint")

	_, err = certificate.ParseFingerprint("abcd")
	assert.Equal(t, fault.ErrInvalidFingerprint, err, "short")

	_, err = certificate.ParseFingerprint("zz")
	assert.Equal(t, fault.ErrInvalidFingerprint, err, "not hex")
}

// handshake over loopback and return the client side error
func handshake(t *testing.T, server *tls.Config, client *tls.Config) error {
	l, err := tls.Listen("tcp", "127.0.0.1:0", server)
	if nil != err {
		t.Fatalf("listen error: %s", err)
	}
	defer l.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := l.Accept()
		if nil != err {
			return
		}
		_ = conn.(*tls.Conn).Handshake()
		conn.Close()
	}()

	conn, err := tls.Dial("tcp", l.Addr().String(), client)
	if nil == err {
		conn.Close()
	}
	<-done
	return err
}

func TestPin(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	server, fingerprint, err := certificate.Get(logger.New(fixtures.LogCategory), "test", fixtures.Certificate, fixtures.Key)
	assert.Nil(t, err, "get")

	err = handshake(t, server, certificate.Pin(fingerprint))
	assert.Nil(t, err, "pinned handshake")

	other := fingerprint
	other[0] ^= 0xff
	err = handshake(t, server, certificate.Pin(other))
	assert.True(t, errors.Is(err, fault.ErrFingerprintMismatch), "wrong fingerprint accepted: %v", err)
}
