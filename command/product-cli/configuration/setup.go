// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/productd/account"
	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/fault"
)

// Configuration - configuration file data format
type Configuration struct {
	DefaultIdentity string              `json:"default_identity"`
	TestNet         bool                `json:"testnet"`
	Connect         string              `json:"connect"`
	Fingerprint     string              `json:"fingerprint,omitempty"`
	Program         address.Address     `json:"program"`
	Identities      map[string]Identity `json:"identities"`
}

// Identity - mix of plain and encrypted data
type Identity struct {
	Description string          `json:"description"`
	Account     address.Address `json:"account"`
	Data        string          `json:"data"`
	Salt        string          `json:"salt"`
}

// Load - read the configuration
func Load(filename string) (*Configuration, error) {

	filename, err := filepath.Abs(filepath.Clean(filename))
	if nil != err {
		return nil, err
	}

	f, err := os.Open(filename)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	options := &Configuration{}
	err = json.NewDecoder(f).Decode(options)
	if nil != err {
		return nil, err
	}
	if nil == options.Identities {
		options.Identities = make(map[string]Identity)
	}
	return options, nil
}

// Save - write the configuration, keeping the previous file as a backup
func Save(filename string, configuration *Configuration) error {

	tempFile := filename + ".new"
	previousFile := filename + ".bk"

	buffer, err := json.MarshalIndent(configuration, "", "  ")
	if nil != err {
		return err
	}

	_ = os.Remove(tempFile)
	if err := ioutil.WriteFile(tempFile, buffer, 0600); nil != err {
		return err
	}

	if err := os.Remove(previousFile); nil != err && !os.IsNotExist(err) {
		return err
	}
	if err := os.Rename(filename, previousFile); nil != err && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tempFile, filename)
}

// Identity - find identity for a given name
func (config *Configuration) Identity(name string) (*Identity, error) {
	id, ok := config.Identities[name]
	if !ok {
		return nil, fault.ErrNotFoundIdentity
	}
	return &id, nil
}

// KeyPair - find identity for a given name and decrypt its key pair
func (config *Configuration) KeyPair(password string, name string) (*account.KeyPair, error) {
	id, err := config.Identity(name)
	if nil != err {
		return nil, err
	}
	return decryptIdentity(password, id)
}

// AddIdentity - store encrypted identity
func (config *Configuration) AddIdentity(name string, description string, seed string, password string) error {

	if "" == name {
		return fault.ErrIdentityNameRequired
	}
	if "" == password {
		return fault.ErrPasswordRequired
	}
	if _, ok := config.Identities[name]; ok {
		return fault.ErrIdentityExists
	}

	keyPair, err := account.KeyPairFromSeed(seed)
	if nil != err {
		return err
	}

	salt, secretKey, err := hashPassword(password)
	if nil != err {
		return err
	}

	encrypted, err := encryptData(seed, secretKey)
	if nil != err {
		return err
	}

	if nil == config.Identities {
		config.Identities = make(map[string]Identity)
	}
	config.Identities[name] = Identity{
		Description: description,
		Account:     keyPair.Address(),
		Data:        encrypted,
		Salt:        salt.String(),
	}

	return nil
}
