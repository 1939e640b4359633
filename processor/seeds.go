// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/productd/address"
)

// Name - the registered program name
const Name = "product"

const counterSeed = "price"

// DefaultProgramID - program id used when the configuration gives none
var DefaultProgramID = address.Address(sha3.Sum256([]byte("productd:program:" + Name)))

// ProductSeeds - seeds of the product created by owner with id
func ProductSeeds(owner address.Address, id uint64) [][]byte {
	return [][]byte{owner.Bytes(), u64Seed(id)}
}

// CounterSeeds - seeds of a product's price counter
func CounterSeeds(product address.Address) [][]byte {
	return [][]byte{product.Bytes(), []byte(counterSeed)}
}

// PriceSeeds - seeds of a product's n'th price entry
func PriceSeeds(product address.Address, n uint64) [][]byte {
	return [][]byte{product.Bytes(), u64Seed(n)}
}

func u64Seed(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
