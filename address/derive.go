// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"filippo.io/edwards25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/productd/fault"
)

// derivation limits
const (
	MaximumSeeds      = 16
	MaximumSeedLength = 32
)

// appended to every derivation to separate it from other uses of the hash
var marker = []byte("ProgramDerivedAddress")

// Deriver - compute canonical program owned addresses from seeds
type Deriver interface {
	CreateProgramAddress(seeds [][]byte, program Address) (Address, error)
	FindProgramAddress(seeds [][]byte, program Address) (Address, uint8)
}

type offCurve struct{}

// New - the SHA3-256 off-curve deriver
func New() Deriver {
	return offCurve{}
}

// CreateProgramAddress - derive the address for a complete seed list
// (including any bump seed)
//
// fails if the seeds exceed the limits or produce an on-curve point
func (offCurve) CreateProgramAddress(seeds [][]byte, program Address) (Address, error) {
	if len(seeds) > MaximumSeeds {
		return Address{}, fault.ErrMaxSeedLengthExceeded
	}
	for _, seed := range seeds {
		if len(seed) > MaximumSeedLength {
			return Address{}, fault.ErrMaxSeedLengthExceeded
		}
	}

	h := sha3.New256()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(program[:])
	h.Write(marker)

	a := Address{}
	copy(a[:], h.Sum(nil))

	if IsOnCurve(a) {
		return Address{}, fault.ErrInvalidSeeds
	}
	return a, nil
}

// FindProgramAddress - search for the first off-curve address using
// bump seeds 255, 254, … 0
func (d offCurve) FindProgramAddress(seeds [][]byte, program Address) (Address, uint8) {
	full := make([][]byte, len(seeds)+1)
	copy(full, seeds)

	for bump := 255; bump >= 0; bump -= 1 {
		full[len(seeds)] = []byte{byte(bump)}
		a, err := d.CreateProgramAddress(full, program)
		if nil == err {
			return a, uint8(bump)
		}
		if fault.ErrInvalidSeeds != err {
			logger.Panicf("address: seeds rejected: %s", err)
		}
	}
	logger.Panic("address: no off-curve bump found")
	return Address{}, 0
}

// IsOnCurve - true if the address decodes as an ed25519 point
func IsOnCurve(a Address) bool {
	_, err := new(edwards25519.Point).SetBytes(a[:])
	return nil == err
}
