// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"bytes"

	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/productd/fault"
)

// Length - number of bytes in an address
const Length = 32

// Address - a slot address
type Address [Length]byte

// FromBytes - convert a 32 byte slice to an address
func FromBytes(buffer []byte) (Address, error) {
	a := Address{}
	if Length != len(buffer) {
		return a, fault.ErrInvalidKeyLength
	}
	copy(a[:], buffer)
	return a, nil
}

// FromBase58 - decode the text form of an address
func FromBase58(s string) (Address, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return Address{}, err
	}
	return FromBytes(buffer)
}

// Bytes - byte slice copy of an address
func (a Address) Bytes() []byte {
	buffer := make([]byte, Length)
	copy(buffer, a[:])
	return buffer
}

// IsZero - true for the all zero address
func (a Address) IsZero() bool {
	return a == Address{}
}

// Equal - compare two addresses
func (a Address) Equal(b Address) bool {
	return bytes.Equal(a[:], b[:])
}

// String - base58 text form
func (a Address) String() string {
	return base58.Encode(a[:])
}

// GoString - for %#v
func (a Address) GoString() string {
	return "<address:" + a.String() + ">"
}

// MarshalText - convert an address to its base58 JSON form
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert a base58 text form to an address
func (a *Address) UnmarshalText(s []byte) error {
	b, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = b
	return nil
}
