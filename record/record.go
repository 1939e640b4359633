// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"
	"math"

	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/fault"
)

// kind tags
const (
	ProductKind = "product"
	CounterKind = "counter"
	PriceKind   = "price"
)

// sizes
const (
	stringPrefixSize = 4
	boolSize         = 1
	u64Size          = 8
	f64Size          = 8

	// slot size used for every product
	MaximumProductSize = 1000

	CounterSize = stringPrefixSize + len(CounterKind) + boolSize + u64Size
	PriceSize   = stringPrefixSize + len(PriceKind) + boolSize + address.Length + f64Size + u64Size
)

// ProductSize - exact packed size of a product with the given name
func ProductSize(name string) int {
	return stringPrefixSize + len(ProductKind) + boolSize + address.Length + u64Size + stringPrefixSize + len(name) + f64Size
}

// Product - a catalogue entry
type Product struct {
	Initialized bool            `json:"initialized"`
	Owner       address.Address `json:"owner"`
	ID          uint64          `json:"id,string"`
	Name        string          `json:"name"`
	Price       float64         `json:"price"`
}

// PriceCounter - number of price entries recorded for a product
type PriceCounter struct {
	Initialized bool   `json:"initialized"`
	Counter     uint64 `json:"counter,string"`
}

// PriceEntry - one immutable price observation
type PriceEntry struct {
	Initialized bool            `json:"initialized"`
	Product     address.Address `json:"product"`
	Price       float64         `json:"price"`
	Timestamp   int64           `json:"timestamp"`
}

// Pack - serialise a product
func (p *Product) Pack() []byte {
	buffer := make([]byte, 0, ProductSize(p.Name))
	buffer = appendString(buffer, ProductKind)
	buffer = appendBool(buffer, p.Initialized)
	buffer = append(buffer, p.Owner[:]...)
	buffer = appendU64(buffer, p.ID)
	buffer = appendString(buffer, p.Name)
	return appendF64(buffer, p.Price)
}

// PackInto - serialise a product into a slot buffer
func (p *Product) PackInto(buffer []byte) error {
	return store(buffer, p.Pack())
}

// Pack - serialise a price counter
func (c *PriceCounter) Pack() []byte {
	buffer := make([]byte, 0, CounterSize)
	buffer = appendString(buffer, CounterKind)
	buffer = appendBool(buffer, c.Initialized)
	return appendU64(buffer, c.Counter)
}

// PackInto - serialise a price counter into a slot buffer
func (c *PriceCounter) PackInto(buffer []byte) error {
	return store(buffer, c.Pack())
}

// Pack - serialise a price entry
func (e *PriceEntry) Pack() []byte {
	buffer := make([]byte, 0, PriceSize)
	buffer = appendString(buffer, PriceKind)
	buffer = appendBool(buffer, e.Initialized)
	buffer = append(buffer, e.Product[:]...)
	buffer = appendF64(buffer, e.Price)
	return appendU64(buffer, uint64(e.Timestamp))
}

// PackInto - serialise a price entry into a slot buffer
func (e *PriceEntry) PackInto(buffer []byte) error {
	return store(buffer, e.Pack())
}

// UnpackProduct - decode a product slot
func UnpackProduct(buffer []byte) (*Product, error) {
	if len(buffer) < ProductSize("") {
		return nil, fault.ErrRecordTruncated
	}

	u := unpacker{buffer: buffer}
	initialized := u.header(ProductKind)
	owner := u.address()
	id := u.u64()
	name := u.string()
	price := u.f64()

	if !u.ok || !initialized {
		return &Product{}, nil
	}
	return &Product{
		Initialized: true,
		Owner:       owner,
		ID:          id,
		Name:        name,
		Price:       price,
	}, nil
}

// UnpackCounter - decode a price counter slot
func UnpackCounter(buffer []byte) (*PriceCounter, error) {
	if len(buffer) < CounterSize {
		return nil, fault.ErrRecordTruncated
	}

	u := unpacker{buffer: buffer}
	initialized := u.header(CounterKind)
	counter := u.u64()

	if !u.ok || !initialized {
		return &PriceCounter{}, nil
	}
	return &PriceCounter{
		Initialized: true,
		Counter:     counter,
	}, nil
}

// UnpackPrice - decode a price entry slot
func UnpackPrice(buffer []byte) (*PriceEntry, error) {
	if len(buffer) < PriceSize {
		return nil, fault.ErrRecordTruncated
	}

	u := unpacker{buffer: buffer}
	initialized := u.header(PriceKind)
	product := u.address()
	price := u.f64()
	timestamp := u.u64()

	if !u.ok || !initialized {
		return &PriceEntry{}, nil
	}
	return &PriceEntry{
		Initialized: true,
		Product:     product,
		Price:       price,
		Timestamp:   int64(timestamp),
	}, nil
}

// copy packed data to the start of a slot buffer and clear the rest
func store(buffer []byte, packed []byte) error {
	if len(packed) > len(buffer) {
		return fault.ErrBufferTooSmall
	}
	n := copy(buffer, packed)
	for i := n; i < len(buffer); i += 1 {
		buffer[i] = 0
	}
	return nil
}

func appendString(buffer []byte, s string) []byte {
	var n [stringPrefixSize]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(s)))
	buffer = append(buffer, n[:]...)
	return append(buffer, s...)
}

func appendBool(buffer []byte, b bool) []byte {
	if b {
		return append(buffer, 1)
	}
	return append(buffer, 0)
}

func appendU64(buffer []byte, value uint64) []byte {
	var n [u64Size]byte
	binary.LittleEndian.PutUint64(n[:], value)
	return append(buffer, n[:]...)
}

func appendF64(buffer []byte, value float64) []byte {
	return appendU64(buffer, math.Float64bits(value))
}

// sequential reader; once a read runs past the end ok stays false and
// all further reads return zero values
type unpacker struct {
	buffer []byte
	offset int
	ok     bool
}

func (u *unpacker) take(n int) []byte {
	if !u.ok || n < 0 || u.offset+n > len(u.buffer) {
		u.ok = false
		return nil
	}
	b := u.buffer[u.offset : u.offset+n]
	u.offset += n
	return b
}

// read the kind tag and initialized flag, true only if the tag is the
// expected kind and the flag is set
func (u *unpacker) header(kind string) bool {
	u.ok = true
	tag := u.string()
	flag := u.take(boolSize)
	return u.ok && kind == tag && 1 == flag[0]
}

func (u *unpacker) string() string {
	n := u.take(stringPrefixSize)
	if nil == n {
		return ""
	}
	length := binary.LittleEndian.Uint32(n)
	if uint64(length) > uint64(len(u.buffer)) {
		u.ok = false
		return ""
	}
	return string(u.take(int(length)))
}

func (u *unpacker) address() address.Address {
	a := address.Address{}
	copy(a[:], u.take(address.Length))
	return a
}

func (u *unpacker) u64() uint64 {
	b := u.take(u64Size)
	if nil == b {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (u *unpacker) f64() float64 {
	return math.Float64frombits(u.u64())
}
