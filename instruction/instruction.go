// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package instruction - the command format of the product program
//
//   command = variant(1 byte) ++ payload
//
//   0 CreateProduct: id(u64) ++ name(string) ++ price(f64)
//   1 RenameProduct: name(string)
//   2 RecordPrice:   price(f64)
//
// u64 and f64 are little endian 8 bytes, string is a little endian
// uint32 length followed by the bytes; the payload must be consumed
// exactly
package instruction

import (
	"encoding/binary"
	"math"

	"github.com/bitmark-inc/productd/fault"
)

// Variant - command selector byte
type Variant byte

// all variants
const (
	CreateProductVariant Variant = 0
	RenameProductVariant Variant = 1
	RecordPriceVariant   Variant = 2
)

// Command - any decoded command
type Command interface {
	Variant() Variant
	Pack() []byte
}

// CreateProduct - create a product, its counter and its first price
type CreateProduct struct {
	ID    uint64  `json:"id,string"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// RenameProduct - change the name of a product
type RenameProduct struct {
	Name string `json:"name"`
}

// RecordPrice - append a price entry and update the product price
type RecordPrice struct {
	Price float64 `json:"price"`
}

// Variant - selector byte
func (CreateProduct) Variant() Variant { return CreateProductVariant }
func (RenameProduct) Variant() Variant { return RenameProductVariant }
func (RecordPrice) Variant() Variant   { return RecordPriceVariant }

// Pack - encode a create command
func (c CreateProduct) Pack() []byte {
	buffer := []byte{byte(CreateProductVariant)}
	buffer = appendU64(buffer, c.ID)
	buffer = appendString(buffer, c.Name)
	return appendU64(buffer, math.Float64bits(c.Price))
}

// Pack - encode a rename command
func (c RenameProduct) Pack() []byte {
	buffer := []byte{byte(RenameProductVariant)}
	return appendString(buffer, c.Name)
}

// Pack - encode a price command
func (c RecordPrice) Pack() []byte {
	buffer := []byte{byte(RecordPriceVariant)}
	return appendU64(buffer, math.Float64bits(c.Price))
}

// Unpack - decode a command
//
// an empty buffer, unknown variant, truncated payload or trailing
// bytes all give ErrInvalidCommand
func Unpack(data []byte) (Command, error) {
	if 0 == len(data) {
		return nil, fault.ErrInvalidCommand
	}

	d := decoder{buffer: data[1:], ok: true}

	var command Command
	switch Variant(data[0]) {
	case CreateProductVariant:
		c := CreateProduct{}
		c.ID = d.u64()
		c.Name = d.string()
		c.Price = d.f64()
		command = c

	case RenameProductVariant:
		command = RenameProduct{
			Name: d.string(),
		}

	case RecordPriceVariant:
		command = RecordPrice{
			Price: d.f64(),
		}

	default:
		return nil, fault.ErrInvalidCommand
	}

	if !d.ok || 0 != len(d.buffer) {
		return nil, fault.ErrInvalidCommand
	}
	return command, nil
}

func appendU64(buffer []byte, value uint64) []byte {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], value)
	return append(buffer, n[:]...)
}

func appendString(buffer []byte, s string) []byte {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(s)))
	buffer = append(buffer, n[:]...)
	return append(buffer, s...)
}

type decoder struct {
	buffer []byte
	ok     bool
}

func (d *decoder) take(n uint64) []byte {
	if !d.ok || n > uint64(len(d.buffer)) {
		d.ok = false
		return nil
	}
	b := d.buffer[:n]
	d.buffer = d.buffer[n:]
	return b
}

func (d *decoder) u64() uint64 {
	b := d.take(8)
	if nil == b {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (d *decoder) f64() float64 {
	return math.Float64frombits(d.u64())
}

func (d *decoder) string() string {
	b := d.take(4)
	if nil == b {
		return ""
	}
	return string(d.take(uint64(binary.LittleEndian.Uint32(b))))
}
