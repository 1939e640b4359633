// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instruction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/instruction"
)

func TestCreateProductLayout(t *testing.T) {
	c := instruction.CreateProduct{ID: 1, Name: "Widget", Price: 9.99}

	expected := []byte{
		0x00,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x06, 0x00, 0x00, 0x00, 'W', 'i', 'd', 'g', 'e', 't',
		0x7b, 0x14, 0xae, 0x47, 0xe1, 0xfa, 0x23, 0x40,
	}
	assert.Equal(t, expected, c.Pack(), "packed create")

	command, err := instruction.Unpack(expected)
	assert.Nil(t, err, "unpack")
	assert.Equal(t, c, command, "decoded create")
}

func TestRenameAndPrice(t *testing.T) {
	commands := []instruction.Command{
		instruction.RenameProduct{Name: "Gadget"},
		instruction.RenameProduct{Name: ""},
		instruction.RecordPrice{Price: 12.5},
		instruction.RecordPrice{Price: -1},
		instruction.CreateProduct{ID: 0xffffffffffffffff, Name: "x", Price: 0},
	}

	for i, c := range commands {
		packed := c.Pack()
		assert.Equal(t, byte(c.Variant()), packed[0], "%d: variant byte", i)

		decoded, err := instruction.Unpack(packed)
		assert.Nil(t, err, "%d: unpack", i)
		assert.Equal(t, c, decoded, "%d: decoded", i)
	}
}

func TestInvalidCommands(t *testing.T) {
	valid := instruction.CreateProduct{ID: 7, Name: "Widget", Price: 1}.Pack()

	tests := [][]byte{
		nil,
		{},
		{0x03},
		{0xff, 0x00},
		{0x02},
		{0x02, 0x00, 0x00, 0x00},
		{0x01, 0x05, 0x00, 0x00, 0x00, 'a', 'b'},
		{0x01, 0xff, 0xff, 0xff, 0xff},
		valid[:len(valid)-1],
		append(append([]byte{}, valid...), 0x00),
	}

	for i, data := range tests {
		command, err := instruction.Unpack(data)
		assert.Equal(t, fault.ErrInvalidCommand, err, "%d: error for: %x", i, data)
		assert.Nil(t, command, "%d: command for: %x", i, data)
	}
}
