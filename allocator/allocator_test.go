// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package allocator_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/allocator"
	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/host"
	"github.com/bitmark-inc/productd/host/mocks"
)

var program = address.Address{0xaa, 0xbb, 0xcc}

func setup(t *testing.T, seeds [][]byte) (*host.Slot, *host.Slot, *host.Slot, uint8) {
	target, bump := address.New().FindProgramAddress(seeds, program)
	payer := &host.Slot{Key: address.Address{0x01}, Lamports: 1000000, IsSigner: true, IsWritable: true}
	slot := &host.Slot{Key: target, IsWritable: true}
	service := &host.Slot{Key: host.AllocationService}
	return payer, slot, service, bump
}

func TestAllocate(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	rt := mocks.NewMockRuntime(ctl)

	seeds := [][]byte{[]byte("owner"), []byte("id")}
	payer, target, service, bump := setup(t, seeds)

	rt.EXPECT().MinimumBalance(20).Return(uint64(1500)).Times(1)
	rt.EXPECT().CreateSlot(payer, target, service, uint64(1500), 20, program, [][]byte{[]byte("owner"), []byte("id"), {bump}}).Return(nil).Times(1)

	err := allocator.New(address.New()).Allocate(rt, program, payer, target, service, 20, seeds, bump)
	assert.Nil(t, err, "allocate")
}

func TestAllocateHostErrorsUnchanged(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	rt := mocks.NewMockRuntime(ctl)

	seeds := [][]byte{[]byte("funds")}
	payer, target, service, bump := setup(t, seeds)

	rt.EXPECT().MinimumBalance(gomock.Any()).Return(uint64(5)).Times(2)
	rt.EXPECT().CreateSlot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(fault.ErrInsufficientFunds).Times(1)
	rt.EXPECT().CreateSlot(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(fault.ErrAlreadyAllocated).Times(1)

	a := allocator.New(address.New())

	err := a.Allocate(rt, program, payer, target, service, 58, seeds, bump)
	assert.Equal(t, fault.ErrInsufficientFunds, err, "insufficient funds")

	err = a.Allocate(rt, program, payer, target, service, 58, seeds, bump)
	assert.Equal(t, fault.ErrAlreadyAllocated, err, "already allocated")
}

func TestAllocateAddressMismatch(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	rt := mocks.NewMockRuntime(ctl)

	seeds := [][]byte{[]byte("one")}
	payer, target, service, bump := setup(t, seeds)

	a := allocator.New(address.New())

	// different seeds
	err := a.Allocate(rt, program, payer, target, service, 20, [][]byte{[]byte("two")}, bump)
	assert.Equal(t, fault.ErrAddressMismatch, err, "wrong seeds")

	// different program
	err = a.Allocate(rt, address.Address{0x01}, payer, target, service, 20, seeds, bump)
	assert.Equal(t, fault.ErrAddressMismatch, err, "wrong program")

	// different bump
	err = a.Allocate(rt, program, payer, target, service, 20, seeds, bump-1)
	assert.Equal(t, fault.ErrAddressMismatch, err, "wrong bump")
}

func TestAllocateIncorrectService(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	rt := mocks.NewMockRuntime(ctl)

	seeds := [][]byte{[]byte("service")}
	payer, target, _, bump := setup(t, seeds)

	err := allocator.New(address.New()).Allocate(rt, program, payer, target, &host.Slot{Key: address.Address{0x99}}, 20, seeds, bump)
	assert.Equal(t, fault.ErrIncorrectService, err, "incorrect service")
}
