// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/hex"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/productd/address"
	"github.com/bitmark-inc/productd/fault"
	"github.com/bitmark-inc/productd/host"
	productledger "github.com/bitmark-inc/productd/ledger"
	"github.com/bitmark-inc/productd/rpc/ratelimit"
)

const (
	rateLimitLedger = 200
	rateBurstLedger = 100
)

//go:generate mockgen -source=ledger.go -destination=../mocks/host.go -package=mocks

// Host - the ledger operations offered to clients
type Host interface {
	Chain() string
	Invoke(*productledger.Transaction) ([]address.Address, error)
	Slot(address.Address) (*host.Slot, error)
	Fund(address.Address, uint64) (uint64, error)
}

// Ledger - type for RPC calls
type Ledger struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Host    Host
}

// New - create the ledger service
func New(log *logger.L, h Host) *Ledger {
	return &Ledger{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitLedger, rateBurstLedger),
		Host:    h,
	}
}

// ---

// SubmitArguments - a packed, signed transaction
type SubmitArguments struct {
	Transaction string `json:"transaction"`
}

// SubmitReply - slots changed by the transaction
type SubmitReply struct {
	Slots []address.Address `json:"slots"`
}

// Submit - run a transaction
//
// larger transactions use more of the rate limit
func (ledger *Ledger) Submit(arguments *SubmitArguments, reply *SubmitReply) error {

	size := 0
	if nil != arguments {
		size = (len(arguments.Transaction) + 1) / 2
	}
	if err := ratelimit.LimitSize(ledger.Limiter, size, productledger.MaximumTransactionSize); nil != err {
		return err
	}

	packed, err := hex.DecodeString(arguments.Transaction)
	if nil != err {
		return err
	}

	transaction, err := productledger.Unpack(packed)
	if nil != err {
		return err
	}

	ledger.Log.Debugf("Ledger.Submit: program: %s  slots: %d", transaction.Program, len(transaction.Slots))

	slots, err := ledger.Host.Invoke(transaction)
	if nil != err {
		ledger.Log.Infof("Ledger.Submit: error: %s", err)
		return err
	}

	reply.Slots = slots
	return nil
}

// ---

// SlotArguments - slot to read
type SlotArguments struct {
	Key address.Address `json:"key"`
}

// SlotReply - stored slot
type SlotReply struct {
	Key      address.Address `json:"key"`
	Owner    address.Address `json:"owner"`
	Lamports uint64          `json:"lamports,string"`
	Data     string          `json:"data"`
}

// Slot - read one slot
func (ledger *Ledger) Slot(arguments *SlotArguments, reply *SlotReply) error {

	if err := ratelimit.Limit(ledger.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}

	slot, err := ledger.Host.Slot(arguments.Key)
	if nil != err {
		return err
	}

	reply.Key = slot.Key
	reply.Owner = slot.Owner
	reply.Lamports = slot.Lamports
	reply.Data = hex.EncodeToString(slot.Data)
	return nil
}

// ---

// FundArguments - credit for a slot
type FundArguments struct {
	Key      address.Address `json:"key"`
	Lamports uint64          `json:"lamports,string"`
}

// FundReply - balance after funding
type FundReply struct {
	Lamports uint64 `json:"lamports,string"`
}

// Fund - credit a slot on a test chain
func (ledger *Ledger) Fund(arguments *FundArguments, reply *FundReply) error {

	if err := ratelimit.Limit(ledger.Limiter); nil != err {
		return err
	}

	if nil == arguments || 0 == arguments.Lamports {
		return fault.ErrMissingParameters
	}

	ledger.Log.Infof("Ledger.Fund: chain: %s  key: %s  lamports: %d", ledger.Host.Chain(), arguments.Key, arguments.Lamports)

	balance, err := ledger.Host.Fund(arguments.Key, arguments.Lamports)
	if nil != err {
		return err
	}

	reply.Lamports = balance
	return nil
}
