// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk slot store
//
// maintain separate pools of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the avaiable tables.
//
// All writes are staged in one batch through a Transaction and reads
// made while the transaction is open see the staged values; the batch
// is written on Commit or dropped on Abort.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. address      = 32 byte slot address
// 4. lamports     = big endian uint64 (8 bytes)
//
// Slots:
//
//   S ++ address               - slot
//                                data: owner address ++ lamports ++ slot data
//
// Testing:
//   Z ++ key                   - testing data
package storage
