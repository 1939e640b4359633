// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the host that runs programs against stored slots
//
// a transaction names a program, the slots it may touch and the
// command data:
//
//   program(32 bytes)
//   ++ varint(slot count) ++ [ key(32 bytes) ++ flags(1 byte) ]
//   ++ varint(data length) ++ data
//   ++ varint(signature count) ++ [ varint(64) ++ signature ]
//
// flags: 0x01 signer, 0x02 writable.  Each signer slot signs the
// message, i.e. everything before the signature count, in slot order.
//
// an invocation either commits every changed slot or nothing
package ledger
