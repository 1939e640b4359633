// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - ed25519 signer identities
//
// An identity is generated from a base58 seed; its public key is the
// address used as a signer slot and as the owner of products.
package account
