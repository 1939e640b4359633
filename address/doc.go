// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - slot addresses and deterministic address derivation
//
// A slot address is 32 bytes. Addresses of signers are ed25519 public
// keys; addresses of program owned slots are derived from a list of
// seeds and the program address and are guaranteed not to be valid
// curve points, so no private key can ever sign for them.
//
// derivation:
//
//   digest  = SHA3-256(seed[0] ++ … ++ seed[n-1] ++ program ++ "ProgramDerivedAddress")
//   address = digest, if digest does not decode as an ed25519 point
//
// FindProgramAddress appends a single "bump" byte as a final seed,
// starting at 255 and counting down until an off-curve digest is found.
package address
