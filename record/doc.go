// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - layout of the records stored in product program slots
//
// Notes:
// 1. ++      = concatenation of byte data
// 2. string  = length(little endian uint32) ++ bytes
// 3. bool    = single byte 0x00 or 0x01
// 4. u64/i64 = little endian 8 bytes
// 5. f64     = IEEE-754 bits as little endian 8 bytes
// 6. address = 32 raw bytes
//
// Product:
//
//   "product" ++ initialized ++ owner ++ id(u64) ++ name ++ price(f64)
//
// PriceCounter:
//
//   "counter" ++ initialized ++ counter(u64)
//
// PriceEntry:
//
//   "price" ++ initialized ++ product ++ price(f64) ++ timestamp(i64)
//
// A record is only considered initialized when its kind tag matches and
// the initialized byte is 0x01; zero filled or foreign data decodes as
// an uninitialized record.
package record
