// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package processor - the product program
//
// three commands operate on three kinds of record, all stored in
// program owned slots at derived addresses:
//
//   product  seeds: owner ++ id         one per (owner, id)
//   counter  seeds: product ++ "price"  one per product
//   price    seeds: product ++ n        n = 0, 1, 2, ...
//
// CreateProduct creates the product and its counter and then records
// the first price, so a product is never without a price entry.
// RecordPrice appends an entry at the current counter value and
// advances the counter.  Nothing is deleted.
//
// every check in an operation precedes its first write; if any error
// is returned the host discards the whole invocation
package processor
