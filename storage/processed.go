// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
)

// IsProcessed - true if a transaction with this digest was committed
func IsProcessed(digest []byte) bool {
	return Pool.Processed.Has(digest)
}

// PutProcessed - stage a transaction digest with the time it ran
func PutProcessed(trx Transaction, digest []byte, timestamp int64) {
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, uint64(timestamp))
	trx.Put(Pool.Processed, digest, value)
}
