// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/productd/fault"
)

// BytesPerToken - request bytes covered by one limiter token
const BytesPerToken = 1024

// MaximumDelay - longest a request waits for its reservation
const MaximumDelay = 5 * time.Second

// Limit - limiting for a single request
func Limit(limiter *rate.Limiter) error {
	return reserve(limiter, 1)
}

// LimitSize - limiting for a request carrying size bytes
//
// a request costs one token plus one for each full BytesPerToken; a
// size outside 1..maximumSize is charged as a single request
func LimitSize(limiter *rate.Limiter, size int, maximumSize int) error {
	if size <= 0 {
		if err := reserve(limiter, 1); nil != err {
			return err
		}
		return fault.ErrMissingParameters
	}
	if size > maximumSize {
		if err := reserve(limiter, 1); nil != err {
			return err
		}
		return fault.ErrTransactionTooLarge
	}
	return reserve(limiter, 1+size/BytesPerToken)
}

func reserve(limiter *rate.Limiter, tokens int) error {
	r := limiter.ReserveN(time.Now(), tokens)
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	delay := r.Delay()
	if delay > MaximumDelay {
		r.Cancel()
		return fault.ErrRateLimiting
	}
	time.Sleep(delay)
	return nil
}
