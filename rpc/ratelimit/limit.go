// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/AwesomeEcosystem/nomics/fault"
)

// defaults when the configuration does not set a limit
const (
	DefaultLimit = 200
	DefaultBurst = 100
)

// New - a limiter, non-positive values select the defaults
func New(limit float64, burst int) *rate.Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return rate.NewLimiter(rate.Limit(limit), burst)
}

// Update - change a shared limiter in place
func Update(limiter *rate.Limiter, limit float64, burst int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	limiter.SetLimit(rate.Limit(limit))
	limiter.SetBurst(burst)
}

// Limit - limiting for a single request
func Limit(limiter *rate.Limiter) error {
	r := limiter.Reserve()
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}

// LimitN - limiting for a multiple request
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	// invalid count gets limited as a single request
	if count <= 0 || count > maximumCount {

		r := limiter.Reserve()
		if !r.OK() {
			return fault.ErrRateLimiting
		}
		time.Sleep(r.Delay())

		return fault.ErrInvalidCount
	}

	r := limiter.ReserveN(time.Now(), count)
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	time.Sleep(r.Delay())

	return nil
}
