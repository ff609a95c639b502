// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/rpc/ratelimit"
)

func TestNew(t *testing.T) {
	l := ratelimit.New(0, 0)
	assert.Equal(t, rate.Limit(ratelimit.DefaultLimit), l.Limit(), "default limit")
	assert.Equal(t, ratelimit.DefaultBurst, l.Burst(), "default burst")

	l = ratelimit.New(5, 2)
	assert.Equal(t, rate.Limit(5), l.Limit(), "limit")
	assert.Equal(t, 2, l.Burst(), "burst")

	ratelimit.Update(l, 50, 20)
	assert.Equal(t, rate.Limit(50), l.Limit(), "updated limit")
	assert.Equal(t, 20, l.Burst(), "updated burst")
}

func TestLimit(t *testing.T) {
	l := rate.NewLimiter(100, 10)
	assert.Nil(t, ratelimit.Limit(l), "limit")

	zero := rate.NewLimiter(0, 0)
	assert.Equal(t, fault.ErrRateLimiting, ratelimit.Limit(zero), "zero burst")
}

func TestLimitN(t *testing.T) {
	l := rate.NewLimiter(100, 10)
	assert.Nil(t, ratelimit.LimitN(l, 5, 10), "valid count")
	assert.Equal(t, fault.ErrInvalidCount, ratelimit.LimitN(l, 0, 10), "zero count")
	assert.Equal(t, fault.ErrInvalidCount, ratelimit.LimitN(l, 11, 10), "count above maximum")

	zero := rate.NewLimiter(0, 0)
	assert.Equal(t, fault.ErrRateLimiting, ratelimit.LimitN(zero, 5, 10), "zero burst")
}
