// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - lock free counters shared between goroutines
//
// used for connection counts and for the per-ledger transaction
// sequence that is mixed into transaction identifiers
package counter

import (
	"sync/atomic"
)

// Counter - a 64 bit unsigned integer that can be incremented or
// decremented from several goroutines at once
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (ic *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(ic), 1)
}

// Decrement - subtract 1 from a counter, returns new value
func (ic *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(ic), ^uint64(0))
}

// Next - return the current value and advance by one
//
// the first call on a zero counter returns zero
func (ic *Counter) Next() uint64 {
	return atomic.AddUint64((*uint64)(ic), 1) - 1
}

// Set - overwrite the value, e.g. after replaying a stored log
func (ic *Counter) Set(n uint64) {
	atomic.StoreUint64((*uint64)(ic), n)
}

// Uint64 - returns current value
func (ic *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(ic))
}

// IsZero - check if zero
func (ic *Counter) IsZero() bool {
	return 0 == ic.Uint64()
}
