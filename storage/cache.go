// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

const (
	defaultCleanup    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

// read cache in front of a backend, written through on every put
type readCache struct {
	cache *cache.Cache
}

func newReadCache() *readCache {
	return &readCache{
		cache: cache.New(defaultExpiration, defaultCleanup),
	}
}

func (c *readCache) Get(key []byte) ([]byte, bool) {
	obj, found := c.cache.Get(string(key))
	if !found {
		return nil, false
	}
	return obj.([]byte), true
}

func (c *readCache) Set(key []byte, value []byte) {
	stored := make([]byte, len(value))
	copy(stored, value)
	c.cache.Set(string(key), stored, cache.DefaultExpiration)
}

func (c *readCache) Clear() {
	c.cache.Flush()
}
