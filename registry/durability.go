// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"strings"

	"github.com/AwesomeEcosystem/nomics/fault"
)

// Durability - when an appended transaction reaches the database
type Durability int

// durability modes
const (
	// written before the ledger operation returns; failures are returned
	Synchronous Durability = iota

	// queued to a background writer; failures are logged and counted
	Asynchronous
)

// ParseDurability - convert a configuration string
func ParseDurability(s string) (Durability, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "synchronous", "sync":
		return Synchronous, nil
	case "asynchronous", "async":
		return Asynchronous, nil
	default:
		return Synchronous, fault.ErrInvalidDurability
	}
}

func (d Durability) String() string {
	switch d {
	case Synchronous:
		return "synchronous"
	case Asynchronous:
		return "asynchronous"
	default:
		return "unknown"
	}
}
