// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - durable key/value namespaces
//
// A database holds one metadata index namespace and one namespace per
// ledger symbol.  Three backends share the same key layout:
//
//   index:        'M' key
//   ledger data:  'T' symbol 0x00 key
//
// Iterating a namespace returns records in ascending key order, so
// callers that need append order must use keys that sort that way.
package storage
