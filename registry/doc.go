// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - hosts many ledgers under their symbols
//
// On creation the registry rebuilds every ledger from the database:
// the metadata index gives one record per symbol and each ledger's
// namespace gives its log in append order.  Every ledger, restored or
// newly deployed, has a persistence notifier attached that writes each
// appended transaction to its namespace and announces it on the
// message bus.
//
// An optional native ledger is stored in the same index but is kept
// apart from the hosted ledgers: it is routed by its symbol, never
// listed, and its symbol cannot be deployed again.
package registry
