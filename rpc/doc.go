// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - client facing services of the ledger daemon
//
// a TLS JSON-RPC stream listener serves the Token and Node
// services; an optional HTTPS listener serves the same RPC by
// POST together with status, ledger listings and a websocket
// feed of appended transactions
package rpc
