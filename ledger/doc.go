// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - a single token ledger
//
// A ledger holds the identity of one token (name, symbol, fixed total
// supply, per-transfer fee) and its ordered, append-only transaction
// log.  Balances are never stored; they are folded from the log on
// demand.
//
// Log layout:
//
//   [0]  genesis  - from: ledger id  to: owner  amount: total supply
//   [n]  transfer - from: sender     to: receiver  fee: transaction fee
//   [n+1] fee     - from: ledger id  to: owner  amount: transaction fee
//                   (only when the fee is non-zero)
//
// The ledger id is the mint source, not a wallet: transactions sent
// from it never debit anything, so the balances of all wallets always
// add up to the total supply.
//
// Every append is announced to the registered notifiers while the
// ledger lock is still held, so notifiers observe appends in log order.
package ledger
