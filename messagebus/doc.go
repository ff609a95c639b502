// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a broadcast queue for announcements of
// appended transactions
//
// every listener receives its own copy of each message; a listener
// that falls behind has messages dropped rather than blocking the
// sender, since senders hold a ledger lock while announcing
package messagebus
