// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

// Listener - a network server started by Serve and ended by Stop
type Listener interface {
	Serve() error
	Stop()
}

const (
	minConnectionCount = 1
)
