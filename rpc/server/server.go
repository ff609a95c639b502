// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/AwesomeEcosystem/nomics/counter"
	"github.com/AwesomeEcosystem/nomics/rpc/node"
	"github.com/AwesomeEcosystem/nomics/rpc/token"
)

// Registry - everything the RPC services need from the ledger host
type Registry interface {
	token.Registry
	node.Status
}

// Create - an RPC server with the Token and Node services registered
func Create(log *logger.L, version string, reg Registry, publicKey string, rpcCount *counter.Counter, limiter *rate.Limiter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(token.New(log, reg, limiter))
	_ = server.Register(node.New(log, reg, start, version, publicKey, rpcCount, limiter))

	return server
}
