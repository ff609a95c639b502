// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/AwesomeEcosystem/nomics/counter"
	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/ledger"
	"github.com/AwesomeEcosystem/nomics/rpc/ratelimit"
)

// Status - registry state reported by the node
type Status interface {
	Count() int
	Native() (ledger.Metadata, bool)
	PersistFailures() uint64
}

// Node - type for RPC calls
type Node struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Start     time.Time
	Version   string
	PublicKey string
	Status    Status
	counter   *counter.Counter
}

func New(log *logger.L, status Status, start time.Time, version string, publicKey string, counter *counter.Counter, limiter *rate.Limiter) *Node {
	return &Node{
		Log:       log,
		Limiter:   limiter,
		Start:     start,
		Version:   version,
		PublicKey: publicKey,
		Status:    status,
		counter:   counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version         string `json:"version"`
	Uptime          string `json:"uptime"`
	RPCs            uint64 `json:"rpcs"`
	Ledgers         int    `json:"ledgers"`
	Native          string `json:"native,omitempty"`
	PersistFailures uint64 `json:"persistFailures"`
	PublicKey       string `json:"publicKey,omitempty"`
}

// Info - return some information about this node
// for more detail information use HTTP GET requests
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.Status {
		return fault.ErrNotInitialised
	}

	if m, ok := node.Status.Native(); ok {
		reply.Native = m.Symbol
	}
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.RPCs = node.counter.Uint64()
	reply.Ledgers = node.Status.Count()
	reply.PersistFailures = node.Status.PersistFailures()
	reply.PublicKey = node.PublicKey

	return nil
}
