// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/AwesomeEcosystem/nomics/counter"
	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/messagebus"
	"github.com/AwesomeEcosystem/nomics/rpc/certificate"
	"github.com/AwesomeEcosystem/nomics/rpc/handler"
	"github.com/AwesomeEcosystem/nomics/rpc/listeners"
	"github.com/AwesomeEcosystem/nomics/rpc/ratelimit"
	"github.com/AwesomeEcosystem/nomics/rpc/server"
)

const (
	tlsName   = "client_rpc"
	httpsName = "https_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	limiter   *rate.Limiter
	listeners []listeners.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// number of active client connections
var connectionCountRPC counter.Counter

// Initialise - start the RPC and HTTPS listeners
func Initialise(
	rpcConfiguration *listeners.RPCConfiguration,
	httpsConfiguration *listeners.HTTPSConfiguration,
	reg server.Registry,
	bus *messagebus.BroadcastQueue,
	publicKey string,
	version string,
) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	globalData.limiter = ratelimit.New(rpcConfiguration.RateLimit, rpcConfiguration.RateBurst)
	log.Infof("rate limit: %f  burst: %d", globalData.limiter.Limit(), globalData.limiter.Burst())

	s := server.Create(log, version, reg, publicKey, &connectionCountRPC, globalData.limiter)

	// servers
	tlsConfig, certificateFingerprint, err := certificate.Load(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		s,
		tlsConfig,
		certificateFingerprint,
	)
	if nil != err {
		return err
	}

	all := []listeners.Listener{rpcListener}

	if 0 != len(httpsConfiguration.Listen) {
		httpsConfig, httpsFingerprint, err := certificate.Load(log, httpsName, httpsConfiguration.Certificate, httpsConfiguration.PrivateKey)
		if nil != err {
			return err
		}
		log.Infof("%s: SHA3-256 fingerprint: %x", httpsName, httpsFingerprint)

		hdlr := handler.New(log, s, time.Now(), version, httpsConfiguration.MaximumConnections, reg, bus)
		httpsListener, err := listeners.NewHTTPS(httpsConfiguration, log, httpsConfig, hdlr)
		if nil != err {
			return err
		}
		all = append(all, httpsListener)
	} else {
		log.Infof("disable: %s", httpsName)
	}

	for i, l := range all {
		err := l.Serve()
		if nil != err {
			for _, started := range all[:i+1] {
				started.Stop()
			}
			return err
		}
	}
	globalData.listeners = all

	// all data initialised
	globalData.initialised = true

	return nil
}

// SetRateLimit - change the shared request limit of a running server
func SetRateLimit(limit float64, burst int) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	ratelimit.Update(globalData.limiter, limit, burst)
	globalData.log.Infof("rate limit: %f  burst: %d", globalData.limiter.Limit(), globalData.limiter.Burst())

	return nil
}

// Finalise - stop all listeners
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	for _, l := range globalData.listeners {
		l.Stop()
	}
	globalData.listeners = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
