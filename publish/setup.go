// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - broadcast appended transactions over ZeroMQ
//
// every message bus announcement is sent on a PUB socket as a
// multipart message: command, symbol, transaction JSON
package publish

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/AwesomeEcosystem/nomics/background"
	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/messagebus"
	"github.com/AwesomeEcosystem/nomics/zmqutil"
)

// Configuration - a block of configuration data
// this is read from the Lua configuration file
type Configuration struct {
	Broadcast  []string `gluamapper:"broadcast" json:"broadcast"`
	PrivateKey string   `gluamapper:"private_key" json:"private_key"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
}

// globals for background proccess
type publishData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	brdc broadcaster // for broadcasting transactions

	publicKey []byte

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData publishData

// Initialise - start the broadcaster if any addresses are configured
func Initialise(configuration *Configuration, bus *messagebus.BroadcastQueue) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("publish")
	globalData.log.Info("starting…")

	if 0 == len(configuration.Broadcast) {
		globalData.log.Info("no broadcast addresses: disabled")
		return nil
	}

	privateKey := []byte(nil)
	if "" != configuration.PrivateKey {
		err := zmqutil.StartAuthentication()
		if nil != err {
			globalData.log.Errorf("start authentication error: %s", err)
			return err
		}

		privateKey, err = zmqutil.ReadPrivateKeyFile(configuration.PrivateKey)
		if nil != err {
			globalData.log.Errorf("read private key file: %q  error: %s", configuration.PrivateKey, err)
			return err
		}
		publicKey, err := zmqutil.ReadPublicKeyFile(configuration.PublicKey)
		if nil != err {
			globalData.log.Errorf("read public key file: %q  error: %s", configuration.PublicKey, err)
			return err
		}
		globalData.log.Infof("public key: %x", publicKey)
		globalData.publicKey = publicKey
	}

	if err := globalData.brdc.initialise(globalData.log, privateKey, configuration.Broadcast, bus); nil != err {
		return err
	}

	// all data initialised
	globalData.initialised = true

	// start background processes
	globalData.log.Info("start background…")

	processes := background.Processes{
		&globalData.brdc,
	}

	globalData.background = background.Start(processes, globalData.log)

	return nil
}

// PublicKey - CURVE public key of the broadcaster, nil if unencrypted
func PublicKey() []byte {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.publicKey
}

// Finalise - stop all background tasks
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// stop background
	globalData.background.Stop()

	// finally...
	globalData.initialised = false
	globalData.publicKey = nil

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
