// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/AwesomeEcosystem/nomics/rpc"
)

// source of configuration file events
type fileEvents interface {
	Change() <-chan struct{}
	Remove() <-chan struct{}
	FilePath() string
}

// reloader - apply the run-time adjustable settings after the
// configuration file is modified
type reloader struct {
	log    *logger.L
	events fileEvents
	apply  func(*Configuration) error
}

func newReloader(log *logger.L, events fileEvents) *reloader {
	return &reloader{
		log:    log,
		events: events,
		apply:  applyConfiguration,
	}
}

// only rate limits can change without a restart
func applyConfiguration(c *Configuration) error {
	return rpc.SetRateLimit(c.ClientRPC.RateLimit, c.ClientRPC.RateBurst)
}

// Run - background process
func (r *reloader) Run(args interface{}, shutdown <-chan struct{}) {
	r.log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-r.events.Change():
			r.refresh()

		case <-r.events.Remove():
			r.log.Warnf("configuration file: %q removed", r.events.FilePath())
		}
	}

	r.log.Info("stopped")
}

func (r *reloader) refresh() {
	fileName := r.events.FilePath()

	c, err := getConfiguration(fileName)
	if nil != err {
		r.log.Errorf("failed to read configuration from: %q  error: %s", fileName, err)
		return
	}

	err = r.apply(c)
	if nil != err {
		r.log.Errorf("apply configuration error: %s", err)
		return
	}

	r.log.Infof("rate limit: %g  burst: %d", c.ClientRPC.RateLimit, c.ClientRPC.RateBurst)
}
