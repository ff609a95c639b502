// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// registry figures included in each report
type statsSource interface {
	Count() int
	PersistFailures() uint64
}

// periodic memory and registry report, runs until shutdown
type memoryStats struct {
	log    *logger.L
	source statsSource
	delay  time.Duration
}

func newMemoryStats(log *logger.L, source statsSource) *memoryStats {
	return &memoryStats{
		log:    log,
		source: source,
		delay:  statsDelay,
	}
}

// Run - background process
func (s *memoryStats) Run(args interface{}, shutdown <-chan struct{}) {
	for {
		s.report()
		select {
		case <-shutdown:
			return
		case <-time.After(s.delay):
		}
	}
}

func (s *memoryStats) report() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	s.log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M  GC runs: %d  goroutines: %d",
		m.Alloc/mega, m.TotalAlloc/mega, m.Sys/mega, m.NumGC, runtime.NumGoroutine())

	failures := s.source.PersistFailures()
	if 0 == failures {
		s.log.Infof("ledgers: %d", s.source.Count())
	} else {
		s.log.Warnf("ledgers: %d  persist failures: %d", s.source.Count(), failures)
	}
}
