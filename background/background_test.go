// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AwesomeEcosystem/nomics/background"
)

// drains a queue, then everything left in it after shutdown
type drainer struct {
	sync.Mutex
	queue   chan int
	seen    []int
	stopped bool
}

func (d *drainer) Run(args interface{}, shutdown <-chan struct{}) {
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case n := <-d.queue:
			d.record(n)
		}
	}

drain:
	for {
		select {
		case n := <-d.queue:
			d.record(n)
		default:
			break drain
		}
	}

	d.Lock()
	d.stopped = true
	d.Unlock()
}

func (d *drainer) record(n int) {
	d.Lock()
	d.seen = append(d.seen, n)
	d.Unlock()
}

// checks the value passed to Start
type argsChecker struct {
	got interface{}
}

func (a *argsChecker) Run(args interface{}, shutdown <-chan struct{}) {
	a.got = args
	<-shutdown
}

func TestStopWaitsForDrain(t *testing.T) {
	d1 := &drainer{queue: make(chan int, 100)}
	d2 := &drainer{queue: make(chan int, 100)}

	p := background.Start(background.Processes{d1, d2}, nil)

	for i := 0; i < 50; i += 1 {
		d1.queue <- i
		d2.queue <- 100 + i
	}
	p.Stop()

	assert.True(t, d1.stopped, "first process still running")
	assert.True(t, d2.stopped, "second process still running")
	assert.Equal(t, 50, len(d1.seen), "first queue not drained")
	assert.Equal(t, 50, len(d2.seen), "second queue not drained")
	for i, n := range d1.seen {
		assert.Equal(t, i, n, "out of order at: %d", i)
	}

	// second stop must not panic on the closed channel
	p.Stop()
}

func TestStartPassesArguments(t *testing.T) {
	a := &argsChecker{}
	p := background.Start(background.Processes{a}, "ledger")
	time.Sleep(10 * time.Millisecond)
	p.Stop()

	assert.Equal(t, "ledger", a.got, "wrong arguments")
}

func TestStopNil(t *testing.T) {
	var p *background.T
	p.Stop()
}
