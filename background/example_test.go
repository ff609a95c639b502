// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"

	"github.com/AwesomeEcosystem/nomics/background"
)

type printer struct {
	lines chan string
	done  chan struct{}
}

func Example() {

	proc := &printer{
		lines: make(chan string, 2),
		done:  make(chan struct{}),
	}

	processes := background.Processes{
		proc,
	}

	p := background.Start(processes, nil)
	proc.lines <- "ELB: 100"
	proc.lines <- "ELB: 10"
	<-proc.done
	p.Stop()

	fmt.Printf("stopped\n")
	// Output:
	// ELB: 100
	// ELB: 10
	// stopped
}

func (p *printer) Run(args interface{}, shutdown <-chan struct{}) {
	n := 0
	for {
		select {
		case <-shutdown:
			return
		case line := <-p.lines:
			fmt.Println(line)
			n += 1
			if 2 == n {
				close(p.done)
			}
		}
	}
}
