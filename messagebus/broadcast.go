// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"

	"github.com/AwesomeEcosystem/nomics/counter"
)

// internal constants
const (
	defaultQueueSize = 1000
)

// Message - a command and its data items
type Message struct {
	Command    string
	Parameters [][]byte
}

// BroadcastQueue - fan out each message to all current listeners
type BroadcastQueue struct {
	sync.RWMutex
	listeners map[*Listener]struct{}
	dropped   counter.Counter
}

// Listener - one receiving end of a broadcast queue
type Listener struct {
	C     <-chan Message
	queue chan Message
	owner *BroadcastQueue
	once  sync.Once
}

// NewBroadcast - create an empty broadcast queue
func NewBroadcast() *BroadcastQueue {
	return &BroadcastQueue{
		listeners: make(map[*Listener]struct{}),
	}
}

// Send - queue a message to every listener
//
// never blocks: a full listener misses the message
func (q *BroadcastQueue) Send(command string, parameters ...[]byte) {
	m := Message{
		Command:    command,
		Parameters: parameters,
	}

	q.RLock()
	defer q.RUnlock()

	for l := range q.listeners {
		select {
		case l.queue <- m:
		default:
			q.dropped.Increment()
		}
	}
}

// Listen - attach a new listener
//
// size <= 0 selects the default queue size
func (q *BroadcastQueue) Listen(size int) *Listener {
	if size <= 0 {
		size = defaultQueueSize
	}
	ch := make(chan Message, size)
	l := &Listener{
		C:     ch,
		queue: ch,
		owner: q,
	}

	q.Lock()
	q.listeners[l] = struct{}{}
	q.Unlock()

	return l
}

// Count - number of attached listeners
func (q *BroadcastQueue) Count() int {
	q.RLock()
	defer q.RUnlock()
	return len(q.listeners)
}

// Dropped - messages not delivered because a listener was full
func (q *BroadcastQueue) Dropped() uint64 {
	return q.dropped.Uint64()
}

// Release - detach the listener and close its channel
func (l *Listener) Release() {
	l.once.Do(func() {
		l.owner.Lock()
		delete(l.owner.listeners, l)
		close(l.queue)
		l.owner.Unlock()
	})
}
