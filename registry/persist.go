// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/json"
	"fmt"

	"github.com/bitmark-inc/logger"

	"github.com/AwesomeEcosystem/nomics/counter"
	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/ledger"
	"github.com/AwesomeEcosystem/nomics/storage"
)

// TransactionCommand - message bus command for an appended transaction
//
// parameters: symbol, transaction JSON
const TransactionCommand = "transaction"

// 16 hex digits sort in append order on every backend
func sequenceKey(sequence uint64) string {
	return fmt.Sprintf("%016x", sequence)
}

type writeItem struct {
	namespace storage.Namespace
	symbol    string
	key       string
	data      []byte
}

// persistence notifier for one ledger namespace
func (r *Registry) persistence(namespace storage.Namespace) ledger.Notifier {
	return func(symbol string, tx *ledger.Transaction) error {
		data, err := json.Marshal(tx)
		if nil != err {
			logger.Panicf("registry: marshal transaction: %s  error: %s", tx.ID, err)
		}
		key := sequenceKey(tx.Sequence)

		if Asynchronous == r.durability {
			r.writer.queue <- writeItem{
				namespace: namespace,
				symbol:    symbol,
				key:       key,
				data:      data,
			}
			r.announce(symbol, data)
			return nil
		}

		err = namespace.Put(key, data)
		if nil != err {
			r.failures.Increment()
			return fault.Store(err, "persist transaction: %s/%s", symbol, key)
		}
		r.announce(symbol, data)
		return nil
	}
}

func (r *Registry) announce(symbol string, data []byte) {
	if nil != r.bus {
		r.bus.Send(TransactionCommand, []byte(symbol), data)
	}
}

// background writer for asynchronous durability
type writer struct {
	log      *logger.L
	queue    chan writeItem
	failures *counter.Counter
}

func newWriter(log *logger.L, size int, failures *counter.Counter) *writer {
	return &writer{
		log:      log,
		queue:    make(chan writeItem, size),
		failures: failures,
	}
}

// Run - write queued transactions until shutdown, then drain the queue
func (w *writer) Run(args interface{}, shutdown <-chan struct{}) {
	w.log.Info("writer: starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item := <-w.queue:
			w.write(item)
		}
	}

	n := 0
drain:
	for {
		select {
		case item := <-w.queue:
			w.write(item)
			n += 1
		default:
			break drain
		}
	}

	w.log.Infof("writer: drained: %d", n)
	w.log.Info("writer: stopped")
}

func (w *writer) write(item writeItem) {
	err := item.namespace.Put(item.key, item.data)
	if nil != err {
		w.failures.Increment()
		w.log.Errorf("writer: %s/%s  error: %s", item.symbol, item.key, err)
	}
}
