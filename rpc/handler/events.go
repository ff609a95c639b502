// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/AwesomeEcosystem/nomics/registry"
)

const (
	eventQueueSize    = 100
	eventWriteTimeout = 10 * time.Second
	eventPingInterval = 30 * time.Second
)

// Event - one appended transaction sent to a websocket subscriber
type Event struct {
	Subscriber  string          `json:"subscriber"`
	Symbol      string          `json:"symbol"`
	Transaction json.RawMessage `json:"transaction"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Events - websocket feed of appended transactions
//
// query parameters:
//   symbol=<symbol>   only transactions of this ledger
func (h *handler) Events(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.permitted("events", r, false) {
		sendForbidden(w)
		return
	}

	if nil == h.bus {
		sendServiceUnavailable(w)
		return
	}

	if !h.acquire(w) {
		return
	}
	defer h.count.Decrement()

	symbol := r.URL.Query().Get("symbol")

	conn, err := upgrader.Upgrade(w, r, nil)
	if nil != err {
		h.log.Warnf("events: upgrade: %s  error: %s", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	subscriber := uuid.New().String()
	listener := h.bus.Listen(eventQueueSize)
	defer listener.Release()

	h.log.Infof("events: subscriber: %s  from: %s  symbol: %q", subscriber, r.RemoteAddr, symbol)

	// the reader only detects the peer going away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); nil != err {
				return
			}
		}
	}()

	ping := time.NewTicker(eventPingInterval)
	defer ping.Stop()

loop:
	for {
		select {
		case <-h.shutdown:
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown"),
				time.Now().Add(eventWriteTimeout),
			)
			break loop

		case <-closed:
			break loop

		case <-ping.C:
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(eventWriteTimeout))
			if nil != err {
				break loop
			}

		case item, ok := <-listener.C:
			if !ok {
				break loop
			}
			if registry.TransactionCommand != item.Command || 2 != len(item.Parameters) {
				continue loop
			}
			s := string(item.Parameters[0])
			if "" != symbol && symbol != s {
				continue loop
			}

			_ = conn.SetWriteDeadline(time.Now().Add(eventWriteTimeout))
			err := conn.WriteJSON(Event{
				Subscriber:  subscriber,
				Symbol:      s,
				Transaction: json.RawMessage(item.Parameters[1]),
			})
			if nil != err {
				h.log.Debugf("events: subscriber: %s  write error: %s", subscriber, err)
				break loop
			}
		}
	}

	h.log.Infof("events: subscriber: %s  finished", subscriber)
}
