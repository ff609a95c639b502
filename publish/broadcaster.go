// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/AwesomeEcosystem/nomics/messagebus"
	"github.com/AwesomeEcosystem/nomics/util"
	"github.com/AwesomeEcosystem/nomics/zmqutil"
)

const (
	broadcasterZapDomain = "broadcaster"
	listenerQueueSize    = 1000
)

type broadcaster struct {
	log      *logger.L
	socket4  *zmq.Socket
	socket6  *zmq.Socket
	listener *messagebus.Listener
}

// initialise the broadcaster
func (brdc *broadcaster) initialise(log *logger.L, privateKey []byte, broadcast []string, bus *messagebus.BroadcastQueue) error {
	brdc.log = log

	log.Info("initialising…")

	c, err := util.NewConnections(broadcast)
	if nil != err {
		log.Errorf("ip and port error: %s", err)
		return err
	}

	// allocate IPv4 and IPv6 sockets
	brdc.socket4, brdc.socket6, err = zmqutil.NewBind(log, zmq.PUB, broadcasterZapDomain, privateKey, c)
	if nil != err {
		log.Errorf("bind error: %s", err)
		return err
	}

	brdc.listener = bus.Listen(listenerQueueSize)
	return nil
}

// Run - forward bus messages until shutdown
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {
	log := brdc.log

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item, ok := <-brdc.listener.C:
			if !ok {
				break loop
			}
			log.Debugf("sending: %s  parameters: %d", item.Command, len(item.Parameters))
			brdc.process(brdc.socket4, &item)
			brdc.process(brdc.socket6, &item)
		}
	}

	brdc.listener.Release()
	if nil != brdc.socket4 {
		brdc.socket4.Close()
	}
	if nil != brdc.socket6 {
		brdc.socket6.Close()
	}
	log.Info("stopped")
}

// send one message as a multipart frame set
func (brdc *broadcaster) process(socket *zmq.Socket, item *messagebus.Message) {
	if nil == socket {
		return
	}

	flags := zmq.SNDMORE | zmq.DONTWAIT
	if 0 == len(item.Parameters) {
		flags = zmq.DONTWAIT
	}
	_, err := socket.Send(item.Command, flags)
	if nil != err {
		brdc.log.Warnf("send: %s  error: %s", item.Command, err)
		return
	}

	last := len(item.Parameters) - 1
	for i, p := range item.Parameters {
		if i == last {
			_, err = socket.SendBytes(p, zmq.DONTWAIT)
		} else {
			_, err = socket.SendBytes(p, zmq.SNDMORE|zmq.DONTWAIT)
		}
		if nil != err {
			brdc.log.Warnf("send: %s  part: %d  error: %s", item.Command, i, err)
			return
		}
	}
}
