// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/urfave/cli"

	"github.com/AwesomeEcosystem/nomics/command/ledger-cli/rpccalls"
	"github.com/AwesomeEcosystem/nomics/rpc/handler"
)

const eventsPath = "/ledgerd/events"

func runWatch(c *cli.Context) error {

	m := getMetadata(c)

	hostPort := strings.TrimSpace(c.String("https"))
	if "" == hostPort {
		return fmt.Errorf("https host and port is required")
	}

	return watch(m, eventsURL(hostPort, c.String("symbol")), c.Int("limit"))
}

func eventsURL(hostPort string, symbol string) string {
	u := url.URL{
		Scheme: "wss",
		Host:   hostPort,
		Path:   eventsPath,
	}
	if "" != symbol {
		u.RawQuery = url.Values{"symbol": []string{symbol}}.Encode()
	}
	return u.String()
}

// print each event until the server closes or limit is reached
func watch(m *metadata, target string, limit int) error {
	if m.verbose {
		fmt.Fprintf(m.e, "watch: %s\n", target)
	}

	dialer := websocket.Dialer{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
	}
	conn, _, err := dialer.Dial(target, nil)
	if nil != err {
		return err
	}
	defer conn.Close()

	for n := 0; 0 == limit || n < limit; n += 1 {
		var event handler.Event
		err := conn.ReadJSON(&event)
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || io.EOF == err {
			return nil
		}
		if nil != err {
			return err
		}
		if err := rpccalls.PrintJSON(m.w, event); nil != err {
			return err
		}
	}

	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	return conn.WriteMessage(websocket.CloseMessage, message)
}
