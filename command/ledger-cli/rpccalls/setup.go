// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/AwesomeEcosystem/nomics/fault"
)

// ErrFingerprintMismatch - server certificate is not the expected one
var ErrFingerprintMismatch = fault.InvalidError("certificate fingerprint mismatch")

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a ledgerd
//
// the daemon uses a self-signed certificate, so a non-blank
// fingerprint (hex SHA3-256 of the DER certificate) is the only
// check on the server identity
func NewClient(connect string, fingerprint string, verbose bool, handle io.Writer) (*Client, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if err != nil {
		return nil, err
	}

	if "" != fingerprint {
		err = checkFingerprint(conn, fingerprint)
		if nil != err {
			conn.Close()
			return nil, err
		}
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

func checkFingerprint(conn *tls.Conn, fingerprint string) error {
	certificates := conn.ConnectionState().PeerCertificates
	if 0 == len(certificates) {
		return ErrFingerprintMismatch
	}
	digest := sha3.Sum256(certificates[0].Raw)
	if hex.EncodeToString(digest[:]) != strings.ToLower(strings.TrimSpace(fingerprint)) {
		return ErrFingerprintMismatch
	}
	return nil
}

// Close - shutdown the ledgerd connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}

// call a method, echoing request and reply in verbose mode
func (c *Client) call(method string, arguments interface{}, reply interface{}) error {
	c.printJSON(method+" Request", arguments)
	if err := c.client.Call(method, arguments, reply); nil != err {
		return err
	}
	c.printJSON(method+" Reply", reply)
	return nil
}

func (c *Client) printJSON(title string, message interface{}) {
	if !c.verbose {
		return
	}
	fmt.Fprintf(c.handle, "%s:\n", title)
	_ = PrintJSON(c.handle, message)
}
