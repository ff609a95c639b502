// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/AwesomeEcosystem/nomics/fault"
)

// Connection - a canonical IP:Port pair
type Connection struct {
	ip   net.IP
	port int
}

// NewConnection - parse a host:port where host is a literal IP
//
// "*" as the host binds all IPv4 interfaces
func NewConnection(hostPort string) (*Connection, error) {
	host, port, err := net.SplitHostPort(strings.TrimSpace(hostPort))
	if nil != err {
		return nil, fault.ErrInvalidIPAddress
	}

	host = strings.TrimSpace(host)
	if "*" == host {
		host = "0.0.0.0"
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return nil, fault.ErrInvalidIPAddress
	}

	numericPort, err := strconv.Atoi(strings.TrimSpace(port))
	if nil != err || numericPort < 1 || numericPort > 65535 {
		return nil, fault.ErrInvalidPortNumber
	}

	c := &Connection{
		ip:   ip,
		port: numericPort,
	}
	return c, nil
}

// NewConnections - parse a list of host:port strings
func NewConnections(hostPorts []string) ([]*Connection, error) {
	if 0 == len(hostPorts) {
		return nil, fault.ErrMissingParameters
	}
	c := make([]*Connection, len(hostPorts))
	for i, hostPort := range hostPorts {
		conn, err := NewConnection(hostPort)
		if nil != err {
			return nil, err
		}
		c[i] = conn
	}
	return c, nil
}

// CanonicalIPandPort - string form with an optional prefix
//
// examples:
//   IPv4:  127.0.0.1:1234
//   IPv6:  [::1]:1234
//
// the second value is true for IPv6
func (c *Connection) CanonicalIPandPort(prefix string) (string, bool) {
	port := strconv.Itoa(c.port)
	if nil != c.ip.To4() {
		return prefix + c.ip.String() + ":" + port, false
	}
	return prefix + "[" + c.ip.String() + "]:" + port, true
}

// String - canonical form without prefix
func (c *Connection) String() string {
	s, _ := c.CanonicalIPandPort("")
	return s
}
