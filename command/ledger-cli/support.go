// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/AwesomeEcosystem/nomics/command/ledger-cli/rpccalls"
)

// connect using the global options
func newClient(m *metadata) (*rpccalls.Client, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", m.connect)
	}
	return rpccalls.NewClient(m.connect, m.fingerprint, m.verbose, m.e)
}

func checkSymbol(symbol string) (string, error) {
	symbol = strings.TrimSpace(symbol)
	if "" == symbol {
		return "", fmt.Errorf("token symbol is required")
	}
	return symbol, nil
}

func checkPublicKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if "" == key {
		return "", fmt.Errorf("wallet public key is required")
	}
	return key, nil
}

func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if "" == name {
		return "", fmt.Errorf("token name is required")
	}
	return name, nil
}

func getMetadata(c *cli.Context) *metadata {
	return c.App.Metadata["config"].(*metadata)
}
