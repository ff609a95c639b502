// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/AwesomeEcosystem/nomics/command/ledger-cli/rpccalls"
)

func runDeploy(c *cli.Context) error {

	m := getMetadata(c)

	name, err := checkName(c.String("name"))
	if nil != err {
		return err
	}
	symbol, err := checkSymbol(c.String("symbol"))
	if nil != err {
		return err
	}
	supply := c.Uint64("supply")
	if 0 == supply {
		return fmt.Errorf("total supply must be greater than zero")
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Deploy(&rpccalls.DeployData{
		Name:           name,
		Symbol:         symbol,
		TotalSupply:    supply,
		TransactionFee: c.Uint64("fee"),
	})
	if nil != err {
		return err
	}

	return rpccalls.PrintJSON(m.w, response)
}

func runGet(c *cli.Context) error {

	m := getMetadata(c)

	symbol, err := checkSymbol(c.String("symbol"))
	if nil != err {
		return err
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Get(symbol)
	if nil != err {
		return err
	}

	return rpccalls.PrintJSON(m.w, response)
}

func runList(c *cli.Context) error {

	m := getMetadata(c)

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.List()
	if nil != err {
		return err
	}

	return rpccalls.PrintJSON(m.w, response)
}

func runWallet(c *cli.Context) error {

	m := getMetadata(c)

	symbol, err := checkSymbol(c.String("symbol"))
	if nil != err {
		return err
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.CreateWallet(symbol)
	if nil != err {
		return err
	}

	return rpccalls.PrintJSON(m.w, response)
}

func runTransfer(c *cli.Context) error {

	m := getMetadata(c)

	symbol, err := checkSymbol(c.String("symbol"))
	if nil != err {
		return err
	}
	from, err := checkPublicKey(c.String("from"))
	if nil != err {
		return err
	}
	to, err := checkPublicKey(c.String("to"))
	if nil != err {
		return err
	}
	amount := c.Uint64("amount")
	if 0 == amount {
		return fmt.Errorf("amount must be greater than zero")
	}
	privateKey := c.String("key")
	if "" == privateKey {
		return fmt.Errorf("sender private key is required")
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Transfer(&rpccalls.TransferData{
		Symbol:     symbol,
		From:       from,
		To:         to,
		Amount:     amount,
		PrivateKey: privateKey,
	})
	if nil != err {
		return err
	}

	return rpccalls.PrintJSON(m.w, response)
}

func runBalance(c *cli.Context) error {

	m := getMetadata(c)

	symbol, err := checkSymbol(c.String("symbol"))
	if nil != err {
		return err
	}
	address, err := checkPublicKey(c.String("address"))
	if nil != err {
		return err
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Balance(symbol, address)
	if nil != err {
		return err
	}

	return rpccalls.PrintJSON(m.w, response)
}

func runTransactions(c *cli.Context) error {

	m := getMetadata(c)

	symbol, err := checkSymbol(c.String("symbol"))
	if nil != err {
		return err
	}
	address, err := checkPublicKey(c.String("address"))
	if nil != err {
		return err
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Transactions(symbol, address, c.Uint64("start"), c.Int("count"))
	if nil != err {
		return err
	}

	return rpccalls.PrintJSON(m.w, response)
}

func runInfo(c *cli.Context) error {

	m := getMetadata(c)

	client, err := newClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Info()
	if nil != err {
		return err
	}

	return rpccalls.PrintJSON(m.w, response)
}
