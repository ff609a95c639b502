// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/AwesomeEcosystem/nomics/rpc/token"
)

// DeployData - new ledger parameters
type DeployData struct {
	Name           string
	Symbol         string
	TotalSupply    uint64
	TransactionFee uint64
}

// TransferData - a signed transfer
type TransferData struct {
	Symbol     string
	From       string
	To         string
	Amount     uint64
	PrivateKey string
}

// Deploy - create a ledger; the reply holds the owner wallet
func (c *Client) Deploy(data *DeployData) (*token.DeployReply, error) {
	arguments := token.DeployArguments{
		Name:           data.Name,
		Symbol:         data.Symbol,
		TotalSupply:    data.TotalSupply,
		TransactionFee: data.TransactionFee,
	}
	var reply token.DeployReply
	if err := c.call("Token.Deploy", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Get - metadata of one ledger
func (c *Client) Get(symbol string) (*token.GetReply, error) {
	arguments := token.GetArguments{
		Symbol: symbol,
	}
	var reply token.GetReply
	if err := c.call("Token.Get", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// List - metadata of all ledgers
func (c *Client) List() (*token.ListReply, error) {
	var reply token.ListReply
	if err := c.call("Token.List", &token.ListArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// CreateWallet - new key pair for a ledger
func (c *Client) CreateWallet(symbol string) (*token.CreateWalletReply, error) {
	arguments := token.CreateWalletArguments{
		Symbol: symbol,
	}
	var reply token.CreateWalletReply
	if err := c.call("Token.CreateWallet", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Transfer - move tokens between wallets
func (c *Client) Transfer(data *TransferData) (*token.TransferReply, error) {
	arguments := token.TransferArguments{
		Symbol:     data.Symbol,
		From:       data.From,
		To:         data.To,
		Amount:     data.Amount,
		PrivateKey: data.PrivateKey,
	}
	var reply token.TransferReply
	if err := c.call("Token.Transfer", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Balance - current balance of a wallet
func (c *Client) Balance(symbol string, publicKey string) (*token.BalanceReply, error) {
	arguments := token.BalanceArguments{
		Symbol:    symbol,
		PublicKey: publicKey,
	}
	var reply token.BalanceReply
	if err := c.call("Token.Balance", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Transactions - one page of a wallet's history
func (c *Client) Transactions(symbol string, publicKey string, start uint64, count int) (*token.TransactionsReply, error) {
	arguments := token.TransactionsArguments{
		Symbol:    symbol,
		PublicKey: publicKey,
		Start:     start,
		Count:     count,
	}
	var reply token.TransactionsReply
	if err := c.call("Token.Transactions", &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
