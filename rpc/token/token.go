// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/ledger"
	"github.com/AwesomeEcosystem/nomics/registry"
	"github.com/AwesomeEcosystem/nomics/rpc/ratelimit"
	"github.com/AwesomeEcosystem/nomics/wallet"
)

// Registry - the ledger host operations served over RPC
type Registry interface {
	DeployNewToken(name string, symbol string, totalSupply uint64, transactionFee uint64) (*registry.Deployment, error)
	GetLedgerBySymbol(symbol string) (ledger.Metadata, error)
	CreateWallet(symbol string) (*wallet.Wallet, error)
	CreateTransaction(symbol string, from string, to string, amount uint64, privateKey string) error
	CalculateBalance(symbol string, publicKey string) uint64
	GetTransactionsByPublicKey(symbol string, publicKey string) ([]ledger.Transaction, error)
	ListAllLedgers() []ledger.Metadata
}

// Token
// -----

// Token - type for the RPC
type Token struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Registry Registry
}

// MaximumTransactionsCount - largest page returned by Transactions
const (
	MaximumTransactionsCount = 100
)

// New - token RPC service
func New(log *logger.L, reg Registry, limiter *rate.Limiter) *Token {
	return &Token{
		Log:      log,
		Limiter:  limiter,
		Registry: reg,
	}
}

// Token deploy
// ------------

// DeployArguments - arguments for RPC
type DeployArguments struct {
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	TotalSupply    uint64 `json:"totalSupply"`
	TransactionFee uint64 `json:"transactionFee"`
}

// DeployReply - result of deploy RPC
type DeployReply struct {
	Ledger  ledger.Metadata `json:"ledger"`
	Wallet  *wallet.Wallet  `json:"wallet"`
	Balance uint64          `json:"balance"`
}

// Deploy - create a ledger and return its genesis wallet
func (token *Token) Deploy(arguments *DeployArguments, reply *DeployReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	log := token.Log
	log.Infof("Token.Deploy: name: %q  symbol: %q  supply: %d  fee: %d", arguments.Name, arguments.Symbol, arguments.TotalSupply, arguments.TransactionFee)

	// the request layer never replaces an existing ledger
	d, err := token.Registry.DeployNewToken(arguments.Name, arguments.Symbol, arguments.TotalSupply, arguments.TransactionFee)
	if nil != err {
		log.Warnf("deploy: %q  error: %s", arguments.Symbol, err)
		return err
	}

	reply.Ledger = d.Ledger
	reply.Wallet = d.Wallet
	reply.Balance = d.Balance

	return nil
}

// Token get
// ---------

// GetArguments - arguments for RPC
type GetArguments struct {
	Symbol string `json:"symbol"`
}

// GetReply - result of get RPC
type GetReply struct {
	Ledger ledger.Metadata `json:"ledger"`
}

// Get - metadata of one ledger
func (token *Token) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	token.Log.Debugf("Token.Get: %+v", arguments)

	m, err := token.Registry.GetLedgerBySymbol(arguments.Symbol)
	if nil != err {
		return err
	}
	reply.Ledger = m
	return nil
}

// Token list
// ----------

// ListArguments - arguments for RPC
type ListArguments struct{}

// ListReply - result of list RPC
type ListReply struct {
	Ledgers []ledger.Metadata `json:"ledgers"`
}

// List - metadata of every hosted ledger in registration order
func (token *Token) List(arguments *ListArguments, reply *ListReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	reply.Ledgers = token.Registry.ListAllLedgers()
	return nil
}

// Token wallet
// ------------

// CreateWalletArguments - arguments for RPC
type CreateWalletArguments struct {
	Symbol string `json:"symbol"`
}

// CreateWalletReply - result of wallet RPC
type CreateWalletReply struct {
	Wallet *wallet.Wallet `json:"wallet"`
}

// CreateWallet - fresh keypair for a ledger
func (token *Token) CreateWallet(arguments *CreateWalletArguments, reply *CreateWalletReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	w, err := token.Registry.CreateWallet(arguments.Symbol)
	if nil != err {
		return err
	}
	reply.Wallet = w
	return nil
}

// Token transfer
// --------------

// TransferArguments - arguments for RPC
type TransferArguments struct {
	Symbol     string `json:"symbol"`
	From       string `json:"from"`
	To         string `json:"to"`
	Amount     uint64 `json:"amount"`
	PrivateKey string `json:"privateKey"`
}

// TransferReply - result of transfer RPC
type TransferReply struct {
	Balance uint64 `json:"balance"` // sender balance after the transfer
}

// Transfer - move amount from one address to another
func (token *Token) Transfer(arguments *TransferArguments, reply *TransferReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	log := token.Log
	log.Infof("Token.Transfer: %s  from: %s  to: %s  amount: %d", arguments.Symbol, arguments.From, arguments.To, arguments.Amount)

	if "" == arguments.From || "" == arguments.To || "" == arguments.PrivateKey {
		return fault.ErrMissingParameters
	}

	err := token.Registry.CreateTransaction(arguments.Symbol, arguments.From, arguments.To, arguments.Amount, arguments.PrivateKey)
	if nil != err {
		log.Warnf("transfer: %s  error: %s", arguments.Symbol, err)
		return err
	}

	reply.Balance = token.Registry.CalculateBalance(arguments.Symbol, arguments.From)
	return nil
}

// Token balance
// -------------

// BalanceArguments - arguments for RPC
type BalanceArguments struct {
	Symbol    string `json:"symbol"`
	PublicKey string `json:"publicKey"`
}

// BalanceReply - result of balance RPC
type BalanceReply struct {
	Balance uint64 `json:"balance"`
}

// Balance - current balance of an address
func (token *Token) Balance(arguments *BalanceArguments, reply *BalanceReply) error {

	if err := ratelimit.Limit(token.Limiter); nil != err {
		return err
	}

	if _, err := token.Registry.GetLedgerBySymbol(arguments.Symbol); nil != err {
		return err
	}

	reply.Balance = token.Registry.CalculateBalance(arguments.Symbol, arguments.PublicKey)
	return nil
}

// Token transactions
// ------------------

// TransactionsArguments - arguments for RPC
type TransactionsArguments struct {
	Symbol    string `json:"symbol"`
	PublicKey string `json:"publicKey"`
	Start     uint64 `json:"start"` // first record number
	Count     int    `json:"count"` // number of records
}

// TransactionsReply - result of transactions RPC
type TransactionsReply struct {
	Next         uint64               `json:"next"` // Start value for the next call
	Transactions []ledger.Transaction `json:"transactions"`
}

// Transactions - history of an address in append order
func (token *Token) Transactions(arguments *TransactionsArguments, reply *TransactionsReply) error {

	if err := ratelimit.LimitN(token.Limiter, arguments.Count, MaximumTransactionsCount); nil != err {
		return err
	}

	token.Log.Debugf("Token.Transactions: %+v", arguments)

	txs, err := token.Registry.GetTransactionsByPublicKey(arguments.Symbol, arguments.PublicKey)
	if nil != err {
		return err
	}

	n := uint64(len(txs))
	start := arguments.Start
	if start > n {
		start = n
	}
	end := start + uint64(arguments.Count)
	if end > n {
		end = n
	}

	reply.Transactions = txs[start:end]
	reply.Next = end
	return nil
}
