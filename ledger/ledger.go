// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/AwesomeEcosystem/nomics/counter"
	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/wallet"
)

// Notifier - called once for every appended transaction
//
// called with the ledger lock held, so it must not call back into
// the same ledger
type Notifier func(symbol string, tx *Transaction) error

// Ledger - one token and its transaction log
type Ledger struct {
	sync.RWMutex

	log *logger.L

	id             string
	name           string
	symbol         string
	owner          string
	totalSupply    uint64
	transactionFee uint64

	transactions []Transaction
	sequence     counter.Counter
	notifiers    []Notifier
}

// New - create an empty ledger, genesis has not yet run
func New(log *logger.L, name string, symbol string, totalSupply uint64, transactionFee uint64) (*Ledger, error) {
	if nil == log {
		logger.Panicf("ledger.New: nil logger")
	}
	if "" == name {
		return nil, fault.ErrRequiredName
	}
	if "" == symbol {
		return nil, fault.ErrRequiredSymbol
	}

	l := &Ledger{
		log:            log,
		id:             MakeID(symbol),
		name:           name,
		symbol:         symbol,
		totalSupply:    totalSupply,
		transactionFee: transactionFee,
		transactions:   make([]Transaction, 0, 16),
	}
	return l, nil
}

// Restore - rebuild a ledger from its persisted metadata and log
//
// the log must be in append order; an empty log gives a ledger that
// has not run genesis
func Restore(log *logger.L, metadata Metadata, transactions []Transaction) (*Ledger, error) {
	l, err := New(log, metadata.Name, metadata.Symbol, metadata.TotalSupply, metadata.TransactionFee)
	if nil != err {
		return nil, err
	}
	if metadata.ID != l.id {
		return nil, fault.ErrInvalidTokenID
	}

	if 0 == len(transactions) {
		return l, nil
	}

	l.owner = metadata.Owner
	if "" == l.owner {
		l.owner = transactions[0].To
	}

	next := uint64(0)
	for _, tx := range transactions {
		if tx.Sequence >= next {
			next = tx.Sequence + 1
		}
	}
	if next < uint64(len(transactions)) {
		next = uint64(len(transactions))
	}
	l.sequence.Set(next)

	l.transactions = append(l.transactions, transactions...)

	log.Debugf("%s: restored %d transactions", l.symbol, len(transactions))
	return l, nil
}

// ID - the ledger id
func (l *Ledger) ID() string {
	return l.id
}

// Symbol - the ledger symbol
func (l *Ledger) Symbol() string {
	return l.symbol
}

// Subscribe - add a notifier for appended transactions
func (l *Ledger) Subscribe(notifier Notifier) {
	l.Lock()
	l.notifiers = append(l.notifiers, notifier)
	l.Unlock()
}

// Metadata - snapshot of the ledger identity
func (l *Ledger) Metadata() Metadata {
	l.RLock()
	defer l.RUnlock()

	return Metadata{
		ID:             l.id,
		Name:           l.name,
		Symbol:         l.symbol,
		Owner:          l.owner,
		TotalSupply:    l.totalSupply,
		TransactionFee: l.transactionFee,
	}
}

// Count - number of transactions in the log
func (l *Ledger) Count() int {
	l.RLock()
	defer l.RUnlock()
	return len(l.transactions)
}

// Transactions - copy of the full log
func (l *Ledger) Transactions() []Transaction {
	l.RLock()
	defer l.RUnlock()

	txs := make([]Transaction, len(l.transactions))
	copy(txs, l.transactions)
	return txs
}

// InitGenesis - mint the total supply to a freshly generated owner
//
// returns nil, nil if genesis has already run.  If a notifier fails
// the genesis transaction is already in the log and the owner wallet
// is returned together with the error.
func (l *Ledger) InitGenesis() (*wallet.Wallet, error) {
	l.Lock()
	defer l.Unlock()

	if "" != l.owner {
		return nil, nil
	}

	w, err := wallet.New()
	if nil != err {
		return nil, err
	}

	l.owner = w.PublicKey

	sequence := l.sequence.Next()
	tx := Transaction{
		ID:                    l.id,
		PreviousTransactionID: nil,
		Timestamp:             now(),
		From:                  l.id,
		To:                    w.PublicKey,
		Amount:                l.totalSupply,
		Fee:                   0,
		Signature:             l.id,
		Sequence:              sequence,
	}

	l.log.Infof("%s: genesis: owner: %s  supply: %d", l.symbol, w.PublicKey, l.totalSupply)

	err = l.append(tx)
	return w, err
}

// CreateWallet - fresh keypair, the ledger is not changed
func (l *Ledger) CreateWallet() (*wallet.Wallet, error) {
	return wallet.New()
}

// CreateTransaction - transfer amount from one wallet to another
//
// the sender pays the amount plus the transaction fee; the fee is
// routed to the owner by a second transaction.  Nothing is appended
// unless the signature made with privateKey verifies against from.
//
// a notifier error is returned after the in-memory append, and the
// fee transaction is still appended
func (l *Ledger) CreateTransaction(from string, to string, amount uint64, privateKey string) error {
	if 0 == amount {
		return fault.ErrInvalidAmount
	}
	if _, err := wallet.ParsePublicKey(to); nil != err {
		return err
	}

	l.Lock()
	defer l.Unlock()

	total := amount + l.transactionFee
	if total < amount {
		return fault.ErrInvalidAmount
	}

	if total > l.balance(from) {
		return fault.ErrInsufficientBalance
	}

	previous := l.id
	if n := len(l.transactions); n > 0 {
		previous = l.transactions[n-1].ID
	}

	// sequence is only consumed once the transaction is accepted
	sequence := l.sequence.Uint64()
	timestamp := now()
	id := makeTransactionID(from, to, amount, l.transactionFee, timestamp, sequence)

	signature, err := wallet.Sign(id, privateKey)
	if nil != err {
		return err
	}
	if !wallet.Verify(id, signature, from) {
		l.log.Warnf("%s: transfer from: %s  rejected: %s", l.symbol, from, fault.ErrInvalidSignature)
		return fault.ErrInvalidSignature
	}

	l.sequence.Increment()
	tx := Transaction{
		ID:                    id,
		PreviousTransactionID: &previous,
		Timestamp:             timestamp,
		From:                  from,
		To:                    to,
		Amount:                amount,
		Fee:                   l.transactionFee,
		Signature:             signature,
		Sequence:              sequence,
	}
	firstErr := l.append(tx)

	if 0 == l.transactionFee {
		return firstErr
	}

	transferID := id
	sequence = l.sequence.Next()
	feeTx := Transaction{
		ID:                    makeTransactionID(l.id, l.owner, l.transactionFee, 0, timestamp, sequence),
		PreviousTransactionID: &transferID,
		Timestamp:             timestamp,
		From:                  l.id,
		To:                    l.owner,
		Amount:                l.transactionFee,
		Fee:                   0,
		Signature:             signature,
		Sequence:              sequence,
	}
	err = l.append(feeTx)
	if nil == firstErr {
		firstErr = err
	}
	return firstErr
}

// CalculateBalance - fold the log for one address, unknown addresses
// have zero balance
func (l *Ledger) CalculateBalance(publicKey string) uint64 {
	l.RLock()
	defer l.RUnlock()
	return l.balance(publicKey)
}

// GetTransactionsByPublicKey - transactions sent or received by an
// address in append order
func (l *Ledger) GetTransactionsByPublicKey(publicKey string) []Transaction {
	l.RLock()
	defer l.RUnlock()

	txs := make([]Transaction, 0, 8)
	for i := range l.transactions {
		if l.transactions[i].involves(publicKey) {
			txs = append(txs, l.transactions[i])
		}
	}
	return txs
}

// Sign - sign a message with a private key
func (l *Ledger) Sign(message string, privateKey string) (string, error) {
	return wallet.Sign(message, privateKey)
}

// Verify - check a signature against a public key
func (l *Ledger) Verify(message string, signature string, publicKey string) bool {
	return wallet.Verify(message, signature, publicKey)
}

// must hold lock
func (l *Ledger) balance(publicKey string) uint64 {
	credits := uint64(0)
	debits := uint64(0)
	for i := range l.transactions {
		tx := &l.transactions[i]
		if tx.To == publicKey {
			credits += tx.Amount
		}
		if tx.From == publicKey && tx.From != l.id {
			debits += tx.Amount + tx.Fee
		}
	}
	if debits > credits {
		l.log.Errorf("%s: %s: debits: %d exceed credits: %d", l.symbol, publicKey, debits, credits)
		return 0
	}
	return credits - debits
}

// must hold lock
func (l *Ledger) append(tx Transaction) error {
	l.transactions = append(l.transactions, tx)
	l.log.Debugf("%s: append: %d  id: %s", l.symbol, tx.Sequence, tx.ID)

	var firstErr error
	for _, notify := range l.notifiers {
		err := notify(l.symbol, &tx)
		if nil != err {
			l.log.Errorf("%s: notify: %d  error: %s", l.symbol, tx.Sequence, err)
			if nil == firstErr {
				firstErr = err
			}
		}
	}
	return firstErr
}

func now() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
