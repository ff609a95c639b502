// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/json"
	"sort"
	"strconv"
	"sync"
	"unicode"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/AwesomeEcosystem/nomics/background"
	"github.com/AwesomeEcosystem/nomics/counter"
	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/ledger"
	"github.com/AwesomeEcosystem/nomics/messagebus"
	"github.com/AwesomeEcosystem/nomics/storage"
	"github.com/AwesomeEcosystem/nomics/wallet"
)

const (
	defaultQueueSize = 1000

	// separates a symbol from its generation in a namespace name
	generationSeparator = "\x01"
)

// Options - registry behaviour
type Options struct {
	Durability       Durability
	RejectDuplicates bool
	QueueSize        int                        // asynchronous writer queue
	Bus              *messagebus.BroadcastQueue // optional announcements
}

// Deployment - result of deploying a ledger
type Deployment struct {
	Ledger  ledger.Metadata `json:"ledger"`
	Wallet  *wallet.Wallet  `json:"wallet"`
	Balance uint64          `json:"balance"`
}

// index record, keyed by symbol
type record struct {
	ledger.Metadata
	Native     bool   `json:"native,omitempty"`
	Position   uint64 `json:"position"`
	Generation uint64 `json:"generation,omitempty"`
}

type entry struct {
	ledger     *ledger.Ledger
	native     bool
	position   uint64
	generation uint64
}

// Registry - symbol to ledger routing
type Registry struct {
	sync.RWMutex

	log       *logger.L
	ledgerLog *logger.L

	db               storage.Database
	durability       Durability
	rejectDuplicates bool
	bus              *messagebus.BroadcastQueue

	entries      map[string]*entry
	native       *entry
	nextPosition uint64

	writer    *writer
	processes *background.T
	failures  counter.Counter
	closed    bool
}

// New - create a registry and restore all ledgers found in the database
func New(log *logger.L, db storage.Database, options Options) (*Registry, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	if nil == db {
		return nil, fault.ErrNotInitialised
	}
	if options.Durability != Synchronous && options.Durability != Asynchronous {
		return nil, fault.ErrInvalidDurability
	}

	r := &Registry{
		log:              log,
		ledgerLog:        logger.New("ledger"),
		db:               db,
		durability:       options.Durability,
		rejectDuplicates: options.RejectDuplicates,
		bus:              options.Bus,
		entries:          make(map[string]*entry),
	}

	if Asynchronous == r.durability {
		size := options.QueueSize
		if size <= 0 {
			size = defaultQueueSize
		}
		r.writer = newWriter(log, size, &r.failures)
	}

	err := r.restore()
	if nil != err {
		log.Errorf("restore error: %s", err)
		return nil, err
	}

	if nil != r.writer {
		r.processes = background.Start(background.Processes{r.writer}, nil)
	}

	log.Infof("durability: %s  reject duplicates: %t", r.durability, r.rejectDuplicates)
	return r, nil
}

// rebuild every ledger from the index and its namespace
func (r *Registry) restore() error {
	records, err := r.db.Index().All()
	if nil != err {
		return fault.Store(err, "load index")
	}

	transactionCount := 0
	for _, element := range records {
		var rec record
		err := json.Unmarshal(element.Value, &rec)
		if nil != err {
			return errors.Wrapf(err, "registry: decode index record: %q", element.Key)
		}

		namespace, err := r.db.Open(namespaceName(rec.Symbol, rec.Generation))
		if nil != err {
			return fault.Store(err, "open namespace: %s", rec.Symbol)
		}

		elements, err := namespace.All()
		if nil != err {
			return fault.Store(err, "load transactions: %s", rec.Symbol)
		}

		transactions := make([]ledger.Transaction, len(elements))
		for i, e := range elements {
			err := json.Unmarshal(e.Value, &transactions[i])
			if nil != err {
				return errors.Wrapf(err, "registry: decode transaction: %s/%s", rec.Symbol, e.Key)
			}
		}

		l, err := ledger.Restore(r.ledgerLog, rec.Metadata, transactions)
		if nil != err {
			return errors.Wrapf(err, "registry: restore: %s", rec.Symbol)
		}
		l.Subscribe(r.persistence(namespace))

		e := &entry{
			ledger:     l,
			native:     rec.Native,
			position:   rec.Position,
			generation: rec.Generation,
		}
		r.entries[rec.Symbol] = e
		if rec.Native {
			r.native = e
		}
		if rec.Position >= r.nextPosition {
			r.nextPosition = rec.Position + 1
		}
		transactionCount += len(transactions)

		r.log.Debugf("restored: %s  transactions: %d", rec.Symbol, len(transactions))
	}

	r.log.Infof("restored ledgers: %d  transactions: %d", len(r.entries), transactionCount)
	return nil
}

// DeployToken - create, mint and register a new ledger
//
// an existing hosted ledger with the same symbol is replaced unless
// the registry rejects duplicates
func (r *Registry) DeployToken(name string, symbol string, totalSupply uint64, transactionFee uint64) (*Deployment, error) {
	r.Lock()
	defer r.Unlock()

	if r.closed {
		return nil, fault.ErrNotInitialised
	}
	return r.deploy(name, symbol, totalSupply, transactionFee, false, r.rejectDuplicates)
}

// DeployNewToken - create, mint and register a ledger for a symbol not yet hosted
//
// the existence check and the deploy happen under one lock
func (r *Registry) DeployNewToken(name string, symbol string, totalSupply uint64, transactionFee uint64) (*Deployment, error) {
	r.Lock()
	defer r.Unlock()

	if r.closed {
		return nil, fault.ErrNotInitialised
	}
	return r.deploy(name, symbol, totalSupply, transactionFee, false, true)
}

// EnsureNative - deploy the native ledger if it does not exist yet
//
// returns nil, nil when the native ledger was already present
func (r *Registry) EnsureNative(name string, symbol string, totalSupply uint64, transactionFee uint64) (*Deployment, error) {
	r.Lock()
	defer r.Unlock()

	if r.closed {
		return nil, fault.ErrNotInitialised
	}

	if nil != r.native {
		if existing := r.native.ledger.Symbol(); existing != symbol {
			r.log.Warnf("native ledger: %s  configured symbol: %s ignored", existing, symbol)
		}
		return nil, nil
	}
	if _, found := r.entries[symbol]; found {
		r.log.Criticalf("native ledger: %s  already used by a hosted ledger", symbol)
		return nil, fault.ErrTokenAlreadyExists
	}
	return r.deploy(name, symbol, totalSupply, transactionFee, true, true)
}

// must hold write lock
func (r *Registry) deploy(name string, symbol string, totalSupply uint64, transactionFee uint64, native bool, reject bool) (*Deployment, error) {
	if err := validSymbol(symbol); nil != err {
		return nil, err
	}

	position := r.nextPosition
	generation := uint64(0)
	existing, found := r.entries[symbol]
	if found {
		if existing.native || native || reject {
			return nil, fault.ErrTokenAlreadyExists
		}
		position = existing.position
		generation = existing.generation + 1
		r.log.Warnf("deploy: %s  replaces existing ledger", symbol)
	}

	l, err := ledger.New(r.ledgerLog, name, symbol, totalSupply, transactionFee)
	if nil != err {
		return nil, err
	}

	namespace, err := r.db.Open(namespaceName(symbol, generation))
	if nil != err {
		return nil, fault.Store(err, "open namespace: %s", symbol)
	}
	l.Subscribe(r.persistence(namespace))

	owner, err := l.InitGenesis()
	if nil != err {
		r.log.Errorf("deploy: %s  genesis error: %s", symbol, err)
		return nil, err
	}

	rec := record{
		Metadata:   l.Metadata(),
		Native:     native,
		Position:   position,
		Generation: generation,
	}
	data, err := json.Marshal(rec)
	if nil != err {
		logger.Panicf("registry: marshal index record: %s  error: %s", symbol, err)
	}
	err = r.db.Index().Put(symbol, data)
	if nil != err {
		r.failures.Increment()
		r.log.Errorf("deploy: %s  metadata error: %s", symbol, err)
		return nil, fault.Store(err, "persist metadata: %s", symbol)
	}

	e := &entry{
		ledger:     l,
		native:     native,
		position:   position,
		generation: generation,
	}
	r.entries[symbol] = e
	if native {
		r.native = e
	}
	if !found {
		r.nextPosition += 1
	}

	r.log.Infof("deployed: %s  name: %q  supply: %d  fee: %d  native: %t", symbol, name, totalSupply, transactionFee, native)

	d := &Deployment{
		Ledger:  rec.Metadata,
		Wallet:  owner,
		Balance: l.CalculateBalance(owner.PublicKey),
	}
	return d, nil
}

// GetLedgerBySymbol - metadata of a hosted or native ledger
func (r *Registry) GetLedgerBySymbol(symbol string) (ledger.Metadata, error) {
	r.RLock()
	defer r.RUnlock()

	l, err := r.lookup(symbol)
	if nil != err {
		return ledger.Metadata{}, err
	}
	return l.Metadata(), nil
}

// CreateWallet - fresh keypair for a ledger
func (r *Registry) CreateWallet(symbol string) (*wallet.Wallet, error) {
	r.RLock()
	defer r.RUnlock()

	l, err := r.lookup(symbol)
	if nil != err {
		return nil, err
	}
	return l.CreateWallet()
}

// CreateTransaction - transfer on the ledger for symbol
func (r *Registry) CreateTransaction(symbol string, from string, to string, amount uint64, privateKey string) error {
	r.RLock()
	defer r.RUnlock()

	l, err := r.lookup(symbol)
	if nil != err {
		return err
	}
	return l.CreateTransaction(from, to, amount, privateKey)
}

// CalculateBalance - balance of an address, zero if the ledger does not exist
func (r *Registry) CalculateBalance(symbol string, publicKey string) uint64 {
	r.RLock()
	defer r.RUnlock()

	l, err := r.lookup(symbol)
	if nil != err {
		return 0
	}
	return l.CalculateBalance(publicKey)
}

// GetTransactionsByPublicKey - history of an address on one ledger
func (r *Registry) GetTransactionsByPublicKey(symbol string, publicKey string) ([]ledger.Transaction, error) {
	r.RLock()
	defer r.RUnlock()

	l, err := r.lookup(symbol)
	if nil != err {
		return nil, err
	}
	return l.GetTransactionsByPublicKey(publicKey), nil
}

// ListAllLedgers - metadata of every hosted ledger in registration order
func (r *Registry) ListAllLedgers() []ledger.Metadata {
	r.RLock()
	defer r.RUnlock()

	entries := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		if !e.native {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].position < entries[j].position
	})

	result := make([]ledger.Metadata, len(entries))
	for i, e := range entries {
		result[i] = e.ledger.Metadata()
	}
	return result
}

// Native - metadata of the native ledger, if any
func (r *Registry) Native() (ledger.Metadata, bool) {
	r.RLock()
	defer r.RUnlock()

	if nil == r.native {
		return ledger.Metadata{}, false
	}
	return r.native.ledger.Metadata(), true
}

// Count - number of hosted ledgers
func (r *Registry) Count() int {
	r.RLock()
	defer r.RUnlock()

	n := len(r.entries)
	if nil != r.native {
		n -= 1
	}
	return n
}

// PersistFailures - number of writes that did not reach the database
func (r *Registry) PersistFailures() uint64 {
	return r.failures.Uint64()
}

// Close - stop accepting operations and drain pending writes
//
// the database is not closed
func (r *Registry) Close() error {
	r.Lock()
	if r.closed {
		r.Unlock()
		return nil
	}
	r.closed = true
	r.Unlock()

	r.processes.Stop()
	r.log.Infof("closed  persist failures: %d", r.failures.Uint64())
	return nil
}

// must hold lock
func (r *Registry) lookup(symbol string) (*ledger.Ledger, error) {
	if r.closed {
		return nil, fault.ErrNotInitialised
	}
	e, ok := r.entries[symbol]
	if !ok {
		return nil, fault.ErrTokenNotFound
	}
	return e.ledger, nil
}

func validSymbol(symbol string) error {
	if "" == symbol {
		return fault.ErrRequiredSymbol
	}
	for _, c := range symbol {
		if unicode.IsControl(c) {
			return fault.ErrInvalidSymbol
		}
	}
	return nil
}

// a replaced ledger gets a fresh namespace
func namespaceName(symbol string, generation uint64) string {
	if 0 == generation {
		return symbol
	}
	return symbol + generationSeparator + strconv.FormatUint(generation, 10)
}
