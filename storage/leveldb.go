// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/AwesomeEcosystem/nomics/fault"
)

type levelDatabase struct {
	sync.RWMutex
	log   *logger.L
	db    *leveldb.DB
	cache *readCache
	index *levelNamespace
}

type levelNamespace struct {
	name   string
	prefix []byte
	owner  *levelDatabase
}

func openLevelDB(log *logger.L, path string) (*levelDatabase, error) {
	db, err := leveldb.OpenFile(path, &ldb_opt.Options{
		ErrorIfMissing: false,
	})
	if nil != err {
		return nil, errors.Wrapf(err, "leveldb: open: %q", path)
	}

	d := &levelDatabase{
		log:   log,
		db:    db,
		cache: newReadCache(),
	}
	d.index = &levelNamespace{
		name:   IndexName,
		prefix: []byte{indexPrefix},
		owner:  d,
	}
	return d, nil
}

func (d *levelDatabase) Index() Namespace {
	return d.index
}

func (d *levelDatabase) Open(symbol string) (Namespace, error) {
	if err := validSymbol(symbol); nil != err {
		return nil, err
	}
	n := &levelNamespace{
		name:   symbol,
		prefix: namespacePrefix(symbol),
		owner:  d,
	}
	return n, nil
}

func (d *levelDatabase) Close() error {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	d.cache.Clear()
	d.log.Info("leveldb closed")
	return err
}

func (n *levelNamespace) Name() string {
	return n.name
}

// store a key/value bytes pair to the database
func (n *levelNamespace) Put(key string, value []byte) error {
	n.owner.RLock()
	defer n.owner.RUnlock()
	if nil == n.owner.db {
		return fault.ErrNotInitialised
	}

	k := prefixKey(n.prefix, key)
	err := n.owner.db.Put(k, value, nil)
	if nil != err {
		return errors.Wrapf(err, "leveldb: put: %s/%s", n.name, key)
	}
	n.owner.cache.Set(k, value)
	return nil
}

// read a value for a given key
func (n *levelNamespace) Get(key string) ([]byte, error) {
	n.owner.RLock()
	defer n.owner.RUnlock()
	if nil == n.owner.db {
		return nil, fault.ErrNotInitialised
	}

	k := prefixKey(n.prefix, key)
	if value, found := n.owner.cache.Get(k); found {
		return value, nil
	}

	value, err := n.owner.db.Get(k, nil)
	if leveldb.ErrNotFound == err {
		return nil, fault.ErrKeyNotFound
	}
	if nil != err {
		return nil, errors.Wrapf(err, "leveldb: get: %s/%s", n.name, key)
	}
	n.owner.cache.Set(k, value)
	return value, nil
}

// check if a key exists
func (n *levelNamespace) Has(key string) (bool, error) {
	n.owner.RLock()
	defer n.owner.RUnlock()
	if nil == n.owner.db {
		return false, fault.ErrNotInitialised
	}

	k := prefixKey(n.prefix, key)
	if _, found := n.owner.cache.Get(k); found {
		return true, nil
	}
	found, err := n.owner.db.Has(k, nil)
	if nil != err {
		return false, errors.Wrapf(err, "leveldb: has: %s/%s", n.name, key)
	}
	return found, nil
}

// all records in ascending key order
func (n *levelNamespace) All() ([]Element, error) {
	n.owner.RLock()
	defer n.owner.RUnlock()
	if nil == n.owner.db {
		return nil, fault.ErrNotInitialised
	}

	iter := n.owner.db.NewIterator(ldb_util.BytesPrefix(n.prefix), nil)

	elements := make([]Element, 0, 16)
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		elements = append(elements, Element{
			Key:   string(key[len(n.prefix):]),
			Value: dataValue,
		})
	}
	iter.Release()
	if err := iter.Error(); nil != err {
		return nil, errors.Wrapf(err, "leveldb: iterate: %s", n.name)
	}
	return elements, nil
}
