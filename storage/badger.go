// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"github.com/AwesomeEcosystem/nomics/fault"
)

type badgerDatabase struct {
	sync.RWMutex
	log   *logger.L
	db    *badger.DB
	index *badgerNamespace
}

type badgerNamespace struct {
	name   string
	prefix []byte
	owner  *badgerDatabase
}

// route badger's own messages to the storage channel
type badgerLogger struct {
	log *logger.L
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.log.Errorf(format, args...)
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.log.Warnf(format, args...)
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.log.Debugf(format, args...)
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.log.Tracef(format, args...)
}

func openBadger(log *logger.L, path string) (*badgerDatabase, error) {
	options := badger.DefaultOptions(path).WithLogger(badgerLogger{log: log})
	db, err := badger.Open(options)
	if nil != err {
		return nil, errors.Wrapf(err, "badger: open: %q", path)
	}

	d := &badgerDatabase{
		log: log,
		db:  db,
	}
	d.index = &badgerNamespace{
		name:   IndexName,
		prefix: []byte{indexPrefix},
		owner:  d,
	}
	return d, nil
}

func (d *badgerDatabase) Index() Namespace {
	return d.index
}

func (d *badgerDatabase) Open(symbol string) (Namespace, error) {
	if err := validSymbol(symbol); nil != err {
		return nil, err
	}
	n := &badgerNamespace{
		name:   symbol,
		prefix: namespacePrefix(symbol),
		owner:  d,
	}
	return n, nil
}

func (d *badgerDatabase) Close() error {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	d.log.Info("badger closed")
	return err
}

func (n *badgerNamespace) Name() string {
	return n.name
}

func (n *badgerNamespace) Put(key string, value []byte) error {
	n.owner.RLock()
	defer n.owner.RUnlock()
	if nil == n.owner.db {
		return fault.ErrNotInitialised
	}

	err := n.owner.db.Update(func(txn *badger.Txn) error {
		return txn.Set(prefixKey(n.prefix, key), value)
	})
	if nil != err {
		return errors.Wrapf(err, "badger: put: %s/%s", n.name, key)
	}
	return nil
}

func (n *badgerNamespace) Get(key string) ([]byte, error) {
	n.owner.RLock()
	defer n.owner.RUnlock()
	if nil == n.owner.db {
		return nil, fault.ErrNotInitialised
	}

	var value []byte
	err := n.owner.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(prefixKey(n.prefix, key))
		if nil != err {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if badger.ErrKeyNotFound == err {
		return nil, fault.ErrKeyNotFound
	}
	if nil != err {
		return nil, errors.Wrapf(err, "badger: get: %s/%s", n.name, key)
	}
	return value, nil
}

func (n *badgerNamespace) Has(key string) (bool, error) {
	_, err := n.Get(key)
	if fault.ErrKeyNotFound == err {
		return false, nil
	}
	if nil != err {
		return false, err
	}
	return true, nil
}

// all records in ascending key order
func (n *badgerNamespace) All() ([]Element, error) {
	n.owner.RLock()
	defer n.owner.RUnlock()
	if nil == n.owner.db {
		return nil, fault.ErrNotInitialised
	}

	elements := make([]Element, 0, 16)
	err := n.owner.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = true
		options.Prefix = n.prefix
		iter := txn.NewIterator(options)
		defer iter.Close()

		for iter.Seek(n.prefix); iter.ValidForPrefix(n.prefix); iter.Next() {
			item := iter.Item()
			value, err := item.ValueCopy(nil)
			if nil != err {
				return err
			}
			elements = append(elements, Element{
				Key:   string(item.Key()[len(n.prefix):]),
				Value: value,
			})
		}
		return nil
	})
	if nil != err {
		return nil, errors.Wrapf(err, "badger: iterate: %s", n.name)
	}
	return elements, nil
}
