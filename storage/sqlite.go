// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/AwesomeEcosystem/nomics/fault"

	_ "modernc.org/sqlite"
)

const (
	sqliteBusyTimeout = 5000 // milliseconds

	sqliteSchema = `CREATE TABLE IF NOT EXISTS records (
	namespace BLOB NOT NULL,
	key       BLOB NOT NULL,
	value     BLOB NOT NULL,
	PRIMARY KEY (namespace, key)
)`
	sqlitePut = `INSERT INTO records (namespace, key, value) VALUES (?, ?, ?)
ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value`
	sqliteGet = `SELECT value FROM records WHERE namespace = ? AND key = ?`
	sqliteAll = `SELECT key, value FROM records WHERE namespace = ? ORDER BY key`
)

type sqliteDatabase struct {
	sync.RWMutex
	log   *logger.L
	db    *sql.DB
	index *sqliteNamespace
}

type sqliteNamespace struct {
	name   string
	prefix []byte
	owner  *sqliteDatabase
}

func openSQLite(log *logger.L, path string) (*sqliteDatabase, error) {
	connection := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", filepath.Clean(path), sqliteBusyTimeout)
	db, err := sql.Open("sqlite", connection)
	if nil != err {
		return nil, errors.Wrapf(err, "sqlite: open: %q", path)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); nil != err {
		_ = db.Close()
		return nil, errors.Wrapf(err, "sqlite: schema: %q", path)
	}

	d := &sqliteDatabase{
		log: log,
		db:  db,
	}
	d.index = &sqliteNamespace{
		name:   IndexName,
		prefix: []byte{indexPrefix},
		owner:  d,
	}
	return d, nil
}

func (d *sqliteDatabase) Index() Namespace {
	return d.index
}

func (d *sqliteDatabase) Open(symbol string) (Namespace, error) {
	if err := validSymbol(symbol); nil != err {
		return nil, err
	}
	n := &sqliteNamespace{
		name:   symbol,
		prefix: namespacePrefix(symbol),
		owner:  d,
	}
	return n, nil
}

func (d *sqliteDatabase) Close() error {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	d.log.Info("sqlite closed")
	return err
}

func (n *sqliteNamespace) Name() string {
	return n.name
}

func (n *sqliteNamespace) Put(key string, value []byte) error {
	n.owner.RLock()
	defer n.owner.RUnlock()
	if nil == n.owner.db {
		return fault.ErrNotInitialised
	}

	_, err := n.owner.db.Exec(sqlitePut, n.prefix, []byte(key), value)
	if nil != err {
		return errors.Wrapf(err, "sqlite: put: %s/%s", n.name, key)
	}
	return nil
}

func (n *sqliteNamespace) Get(key string) ([]byte, error) {
	n.owner.RLock()
	defer n.owner.RUnlock()
	if nil == n.owner.db {
		return nil, fault.ErrNotInitialised
	}

	var value []byte
	err := n.owner.db.QueryRow(sqliteGet, n.prefix, []byte(key)).Scan(&value)
	if sql.ErrNoRows == err {
		return nil, fault.ErrKeyNotFound
	}
	if nil != err {
		return nil, errors.Wrapf(err, "sqlite: get: %s/%s", n.name, key)
	}
	return value, nil
}

func (n *sqliteNamespace) Has(key string) (bool, error) {
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
func (n *sqliteNamespace) All() ([]Element, error) {
	n.owner.RLock()
	defer n.owner.RUnlock()
	if nil == n.owner.db {
		return nil, fault.ErrNotInitialised
	}

	rows, err := n.owner.db.Query(sqliteAll, n.prefix)
	if nil != err {
		return nil, errors.Wrapf(err, "sqlite: iterate: %s", n.name)
	}
	defer rows.Close()

	elements := make([]Element, 0, 16)
	for rows.Next() {
		var key []byte
		var value []byte
		if err := rows.Scan(&key, &value); nil != err {
			return nil, errors.Wrapf(err, "sqlite: scan: %s", n.name)
		}
		elements = append(elements, Element{
			Key:   string(key),
			Value: value,
		})
	}
	if err := rows.Err(); nil != err {
		return nil, errors.Wrapf(err, "sqlite: iterate: %s", n.name)
	}
	return elements, nil
}
