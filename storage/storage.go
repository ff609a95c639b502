// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/AwesomeEcosystem/nomics/fault"
)

// supported backends
const (
	LevelDB = "leveldb"
	Badger  = "badger"
	SQLite  = "sqlite"
)

// key prefixes
const (
	indexPrefix = 'M'
	dataPrefix  = 'T'
	separator   = 0x00
)

// IndexName - name of the metadata index namespace
const IndexName = "index"

// Element - a binary data item
type Element struct {
	Key   string
	Value []byte
}

// Namespace - one keyed set of records
type Namespace interface {
	Name() string
	Put(key string, value []byte) error
	Get(key string) ([]byte, error)
	Has(key string) (bool, error)
	All() ([]Element, error)
}

// Database - the index plus one namespace per symbol
type Database interface {
	Index() Namespace
	Open(symbol string) (Namespace, error)
	Close() error
}

// Open - open or create a database with the selected backend
//
// for leveldb and badger path is a directory, for sqlite a file
func Open(log *logger.L, backend string, path string) (Database, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); nil != err {
		return nil, errors.Wrapf(err, "storage: create directory for: %q", path)
	}

	log.Infof("open: %s  backend: %s", path, backend)

	switch strings.ToLower(backend) {
	case "", LevelDB:
		return openLevelDB(log, path)
	case Badger:
		return openBadger(log, path)
	case SQLite:
		return openSQLite(log, path)
	default:
		return nil, fault.ErrUnknownStorageBackend
	}
}

func indexKey(key string) []byte {
	k := make([]byte, 1, len(key)+1)
	k[0] = indexPrefix
	return append(k, key...)
}

func namespacePrefix(symbol string) []byte {
	p := make([]byte, 1, len(symbol)+2)
	p[0] = dataPrefix
	p = append(p, symbol...)
	return append(p, separator)
}

// prepend the prefix onto the key
func prefixKey(prefix []byte, key string) []byte {
	k := make([]byte, len(prefix), len(prefix)+len(key))
	copy(k, prefix)
	return append(k, key...)
}

// a symbol containing the separator would overlap other namespaces
func validSymbol(symbol string) error {
	if "" == symbol || strings.IndexByte(symbol, separator) >= 0 {
		return fault.ErrRequiredSymbol
	}
	return nil
}
