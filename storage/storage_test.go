// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/storage"
)

var backends = []string{
	storage.LevelDB,
	storage.Badger,
	storage.SQLite,
}

func openTestDatabase(t *testing.T, backend string) (storage.Database, string) {
	path := filepath.Join(t.TempDir(), "ledgers."+backend)
	db, err := storage.Open(logger.New("storage"), backend, path)
	assert.Nil(t, err, "%s: open", backend)
	return db, path
}

func TestUnknownBackend(t *testing.T) {
	_, err := storage.Open(logger.New("storage"), "cassandra", filepath.Join(t.TempDir(), "x"))
	assert.Equal(t, fault.ErrUnknownStorageBackend, err, "unknown backend accepted")

	_, err = storage.Open(nil, storage.LevelDB, filepath.Join(t.TempDir(), "x"))
	assert.Equal(t, fault.ErrInvalidLoggerChannel, err, "nil logger accepted")
}

func TestPutGetHas(t *testing.T) {
	for _, backend := range backends {
		db, _ := openTestDatabase(t, backend)

		index := db.Index()
		assert.Equal(t, storage.IndexName, index.Name(), "%s: index name", backend)

		found, err := index.Has("ELB")
		assert.Nil(t, err, "%s: has", backend)
		assert.False(t, found, "%s: key found in empty index", backend)

		_, err = index.Get("ELB")
		assert.Equal(t, fault.ErrKeyNotFound, err, "%s: get missing key", backend)

		assert.Nil(t, index.Put("ELB", []byte(`{"symbol":"ELB"}`)), "%s: put", backend)

		found, err = index.Has("ELB")
		assert.Nil(t, err, "%s: has", backend)
		assert.True(t, found, "%s: key not found", backend)

		value, err := index.Get("ELB")
		assert.Nil(t, err, "%s: get", backend)
		assert.Equal(t, []byte(`{"symbol":"ELB"}`), value, "%s: value", backend)

		assert.Nil(t, index.Put("ELB", []byte("replaced")), "%s: overwrite", backend)
		value, _ = index.Get("ELB")
		assert.Equal(t, []byte("replaced"), value, "%s: overwritten value", backend)

		assert.Nil(t, db.Close(), "%s: close", backend)
	}
}

func TestNamespaceIsolation(t *testing.T) {
	for _, backend := range backends {
		db, _ := openTestDatabase(t, backend)

		a, err := db.Open("A")
		assert.Nil(t, err, "%s: open A", backend)
		ab, err := db.Open("AB")
		assert.Nil(t, err, "%s: open AB", backend)
		assert.Equal(t, "AB", ab.Name(), "%s: namespace name", backend)

		_ = a.Put("0000000000000000", []byte("a0"))
		_ = ab.Put("0000000000000000", []byte("ab0"))
		_ = db.Index().Put("A", []byte("meta"))

		elements, err := a.All()
		assert.Nil(t, err, "%s: all", backend)
		assert.Equal(t, 1, len(elements), "%s: namespace leaked", backend)
		assert.Equal(t, []byte("a0"), elements[0].Value, "%s: value", backend)

		elements, _ = db.Index().All()
		assert.Equal(t, 1, len(elements), "%s: index leaked", backend)
		assert.Equal(t, "A", elements[0].Key, "%s: index key", backend)

		_, err = db.Open("")
		assert.Equal(t, fault.ErrRequiredSymbol, err, "%s: empty symbol", backend)
		_, err = db.Open("A\x00B")
		assert.Equal(t, fault.ErrRequiredSymbol, err, "%s: separator in symbol", backend)

		_ = db.Close()
	}
}

func TestAllOrder(t *testing.T) {
	keys := []string{
		"000000000000000a",
		"0000000000000002",
		"0000000000000010",
		"0000000000000000",
		"0000000000000001",
	}
	expected := []string{
		"0000000000000000",
		"0000000000000001",
		"0000000000000002",
		"000000000000000a",
		"0000000000000010",
	}

	for _, backend := range backends {
		db, _ := openTestDatabase(t, backend)
		ns, _ := db.Open("ELB")

		for _, k := range keys {
			assert.Nil(t, ns.Put(k, []byte(k)), "%s: put", backend)
		}

		elements, err := ns.All()
		assert.Nil(t, err, "%s: all", backend)
		actual := make([]string, len(elements))
		for i, e := range elements {
			actual[i] = e.Key
			assert.Equal(t, []byte(e.Key), e.Value, "%s: value", backend)
		}
		assert.Equal(t, expected, actual, "%s: order", backend)

		_ = db.Close()
	}
}

func TestReopen(t *testing.T) {
	for _, backend := range backends {
		db, path := openTestDatabase(t, backend)
		ns, _ := db.Open("ELB")
		_ = ns.Put("0000000000000000", []byte("genesis"))
		_ = db.Index().Put("ELB", []byte("meta"))
		assert.Nil(t, db.Close(), "%s: close", backend)
		assert.Nil(t, db.Close(), "%s: second close", backend)

		_, err := ns.Get("0000000000000000")
		assert.Equal(t, fault.ErrNotInitialised, err, "%s: get after close", backend)
		err = ns.Put("0000000000000001", nil)
		assert.Equal(t, fault.ErrNotInitialised, err, "%s: put after close", backend)

		db, err = storage.Open(logger.New("storage"), backend, path)
		assert.Nil(t, err, "%s: reopen", backend)

		ns, _ = db.Open("ELB")
		value, err := ns.Get("0000000000000000")
		assert.Nil(t, err, "%s: get after reopen", backend)
		assert.Equal(t, []byte("genesis"), value, "%s: value after reopen", backend)

		elements, _ := db.Index().All()
		assert.Equal(t, 1, len(elements), "%s: index after reopen", backend)

		_ = db.Close()
	}
}
