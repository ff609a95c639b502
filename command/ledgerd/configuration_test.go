// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/AwesomeEcosystem/nomics/registry"
	"github.com/AwesomeEcosystem/nomics/storage"
)

const minimalConfiguration = `
return {
    data_directory = ".",
}
`

const fullConfiguration = `
local M = {}

M.data_directory = "."
M.pidfile = "ledgerd.pid"
M.durability = "async"
M.reject_duplicate_symbols = true
M.queue_size = 50

M.database = {
    backend = "SQLite",
    directory = "db",
}

M.native = {
    name = "Elab",
    symbol = "ELAB",
    total_supply = 3000000,
    transaction_fee = 1,
}

M.client_rpc = {
    maximum_connections = 5,
    listen = { "127.0.0.1:2130" },
    certificate = "rpc.crt",
    private_key = "rpc.key",
    rate_limit = 20,
    rate_burst = 10,
}

M.https_rpc = {
    maximum_connections = 5,
    listen = { "127.0.0.1:2131" },
    certificate = "/etc/ssl/https.crt",
    private_key = "/etc/ssl/https.key",
    allow = {
        details = { "127.0.0.0/8" },
    },
}

M.publishing = {
    broadcast = { "127.0.0.1:2135" },
}

M.logging = {
    size = 4096,
    count = 3,
    levels = {
        DEFAULT = "info",
    },
}

return M
`

func writeConfiguration(t *testing.T, text string) (string, string) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "ledgerd.conf")
	err := os.WriteFile(fileName, []byte(text), 0600)
	assert.Nil(t, err, "write configuration")
	return dir, fileName
}

func TestGetConfigurationDefaults(t *testing.T) {
	dir, fileName := writeConfiguration(t, minimalConfiguration)

	c, err := getConfiguration(fileName)
	assert.Nil(t, err, "configuration error")

	assert.Equal(t, filepath.Clean(dir), c.DataDirectory, "wrong data directory")
	assert.Equal(t, "", c.PidFile, "pid file should be disabled")
	assert.Equal(t, storage.LevelDB, c.Database.Backend, "wrong backend")
	assert.Equal(t, filepath.Join(dir, "data", "ledgers.leveldb"), c.Database.Name, "wrong database name")
	assert.Equal(t, registry.Synchronous.String(), c.Durability, "wrong durability")
	assert.Equal(t, filepath.Join(dir, "rpc.crt"), c.ClientRPC.Certificate, "wrong certificate")
	assert.Equal(t, filepath.Join(dir, "rpc.key"), c.HttpsRPC.PrivateKey, "wrong https key")
	assert.Equal(t, filepath.Join(dir, "native.wallet"), c.Native.WalletFile, "wrong wallet file")
	assert.Equal(t, "", c.Native.Symbol, "native should be disabled")
	assert.Equal(t, uint64(defaultRPCClients), c.ClientRPC.MaximumConnections, "wrong connection count")

	info, err := os.Stat(filepath.Join(dir, "log"))
	assert.Nil(t, err, "log directory not created")
	assert.True(t, info.IsDir(), "log is not a directory")

	options := c.registryOptions()
	assert.Equal(t, registry.Synchronous, options.Durability, "wrong registry durability")
	assert.False(t, options.RejectDuplicates, "duplicates rejected")
}

func TestGetConfigurationFull(t *testing.T) {
	dir, fileName := writeConfiguration(t, fullConfiguration)

	c, err := getConfiguration(fileName)
	assert.Nil(t, err, "configuration error")

	assert.Equal(t, filepath.Join(dir, "ledgerd.pid"), c.PidFile, "wrong pid file")
	assert.Equal(t, storage.SQLite, c.Database.Backend, "backend not normalised")
	assert.Equal(t, filepath.Join(dir, "db", "ledgers.sqlite"), c.Database.Name, "wrong database name")

	assert.Equal(t, "ELAB", c.Native.Symbol, "wrong native symbol")
	assert.Equal(t, uint64(3000000), c.Native.TotalSupply, "wrong native supply")
	assert.Equal(t, uint64(1), c.Native.TransactionFee, "wrong native fee")

	assert.Equal(t, []string{"127.0.0.1:2130"}, c.ClientRPC.Listen, "wrong listen")
	assert.Equal(t, float64(20), c.ClientRPC.RateLimit, "wrong rate limit")
	assert.Equal(t, 10, c.ClientRPC.RateBurst, "wrong rate burst")
	assert.Equal(t, "/etc/ssl/https.crt", c.HttpsRPC.Certificate, "absolute path changed")
	assert.Equal(t, []string{"127.0.0.0/8"}, c.HttpsRPC.Allow["details"], "wrong allow list")
	assert.Equal(t, []string{"127.0.0.1:2135"}, c.Publishing.Broadcast, "wrong broadcast")
	assert.Equal(t, filepath.Join(dir, "publish.private"), c.Publishing.PrivateKey, "wrong publish key")
	assert.Equal(t, "info", c.Logging.Levels[logger.DefaultTag], "wrong log level")

	options := c.registryOptions()
	assert.Equal(t, registry.Asynchronous, options.Durability, "wrong registry durability")
	assert.True(t, options.RejectDuplicates, "duplicates accepted")
	assert.Equal(t, 50, options.QueueSize, "wrong queue size")
}

func TestGetConfigurationErrors(t *testing.T) {
	items := []struct {
		name string
		text string
	}{
		{"no data directory", `return {}`},
		{"home data directory", `return { data_directory = "~" }`},
		{"missing data directory", `return { data_directory = "/no/such/directory/here" }`},
		{"bad durability", `return { data_directory = ".", durability = "sometimes" }`},
		{"database path", `return { data_directory = ".", database = { name = "a/b" } }`},
		{"not a table", `return 42`},
		{"syntax", `return {`},
	}

	for _, item := range items {
		_, fileName := writeConfiguration(t, item.text)
		_, err := getConfiguration(fileName)
		assert.NotNil(t, err, "%s: no error", item.name)
	}
}
