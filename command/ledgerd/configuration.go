// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/AwesomeEcosystem/nomics/configuration"
	"github.com/AwesomeEcosystem/nomics/publish"
	"github.com/AwesomeEcosystem/nomics/registry"
	"github.com/AwesomeEcosystem/nomics/rpc/listeners"
	"github.com/AwesomeEcosystem/nomics/storage"
	"github.com/AwesomeEcosystem/nomics/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultPublishPublicKeyFile  = "publish.public"
	defaultPublishPrivateKeyFile = "publish.private"
	defaultKeyFile               = "rpc.key"
	defaultCertificateFile       = "rpc.crt"
	defaultNativeWalletFile      = "native.wallet"

	defaultDatabaseDirectory = "data"
	defaultDatabaseBackend   = storage.LevelDB
	defaultDatabasePrefix    = "ledgers."

	defaultLogDirectory = "log"
	defaultLogFile      = "ledgerd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - where and how ledgers are stored
type DatabaseType struct {
	Backend   string `gluamapper:"backend" json:"backend"`
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// NativeType - the platform token, disabled when symbol is blank
type NativeType struct {
	Name           string `gluamapper:"name" json:"name"`
	Symbol         string `gluamapper:"symbol" json:"symbol"`
	TotalSupply    uint64 `gluamapper:"total_supply" json:"total_supply"`
	TransactionFee uint64 `gluamapper:"transaction_fee" json:"transaction_fee"`
	WalletFile     string `gluamapper:"wallet_file" json:"wallet_file"`
}

// Configuration - the daemon configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType `gluamapper:"database" json:"database"`

	Durability             string `gluamapper:"durability" json:"durability"`
	RejectDuplicateSymbols bool   `gluamapper:"reject_duplicate_symbols" json:"reject_duplicate_symbols"`
	QueueSize              int    `gluamapper:"queue_size" json:"queue_size"`

	Native NativeType `gluamapper:"native" json:"native"`

	ClientRPC  listeners.RPCConfiguration   `gluamapper:"client_rpc" json:"client_rpc"`
	HttpsRPC   listeners.HTTPSConfiguration `gluamapper:"https_rpc" json:"https_rpc"`
	Publishing publish.Configuration        `gluamapper:"publishing" json:"publishing"`
	Logging    logger.Configuration         `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Backend:   defaultDatabaseBackend,
			Directory: defaultDatabaseDirectory,
		},

		Durability: registry.Synchronous.String(),

		Native: NativeType{
			WalletFile: defaultNativeWalletFile,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		// default: share config with normal RPC
		HttpsRPC: listeners.HTTPSConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Publishing: publish.Configuration{
			PublicKey:  defaultPublishPublicKeyFile,
			PrivateKey: defaultPublishPrivateKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    copyLevels(defaultLogLevels),
		},
	}

	variables := map[string]string{
		"config_directory": dataDirectory,
	}
	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); nil != err {
		return nil, err
	}

	if _, err := registry.ParseDurability(options.Durability); nil != err {
		return nil, fmt.Errorf("Durability: %q  error: %s", options.Durability, err)
	}

	options.Database.Backend = strings.ToLower(strings.TrimSpace(options.Database.Backend))
	if "" == options.Database.Backend {
		options.Database.Backend = defaultDatabaseBackend
	}
	if "" == options.Database.Name {
		options.Database.Name = defaultDatabasePrefix + options.Database.Backend
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.HttpsRPC.Certificate,
		&options.HttpsRPC.PrivateKey,
		&options.Publishing.PublicKey,
		&options.Publishing.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.Native.WalletFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// each parse gets its own map as the decoder merges into it
func copyLevels(levels LoglevelMap) LoglevelMap {
	m := make(LoglevelMap, len(levels))
	for k, v := range levels {
		m[k] = v
	}
	return m
}

// registry options from the configuration
func (c *Configuration) registryOptions() registry.Options {
	durability, _ := registry.ParseDurability(c.Durability)
	return registry.Options{
		Durability:       durability,
		RejectDuplicates: c.RejectDuplicateSymbols,
		QueueSize:        c.QueueSize,
	}
}
