// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test logger and certificate helpers
package fixtures

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

var (
	pairOnce    sync.Once
	certificate string
	key         string
)

// SetupTestLogger - logger at trace level under a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "trace",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(dir)
}

// CertificatePair - PEM certificate and key for localhost, generated once per test binary
func CertificatePair() (string, string) {
	pairOnce.Do(func() {
		validUntil := time.Now().Add(24 * time.Hour)
		c, k, err := certgen.NewTLSCertPair("ledgerd test", validUntil, false, []string{"127.0.0.1", "localhost"})
		if nil != err {
			panic(err)
		}
		certificate = string(c)
		key = string(k)
	})
	return certificate, key
}

// LogFile - path of the active test log
func LogFile() string {
	return filepath.Join(dir, "testing.log")
}
