// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls_test

import (
	"bytes"
	"crypto/tls"
	"encoding/hex"
	"net"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"
	"golang.org/x/time/rate"

	"github.com/AwesomeEcosystem/nomics/command/ledger-cli/rpccalls"
	"github.com/AwesomeEcosystem/nomics/counter"
	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/fixtures"
	"github.com/AwesomeEcosystem/nomics/registry"
	"github.com/AwesomeEcosystem/nomics/rpc/server"
	"github.com/AwesomeEcosystem/nomics/storage"
)

var (
	address     string
	fingerprint string
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()

	db, err := storage.Open(logger.New("storage"), storage.SQLite, filepath.Join("testing", "ledgers.sqlite"))
	if nil != err {
		panic(err)
	}
	reg, err := registry.New(logger.New("registry"), db, registry.Options{})
	if nil != err {
		panic(err)
	}

	certificate, key := fixtures.CertificatePair()
	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if nil != err {
		panic(err)
	}
	digest := sha3.Sum256(keyPair.Certificate[0])
	fingerprint = hex.EncodeToString(digest[:])

	c := counter.Counter(0)
	r := server.Create(logger.New(fixtures.LogCategory), "2.1", reg, "", &c, rate.NewLimiter(1000, 100))
	l, err := tls.Listen("tcp", "127.0.0.1:0", &tls.Config{Certificates: []tls.Certificate{keyPair}})
	if nil != err {
		panic(err)
	}
	address = l.Addr().String()

	go func() {
		for {
			conn, err := l.Accept()
			if nil != err {
				return
			}
			go r.ServeCodec(jsonrpc.NewServerCodec(conn))
		}
	}()

	rc := m.Run()

	l.Close()
	reg.Close()
	db.Close()
	fixtures.TeardownTestLogger()

	os.Exit(rc)
}

func TestClientLifecycle(t *testing.T) {
	var out bytes.Buffer
	client, err := rpccalls.NewClient(address, fingerprint, true, &out)
	assert.Nil(t, err, "connect")
	defer client.Close()

	deployed, err := client.Deploy(&rpccalls.DeployData{
		Name:           "Elab",
		Symbol:         "ELA",
		TotalSupply:    5000,
		TransactionFee: 2,
	})
	assert.Nil(t, err, "deploy")
	assert.Equal(t, uint64(5000), deployed.Balance, "wrong owner balance")
	assert.Contains(t, out.String(), "Token.Deploy Reply", "verbose output missing")

	got, err := client.Get("ELA")
	assert.Nil(t, err, "get")
	assert.Equal(t, deployed.Ledger, got.Ledger, "wrong metadata")

	w, err := client.CreateWallet("ELA")
	assert.Nil(t, err, "create wallet")

	transferred, err := client.Transfer(&rpccalls.TransferData{
		Symbol:     "ELA",
		From:       deployed.Wallet.PublicKey,
		To:         w.Wallet.PublicKey,
		Amount:     40,
		PrivateKey: deployed.Wallet.PrivateKey,
	})
	assert.Nil(t, err, "transfer")
	assert.Equal(t, uint64(4960), transferred.Balance, "wrong sender balance")

	balance, err := client.Balance("ELA", w.Wallet.PublicKey)
	assert.Nil(t, err, "balance")
	assert.Equal(t, uint64(40), balance.Balance, "wrong receiver balance")

	history, err := client.Transactions("ELA", w.Wallet.PublicKey, 0, 10)
	assert.Nil(t, err, "transactions")
	assert.Equal(t, 1, len(history.Transactions), "wrong history length")

	list, err := client.List()
	assert.Nil(t, err, "list")
	assert.Equal(t, 1, len(list.Ledgers), "wrong ledger count")

	info, err := client.Info()
	assert.Nil(t, err, "info")
	assert.Equal(t, "2.1", info.Version, "wrong version")
	assert.Equal(t, 1, info.Ledgers, "wrong info ledger count")
}

func TestClientErrors(t *testing.T) {
	client, err := rpccalls.NewClient(address, "", false, nil)
	assert.Nil(t, err, "connect without fingerprint")
	defer client.Close()

	_, err = client.Get("NONE")
	assert.NotNil(t, err, "missing ledger found")
	assert.Equal(t, fault.ErrTokenNotFound.Error(), err.Error(), "wrong error")

	_, err = client.Transactions("NONE", "", 0, 0)
	assert.Equal(t, fault.ErrInvalidCount.Error(), err.Error(), "wrong error")
}

func TestClientFingerprintMismatch(t *testing.T) {
	_, err := rpccalls.NewClient(address, strings.Repeat("ab", 32), false, nil)
	assert.Equal(t, rpccalls.ErrFingerprintMismatch, err, "wrong error")
}

func TestClientConnectFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	assert.Nil(t, err, "listen")
	unused := l.Addr().String()
	l.Close()

	_, err = rpccalls.NewClient(unused, "", false, nil)
	assert.NotNil(t, err, "connected to closed port")
}

func TestPrintJSON(t *testing.T) {
	var out bytes.Buffer
	err := rpccalls.PrintJSON(&out, map[string]int{"a": 1})
	assert.Nil(t, err, "print")
	assert.Equal(t, "{\n  \"a\": 1\n}\n", out.String(), "wrong output")
}
