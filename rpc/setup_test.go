// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/fixtures"
	"github.com/AwesomeEcosystem/nomics/messagebus"
	"github.com/AwesomeEcosystem/nomics/registry"
	"github.com/AwesomeEcosystem/nomics/rpc"
	"github.com/AwesomeEcosystem/nomics/rpc/listeners"
	"github.com/AwesomeEcosystem/nomics/rpc/node"
	"github.com/AwesomeEcosystem/nomics/storage"
)

func TestInitialise(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir := t.TempDir()
	cer, key := fixtures.CertificatePair()
	cerFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")
	assert.Nil(t, os.WriteFile(cerFile, []byte(cer), 0600), "write certificate")
	assert.Nil(t, os.WriteFile(keyFile, []byte(key), 0600), "write key")

	db, err := storage.Open(logger.New("storage"), storage.LevelDB, filepath.Join(dir, "ledgers.leveldb"))
	assert.Nil(t, err, "storage open")
	defer db.Close()

	reg, err := registry.New(logger.New("registry"), db, registry.Options{})
	assert.Nil(t, err, "registry creation")
	defer reg.Close()

	_, err = reg.EnsureNative("eLabs", "ELABS", 3000000, 1)
	assert.Nil(t, err, "native")

	port := rand.Intn(30000) + 30000
	rpcListen := fmt.Sprintf("127.0.0.1:%d", port)
	httpsListen := fmt.Sprintf("127.0.0.1:%d", port+1)

	rpcConfiguration := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{rpcListen},
		Certificate:        cerFile,
		PrivateKey:         keyFile,
	}
	httpsConfiguration := listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{httpsListen},
		Certificate:        cerFile,
		PrivateKey:         keyFile,
		Allow: map[string][]string{
			"details": {"127.0.0.1/32"},
		},
	}

	assert.Equal(t, fault.ErrNotInitialised, rpc.SetRateLimit(10, 10), "limit before initialise")

	err = rpc.Initialise(&rpcConfiguration, &httpsConfiguration, reg, messagebus.NewBroadcast(), "", "9.9")
	assert.Nil(t, err, "wrong Initialise")

	err = rpc.Initialise(&rpcConfiguration, &httpsConfiguration, reg, messagebus.NewBroadcast(), "", "9.9")
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "second Initialise")

	assert.Nil(t, rpc.SetRateLimit(500, 50), "wrong SetRateLimit")

	conn, err := tls.Dial("tcp", rpcListen, &tls.Config{InsecureSkipVerify: true})
	if nil != err {
		t.Error("dial with error: ", err)
		t.FailNow()
	}
	client := jsonrpc.NewClient(conn)

	var info node.InfoReply
	err = client.Call("Node.Info", &node.InfoArguments{}, &info)
	assert.Nil(t, err, "wrong Node.Info")
	assert.Equal(t, "9.9", info.Version, "wrong version")
	assert.Equal(t, "ELABS", info.Native, "wrong native")
	client.Close()

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	httpClient := &http.Client{Transport: transport}

	var resp *http.Response
	for i := 0; i < 50; i += 1 {
		resp, err = httpClient.Get("https://" + httpsListen + "/ledgerd/details")
		if nil == err {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if nil != err {
		t.Error("get with error: ", err)
		t.FailNow()
	}
	var details map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&details)
	resp.Body.Close()
	assert.Equal(t, "9.9", details["version"], "wrong details version")
	assert.Equal(t, "ELABS", details["native"], "wrong details native")

	assert.Nil(t, rpc.Finalise(), "wrong Finalise")
	assert.Equal(t, fault.ErrNotInitialised, rpc.Finalise(), "second Finalise")
}

func TestInitialiseMissingCertificate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	rpcConfiguration := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:2150"},
		Certificate:        filepath.Join(t.TempDir(), "missing.crt"),
		PrivateKey:         filepath.Join(t.TempDir(), "missing.key"),
	}

	err := rpc.Initialise(&rpcConfiguration, &listeners.HTTPSConfiguration{}, nil, nil, "", "9.9")
	assert.NotNil(t, err, "missing certificate accepted")
	assert.Equal(t, fault.ErrNotInitialised, rpc.Finalise(), "initialised after failure")
}
