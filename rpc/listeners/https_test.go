// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"io/ioutil"
	"math/rand"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/fixtures"
	"github.com/AwesomeEcosystem/nomics/rpc/listeners"
)

type testHandler struct {
	allow map[string][]*net.IPNet
}

func (h *testHandler) RPC(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("RPC"))
}

func (h *testHandler) Details(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Details"))
}

func (h *testHandler) Ledgers(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Ledgers"))
}

func (h *testHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("Ledger:" + mux.Vars(r)["symbol"]))
}

func (h *testHandler) Events(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Events"))
}

func (h *testHandler) Root(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Root"))
}

func (h *testHandler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

func (h *testHandler) Shutdown() {}

var client *http.Client

func init() {
	customTransport := http.DefaultTransport.(*http.Transport).Clone()
	customTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // ignore certificate verification

	client = &http.Client{
		Transport: customTransport,
	}
}

func setup(t *testing.T, h *testHandler) (int, listeners.Listener) {
	allow := "127.0.0.1/32"
	port := rand.Intn(30000) + 30000

	listen := fmt.Sprintf("127.0.0.1:%d", port)
	conf := listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{listen},
		Allow: map[string][]string{
			"details": {allow},
		},
	}

	tlsConf, _ := testTLS(t)

	l, err := listeners.NewHTTPS(
		&conf,
		logger.New(fixtures.LogCategory),
		tlsConf,
		h,
	)
	if nil != err {
		t.Error("NewHTTPS with error: ", err)
		t.FailNow()
	}

	return port, l
}

func get(t *testing.T, url string) string {
	var resp *http.Response
	var err error
	for i := 0; i < 50; i += 1 {
		resp, err = client.Get(url)
		if nil == err {
			break
		}
		time.Sleep(10 * time.Millisecond) // server not ready
	}
	if nil != err {
		t.Error("client get with error: ", err)
		t.FailNow()
	}
	defer resp.Body.Close()

	content, _ := ioutil.ReadAll(resp.Body)
	return string(content)
}

func TestHttpsListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := &testHandler{}
	port, l := setup(t, h)

	err := l.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer l.Stop()

	url := fmt.Sprintf("https://127.0.0.1:%d/ledgerd/", port)
	assert.Equal(t, "RPC", get(t, url+"rpc"), "wrong RPC call")
	assert.Equal(t, "Details", get(t, url+"details"), "wrong Details call")
	assert.Equal(t, "Ledgers", get(t, url+"ledgers"), "wrong Ledgers call")
	assert.Equal(t, "Ledger:ELB", get(t, url+"ledgers/ELB"), "wrong Ledger call")
	assert.Equal(t, "Events", get(t, url+"events"), "wrong Events call")
	assert.Equal(t, "Root", get(t, url+"no/such/path"), "wrong Root call")

	assert.Equal(t, 1, len(h.allow["details"]), "allow not set")
}

func TestHttpsListenerStop(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port, l := setup(t, &testHandler{})

	err := l.Serve()
	assert.Nil(t, err, "wrong Serve")

	url := fmt.Sprintf("https://127.0.0.1:%d/ledgerd/rpc", port)
	assert.Equal(t, "RPC", get(t, url), "wrong RPC call")

	l.Stop()

	client.CloseIdleConnections()
	_, err = client.Get(url)
	assert.NotNil(t, err, "served after stop")
}

func TestHttpsListenerDisabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l, err := listeners.NewHTTPS(&listeners.HTTPSConfiguration{}, logger.New(fixtures.LogCategory), nil, &testHandler{})
	assert.Nil(t, err, "wrong NewHTTPS")
	assert.Nil(t, l, "disabled listener created")
}

func TestHttpsListenerWhenMaxConnectionCountTooSmall(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	tlsConf, _ := testTLS(t)
	conf := listeners.HTTPSConfiguration{
		Listen: []string{"127.0.0.1:2131"},
	}
	_, err := listeners.NewHTTPS(&conf, logger.New(fixtures.LogCategory), tlsConf, &testHandler{})
	assert.Equal(t, fault.ErrMissingParameters, err, "wrong max connection")
}

func TestHttpsListenerWhenInvalidAllow(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	tlsConf, _ := testTLS(t)
	conf := listeners.HTTPSConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:2131"},
		Allow: map[string][]string{
			"details": {"not-a-network"},
		},
	}
	_, err := listeners.NewHTTPS(&conf, logger.New(fixtures.LogCategory), tlsConf, &testHandler{})
	assert.NotNil(t, err, "invalid allow accepted")
}

func TestRouter(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	router := listeners.Router(&testHandler{})

	req := httptest.NewRequest("GET", "http://test.com/ledgerd/ledgers/ABC", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	b, _ := ioutil.ReadAll(w.Result().Body)
	assert.Equal(t, "Ledger:ABC", string(b), "wrong route")
}
