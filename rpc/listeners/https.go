// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/bitmark-inc/logger"

	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/rpc/handler"
)

const (
	httpsLogName     = "https_rpc"
	readWriteTimeout = 10 * time.Second
	shutdownTimeout  = 5 * time.Second
)

// HTTPSConfiguration - configuration file data for HTTPS setup
type HTTPSConfiguration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen"`
	Certificate        string              `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string              `gluamapper:"private_key" json:"private_key"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

type httpsListener struct {
	sync.Mutex

	log       *logger.L
	ipType    []string
	listen    []string
	tlsConfig *tls.Config
	router    *mux.Router
	handler   handler.Handler
	servers   []*http.Server
}

// NewHTTPS - HTTPS listener routing the daemon endpoints
//
// no listen addresses disables the listener
func NewHTTPS(
	configuration *HTTPSConfiguration,
	log *logger.L,
	tlsConfig *tls.Config,
	hdlr handler.Handler,
) (Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsLogName)
		return nil, nil
	}

	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", httpsLogName, configuration.MaximumConnections)
		return nil, fault.ErrMissingParameters
	}

	if nil == tlsConfig {
		log.Errorf("missing %s TLS configuration", httpsLogName)
		return nil, fault.ErrMissingParameters
	}

	ipType, listen, err := parseListenAddress(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	// create access control to match http.Request.RemoteAddr
	local := make(map[string][]*net.IPNet)
	for path, addresses := range configuration.Allow {
		set := make([]*net.IPNet, len(addresses))
		local[path] = set
		for i, ip := range addresses {
			_, cidr, err := net.ParseCIDR(strings.Trim(ip, " "))
			if nil != err {
				log.Errorf("invalid %s allow: %s: %q  error: %s", httpsLogName, path, ip, err)
				return nil, err
			}
			set[i] = cidr
		}
	}

	hdlr.SetAllow(local)

	h := &httpsListener{
		log:       log,
		ipType:    ipType,
		listen:    listen,
		tlsConfig: tlsConfig,
		router:    Router(hdlr),
		handler:   hdlr,
	}

	return h, nil
}

// Router - the endpoint table
func Router(hdlr handler.Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/ledgerd/rpc", hdlr.RPC)
	router.HandleFunc("/ledgerd/details", hdlr.Details)
	router.HandleFunc("/ledgerd/ledgers", hdlr.Ledgers)
	router.HandleFunc("/ledgerd/ledgers/{symbol}", hdlr.Ledger)
	router.HandleFunc("/ledgerd/events", hdlr.Events)
	router.NotFoundHandler = http.HandlerFunc(hdlr.Root)
	return router
}

func (h *httpsListener) Serve() error {
	h.Lock()
	defer h.Unlock()

	cfg := h.tlsConfig.Clone()
	cfg.NextProtos = []string{"http/1.1"}

	for i, listen := range h.listen {
		h.log.Infof("starting server: %s on: %q", httpsLogName, listen)

		ln, err := net.Listen(h.ipType[i], listen)
		if nil != err {
			h.log.Errorf("%s listen error: %s", httpsLogName, err)
			return err
		}

		s := &http.Server{
			Handler:        h.router,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		h.servers = append(h.servers, s)

		go doServeHTTPS(h.log, s, tls.NewListener(tcpKeepAliveListener{ln.(*net.TCPListener)}, cfg))
	}

	return nil
}

func (h *httpsListener) Stop() {
	h.Lock()
	defer h.Unlock()

	h.handler.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, s := range h.servers {
		if err := s.Shutdown(ctx); nil != err {
			h.log.Warnf("%s shutdown error: %s", httpsLogName, err)
		}
	}
	h.servers = nil
}

func doServeHTTPS(log *logger.L, s *http.Server, listener net.Listener) {
	err := s.Serve(listener)
	if http.ErrServerClosed != err {
		log.Errorf("%s terminated: %s", httpsLogName, err)
	}
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if nil != err {
		return nil, err
	}
	_ = tc.SetKeepAlive(true)
	_ = tc.SetKeepAlivePeriod(3 * time.Minute)
	return tc, nil
}
