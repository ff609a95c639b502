// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/bitmark-inc/logger"

	"github.com/AwesomeEcosystem/nomics/counter"
	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/ledger"
	"github.com/AwesomeEcosystem/nomics/messagebus"
	"github.com/AwesomeEcosystem/nomics/rpc/node"
)

// Source - registry state served over HTTP
type Source interface {
	ListAllLedgers() []ledger.Metadata
	GetLedgerBySymbol(symbol string) (ledger.Metadata, error)
	node.Status
}

// Handler - HTTP endpoints of the daemon
type Handler interface {
	Root(http.ResponseWriter, *http.Request)
	RPC(http.ResponseWriter, *http.Request)
	Details(http.ResponseWriter, *http.Request)
	Ledgers(http.ResponseWriter, *http.Request)
	Ledger(http.ResponseWriter, *http.Request)
	Events(http.ResponseWriter, *http.Request)
	SetAllow(map[string][]*net.IPNet)
	Shutdown()
}

// type to allow rpc system to interface to http request
type InternalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *InternalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *InternalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *InternalConnection) Close() error {
	return nil
}

// the argument passed to the handlers
type handler struct {
	log                *logger.L
	server             *rpc.Server
	start              time.Time
	version            string
	maximumConnections uint64
	count              counter.Counter
	source             Source
	bus                *messagebus.BroadcastQueue
	allow              map[string][]*net.IPNet
	shutdown           chan struct{}
	once               sync.Once
}

// New - HTTP handler, source and bus may be nil
func New(log *logger.L, server *rpc.Server, start time.Time, version string, maximumConnections uint64, source Source, bus *messagebus.BroadcastQueue) Handler {
	return &handler{
		log:                log,
		server:             server,
		start:              start,
		version:            version,
		maximumConnections: maximumConnections,
		source:             source,
		bus:                bus,
		allow:              make(map[string][]*net.IPNet),
		shutdown:           make(chan struct{}),
	}
}

// SetAllow - access lists keyed by endpoint name
func (h *handler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

// Shutdown - terminate long lived event streams
func (h *handler) Shutdown() {
	h.once.Do(func() {
		close(h.shutdown)
	})
}

// Root - this matches anything not matched and returns error
func (h *handler) Root(w http.ResponseWriter, _ *http.Request) {
	sendNotFound(w)
}

// RPC - performs a call to any normal RPC
func (h *handler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.acquire(w) {
		return
	}
	defer h.count.Decrement()

	serverCodec := jsonrpc.NewServerCodec(&InternalConnection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	err := h.server.ServeRequest(serverCodec)
	if nil != err {
		h.log.Warnf("rpc: %s  error: %s", r.RemoteAddr, err)
		sendInternalServerError(w)
		return
	}
}

// Details - to allow a GET for the same response as Node.Info RPC
func (h *handler) Details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.permitted("details", r, true) {
		sendForbidden(w)
		return
	}

	if !h.acquire(w) {
		return
	}
	defer h.count.Decrement()

	type theReply struct {
		Version         string `json:"version"`
		Uptime          string `json:"uptime"`
		RPCs            uint64 `json:"rpcs"`
		Ledgers         int    `json:"ledgers"`
		Native          string `json:"native,omitempty"`
		PersistFailures uint64 `json:"persistFailures"`
		Subscribers     int    `json:"subscribers"`
		Dropped         uint64 `json:"dropped"`
	}

	reply := theReply{
		Version: h.version,
		Uptime:  time.Since(h.start).String(),
		RPCs:    h.count.Uint64(),
	}
	if nil != h.source {
		reply.Ledgers = h.source.Count()
		reply.PersistFailures = h.source.PersistFailures()
		if m, ok := h.source.Native(); ok {
			reply.Native = m.Symbol
		}
	}
	if nil != h.bus {
		reply.Subscribers = h.bus.Count()
		reply.Dropped = h.bus.Dropped()
	}

	sendReply(w, reply)
}

// Ledgers - GET the metadata of every hosted ledger
func (h *handler) Ledgers(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.permitted("ledgers", r, false) {
		sendForbidden(w)
		return
	}

	if !h.acquire(w) {
		return
	}
	defer h.count.Decrement()

	if nil == h.source {
		sendNotFound(w)
		return
	}

	type theReply struct {
		Ledgers []ledger.Metadata `json:"ledgers"`
	}
	sendReply(w, theReply{
		Ledgers: h.source.ListAllLedgers(),
	})
}

// Ledger - GET the metadata of the ledger named in the path
func (h *handler) Ledger(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.permitted("ledgers", r, false) {
		sendForbidden(w)
		return
	}

	if !h.acquire(w) {
		return
	}
	defer h.count.Decrement()

	if nil == h.source {
		sendNotFound(w)
		return
	}

	symbol := mux.Vars(r)["symbol"]
	m, err := h.source.GetLedgerBySymbol(symbol)
	if fault.IsErrNotFound(err) {
		sendNotFound(w)
		return
	}
	if nil != err {
		h.log.Warnf("ledger: %q  error: %s", symbol, err)
		sendInternalServerError(w)
		return
	}

	sendReply(w, m)
}

// reserve a connection slot
func (h *handler) acquire(w http.ResponseWriter) bool {
	if h.count.Increment() > h.maximumConnections {
		h.count.Decrement()
		sendTooManyRequests(w)
		return false
	}
	return true
}

// check the remote address against the access list for name
//
// an endpoint without an access list is open unless required is set
func (h *handler) permitted(name string, r *http.Request, required bool) bool {
	nets, ok := h.allow[name]
	if !ok {
		if required {
			h.log.Warnf("deny access: %s  from: %q", name, r.RemoteAddr)
		}
		return !required
	}

	last := strings.LastIndex(r.RemoteAddr, ":")
	if last >= 0 {
		addr := strings.Trim(r.RemoteAddr[:last], "[]")
		ip := net.ParseIP(addr)
		if nil != ip {
			for _, n := range nets {
				if n.Contains(ip) {
					return true
				}
			}
		}
	}
	h.log.Warnf("deny access: %s  from: %q", name, r.RemoteAddr)
	return false
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

// selected errors as required above
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}
func sendServiceUnavailable(w http.ResponseWriter) {
	sendError(w, "service unavailable", http.StatusServiceUnavailable)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}
