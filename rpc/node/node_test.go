// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/AwesomeEcosystem/nomics/counter"
	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/fixtures"
	"github.com/AwesomeEcosystem/nomics/ledger"
	"github.com/AwesomeEcosystem/nomics/rpc/mocks"
	"github.com/AwesomeEcosystem/nomics/rpc/node"
)

func TestInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockStatus(ctl)
	s.EXPECT().Native().Return(ledger.Metadata{Symbol: "ELABS"}, true).Times(1)
	s.EXPECT().Count().Return(3).Times(1)
	s.EXPECT().PersistFailures().Return(uint64(2)).Times(1)

	var c counter.Counter
	c.Increment()
	c.Increment()

	n := node.New(
		logger.New(fixtures.LogCategory),
		s,
		time.Now().Add(-time.Minute),
		"v1.2.3",
		"abcdef",
		&c,
		rate.NewLimiter(100, 10),
	)

	var reply node.InfoReply
	err := n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, "v1.2.3", reply.Version, "wrong version")
	assert.Equal(t, uint64(2), reply.RPCs, "wrong rpcs")
	assert.Equal(t, 3, reply.Ledgers, "wrong ledgers")
	assert.Equal(t, "ELABS", reply.Native, "wrong native")
	assert.Equal(t, uint64(2), reply.PersistFailures, "wrong persist failures")
	assert.Equal(t, "abcdef", reply.PublicKey, "wrong public key")
	assert.NotEqual(t, "", reply.Uptime, "missing uptime")
}

func TestInfoWithoutNative(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockStatus(ctl)
	s.EXPECT().Native().Return(ledger.Metadata{}, false).Times(1)
	s.EXPECT().Count().Return(0).Times(1)
	s.EXPECT().PersistFailures().Return(uint64(0)).Times(1)

	var c counter.Counter
	n := node.New(logger.New(fixtures.LogCategory), s, time.Now(), "v", "", &c, rate.NewLimiter(100, 10))

	var reply node.InfoReply
	assert.Nil(t, n.Info(&node.InfoArguments{}, &reply), "wrong Info")
	assert.Equal(t, "", reply.Native, "native reported")
}

func TestInfoNotInitialised(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	var c counter.Counter
	n := node.New(logger.New(fixtures.LogCategory), nil, time.Now(), "v", "", &c, rate.NewLimiter(100, 10))

	var reply node.InfoReply
	assert.Equal(t, fault.ErrNotInitialised, n.Info(&node.InfoArguments{}, &reply), "wrong error")
}
