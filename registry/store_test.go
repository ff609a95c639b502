// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry_test

import (
	"errors"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/AwesomeEcosystem/nomics/fault"
	"github.com/AwesomeEcosystem/nomics/registry"
	"github.com/AwesomeEcosystem/nomics/storage"
	"github.com/AwesomeEcosystem/nomics/storage/mocks"
)

var errDiskFull = errors.New("disk full")

func TestRestoreIndexFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db := mocks.NewMockDatabase(ctl)
	index := mocks.NewMockNamespace(ctl)
	db.EXPECT().Index().Return(index).AnyTimes()
	index.EXPECT().All().Return(nil, errDiskFull).Times(1)

	_, err := registry.New(logger.New("registry"), db, registry.Options{})
	assert.True(t, fault.IsErrStore(err), "wrong error: %v", err)
}

func TestRestoreNamespaceFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db := mocks.NewMockDatabase(ctl)
	index := mocks.NewMockNamespace(ctl)
	namespace := mocks.NewMockNamespace(ctl)

	records := []storage.Element{
		{Key: "ELB", Value: []byte(`{"symbol":"ELB","name":"Elab"}`)},
	}
	db.EXPECT().Index().Return(index).AnyTimes()
	index.EXPECT().All().Return(records, nil).Times(1)
	db.EXPECT().Open("ELB").Return(namespace, nil).Times(1)
	namespace.EXPECT().All().Return(nil, errDiskFull).Times(1)

	_, err := registry.New(logger.New("registry"), db, registry.Options{})
	assert.True(t, fault.IsErrStore(err), "wrong error: %v", err)
}

func TestDeployGenesisFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db := mocks.NewMockDatabase(ctl)
	index := mocks.NewMockNamespace(ctl)
	namespace := mocks.NewMockNamespace(ctl)

	db.EXPECT().Index().Return(index).AnyTimes()
	index.EXPECT().All().Return(nil, nil).Times(1)
	db.EXPECT().Open("ELB").Return(namespace, nil).Times(1)
	namespace.EXPECT().Put("0000000000000000", gomock.Any()).Return(errDiskFull).Times(1)

	r, err := registry.New(logger.New("registry"), db, registry.Options{})
	assert.Nil(t, err, "registry creation")
	defer r.Close()

	d, err := r.DeployToken("Elab", "ELB", 1000000, 10)
	assert.True(t, fault.IsErrStore(err), "wrong error: %v", err)
	assert.Nil(t, d, "deployment returned")

	_, err = r.GetLedgerBySymbol("ELB")
	assert.Equal(t, fault.ErrTokenNotFound, err, "failed ledger registered")
	assert.Equal(t, uint64(1), r.PersistFailures(), "persist failures")
}

func TestDeployMetadataFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db := mocks.NewMockDatabase(ctl)
	index := mocks.NewMockNamespace(ctl)
	namespace := mocks.NewMockNamespace(ctl)

	db.EXPECT().Index().Return(index).AnyTimes()
	index.EXPECT().All().Return(nil, nil).Times(1)
	db.EXPECT().Open("ELB").Return(namespace, nil).Times(1)
	namespace.EXPECT().Put("0000000000000000", gomock.Any()).Return(nil).Times(1)
	index.EXPECT().Put("ELB", gomock.Any()).Return(errDiskFull).Times(1)

	r, err := registry.New(logger.New("registry"), db, registry.Options{})
	assert.Nil(t, err, "registry creation")
	defer r.Close()

	_, err = r.DeployToken("Elab", "ELB", 1000000, 10)
	assert.True(t, fault.IsErrStore(err), "wrong error: %v", err)
	assert.Equal(t, 0, r.Count(), "failed ledger registered")
}

func TestTransferStoreFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db := mocks.NewMockDatabase(ctl)
	index := mocks.NewMockNamespace(ctl)
	namespace := mocks.NewMockNamespace(ctl)

	db.EXPECT().Index().Return(index).AnyTimes()
	index.EXPECT().All().Return(nil, nil).Times(1)
	db.EXPECT().Open("ELB").Return(namespace, nil).Times(1)
	index.EXPECT().Put("ELB", gomock.Any()).Return(nil).Times(1)
	gomock.InOrder(
		namespace.EXPECT().Put("0000000000000000", gomock.Any()).Return(nil).Times(1),
		namespace.EXPECT().Put("0000000000000001", gomock.Any()).Return(errDiskFull).Times(1),
		namespace.EXPECT().Put("0000000000000002", gomock.Any()).Return(errDiskFull).Times(1),
	)

	r, err := registry.New(logger.New("registry"), db, registry.Options{})
	assert.Nil(t, err, "registry creation")
	defer r.Close()

	d, err := r.DeployToken("Elab", "ELB", 1000000, 10)
	assert.Nil(t, err, "deploy")

	w, _ := r.CreateWallet("ELB")
	err = r.CreateTransaction("ELB", d.Wallet.PublicKey, w.PublicKey, 100, d.Wallet.PrivateKey)
	assert.True(t, fault.IsErrStore(err), "wrong error: %v", err)
	assert.False(t, fault.IsErrInvalid(err), "store error looks like validation")

	assert.Equal(t, uint64(2), r.PersistFailures(), "persist failures")
	assert.Equal(t, uint64(100), r.CalculateBalance("ELB", w.PublicKey), "in-memory state")
}

func TestAsynchronousStoreFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db := mocks.NewMockDatabase(ctl)
	index := mocks.NewMockNamespace(ctl)
	namespace := mocks.NewMockNamespace(ctl)

	db.EXPECT().Index().Return(index).AnyTimes()
	index.EXPECT().All().Return(nil, nil).Times(1)
	db.EXPECT().Open("ELB").Return(namespace, nil).Times(1)
	index.EXPECT().Put("ELB", gomock.Any()).Return(nil).Times(1)
	namespace.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errDiskFull).Times(3)

	r, err := registry.New(logger.New("registry"), db, registry.Options{Durability: registry.Asynchronous})
	assert.Nil(t, err, "registry creation")

	d, err := r.DeployToken("Elab", "ELB", 1000000, 10)
	assert.Nil(t, err, "deploy")

	w, _ := r.CreateWallet("ELB")
	err = r.CreateTransaction("ELB", d.Wallet.PublicKey, w.PublicKey, 100, d.Wallet.PrivateKey)
	assert.Nil(t, err, "asynchronous failure returned")

	assert.Nil(t, r.Close(), "close")
	assert.Equal(t, uint64(3), r.PersistFailures(), "persist failures")
}
