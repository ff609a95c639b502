// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type StoreError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised           = ExistsError("already initialised")
	ErrCertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ErrInsufficientBalance          = InvalidError("insufficient balance")
	ErrInvalidAmount                = InvalidError("invalid amount")
	ErrInvalidConfiguration         = InvalidError("configuration must return a table")
	ErrInvalidCount                 = InvalidError("invalid count")
	ErrInvalidDurability            = InvalidError("invalid durability mode")
	ErrInvalidIPAddress             = InvalidError("invalid IP address")
	ErrInvalidLoggerChannel         = InvalidError("invalid logger channel")
	ErrInvalidPortNumber            = InvalidError("invalid port number")
	ErrInvalidPrivateKey            = InvalidError("invalid private key")
	ErrInvalidPrivateKeyFile        = InvalidError("invalid private key file")
	ErrInvalidPublicKey             = InvalidError("invalid public key")
	ErrInvalidPublicKeyFile         = InvalidError("invalid public key file")
	ErrInvalidSignature             = InvalidError("invalid signature")
	ErrInvalidSymbol                = InvalidError("invalid token symbol")
	ErrInvalidTokenID               = InvalidError("token id does not match symbol")
	ErrKeyFileAlreadyExists         = ExistsError("key file already exists")
	ErrKeyNotFound                  = NotFoundError("key not found")
	ErrMissingParameters            = InvalidError("missing parameters")
	ErrNotInitialised               = NotFoundError("not initialised")
	ErrRateLimiting                 = ProcessError("rate limiting")
	ErrRequiredName                 = InvalidError("token name is required")
	ErrRequiredSymbol               = InvalidError("token symbol is required")
	ErrStoreFailure                 = StoreError("store failure")
	ErrTokenAlreadyExists           = ExistsError("token already exists")
	ErrTokenNotFound                = NotFoundError("token not found")
	ErrUnknownStorageBackend        = InvalidError("unknown storage backend")
	ErrWalletFileAlreadyExists      = ExistsError("wallet file already exists")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e StoreError) Error() string    { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool  { var x ProcessError; return errors.As(e, &x) }
func IsErrStore(e error) bool    { var x StoreError; return errors.As(e, &x) }

// a failed store operation: the class sentinel and the cause are both
// reachable through errors.Is/errors.As
type storeFailure struct {
	cause error
}

func (e *storeFailure) Error() string   { return e.cause.Error() + ": " + string(ErrStoreFailure) }
func (e *storeFailure) Unwrap() []error { return []error{ErrStoreFailure, e.cause} }

// Store - tag a failed durable store operation as ErrStoreFailure
//
// the underlying error stays in the chain; nil is passed through
func Store(err error, format string, arguments ...interface{}) error {
	if nil == err {
		return nil
	}
	if IsErrStore(err) {
		return pkgerrors.WithMessagef(err, format, arguments...)
	}
	return pkgerrors.WithMessagef(&storeFailure{cause: err}, format, arguments...)
}
