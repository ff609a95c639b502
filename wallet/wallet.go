// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wallet - secp256k1 key pairs, signing and verification
//
// all values are hex encoded:
//   public key  - uncompressed curve point (65 bytes)
//   private key - scalar (32 bytes)
//   signature   - DER encoded ECDSA signature over SHA3-256(message)
package wallet

import (
	"encoding/hex"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"golang.org/x/crypto/sha3"

	"github.com/AwesomeEcosystem/nomics/fault"
)

// Curve - the only curve used for addresses and signatures
const Curve = "secp256k1"

const (
	privateKeyLength = 32
)

// Wallet - an address (public key) and its signing secret
type Wallet struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// New - create a wallet from secure random data
func New() (*Wallet, error) {
	key, err := btcec.NewPrivateKey(btcec.S256())
	if nil != err {
		return nil, err
	}

	return &Wallet{
		PublicKey:  hex.EncodeToString(key.PubKey().SerializeUncompressed()),
		PrivateKey: hex.EncodeToString(key.Serialize()),
	}, nil
}

// PublicKeyOf - derive the hex public key for a hex private key
func PublicKeyOf(privateKey string) (string, error) {
	key, err := parsePrivateKey(privateKey)
	if nil != err {
		return "", err
	}
	return hex.EncodeToString(key.PubKey().SerializeUncompressed()), nil
}

// Sign - sign a message with a hex private key
func Sign(message string, privateKey string) (string, error) {
	key, err := parsePrivateKey(privateKey)
	if nil != err {
		return "", err
	}

	digest := sha3.Sum256([]byte(message))
	signature, err := key.Sign(digest[:])
	if nil != err {
		return "", err
	}
	return hex.EncodeToString(signature.Serialize()), nil
}

// Verify - check a hex signature against a message and hex public key
//
// any malformed input simply fails verification
func Verify(message string, signature string, publicKey string) bool {
	key, err := ParsePublicKey(publicKey)
	if nil != err {
		return false
	}

	sigBytes, err := hex.DecodeString(signature)
	if nil != err {
		return false
	}
	sig, err := btcec.ParseDERSignature(sigBytes, btcec.S256())
	if nil != err {
		return false
	}

	digest := sha3.Sum256([]byte(message))
	return sig.Verify(digest[:], key)
}

// ParsePublicKey - decode and validate a hex public key
func ParsePublicKey(publicKey string) (*btcec.PublicKey, error) {
	b, err := hex.DecodeString(publicKey)
	if nil != err || 0 == len(b) {
		return nil, fault.ErrInvalidPublicKey
	}
	key, err := btcec.ParsePubKey(b, btcec.S256())
	if nil != err {
		return nil, fault.ErrInvalidPublicKey
	}
	return key, nil
}

// decode and range check a hex private key
func parsePrivateKey(privateKey string) (*btcec.PrivateKey, error) {
	b, err := hex.DecodeString(privateKey)
	if nil != err || privateKeyLength != len(b) {
		return nil, fault.ErrInvalidPrivateKey
	}

	d := new(big.Int).SetBytes(b)
	if 0 == d.Sign() || d.Cmp(btcec.S256().N) >= 0 {
		return nil, fault.ErrInvalidPrivateKey
	}

	key, _ := btcec.PrivKeyFromBytes(btcec.S256(), b)
	return key, nil
}
