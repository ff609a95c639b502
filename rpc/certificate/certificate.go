// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/AwesomeEcosystem/nomics/util"
)

// Get - verify that a set of listener parameters are valid
// and return the TLS configuration with the certificate fingerprint
func Get(log *logger.L, name, certificate, key string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if nil != err {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
	}

	fin = fingerprint(keyPair.Certificate[0])
	log.Infof("%s certificate fingerprint: %s", name, hex.EncodeToString(fin[:]))

	return tlsConfiguration, fin, nil
}

// Load - read certificate and key files then call Get
func Load(log *logger.L, name, certificateFile, keyFile string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	certificate, err := util.ReadFile(certificateFile)
	if nil != err {
		log.Errorf("%s failed to read certificate: %q  error: %s", name, certificateFile, err)
		return nil, fin, err
	}
	key, err := util.ReadFile(keyFile)
	if nil != err {
		log.Errorf("%s failed to read private key: %q  error: %s", name, keyFile, err)
		return nil, fin, err
	}
	return Get(log, name, string(certificate), string(key))
}

// fingerprint - compute the fingerprint of a certificate
//
// openssl x509 -outform DER -in ledgerd-local-rpc.crt | sha3sum -a 256
func fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}
