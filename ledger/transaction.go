// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/sha3"
)

// Transaction - one entry of the log
type Transaction struct {
	ID                    string  `json:"id"`
	PreviousTransactionID *string `json:"previousTransactionId"`
	Timestamp             int64   `json:"timestamp"` // milliseconds since the epoch
	From                  string  `json:"from"`
	To                    string  `json:"to"`
	Amount                uint64  `json:"amount"`
	Fee                   uint64  `json:"fee"`
	Signature             string  `json:"signature"`
	Sequence              uint64  `json:"sequence"`
}

// Metadata - identity and policy of a ledger
type Metadata struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	Owner          string `json:"owner"` // empty until genesis
	TotalSupply    uint64 `json:"totalSupply"`
	TransactionFee uint64 `json:"transactionFee"`
}

// MakeID - ledger id: hex SHA3-256 of the symbol
func MakeID(symbol string) string {
	digest := sha3.Sum256([]byte(symbol))
	return hex.EncodeToString(digest[:])
}

// content hash of a transaction
//
// the sequence number keeps ids distinct when identical transfers
// share a millisecond timestamp
func makeTransactionID(from string, to string, amount uint64, fee uint64, timestamp int64, sequence uint64) string {
	h := sha3.New256()
	for _, field := range []string{
		from,
		to,
		strconv.FormatUint(amount, 10),
		strconv.FormatUint(fee, 10),
		strconv.FormatInt(timestamp, 10),
	} {
		h.Write([]byte(field))
		h.Write([]byte{':'})
	}
	h.Write([]byte(strconv.FormatUint(sequence, 10)))
	return hex.EncodeToString(h.Sum(nil))
}

// involves - true if the address sent or received the transaction
func (tx *Transaction) involves(address string) bool {
	return tx.From == address || tx.To == address
}
