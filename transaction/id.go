// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meridian-net/meridian-sdk-go/entity"
	"github.com/meridian-net/meridian-sdk-go/fault"
	"github.com/meridian-net/meridian-sdk-go/util"
)

// TransactionId - uniquely identifies a transaction on the ledger
// the valid start instant is recorded with nanosecond resolution
type TransactionId struct {
	Account    entity.AccountId `json:"account"`
	ValidStart time.Time        `json:"validStart"`
}

// NewTransactionId - create an id for the given payer account
// using the current clock for the valid start instant
func NewTransactionId(account entity.AccountId) TransactionId {
	return TransactionId{
		Account:    account,
		ValidStart: time.Now().UTC(),
	}
}

// TransactionIdFromString - parse the text representation
// "shard.realm.number@seconds.nanoseconds"
func TransactionIdFromString(s string) (TransactionId, error) {
	parts := strings.Split(s, "@")
	if 2 != len(parts) {
		return TransactionId{}, fault.ErrInvalidTransactionId
	}

	account, err := entity.AccountIdFromString(parts[0])
	if nil != err {
		return TransactionId{}, err
	}

	instant := strings.Split(parts[1], ".")
	if 2 != len(instant) {
		return TransactionId{}, fault.ErrInvalidTransactionId
	}
	seconds, err := strconv.ParseInt(instant[0], 10, 64)
	if nil != err || seconds < 0 {
		return TransactionId{}, fault.ErrInvalidTransactionId
	}
	nanos, err := strconv.ParseInt(instant[1], 10, 64)
	if nil != err || nanos < 0 || nanos > 999999999 {
		return TransactionId{}, fault.ErrInvalidTransactionId
	}

	return TransactionId{
		Account:    account,
		ValidStart: time.Unix(seconds, nanos).UTC(),
	}, nil
}

// TransactionIdFromBytes - unpack an id from its binary form
// returns the id and the number of bytes consumed
func TransactionIdFromBytes(buffer []byte) (TransactionId, int, error) {
	account, n, err := entity.AccountIdFromBytes(buffer)
	if nil != err {
		return TransactionId{}, 0, err
	}

	seconds, secondsLength := util.FromVarint64(buffer[n:])
	if 0 == secondsLength {
		return TransactionId{}, 0, fault.ErrInvalidTransactionId
	}
	n += secondsLength

	nanos, nanosLength := util.FromVarint64(buffer[n:])
	if 0 == nanosLength || nanos > 999999999 {
		return TransactionId{}, 0, fault.ErrInvalidTransactionId
	}
	n += nanosLength

	return TransactionId{
		Account:    account,
		ValidStart: time.Unix(int64(seconds), int64(nanos)).UTC(),
	}, n, nil
}

// Bytes - the binary form: packed account triple followed by
// Varint64 seconds and Varint64 nanoseconds
func (id TransactionId) Bytes() []byte {
	buffer := id.Account.Bytes()
	buffer = append(buffer, util.ToVarint64(uint64(id.ValidStart.Unix()))...)
	buffer = append(buffer, util.ToVarint64(uint64(id.ValidStart.Nanosecond()))...)
	return buffer
}

// String - the canonical text form with zero padded nanoseconds
func (id TransactionId) String() string {
	return fmt.Sprintf("%s@%d.%09d", id.Account.String(), id.ValidStart.Unix(), id.ValidStart.Nanosecond())
}

// Next - derive the id for a later chunk of the same logical
// transaction by advancing the valid start by whole nanoseconds
func (id TransactionId) Next(offset int) TransactionId {
	return TransactionId{
		Account:    id.Account,
		ValidStart: id.ValidStart.Add(time.Duration(offset) * time.Nanosecond),
	}
}

// IsZero - true for the zero value id
func (id TransactionId) IsZero() bool {
	return id.Account.IsZero() && id.ValidStart.IsZero()
}

// MarshalText - for JSON encoding
func (id TransactionId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - for JSON decoding
func (id *TransactionId) UnmarshalText(s []byte) error {
	parsed, err := TransactionIdFromString(string(s))
	if nil != err {
		return err
	}
	*id = parsed
	return nil
}
