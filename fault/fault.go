// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type UsageError GenericError
type ValidationError GenericError
type TransientError GenericError
type RejectedError GenericError
type DeadlineError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyFrozen            = UsageError("transaction is already frozen")
	ErrCannotDecodeAccount      = ValidationError("cannot decode account")
	ErrCannotDecodeSeed         = ValidationError("cannot decode seed")
	ErrChecksumMismatch         = ValidationError("checksum mismatch")
	ErrDeadlineExceeded         = DeadlineError("deadline exceeded")
	ErrInvalidEntity            = ValidationError("invalid entity identifier")
	ErrInvalidChain             = ValidationError("chain name is invalid")
	ErrInvalidKeyLength         = ValidationError("key length is invalid")
	ErrInvalidKeyType           = ValidationError("key type is invalid")
	ErrInvalidSeedLength        = ValidationError("seed length is invalid")
	ErrInvalidSignature         = RejectedError("invalid signature")
	ErrInvalidTransactionId     = ValidationError("transaction id is invalid")
	ErrMaxAttemptsExceeded      = TransientError("maximum submission attempts exceeded")
	ErrMemoTooLong              = UsageError("memo too long")
	ErrMissingAccountId         = UsageError("account id is required")
	ErrMissingContractId        = UsageError("contract id is required")
	ErrMissingPayload           = UsageError("transaction payload is required")
	ErrMissingTokenId           = UsageError("token id is required")
	ErrMissingTopicId           = UsageError("topic id is required")
	ErrNoHealthyNodes           = TransientError("no healthy nodes available")
	ErrNoNodeIdsAvailable       = UsageError("no node ids available")
	ErrNotEnvelopePack          = ValidationError("not an envelope pack")
	ErrNotPublicKey             = ValidationError("not a public key")
	ErrNotTransactionPack       = ValidationError("not a transaction pack")
	ErrReceiptNotFound          = NotFoundError("receipt not found")
	ErrReceiptTimeout           = DeadlineError("receipt polling deadline exceeded")
	ErrSignatureTooLong         = ValidationError("signature too long")
	ErrTagAlreadyRegistered     = UsageError("transaction tag is already registered")
	ErrTransactionIsFrozen      = UsageError("transaction is frozen")
	ErrTransactionNotFrozen     = UsageError("transaction is not frozen")
	ErrTransactionNotSigned     = UsageError("transaction is not signed")
	ErrTransactionRejected      = RejectedError("transaction rejected by network")
	ErrUnbalancedTransfer       = UsageError("transfer amounts do not sum to zero")
	ErrUnknownTransactionTag    = UsageError("unknown transaction tag")
	ErrWrongNetworkForPublicKey = ValidationError("wrong network for public key")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e UsageError) Error() string      { return string(e) }
func (e ValidationError) Error() string { return string(e) }
func (e TransientError) Error() string  { return string(e) }
func (e RejectedError) Error() string   { return string(e) }
func (e DeadlineError) Error() string   { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e ProcessError) Error() string    { return string(e) }

// determine the class of an error
func IsErrUsage(e error) bool      { _, ok := e.(UsageError); return ok }
func IsErrValidation(e error) bool { _, ok := e.(ValidationError); return ok }
func IsErrTransient(e error) bool  { _, ok := e.(TransientError); return ok }
func IsErrRejected(e error) bool   { _, ok := e.(RejectedError); return ok }
func IsErrDeadline(e error) bool   { _, ok := e.(DeadlineError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
