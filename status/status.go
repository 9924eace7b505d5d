// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package status - network status codes and their retry classification
//
// a node answers every submission with a synchronous precheck code and
// every receipt query with a processing code; the classification table
// below is the single place deciding which codes the engine retries
package status

import (
	"fmt"

	"github.com/meridian-net/meridian-sdk-go/fault"
)

// Code - status code enumeration
//
// encoded as Varint64 on the wire
type Code uint64

// possible status values
const (
	OK Code = iota // precheck accepted / receipt success

	// transient precheck conditions, safe to retry on any node
	Busy
	NodeUnavailable
	PlatformNotActive

	// permanent precheck rejections, retrying can never succeed
	InvalidSignature
	InsufficientBalance
	DuplicateTransaction
	InvalidTransaction
	ExpiredTransaction
	PayloadTooLarge

	// receipt processing codes
	Unknown      // node has not seen the transaction yet
	Pending      // submitted, no final outcome yet
	RecordFailed // processed and definitively failed

	maximumValue // this must be the last value
)

// internal conversion
func toString(code Code) (string, error) {
	switch code {
	case OK:
		return "OK", nil
	case Busy:
		return "Busy", nil
	case NodeUnavailable:
		return "NodeUnavailable", nil
	case PlatformNotActive:
		return "PlatformNotActive", nil
	case InvalidSignature:
		return "InvalidSignature", nil
	case InsufficientBalance:
		return "InsufficientBalance", nil
	case DuplicateTransaction:
		return "DuplicateTransaction", nil
	case InvalidTransaction:
		return "InvalidTransaction", nil
	case ExpiredTransaction:
		return "ExpiredTransaction", nil
	case PayloadTooLarge:
		return "PayloadTooLarge", nil
	case Unknown:
		return "Unknown", nil
	case Pending:
		return "Pending", nil
	case RecordFailed:
		return "RecordFailed", nil
	default:
		return "", fault.ErrInvalidEntity
	}
}

// FromUint64 - convert a wire value to a status code
func FromUint64(value uint64) (Code, error) {
	if value >= uint64(maximumValue) {
		return OK, fault.ErrInvalidEntity
	}
	return Code(value), nil
}

// Uint64 - wire value of a status code
func (code Code) Uint64() uint64 {
	return uint64(code)
}

// String - name of a status code
func (code Code) String() string {
	s, err := toString(code)
	if nil != err {
		return fmt.Sprintf("*unknown:%d*", uint64(code))
	}
	return s
}

// GoString - name and numeric value, for debugging
func (code Code) GoString() string {
	return fmt.Sprintf("<status#%d:%q>", uint64(code), code.String())
}

// IsRetryable - true for transient precheck codes
//
// a retryable code means the node did not durably record the
// transaction, so resubmission cannot cause a duplicate
func (code Code) IsRetryable() bool {
	switch code {
	case Busy, NodeUnavailable, PlatformNotActive:
		return true
	default:
		return false
	}
}

// IsPending - true while a receipt has no final outcome
func (code Code) IsPending() bool {
	switch code {
	case Unknown, Pending:
		return true
	default:
		return false
	}
}

// IsTerminal - true once a receipt can never change again
func (code Code) IsTerminal() bool {
	return !code.IsPending()
}

// IsSuccess - true only for an accepted outcome
func (code Code) IsSuccess() bool {
	return OK == code
}

// PrecheckError - map a failed precheck code to its error class
//
// retryable codes become transient errors, everything else is a
// definitive rejection
func (code Code) PrecheckError() error {
	if code.IsSuccess() {
		return nil
	}
	if code.IsRetryable() {
		return fault.TransientError("precheck " + code.String())
	}
	return fault.RejectedError("precheck " + code.String())
}
