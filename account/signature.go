// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"
)

// Signature - raw signature bytes, hex in all text forms
type Signature []byte

// String - convert a binary signature to hex string for use by the fmt package (for %s)
func (signature Signature) String() string {
	return hex.EncodeToString(signature)
}

// GoString - convert a binary signature to hex string for use by the fmt package (for %#v)
func (signature Signature) GoString() string {
	return "<signature:" + hex.EncodeToString(signature) + ">"
}

// MarshalText - convert signature to hex
func (signature Signature) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(signature))
	buffer := make([]byte, size)
	hex.Encode(buffer, signature)
	return buffer, nil
}

// UnmarshalText - convert hex to signature
func (signature *Signature) UnmarshalText(s []byte) error {
	sig := make([]byte, hex.DecodedLen(len(s)))
	byteCount, err := hex.Decode(sig, s)
	if nil != err {
		return err
	}
	*signature = sig[:byteCount]
	return nil
}
