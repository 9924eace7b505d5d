// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/meridian-net/meridian-sdk-go/fault"
	"github.com/meridian-net/meridian-sdk-go/util"
)

// PrivateKey - a signing key tagged with algorithm and network
type PrivateKey struct {
	Test      bool
	Algorithm int
	Key       []byte
}

// Sign - compute a signature over a message
//
// a Nothing key always produces an empty signature; it can never
// verify and exists only for tests
func (privateKey *PrivateKey) Sign(message []byte) Signature {
	switch privateKey.Algorithm {
	case ED25519:
		return Signature(ed25519.Sign(privateKey.Key, message))
	default:
		return Signature{}
	}
}

// PublicKey - derive the corresponding verification key
func (privateKey *PrivateKey) PublicKey() *PublicKey {
	var key []byte
	switch privateKey.Algorithm {
	case ED25519:
		key = privateKey.Key[ed25519.PublicKeySize:]
	default:
		key = privateKey.Key
	}
	return &PublicKey{
		Test:      privateKey.Test,
		Algorithm: privateKey.Algorithm,
		Key:       key,
	}
}

// Bytes - binary form: Varint64(key variant) ‖ raw key
//
// the public key code bit is clear to prevent a private key being
// accepted where a public key is expected
func (privateKey *PrivateKey) Bytes() []byte {
	keyVariant := byte(privateKey.Algorithm << algorithmShift)
	if privateKey.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, privateKey.Key...)
}

// String - Base58 text form with trailing checksum
func (privateKey PrivateKey) String() string {
	buffer := privateKey.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// IsTesting - true if the key is restricted to test networks
func (privateKey PrivateKey) IsTesting() bool {
	return privateKey.Test
}

// MarshalText - convert a private key to its Base58 JSON form
func (privateKey PrivateKey) MarshalText() ([]byte, error) {
	return []byte(privateKey.String()), nil
}

// PrivateKeyFromBase58 - decode the Base58 text form of a private key
func PrivateKeyFromBase58(encoded string) (*PrivateKey, error) {
	decoded, err := base58.Decode(encoded)
	if nil != err || 0 == len(decoded) {
		return nil, fault.ErrCannotDecodeAccount
	}

	checksumStart := len(decoded) - checksumLength
	if checksumStart <= 0 {
		return nil, fault.ErrInvalidKeyLength
	}
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	return PrivateKeyFromBytes(decoded[:checksumStart])
}

// PrivateKeyFromBytes - decode the binary form of a private key
func PrivateKeyFromBytes(buffer []byte) (*PrivateKey, error) {
	keyVariant, keyVariantLength := util.FromVarint64(buffer)
	if 0 == keyVariantLength || publicKeyCode == keyVariant&publicKeyCode {
		return nil, fault.ErrNotPublicKey
	}

	keyAlgorithm := int(keyVariant >> algorithmShift)
	if keyAlgorithm < 0 || keyAlgorithm >= algorithmLimit {
		return nil, fault.ErrInvalidKeyType
	}

	isTest := 0 != keyVariant&testKeyCode

	key := buffer[keyVariantLength:]
	switch keyAlgorithm {
	case ED25519:
		if ed25519.PrivateKeySize != len(key) {
			return nil, fault.ErrInvalidKeyLength
		}
	case Nothing:
		if 2 != len(key) {
			return nil, fault.ErrInvalidKeyLength
		}
	}

	privateKey := &PrivateKey{
		Test:      isTest,
		Algorithm: keyAlgorithm,
		Key:       key,
	}
	return privateKey, nil
}
