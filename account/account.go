// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - cryptographic key value types
//
// a public key carries its algorithm and network inside a key variant
// byte so that a test key can never sign for the main network; text
// form is Base58 of: variant ‖ key ‖ 4 byte SHA3-256 checksum
package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/meridian-net/meridian-sdk-go/fault"
	"github.com/meridian-net/meridian-sdk-go/util"
)

// enumeration of supported key algorithms
const (
	// list of valid algorithms
	Nothing = iota // zero keytype **Just for Testing**
	ED25519 = iota
	// end of list (one greater than last item)
	algorithmLimit = iota
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm
)

// PublicKey - a verification key tagged with algorithm and network
type PublicKey struct {
	Test      bool
	Algorithm int
	Key       []byte
}

// PublicKeyFromBase58 - decode the Base58 text form of a public key
//
// validates the embedded checksum
func PublicKeyFromBase58(encoded string) (*PublicKey, error) {
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

	return PublicKeyFromBytes(decoded[:checksumStart])
}

// PublicKeyFromBytes - decode the binary form of a public key
//
// the binary form is: Varint64(key variant) ‖ raw key
func PublicKeyFromBytes(buffer []byte) (*PublicKey, error) {
	keyVariant, keyVariantLength := util.FromVarint64(buffer)
	if 0 == keyVariantLength || publicKeyCode != keyVariant&publicKeyCode {
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
		if ed25519.PublicKeySize != len(key) {
			return nil, fault.ErrInvalidKeyLength
		}
	case Nothing:
		if 2 != len(key) {
			return nil, fault.ErrInvalidKeyLength
		}
	}

	publicKey := &PublicKey{
		Test:      isTest,
		Algorithm: keyAlgorithm,
		Key:       key,
	}
	return publicKey, nil
}

// CheckSignature - verify a signature over a message
func (publicKey *PublicKey) CheckSignature(message []byte, signature Signature) error {
	switch publicKey.Algorithm {
	case ED25519:
		if ed25519.SignatureSize != len(signature) {
			return fault.ErrInvalidSignature
		}
		if !ed25519.Verify(publicKey.Key, message, signature) {
			return fault.ErrInvalidSignature
		}
		return nil
	default:
		return fault.ErrInvalidSignature
	}
}

// Bytes - binary form of the key for wire packing and map keys
func (publicKey *PublicKey) Bytes() []byte {
	keyVariant := byte(publicKey.Algorithm<<algorithmShift) | publicKeyCode
	if publicKey.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, publicKey.Key...)
}

// String - Base58 text form with trailing checksum
func (publicKey PublicKey) String() string {
	buffer := publicKey.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// IsTesting - true if the key is restricted to test networks
func (publicKey PublicKey) IsTesting() bool {
	return publicKey.Test
}

// MarshalText - convert a public key to its Base58 JSON form
func (publicKey PublicKey) MarshalText() ([]byte, error) {
	return []byte(publicKey.String()), nil
}

// UnmarshalText - decode a public key from its Base58 JSON form
func (publicKey *PublicKey) UnmarshalText(s []byte) error {
	k, err := PublicKeyFromBase58(string(s))
	if nil != err {
		return err
	}
	*publicKey = *k
	return nil
}
