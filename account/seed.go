// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/sha3"

	"github.com/meridian-net/meridian-sdk-go/fault"
)

// seed parameters
var (
	seedHeader = []byte{0x4d, 0x52, 0x01} // "MR" + seed version

	seedNonce = [24]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	derivationIndex = [16]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03, 0xe7,
	}
)

const (
	seedHeaderLength   = 3
	seedPrefixLength   = 1
	secretKeyLength    = 32
	seedChecksumLength = 4

	seedLength = seedHeaderLength + seedPrefixLength + secretKeyLength + seedChecksumLength
)

// NewSeed - generate a random Base58 encoded seed
//
// the network is captured inside the seed so a key recovered from it
// keeps its test/live restriction
func NewSeed(testnet bool) (string, error) {
	sk := make([]byte, secretKeyLength)
	n, err := rand.Read(sk)
	if nil != err {
		return "", err
	}
	if secretKeyLength != n {
		return "", fmt.Errorf("got: %d bytes, expected: %d bytes", n, secretKeyLength)
	}

	net := byte(0x00)
	if testnet {
		net = 0x01
	}
	seed := append([]byte{}, seedHeader...)
	seed = append(seed, net)
	seed = append(seed, sk...)
	checksum := sha3.Sum256(seed)
	seed = append(seed, checksum[:seedChecksumLength]...)

	return base58.Encode(seed), nil
}

// PrivateKeyFromSeed - recover the signing key from a Base58 seed
//
// derivation is deterministic: the secret key encrypts a fixed index
// block and the result becomes the ed25519 generation seed
func PrivateKeyFromSeed(encoded string) (*PrivateKey, error) {
	seed, err := base58.Decode(encoded)
	if nil != err || 0 == len(seed) {
		return nil, fault.ErrCannotDecodeSeed
	}
	if seedLength != len(seed) {
		return nil, fault.ErrInvalidSeedLength
	}

	if !bytes.Equal(seedHeader, seed[:seedHeaderLength]) {
		return nil, fault.ErrCannotDecodeSeed
	}

	checksumStart := len(seed) - seedChecksumLength
	checksum := sha3.Sum256(seed[:checksumStart])
	if !bytes.Equal(checksum[:seedChecksumLength], seed[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	// first prefix byte is the test/live indication
	prefix := seed[seedHeaderLength : seedHeaderLength+seedPrefixLength]
	isTest := 0x01 == prefix[0]

	var secretKey [secretKeyLength]byte
	copy(secretKey[:], seed[seedHeaderLength+seedPrefixLength:checksumStart])

	generationSeed := secretbox.Seal([]byte{}, derivationIndex[:], &seedNonce, &secretKey)

	_, priv, err := ed25519.GenerateKey(bytes.NewBuffer(generationSeed))
	if nil != err {
		return nil, err
	}

	privateKey := &PrivateKey{
		Test:      isTest,
		Algorithm: ED25519,
		Key:       priv,
	}
	return privateKey, nil
}
