// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Meridian Net Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/meridian-net/meridian-sdk-go/fault"
)

// TagType - type code for transaction payloads
type TagType uint64

// enumerate the possible payload types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	TransferTag       = TagType(iota) // move balances between accounts
	ContractCallTag   = TagType(iota) // invoke a smart contract function
	TopicMessageTag   = TagType(iota) // submit a message to a consensus topic
	TokenAssociateTag = TagType(iota) // associate tokens with an account

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// Record - generic transaction payload interface
type Record interface {
	Tag() TagType
	PackPayload(buffer Packed) (Packed, error)
	CheckValid() error
	ValidateChecksums(chainName string) error
}

// payloads that exceed a single network message implement this to
// be broken into ordered parts at freeze time
type chunkable interface {
	split(chunkSize int) []Record
	join(parts []Record) (Record, error)
}

// byte sizes for various fields
const (
	maxMemoLength       = 100
	messageChunkSize    = 1024
	maxParametersLength = 8192
	maxSignatureLength  = 1024
)

// UnpackFunc - payload field decoder for one tag
// consumes the payload fields only, the tag has already been read
type UnpackFunc func(buffer Packed) (Record, int, error)

// registry of payload decoders keyed by tag
var registryData struct {
	sync.RWMutex
	unpackers map[TagType]UnpackFunc
}

// RegisterRecord - attach a payload decoder to a tag
// a tag can only be registered once
func RegisterRecord(tag TagType, unpack UnpackFunc) error {
	if NullTag == tag || nil == unpack {
		return fault.ErrUnknownTransactionTag
	}

	registryData.Lock()
	defer registryData.Unlock()

	if nil == registryData.unpackers {
		registryData.unpackers = make(map[TagType]UnpackFunc)
	}
	if _, ok := registryData.unpackers[tag]; ok {
		return fault.ErrTagAlreadyRegistered
	}
	registryData.unpackers[tag] = unpack
	return nil
}

// fetch the decoder for a tag
func unpackerFor(tag TagType) (UnpackFunc, error) {
	registryData.RLock()
	defer registryData.RUnlock()

	unpack, ok := registryData.unpackers[tag]
	if !ok {
		return nil, fault.ErrUnknownTransactionTag
	}
	return unpack, nil
}

// DigestLength - number of bytes in a packed record digest
const DigestLength = 32

// Digest - SHA3-256 of a packed record
type Digest [DigestLength]byte

// MakeDigest - the content digest of a packed record
func (record Packed) MakeDigest() Digest {
	return Digest(sha3.Sum256(record))
}

// String - hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<digest:" + hex.EncodeToString(digest[:]) + ">"
}

// MarshalText - for JSON encoding
func (digest Digest) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(digest))
	buffer := make([]byte, size)
	hex.Encode(buffer, digest[:])
	return buffer, nil
}
